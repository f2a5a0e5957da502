package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fabresse/roster/internal/core/model"
	httpCtx "github.com/fabresse/roster/internal/http/context"
	"github.com/pkg/errors"
)

func TestAssert(t *testing.T) {
	ctx := context.Background()
	owner := model.NewReadOnlyUser("esli", "abc-123", "basic-auth", model.RoleOwner)
	guest := model.NewReadOnlyUser("guest", "def-456", "basic-auth", model.RoleGuest)

	testCases := []struct {
		name    string
		user    model.User
		funcs   []AssertFunc
		allowed bool
	}{
		{"authenticated user", owner, []AssertFunc{IsAuthenticated}, true},
		{"anonymous user", nil, []AssertFunc{IsAuthenticated}, false},
		{"user with role", owner, []AssertFunc{Has(model.RoleOwner)}, true},
		{"user without role", guest, []AssertFunc{Has(model.RoleOwner)}, false},
		{"anonymous user with role", nil, []AssertFunc{Has(model.RoleOwner)}, false},
		{"all asserts must pass", guest, []AssertFunc{IsAuthenticated, Has(model.RoleOwner)}, false},
		{"one of", guest, []AssertFunc{OneOf(Has(model.RoleOwner), Has(model.RoleGuest))}, true},
		{"one of none", guest, []AssertFunc{OneOf(Has(model.RoleOwner), Is("esli", "basic-auth"))}, false},
		{"exact user", owner, []AssertFunc{Is("esli", "basic-auth")}, true},
		{"exact user with wrong provider", owner, []AssertFunc{Is("esli", "oidc")}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := Assert(ctx, tc.user, tc.funcs...)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.allowed, allowed; e != g {
				t.Errorf("allowed: expected %v, got %v", e, g)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Middleware(Has(model.RoleOwner))(next)

	doRequest := func(user model.User) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/members", nil)
		if user != nil {
			r = r.WithContext(httpCtx.SetUser(r.Context(), user))
		}

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		return w
	}

	owner := model.NewReadOnlyUser("esli", "abc-123", "basic-auth", model.RoleOwner)
	if e, g := http.StatusNoContent, doRequest(owner).Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}

	guest := model.NewReadOnlyUser("guest", "def-456", "basic-auth", model.RoleGuest)
	if e, g := http.StatusForbidden, doRequest(guest).Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}

	if e, g := http.StatusForbidden, doRequest(nil).Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}

func TestMiddlewareAssertError(t *testing.T) {
	failing := func(ctx context.Context, user model.User) (bool, error) {
		return false, errors.New("assert failure")
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Middleware(failing)(next)

	r := httptest.NewRequest(http.MethodGet, "/members", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if e, g := http.StatusInternalServerError, w.Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}
