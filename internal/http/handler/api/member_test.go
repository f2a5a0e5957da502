package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/fabresse/roster/internal/core/model"
	"github.com/fabresse/roster/internal/core/port"
	"github.com/fabresse/roster/internal/http/middleware/authn"
	"github.com/fabresse/roster/internal/http/middleware/authn/basic"
	"github.com/pkg/errors"
)

type testMemberStore struct {
	nextID  model.MemberID
	members []model.Member
}

// GetMemberByID implements port.MemberStore.
func (s *testMemberStore) GetMemberByID(ctx context.Context, id model.MemberID, owner string) (model.Member, error) {
	for _, m := range s.members {
		if m.ID() == id && m.Owner() == owner {
			return m, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// MemberExists implements port.MemberStore.
func (s *testMemberStore) MemberExists(ctx context.Context, id model.MemberID, owner string) (bool, error) {
	_, err := s.GetMemberByID(ctx, id, owner)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return false, nil
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

// QueryMembers implements port.MemberStore.
func (s *testMemberStore) QueryMembers(ctx context.Context, owner string, opts port.QueryMembersOptions) ([]model.Member, error) {
	members := make([]model.Member, 0)
	for _, m := range s.members {
		if m.Owner() == owner {
			members = append(members, m)
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case port.SortFieldName:
			less = members[i].Name() < members[j].Name()
		case port.SortFieldID:
			less = members[i].ID() < members[j].ID()
		default:
			less = members[i].Age() < members[j].Age()
		}

		if opts.Direction == port.SortDesc {
			return !less
		}

		return less
	})

	return members, nil
}

// CreateMember implements port.MemberStore.
func (s *testMemberStore) CreateMember(ctx context.Context, member model.Member, owner string) (model.Member, error) {
	s.nextID++

	created := model.NewReadOnlyMember(s.nextID, member.Name(), member.Age(), owner, member.Sons(), member.DeletedDate())
	s.members = append(s.members, created)

	return created, nil
}

// UpdateMember implements port.MemberStore.
func (s *testMemberStore) UpdateMember(ctx context.Context, id model.MemberID, member model.Member, owner string) (model.Member, error) {
	for i, m := range s.members {
		if m.ID() == id && m.Owner() == owner {
			updated := model.NewReadOnlyMember(id, member.Name(), member.Age(), owner, member.Sons(), member.DeletedDate())
			s.members[i] = updated

			return updated, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// DeleteMember implements port.MemberStore.
func (s *testMemberStore) DeleteMember(ctx context.Context, id model.MemberID, owner string) (bool, error) {
	for i, m := range s.members {
		if m.ID() == id && m.Owner() == owner {
			s.members = slices.Delete(s.members, i, i+1)
			return true, nil
		}
	}

	return false, nil
}

var _ port.MemberStore = &testMemberStore{}

func newTestHandler(t *testing.T) (*testMemberStore, http.Handler) {
	t.Helper()

	store := &testMemberStore{
		members: []model.Member{
			model.NewReadOnlyMember(1, "esli", 30, "esli", []string{"Lucas", "Ana"}, nil),
			model.NewReadOnlyMember(2, "alice", 25, "esli", []string{}, nil),
			model.NewReadOnlyMember(3, "bob", 40, "bill", []string{"Eva"}, nil),
		},
		nextID: 32,
	}

	credentials, err := basic.NewStore(
		basic.Credentials{Username: "esli", Password: "esli-password", Roles: []string{model.RoleOwner}},
		basic.Credentials{Username: "guest", Password: "guest-password", Roles: []string{model.RoleGuest}},
	)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	middleware := authn.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}, basic.NewAuthenticator(credentials))

	return store, middleware(NewHandler(store))
}

func doRequest(handler http.Handler, method, target, username, password string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	r := httptest.NewRequest(method, target, reader)
	if username != "" {
		r.SetBasicAuth(username, password)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	return w
}

func TestGetMember(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodGet, "/members/1", "esli", "esli-password", "")

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var member Member
	if err := json.Unmarshal(res.Body.Bytes(), &member); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), member.ID; e != g {
		t.Errorf("member.ID: expected %d, got %d", e, g)
	}

	if e, g := "esli", member.Name; e != g {
		t.Errorf("member.Name: expected %q, got %q", e, g)
	}

	if e, g := "esli", member.Owner; e != g {
		t.Errorf("member.Owner: expected %q, got %q", e, g)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	_, handler := newTestHandler(t)

	// Unknown id and another owner's id are indistinguishable
	for _, target := range []string{"/members/1000", "/members/3", "/members/not-a-number"} {
		res := doRequest(handler, http.MethodGet, target, "esli", "esli-password", "")

		if e, g := http.StatusNotFound, res.Code; e != g {
			t.Errorf("res.Code for %s: expected %d, got %d", target, e, g)
		}
	}
}

func TestListMembers(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodGet, "/members?page=0&size=10", "esli", "esli-password", "")

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var members []Member
	if err := json.Unmarshal(res.Body.Bytes(), &members); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(members); e != g {
		t.Fatalf("len(members): expected %d, got %d", e, g)
	}

	for _, m := range members {
		if e, g := "esli", m.Owner; e != g {
			t.Errorf("m.Owner: expected %q, got %q", e, g)
		}
	}

	// Default ordering is age ascending
	if e, g := "alice", members[0].Name; e != g {
		t.Errorf("members[0].Name: expected %q, got %q", e, g)
	}
}

func TestListMembersSort(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodGet, "/members?sort=name,desc", "esli", "esli-password", "")

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var members []Member
	if err := json.Unmarshal(res.Body.Bytes(), &members); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "esli", members[0].Name; e != g {
		t.Errorf("members[0].Name: expected %q, got %q", e, g)
	}

	if e, g := "alice", members[1].Name; e != g {
		t.Errorf("members[1].Name: expected %q, got %q", e, g)
	}
}

func TestCreateMember(t *testing.T) {
	store, handler := newTestHandler(t)

	body := `{"id": 999, "name": "carl", "age": 20, "owner": "mallory", "sons": ["ChildA", "ChildB"], "deletedDate": null}`

	res := doRequest(handler, http.MethodPost, "/members", "esli", "esli-password", body)

	if e, g := http.StatusCreated, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	if e, g := "/members/33", res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected %q, got %q", e, g)
	}

	if e, g := 0, res.Body.Len(); e != g {
		t.Errorf("res.Body.Len(): expected %d, got %d", e, g)
	}

	created, err := store.GetMemberByID(context.Background(), 33, "esli")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The owner always comes from the authenticated identity
	if e, g := "esli", created.Owner(); e != g {
		t.Errorf("created.Owner(): expected %q, got %q", e, g)
	}

	if e, g := []string{"ChildA", "ChildB"}, created.Sons(); !slices.Equal(e, g) {
		t.Errorf("created.Sons(): expected %v, got %v", e, g)
	}
}

func TestCreateMemberMalformedBody(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodPost, "/members", "esli", "esli-password", `{"age": "not-a-number"}`)

	if e, g := http.StatusBadRequest, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestUpdateMember(t *testing.T) {
	store, handler := newTestHandler(t)

	body := `{"name": "esli", "age": 99, "owner": "esli", "sons": ["UpdatedSon"], "deletedDate": null}`

	res := doRequest(handler, http.MethodPut, "/members/1", "esli", "esli-password", body)

	if e, g := http.StatusNoContent, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	updated, err := store.GetMemberByID(context.Background(), 1, "esli")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 99, updated.Age(); e != g {
		t.Errorf("updated.Age(): expected %d, got %d", e, g)
	}

	if e, g := []string{"UpdatedSon"}, updated.Sons(); !slices.Equal(e, g) {
		t.Errorf("updated.Sons(): expected %v, got %v", e, g)
	}
}

func TestUpdateMemberNotFound(t *testing.T) {
	store, handler := newTestHandler(t)

	body := `{"name": "hacked", "age": 1, "owner": "esli", "sons": [], "deletedDate": null}`

	// Another owner's member must not be visible nor mutable
	for _, target := range []string{"/members/99999", "/members/3"} {
		res := doRequest(handler, http.MethodPut, target, "esli", "esli-password", body)

		if e, g := http.StatusNotFound, res.Code; e != g {
			t.Errorf("res.Code for %s: expected %d, got %d", target, e, g)
		}
	}

	other, err := store.GetMemberByID(context.Background(), 3, "bill")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "bob", other.Name(); e != g {
		t.Errorf("other.Name(): expected %q, got %q", e, g)
	}
}

func TestDeleteMember(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodDelete, "/members/1", "esli", "esli-password", "")

	if e, g := http.StatusNoContent, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	res = doRequest(handler, http.MethodGet, "/members/1", "esli", "esli-password", "")

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	res = doRequest(handler, http.MethodDelete, "/members/1", "esli", "esli-password", "")

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestDeleteMemberNotOwned(t *testing.T) {
	store, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodDelete, "/members/3", "esli", "esli-password", "")

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	exists, err := store.MemberExists(context.Background(), 3, "bill")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !exists {
		t.Errorf("exists: expected bill's member to survive")
	}
}

func TestUnauthorized(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodGet, "/members/1", "", "", "")

	if e, g := http.StatusUnauthorized, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	if res.Header().Get("WWW-Authenticate") == "" {
		t.Errorf("expected a WWW-Authenticate challenge")
	}

	for _, creds := range [][2]string{{"BAD-USER", "abc123"}, {"esli", "BAD-PASSWORD"}} {
		res := doRequest(handler, http.MethodGet, "/members/1", creds[0], creds[1], "")

		if e, g := http.StatusUnauthorized, res.Code; e != g {
			t.Errorf("res.Code for %s: expected %d, got %d", creds[0], e, g)
		}
	}
}

func TestForbidden(t *testing.T) {
	_, handler := newTestHandler(t)

	res := doRequest(handler, http.MethodGet, "/members/1", "guest", "guest-password", "")

	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	res = doRequest(handler, http.MethodDelete, "/members/1", "guest", "guest-password", "")

	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}
