package authn

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/fabresse/roster/internal/core/model"
	httpCtx "github.com/fabresse/roster/internal/http/context"
	"github.com/pkg/errors"
)

// ErrInvalidCredentials is returned by authenticators when credentials of
// their scheme were presented but failed verification.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is an authenticated principal as established by an [Authenticator].
type User struct {
	// Username is the principal name used for owner scoping.
	Username string
	Subject  string
	Provider string
	Roles    []string
}

// Authenticator recognizes one credential scheme. Returning (nil, nil) means
// the request carries no credentials of this scheme and the next
// authenticator should be tried.
type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (*User, error)
}

func Middleware(onUnauthorized func(w http.ResponseWriter, r *http.Request), authenticators ...Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			for _, authenticator := range authenticators {
				user, err := authenticator.Authenticate(w, r)
				if err != nil {
					slog.WarnContext(ctx, "could not authenticate user", slogx.Error(err))
					onUnauthorized(w, r)
					return
				}

				if user == nil {
					continue
				}

				modelUser := model.NewReadOnlyUser(user.Username, user.Subject, user.Provider, user.Roles...)

				slog.DebugContext(ctx, "authenticated user", slog.String("user", model.UserString(modelUser)), slog.Any("roles", modelUser.Roles()))

				ctx = httpCtx.SetUser(ctx, modelUser)

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			onUnauthorized(w, r)
		}

		return fn
	}
}
