package setup

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/fabresse/roster/internal/config"
	"github.com/fabresse/roster/internal/core/model"
	"github.com/fabresse/roster/internal/http/middleware/authn"
	"github.com/fabresse/roster/internal/http/middleware/authn/basic"
	"github.com/fabresse/roster/internal/http/middleware/authn/bearer"
	"github.com/pkg/errors"
)

func getAuthnMiddlewareFromConfig(ctx context.Context, conf *config.Config) (func(http.Handler) http.Handler, error) {
	credentials, err := basic.NewStore(
		basic.Credentials{
			Username: conf.HTTP.Auth.Owner.Username,
			Password: conf.HTTP.Auth.Owner.Password,
			Roles:    []string{model.RoleOwner},
		},
		basic.Credentials{
			Username: conf.HTTP.Auth.Guest.Username,
			Password: conf.HTTP.Auth.Guest.Password,
			Roles:    []string{model.RoleGuest},
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not create credential store")
	}

	authenticators := []authn.Authenticator{
		basic.NewAuthenticator(credentials),
	}

	if jwksURL := conf.HTTP.Auth.OIDC.JWKSURL; jwksURL != "" {
		keySet := oidc.NewRemoteKeySet(ctx, jwksURL)

		authenticators = append(authenticators, bearer.NewAuthenticator(
			keySet,
			bearer.WithIssuers(conf.HTTP.Auth.OIDC.Issuers...),
			bearer.WithRoleStrategy(bearer.RoleStrategy(conf.HTTP.Auth.OIDC.RolesClaim)),
		))
	}

	return authn.Middleware(handleUnauthorized, authenticators...), nil
}

func handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}
