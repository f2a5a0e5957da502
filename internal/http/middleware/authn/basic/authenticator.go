package basic

import (
	"net/http"

	"github.com/fabresse/roster/internal/http/middleware/authn"
	"github.com/pkg/errors"
)

const Provider = "basic-auth"

type Authenticator struct {
	store *Store
}

// Authenticate implements [authn.Authenticator].
func (a *Authenticator) Authenticate(w http.ResponseWriter, r *http.Request) (*authn.User, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, nil
	}

	roles, ok := a.store.Verify(username, password)
	if !ok {
		return nil, errors.Wrapf(authn.ErrInvalidCredentials, "basic auth failed for user '%s'", username)
	}

	return &authn.User{
		Username: username,
		Subject:  username,
		Provider: Provider,
		Roles:    roles,
	}, nil
}

func NewAuthenticator(store *Store) *Authenticator {
	return &Authenticator{store: store}
}

var _ authn.Authenticator = &Authenticator{}
