package bearer

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/fabresse/roster/internal/http/middleware/authn"
	"github.com/pkg/errors"
)

const Provider = "oidc"

var (
	ErrUntrustedIssuer  = errors.New("untrusted issuer")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
)

// KeySet verifies the signature of a raw token against the issuer's
// published keys and returns its payload. Satisfied by
// [github.com/coreos/go-oidc/v3/oidc.KeySet].
type KeySet interface {
	VerifySignature(ctx context.Context, jwt string) ([]byte, error)
}

type Authenticator struct {
	keySet KeySet
	opts   *Options
}

// Authenticate implements [authn.Authenticator].
func (a *Authenticator) Authenticate(w http.ResponseWriter, r *http.Request) (*authn.User, error) {
	rawToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || rawToken == "" {
		return nil, nil
	}

	tokenClaims, err := a.verify(r.Context(), rawToken)
	if err != nil {
		return nil, errors.Wrap(authn.ErrInvalidCredentials, err.Error())
	}

	return &authn.User{
		Username: tokenClaims.Username(),
		Subject:  tokenClaims.Subject,
		Provider: Provider,
		Roles:    tokenClaims.Roles(a.opts.RoleStrategy),
	}, nil
}

func (a *Authenticator) verify(ctx context.Context, rawToken string) (*claims, error) {
	payload, err := a.keySet.VerifySignature(ctx, rawToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signature")
	}

	var tokenClaims claims
	if err := json.Unmarshal(payload, &tokenClaims); err != nil {
		return nil, errors.Wrap(err, "malformed claims")
	}

	if !slices.Contains(a.opts.Issuers, tokenClaims.Issuer) {
		return nil, errors.Wrapf(ErrUntrustedIssuer, "issuer '%s'", tokenClaims.Issuer)
	}

	now := a.opts.Now()

	if expiry := tokenClaims.Expiry; expiry != nil && now.After(expiry.Time()) {
		return nil, errors.Wrapf(ErrTokenExpired, "expired at %s", expiry.Time().Format(time.RFC3339))
	}

	if notBefore := tokenClaims.NotBefore; notBefore != nil && now.Before(notBefore.Time()) {
		return nil, errors.Wrapf(ErrTokenNotYetValid, "not valid before %s", notBefore.Time().Format(time.RFC3339))
	}

	return &tokenClaims, nil
}

func NewAuthenticator(keySet KeySet, funcs ...OptionFunc) *Authenticator {
	return &Authenticator{
		keySet: keySet,
		opts:   NewOptions(funcs...),
	}
}

var _ authn.Authenticator = &Authenticator{}
