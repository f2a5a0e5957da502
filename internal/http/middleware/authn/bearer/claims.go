package bearer

import (
	"encoding/json"
	"time"

	"github.com/fabresse/roster/internal/core/model"
)

// RoleStrategy selects where granted roles are read from in the token's
// claim set.
type RoleStrategy string

const (
	// RoleStrategyRealm reads the shared realm_access claim.
	RoleStrategyRealm RoleStrategy = "realm"
	// RoleStrategyClient reads the resource_access entry of the token's
	// authorized party.
	RoleStrategyClient RoleStrategy = "client"
)

type claims struct {
	Issuer            string         `json:"iss"`
	Subject           string         `json:"sub"`
	Expiry            *unixTime      `json:"exp"`
	NotBefore         *unixTime      `json:"nbf"`
	PreferredUsername string         `json:"preferred_username"`
	AuthorizedParty   string         `json:"azp"`
	RealmAccess       roleClaim      `json:"realm_access"`
	ResourceAccess    resourceAccess `json:"resource_access"`
}

// Roles extracts the granted role names according to the given strategy and
// prefixes each with the role marker. A missing claim or a shape mismatch at
// any level yields an empty set, never an error.
func (c *claims) Roles(strategy RoleStrategy) []string {
	var names []string

	switch strategy {
	case RoleStrategyClient:
		names = c.ResourceAccess[c.AuthorizedParty].Roles
	default:
		names = c.RealmAccess.Roles
	}

	roles := make([]string, 0, len(names))
	for _, name := range names {
		roles = append(roles, model.RolePrefix+name)
	}

	return roles
}

// Username returns the principal name carried by the token, falling back to
// its subject.
func (c *claims) Username() string {
	if c.PreferredUsername != "" {
		return c.PreferredUsername
	}

	return c.Subject
}

type roleClaim struct {
	Roles []string
}

// UnmarshalJSON tolerates unexpected claim shapes: anything that is not a
// mapping holding a list of strings decodes to an empty role set.
func (c *roleClaim) UnmarshalJSON(data []byte) error {
	var value struct {
		Roles []string `json:"roles"`
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	c.Roles = value.Roles

	return nil
}

type resourceAccess map[string]roleClaim

func (a *resourceAccess) UnmarshalJSON(data []byte) error {
	var value map[string]roleClaim

	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	*a = value

	return nil
}

type unixTime time.Time

func (t *unixTime) UnmarshalJSON(data []byte) error {
	var seconds float64

	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}

	*t = unixTime(time.Unix(int64(seconds), 0))

	return nil
}

func (t *unixTime) Time() time.Time {
	if t == nil {
		return time.Time{}
	}

	return time.Time(*t)
}
