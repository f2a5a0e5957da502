package config

type HTTP struct {
	BaseURL string `env:"BASE_URL,expand" envDefault:"/"`
	Address string `env:"ADDRESS,expand" envDefault:":8080"`
	CORS    CORS   `envPrefix:"CORS_"`
	Auth    Auth   `envPrefix:"AUTH_"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,expand" envSeparator:"," envDefault:"*"`
}

type Auth struct {
	Owner User `envPrefix:"OWNER_"`
	Guest User `envPrefix:"GUEST_"`
	OIDC  OIDC `envPrefix:"OIDC_"`
}

type User struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}

type OIDC struct {
	// JWKSURL is the issuer's published signing key set endpoint. Bearer
	// authentication is disabled when empty.
	JWKSURL string `env:"JWKS_URL,expand"`

	// Issuers is the allow-list of trusted issuer identifiers.
	Issuers []string `env:"ISSUERS,expand" envSeparator:","`

	// RolesClaim selects where granted roles are read from: "realm" for the
	// shared realm_access claim, "client" for the resource_access entry of
	// the token's authorized party.
	RolesClaim string `env:"ROLES_CLAIM,expand" envDefault:"realm"`
}
