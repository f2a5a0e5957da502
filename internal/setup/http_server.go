package setup

import (
	"context"

	"github.com/fabresse/roster/internal/config"
	"github.com/fabresse/roster/internal/http"
	"github.com/fabresse/roster/internal/http/handler/api"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	memberStore, err := getMemberStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure member store from config")
	}

	authnMiddleware, err := getAuthnMiddlewareFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure authentication from config")
	}

	server := http.NewServer(
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		http.WithMount("/", authnMiddleware(api.NewHandler(memberStore))),
	)

	return server, nil
}
