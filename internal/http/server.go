package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	basePath := strings.TrimSuffix(s.opts.BaseURL, "/")

	for prefix, handler := range s.opts.Mounts {
		if basePath != "" {
			mux.Handle(basePath+prefix, http.StripPrefix(basePath, handler))
			continue
		}

		mux.Handle(prefix, handler)
	}

	var handler http.Handler = mux

	handler = sloghttp.New(slog.Default())(handler)

	handler = cors.New(cors.Options{
		AllowedOrigins:   s.opts.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Cache-Control"},
		AllowCredentials: true,
	}).Handler(handler)

	server := &http.Server{
		Addr:    s.opts.Address,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not shutdown server", slogx.Error(errors.WithStack(err)))
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func NewServer(funcs ...OptionFunc) *Server {
	return &Server{
		opts: NewOptions(funcs...),
	}
}
