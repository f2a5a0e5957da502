package api

import (
	"net/http"

	"github.com/fabresse/roster/internal/core/model"
	"github.com/fabresse/roster/internal/core/port"
	"github.com/fabresse/roster/internal/http/middleware/authz"
)

type Handler struct {
	memberStore port.MemberStore
	mux         *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(memberStore port.MemberStore) *Handler {
	h := &Handler{
		memberStore: memberStore,
		mux:         &http.ServeMux{},
	}

	assertOwner := authz.Middleware(authz.Has(model.RoleOwner))

	h.mux.Handle("GET /members", assertOwner(http.HandlerFunc(h.handleListMembers)))
	h.mux.Handle("POST /members", assertOwner(http.HandlerFunc(h.handleCreateMember)))
	h.mux.Handle("GET /members/{memberID}", assertOwner(http.HandlerFunc(h.handleGetMember)))
	h.mux.Handle("PUT /members/{memberID}", assertOwner(http.HandlerFunc(h.handleUpdateMember)))
	h.mux.Handle("DELETE /members/{memberID}", assertOwner(http.HandlerFunc(h.handleDeleteMember)))

	return h
}

var _ http.Handler = &Handler{}
