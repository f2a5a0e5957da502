package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/fabresse/roster/internal/core/model"
	"github.com/fabresse/roster/internal/core/port"
	httpCtx "github.com/fabresse/roster/internal/http/context"
	"github.com/pkg/errors"
)

type Member struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Owner       string    `json:"owner"`
	Sons        []string  `json:"sons"`
	DeletedDate *DateTime `json:"deletedDate"`
}

func fromMember(m model.Member) Member {
	sons := m.Sons()
	if sons == nil {
		sons = []string{}
	}

	member := Member{
		ID:    int64(m.ID()),
		Name:  m.Name(),
		Age:   m.Age(),
		Owner: m.Owner(),
		Sons:  sons,
	}

	if deletedDate := m.DeletedDate(); deletedDate != nil {
		d := DateTime(*deletedDate)
		member.DeletedDate = &d
	}

	return member
}

func (m Member) toModel() model.Member {
	return model.NewReadOnlyMember(model.MemberID(m.ID), m.Name, m.Age, m.Owner, m.Sons, m.DeletedDate.TimePtr())
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	memberID, err := getPathMemberID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	member, err := h.memberStore.GetMemberByID(ctx, memberID, user.Username())
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not get member", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	encodeResponse(ctx, w, fromMember(member))
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	query := r.URL.Query()
	page := getQueryPage(query, 0)
	size := getQuerySize(query, 10)
	sortBy, direction := getQuerySort(query)

	members, err := h.memberStore.QueryMembers(ctx, user.Username(), port.QueryMembersOptions{
		Page:      &page,
		Limit:     &size,
		SortBy:    sortBy,
		Direction: direction,
	})
	if err != nil {
		slog.ErrorContext(ctx, "could not query members", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := make([]Member, 0, len(members))
	for _, m := range members {
		res = append(res, fromMember(m))
	}

	encodeResponse(ctx, w, res)
}

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	var payload Member
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	member, err := h.memberStore.CreateMember(ctx, payload.toModel(), user.Username())
	if err != nil {
		slog.ErrorContext(ctx, "could not create member", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/members/%d", member.ID()))
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	memberID, err := getPathMemberID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var payload Member
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := h.memberStore.UpdateMember(ctx, memberID, payload.toModel(), user.Username()); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not update member", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	memberID, err := getPathMemberID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	deleted, err := h.memberStore.DeleteMember(ctx, memberID, user.Username())
	if err != nil {
		slog.ErrorContext(ctx, "could not delete member", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !deleted {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
