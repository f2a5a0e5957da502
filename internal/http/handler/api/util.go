package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bornholm/go-x/slogx"
	"github.com/fabresse/roster/internal/core/model"
	"github.com/fabresse/roster/internal/core/port"
	"github.com/pkg/errors"
)

func getPathMemberID(r *http.Request) (model.MemberID, error) {
	raw := r.PathValue("memberID")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return model.MemberID(id), nil
}

func getQueryPage(query url.Values, defaultValue int) int {
	return getQueryInt(query, "page", defaultValue)
}

func getQuerySize(query url.Values, defaultValue int) int {
	return getQueryInt(query, "size", defaultValue)
}

func getQueryInt(query url.Values, name string, defaultValue int) int {
	raw := query.Get(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || value < 0 {
		return defaultValue
	}

	return int(value)
}

// getQuerySort parses a "field,direction" sort parameter, defaulting to age
// ascending.
func getQuerySort(query url.Values) (port.SortField, port.SortDirection) {
	sortBy := port.SortFieldAge
	direction := port.SortAsc

	raw := query.Get("sort")
	if raw == "" {
		return sortBy, direction
	}

	field, rawDirection, _ := strings.Cut(raw, ",")

	switch port.SortField(field) {
	case port.SortFieldID, port.SortFieldName, port.SortFieldAge:
		sortBy = port.SortField(field)
	}

	if strings.EqualFold(rawDirection, string(port.SortDesc)) {
		direction = port.SortDesc
	}

	return sortBy, direction
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, res any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}
