package port

import (
	"context"

	"github.com/fabresse/roster/internal/core/model"
)

type SortField string

const (
	SortFieldID   SortField = "id"
	SortFieldName SortField = "name"
	SortFieldAge  SortField = "age"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type QueryMembersOptions struct {
	Page  *int
	Limit *int

	SortBy    SortField
	Direction SortDirection
}

// MemberStore is the owner-scoped persistence contract for members. Every
// operation is filtered or stamped by the caller's identity; a member that
// exists under another owner behaves as if it did not exist.
type MemberStore interface {
	// GetMemberByID returns the member with the given id if it belongs to
	// owner, ErrNotFound otherwise.
	GetMemberByID(ctx context.Context, id model.MemberID, owner string) (model.Member, error)

	// MemberExists reports whether the id/owner pair exists.
	MemberExists(ctx context.Context, id model.MemberID, owner string) (bool, error)

	// QueryMembers returns the owner's page of members, sorted by age
	// ascending unless options say otherwise.
	QueryMembers(ctx context.Context, owner string, opts QueryMembersOptions) ([]model.Member, error)

	// CreateMember persists a new member owned by owner. Any id or owner
	// carried by the given member is ignored.
	CreateMember(ctx context.Context, member model.Member, owner string) (model.Member, error)

	// UpdateMember replaces all fields except id and owner of the member
	// with the given id, if it belongs to owner.
	UpdateMember(ctx context.Context, id model.MemberID, member model.Member, owner string) (model.Member, error)

	// DeleteMember deletes the id/owner pair and reports whether a deletion
	// occurred.
	DeleteMember(ctx context.Context, id model.MemberID, owner string) (bool, error)
}
