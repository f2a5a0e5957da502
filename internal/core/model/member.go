package model

import (
	"time"
)

type MemberID int64

type Member interface {
	ID() MemberID
	Name() string
	Age() int
	Owner() string
	Sons() []string
	DeletedDate() *time.Time
}

type ReadOnlyMember struct {
	id          MemberID
	name        string
	age         int
	owner       string
	sons        []string
	deletedDate *time.Time
}

// ID implements Member.
func (m *ReadOnlyMember) ID() MemberID {
	return m.id
}

// Name implements Member.
func (m *ReadOnlyMember) Name() string {
	return m.name
}

// Age implements Member.
func (m *ReadOnlyMember) Age() int {
	return m.age
}

// Owner implements Member.
func (m *ReadOnlyMember) Owner() string {
	return m.owner
}

// Sons implements Member.
func (m *ReadOnlyMember) Sons() []string {
	return m.sons
}

// DeletedDate implements Member.
func (m *ReadOnlyMember) DeletedDate() *time.Time {
	return m.deletedDate
}

func NewReadOnlyMember(id MemberID, name string, age int, owner string, sons []string, deletedDate *time.Time) *ReadOnlyMember {
	return &ReadOnlyMember{
		id:          id,
		name:        name,
		age:         age,
		owner:       owner,
		sons:        sons,
		deletedDate: deletedDate,
	}
}

var _ Member = &ReadOnlyMember{}
