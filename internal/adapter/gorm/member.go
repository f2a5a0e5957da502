package gorm

import (
	"time"

	"github.com/fabresse/roster/internal/core/model"
)

type Member struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string
	Age   int
	Owner string `gorm:"index"`

	Sons []*MemberSon `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;"`

	DeletedDate *time.Time
}

type MemberSon struct {
	ID uint `gorm:"primaryKey"`

	Member   *Member
	MemberID uint `gorm:"index"`

	// Position preserves the order of the list as submitted.
	Position int
	Name     string
}

type wrappedMember struct {
	m *Member
}

// ID implements [model.Member].
func (w *wrappedMember) ID() model.MemberID {
	return model.MemberID(w.m.ID)
}

// Name implements [model.Member].
func (w *wrappedMember) Name() string {
	return w.m.Name
}

// Age implements [model.Member].
func (w *wrappedMember) Age() int {
	return w.m.Age
}

// Owner implements [model.Member].
func (w *wrappedMember) Owner() string {
	return w.m.Owner
}

// Sons implements [model.Member].
func (w *wrappedMember) Sons() []string {
	sons := make([]string, 0, len(w.m.Sons))
	for _, s := range w.m.Sons {
		sons = append(sons, s.Name)
	}

	return sons
}

// DeletedDate implements [model.Member].
func (w *wrappedMember) DeletedDate() *time.Time {
	return w.m.DeletedDate
}

var _ model.Member = &wrappedMember{}

func fromMember(m model.Member) *Member {
	member := &Member{
		ID:          uint(m.ID()),
		Name:        m.Name(),
		Age:         m.Age(),
		Owner:       m.Owner(),
		Sons:        fromSons(m.Sons()),
		DeletedDate: m.DeletedDate(),
	}

	return member
}

func fromSons(names []string) []*MemberSon {
	sons := make([]*MemberSon, 0, len(names))
	for i, name := range names {
		sons = append(sons, &MemberSon{
			Position: i,
			Name:     name,
		})
	}

	return sons
}
