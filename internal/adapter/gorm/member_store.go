package gorm

import (
	"context"

	"github.com/fabresse/roster/internal/core/model"
	"github.com/fabresse/roster/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var sortColumns = map[port.SortField]string{
	port.SortFieldID:   "id",
	port.SortFieldName: "name",
	port.SortFieldAge:  "age",
}

// GetMemberByID implements port.MemberStore.
func (s *Store) GetMemberByID(ctx context.Context, id model.MemberID, owner string) (model.Member, error) {
	var member Member

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := preloadSons(db).
			Where("id = ? AND owner = ?", int64(id), owner).
			First(&member).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedMember{&member}, nil
}

// MemberExists implements port.MemberStore.
func (s *Store) MemberExists(ctx context.Context, id model.MemberID, owner string) (bool, error) {
	var count int64

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Model(&Member{}).
			Where("id = ? AND owner = ?", int64(id), owner).
			Count(&count).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return count > 0, nil
}

// QueryMembers implements port.MemberStore.
func (s *Store) QueryMembers(ctx context.Context, owner string, opts port.QueryMembersOptions) ([]model.Member, error) {
	var members []*Member

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := preloadSons(db).Where("owner = ?", owner)

		column, exists := sortColumns[opts.SortBy]
		if !exists {
			column = sortColumns[port.SortFieldAge]
		}

		order := column + " ASC"
		if opts.Direction == port.SortDesc {
			order = column + " DESC"
		}

		query = query.Order(order)

		if opts.Page != nil {
			limit := 10
			if opts.Limit != nil {
				limit = *opts.Limit
			}
			query = query.Offset(*opts.Page * limit)
		}

		if opts.Limit != nil {
			query = query.Limit(*opts.Limit)
		}

		if err := query.Find(&members).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedMembers := make([]model.Member, 0, len(members))
	for _, m := range members {
		wrappedMembers = append(wrappedMembers, &wrappedMember{m})
	}

	return wrappedMembers, nil
}

// CreateMember implements port.MemberStore.
func (s *Store) CreateMember(ctx context.Context, member model.Member, owner string) (model.Member, error) {
	created := fromMember(member)

	// A fresh id is assigned by the store and the owner comes from the
	// authenticated identity, never from the payload.
	created.ID = 0
	created.Owner = owner

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(created).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedMember{created}, nil
}

// UpdateMember implements port.MemberStore.
func (s *Store) UpdateMember(ctx context.Context, id model.MemberID, member model.Member, owner string) (model.Member, error) {
	var updated Member

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Where("id = ? AND owner = ?", int64(id), owner).First(&updated).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		updated.Name = member.Name()
		updated.Age = member.Age()
		updated.DeletedDate = member.DeletedDate()

		if err := db.Omit("Sons").Save(&updated).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Delete(&MemberSon{}, "member_id = ?", updated.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		updated.Sons = fromSons(member.Sons())
		for _, son := range updated.Sons {
			son.MemberID = updated.ID
			if err := db.Create(son).Error; err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedMember{&updated}, nil
}

// DeleteMember implements port.MemberStore.
func (s *Store) DeleteMember(ctx context.Context, id model.MemberID, owner string) (bool, error) {
	var deleted bool

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Delete(&Member{}, "id = ? AND owner = ?", int64(id), owner)
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		deleted = result.RowsAffected > 0

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return deleted, nil
}

func preloadSons(db *gorm.DB) *gorm.DB {
	return db.Preload("Sons", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

var _ port.MemberStore = &Store{}
