// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Group model.
//
// Functions:
//
//   - CreateGroup(ctx, db, g) -> error
//     Inserts a new Group row. ID and timestamps are filled when empty.
//
//   - GetGroup(ctx, db, id) -> *domain.Group, error
//     Fetches a single group, or ErrNotFound if missing.
//
//   - UpdateGroup(ctx, db, id, fields) -> error
//     Applies a column map to a group. Returns ErrNotFound if absent.
//
// Usage:
//
//	// Inside a service transaction
//	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
//	    if err := repo.CreateGroup(ctx, tx, g); err != nil {
//	        return err
//	    }
//	    return repo.CreateMembership(ctx, tx, creator)
//	})
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

// CreateGroup inserts g. A UUID is generated when g.ID is empty and
// CreatedAt is set to UTC now when zero.
func CreateGroup(ctx context.Context, db *gorm.DB, g *domain.Group) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(g).Error
}

// GetGroup fetches a group by id. If the record does not exist, it returns
// ErrNotFound.
func GetGroup(ctx context.Context, db *gorm.DB, id string) (*domain.Group, error) {
	var g domain.Group
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGroup applies fields (column name → value) to the group identified
// by id. If no rows are affected, it returns ErrNotFound.
func UpdateGroup(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Group{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
