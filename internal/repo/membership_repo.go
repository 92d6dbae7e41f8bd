// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Membership model.
//
// Uniqueness of (user_id, group_id) is enforced by the unique index
// ux_memberships_user_group. CreateMembership reports a collision as
// ErrDuplicate; the service layer translates it into a conflict.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

// membershipOrder is the deterministic listing order shared by all list
// queries.
const membershipOrder = "created_at ASC, id ASC"

// ListMemberships returns every membership in a stable order.
func ListMemberships(ctx context.Context, db *gorm.DB) ([]domain.Membership, error) {
	var out []domain.Membership
	err := db.WithContext(ctx).Order(membershipOrder).Find(&out).Error
	return out, err
}

// GetMembership fetches a membership by id, or ErrNotFound.
func GetMembership(ctx context.Context, db *gorm.DB, id string) (*domain.Membership, error) {
	var m domain.Membership
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMembershipsByUser returns the memberships held by userID.
func ListMembershipsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Membership, error) {
	var out []domain.Membership
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(membershipOrder).
		Find(&out).Error
	return out, err
}

// ListMembershipsByGroup returns the memberships of groupID.
func ListMembershipsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Membership, error) {
	var out []domain.Membership
	err := db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order(membershipOrder).
		Find(&out).Error
	return out, err
}

// FindMembership is an existence check for (userID, groupID). It returns
// (nil, nil) when the user is not a member.
func FindMembership(ctx context.Context, db *gorm.DB, userID, groupID string) (*domain.Membership, error) {
	var m domain.Membership
	err := db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMembership inserts m, generating the id and timestamp when empty.
// A collision on (user_id, group_id) yields ErrDuplicate.
func CreateMembership(ctx context.Context, db *gorm.DB, m *domain.Membership) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return translateDuplicate(db.WithContext(ctx).Create(m).Error)
}

// UpdateMembership applies role and/or creator-flag changes. Nil arguments
// are left untouched. Returns ErrNotFound if no row matches id.
func UpdateMembership(ctx context.Context, db *gorm.DB, id string, role *domain.Role, isCreator *bool) error {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if role != nil {
		fields["role"] = *role
	}
	if isCreator != nil {
		fields["is_creator"] = *isCreator
	}
	res := db.WithContext(ctx).
		Model(&domain.Membership{}).
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

// DeleteMembership hard-deletes the membership. A second delete of the same
// id returns ErrNotFound.
func DeleteMembership(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Membership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
