// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// JoinRequest model.
//
// Only one PENDING request may exist per (user_id, group_id); the partial
// unique index ux_join_requests_pending (see AutoMigrate) enforces it and
// CreateJoinRequest reports a collision as ErrDuplicate.
//
// State changes are conditional on the row still being PENDING, so two
// concurrent resolutions of the same request cannot both apply.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

// CreateJoinRequest inserts r as PENDING, generating id and timestamp when
// empty. A second pending request for the same pair yields ErrDuplicate.
func CreateJoinRequest(ctx context.Context, db *gorm.DB, r *domain.JoinRequest) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Status = domain.JoinRequestPending
	return translateDuplicate(db.WithContext(ctx).Create(r).Error)
}

// GetJoinRequest fetches a request by id, or ErrNotFound.
func GetJoinRequest(ctx context.Context, db *gorm.DB, id string) (*domain.JoinRequest, error) {
	var r domain.JoinRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// FindPendingJoinRequest is an existence check for an open request between
// userID and groupID. It returns (nil, nil) when none exists.
func FindPendingJoinRequest(ctx context.Context, db *gorm.DB, userID, groupID string) (*domain.JoinRequest, error) {
	var r domain.JoinRequest
	err := db.WithContext(ctx).
		Where("user_id = ? AND group_id = ? AND status = ?", userID, groupID, domain.JoinRequestPending).
		Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ResolveJoinRequest moves a PENDING request to the terminal status. It
// returns ErrNotFound when the request is absent or no longer PENDING.
func ResolveJoinRequest(ctx context.Context, db *gorm.DB, id string, status domain.JoinRequestStatus, at time.Time) error {
	if !status.Terminal() {
		return fmt.Errorf("join request cannot be resolved to %q", status)
	}
	res := db.WithContext(ctx).
		Model(&domain.JoinRequest{}).
		Where("id = ? AND status = ?", id, domain.JoinRequestPending).
		Updates(map[string]any{
			"status":       status,
			"responded_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePendingJoinRequest removes a request that is still PENDING.
// It returns ErrNotFound when the request is absent or already resolved.
func DeletePendingJoinRequest(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND status = ?", id, domain.JoinRequestPending).
		Delete(&domain.JoinRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListJoinRequestsByUser returns every request involving userID, newest first.
func ListJoinRequestsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.JoinRequest, error) {
	var out []domain.JoinRequest
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&out).Error
	return out, err
}

// ListJoinRequestsByGroup returns every request involving groupID, newest first.
func ListJoinRequestsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.JoinRequest, error) {
	var out []domain.JoinRequest
	err := db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC, id ASC").
		Find(&out).Error
	return out, err
}
