// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer and for
// verifying that post counters agree with their join tables.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

// MembershipStats returns aggregate metadata for a group's memberships: the
// total number of rows and the maximum UpdatedAt timestamp among those rows.
//
// When the group has no members, the returned count is 0 and maxUpdatedAt
// is nil.
func MembershipStats(ctx context.Context, db *gorm.DB, groupID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Membership{}).Where("group_id = ?", groupID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// InteractionCounts holds the true number of join-table rows for one post.
type InteractionCounts struct {
	Likes       int64 `json:"likes"`
	Comments    int64 `json:"comments"`
	Attendances int64 `json:"attendances"`
}

// PostInteractionStats counts the live post_likes, comments and attendances
// rows of postID. It reads the join tables directly and ignores the
// denormalized counters on posts.
func PostInteractionStats(ctx context.Context, db *gorm.DB, postID string) (InteractionCounts, error) {
	var out InteractionCounts
	db = db.WithContext(ctx)
	if err := db.Model(&domain.PostLike{}).Where("post_id = ?", postID).Count(&out.Likes).Error; err != nil {
		return InteractionCounts{}, err
	}
	if err := db.Model(&domain.Comment{}).Where("post_id = ?", postID).Count(&out.Comments).Error; err != nil {
		return InteractionCounts{}, err
	}
	if err := db.Model(&domain.Attendance{}).Where("post_id = ?", postID).Count(&out.Attendances).Error; err != nil {
		return InteractionCounts{}, err
	}
	return out, nil
}
