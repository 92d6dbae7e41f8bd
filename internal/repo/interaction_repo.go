// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the post
// interaction join tables: post_likes, attendances and comments.
//
// Likes and attendances are unique per (user_id, post_id), enforced by the
// ux_post_likes_user_post and ux_attendances_user_post indexes. Inserts that
// collide return ErrDuplicate. Deletes that match nothing return ErrNotFound.
//
// None of these functions touch the counters on posts; see AdjustPostCounter.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

// FindPostLike is an existence check; it returns (nil, nil) when userID has
// not liked postID.
func FindPostLike(ctx context.Context, db *gorm.DB, userID, postID string) (*domain.PostLike, error) {
	var l domain.PostLike
	err := db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreatePostLike inserts a like row.
func CreatePostLike(ctx context.Context, db *gorm.DB, userID, postID string) (*domain.PostLike, error) {
	l := &domain.PostLike{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, translateDuplicate(err)
	}
	return l, nil
}

// DeletePostLike removes the like of userID on postID.
func DeletePostLike(ctx context.Context, db *gorm.DB, userID, postID string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAttendance is an existence check; it returns (nil, nil) when userID
// has not confirmed attendance on postID.
func FindAttendance(ctx context.Context, db *gorm.DB, userID, postID string) (*domain.Attendance, error) {
	var a domain.Attendance
	err := db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAttendance inserts an attendance row.
func CreateAttendance(ctx context.Context, db *gorm.DB, userID, postID string) (*domain.Attendance, error) {
	a := &domain.Attendance{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, translateDuplicate(err)
	}
	return a, nil
}

// DeleteAttendance removes the attendance of userID on postID.
func DeleteAttendance(ctx context.Context, db *gorm.DB, userID, postID string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Attendance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateComment inserts a comment row.
func CreateComment(ctx context.Context, db *gorm.DB, authorID, postID, content string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		PostID:    postID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	return c, db.WithContext(ctx).Create(c).Error
}

// GetComment fetches a comment by id, or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComments returns comments ordered deterministically (CreatedAt ASC, ID ASC).
func ListComments(ctx context.Context, db *gorm.DB, postID string, limit int) ([]domain.Comment, error) {
	var out []domain.Comment
	q := db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
