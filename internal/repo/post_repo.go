// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Post
// model and its denormalized interaction counters.
//
// Counters are only adjusted with a single relative UPDATE scoped to one
// post row (likes_count = likes_count + ?), never read-modify-write, and
// callers run the adjustment in the same transaction as the join-row change.
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

// Counter names one of the denormalized counter columns on posts.
type Counter string

const (
	CounterLikes       Counter = "likes_count"
	CounterComments    Counter = "comments_count"
	CounterAttendances Counter = "attendances_count"
)

func (c Counter) valid() bool {
	switch c {
	case CounterLikes, CounterComments, CounterAttendances:
		return true
	}
	return false
}

// CreatePost inserts p with zeroed counters.
func CreatePost(ctx context.Context, db *gorm.DB, p *domain.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.LikesCount, p.CommentsCount, p.AttendancesCount = 0, 0, 0
	return db.WithContext(ctx).Create(p).Error
}

// GetPost fetches a post by id, or ErrNotFound.
func GetPost(ctx context.Context, db *gorm.DB, id string) (*domain.Post, error) {
	var p domain.Post
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// AdjustPostCounter adds delta (+1 or -1) to one counter of one post.
// Decrements never take a counter below zero: a decrement that would is
// treated as a missing row. Returns ErrNotFound when no row was updated.
func AdjustPostCounter(ctx context.Context, db *gorm.DB, postID string, counter Counter, delta int) error {
	if !counter.valid() {
		return fmt.Errorf("unknown counter %q", counter)
	}
	if delta == 0 {
		return nil
	}

	q := db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", postID)
	if delta < 0 {
		q = q.Where(fmt.Sprintf("%s >= ?", counter), -delta)
	}

	tx := q.UpdateColumn(string(counter), gorm.Expr(fmt.Sprintf("%s + ?", counter), delta))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
