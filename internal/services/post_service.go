package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/repo"
	"github.com/tbourn/go-sports-backend/internal/textutil"
)

// CreatePostInput is the payload of a new post. GroupID is optional; when
// set the author must be a member of that group.
type CreatePostInput struct {
	GroupID *string
	Content string
}

// PostService creates and reads posts. Counters start at zero and are only
// changed by InteractionService.
type PostService struct {
	DB *gorm.DB

	// ContentMaxRunes caps normalized post content (0 = unlimited).
	ContentMaxRunes int
}

// Create stores a post authored by actorID.
func (s *PostService) Create(ctx context.Context, actorID string, in CreatePostInput) (*domain.Post, error) {
	actorID, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	content := textutil.Normalize(in.Content)
	if content == "" {
		return nil, ErrEmptyPostContent
	}
	if textutil.TooLong(content, s.ContentMaxRunes) {
		return nil, ErrPostTooLong
	}

	p := &domain.Post{AuthorID: actorID, Content: content}
	if in.GroupID != nil && *in.GroupID != "" {
		groupID, err := parseID(*in.GroupID)
		if err != nil {
			return nil, err
		}
		p.GroupID = &groupID
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.GroupID != nil {
			if _, err := repo.GetGroup(ctx, tx, *p.GroupID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return ErrGroupNotFound
				}
				return err
			}
			m, err := repo.FindMembership(ctx, tx, actorID, *p.GroupID)
			if err != nil {
				return err
			}
			if m == nil {
				return ErrForbidden
			}
		}
		return repo.CreatePost(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a post with its current counters.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := repo.GetPost(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}
