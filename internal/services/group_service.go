// Package services – GroupService
//
// GroupService creates and edits groups. Creating a group also creates the
// creator's membership (role ADMIN, creator flag set) in the same
// transaction, so a group never exists without a manager. Metadata edits
// are gated by the permission evaluator.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/repo"
	"github.com/tbourn/go-sports-backend/internal/textutil"
)

// CreateGroupInput is the payload of a new group.
type CreateGroupInput struct {
	Name        string
	Description string
	ImageURL    string
}

// UpdateGroupInput is a partial metadata update; nil fields are untouched.
type UpdateGroupInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// GroupService provides group creation, lookup and metadata edits.
type GroupService struct {
	DB          *gorm.DB
	Memberships *MembershipService

	// NameMaxRunes caps normalized group names.
	NameMaxRunes int
}

// NewGroupService constructs a GroupService with an 80-rune name limit.
func NewGroupService(db *gorm.DB, memberships *MembershipService) *GroupService {
	return &GroupService{DB: db, Memberships: memberships, NameMaxRunes: 80}
}

// Create inserts a group owned by actorID together with the creator's
// membership.
func (s *GroupService) Create(ctx context.Context, actorID string, in CreateGroupInput) (*domain.Group, error) {
	actorID, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	name, err := s.normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	g := &domain.Group{
		Name:        name,
		Description: textutil.Normalize(in.Description),
		ImageURL:    in.ImageURL,
		CreatorID:   actorID,
	}
	admin, creator := domain.RoleAdmin, true
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateGroup(ctx, tx, g); err != nil {
			return err
		}
		_, err := s.Memberships.CreateTx(ctx, tx, actorID, g.ID, CreateMembershipInput{Role: &admin, IsCreator: &creator})
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Get returns the group or ErrGroupNotFound.
func (s *GroupService) Get(ctx context.Context, id string) (*domain.Group, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	g, err := repo.GetGroup(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	return g, err
}

// Update edits group metadata on behalf of actorID, who must be an admin or
// the creator of the group.
func (s *GroupService) Update(ctx context.Context, actorID, id string, in UpdateGroupInput) (*domain.Group, error) {
	actorID, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	if id, err = parseID(id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		name, err := s.normalizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = textutil.Normalize(*in.Description)
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}

	var out *domain.Group
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetGroup(ctx, tx, id); err != nil {
			return err
		}
		if err := requireManager(ctx, tx, id, actorID); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := repo.UpdateGroup(ctx, tx, id, fields); err != nil {
				return err
			}
		}
		g, err := repo.GetGroup(ctx, tx, id)
		out = g
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GroupService) normalizeName(name string) (string, error) {
	name = textutil.Normalize(name)
	if name == "" {
		return "", ErrEmptyGroupName
	}
	if textutil.TooLong(name, s.NameMaxRunes) {
		return "", ErrGroupNameTooLong
	}
	return name, nil
}
