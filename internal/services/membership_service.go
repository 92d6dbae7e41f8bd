// Package services – MembershipService
//
// This file implements MembershipService, the owner of the membership
// relation (user × group × role × creator flag). Every check-then-write runs
// inside one transaction and the unique index on (user_id, group_id) backs the
// pre-check, so two racing creates for the same pair yield exactly one row
// and one ErrAlreadyMember.
//
// CreateTx lets other services (group creation, join-request approval) add a
// membership inside their own transaction.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/repo"
)

// MembershipRepo defines the repository contract required by
// MembershipService. Every method receives the handle to run on, so the same
// implementation serves plain calls and transactions.
type MembershipRepo interface {
	ListMemberships(ctx context.Context, db *gorm.DB) ([]domain.Membership, error)
	GetMembership(ctx context.Context, db *gorm.DB, id string) (*domain.Membership, error)
	ListMembershipsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Membership, error)
	ListMembershipsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Membership, error)

	// FindMembership returns (nil, nil) when the pair has no membership.
	FindMembership(ctx context.Context, db *gorm.DB, userID, groupID string) (*domain.Membership, error)

	// CreateMembership returns repo.ErrDuplicate on a (user, group) collision.
	CreateMembership(ctx context.Context, db *gorm.DB, m *domain.Membership) error
	UpdateMembership(ctx context.Context, db *gorm.DB, id string, role *domain.Role, isCreator *bool) error
	DeleteMembership(ctx context.Context, db *gorm.DB, id string) error

	// GetGroup is needed to reject memberships of unknown groups.
	GetGroup(ctx context.Context, db *gorm.DB, id string) (*domain.Group, error)
}

// CreateMembershipInput carries the optional overrides of a new membership.
// Nil fields take the defaults: role MEMBER, not creator.
type CreateMembershipInput struct {
	Role      *domain.Role
	IsCreator *bool
}

// UpdateMembershipInput is a partial update; nil fields are left untouched.
type UpdateMembershipInput struct {
	Role      *domain.Role
	IsCreator *bool
}

// MembershipService provides membership CRUD plus role management.
type MembershipService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the membership repository used by this service.
	Repo MembershipRepo
}

// NewMembershipService constructs a MembershipService.
func NewMembershipService(db *gorm.DB, r MembershipRepo) *MembershipService {
	return &MembershipService{DB: db, Repo: r}
}

// FindAll returns every membership ordered by creation time, then id.
func (s *MembershipService) FindAll(ctx context.Context) ([]domain.Membership, error) {
	return s.Repo.ListMemberships(ctx, s.DB)
}

// FindByID returns the membership or ErrMembershipNotFound.
func (s *MembershipService) FindByID(ctx context.Context, id string) (*domain.Membership, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m, err := s.Repo.GetMembership(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrMembershipNotFound
	}
	return m, err
}

// FindByUserID lists the memberships held by userID.
func (s *MembershipService) FindByUserID(ctx context.Context, userID string) ([]domain.Membership, error) {
	userID, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListMembershipsByUser(ctx, s.DB, userID)
}

// FindByGroupID lists the memberships of groupID.
func (s *MembershipService) FindByGroupID(ctx context.Context, groupID string) ([]domain.Membership, error) {
	groupID, err := parseID(groupID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListMembershipsByGroup(ctx, s.DB, groupID)
}

// GroupMembershipStats returns how many members groupID has and the latest
// updated_at among them (nil for an empty group).
func (s *MembershipService) GroupMembershipStats(ctx context.Context, groupID string) (int64, *time.Time, error) {
	groupID, err := parseID(groupID)
	if err != nil {
		return 0, nil, err
	}
	return repo.MembershipStats(ctx, s.DB, groupID)
}

// FindByUserAndGroup is an existence check: it returns (nil, nil) when the
// user is not a member of the group.
func (s *MembershipService) FindByUserAndGroup(ctx context.Context, userID, groupID string) (*domain.Membership, error) {
	userID, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if groupID, err = parseID(groupID); err != nil {
		return nil, err
	}
	return s.Repo.FindMembership(ctx, s.DB, userID, groupID)
}

// Create adds userID to groupID in its own transaction.
func (s *MembershipService) Create(ctx context.Context, userID, groupID string, in CreateMembershipInput) (*domain.Membership, error) {
	var out *domain.Membership
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.CreateTx(ctx, tx, userID, groupID, in)
		out = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTx adds userID to groupID using tx. The group must exist and the
// pair must not already have a membership; a duplicate detected by the
// existence check or by the unique index yields ErrAlreadyMember.
func (s *MembershipService) CreateTx(ctx context.Context, tx *gorm.DB, userID, groupID string, in CreateMembershipInput) (*domain.Membership, error) {
	userID, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if groupID, err = parseID(groupID); err != nil {
		return nil, err
	}

	m := &domain.Membership{UserID: userID, GroupID: groupID, Role: domain.RoleMember}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, ErrInvalidRole
		}
		m.Role = *in.Role
	}
	if in.IsCreator != nil {
		m.IsCreator = *in.IsCreator
	}

	if _, err := s.Repo.GetGroup(ctx, tx, groupID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	existing, err := s.Repo.FindMembership(ctx, tx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	if err := s.Repo.CreateMembership(ctx, tx, m); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("membership_id", m.ID).
		Str("group_id", groupID).
		Str("user_id", userID).
		Str("role", string(m.Role)).
		Msg("membership created")
	return m, nil
}

// Update applies a role and/or creator-flag change. A creator membership
// keeps its creator flag and the ADMIN role; a patch that would clear either
// fails with ErrCreatorMembership.
func (s *MembershipService) Update(ctx context.Context, id string, in UpdateMembershipInput) (*domain.Membership, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var out *domain.Membership
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.Repo.GetMembership(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.IsCreator && demotesCreator(in) {
			return ErrCreatorMembership
		}
		if err := s.Repo.UpdateMembership(ctx, tx, id, in.Role, in.IsCreator); err != nil {
			return err
		}
		m, err := s.Repo.GetMembership(ctx, tx, id)
		out = m
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func demotesCreator(in UpdateMembershipInput) bool {
	return (in.IsCreator != nil && !*in.IsCreator) || (in.Role != nil && *in.Role != domain.RoleAdmin)
}

// Delete removes a membership. A second delete of the same id fails with
// ErrMembershipNotFound. The creator's membership cannot be removed here.
func (s *MembershipService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.Repo.GetMembership(ctx, tx, id)
		if err != nil {
			return err
		}
		if m.IsCreator {
			return ErrCreatorMembership
		}
		return s.Repo.DeleteMembership(ctx, tx, id)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrMembershipNotFound
	}
	return err
}

// ChangeRole sets the role of membership id on behalf of actorID, who must
// be an admin or the creator of the membership's group. The creator cannot
// be demoted.
func (s *MembershipService) ChangeRole(ctx context.Context, actorID, id string, role domain.Role) (*domain.Membership, error) {
	actorID, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	if id, err = parseID(id); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var out *domain.Membership
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.Repo.GetMembership(ctx, tx, id)
		if err != nil {
			return err
		}
		members, err := s.Repo.ListMembershipsByGroup(ctx, tx, m.GroupID)
		if err != nil {
			return err
		}
		if err := RequireGroupManager(members, actorID); err != nil {
			return err
		}
		if m.IsCreator && role != domain.RoleAdmin {
			return ErrCreatorMembership
		}
		if err := s.Repo.UpdateMembership(ctx, tx, id, &role, nil); err != nil {
			return err
		}
		m.Role = role
		out = m
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Leave removes actorID's own membership in groupID. The creator cannot
// leave their group.
func (s *MembershipService) Leave(ctx context.Context, actorID, groupID string) error {
	actorID, err := requireActor(actorID)
	if err != nil {
		return err
	}
	if groupID, err = parseID(groupID); err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.Repo.FindMembership(ctx, tx, actorID, groupID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrMembershipNotFound
		}
		if m.IsCreator {
			return ErrCreatorMembership
		}
		return s.Repo.DeleteMembership(ctx, tx, m.ID)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrMembershipNotFound
	}
	return err
}
