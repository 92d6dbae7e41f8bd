package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/repo"
)

// CanManageGroup reports whether actorID may administer the group whose
// memberships are given: the actor needs a membership with role ADMIN or the
// creator flag. It has no side effects and never errors.
func CanManageGroup(memberships []domain.Membership, actorID string) bool {
	if actorID == "" {
		return false
	}
	for _, m := range memberships {
		if m.UserID != actorID {
			continue
		}
		if m.Role == domain.RoleAdmin || m.IsCreator {
			return true
		}
	}
	return false
}

// RequireGroupManager turns a negative CanManageGroup decision into
// ErrForbidden.
func RequireGroupManager(memberships []domain.Membership, actorID string) error {
	if !CanManageGroup(memberships, actorID) {
		return ErrForbidden
	}
	return nil
}

// requireManager loads the memberships of groupID through db (usually the
// caller's transaction) and evaluates the actor against them.
func requireManager(ctx context.Context, db *gorm.DB, groupID, actorID string) error {
	members, err := repo.ListMembershipsByGroup(ctx, db, groupID)
	if err != nil {
		return err
	}
	return RequireGroupManager(members, actorID)
}

// parseID validates a UUID path or body identifier.
func parseID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidID
	}
	return id, nil
}

// parseUserID validates an opaque user identifier supplied by the caller.
func parseUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 64 {
		return "", ErrInvalidID
	}
	return id, nil
}

// requireActor validates the authenticated user id.
func requireActor(actorID string) (string, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return "", ErrUnauthenticated
	}
	return actorID, nil
}
