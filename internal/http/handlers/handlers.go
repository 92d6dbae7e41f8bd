// Handler wiring and service contracts.
//
// Handlers are transport-thin: they bind input, pull the acting user from the
// request context, call application services, and translate results (and
// services.Error kinds) into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/http/middleware"
	"github.com/tbourn/go-sports-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// MembershipService is the membership store as consumed by HTTP handlers.
type MembershipService interface {
	FindAll(ctx context.Context) ([]domain.Membership, error)
	FindByID(ctx context.Context, id string) (*domain.Membership, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Membership, error)
	FindByGroupID(ctx context.Context, groupID string) ([]domain.Membership, error)
	// GroupMembershipStats returns the member count and latest update of a
	// group, used to build ETags.
	GroupMembershipStats(ctx context.Context, groupID string) (int64, *time.Time, error)
	Create(ctx context.Context, userID, groupID string, in services.CreateMembershipInput) (*domain.Membership, error)
	Update(ctx context.Context, id string, in services.UpdateMembershipInput) (*domain.Membership, error)
	Delete(ctx context.Context, id string) error
	// ChangeRole changes the role of membership id on behalf of a group manager.
	ChangeRole(ctx context.Context, actorID, id string, role domain.Role) (*domain.Membership, error)
	// Leave removes actorID's own membership in groupID.
	Leave(ctx context.Context, actorID, groupID string) error
}

// GroupService manages groups.
type GroupService interface {
	Create(ctx context.Context, actorID string, in services.CreateGroupInput) (*domain.Group, error)
	Get(ctx context.Context, id string) (*domain.Group, error)
	Update(ctx context.Context, actorID, id string, in services.UpdateGroupInput) (*domain.Group, error)
}

// JoinRequestService drives join requests and invites.
type JoinRequestService interface {
	Create(ctx context.Context, actorID string, in services.CreateJoinRequestInput) (*domain.JoinRequest, error)
	Accept(ctx context.Context, actorID, id string) (*domain.Membership, error)
	Reject(ctx context.Context, actorID, id string) error
	Cancel(ctx context.Context, actorID, id string) error
	Get(ctx context.Context, id string) (*domain.JoinRequest, error)
	ListForUser(ctx context.Context, userID string) (services.JoinRequestListing, error)
	ListForGroup(ctx context.Context, groupID string) (services.JoinRequestListing, error)
}

// InteractionService pairs post interactions with their counters.
type InteractionService interface {
	LikePost(ctx context.Context, userID, postID string) error
	UnlikePost(ctx context.Context, userID, postID string) error
	AttendPost(ctx context.Context, userID, postID string) error
	UnattendPost(ctx context.Context, userID, postID string) error
	AddComment(ctx context.Context, userID, postID, content string) (*domain.Comment, error)
	// AddCommentOnce is AddComment deduplicated by an Idempotency-Key.
	AddCommentOnce(ctx context.Context, userID, postID, content, key string) (*domain.Comment, bool, error)
	ListComments(ctx context.Context, postID string, limit int) ([]domain.Comment, error)
	CounterDrift(ctx context.Context, postID string) (services.CounterDrift, error)
}

// PostService creates and reads posts.
type PostService interface {
	Create(ctx context.Context, actorID string, in services.CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	members      MembershipService
	groups       GroupService
	joins        JoinRequestService
	interactions InteractionService
	posts        PostService
}

// New constructs a Handlers bound to the given services.
func New(members MembershipService, groups GroupService, joins JoinRequestService, interactions InteractionService, posts PostService) *Handlers {
	return &Handlers{
		members:      members,
		groups:       groups,
		joins:        joins,
		interactions: interactions,
		posts:        posts,
	}
}

// actor returns the authenticated user id set by middleware.Identity. When
// the request is anonymous it writes 401 and reports false.
func actor(c *gin.Context) (string, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, services.ErrUnauthenticated.Message)
		return "", false
	}
	return uid, true
}

// bindJSON binds the request body into dst, writing 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}
