// Package services – JoinRequestService
//
// This file implements the join-request state machine. A request links a
// user and a group and is either a request to join (MadeBy USER) or an
// invite (MadeBy GROUP):
//
//	PENDING --accept--> APPROVED   (creates exactly one Membership)
//	PENDING --reject--> REJECTED
//	PENDING --cancel--> (row deleted)
//
// Who may perform an action depends on the origin; see authorize. Accepting
// updates the request conditionally on it still being PENDING and creates
// the membership in the same transaction, so an APPROVED request always has
// its membership and a duplicate accept cannot create a second one.
//
// Observability: public methods are OpenTelemetry-instrumented and every
// committed transition increments join_request_transitions_total.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/observability"
	"github.com/tbourn/go-sports-backend/internal/repo"
)

// Transition labels recorded on join_request_transitions_total.
const (
	transitionCreated   = "created"
	transitionApproved  = "approved"
	transitionRejected  = "rejected"
	transitionCancelled = "cancelled"
)

// joinAction is an operation on an existing request.
type joinAction int

const (
	actionAccept joinAction = iota
	actionReject
	actionCancel
)

// CreateJoinRequestInput is the payload of a new request or invite.
//
// For MadeBy USER, UserID may be empty and defaults to the actor; when set
// it must equal the actor. For MadeBy GROUP, UserID names the invited user.
type CreateJoinRequestInput struct {
	GroupID string
	UserID  string
	MadeBy  domain.MadeBy
}

// JoinRequestBuckets splits requests by resolution.
type JoinRequestBuckets struct {
	Pending  []domain.JoinRequest `json:"pending"`
	Resolved []domain.JoinRequest `json:"resolved"`
}

// JoinRequestListing partitions requests into those the viewer sent and
// those it received, each split into pending and resolved.
type JoinRequestListing struct {
	Sent     JoinRequestBuckets `json:"sent"`
	Received JoinRequestBuckets `json:"received"`
}

// JoinRequestService drives join requests and invites.
type JoinRequestService struct {
	DB          *gorm.DB
	Memberships *MembershipService

	// Now is the clock used for respondedAt; defaults to time.Now in UTC.
	Now func() time.Time
}

// NewJoinRequestService constructs a JoinRequestService.
func NewJoinRequestService(db *gorm.DB, memberships *MembershipService) *JoinRequestService {
	return &JoinRequestService{
		DB:          db,
		Memberships: memberships,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a PENDING request. It fails with ErrAlreadyMember when the
// user already belongs to the group and ErrJoinRequestExists when a pending
// request for the pair is already open.
func (s *JoinRequestService) Create(ctx context.Context, actorID string, in CreateJoinRequestInput) (*domain.JoinRequest, error) {
	tr := otel.Tracer("services/JoinRequestService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("group.id", in.GroupID),
			attribute.String("user.id", actorID),
			attribute.String("join_request.made_by", string(in.MadeBy)),
		),
	)
	defer span.End()

	actorID, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	groupID, err := parseID(in.GroupID)
	if err != nil {
		return nil, err
	}
	if !in.MadeBy.Valid() {
		return nil, ErrInvalidMadeBy
	}

	var userID string
	switch in.MadeBy {
	case domain.MadeByUser:
		userID = actorID
		if target := strings.TrimSpace(in.UserID); target != "" && target != actorID {
			return nil, ErrForbidden
		}
	case domain.MadeByGroup:
		if in.UserID == "" {
			return nil, ErrMissingTargetUser
		}
		if userID, err = parseUserID(in.UserID); err != nil {
			return nil, err
		}
	}

	r := &domain.JoinRequest{
		UserID:    userID,
		GroupID:   groupID,
		MadeBy:    in.MadeBy,
		CreatedBy: actorID,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetGroup(ctx, tx, groupID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if in.MadeBy == domain.MadeByGroup {
			if err := requireManager(ctx, tx, groupID, actorID); err != nil {
				return err
			}
		}

		member, err := repo.FindMembership(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		if member != nil {
			return ErrAlreadyMember
		}
		pending, err := repo.FindPendingJoinRequest(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrJoinRequestExists
		}

		if err := repo.CreateJoinRequest(ctx, tx, r); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrJoinRequestExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordJoinRequestTransition(transitionCreated)
	zerolog.Ctx(ctx).Debug().
		Str("join_request_id", r.ID).
		Str("made_by", string(r.MadeBy)).
		Msg("join request created")
	return r, nil
}

// Accept approves a PENDING request and creates the membership. The
// invited user accepts an invite; a group admin or the creator accepts a
// request to join.
func (s *JoinRequestService) Accept(ctx context.Context, actorID, id string) (*domain.Membership, error) {
	tr := otel.Tracer("services/JoinRequestService")
	ctx, span := tr.Start(ctx, "Accept",
		trace.WithAttributes(
			attribute.String("join_request.id", id),
			attribute.String("user.id", actorID),
		),
	)
	defer span.End()

	var membership *domain.Membership
	err := s.resolve(ctx, actorID, id, actionAccept, func(tx *gorm.DB, r *domain.JoinRequest) error {
		if err := s.markResolved(ctx, tx, r.ID, domain.JoinRequestApproved); err != nil {
			return err
		}
		m, err := s.Memberships.CreateTx(ctx, tx, r.UserID, r.GroupID, CreateMembershipInput{})
		membership = m
		return err
	})
	if err != nil {
		return nil, err
	}
	observability.RecordJoinRequestTransition(transitionApproved)
	return membership, nil
}

// Reject moves a PENDING request to REJECTED. The same actors as Accept may
// reject.
func (s *JoinRequestService) Reject(ctx context.Context, actorID, id string) error {
	tr := otel.Tracer("services/JoinRequestService")
	ctx, span := tr.Start(ctx, "Reject",
		trace.WithAttributes(
			attribute.String("join_request.id", id),
			attribute.String("user.id", actorID),
		),
	)
	defer span.End()

	err := s.resolve(ctx, actorID, id, actionReject, func(tx *gorm.DB, r *domain.JoinRequest) error {
		return s.markResolved(ctx, tx, r.ID, domain.JoinRequestRejected)
	})
	if err != nil {
		return err
	}
	observability.RecordJoinRequestTransition(transitionRejected)
	return nil
}

// Cancel deletes a PENDING request on behalf of its author: the user for a
// request to join, any group manager for an invite.
func (s *JoinRequestService) Cancel(ctx context.Context, actorID, id string) error {
	tr := otel.Tracer("services/JoinRequestService")
	ctx, span := tr.Start(ctx, "Cancel",
		trace.WithAttributes(
			attribute.String("join_request.id", id),
			attribute.String("user.id", actorID),
		),
	)
	defer span.End()

	err := s.resolve(ctx, actorID, id, actionCancel, func(tx *gorm.DB, r *domain.JoinRequest) error {
		err := repo.DeletePendingJoinRequest(ctx, tx, r.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrJoinRequestResolved
		}
		return err
	})
	if err != nil {
		return err
	}
	observability.RecordJoinRequestTransition(transitionCancelled)
	return nil
}

// Get returns a request by id.
func (s *JoinRequestService) Get(ctx context.Context, id string) (*domain.JoinRequest, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, err := repo.GetJoinRequest(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrJoinRequestNotFound
	}
	return r, err
}

// ListForUser partitions the requests involving userID: requests the user
// made are sent, invites the user got are received.
func (s *JoinRequestService) ListForUser(ctx context.Context, userID string) (JoinRequestListing, error) {
	userID, err := requireActor(userID)
	if err != nil {
		return JoinRequestListing{}, err
	}
	rs, err := repo.ListJoinRequestsByUser(ctx, s.DB, userID)
	if err != nil {
		return JoinRequestListing{}, err
	}
	return partition(rs, domain.MadeByUser), nil
}

// ListForGroup partitions the requests involving groupID from the group's
// side: invites are sent, requests to join are received.
func (s *JoinRequestService) ListForGroup(ctx context.Context, groupID string) (JoinRequestListing, error) {
	groupID, err := parseID(groupID)
	if err != nil {
		return JoinRequestListing{}, err
	}
	rs, err := repo.ListJoinRequestsByGroup(ctx, s.DB, groupID)
	if err != nil {
		return JoinRequestListing{}, err
	}
	return partition(rs, domain.MadeByGroup), nil
}

// resolve loads a PENDING request inside a transaction, authorizes the actor
// for act and runs apply. Missing or already resolved requests yield
// ErrJoinRequestNotFound.
func (s *JoinRequestService) resolve(ctx context.Context, actorID, id string, act joinAction, apply func(tx *gorm.DB, r *domain.JoinRequest) error) error {
	actorID, err := requireActor(actorID)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.GetJoinRequest(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrJoinRequestNotFound
		}
		if err != nil {
			return err
		}
		if r.Status != domain.JoinRequestPending {
			return ErrJoinRequestNotFound
		}
		if err := s.authorize(ctx, tx, r, actorID, act); err != nil {
			return err
		}
		return apply(tx, r)
	})
}

// authorize decides who may act on r. Every (origin, action) pair is
// handled explicitly.
func (s *JoinRequestService) authorize(ctx context.Context, tx *gorm.DB, r *domain.JoinRequest, actorID string, act joinAction) error {
	switch r.MadeBy {
	case domain.MadeByUser:
		switch act {
		case actionCancel:
			return requireSelf(r.UserID, actorID)
		case actionAccept, actionReject:
			return requireManager(ctx, tx, r.GroupID, actorID)
		}
	case domain.MadeByGroup:
		switch act {
		case actionCancel:
			return requireManager(ctx, tx, r.GroupID, actorID)
		case actionAccept, actionReject:
			return requireSelf(r.UserID, actorID)
		}
	}
	return ErrForbidden
}

// markResolved applies the terminal status only if the row is still
// PENDING; losing a race to another resolution yields ErrJoinRequestResolved.
func (s *JoinRequestService) markResolved(ctx context.Context, tx *gorm.DB, id string, status domain.JoinRequestStatus) error {
	err := repo.ResolveJoinRequest(ctx, tx, id, status, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return ErrJoinRequestResolved
	}
	return err
}

func (s *JoinRequestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func requireSelf(userID, actorID string) error {
	if userID != actorID {
		return ErrForbidden
	}
	return nil
}

// partition splits rs into sent (origin == sentBy) and received, each
// further split into pending and resolved. Slices are never nil.
func partition(rs []domain.JoinRequest, sentBy domain.MadeBy) JoinRequestListing {
	out := JoinRequestListing{
		Sent:     JoinRequestBuckets{Pending: []domain.JoinRequest{}, Resolved: []domain.JoinRequest{}},
		Received: JoinRequestBuckets{Pending: []domain.JoinRequest{}, Resolved: []domain.JoinRequest{}},
	}
	for _, r := range rs {
		b := &out.Received
		if r.MadeBy == sentBy {
			b = &out.Sent
		}
		if r.Status == domain.JoinRequestPending {
			b.Pending = append(b.Pending, r)
		} else {
			b.Resolved = append(b.Resolved, r)
		}
	}
	return out
}
