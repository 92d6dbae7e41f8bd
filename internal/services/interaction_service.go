// Package services – InteractionService
//
// InteractionService manages likes, attendance confirmations and comments
// on posts. Each interaction pairs a join-row change with a relative update
// of the matching denormalized counter on the post, and both writes commit
// in one transaction:
//
//	like / attend     insert row  + counter + 1   (duplicate -> conflict)
//	unlike / unattend delete row  + counter - 1   (absent    -> not found)
//	comment           insert row  + counter + 1   (no uniqueness)
//
// The unique indexes on (user_id, post_id) make a losing concurrent add fail
// with the same conflict as the in-transaction existence check, so counters never
// drift from the row counts.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include post/user identifiers.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/observability"
	"github.com/tbourn/go-sports-backend/internal/repo"
	"github.com/tbourn/go-sports-backend/internal/textutil"
)

// interaction describes one unique-per-user interaction kind.
type interaction struct {
	kind    string
	counter repo.Counter

	exists func(ctx context.Context, db *gorm.DB, userID, postID string) (bool, error)
	insert func(ctx context.Context, db *gorm.DB, userID, postID string) error
	remove func(ctx context.Context, db *gorm.DB, userID, postID string) error

	errExists  *Error
	errMissing *Error
}

var (
	likeInteraction = interaction{
		kind:    observability.KindLike,
		counter: repo.CounterLikes,
		exists: func(ctx context.Context, db *gorm.DB, userID, postID string) (bool, error) {
			l, err := repo.FindPostLike(ctx, db, userID, postID)
			return l != nil, err
		},
		insert: func(ctx context.Context, db *gorm.DB, userID, postID string) error {
			_, err := repo.CreatePostLike(ctx, db, userID, postID)
			return err
		},
		remove:     repo.DeletePostLike,
		errExists:  ErrAlreadyLiked,
		errMissing: ErrLikeNotFound,
	}

	attendanceInteraction = interaction{
		kind:    observability.KindAttendance,
		counter: repo.CounterAttendances,
		exists: func(ctx context.Context, db *gorm.DB, userID, postID string) (bool, error) {
			a, err := repo.FindAttendance(ctx, db, userID, postID)
			return a != nil, err
		},
		insert: func(ctx context.Context, db *gorm.DB, userID, postID string) error {
			_, err := repo.CreateAttendance(ctx, db, userID, postID)
			return err
		},
		remove:     repo.DeleteAttendance,
		errExists:  ErrAlreadyAttending,
		errMissing: ErrAttendanceNotFound,
	}
)

// CounterDrift reports, for one post, the stored counters next to the true
// row counts. Zero drift is the expected state.
type CounterDrift struct {
	PostID string                 `json:"post_id"`
	Stored repo.InteractionCounts `json:"stored"`
	Actual repo.InteractionCounts `json:"actual"`
}

// Consistent reports whether every stored counter matches its row count.
func (d CounterDrift) Consistent() bool { return d.Stored == d.Actual }

// InteractionService coordinates post interactions and their counters.
type InteractionService struct {
	DB *gorm.DB

	// CommentMaxRunes caps normalized comment content (0 = unlimited).
	CommentMaxRunes int
	// IdempotencyTTL is how long a comment Idempotency-Key is remembered.
	IdempotencyTTL time.Duration
}

// NewInteractionService constructs an InteractionService with a 2000-rune
// comment limit and a 24h idempotency window.
func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{DB: db, CommentMaxRunes: 2000, IdempotencyTTL: 24 * time.Hour}
}

// LikePost records that userID liked postID and increments likes_count.
func (s *InteractionService) LikePost(ctx context.Context, userID, postID string) error {
	return s.add(ctx, "LikePost", likeInteraction, userID, postID)
}

// UnlikePost removes the like and decrements likes_count.
func (s *InteractionService) UnlikePost(ctx context.Context, userID, postID string) error {
	return s.remove(ctx, "UnlikePost", likeInteraction, userID, postID)
}

// AttendPost confirms userID's presence and increments attendances_count.
func (s *InteractionService) AttendPost(ctx context.Context, userID, postID string) error {
	return s.add(ctx, "AttendPost", attendanceInteraction, userID, postID)
}

// UnattendPost withdraws the confirmation and decrements attendances_count.
func (s *InteractionService) UnattendPost(ctx context.Context, userID, postID string) error {
	return s.remove(ctx, "UnattendPost", attendanceInteraction, userID, postID)
}

func (s *InteractionService) add(ctx context.Context, op string, it interaction, userID, postID string) error {
	tr := otel.Tracer("services/InteractionService")
	ctx, span := tr.Start(ctx, op,
		trace.WithAttributes(
			attribute.String("post.id", postID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	userID, postID, err := validateInteraction(userID, postID)
	if err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePost(ctx, tx, postID); err != nil {
			return err
		}
		found, err := it.exists(ctx, tx, userID, postID)
		if err != nil {
			return err
		}
		if found {
			return it.errExists
		}
		if err := it.insert(ctx, tx, userID, postID); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return it.errExists
			}
			return err
		}
		return adjust(ctx, tx, postID, it.counter, +1)
	})
	if err != nil {
		return err
	}
	observability.RecordInteraction(it.kind, observability.OpAdd)
	return nil
}

func (s *InteractionService) remove(ctx context.Context, op string, it interaction, userID, postID string) error {
	tr := otel.Tracer("services/InteractionService")
	ctx, span := tr.Start(ctx, op,
		trace.WithAttributes(
			attribute.String("post.id", postID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	userID, postID, err := validateInteraction(userID, postID)
	if err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := it.exists(ctx, tx, userID, postID)
		if err != nil {
			return err
		}
		if !found {
			return it.errMissing
		}
		if err := it.remove(ctx, tx, userID, postID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return it.errMissing
			}
			return err
		}
		return adjust(ctx, tx, postID, it.counter, -1)
	})
	if err != nil {
		return err
	}
	observability.RecordInteraction(it.kind, observability.OpRemove)
	return nil
}

// AddComment stores a comment and increments comments_count.
func (s *InteractionService) AddComment(ctx context.Context, userID, postID, content string) (*domain.Comment, error) {
	c, _, err := s.AddCommentOnce(ctx, userID, postID, content, "")
	return c, err
}

// AddCommentOnce is AddComment with an optional idempotency key. When key
// was already used by userID on postID within IdempotencyTTL, the original
// comment is returned with replayed = true and nothing is written. The key
// is recorded in the same transaction as the comment.
func (s *InteractionService) AddCommentOnce(ctx context.Context, userID, postID, content, key string) (c *domain.Comment, replayed bool, err error) {
	tr := otel.Tracer("services/InteractionService")
	ctx, span := tr.Start(ctx, "AddComment",
		trace.WithAttributes(
			attribute.String("post.id", postID),
			attribute.String("user.id", userID),
			attribute.Bool("idempotent", key != ""),
		),
	)
	defer span.End()

	userID, postID, err = validateInteraction(userID, postID)
	if err != nil {
		return nil, false, err
	}
	content = textutil.Normalize(content)
	if content == "" {
		return nil, false, ErrEmptyComment
	}
	if textutil.TooLong(content, s.CommentMaxRunes) {
		return nil, false, ErrCommentTooLong
	}
	key = strings.TrimSpace(key)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if key != "" {
			prev, err := s.replay(ctx, tx, userID, postID, key)
			if err != nil {
				return err
			}
			if prev != nil {
				c, replayed = prev, true
				return nil
			}
		}

		if err := ensurePost(ctx, tx, postID); err != nil {
			return err
		}
		created, err := repo.CreateComment(ctx, tx, userID, postID, content)
		if err != nil {
			return err
		}
		if err := adjust(ctx, tx, postID, repo.CounterComments, +1); err != nil {
			return err
		}
		if key != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, userID, postID, key, created.ID, 201, s.ttl()); err != nil {
				return err
			}
		}
		c = created
		return nil
	})

	// A concurrent request with the same key committed first: serve its result.
	if errors.Is(err, repo.ErrDuplicate) && key != "" {
		prev, rerr := s.replay(ctx, s.DB.WithContext(ctx), userID, postID, key)
		if rerr == nil && prev != nil {
			return prev, true, nil
		}
	}
	if err != nil {
		return nil, false, err
	}
	if !replayed {
		observability.RecordInteraction(observability.KindComment, observability.OpAdd)
	}
	return c, replayed, nil
}

// ListComments returns up to limit comments of postID, oldest first.
func (s *InteractionService) ListComments(ctx context.Context, postID string, limit int) ([]domain.Comment, error) {
	postID, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	if err := ensurePost(ctx, s.DB, postID); err != nil {
		return nil, err
	}
	return repo.ListComments(ctx, s.DB, postID, limit)
}

// CounterDrift compares the stored counters of postID with the live row
// counts of its join tables, reading both in one transaction.
func (s *InteractionService) CounterDrift(ctx context.Context, postID string) (CounterDrift, error) {
	postID, err := parseID(postID)
	if err != nil {
		return CounterDrift{}, err
	}
	out := CounterDrift{PostID: postID}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repo.GetPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		out.Stored = repo.InteractionCounts{
			Likes:       p.LikesCount,
			Comments:    p.CommentsCount,
			Attendances: p.AttendancesCount,
		}
		out.Actual, err = repo.PostInteractionStats(ctx, tx, postID)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return CounterDrift{}, ErrPostNotFound
	}
	return out, err
}

// replay returns the comment recorded under key, or nil when the key is
// unused or expired.
func (s *InteractionService) replay(ctx context.Context, db *gorm.DB, userID, postID, key string) (*domain.Comment, error) {
	rec, err := repo.GetIdempotency(ctx, db, userID, postID, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := repo.GetComment(ctx, db, rec.ResourceID)
	if errors.Is(err, repo.ErrNotFound) {
		// The comment vanished with its post; treat the key as unused.
		return nil, nil
	}
	return c, err
}

func (s *InteractionService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}

func validateInteraction(userID, postID string) (string, string, error) {
	userID, err := requireActor(userID)
	if err != nil {
		return "", "", err
	}
	postID, err = parseID(postID)
	if err != nil {
		return "", "", err
	}
	return userID, postID, nil
}

func ensurePost(ctx context.Context, db *gorm.DB, postID string) error {
	if _, err := repo.GetPost(ctx, db, postID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// adjust moves one counter of one post. A failed increment means the post
// disappeared; a failed decrement means the counter was already zero while
// a row existed, which is drift and is reported as an internal error.
func adjust(ctx context.Context, tx *gorm.DB, postID string, counter repo.Counter, delta int) error {
	err := repo.AdjustPostCounter(ctx, tx, postID, counter, delta)
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if delta > 0 {
		return ErrPostNotFound
	}
	return fmt.Errorf("%s underflow on post %s", counter, postID)
}
