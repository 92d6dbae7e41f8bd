// Post interaction HTTP handlers.
//
// This file exposes the endpoints that change a post's denormalized counters:
//   - POST/DELETE /posts/{postId}/like
//   - POST/DELETE /posts/{postId}/attendance
//   - POST        /posts/{postId}/comments   (Idempotency-Key aware)
//   - GET         /posts/{postId}/comments
//   - GET         /posts/{postId}/counters   (stored vs actual counts)
//
// Every mutation runs its existence check, row change and counter update as
// one transaction in InteractionService; handlers only bind and translate.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/http/middleware"
	"github.com/tbourn/go-sports-backend/internal/services"
	"github.com/tbourn/go-sports-backend/internal/utils"
)

const (
	defaultCommentLimit = 50
	maxCommentLimit     = 200

	// headerReplayed marks a response served from a stored idempotent result.
	headerReplayed = "Idempotency-Replayed"
)

// AddCommentRequest is the JSON payload for POST /posts/{postId}/comments.
type AddCommentRequest struct {
	// Content is normalized (NFC, collapsed whitespace) and must be non-empty.
	Content string `json:"content" example:"Conta comigo!"`
}

// ListCommentsResponse wraps a page of comments.
type ListCommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

// CounterDriftResponse reports a post's stored counters next to the live
// row counts of its join tables.
type CounterDriftResponse struct {
	services.CounterDrift
	Consistent bool `json:"consistent"`
}

// interact runs a no-body, authenticated counter mutation on :postId.
func (h *Handlers) interact(c *gin.Context, op func(*gin.Context, string, string) error) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	if err := op(c, uid, c.Param("postId")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// LikePost godoc
// @ID          likePost
// @Summary     Like a post
// @Tags        Interactions
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       postId     path    string  true  "Post ID (UUID)"          format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Post not found"
// @Failure     409  {object} handlers.ErrorResponse "Already liked"
// @Router      /posts/{postId}/like [post]
func (h *Handlers) LikePost(c *gin.Context) {
	h.interact(c, func(c *gin.Context, uid, postID string) error {
		return h.interactions.LikePost(c.Request.Context(), uid, postID)
	})
}

// UnlikePost godoc
// @ID          unlikePost
// @Summary     Remove a like
// @Tags        Interactions
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       postId     path    string  true  "Post ID (UUID)"          format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Like not found"
// @Router      /posts/{postId}/like [delete]
func (h *Handlers) UnlikePost(c *gin.Context) {
	h.interact(c, func(c *gin.Context, uid, postID string) error {
		return h.interactions.UnlikePost(c.Request.Context(), uid, postID)
	})
}

// AttendPost godoc
// @ID          attendPost
// @Summary     Confirm attendance
// @Tags        Interactions
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       postId     path    string  true  "Post ID (UUID)"          format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Post not found"
// @Failure     409  {object} handlers.ErrorResponse "Already attending"
// @Router      /posts/{postId}/attendance [post]
func (h *Handlers) AttendPost(c *gin.Context) {
	h.interact(c, func(c *gin.Context, uid, postID string) error {
		return h.interactions.AttendPost(c.Request.Context(), uid, postID)
	})
}

// UnattendPost godoc
// @ID          unattendPost
// @Summary     Withdraw attendance
// @Tags        Interactions
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       postId     path    string  true  "Post ID (UUID)"          format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Attendance not found"
// @Router      /posts/{postId}/attendance [delete]
func (h *Handlers) UnattendPost(c *gin.Context) {
	h.interact(c, func(c *gin.Context, uid, postID string) error {
		return h.interactions.UnattendPost(c.Request.Context(), uid, postID)
	})
}

// AddComment godoc
// @ID          addComment
// @Summary     Comment on a post
// @Description Creates a comment and increments the post's comment counter. With an Idempotency-Key, a retry returns the original comment and sets Idempotency-Replayed: true.
// @Tags        Interactions
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  true   "Authenticated user id"  example(user123)
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       postId           path    string  true   "Post ID (UUID)"  format(uuid)
// @Param       body             body    handlers.AddCommentRequest  true  "Comment payload"
// @Success     201  {object}  domain.Comment
// @Header      201  {string}  Idempotency-Replayed  "true when served from a previous request"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Router      /posts/{postId}/comments [post]
func (h *Handlers) AddComment(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	var req AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	postID := c.Param("postId")

	key, hasKey := middleware.GetIdempotencyKey(c)
	if !hasKey {
		cm, err := h.interactions.AddComment(ctx, uid, postID, req.Content)
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, http.StatusCreated, cm)
		return
	}

	cm, replayed, err := h.interactions.AddCommentOnce(ctx, uid, postID, req.Content, key)
	if err != nil {
		failErr(c, err)
		return
	}
	if replayed {
		c.Header(headerReplayed, "true")
	}
	ok(c, http.StatusCreated, cm)
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments on a post
// @Description Oldest first.
// @Tags        Interactions
// @Produce     json
// @Param       postId  path   string  true   "Post ID (UUID)"  format(uuid)
// @Param       limit   query  int     false  "Max comments"    minimum(1) maximum(200) default(50)
// @Success     200  {object}  handlers.ListCommentsResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Router      /posts/{postId}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	limit := utils.ClampLimit(c.Query("limit"), defaultCommentLimit, maxCommentLimit)
	cs, err := h.interactions.ListComments(c.Request.Context(), c.Param("postId"), limit)
	if err != nil {
		failErr(c, err)
		return
	}
	if cs == nil {
		cs = []domain.Comment{}
	}
	ok(c, http.StatusOK, ListCommentsResponse{Comments: cs})
}

// GetCounterDrift godoc
// @ID          getCounterDrift
// @Summary     Compare a post's counters with its rows
// @Description Recomputes like, comment and attendance counts from the join tables and reports them next to the stored counters.
// @Tags        Interactions
// @Produce     json
// @Param       postId  path  string  true  "Post ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.CounterDriftResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Router      /posts/{postId}/counters [get]
func (h *Handlers) GetCounterDrift(c *gin.Context) {
	d, err := h.interactions.CounterDrift(c.Request.Context(), c.Param("postId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CounterDriftResponse{CounterDrift: d, Consistent: d.Consistent()})
}
