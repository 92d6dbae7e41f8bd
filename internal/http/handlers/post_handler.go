// Post HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-sports-backend/internal/services"
)

// CreatePostRequest is the JSON payload for POST /posts.
type CreatePostRequest struct {
	// GroupID scopes the post to a group the caller belongs to.
	GroupID *string `json:"groupId,omitempty" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Content string  `json:"content"           example:"Jogo sábado às 9h, quem vem?"`
}

// CreatePost godoc
// @ID          createPost
// @Summary     Publish a post
// @Tags        Posts
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       body       body    handlers.CreatePostRequest  true  "Post payload"
// @Success     201  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse "Not a member of the group"
// @Failure     404  {object}  handlers.ErrorResponse "Group not found"
// @Router      /posts [post]
func (h *Handlers) CreatePost(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	var req CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.posts.Create(c.Request.Context(), uid, services.CreatePostInput{
		GroupID: req.GroupID,
		Content: req.Content,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetPost godoc
// @ID          getPost
// @Summary     Get a post with its counters
// @Tags        Posts
// @Produce     json
// @Param       postId  path  string  true  "Post ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse "Post not found"
// @Router      /posts/{postId} [get]
func (h *Handlers) GetPost(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
