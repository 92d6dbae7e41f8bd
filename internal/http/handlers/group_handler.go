// Group HTTP handlers.
//
//   - POST  /groups       (create; the caller becomes ADMIN and creator)
//   - GET   /groups/{id}
//   - PATCH /groups/{id}  (group managers only)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-sports-backend/internal/services"
)

// CreateGroupRequest is the JSON payload for POST /groups.
type CreateGroupRequest struct {
	Name        string `json:"name"               example:"Futebol de domingo"`
	Description string `json:"description"        example:"Pelada semanal no parque"`
	ImageURL    string `json:"imageUrl,omitempty" example:"https://cdn.example.com/g/1.png"`
}

// UpdateGroupRequest is the JSON payload for PATCH /groups/{id}. Omitted
// fields are left unchanged.
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// CreateGroup godoc
// @ID          createGroup
// @Summary     Create a group
// @Description Creates a group and, in the same transaction, the caller's ADMIN creator membership.
// @Tags        Groups
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       body       body    handlers.CreateGroupRequest  true  "Group payload"
// @Success     201  {object}  domain.Group
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Router      /groups [post]
func (h *Handlers) CreateGroup(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	var req CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.groups.Create(c.Request.Context(), uid, services.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, g)
}

// GetGroup godoc
// @ID          getGroup
// @Summary     Get a group
// @Tags        Groups
// @Produce     json
// @Param       id   path      string  true  "Group ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Group
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse "Group not found"
// @Router      /groups/{id} [get]
func (h *Handlers) GetGroup(c *gin.Context) {
	g, err := h.groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}

// UpdateGroup godoc
// @ID          updateGroup
// @Summary     Update a group
// @Tags        Groups
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       id         path    string  true  "Group ID (UUID)"         format(uuid)
// @Param       body       body    handlers.UpdateGroupRequest  true  "Fields to change"
// @Success     200  {object}  domain.Group
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse "Not a group manager"
// @Failure     404  {object}  handlers.ErrorResponse "Group not found"
// @Router      /groups/{id} [patch]
func (h *Handlers) UpdateGroup(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	var req UpdateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.groups.Update(c.Request.Context(), uid, c.Param("id"), services.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}
