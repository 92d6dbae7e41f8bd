// Membership HTTP handlers.
//
// This file exposes REST endpoints for the membership store:
//   - GET    /member                  (list all)
//   - GET    /member/{id}             (get one)
//   - GET    /member/user/{id}        (memberships of a user)
//   - GET    /member/group/{id}       (members of a group, ETag support)
//   - POST   /member                  (create)
//   - PATCH  /member/{id}             (update role / creator flag)
//   - DELETE /member/{id}             (delete)
//   - PATCH  /member/{id}/role        (role change by a group manager)
//   - DELETE /groups/{id}/members/me  (leave a group)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/services"
)

//
// DTOs
//

// CreateMembershipRequest is the JSON payload for POST /member.
type CreateMembershipRequest struct {
	UserID  string `json:"userId"  example:"user123"`
	GroupID string `json:"groupId" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Role defaults to MEMBER.
	Role *domain.Role `json:"role,omitempty" example:"MEMBER"`
	// IsCreator defaults to false.
	IsCreator *bool `json:"isCreator,omitempty" example:"false"`
}

// UpdateMembershipRequest is the JSON payload for PATCH /member/{id}.
type UpdateMembershipRequest struct {
	Role      *domain.Role `json:"role,omitempty" example:"ADMIN"`
	IsCreator *bool        `json:"isCreator,omitempty"`
}

// ChangeRoleRequest is the JSON payload for PATCH /member/{id}/role.
type ChangeRoleRequest struct {
	Role domain.Role `json:"role" example:"ADMIN"`
}

//
// Handlers
//

// ListMemberships godoc
// @ID          listMemberships
// @Summary     List all memberships
// @Tags        Memberships
// @Produce     json
// @Success     200  {array}   domain.Membership
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /member [get]
func (h *Handlers) ListMemberships(c *gin.Context) {
	ms, err := h.members.FindAll(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ms)
}

// GetMembership godoc
// @ID          getMembership
// @Summary     Get a membership
// @Tags        Memberships
// @Produce     json
// @Param       id   path      string  true  "Membership ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Membership
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse "Membership not found"
// @Router      /member/{id} [get]
func (h *Handlers) GetMembership(c *gin.Context) {
	m, err := h.members.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// ListUserMemberships godoc
// @ID          listUserMemberships
// @Summary     List the memberships of a user
// @Tags        Memberships
// @Produce     json
// @Param       id   path      string  true  "User ID"  example(user123)
// @Success     200  {array}   domain.Membership
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Router      /member/user/{id} [get]
func (h *Handlers) ListUserMemberships(c *gin.Context) {
	ms, err := h.members.FindByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ms)
}

// ListGroupMemberships godoc
// @ID          listGroupMemberships
// @Summary     List the members of a group
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Memberships
// @Produce     json
// @Param       id             path    string  true  "Group ID (UUID)"             format(uuid)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"members:abc:2:1700000000\")
// @Success     200  {array}   domain.Membership
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Router      /member/group/{id} [get]
func (h *Handlers) ListGroupMemberships(c *gin.Context) {
	ctx := c.Request.Context()
	groupID := c.Param("id")
	if _, err := uuid.Parse(groupID); err != nil {
		failErr(c, services.ErrInvalidID)
		return
	}

	// ETag pre-check; a stats failure just skips the 304 path.
	if count, maxTS, err := h.members.GroupMembershipStats(ctx, groupID); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		if notModified(c, fmt.Sprintf(`W/"members:%s:%d:%d"`, groupID, count, ts)) {
			return
		}
	}

	ms, err := h.members.FindByGroupID(ctx, groupID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ms)
}

// CreateMembership godoc
// @ID          createMembership
// @Summary     Add a user to a group
// @Description Creates a membership with role MEMBER unless overridden. Fails with 409 when the user already belongs to the group.
// @Tags        Memberships
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateMembershipRequest  true  "Membership payload"
// @Success     201   {object}  domain.Membership
// @Failure     400   {object}  handlers.ErrorResponse "Bad request"
// @Failure     404   {object}  handlers.ErrorResponse "Group not found"
// @Failure     409   {object}  handlers.ErrorResponse "Already a member"
// @Router      /member [post]
func (h *Handlers) CreateMembership(c *gin.Context) {
	var req CreateMembershipRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.members.Create(c.Request.Context(), req.UserID, req.GroupID, services.CreateMembershipInput{
		Role:      req.Role,
		IsCreator: req.IsCreator,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// UpdateMembership godoc
// @ID          updateMembership
// @Summary     Update a membership
// @Tags        Memberships
// @Accept      json
// @Produce     json
// @Param       id    path      string  true  "Membership ID (UUID)"  format(uuid)
// @Param       body  body      handlers.UpdateMembershipRequest  true  "Fields to change"
// @Success     200   {object}  domain.Membership
// @Failure     400   {object}  handlers.ErrorResponse "Bad request"
// @Failure     404   {object}  handlers.ErrorResponse "Membership not found"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /member/{id} [patch]
func (h *Handlers) UpdateMembership(c *gin.Context) {
	var req UpdateMembershipRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.members.Update(c.Request.Context(), c.Param("id"), services.UpdateMembershipInput{
		Role:      req.Role,
		IsCreator: req.IsCreator,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMembership godoc
// @ID          deleteMembership
// @Summary     Delete a membership
// @Description The group creator's membership cannot be deleted (403).
// @Tags        Memberships
// @Param       id   path    string  true  "Membership ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     403  {object} handlers.ErrorResponse "Creator membership"
// @Failure     404  {object} handlers.ErrorResponse "Membership not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /member/{id} [delete]
func (h *Handlers) DeleteMembership(c *gin.Context) {
	if err := h.members.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// ChangeMemberRole godoc
// @ID          changeMemberRole
// @Summary     Change a member's role
// @Description Only an ADMIN or the creator of the group may change roles. The creator cannot be demoted.
// @Tags        Memberships
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       id         path    string  true  "Membership ID (UUID)"    format(uuid)
// @Param       body       body    handlers.ChangeRoleRequest  true  "New role"
// @Success     200  {object}  domain.Membership
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse "Not a group manager"
// @Failure     404  {object}  handlers.ErrorResponse "Membership not found"
// @Router      /member/{id}/role [patch]
func (h *Handlers) ChangeMemberRole(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	var req ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.members.ChangeRole(c.Request.Context(), uid, c.Param("id"), req.Role)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// LeaveGroup godoc
// @ID          leaveGroup
// @Summary     Leave a group
// @Tags        Memberships
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       id         path    string  true  "Group ID (UUID)"         format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Creator cannot leave"
// @Failure     404  {object} handlers.ErrorResponse "Not a member"
// @Router      /groups/{id}/members/me [delete]
func (h *Handlers) LeaveGroup(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	if err := h.members.Leave(c.Request.Context(), uid, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
