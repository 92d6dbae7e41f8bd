// Join-request HTTP handlers.
//
//   - POST   /join-requests              (request to join, or invite)
//   - POST   /join-requests/{id}/accept
//   - POST   /join-requests/{id}/reject
//   - DELETE /join-requests/{id}         (cancel while pending)
//   - GET    /join-requests/{id}
//   - GET    /join-requests/user/me      (caller's sent/received)
//   - GET    /join-requests/group/{id}   (group's sent/received)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/services"
)

// CreateJoinRequestRequest is the JSON payload for POST /join-requests.
//
// MadeBy USER asks to join GroupID as the caller (UserID may be omitted).
// MadeBy GROUP invites UserID on behalf of the group.
type CreateJoinRequestRequest struct {
	GroupID string        `json:"groupId"          example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	UserID  string        `json:"userId,omitempty" example:"user123"`
	MadeBy  domain.MadeBy `json:"madeBy"           example:"USER" enums:"USER,GROUP"`
}

// CreateJoinRequest godoc
// @ID          createJoinRequest
// @Summary     Request to join a group, or invite a user
// @Tags        JoinRequests
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       body       body    handlers.CreateJoinRequestRequest  true  "Request payload"
// @Success     201  {object}  domain.JoinRequest
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse "Not allowed"
// @Failure     404  {object}  handlers.ErrorResponse "Group not found"
// @Failure     409  {object}  handlers.ErrorResponse "Already a member or request pending"
// @Router      /join-requests [post]
func (h *Handlers) CreateJoinRequest(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	var req CreateJoinRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	jr, err := h.joins.Create(c.Request.Context(), uid, services.CreateJoinRequestInput{
		GroupID: req.GroupID,
		UserID:  req.UserID,
		MadeBy:  req.MadeBy,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, jr)
}

// AcceptJoinRequest godoc
// @ID          acceptJoinRequest
// @Summary     Accept a pending join request or invite
// @Description Requests made by a user are accepted by a group manager; invites are accepted by the invited user. Acceptance creates the membership atomically.
// @Tags        JoinRequests
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       id         path    string  true  "Join request ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not allowed"
// @Failure     404  {object} handlers.ErrorResponse "Not found or already resolved"
// @Failure     409  {object} handlers.ErrorResponse "Already a member"
// @Router      /join-requests/{id}/accept [post]
func (h *Handlers) AcceptJoinRequest(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	if _, err := h.joins.Accept(c.Request.Context(), uid, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// RejectJoinRequest godoc
// @ID          rejectJoinRequest
// @Summary     Reject a pending join request or invite
// @Tags        JoinRequests
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       id         path    string  true  "Join request ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not allowed"
// @Failure     404  {object} handlers.ErrorResponse "Not found or already resolved"
// @Router      /join-requests/{id}/reject [post]
func (h *Handlers) RejectJoinRequest(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	if err := h.joins.Reject(c.Request.Context(), uid, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// CancelJoinRequest godoc
// @ID          cancelJoinRequest
// @Summary     Cancel a pending join request or invite
// @Description Only the side that created the request may cancel it, and only while it is pending.
// @Tags        JoinRequests
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Param       id         path    string  true  "Join request ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not allowed"
// @Failure     404  {object} handlers.ErrorResponse "Not found or already resolved"
// @Router      /join-requests/{id} [delete]
func (h *Handlers) CancelJoinRequest(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	if err := h.joins.Cancel(c.Request.Context(), uid, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// ListMyJoinRequests godoc
// @ID          listMyJoinRequests
// @Summary     List the caller's join requests and invites
// @Description Sent holds the caller's own requests to join; received holds invites from groups.
// @Tags        JoinRequests
// @Produce     json
// @Param       X-User-ID  header  string  true  "Authenticated user id"  example(user123)
// @Success     200  {object}  services.JoinRequestListing
// @Failure     401  {object}  handlers.ErrorResponse "Unauthenticated"
// @Router      /join-requests/user/me [get]
func (h *Handlers) ListMyJoinRequests(c *gin.Context) {
	uid, authed := actor(c)
	if !authed {
		return
	}
	out, err := h.joins.ListForUser(c.Request.Context(), uid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// ListGroupJoinRequests godoc
// @ID          listGroupJoinRequests
// @Summary     List a group's join requests and invites
// @Description Sent holds the group's invites; received holds users' requests to join.
// @Tags        JoinRequests
// @Produce     json
// @Param       id   path      string  true  "Group ID (UUID)"  format(uuid)
// @Success     200  {object}  services.JoinRequestListing
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Router      /join-requests/group/{id} [get]
func (h *Handlers) ListGroupJoinRequests(c *gin.Context) {
	out, err := h.joins.ListForGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetJoinRequest godoc
// @ID          getJoinRequest
// @Summary     Get a join request or invite by id
// @Tags        JoinRequests
// @Produce     json
// @Param       id   path      string  true  "Join request ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.JoinRequest
// @Failure     400  {object}  handlers.ErrorResponse "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /join-requests/{id} [get]
func (h *Handlers) GetJoinRequest(c *gin.Context) {
	jr, err := h.joins.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, jr)
}
