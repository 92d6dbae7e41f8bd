package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

func TestCreateGroup(t *testing.T) {
	api := newTestAPI(t)

	expectError(t, api.do(t, http.MethodPost, "/groups", "", map[string]any{"name": "Surf"}), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, api.do(t, http.MethodPost, "/groups", "U1", "nope"), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodPost, "/groups", "U1", map[string]any{"name": "   "}), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodPost, "/groups", "U1", map[string]any{"name": strings.Repeat("a", 81)}), http.StatusBadRequest, ErrCodeBadRequest)

	w := api.do(t, http.MethodPost, "/groups", "U1", map[string]any{"name": "  Surf   Club ", "description": "ondas"})
	expectStatus(t, w, http.StatusCreated)
	g := decode[domain.Group](t, w)
	if g.Name != "Surf Club" || g.CreatorID != "U1" {
		t.Fatalf("unexpected group: %+v", g)
	}

	// The creator holds an ADMIN creator membership.
	members := decode[[]domain.Membership](t, api.do(t, http.MethodGet, "/member/group/"+g.ID, "", nil))
	if len(members) != 1 || members[0].UserID != "U1" || members[0].Role != domain.RoleAdmin || !members[0].IsCreator {
		t.Fatalf("unexpected creator membership: %+v", members)
	}
}

func TestGetGroup(t *testing.T) {
	api := newTestAPI(t)
	g := api.group(t, "owner")

	w := api.do(t, http.MethodGet, "/groups/"+g.ID, "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.Group](t, w); got.ID != g.ID {
		t.Fatalf("unexpected group: %+v", got)
	}
	expectError(t, api.do(t, http.MethodGet, "/groups/abc", "", nil), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodGet, "/groups/"+uuid.NewString(), "", nil), http.StatusNotFound, ErrCodeNotFound)
}

func TestUpdateGroup_Permissions(t *testing.T) {
	api := newTestAPI(t)
	g := api.group(t, "owner")
	expectStatus(t, api.do(t, http.MethodPost, "/member", "", map[string]any{"userId": "plain", "groupId": g.ID}), http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodPost, "/member", "", map[string]any{"userId": "admin", "groupId": g.ID, "role": "ADMIN"}), http.StatusCreated)
	path := "/groups/" + g.ID
	patch := map[string]any{"description": "nova descrição"}

	expectError(t, api.do(t, http.MethodPatch, path, "", patch), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, api.do(t, http.MethodPatch, path, "plain", patch), http.StatusForbidden, ErrCodeForbidden)
	expectError(t, api.do(t, http.MethodPatch, path, "stranger", patch), http.StatusForbidden, ErrCodeForbidden)
	expectError(t, api.do(t, http.MethodPatch, "/groups/"+uuid.NewString(), "owner", patch), http.StatusNotFound, ErrCodeNotFound)

	w := api.do(t, http.MethodPatch, path, "admin", patch)
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.Group](t, w); got.Description != "nova descrição" || got.Name != g.Name {
		t.Fatalf("unexpected group after patch: %+v", got)
	}

	w = api.do(t, http.MethodPatch, path, "owner", map[string]any{"name": "Renomeado"})
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.Group](t, w); got.Name != "Renomeado" {
		t.Fatalf("name not updated: %+v", got)
	}
}
