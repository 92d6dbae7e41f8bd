package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

func TestCreatePost(t *testing.T) {
	api := newTestAPI(t)
	g := api.group(t, "owner")

	expectError(t, api.do(t, http.MethodPost, "/posts", "", map[string]any{"content": "x"}), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, api.do(t, http.MethodPost, "/posts", "U1", map[string]any{"content": " "}), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodPost, "/posts", "U1", map[string]any{"content": "x", "groupId": "bad"}), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodPost, "/posts", "U1", map[string]any{"content": "x", "groupId": uuid.NewString()}), http.StatusNotFound, ErrCodeNotFound)
	// Only members may post in a group.
	expectError(t, api.do(t, http.MethodPost, "/posts", "U1", map[string]any{"content": "x", "groupId": g.ID}), http.StatusForbidden, ErrCodeForbidden)

	w := api.do(t, http.MethodPost, "/posts", "owner", map[string]any{"content": "Treino amanhã", "groupId": g.ID})
	expectStatus(t, w, http.StatusCreated)
	p := decode[domain.Post](t, w)
	if p.AuthorID != "owner" || p.GroupID == nil || *p.GroupID != g.ID || p.LikesCount != 0 || p.CommentsCount != 0 || p.AttendancesCount != 0 {
		t.Fatalf("unexpected post: %+v", p)
	}

	w = api.do(t, http.MethodPost, "/posts", "U1", map[string]any{"content": "Sem grupo"})
	expectStatus(t, w, http.StatusCreated)
	if free := decode[domain.Post](t, w); free.GroupID != nil {
		t.Fatalf("expected ungrouped post: %+v", free)
	}
}

func TestGetPost(t *testing.T) {
	api := newTestAPI(t)
	p := api.post(t, "author")
	expectStatus(t, api.do(t, http.MethodPost, "/posts/"+p.ID+"/like", "U1", nil), http.StatusNoContent)

	w := api.do(t, http.MethodGet, "/posts/"+p.ID, "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.Post](t, w); got.ID != p.ID || got.LikesCount != 1 {
		t.Fatalf("unexpected post: %+v", got)
	}
	expectError(t, api.do(t, http.MethodGet, "/posts/xyz", "", nil), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodGet, "/posts/"+uuid.NewString(), "", nil), http.StatusNotFound, ErrCodeNotFound)
}
