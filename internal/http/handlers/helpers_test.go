package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/http/middleware"
	"github.com/tbourn/go-sports-backend/internal/repo"
	"github.com/tbourn/go-sports-backend/internal/services"
)

// ---------- test DB + repo shim ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// testMembershipRepo implements services.MembershipRepo with the repo package
// (like router.go).
type testMembershipRepo struct{}

func (testMembershipRepo) ListMemberships(ctx context.Context, db *gorm.DB) ([]domain.Membership, error) {
	return repo.ListMemberships(ctx, db)
}
func (testMembershipRepo) GetMembership(ctx context.Context, db *gorm.DB, id string) (*domain.Membership, error) {
	return repo.GetMembership(ctx, db, id)
}
func (testMembershipRepo) ListMembershipsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Membership, error) {
	return repo.ListMembershipsByUser(ctx, db, userID)
}
func (testMembershipRepo) ListMembershipsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Membership, error) {
	return repo.ListMembershipsByGroup(ctx, db, groupID)
}
func (testMembershipRepo) FindMembership(ctx context.Context, db *gorm.DB, userID, groupID string) (*domain.Membership, error) {
	return repo.FindMembership(ctx, db, userID, groupID)
}
func (testMembershipRepo) CreateMembership(ctx context.Context, db *gorm.DB, m *domain.Membership) error {
	return repo.CreateMembership(ctx, db, m)
}
func (testMembershipRepo) UpdateMembership(ctx context.Context, db *gorm.DB, id string, role *domain.Role, isCreator *bool) error {
	return repo.UpdateMembership(ctx, db, id, role, isCreator)
}
func (testMembershipRepo) DeleteMembership(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteMembership(ctx, db, id)
}
func (testMembershipRepo) GetGroup(ctx context.Context, db *gorm.DB, id string) (*domain.Group, error) {
	return repo.GetGroup(ctx, db, id)
}

// ---------- full-stack test server ----------

// testAPI mounts every handler on a gin engine backed by a fresh database.
type testAPI struct {
	db           *gorm.DB
	r            *gin.Engine
	members      *services.MembershipService
	groups       *services.GroupService
	joins        *services.JoinRequestService
	interactions *services.InteractionService
	posts        *services.PostService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)
	members := services.NewMembershipService(db, testMembershipRepo{})
	api := &testAPI{
		db:           db,
		members:      members,
		groups:       services.NewGroupService(db, members),
		joins:        services.NewJoinRequestService(db, members),
		interactions: services.NewInteractionService(db),
		posts:        &services.PostService{DB: db},
	}
	h := New(api.members, api.groups, api.joins, api.interactions, api.posts)

	r := gin.New()
	r.Use(middleware.Identity())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	mount(r.Group(""), h)
	api.r = r
	return api
}

// mount registers the routes the same way router.go does.
func mount(g *gin.RouterGroup, h *Handlers) {
	g.GET("/member", h.ListMemberships)
	g.GET("/member/:id", h.GetMembership)
	g.GET("/member/user/:id", h.ListUserMemberships)
	g.GET("/member/group/:id", h.ListGroupMemberships)
	g.POST("/member", h.CreateMembership)
	g.PATCH("/member/:id", h.UpdateMembership)
	g.DELETE("/member/:id", h.DeleteMembership)
	g.PATCH("/member/:id/role", h.ChangeMemberRole)

	g.POST("/groups", h.CreateGroup)
	g.GET("/groups/:id", h.GetGroup)
	g.PATCH("/groups/:id", h.UpdateGroup)
	g.DELETE("/groups/:id/members/me", h.LeaveGroup)

	g.POST("/join-requests", h.CreateJoinRequest)
	g.POST("/join-requests/:id/accept", h.AcceptJoinRequest)
	g.POST("/join-requests/:id/reject", h.RejectJoinRequest)
	g.DELETE("/join-requests/:id", h.CancelJoinRequest)
	g.GET("/join-requests/:id", h.GetJoinRequest)
	g.GET("/join-requests/user/me", h.ListMyJoinRequests)
	g.GET("/join-requests/group/:id", h.ListGroupJoinRequests)

	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:postId", h.GetPost)
	g.POST("/posts/:postId/like", h.LikePost)
	g.DELETE("/posts/:postId/like", h.UnlikePost)
	g.POST("/posts/:postId/attendance", h.AttendPost)
	g.DELETE("/posts/:postId/attendance", h.UnattendPost)
	g.POST("/posts/:postId/comments", h.AddComment)
	g.GET("/posts/:postId/comments", h.ListComments)
	g.GET("/posts/:postId/counters", h.GetCounterDrift)
}

// do performs a request as user (anonymous when "") with an optional JSON body.
func (a *testAPI) do(t *testing.T, method, path, user string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(middleware.HeaderUserID, user)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// group creates a group through the service, owned by creator.
func (a *testAPI) group(t *testing.T, creator string) *domain.Group {
	t.Helper()
	g, err := a.groups.Create(context.Background(), creator, services.CreateGroupInput{Name: "Vôlei de praia"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return g
}

// post creates an ungrouped post through the service.
func (a *testAPI) post(t *testing.T, author string) *domain.Post {
	t.Helper()
	p, err := a.posts.Create(context.Background(), author, services.CreatePostInput{Content: "Racha quinta 20h"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func (a *testAPI) reloadPost(t *testing.T, id string) *domain.Post {
	t.Helper()
	p, err := repo.GetPost(context.Background(), a.db, id)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return p
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v (body=%s)", v, err, w.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status=%d want %d (body=%s)", w.Code, want, w.Body.String())
	}
}

// expectError asserts status and the error envelope code.
func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	expectStatus(t, w, status)
	resp := decode[ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("code=%q want %q (msg=%q)", resp.Code, code, resp.Message)
	}
	return resp
}
