package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/repo"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection serializes transactions; concurrent callers queue
	// on the pool instead of failing with SQLITE_LOCKED.
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

// dbMembershipRepo forwards MembershipRepo to the repo package.
type dbMembershipRepo struct{}

func (dbMembershipRepo) ListMemberships(ctx context.Context, db *gorm.DB) ([]domain.Membership, error) {
	return repo.ListMemberships(ctx, db)
}
func (dbMembershipRepo) GetMembership(ctx context.Context, db *gorm.DB, id string) (*domain.Membership, error) {
	return repo.GetMembership(ctx, db, id)
}
func (dbMembershipRepo) ListMembershipsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Membership, error) {
	return repo.ListMembershipsByUser(ctx, db, userID)
}
func (dbMembershipRepo) ListMembershipsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Membership, error) {
	return repo.ListMembershipsByGroup(ctx, db, groupID)
}
func (dbMembershipRepo) FindMembership(ctx context.Context, db *gorm.DB, userID, groupID string) (*domain.Membership, error) {
	return repo.FindMembership(ctx, db, userID, groupID)
}
func (dbMembershipRepo) CreateMembership(ctx context.Context, db *gorm.DB, m *domain.Membership) error {
	return repo.CreateMembership(ctx, db, m)
}
func (dbMembershipRepo) UpdateMembership(ctx context.Context, db *gorm.DB, id string, role *domain.Role, isCreator *bool) error {
	return repo.UpdateMembership(ctx, db, id, role, isCreator)
}
func (dbMembershipRepo) DeleteMembership(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteMembership(ctx, db, id)
}
func (dbMembershipRepo) GetGroup(ctx context.Context, db *gorm.DB, id string) (*domain.Group, error) {
	return repo.GetGroup(ctx, db, id)
}

// fixture wires every service against one database.
type fixture struct {
	db           *gorm.DB
	members      *MembershipService
	groups       *GroupService
	joins        *JoinRequestService
	posts        *PostService
	interactions *InteractionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newSvcDB(t)
	members := NewMembershipService(db, dbMembershipRepo{})
	return &fixture{
		db:           db,
		members:      members,
		groups:       NewGroupService(db, members),
		joins:        NewJoinRequestService(db, members),
		posts:        &PostService{DB: db},
		interactions: NewInteractionService(db),
	}
}

// group creates a group owned by creatorID.
func (f *fixture) group(t *testing.T, creatorID string) *domain.Group {
	t.Helper()
	g, err := f.groups.Create(context.Background(), creatorID, CreateGroupInput{Name: "Corrida de rua"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return g
}

// post creates an ungrouped post by authorID.
func (f *fixture) post(t *testing.T, authorID string) *domain.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), authorID, CreatePostInput{Content: "Treino sábado 7h"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func (f *fixture) reloadPost(t *testing.T, id string) *domain.Post {
	t.Helper()
	p, err := repo.GetPost(context.Background(), f.db, id)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return p
}

func ptr[T any](v T) *T { return &v }
