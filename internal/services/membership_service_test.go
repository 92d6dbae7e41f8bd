package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/repo"
)

// ----- Fake repo -----

type fakeMembershipRepo struct {
	dbMembershipRepo

	getErr    error
	listErr   error
	lastUser  string
	lastGroup string
}

func (r *fakeMembershipRepo) GetMembership(ctx context.Context, db *gorm.DB, id string) (*domain.Membership, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return &domain.Membership{ID: id, Role: domain.RoleMember}, nil
}

func (r *fakeMembershipRepo) ListMembershipsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Membership, error) {
	r.lastUser = userID
	return []domain.Membership{{ID: "m1", UserID: userID}}, r.listErr
}

func (r *fakeMembershipRepo) ListMembershipsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Membership, error) {
	r.lastGroup = groupID
	return nil, r.listErr
}

// ----- Unit tests (no database) -----

func TestMembershipService_Lookups_ValidateAndTranslate(t *testing.T) {
	r := &fakeMembershipRepo{}
	s := NewMembershipService(nil, r)
	ctx := context.Background()

	if _, err := s.FindByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("malformed id: expected ErrInvalidID, got %v", err)
	}

	r.getErr = repo.ErrNotFound
	if _, err := s.FindByID(ctx, "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11"); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}

	boom := errors.New("disk on fire")
	r.getErr = boom
	if _, err := s.FindByID(ctx, "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11"); !errors.Is(err, boom) || KindOf(err) != KindInternal {
		t.Fatalf("expected raw internal error, got %v", err)
	}

	if _, err := s.FindByUserID(ctx, "  "); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("blank user id: expected ErrInvalidID, got %v", err)
	}
	if got, err := s.FindByUserID(ctx, " u1 "); err != nil || len(got) != 1 || r.lastUser != "u1" {
		t.Fatalf("FindByUserID = %v err=%v lastUser=%q", got, err, r.lastUser)
	}

	if _, err := s.FindByGroupID(ctx, "g1"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("malformed group id: expected ErrInvalidID, got %v", err)
	}
}

func TestMembershipService_InvalidRoleRejectedBeforeStore(t *testing.T) {
	s := NewMembershipService(nil, &fakeMembershipRepo{})
	bad := domain.Role("OWNER")
	if _, err := s.Update(context.Background(), "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11", UpdateMembershipInput{Role: &bad}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := s.ChangeRole(context.Background(), "u1", "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11", bad); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := s.ChangeRole(context.Background(), "", "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11", domain.RoleAdmin); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

// ----- Integration tests -----

func TestMembershipService_CreateDefaultsAndDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")

	m, err := f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Role != domain.RoleMember || m.IsCreator {
		t.Fatalf("expected MEMBER/non-creator defaults, got %+v", m)
	}

	_, err = f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{})
	if !errors.Is(err, ErrAlreadyMember) || KindOf(err) != KindConflict {
		t.Fatalf("expected ErrAlreadyMember conflict, got %v", err)
	}
	if err.Error() != "Usuário já é membro do grupo" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	found, err := f.members.FindByUserAndGroup(ctx, "u1", g.ID)
	if err != nil || found == nil || found.ID != m.ID {
		t.Fatalf("FindByUserAndGroup = %+v err=%v", found, err)
	}
	none, err := f.members.FindByUserAndGroup(ctx, "u2", g.ID)
	if err != nil || none != nil {
		t.Fatalf("expected (nil, nil), got %+v err=%v", none, err)
	}
}

func TestMembershipService_CreateOverridesAndMissingGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")

	m, err := f.members.Create(ctx, "u2", g.ID, CreateMembershipInput{Role: ptr(domain.RoleAdmin)})
	if err != nil || m.Role != domain.RoleAdmin {
		t.Fatalf("override role: %+v err=%v", m, err)
	}

	if _, err := f.members.Create(ctx, "u3", "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11", CreateMembershipInput{}); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
	if _, err := f.members.Create(ctx, "u3", g.ID, CreateMembershipInput{Role: ptr(domain.Role("x"))}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestMembershipService_ConcurrentCreate_ExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	g := f.group(t, "owner")

	const n = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dup    int
		unexpected []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.members.Create(context.Background(), "racer", g.ID, CreateMembershipInput{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyMember):
				dup++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dup != n-1 || len(unexpected) > 0 {
		t.Fatalf("ok=%d dup=%d unexpected=%v", ok, dup, unexpected)
	}
	rows, _ := repo.ListMembershipsByGroup(context.Background(), f.db, g.ID)
	count := 0
	for _, m := range rows {
		if m.UserID == "racer" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one membership row, got %d", count)
	}
}

func TestMembershipService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")
	m, err := f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	up, err := f.members.Update(ctx, m.ID, UpdateMembershipInput{Role: ptr(domain.RoleAdmin)})
	if err != nil || up.Role != domain.RoleAdmin || up.IsCreator {
		t.Fatalf("Update = %+v err=%v", up, err)
	}
	if _, err := f.members.Update(ctx, "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11", UpdateMembershipInput{Role: ptr(domain.RoleAdmin)}); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}

	if err := f.members.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.members.Delete(ctx, m.ID); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("second Delete: expected ErrMembershipNotFound, got %v", err)
	}
}

func TestMembershipService_CreatorProtected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")

	creator, err := f.members.FindByUserAndGroup(ctx, "owner", g.ID)
	if err != nil || creator == nil || !creator.IsCreator || creator.Role != domain.RoleAdmin {
		t.Fatalf("expected creator membership, got %+v err=%v", creator, err)
	}

	if err := f.members.Delete(ctx, creator.ID); !errors.Is(err, ErrCreatorMembership) {
		t.Fatalf("expected ErrCreatorMembership on delete, got %v", err)
	}
	if err := f.members.Leave(ctx, "owner", g.ID); !errors.Is(err, ErrCreatorMembership) {
		t.Fatalf("expected ErrCreatorMembership on leave, got %v", err)
	}
	if _, err := f.members.ChangeRole(ctx, "owner", creator.ID, domain.RoleMember); !errors.Is(err, ErrCreatorMembership) {
		t.Fatalf("expected ErrCreatorMembership on demotion, got %v", err)
	}
}

func TestMembershipService_UpdateCannotDemoteCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")
	creator, err := f.members.FindByUserAndGroup(ctx, "owner", g.ID)
	if err != nil || creator == nil {
		t.Fatalf("creator lookup: %+v err=%v", creator, err)
	}

	patches := map[string]UpdateMembershipInput{
		"clear creator flag": {IsCreator: ptr(false)},
		"member role":        {Role: ptr(domain.RoleMember)},
		"both":               {Role: ptr(domain.RoleMember), IsCreator: ptr(false)},
	}
	for name, in := range patches {
		if _, err := f.members.Update(ctx, creator.ID, in); !errors.Is(err, ErrCreatorMembership) {
			t.Fatalf("%s: expected ErrCreatorMembership, got %v", name, err)
		}
	}

	// A no-op patch that keeps the creator an admin is allowed.
	got, err := f.members.Update(ctx, creator.ID, UpdateMembershipInput{Role: ptr(domain.RoleAdmin), IsCreator: ptr(true)})
	if err != nil || !got.IsCreator || got.Role != domain.RoleAdmin {
		t.Fatalf("admin patch = %+v err=%v", got, err)
	}

	// The flag survived, so the membership is still undeletable.
	if err := f.members.Delete(ctx, creator.ID); !errors.Is(err, ErrCreatorMembership) {
		t.Fatalf("expected ErrCreatorMembership on delete, got %v", err)
	}
}

func TestMembershipService_ChangeRoleRequiresManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")
	m1, _ := f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{})
	if _, err := f.members.Create(ctx, "u2", g.ID, CreateMembershipInput{}); err != nil {
		t.Fatalf("seed u2: %v", err)
	}

	if _, err := f.members.ChangeRole(ctx, "u2", m1.ID, domain.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("plain member: expected ErrForbidden, got %v", err)
	}
	got, err := f.members.ChangeRole(ctx, "owner", m1.ID, domain.RoleAdmin)
	if err != nil || got.Role != domain.RoleAdmin {
		t.Fatalf("creator promote: %+v err=%v", got, err)
	}
	// The promoted admin may now manage others.
	m2, _ := f.members.FindByUserAndGroup(ctx, "u2", g.ID)
	if _, err := f.members.ChangeRole(ctx, "u1", m2.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("admin promote: %v", err)
	}
	if _, err := f.members.ChangeRole(ctx, "owner", "0b6f2c36-4a5e-4a8e-9d55-1f1f7f0a9a11", domain.RoleAdmin); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}
}

func TestMembershipService_LeaveAndRejoin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")
	if _, err := f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := f.members.Leave(ctx, "u1", g.ID); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if err := f.members.Leave(ctx, "u1", g.ID); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("second Leave: expected ErrMembershipNotFound, got %v", err)
	}
	if _, err := f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{}); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
}

func TestMembershipService_ListingsAreDeterministic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")
	for _, u := range []string{"u1", "u2", "u3"} {
		if _, err := f.members.Create(ctx, u, g.ID, CreateMembershipInput{}); err != nil {
			t.Fatalf("seed %s: %v", u, err)
		}
	}

	first, err := f.members.FindByGroupID(ctx, g.ID)
	if err != nil || len(first) != 4 {
		t.Fatalf("FindByGroupID = %d err=%v", len(first), err)
	}
	second, _ := f.members.FindByGroupID(ctx, g.ID)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("listing order changed between calls at %d", i)
		}
	}
	all, err := f.members.FindAll(ctx)
	if err != nil || len(all) != 4 {
		t.Fatalf("FindAll = %d err=%v", len(all), err)
	}
}

func TestMembershipService_GroupMembershipStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner")

	if _, _, err := f.members.GroupMembershipStats(ctx, "g1"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("malformed id: expected ErrInvalidID, got %v", err)
	}

	n, last, err := f.members.GroupMembershipStats(ctx, g.ID)
	if err != nil || n != 1 || last == nil {
		t.Fatalf("stats = %d %v err=%v", n, last, err)
	}
	if _, err := f.members.Create(ctx, "u1", g.ID, CreateMembershipInput{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	n2, _, err := f.members.GroupMembershipStats(ctx, g.ID)
	if err != nil || n2 != 2 {
		t.Fatalf("after join: n=%d err=%v", n2, err)
	}
}
