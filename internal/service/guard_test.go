package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
)

func newTestGuard(t *testing.T, store *fakeStore) *membershipGuard {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard, err := NewAccessGuard(&fakeMembershipRepo{store: store}, logger)
	if err != nil {
		t.Fatalf("NewAccessGuard error: %v", err)
	}
	return guard.(*membershipGuard)
}

func TestCheckTenantAccess(t *testing.T) {
	store := newFakeStore()
	store.memberships["t1|viewer"] = models.Membership{TenantID: "t1", UserID: "viewer", Role: models.RoleViewer}
	store.memberships["t1|member"] = models.Membership{TenantID: "t1", UserID: "member", Role: models.RoleMember}
	store.memberships["t1|admin"] = models.Membership{TenantID: "t1", UserID: "admin", Role: models.RoleAdmin}
	guard := newTestGuard(t, store)

	tests := []struct {
		name    string
		actorID string
		min     models.Role
		wantOK  bool
	}{
		{"viewer meets viewer", "viewer", models.RoleViewer, true},
		{"viewer below member", "viewer", models.RoleMember, false},
		{"viewer below admin", "viewer", models.RoleAdmin, false},
		{"member meets viewer", "member", models.RoleViewer, true},
		{"member meets member", "member", models.RoleMember, true},
		{"member below admin", "member", models.RoleAdmin, false},
		{"admin meets everything", "admin", models.RoleAdmin, true},
		{"no membership", "stranger", models.RoleViewer, false},
		{"empty actor", "", models.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.CheckTenantAccess(context.Background(), tt.actorID, "t1", tt.min)
			if tt.wantOK && err != nil {
				t.Fatalf("unexpected denial: %v", err)
			}
			if !tt.wantOK && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("error = %v, want ErrForbidden", err)
			}
		})
	}
}

// A missing membership and an insufficient role must be indistinguishable, so
// a denial cannot be used to probe for a tenant's existence.
func TestCheckTenantAccess_UniformDenial(t *testing.T) {
	store := newFakeStore()
	store.memberships["t1|viewer"] = models.Membership{TenantID: "t1", UserID: "viewer", Role: models.RoleViewer}
	guard := newTestGuard(t, store)

	lowRole := guard.CheckTenantAccess(context.Background(), "viewer", "t1", models.RoleAdmin)
	noMembership := guard.CheckTenantAccess(context.Background(), "viewer", "no-such-tenant", models.RoleAdmin)

	if lowRole == nil || noMembership == nil {
		t.Fatal("both checks should be denied")
	}
	if lowRole.Error() != noMembership.Error() {
		t.Errorf("denial messages differ: %q vs %q", lowRole, noMembership)
	}
	if domain.Code(lowRole) != domain.Code(noMembership) {
		t.Errorf("denial codes differ: %q vs %q", domain.Code(lowRole), domain.Code(noMembership))
	}
}

func TestRoleTableLoads(t *testing.T) {
	guard := newTestGuard(t, newFakeStore())

	want := map[models.Role]int{
		models.RoleViewer: 1,
		models.RoleMember: 2,
		models.RoleAdmin:  3,
	}
	for role, rank := range want {
		if guard.ranks[role] != rank {
			t.Errorf("rank[%s] = %d, want %d", role, guard.ranks[role], rank)
		}
	}
}
