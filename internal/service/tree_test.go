package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/pathtree"
)

const (
	testTenant  = "tenant-1"
	otherTenant = "tenant-2"
	adminActor  = "user-admin"
	memberActor = "user-member"
	viewerActor = "user-viewer"
)

type treeFixture struct {
	store *fakeStore
	tree  services.TreeService
}

// newTreeFixture builds:
//
//	root (Acme)        path acmeroot
//	└── A              path acmeroot.a
//	    └── B          path acmeroot.a.b   (holds file-1)
//
// plus an unrelated tenant with one root folder.
func newTreeFixture() *treeFixture {
	store := newFakeStore()

	rootID := "folder-root"
	aID := "folder-a"
	store.folders["folder-root"] = models.Folder{
		ID: "folder-root", TenantID: testTenant, ParentID: nil, Name: "Acme", Path: "acmeroot",
	}
	store.folders["folder-a"] = models.Folder{
		ID: "folder-a", TenantID: testTenant, ParentID: &rootID, Name: "A", Path: "acmeroot.a",
	}
	store.folders["folder-b"] = models.Folder{
		ID: "folder-b", TenantID: testTenant, ParentID: &aID, Name: "B", Path: "acmeroot.a.b",
	}
	store.files["file-1"] = models.File{
		ID: "file-1", TenantID: testTenant, FolderID: "folder-b", Name: "report.pdf",
	}
	store.folders["folder-other"] = models.Folder{
		ID: "folder-other", TenantID: otherTenant, ParentID: nil, Name: "Globex", Path: "globexroot",
	}

	guard := &fakeGuard{roles: map[string]models.Role{
		testTenant + "|" + adminActor:  models.RoleAdmin,
		testTenant + "|" + memberActor: models.RoleMember,
		testTenant + "|" + viewerActor: models.RoleViewer,
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tree := NewTreeService(
		&fakeFolderRepo{store: store},
		&fakeFileRepo{store: store},
		guard,
		&fakeTxManager{store: store},
		logger,
	)

	return &treeFixture{store: store, tree: tree}
}

func TestCreateSubfolder(t *testing.T) {
	fx := newTreeFixture()
	ctx := context.Background()

	folder, err := fx.tree.CreateSubfolder(ctx, &services.CreateFolderRequest{
		TenantID: testTenant,
		ParentID: "folder-a",
		Name:     "  Reports  ",
		ActorID:  memberActor,
	})
	if err != nil {
		t.Fatalf("CreateSubfolder error: %v", err)
	}

	if folder.Name != "Reports" {
		t.Errorf("Name = %q, want trimmed %q", folder.Name, "Reports")
	}
	if folder.ParentID == nil || *folder.ParentID != "folder-a" {
		t.Errorf("ParentID = %v, want folder-a", folder.ParentID)
	}

	// Path = parent path + encoded own id, depth = parent depth + 1
	segment, err := pathtree.EncodeSegment(folder.ID)
	if err != nil {
		t.Fatalf("EncodeSegment error: %v", err)
	}
	wantPath := pathtree.ComposePath("acmeroot.a", segment)
	if folder.Path != wantPath {
		t.Errorf("Path = %q, want %q", folder.Path, wantPath)
	}
	if got := pathtree.SegmentCount(folder.Path); got != 3 {
		t.Errorf("segment count = %d, want 3", got)
	}

	if _, ok := fx.store.folders[folder.ID]; !ok {
		t.Error("created folder not persisted")
	}
}

func TestCreateSubfolder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		req     services.CreateFolderRequest
		wantErr error
	}{
		{
			name: "duplicate sibling name",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "folder-a", Name: "B", ActorID: memberActor,
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "parent not found",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "no-such-folder", Name: "X", ActorID: memberActor,
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "parent in another tenant behaves as missing",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "folder-other", Name: "X", ActorID: memberActor,
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "empty name",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "folder-a", Name: "   ", ActorID: memberActor,
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "name with slash",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "folder-a", Name: "a/b", ActorID: memberActor,
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "viewer cannot mutate",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "folder-a", Name: "X", ActorID: viewerActor,
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name: "stranger cannot mutate",
			req: services.CreateFolderRequest{
				TenantID: testTenant, ParentID: "folder-a", Name: "X", ActorID: "user-stranger",
			},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newTreeFixture()
			before := len(fx.store.folders)

			_, err := fx.tree.CreateSubfolder(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if len(fx.store.folders) != before {
				t.Error("failed create must not leave rows behind")
			}
		})
	}
}

func TestCreateSubfolder_DeniedBeforeStorageAccess(t *testing.T) {
	fx := newTreeFixture()

	_, err := fx.tree.CreateSubfolder(context.Background(), &services.CreateFolderRequest{
		TenantID: testTenant, ParentID: "folder-a", Name: "X", ActorID: viewerActor,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
	if fx.store.calls != 0 {
		t.Errorf("storage touched %d times before permission denial, want 0", fx.store.calls)
	}
}

func TestRenameFolder(t *testing.T) {
	fx := newTreeFixture()
	ctx := context.Background()

	pathsBefore := map[string]string{}
	for id, f := range fx.store.folders {
		pathsBefore[id] = f.Path
	}

	folder, err := fx.tree.RenameFolder(ctx, &services.RenameFolderRequest{
		TenantID: testTenant, FolderID: "folder-b", Name: "C", ActorID: memberActor,
	})
	if err != nil {
		t.Fatalf("RenameFolder error: %v", err)
	}
	if folder.Name != "C" {
		t.Errorf("Name = %q, want C", folder.Name)
	}

	// Renames never rewrite paths, own or descendant
	for id, f := range fx.store.folders {
		if f.Path != pathsBefore[id] {
			t.Errorf("folder %s path changed from %q to %q on rename", id, pathsBefore[id], f.Path)
		}
	}
}

func TestRenameFolder_SameNameIsIdempotent(t *testing.T) {
	fx := newTreeFixture()

	folder, err := fx.tree.RenameFolder(context.Background(), &services.RenameFolderRequest{
		TenantID: testTenant, FolderID: "folder-b", Name: "B", ActorID: memberActor,
	})
	if err != nil {
		t.Fatalf("rename to current name should succeed, got %v", err)
	}
	if folder.Name != "B" {
		t.Errorf("Name = %q, want B", folder.Name)
	}
}

func TestRenameFolder_Failures(t *testing.T) {
	fx := newTreeFixture()
	ctx := context.Background()

	// Sibling of A under root
	if _, err := fx.tree.CreateSubfolder(ctx, &services.CreateFolderRequest{
		TenantID: testTenant, ParentID: "folder-root", Name: "A2", ActorID: memberActor,
	}); err != nil {
		t.Fatalf("setup create error: %v", err)
	}

	var a2ID string
	for id, f := range fx.store.folders {
		if f.Name == "A2" {
			a2ID = id
		}
	}

	tests := []struct {
		name    string
		req     services.RenameFolderRequest
		wantErr error
	}{
		{
			name: "rename onto sibling name",
			req: services.RenameFolderRequest{
				TenantID: testTenant, FolderID: a2ID, Name: "A", ActorID: memberActor,
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "folder not found",
			req: services.RenameFolderRequest{
				TenantID: testTenant, FolderID: "no-such-folder", Name: "X", ActorID: memberActor,
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "empty name",
			req: services.RenameFolderRequest{
				TenantID: testTenant, FolderID: "folder-b", Name: "", ActorID: memberActor,
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "viewer cannot rename",
			req: services.RenameFolderRequest{
				TenantID: testTenant, FolderID: "folder-b", Name: "X", ActorID: viewerActor,
			},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.tree.RenameFolder(ctx, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteSubtree(t *testing.T) {
	fx := newTreeFixture()

	result, err := fx.tree.DeleteSubtree(context.Background(), &services.DeleteSubtreeRequest{
		TenantID: testTenant, FolderID: "folder-a", ActorID: adminActor,
	})
	if err != nil {
		t.Fatalf("DeleteSubtree error: %v", err)
	}

	if result.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2 (A and B)", result.DeletedCount)
	}
	if _, ok := fx.store.folders["folder-a"]; ok {
		t.Error("folder-a still exists after subtree delete")
	}
	if _, ok := fx.store.folders["folder-b"]; ok {
		t.Error("folder-b still exists after subtree delete")
	}
	if _, ok := fx.store.files["file-1"]; ok {
		t.Error("file-1 still exists after subtree delete")
	}
	if _, ok := fx.store.folders["folder-root"]; !ok {
		t.Error("root folder must survive a child subtree delete")
	}

	// Deleting an already-deleted id is NOT_FOUND, not a second deletion
	_, err = fx.tree.DeleteSubtree(context.Background(), &services.DeleteSubtreeRequest{
		TenantID: testTenant, FolderID: "folder-a", ActorID: adminActor,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSubtree_RootProtected(t *testing.T) {
	fx := newTreeFixture()
	before := len(fx.store.folders)

	_, err := fx.tree.DeleteSubtree(context.Background(), &services.DeleteSubtreeRequest{
		TenantID: testTenant, FolderID: "folder-root", ActorID: adminActor,
	})
	if !errors.Is(err, domain.ErrRootProtected) {
		t.Fatalf("error = %v, want ErrRootProtected", err)
	}
	if len(fx.store.folders) != before {
		t.Error("root-protected delete must leave the tree untouched")
	}
	if _, ok := fx.store.files["file-1"]; !ok {
		t.Error("root-protected delete must leave files untouched")
	}
}

func TestDeleteSubtree_RequiresAdmin(t *testing.T) {
	fx := newTreeFixture()

	_, err := fx.tree.DeleteSubtree(context.Background(), &services.DeleteSubtreeRequest{
		TenantID: testTenant, FolderID: "folder-a", ActorID: memberActor,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden for non-admin", err)
	}
	if _, ok := fx.store.folders["folder-a"]; !ok {
		t.Error("denied delete must not remove anything")
	}
}

func TestDeleteSubtree_RollsBackOnFileDeleteFailure(t *testing.T) {
	fx := newTreeFixture()
	fx.store.failFileDelete = true
	foldersBefore := len(fx.store.folders)
	filesBefore := len(fx.store.files)

	_, err := fx.tree.DeleteSubtree(context.Background(), &services.DeleteSubtreeRequest{
		TenantID: testTenant, FolderID: "folder-a", ActorID: adminActor,
	})
	if err == nil {
		t.Fatal("expected failure when file deletion fails")
	}

	if len(fx.store.folders) != foldersBefore {
		t.Error("folder rows changed despite rollback")
	}
	if len(fx.store.files) != filesBefore {
		t.Error("file rows changed despite rollback")
	}
}

func TestListChildren(t *testing.T) {
	fx := newTreeFixture()
	ctx := context.Background()

	// Children come back name-ascending
	for _, name := range []string{"Zeta", "Alpha"} {
		if _, err := fx.tree.CreateSubfolder(ctx, &services.CreateFolderRequest{
			TenantID: testTenant, ParentID: "folder-root", Name: name, ActorID: memberActor,
		}); err != nil {
			t.Fatalf("setup create error: %v", err)
		}
	}

	children, err := fx.tree.ListChildren(ctx, testTenant, "folder-root")
	if err != nil {
		t.Fatalf("ListChildren error: %v", err)
	}

	wantNames := []string{"A", "Alpha", "Zeta"}
	if len(children) != len(wantNames) {
		t.Fatalf("got %d children, want %d", len(children), len(wantNames))
	}
	for i, want := range wantNames {
		if children[i].Name != want {
			t.Errorf("children[%d].Name = %q, want %q", i, children[i].Name, want)
		}
	}

	if _, err := fx.tree.ListChildren(ctx, testTenant, "no-such-folder"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing pivot error = %v, want ErrNotFound", err)
	}
}

func TestListDescendants(t *testing.T) {
	fx := newTreeFixture()

	nodes, err := fx.tree.ListDescendants(context.Background(), testTenant, "folder-root")
	if err != nil {
		t.Fatalf("ListDescendants error: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("got %d descendants, want 2", len(nodes))
	}
	if nodes[0].ID != "folder-a" || nodes[0].Depth != 1 {
		t.Errorf("nodes[0] = %+v, want folder-a at depth 1", nodes[0])
	}
	if nodes[1].ID != "folder-b" || nodes[1].Depth != 2 {
		t.Errorf("nodes[1] = %+v, want folder-b at depth 2", nodes[1])
	}

	// The pivot itself is excluded
	for _, n := range nodes {
		if n.ID == "folder-root" {
			t.Error("pivot folder must not appear in its own descendants")
		}
	}

	if _, err := fx.tree.ListDescendants(context.Background(), testTenant, "no-such-folder"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing pivot error = %v, want ErrNotFound", err)
	}
}

func TestListAncestors(t *testing.T) {
	fx := newTreeFixture()

	nodes, err := fx.tree.ListAncestors(context.Background(), testTenant, "folder-b")
	if err != nil {
		t.Fatalf("ListAncestors error: %v", err)
	}

	// Breadcrumb order: root first, pivot last
	wantIDs := []string{"folder-root", "folder-a", "folder-b"}
	if len(nodes) != len(wantIDs) {
		t.Fatalf("got %d ancestors, want %d", len(nodes), len(wantIDs))
	}
	for i, want := range wantIDs {
		if nodes[i].ID != want {
			t.Errorf("nodes[%d].ID = %q, want %q", i, nodes[i].ID, want)
		}
		if nodes[i].Depth != i+1 {
			t.Errorf("nodes[%d].Depth = %d, want %d", i, nodes[i].Depth, i+1)
		}
	}
}

// Descendant/ancestor duality: B is in A's descendants iff A is in B's
// ancestors, for every pair in the tenant.
func TestDescendantAncestorDuality(t *testing.T) {
	fx := newTreeFixture()
	ctx := context.Background()

	ids := []string{"folder-root", "folder-a", "folder-b"}
	for _, a := range ids {
		descendants, err := fx.tree.ListDescendants(ctx, testTenant, a)
		if err != nil {
			t.Fatalf("ListDescendants(%s) error: %v", a, err)
		}
		inDescendants := map[string]bool{}
		for _, n := range descendants {
			inDescendants[n.ID] = true
		}

		for _, b := range ids {
			if a == b {
				continue
			}
			ancestors, err := fx.tree.ListAncestors(ctx, testTenant, b)
			if err != nil {
				t.Fatalf("ListAncestors(%s) error: %v", b, err)
			}
			inAncestors := false
			for _, n := range ancestors {
				if n.ID == a {
					inAncestors = true
				}
			}

			if inDescendants[b] != inAncestors {
				t.Errorf("duality violated for (%s, %s): descendant=%v ancestor=%v",
					a, b, inDescendants[b], inAncestors)
			}
		}
	}
}
