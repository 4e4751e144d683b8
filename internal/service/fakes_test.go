package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/pathtree"
)

// fakeStore is a single in-memory backing store shared by the fake
// repositories, so the transaction fake can snapshot and restore all tables
// at once the way a real rollback would.
type fakeStore struct {
	folders     map[string]models.Folder
	files       map[string]models.File
	tenants     map[string]models.Tenant
	memberships map[string]models.Membership // keyed tenantID|userID

	calls int // repository method invocations, used to assert short-circuits

	failFolderInsert  bool
	failFileDelete    bool
	failVersionInsert bool
	failSetRoot       bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders:     make(map[string]models.Folder),
		files:       make(map[string]models.File),
		tenants:     make(map[string]models.Tenant),
		memberships: make(map[string]models.Membership),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	for k, v := range s.folders {
		c.folders[k] = v
	}
	for k, v := range s.files {
		c.files[k] = v
	}
	for k, v := range s.tenants {
		c.tenants[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	return c
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.folders = snap.folders
	s.files = snap.files
	s.tenants = snap.tenants
	s.memberships = snap.memberships
}

// fakeTxManager runs the function directly and restores the store when it
// fails, mimicking a rollback.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// fakeGuard grants roles from a static table
type fakeGuard struct {
	roles map[string]models.Role // keyed tenantID|userID
}

func (g *fakeGuard) CheckTenantAccess(ctx context.Context, actorID, tenantID string, min models.Role) error {
	rank := map[models.Role]int{models.RoleViewer: 1, models.RoleMember: 2, models.RoleAdmin: 3}
	role, ok := g.roles[tenantID+"|"+actorID]
	if !ok || rank[role] < rank[min] {
		return fmt.Errorf("%w: access denied", domain.ErrForbidden)
	}
	return nil
}

type fakeFolderRepo struct {
	store *fakeStore
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error) {
	r.store.calls++
	f, ok := r.store.folders[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copy := f
	return &copy, nil
}

func (r *fakeFolderRepo) GetPath(ctx context.Context, id, tenantID string) (string, error) {
	f, err := r.GetByID(ctx, id, tenantID)
	if err != nil {
		return "", err
	}
	return f.Path, nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID, tenantID string) ([]models.Folder, error) {
	r.store.calls++
	var out []models.Folder
	for _, f := range r.store.folders {
		if f.TenantID == tenantID && f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFolderRepo) ListDescendants(ctx context.Context, pivotPath, tenantID, excludeID string) ([]models.TreeNode, error) {
	r.store.calls++
	var out []models.TreeNode
	for _, f := range r.store.folders {
		if f.TenantID != tenantID || f.ID == excludeID {
			continue
		}
		if pathtree.Contains(pivotPath, f.Path) {
			out = append(out, models.TreeNode{
				ID:    f.ID,
				Name:  f.Name,
				Path:  f.Path,
				Depth: pathtree.SegmentCount(f.Path) - pathtree.SegmentCount(pivotPath),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *fakeFolderRepo) ListAncestors(ctx context.Context, pivotPath, tenantID string) ([]models.TreeNode, error) {
	r.store.calls++
	var out []models.TreeNode
	for _, f := range r.store.folders {
		if f.TenantID != tenantID {
			continue
		}
		if pathtree.Contains(f.Path, pivotPath) {
			out = append(out, models.TreeNode{
				ID:    f.ID,
				Name:  f.Name,
				Path:  f.Path,
				Depth: pathtree.SegmentCount(f.Path),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out, nil
}

func (r *fakeFolderRepo) Insert(ctx context.Context, folder *models.Folder) error {
	r.store.calls++
	if r.store.failFolderInsert {
		return fmt.Errorf("insert folder: %w", errors.New("connection reset"))
	}
	for _, f := range r.store.folders {
		sameParent := (f.ParentID == nil && folder.ParentID == nil) ||
			(f.ParentID != nil && folder.ParentID != nil && *f.ParentID == *folder.ParentID)
		if f.TenantID == folder.TenantID && sameParent && f.Name == folder.Name {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
	}
	r.store.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) UpdateName(ctx context.Context, id, tenantID, name string) (*models.Folder, error) {
	r.store.calls++
	f, ok := r.store.folders[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	for _, sib := range r.store.folders {
		if sib.ID != id && sib.TenantID == tenantID && sib.ParentID != nil && f.ParentID != nil &&
			*sib.ParentID == *f.ParentID && sib.Name == name {
			return nil, fmt.Errorf("folder '%s': %w", name, domain.ErrConflict)
		}
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	r.store.folders[id] = f
	copy := f
	return &copy, nil
}

func (r *fakeFolderRepo) DeleteByPathPrefix(ctx context.Context, pivotPath, tenantID string) (int64, error) {
	r.store.calls++
	var count int64
	for id, f := range r.store.folders {
		if f.TenantID == tenantID && pathtree.Contains(pivotPath, f.Path) {
			delete(r.store.folders, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeFolderRepo) ExistsSibling(ctx context.Context, parentID, tenantID, name, excludeID string) (bool, error) {
	r.store.calls++
	for _, f := range r.store.folders {
		if f.ID == excludeID {
			continue
		}
		if f.TenantID == tenantID && f.ParentID != nil && *f.ParentID == parentID && f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeFileRepo struct {
	store *fakeStore
}

// Create mirrors the real repository's two writes: the file row lands first,
// then the version row, which can fail and leave the file row behind unless
// the caller wrapped the whole thing in a transaction.
func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.store.calls++
	r.store.files[file.ID] = *file
	if r.store.failVersionInsert {
		return fmt.Errorf("create file version: %w", errors.New("connection reset"))
	}
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, tenantID string) (*models.File, error) {
	r.store.calls++
	f, ok := r.store.files[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	copy := f
	return &copy, nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID, tenantID string) ([]models.File, error) {
	r.store.calls++
	var out []models.File
	for _, f := range r.store.files {
		if f.TenantID == tenantID && f.FolderID == folderID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFileRepo) ListVersions(ctx context.Context, fileID, tenantID string) ([]models.FileVersion, error) {
	r.store.calls++
	return nil, nil
}

func (r *fakeFileRepo) DeleteByFolderPathPrefix(ctx context.Context, pivotPath, tenantID string) (int64, error) {
	r.store.calls++
	if r.store.failFileDelete {
		return 0, fmt.Errorf("delete files in subtree: %w", errors.New("connection reset"))
	}
	var count int64
	for id, file := range r.store.files {
		if file.TenantID != tenantID {
			continue
		}
		folder, ok := r.store.folders[file.FolderID]
		if ok && pathtree.Contains(pivotPath, folder.Path) {
			delete(r.store.files, id)
			count++
		}
	}
	return count, nil
}

type fakeTenantRepo struct {
	store *fakeStore
}

func (r *fakeTenantRepo) Insert(ctx context.Context, tenant *models.Tenant) error {
	r.store.calls++
	for _, t := range r.store.tenants {
		if t.Name == tenant.Name {
			return fmt.Errorf("tenant '%s': %w", tenant.Name, domain.ErrConflict)
		}
	}
	r.store.tenants[tenant.ID] = *tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	r.store.calls++
	t, ok := r.store.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	copy := t
	return &copy, nil
}

func (r *fakeTenantRepo) SetRootFolder(ctx context.Context, id, rootFolderID string) error {
	r.store.calls++
	if r.store.failSetRoot {
		return fmt.Errorf("set tenant root folder: %w", errors.New("connection reset"))
	}
	t, ok := r.store.tenants[id]
	if !ok {
		return fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	t.RootFolderID = &rootFolderID
	r.store.tenants[id] = t
	return nil
}

func (r *fakeTenantRepo) UpdateName(ctx context.Context, id, name string) (*models.Tenant, error) {
	r.store.calls++
	t, ok := r.store.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	for _, other := range r.store.tenants {
		if other.ID != id && other.Name == name {
			return nil, fmt.Errorf("tenant '%s': %w", name, domain.ErrConflict)
		}
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	r.store.tenants[id] = t
	copy := t
	return &copy, nil
}

func (r *fakeTenantRepo) Delete(ctx context.Context, id string) error {
	r.store.calls++
	if _, ok := r.store.tenants[id]; !ok {
		return fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.tenants, id)
	return nil
}

type fakeMembershipRepo struct {
	store *fakeStore
}

func (r *fakeMembershipRepo) Insert(ctx context.Context, m *models.Membership) error {
	r.store.calls++
	key := m.TenantID + "|" + m.UserID
	if _, ok := r.store.memberships[key]; ok {
		return fmt.Errorf("membership for user %s: %w", m.UserID, domain.ErrConflict)
	}
	r.store.memberships[key] = *m
	return nil
}

func (r *fakeMembershipRepo) GetRole(ctx context.Context, userID, tenantID string) (models.Role, error) {
	r.store.calls++
	m, ok := r.store.memberships[tenantID+"|"+userID]
	if !ok {
		return "", fmt.Errorf("membership of user %s: %w", userID, domain.ErrNotFound)
	}
	return m.Role, nil
}

func (r *fakeMembershipRepo) DeleteByTenant(ctx context.Context, tenantID string) (int64, error) {
	r.store.calls++
	var count int64
	for key, m := range r.store.memberships {
		if m.TenantID == tenantID {
			delete(r.store.memberships, key)
			count++
		}
	}
	return count, nil
}
