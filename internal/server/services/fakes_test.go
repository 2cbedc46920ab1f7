package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/models"
	categoriesrepo "github.com/psemenov/passvault/internal/server/repositories/categories"
	itemsrepo "github.com/psemenov/passvault/internal/server/repositories/items"
	sharingsrepo "github.com/psemenov/passvault/internal/server/repositories/sharings"
	usersrepo "github.com/psemenov/passvault/internal/server/repositories/users"
	vaultsrepo "github.com/psemenov/passvault/internal/server/repositories/vaults"
)

// --- in-memory fakes, one per repository, shared by the service tests ---

type fakeUsersRepo struct {
	byID map[string]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeVaultsRepo struct {
	byID map[string]*models.Vault
}

func newFakeVaultsRepo() *fakeVaultsRepo {
	return &fakeVaultsRepo{byID: map[string]*models.Vault{}}
}

func (f *fakeVaultsRepo) Create(ctx context.Context, v *models.Vault) (*models.Vault, error) {
	v.CreatedAt = time.Now()
	f.byID[v.ID] = v
	return v, nil
}

func (f *fakeVaultsRepo) GetByID(ctx context.Context, id string) (*models.Vault, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, common.ErrorNotFound
}

type fakeCategoriesRepo struct {
	byID map[string]*models.Category
}

func newFakeCategoriesRepo() *fakeCategoriesRepo {
	return &fakeCategoriesRepo{byID: map[string]*models.Category{}}
}

func (f *fakeCategoriesRepo) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.CreatedAt = time.Now()
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCategoriesRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCategoriesRepo) ListByVault(ctx context.Context, vaultID string) ([]*models.Category, error) {
	result := []*models.Category{}
	for _, c := range f.byID {
		if c.VaultID == vaultID {
			result = append(result, c)
		}
	}
	return result, nil
}

type fakeSharingsRepo struct {
	byKey     map[string]*models.VaultSharing
	createErr error
}

func newFakeSharingsRepo() *fakeSharingsRepo {
	return &fakeSharingsRepo{byKey: map[string]*models.VaultSharing{}}
}

func sharingKey(vaultID, userID string) string {
	return fmt.Sprintf("%s|%s", vaultID, userID)
}

func (f *fakeSharingsRepo) Create(ctx context.Context, s *models.VaultSharing) (*models.VaultSharing, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	key := sharingKey(s.VaultID, s.SharedWithUserID)
	// mirrors the unique constraint on (vault_id, shared_with_user_id)
	if _, ok := f.byKey[key]; ok {
		return nil, common.ErrorAlreadyExists
	}
	s.CreatedAt = time.Now()
	f.byKey[key] = s
	return s, nil
}

func (f *fakeSharingsRepo) Get(ctx context.Context, vaultID, userID string) (*models.VaultSharing, error) {
	if s, ok := f.byKey[sharingKey(vaultID, userID)]; ok {
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSharingsRepo) ListByVault(ctx context.Context, vaultID string) ([]*models.VaultSharing, error) {
	result := []*models.VaultSharing{}
	for _, s := range f.byKey {
		if s.VaultID == vaultID {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeItemsRepo struct {
	entries []*models.PasswordEntry
	notes   []*models.SecureNote
	cards   []*models.CreditCard
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{}
}

func (f *fakeItemsRepo) CreatePasswordEntry(ctx context.Context, e *models.PasswordEntry) (*models.PasswordEntry, error) {
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeItemsRepo) CreateSecureNote(ctx context.Context, n *models.SecureNote) (*models.SecureNote, error) {
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeItemsRepo) CreateCreditCard(ctx context.Context, c *models.CreditCard) (*models.CreditCard, error) {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.cards = append(f.cards, c)
	return c, nil
}

// matches mirrors the ILIKE semantics of the real repository: empty query
// matches everything, otherwise case-insensitive substring over the fields.
func matches(query string, fields ...*string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range fields {
		if field == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

func matchesScope(vaultID string, categoryID *string, filter itemsrepo.Filter) bool {
	if filter.VaultID != nil && vaultID != *filter.VaultID {
		return false
	}
	if filter.CategoryID != nil {
		if categoryID == nil || *categoryID != *filter.CategoryID {
			return false
		}
	}
	return true
}

func (f *fakeItemsRepo) SearchPasswordEntries(ctx context.Context, filter itemsrepo.Filter) ([]*models.PasswordEntry, error) {
	result := []*models.PasswordEntry{}
	for _, e := range f.entries {
		if matchesScope(e.VaultID, e.CategoryID, filter) && matches(filter.Query, &e.Title, e.Username, e.URL, e.Notes) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) SearchSecureNotes(ctx context.Context, filter itemsrepo.Filter) ([]*models.SecureNote, error) {
	result := []*models.SecureNote{}
	for _, n := range f.notes {
		if matchesScope(n.VaultID, n.CategoryID, filter) && matches(filter.Query, &n.Title) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) SearchCreditCards(ctx context.Context, filter itemsrepo.Filter) ([]*models.CreditCard, error) {
	result := []*models.CreditCard{}
	for _, c := range f.cards {
		if matchesScope(c.VaultID, c.CategoryID, filter) && matches(filter.Query, &c.Title, &c.CardholderName) {
			result = append(result, c)
		}
	}
	return result, nil
}

type fakeRepoManager struct {
	users      *fakeUsersRepo
	vaults     *fakeVaultsRepo
	categories *fakeCategoriesRepo
	items      *fakeItemsRepo
	sharings   *fakeSharingsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:      newFakeUsersRepo(),
		vaults:     newFakeVaultsRepo(),
		categories: newFakeCategoriesRepo(),
		items:      newFakeItemsRepo(),
		sharings:   newFakeSharingsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.users }
func (m *fakeRepoManager) Vaults(db dbx.DBTX) vaultsrepo.Repository         { return m.vaults }
func (m *fakeRepoManager) Categories(db dbx.DBTX) categoriesrepo.Repository { return m.categories }
func (m *fakeRepoManager) Items(db dbx.DBTX) itemsrepo.Repository           { return m.items }
func (m *fakeRepoManager) Sharings(db dbx.DBTX) sharingsrepo.Repository     { return m.sharings }

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// seedUser registers a user directly in the fakes.
func seedUser(rm *fakeRepoManager, id, email string) *models.User {
	u := &models.User{ID: id, Email: email, PasswordHash: "x"}
	rm.users.byID[id] = u
	return u
}

// seedVault registers a vault with fresh key material directly in the fakes.
func seedVault(rm *fakeRepoManager, id, ownerID string) *models.Vault {
	v := &models.Vault{ID: id, Name: "vault-" + id, OwnerID: ownerID,
		KeyMaterial: common.GenerateRandByteArray(32)}
	rm.vaults.byID[id] = v
	return v
}

// seedSharing adds a grant directly in the fakes.
func seedSharing(rm *fakeRepoManager, vaultID, userID string, level models.PermissionLevel) {
	rm.sharings.byKey[sharingKey(vaultID, userID)] = &models.VaultSharing{
		ID: "s-" + vaultID + "-" + userID, VaultID: vaultID,
		SharedWithUserID: userID, Level: level,
	}
}

func strptr(s string) *string { return &s }
