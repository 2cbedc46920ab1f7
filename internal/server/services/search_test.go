package services

import (
	"context"
	"testing"

	"github.com/psemenov/passvault/internal/server/models"
)

func seedSearchFixtures(rm *fakeRepoManager) {
	owner := seedUser(rm, "a", "a@example.com")
	seedVault(rm, "v1", owner.ID)
	seedVault(rm, "v2", owner.ID)
	rm.categories.byID["work"] = &models.Category{ID: "work", Name: "Work", VaultID: "v1"}

	rm.items.entries = []*models.PasswordEntry{
		{ID: "e1", Title: "GitHub", Username: strptr("alice"), URL: strptr("https://github.com"),
			VaultID: "v1", CategoryID: strptr("work"), CreatedBy: "a"},
		{ID: "e2", Title: "Bank", Notes: strptr("joint account"),
			VaultID: "v1", CreatedBy: "a"},
		{ID: "e3", Title: "GitHub work", Username: strptr("bob"),
			VaultID: "v2", CreatedBy: "a"},
	}
	rm.items.notes = []*models.SecureNote{
		{ID: "n1", Title: "Recovery codes", EncryptedContent: []byte("ciphertext-github"),
			VaultID: "v1", CreatedBy: "a"},
	}
	rm.items.cards = []*models.CreditCard{
		{ID: "c1", Title: "Visa", CardholderName: "Alice Example",
			VaultID: "v1", CategoryID: strptr("work"), CreatedBy: "a"},
	}
}

func TestSearch_EmptyQueryMatchesEverything(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	seedSearchFixtures(rm)

	s := NewSearchService(db, rm)
	got, err := s.Search(context.Background(), SearchInput{Query: ""})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.PasswordEntries) != 3 || len(got.SecureNotes) != 1 || len(got.CreditCards) != 1 {
		t.Fatalf("unexpected counts: %d/%d/%d",
			len(got.PasswordEntries), len(got.SecureNotes), len(got.CreditCards))
	}
}

func TestSearch_NoMatchReturnsEmptyCollections(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	seedSearchFixtures(rm)

	s := NewSearchService(db, rm)
	got, err := s.Search(context.Background(), SearchInput{Query: "nonexistent-token"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if got.PasswordEntries == nil || got.SecureNotes == nil || got.CreditCards == nil {
		t.Fatalf("collections must be non-nil")
	}
	if len(got.PasswordEntries) != 0 || len(got.SecureNotes) != 0 || len(got.CreditCards) != 0 {
		t.Fatalf("expected three empty collections")
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	seedSearchFixtures(rm)

	s := NewSearchService(db, rm)
	got, err := s.Search(context.Background(), SearchInput{Query: "github"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	// matches e1 (title+url) and e3 (title); note content is ciphertext and
	// never searched even though it happens to contain the token
	if len(got.PasswordEntries) != 2 {
		t.Fatalf("password entries = %d, want 2", len(got.PasswordEntries))
	}
	if len(got.SecureNotes) != 0 {
		t.Fatalf("secure notes = %d, want 0 (content unsearchable)", len(got.SecureNotes))
	}
}

func TestSearch_MatchesUsernameNotesAndCardholder(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	seedSearchFixtures(rm)
	s := NewSearchService(db, rm)

	got, err := s.Search(context.Background(), SearchInput{Query: "ALICE"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.PasswordEntries) != 1 || got.PasswordEntries[0].ID != "e1" {
		t.Fatalf("expected username match on e1")
	}
	if len(got.CreditCards) != 1 || got.CreditCards[0].ID != "c1" {
		t.Fatalf("expected cardholder match on c1")
	}

	got, err = s.Search(context.Background(), SearchInput{Query: "joint"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.PasswordEntries) != 1 || got.PasswordEntries[0].ID != "e2" {
		t.Fatalf("expected notes match on e2")
	}
}

func TestSearch_VaultAndCategoryFilters(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	seedSearchFixtures(rm)
	s := NewSearchService(db, rm)

	got, err := s.Search(context.Background(), SearchInput{Query: "github", VaultID: strptr("v1")})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.PasswordEntries) != 1 || got.PasswordEntries[0].ID != "e1" {
		t.Fatalf("vault filter: expected only e1")
	}

	// items without a category never match a concrete category filter
	got, err = s.Search(context.Background(), SearchInput{Query: "", CategoryID: strptr("work")})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.PasswordEntries) != 1 || got.PasswordEntries[0].ID != "e1" {
		t.Fatalf("category filter: expected only e1, got %d entries", len(got.PasswordEntries))
	}
	if len(got.SecureNotes) != 0 {
		t.Fatalf("category filter must exclude uncategorized notes")
	}
	if len(got.CreditCards) != 1 {
		t.Fatalf("category filter: expected c1")
	}
}

func TestSearch_TypeRestrictsBuckets(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	seedSearchFixtures(rm)
	s := NewSearchService(db, rm)

	got, err := s.Search(context.Background(), SearchInput{Query: "", Type: TypeSecureNote})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got.SecureNotes) != 1 {
		t.Fatalf("secure notes = %d, want 1", len(got.SecureNotes))
	}
	// unrequested buckets are present but empty
	if got.PasswordEntries == nil || len(got.PasswordEntries) != 0 {
		t.Fatalf("password bucket must be empty, non-nil")
	}
	if got.CreditCards == nil || len(got.CreditCards) != 0 {
		t.Fatalf("card bucket must be empty, non-nil")
	}
}
