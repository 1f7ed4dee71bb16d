package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Title:       "Test Post",
		Date:        "2024-01-15",
		Category:    "Go",
		Tags:        "go, testing",
		Description: "A test post",
		Status:      StatusPublished,
		Body:        "# Heading\n\nSome body text.",
	}

	slug, err := s.Save(post, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if slug != "test-post" {
		t.Errorf("slug = %q, want %q", slug, "test-post")
	}

	got, err := s.Load("test-post")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Slug != "test-post" {
		t.Errorf("Slug = %q, want %q", got.Slug, "test-post")
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Date != post.Date {
		t.Errorf("Date = %q, want %q", got.Date, post.Date)
	}
	if got.Category != post.Category {
		t.Errorf("Category = %q, want %q", got.Category, post.Category)
	}
	if got.Tags != post.Tags {
		t.Errorf("Tags = %q, want %q", got.Tags, post.Tags)
	}
	if got.Description != post.Description {
		t.Errorf("Description = %q, want %q", got.Description, post.Description)
	}
	if got.Status != StatusPublished {
		t.Errorf("Status = %q, want %q", got.Status, StatusPublished)
	}
	if got.Body != post.Body {
		t.Errorf("Body = %q, want %q", got.Body, post.Body)
	}
}

func TestLoadNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Load("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveDraftUsesPrefixedFilename(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Save(Post{Title: "Work in Progress", Status: StatusDraft}, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "draft_work-in-progress.md")); err != nil {
		t.Fatalf("expected draft-prefixed file: %v", err)
	}

	got, err := s.Load(slug)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Draft() {
		t.Error("expected loaded post to be a draft")
	}
	if got.Slug != "work-in-progress" {
		t.Errorf("Slug = %q, want clean slug without prefix", got.Slug)
	}
}

func TestSaveStatusFlipRemovesOldFile(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Save(Post{Title: "Flip Me", Status: StatusDraft}, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	post, err := s.Load(slug)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	post.Status = StatusPublished
	if _, err := s.Save(post, slug); err != nil {
		t.Fatalf("Save flip failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.Dir(), "flip-me.md")); err != nil {
		t.Fatalf("expected published file after flip: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "draft_flip-me.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected draft file to be removed, got %v", err)
	}

	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 1 {
		t.Errorf("expected exactly one file per post, found %d", len(entries))
	}
}

func TestSaveUntitledFallsBack(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Save(Post{Title: "!!!"}, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if slug != "untitled-post" {
		t.Errorf("slug = %q, want %q", slug, "untitled-post")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := setupTestStore(t)

	slug, err := s.Save(Post{Title: "Short Lived"}, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Delete(slug); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Load(slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected post gone, got %v", err)
	}
	if err := s.Delete(slug); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
	if err := s.Delete("never-existed"); err != nil {
		t.Errorf("Delete of unknown slug should be a no-op, got %v", err)
	}
}

func TestListAllIncludesDrafts(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Save(Post{Title: "Published One", Date: "2024-01-01"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(Post{Title: "Draft One", Date: "2024-01-02", Status: StatusDraft}, ""); err != nil {
		t.Fatal(err)
	}

	posts, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("ListAll count = %d, want 2", len(posts))
	}
	drafts := 0
	for _, p := range posts {
		if p.Draft() {
			drafts++
		}
	}
	if drafts != 1 {
		t.Errorf("draft count = %d, want 1", drafts)
	}
}

func TestListAllSkipsNonMarkdown(t *testing.T) {
	s := setupTestStore(t)

	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("not a post"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(Post{Title: "Real Post"}, ""); err != nil {
		t.Fatal(err)
	}

	posts, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("ListAll count = %d, want 1", len(posts))
	}
}

func TestReadDefaultsCategory(t *testing.T) {
	s := setupTestStore(t)

	file := filepath.Join(s.Dir(), "no-category.md")
	raw := "---\ntitle: No Category\ndate: \"2024-03-01\"\n---\n\nBody."
	if err := os.WriteFile(file, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load("no-category")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", got.Category, DefaultCategory)
	}
}

func TestFilenamePrefixWinsOverStaleStatus(t *testing.T) {
	s := setupTestStore(t)

	// A draft-prefixed file whose front matter still claims published.
	raw := "---\ntitle: Mismatch\nstatus: published\n---\n\nBody."
	if err := os.WriteFile(filepath.Join(s.Dir(), "draft_mismatch.md"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load("mismatch")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Draft() {
		t.Error("expected the filename prefix to win over the stale status field")
	}
}
