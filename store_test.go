package qalampress

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPost(title, slug string) Post {
	now := time.Now().UTC()
	return Post{
		ID:             uuid.NewString(),
		Title:          title,
		Slug:           slug,
		Content:        "<p>content</p>",
		Language:       LanguageEnglish,
		SEOTitle:       title,
		SEODescription: "content",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestInsertAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	p := testPost("Test Post", "test-post")
	p.Image = "/uploads/a.jpg"
	p.Language = LanguageUrdu

	stored, err := s.InsertPost(p)
	if err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	if stored.Slug != "test-post" {
		t.Errorf("Slug = %q, want %q", stored.Slug, "test-post")
	}

	got, err := s.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Title != p.Title {
		t.Errorf("Title = %q, want %q", got.Title, p.Title)
	}
	if got.Content != p.Content {
		t.Errorf("Content = %q, want %q", got.Content, p.Content)
	}
	if got.Image != p.Image {
		t.Errorf("Image = %q, want %q", got.Image, p.Image)
	}
	if got.Language != LanguageUrdu {
		t.Errorf("Language = %q, want urdu", got.Language)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, p.CreatedAt)
	}

	bySlug, err := s.GetPostBySlug("test-post")
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if bySlug.ID != p.ID {
		t.Errorf("GetPostBySlug returned id %q, want %q", bySlug.ID, p.ID)
	}
}

func TestInsertPostDisambiguatesSlug(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.InsertPost(testPost("Hello World", "hello-world"))
	if err != nil {
		t.Fatalf("first InsertPost failed: %v", err)
	}
	second, err := s.InsertPost(testPost("Hello World", "hello-world"))
	if err != nil {
		t.Fatalf("second InsertPost failed: %v", err)
	}

	if first.Slug != "hello-world" {
		t.Errorf("first slug = %q, want hello-world", first.Slug)
	}
	if second.Slug != "hello-world-2" {
		t.Errorf("second slug = %q, want hello-world-2", second.Slug)
	}

	third, err := s.InsertPost(testPost("Hello World", "hello-world"))
	if err != nil {
		t.Fatalf("third InsertPost failed: %v", err)
	}
	if third.Slug != "hello-world-3" {
		t.Errorf("third slug = %q, want hello-world-3", third.Slug)
	}
}

func TestUpdatePost(t *testing.T) {
	s := setupTestStore(t)

	p, err := s.InsertPost(testPost("Original", "original"))
	if err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	p.Title = "Changed"
	p.Slug = "changed"
	p.UpdatedAt = time.Now().UTC().Add(time.Second)
	updated, err := s.UpdatePost(p)
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Slug != "changed" {
		t.Errorf("slug = %q, want changed", updated.Slug)
	}

	if _, err := s.GetPostBySlug("original"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old slug still resolves, err = %v", err)
	}
}

func TestUpdatePostKeepsOwnSlug(t *testing.T) {
	s := setupTestStore(t)

	p, err := s.InsertPost(testPost("Stable", "stable"))
	if err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	p.Content = "<p>new content</p>"
	updated, err := s.UpdatePost(p)
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Slug != "stable" {
		t.Errorf("slug = %q, want stable (unchanged)", updated.Slug)
	}
}

func TestUpdatePostSlugCollision(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.InsertPost(testPost("Taken", "taken")); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	p, err := s.InsertPost(testPost("Other", "other"))
	if err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	p.Slug = "taken"
	updated, err := s.UpdatePost(p)
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Slug != "taken-2" {
		t.Errorf("slug = %q, want taken-2", updated.Slug)
	}
}

func TestUpdateMissingPost(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.UpdatePost(testPost("Ghost", "ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeletePostIsIdempotent(t *testing.T) {
	s := setupTestStore(t)

	p, err := s.InsertPost(testPost("Doomed", "doomed"))
	if err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	if err := s.DeletePost(p.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPostByID(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still exists after delete, err = %v", err)
	}
	if err := s.DeletePost(p.ID); err != nil {
		t.Errorf("second DeletePost returned %v, want nil", err)
	}
	if err := s.DeletePost("never-existed"); err != nil {
		t.Errorf("DeletePost of unknown id returned %v, want nil", err)
	}
}

func TestListSummariesNewestFirst(t *testing.T) {
	s := setupTestStore(t)

	for _, title := range []string{"A", "B", "C"} {
		p := testPost(title, Slugify(title))
		if _, err := s.InsertPost(p); err != nil {
			t.Fatalf("InsertPost failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	summaries, err := s.ListSummaries()
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}
	want := []string{"C", "B", "A"}
	for i, title := range want {
		if summaries[i].Title != title {
			t.Errorf("summaries[%d].Title = %q, want %q", i, summaries[i].Title, title)
		}
	}
}

func TestListSitemapEntries(t *testing.T) {
	s := setupTestStore(t)

	entries, err := s.ListSitemapEntries()
	if err != nil {
		t.Fatalf("ListSitemapEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries for empty store, want 0", len(entries))
	}

	p, err := s.InsertPost(testPost("Mapped", "mapped"))
	if err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	entries, err = s.ListSitemapEntries()
	if err != nil {
		t.Fatalf("ListSitemapEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Slug != "mapped" {
		t.Fatalf("entries = %+v, want one entry for mapped", entries)
	}
	if !entries[0].UpdatedAt.Equal(p.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", entries[0].UpdatedAt, p.UpdatedAt)
	}
}
