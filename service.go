package qalampress

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// fallbackSlugBase is used when a title has no URL-safe characters at
// all, e.g. a title written entirely in Urdu script.
const fallbackSlugBase = "post"

// Service implements the blog operations: CRUD over the store plus the
// derivations the store does not know about (slugs, SEO fallbacks,
// language coercion, image ref normalization).
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// CreatePostInput carries the caller-supplied fields for a new post.
// Everything except Title and Content is optional.
type CreatePostInput struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	Language       string `json:"language"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	Image          string `json:"image"`
}

// UpdatePostInput carries a partial update: nil fields are left
// untouched, non-nil fields overwrite the stored value.
type UpdatePostInput struct {
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	Language       *string `json:"language"`
	SEOTitle       *string `json:"seoTitle"`
	SEODescription *string `json:"seoDescription"`
	Image          *string `json:"image"`
}

func slugBase(title string) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return fallbackSlugBase
}

// Create validates the input, derives slug and SEO fallbacks, and
// persists one new post. The returned post carries the generated id,
// the final (possibly disambiguated) slug, and timestamps.
func (s *Service) Create(in CreatePostInput) (Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Post{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return Post{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	seoTitle := strings.TrimSpace(in.SEOTitle)
	if seoTitle == "" {
		seoTitle = title
	}
	seoDescription := strings.TrimSpace(in.SEODescription)
	if seoDescription == "" {
		seoDescription = DeriveDescription(in.Content)
	}

	now := time.Now().UTC()
	post := Post{
		ID:             uuid.NewString(),
		Title:          title,
		Slug:           slugBase(title),
		Content:        in.Content,
		Image:          NormalizeImageRef(in.Image),
		Language:       CoerceLanguage(in.Language),
		SEOTitle:       seoTitle,
		SEODescription: seoDescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.store.InsertPost(post)
}

// Update applies a partial update to an existing post. A title change
// re-derives the slug, with the same collision handling as Create.
// CreatedAt never changes; UpdatedAt always does.
func (s *Service) Update(id string, in UpdatePostInput) (Post, error) {
	post, err := s.store.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Post{}, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		if title != post.Title {
			post.Title = title
			post.Slug = slugBase(title)
		}
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return Post{}, &ValidationError{Field: "content", Reason: "must not be empty"}
		}
		post.Content = *in.Content
	}
	if in.Language != nil {
		post.Language = CoerceLanguage(*in.Language)
	}
	if in.SEOTitle != nil {
		post.SEOTitle = strings.TrimSpace(*in.SEOTitle)
	}
	if in.SEODescription != nil {
		post.SEODescription = strings.TrimSpace(*in.SEODescription)
	}
	if in.Image != nil {
		post.Image = NormalizeImageRef(*in.Image)
	}

	// Cleared overrides fall back to the derived values so rendered
	// pages never ship empty metadata.
	if post.SEOTitle == "" {
		post.SEOTitle = post.Title
	}
	if post.SEODescription == "" {
		post.SEODescription = DeriveDescription(post.Content)
	}

	post.UpdatedAt = time.Now().UTC()
	return s.store.UpdatePost(post)
}

// Delete removes a post by id. Deleting an id that no longer exists is
// treated as success: the operation is idempotent at the service
// boundary, matching what callers of the delete endpoint have always
// observed.
func (s *Service) Delete(id string) error {
	return s.store.DeletePost(id)
}

// GetByID returns the full post for an id, or ErrNotFound.
func (s *Service) GetByID(id string) (Post, error) {
	return s.store.GetPostByID(id)
}

// GetBySlug returns the full post for a public slug, or ErrNotFound.
func (s *Service) GetBySlug(slug string) (Post, error) {
	return s.store.GetPostBySlug(slug)
}

// List returns all posts as summaries, newest first.
func (s *Service) List() ([]PostSummary, error) {
	return s.store.ListSummaries()
}
