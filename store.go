package qalampress

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// maxSlugAttempts bounds the disambiguation loop when a derived slug
// collides with an existing post.
const maxSlugAttempts = 100

// Store wraps a SQLite database and provides CRUD operations for posts.
// Slug uniqueness is enforced by a UNIQUE constraint, so concurrent
// writes deriving the same slug cannot both succeed: the loser retries
// with a counter suffix.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access and a busy timeout so writers
	// wait instead of returning SQLITE_BUSY immediately.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT 'english',
    seo_title TEXT NOT NULL DEFAULT '',
    seo_description TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`)
	return err
}

func isSlugConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: posts.slug")
}

// candidateSlug returns the nth disambiguated form of a base slug:
// base, base-2, base-3, ...
func candidateSlug(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// InsertPost persists a new post. p.Slug is treated as the desired base
// slug; on collision a counter suffix is appended until the insert
// succeeds. The stored post, including its final slug, is returned.
func (s *Store) InsertPost(p Post) (Post, error) {
	for n := 1; n <= maxSlugAttempts; n++ {
		slug := candidateSlug(p.Slug, n)
		_, err := s.db.Exec(
			`INSERT INTO posts (id, title, slug, content, image, language, seo_title, seo_description, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, slug, p.Content, p.Image, string(p.Language),
			p.SEOTitle, p.SEODescription, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano(),
		)
		if isSlugConflict(err) {
			continue
		}
		if err != nil {
			return Post{}, fmt.Errorf("insert post: %w", err)
		}
		p.Slug = slug
		return p, nil
	}
	return Post{}, fmt.Errorf("insert post: no free slug for %q after %d attempts", p.Slug, maxSlugAttempts)
}

// UpdatePost overwrites the stored row for p.ID. As with InsertPost,
// p.Slug is the desired base slug and collisions with other posts are
// resolved with a counter suffix; keeping the post's own slug never
// conflicts because the row being updated holds it.
func (s *Store) UpdatePost(p Post) (Post, error) {
	for n := 1; n <= maxSlugAttempts; n++ {
		slug := candidateSlug(p.Slug, n)
		res, err := s.db.Exec(
			`UPDATE posts SET title = ?, slug = ?, content = ?, image = ?, language = ?,
			 seo_title = ?, seo_description = ?, updated_at = ? WHERE id = ?`,
			p.Title, slug, p.Content, p.Image, string(p.Language),
			p.SEOTitle, p.SEODescription, p.UpdatedAt.UnixNano(), p.ID,
		)
		if isSlugConflict(err) {
			continue
		}
		if err != nil {
			return Post{}, fmt.Errorf("update post: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return Post{}, fmt.Errorf("update post: %w", err)
		}
		if affected == 0 {
			return Post{}, ErrNotFound
		}
		p.Slug = slug
		return p, nil
	}
	return Post{}, fmt.Errorf("update post: no free slug for %q after %d attempts", p.Slug, maxSlugAttempts)
}

// DeletePost removes a post by id. Deleting an id that does not exist
// is a no-op, not an error.
func (s *Store) DeletePost(id string) error {
	if _, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

const postColumns = `id, title, slug, content, image, language, seo_title, seo_description, created_at, updated_at`

func scanPost(row *sql.Row) (Post, error) {
	var p Post
	var lang string
	var created, updated int64
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Image, &lang,
		&p.SEOTitle, &p.SEODescription, &created, &updated)
	if err == sql.ErrNoRows {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("scan post: %w", err)
	}
	p.Language = Language(lang)
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return p, nil
}

// GetPostByID returns a single post by id.
func (s *Store) GetPostByID(id string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPostBySlug returns a single post by its public slug.
func (s *Store) GetPostBySlug(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// ListSummaries returns every post as a list projection, newest first.
func (s *Store) ListSummaries() ([]PostSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, title, slug, image, language, seo_description, created_at
		 FROM posts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	summaries := []PostSummary{}
	for rows.Next() {
		var sum PostSummary
		var lang string
		var created int64
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Slug, &sum.Image, &lang, &sum.SEODescription, &created); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.Language = Language(lang)
		sum.CreatedAt = time.Unix(0, created).UTC()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return summaries, nil
}

// ListSitemapEntries returns the slug and last-modified time of every
// post, most recently updated first, for the sitemap feed.
func (s *Store) ListSitemapEntries() ([]SitemapEntry, error) {
	rows, err := s.db.Query(`SELECT slug, updated_at FROM posts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sitemap entries: %w", err)
	}
	defer rows.Close()

	var entries []SitemapEntry
	for rows.Next() {
		var e SitemapEntry
		var updated int64
		if err := rows.Scan(&e.Slug, &updated); err != nil {
			return nil, fmt.Errorf("scan sitemap entry: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sitemap entries: %w", err)
	}
	return entries, nil
}
