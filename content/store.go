package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("content: post not found")

// fallbackSlug is used when a post has neither a slug nor a title that
// slugifies to anything.
const fallbackSlug = "untitled-post"

// matter is the YAML front matter block written at the top of every
// post file.
type matter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
	Tags        string `yaml:"tags"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

// Store reads and writes posts in a single directory. It keeps no
// state beyond the directory path; callers always see the filesystem
// as it is right now.
type Store struct {
	dir string
}

// NewStore creates a Store over dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("content: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the posts directory.
func (s *Store) Dir() string {
	return s.dir
}

// filename derives the on-disk name for a slug and draft state. The
// prefix always follows the status, never the other way around.
func filename(slug string, draft bool) string {
	if draft {
		return DraftPrefix + slug + ".md"
	}
	return slug + ".md"
}

// findPath returns the existing file for slug, trying the published
// name first, then the draft name.
func (s *Store) findPath(slug string) (string, bool) {
	for _, name := range []string{filename(slug, false), filename(slug, true)} {
		p := filepath.Join(s.dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}

// ListAll returns every post in the directory, drafts included, in no
// particular order. Files that fail to parse are skipped.
func (s *Store) ListAll() ([]Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("content: read dir: %w", err)
	}
	var posts []Post
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		p, err := s.read(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Load returns the post with the given slug, draft or published.
func (s *Store) Load(slug string) (Post, error) {
	path, ok := s.findPath(slug)
	if !ok {
		return Post{}, ErrNotFound
	}
	return s.read(path)
}

// read parses one post file. Slug and draft state come from the
// filename, which wins over a stale status field inside the file.
func (s *Store) read(path string) (Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return Post{}, fmt.Errorf("content: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var m matter
	body, err := frontmatter.Parse(f, &m)
	if err != nil {
		return Post{}, fmt.Errorf("content: parse %s: %w", filepath.Base(path), err)
	}

	name := strings.TrimSuffix(filepath.Base(path), ".md")
	draft := strings.HasPrefix(name, DraftPrefix)
	slug := strings.TrimPrefix(name, DraftPrefix)

	status := StatusPublished
	if draft {
		status = StatusDraft
	}
	category := m.Category
	if category == "" {
		category = DefaultCategory
	}
	return Post{
		Slug:        slug,
		Title:       m.Title,
		Date:        m.Date,
		Category:    category,
		Tags:        m.Tags,
		Description: m.Description,
		Status:      status,
		Body:        strings.TrimLeft(string(body), "\n"),
	}, nil
}

// Save writes the post and returns the slug it was stored under. A new
// post gets its slug from the title; an edit keeps its slug. The whole
// file is replaced in a single atomic write. When an edit lands on a
// different filename (slug or draft state changed) the old file is
// removed only after the new one is safely on disk. A brief window
// with both files is tolerated, a lost post is not.
func (s *Store) Save(p Post, previousSlug string) (string, error) {
	slug := previousSlug
	if slug == "" {
		slug = Slugify(p.Title)
	}
	if slug == "" {
		slug = fallbackSlug
	}
	if p.Status == "" {
		p.Status = StatusPublished
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}

	newPath := filepath.Join(s.dir, filename(slug, p.Status == StatusDraft))

	var buf bytes.Buffer
	buf.WriteString("---\n")
	fm, err := yaml.Marshal(matter{
		Title:       p.Title,
		Date:        p.Date,
		Category:    p.Category,
		Tags:        p.Tags,
		Description: p.Description,
		Status:      p.Status,
	})
	if err != nil {
		return "", fmt.Errorf("content: marshal front matter: %w", err)
	}
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(p.Body)

	if err := atomic.WriteFile(newPath, &buf); err != nil {
		return "", fmt.Errorf("content: write %s: %w", filepath.Base(newPath), err)
	}

	// Both filename variants of the previous slug are candidates for
	// removal: a status flip changes the prefix, an unrelated stale
	// twin should not survive either.
	if previousSlug != "" {
		for _, draft := range []bool{false, true} {
			oldPath := filepath.Join(s.dir, filename(previousSlug, draft))
			if oldPath == newPath {
				continue
			}
			if err := os.Remove(oldPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("content: remove %s: %w", filepath.Base(oldPath), err)
			}
		}
	}
	return slug, nil
}

// Delete removes the post with the given slug. Deleting a post that
// does not exist is not an error.
func (s *Store) Delete(slug string) error {
	path, ok := s.findPath(slug)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("content: remove %s: %w", filepath.Base(path), err)
	}
	return nil
}
