// Package comments stores reader comments as one JSON array per post
// slug and exposes them through a small HTTP service. The comment
// service and the blog's admin moderation path are separate processes
// sharing these files with no locking; the lost-update window that
// opens under simultaneous writes is accepted at this scale.
package comments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// ErrInvalid is returned when a submitted comment is missing its
// author or text.
var ErrInvalid = errors.New("comments: author and text are required")

const dateFormat = "2006-01-02 15:04"

// Comment is one stored comment. ID is a Unix timestamp in float
// seconds, kept for compatibility with existing comment files; Add
// guarantees it is unique within a slug. Slug is only populated on
// moderation listings and never persisted.
type Comment struct {
	ID       float64 `json:"id"`
	Author   string  `json:"author"`
	Text     string  `json:"text"`
	Date     string  `json:"date"`
	Approved bool    `json:"approved"`

	Slug string `json:"-"`
}

// Store keeps per-slug comment files in a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a Store over dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("comments: create dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// file maps a slug to its comment file. Base strips any path segments
// a hostile slug might carry.
func (s *Store) file(slug string) string {
	return filepath.Join(s.dir, filepath.Base(slug)+".json")
}

// List returns the comments for slug, approved or not. A missing or
// unreadable file reads as no comments.
func (s *Store) List(slug string) []Comment {
	var list []Comment
	if data, err := os.ReadFile(s.file(slug)); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &list)
	}
	return list
}

// Add validates and appends a comment for slug, returning the stored
// record. The store is untouched when validation fails. New comments
// always start unapproved.
func (s *Store) Add(slug, author, text string) (Comment, error) {
	if strings.TrimSpace(author) == "" || strings.TrimSpace(text) == "" {
		return Comment{}, ErrInvalid
	}

	list := s.List(slug)
	now := s.now()
	c := Comment{
		ID:       uniqueID(float64(now.UnixNano())/1e9, list),
		Author:   author,
		Text:     text,
		Date:     now.Format(dateFormat),
		Approved: false,
	}
	list = append(list, c)
	if err := s.write(slug, list); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// uniqueID nudges a candidate timestamp id forward by a microsecond
// until it collides with nothing already stored for the slug.
func uniqueID(id float64, list []Comment) float64 {
	for {
		taken := false
		for _, c := range list {
			if c.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id += 1e-6
	}
}

// Approve marks the first comment with the given id as approved.
// A missing file or unknown id is a silent no-op.
func (s *Store) Approve(slug string, id float64) error {
	list := s.List(slug)
	for i := range list {
		if list[i].ID == id {
			list[i].Approved = true
			return s.write(slug, list)
		}
	}
	return nil
}

// Delete removes every comment with the given id and rewrites the
// file, even when the remaining list is empty. The file itself stays.
func (s *Store) Delete(slug string, id float64) error {
	list := s.List(slug)
	kept := list[:0]
	for _, c := range list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return s.write(slug, kept)
}

// Pending scans every comment file and returns the unapproved records
// tagged with their slug, newest submissions first.
func (s *Store) Pending() ([]Comment, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("comments: read dir: %w", err)
	}
	var pending []Comment
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		slug := strings.TrimSuffix(name, ".json")
		for _, c := range s.List(slug) {
			if c.Approved {
				continue
			}
			c.Slug = slug
			pending = append(pending, c)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ID > pending[j].ID
	})
	return pending, nil
}

func (s *Store) write(slug string, list []Comment) error {
	if list == nil {
		list = []Comment{}
	}
	data, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return fmt.Errorf("comments: marshal %s: %w", slug, err)
	}
	if err := atomic.WriteFile(s.file(slug), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("comments: write %s: %w", slug, err)
	}
	return nil
}
