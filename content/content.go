// Package content stores blog posts as markdown files with YAML front
// matter and answers listing queries over them. The filesystem is the
// database: every call rescans the posts directory, which is plenty at
// the tens-to-hundreds-of-posts scale this engine targets.
package content

import (
	"math"
	"strings"
)

// Post statuses. DraftPrefix marks draft files on disk so published
// listings can exclude them without opening the file.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"

	DraftPrefix = "draft_"
)

// DefaultCategory is applied when front matter carries no category.
const DefaultCategory = "Uncategorized"

// Post is one markdown document. Slug is derived from the filename and
// immutable once set; Status is the single source of truth for the
// draft/published state, with the store deriving the filename prefix
// from it on write.
type Post struct {
	Slug        string
	Title       string
	Date        string // expected YYYY-MM-DD; used as the sort key
	Category    string
	Tags        string // comma-separated, as authored
	Description string
	Status      string // StatusPublished or StatusDraft
	Body        string
}

// Draft reports whether the post is a draft.
func (p Post) Draft() bool {
	return p.Status == StatusDraft
}

// Link returns the public URL path for the post.
func (p Post) Link() string {
	return "/post/" + p.Slug + "/"
}

// TagList returns the normalized tag set: lowercase, trimmed,
// comma-split tokens with empties dropped.
func (p Post) TagList() []string {
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasTag reports whether tag is in the post's normalized tag set.
func (p Post) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range p.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

// ReadTime estimates reading time in minutes at 200 words per minute,
// never less than one minute.
func (p Post) ReadTime() int {
	words := len(strings.Fields(p.Body))
	minutes := int(math.Round(float64(words) / 200))
	if minutes < 1 {
		return 1
	}
	return minutes
}
