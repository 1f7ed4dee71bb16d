package content

import (
	"sort"
	"strings"
)

// PageSize is the fixed number of posts per listing page.
const PageSize = 8

// Query describes one listing request. Empty filters match everything;
// Page is 1-based.
type Query struct {
	Text     string // case-insensitive substring of title or body
	Tag      string // exact member of the normalized tag set
	Category string // case-insensitive category equality
	Page     int
}

// Result is one page of the public listing. Categories and Tags are
// computed over every published post, not just the matching ones, so
// the sidebar stays stable while filtering.
type Result struct {
	Posts      []Post
	Categories map[string]int
	Tags       []string
	Page       int
	Total      int
	HasNext    bool
	HasPrev    bool
}

// Search filters, sorts, and paginates the given posts. Drafts never
// appear regardless of filters. All filter predicates are conjunctive.
func Search(posts []Post, q Query) Result {
	if q.Page < 1 {
		q.Page = 1
	}
	text := strings.ToLower(strings.TrimSpace(q.Text))
	tag := strings.ToLower(strings.TrimSpace(q.Tag))
	category := strings.ToLower(strings.TrimSpace(q.Category))

	res := Result{
		Categories: make(map[string]int),
		Page:       q.Page,
	}
	tagSet := make(map[string]struct{})

	var matches []Post
	for _, p := range posts {
		if p.Draft() {
			continue
		}
		res.Categories[p.Category]++
		for _, t := range p.TagList() {
			tagSet[t] = struct{}{}
		}
		if !matchPost(p, text, tag, category) {
			continue
		}
		matches = append(matches, p)
	}

	for t := range tagSet {
		res.Tags = append(res.Tags, t)
	}
	sort.Strings(res.Tags)

	SortByDate(matches)

	res.Total = len(matches)
	start := (q.Page - 1) * PageSize
	end := start + PageSize
	if start < len(matches) {
		if end > len(matches) {
			end = len(matches)
		}
		res.Posts = matches[start:end]
	}
	res.HasNext = q.Page*PageSize < res.Total
	res.HasPrev = q.Page > 1
	return res
}

func matchPost(p Post, text, tag, category string) bool {
	if text != "" &&
		!strings.Contains(strings.ToLower(p.Title), text) &&
		!strings.Contains(strings.ToLower(p.Body), text) {
		return false
	}
	if tag != "" && !p.HasTag(tag) {
		return false
	}
	if category != "" && strings.ToLower(p.Category) != category {
		return false
	}
	return true
}

// Published returns the published posts sorted by date descending,
// ready for feeds and sitemaps.
func Published(posts []Post) []Post {
	var out []Post
	for _, p := range posts {
		if !p.Draft() {
			out = append(out, p)
		}
	}
	SortByDate(out)
	return out
}

// Related returns posts sharing at least one tag with current, in date
// order. Drafts and current itself are excluded.
func Related(current Post, posts []Post) []Post {
	want := make(map[string]struct{})
	for _, t := range current.TagList() {
		want[t] = struct{}{}
	}
	var related []Post
	for _, p := range posts {
		if p.Draft() || p.Slug == current.Slug {
			continue
		}
		for _, t := range p.TagList() {
			if _, ok := want[t]; ok {
				related = append(related, p)
				break
			}
		}
	}
	SortByDate(related)
	return related
}

// SortByDate orders posts newest first. Dates sort as strings, so
// anything non-ISO degrades silently rather than erroring.
func SortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}
