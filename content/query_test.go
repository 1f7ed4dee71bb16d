package content

import (
	"fmt"
	"strings"
	"testing"
)

func testPosts() []Post {
	return []Post{
		{Slug: "go-basics", Title: "Go Basics", Date: "2024-01-01", Category: "Go", Tags: "go, tutorial", Body: "Learning the Go language."},
		{Slug: "go-testing", Title: "Testing in Go", Date: "2024-01-03", Category: "Go", Tags: "go, testing", Body: "Tests with the standard library."},
		{Slug: "rust-intro", Title: "Rust Intro", Date: "2024-01-02", Category: "Rust", Tags: "rust", Body: "Borrow checker adventures."},
		{Slug: "cooking", Title: "Weekend Cooking", Date: "2023-12-30", Category: "Life", Tags: "food", Body: "A go-to recipe for stew."},
		{Slug: "secret", Title: "Secret Draft", Date: "2024-02-01", Category: "Go", Tags: "go", Status: StatusDraft, Body: "Unfinished."},
	}
}

func TestSearchExcludesDrafts(t *testing.T) {
	res := Search(testPosts(), Query{})
	for _, p := range res.Posts {
		if p.Draft() {
			t.Errorf("draft %q leaked into the public listing", p.Slug)
		}
	}
	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}

	// Even when filters would match the draft exactly.
	res = Search(testPosts(), Query{Text: "unfinished"})
	if res.Total != 0 {
		t.Errorf("draft matched by filter: Total = %d, want 0", res.Total)
	}
}

func TestSearchSortsByDateDescending(t *testing.T) {
	res := Search(testPosts(), Query{})
	for i := 1; i < len(res.Posts); i++ {
		if res.Posts[i-1].Date < res.Posts[i].Date {
			t.Fatalf("posts out of order: %q before %q", res.Posts[i-1].Slug, res.Posts[i].Slug)
		}
	}
	if res.Posts[0].Slug != "go-testing" {
		t.Errorf("newest post = %q, want go-testing", res.Posts[0].Slug)
	}
}

func TestSearchConjunctiveFilters(t *testing.T) {
	posts := testPosts()

	// Text matches title or body, case-insensitively.
	res := Search(posts, Query{Text: "GO"})
	if res.Total != 3 {
		t.Errorf("text filter: Total = %d, want 3 (title, body, and go-to)", res.Total)
	}

	// Tag must be a member of the tag set; "go" in body is not enough.
	res = Search(posts, Query{Tag: "go"})
	if res.Total != 2 {
		t.Errorf("tag filter: Total = %d, want 2", res.Total)
	}

	// Category is case-insensitive equality.
	res = Search(posts, Query{Category: "go"})
	if res.Total != 2 {
		t.Errorf("category filter: Total = %d, want 2", res.Total)
	}

	// All three must hold at once.
	res = Search(posts, Query{Text: "testing", Tag: "go", Category: "Go"})
	if res.Total != 1 || res.Posts[0].Slug != "go-testing" {
		t.Errorf("conjunctive filter returned %v, want only go-testing", res.Posts)
	}

	// A post appears iff every predicate passes.
	res = Search(posts, Query{Text: "testing", Tag: "rust"})
	if res.Total != 0 {
		t.Errorf("disjoint filters: Total = %d, want 0", res.Total)
	}
}

func TestSearchSidebarCoversAllPublishedPosts(t *testing.T) {
	// Categories and tags are computed over every published post, not
	// just the filtered matches.
	res := Search(testPosts(), Query{Category: "Rust"})
	if res.Categories["Go"] != 2 || res.Categories["Rust"] != 1 || res.Categories["Life"] != 1 {
		t.Errorf("Categories = %v, want counts over all published posts", res.Categories)
	}
	want := []string{"food", "go", "rust", "testing", "tutorial"}
	if len(res.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", res.Tags, want)
	}
	for i, tag := range want {
		if res.Tags[i] != tag {
			t.Errorf("Tags[%d] = %q, want %q (sorted)", i, res.Tags[i], tag)
		}
	}
}

func TestSearchPagination(t *testing.T) {
	var posts []Post
	for i := 0; i < 19; i++ {
		posts = append(posts, Post{
			Slug:  fmt.Sprintf("post-%02d", i),
			Title: fmt.Sprintf("Post %02d", i),
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
		})
	}

	var seen []string
	page := 1
	for {
		res := Search(posts, Query{Page: page})
		if res.HasPrev != (page > 1) {
			t.Errorf("page %d: HasPrev = %v", page, res.HasPrev)
		}
		if res.HasNext != (page*PageSize < 19) {
			t.Errorf("page %d: HasNext = %v", page, res.HasNext)
		}
		for _, p := range res.Posts {
			seen = append(seen, p.Slug)
		}
		if !res.HasNext {
			break
		}
		page++
	}

	if page != 3 {
		t.Errorf("walked %d pages, want 3", page)
	}
	if len(seen) != 19 {
		t.Fatalf("concatenated pages hold %d posts, want 19", len(seen))
	}
	unique := make(map[string]bool)
	for _, s := range seen {
		if unique[s] {
			t.Errorf("post %q appeared on more than one page", s)
		}
		unique[s] = true
	}
	// Concatenation reproduces the full sorted listing.
	full := Search(posts, Query{Page: 1})
	if seen[0] != full.Posts[0].Slug {
		t.Errorf("first of concatenation = %q, want %q", seen[0], full.Posts[0].Slug)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i-1] < seen[i] {
			// Slugs were built so date order is reverse slug order.
			t.Errorf("concatenated listing out of date order at %d: %q, %q", i, seen[i-1], seen[i])
		}
	}
}

func TestSearchPageBeyondEnd(t *testing.T) {
	res := Search(testPosts(), Query{Page: 99})
	if len(res.Posts) != 0 {
		t.Errorf("expected empty page, got %d posts", len(res.Posts))
	}
	if res.HasNext {
		t.Error("HasNext should be false past the end")
	}
	if !res.HasPrev {
		t.Error("HasPrev should be true past page 1")
	}
}

func TestTagList(t *testing.T) {
	p := Post{Tags: " Go ,  Testing ,, WEB , "}
	got := p.TagList()
	want := []string{"go", "testing", "web"}
	if len(got) != len(want) {
		t.Fatalf("TagList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TagList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadTime(t *testing.T) {
	if got := (Post{Body: "short"}).ReadTime(); got != 1 {
		t.Errorf("ReadTime of tiny post = %d, want minimum 1", got)
	}
	long := strings.Repeat("word ", 600)
	if got := (Post{Body: long}).ReadTime(); got != 3 {
		t.Errorf("ReadTime of 600 words = %d, want 3", got)
	}
}

func TestRelated(t *testing.T) {
	posts := testPosts()
	current := posts[0] // go-basics: tags go, tutorial
	related := Related(current, posts)
	for _, p := range related {
		if p.Slug == current.Slug {
			t.Error("related includes the post itself")
		}
		if p.Draft() {
			t.Errorf("related includes draft %q", p.Slug)
		}
	}
	if len(related) != 1 || related[0].Slug != "go-testing" {
		t.Errorf("Related = %v, want only go-testing", related)
	}
}
