package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/lromero/tintero"
	"github.com/lromero/tintero/comments"
	"github.com/lromero/tintero/content"
	"github.com/lromero/tintero/stats"
)

// The built-in views are deliberately plain HTML written straight from
// Go. A real site replaces all of this with its own templ templates;
// the engine only ever sees templ.Component values.

func viewFuncs() tintero.ViewFuncs {
	return tintero.ViewFuncs{
		Home:           homeView,
		Post:           postView,
		AdminLogin:     adminLoginView,
		AdminDashboard: adminDashboardView,
		AdminEdit:      adminEditView,
		AdminComments:  adminCommentsView,
		NotFound:       notFoundView,
		ServerError:    serverErrorView,
	}
}

func esc(s string) string { return html.EscapeString(s) }

// page wraps body in the shared layout.
func page(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title></head><body>`, esc(title)); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func homeView(res content.Result, q content.Query, siteURL string) templ.Component {
	return page("Home", func(w io.Writer) error {
		fmt.Fprintf(w, `<h1>Blog</h1>
<form action="/" method="get"><input type="search" name="q" value="%s" placeholder="Search"><button>Go</button></form>`, esc(q.Text))

		fmt.Fprint(w, `<aside><h2>Categories</h2><ul>`)
		for cat, n := range res.Categories {
			fmt.Fprintf(w, `<li><a href="/?category=%s">%s</a> (%d)</li>`, url.QueryEscape(cat), esc(cat), n)
		}
		fmt.Fprint(w, `</ul><h2>Tags</h2><ul>`)
		for _, t := range res.Tags {
			fmt.Fprintf(w, `<li><a href="/?tag=%s">%s</a></li>`, url.QueryEscape(t), esc(t))
		}
		fmt.Fprint(w, `</ul></aside><main>`)

		for _, p := range res.Posts {
			fmt.Fprintf(w, `<article><h2><a href="%s">%s</a></h2>
<p>%s &middot; %s &middot; %d min read</p><p>%s</p></article>`,
				esc(p.Link()), esc(p.Title), esc(p.Date), esc(p.Category), p.ReadTime(), esc(p.Description))
		}
		if len(res.Posts) == 0 {
			fmt.Fprint(w, `<p>No posts found.</p>`)
		}

		fmt.Fprint(w, `<nav>`)
		if res.HasPrev {
			fmt.Fprintf(w, `<a href="%s">&larr; Newer</a> `, esc(pageLink(q, res.Page-1)))
		}
		if res.HasNext {
			fmt.Fprintf(w, `<a href="%s">Older &rarr;</a>`, esc(pageLink(q, res.Page+1)))
		}
		fmt.Fprint(w, `</nav></main>`)
		return nil
	})
}

func pageLink(q content.Query, page int) string {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	v.Set("page", fmt.Sprint(page))
	return "/?" + v.Encode()
}

func postView(post content.Post, body templ.Component, related []content.Post, commentsEnabled bool, siteURL string) templ.Component {
	return page(post.Title, func(w io.Writer) error {
		fmt.Fprintf(w, `<article><h1>%s</h1>
<p>%s &middot; %s &middot; %d min read</p>`,
			esc(post.Title), esc(post.Date), esc(post.Category), post.ReadTime())
		if tags := post.TagList(); len(tags) > 0 {
			fmt.Fprintf(w, `<p>Tags: %s</p>`, esc(strings.Join(tags, ", ")))
		}
		if err := body.Render(context.Background(), w); err != nil {
			return err
		}
		fmt.Fprint(w, `</article>`)

		if len(related) > 0 {
			fmt.Fprint(w, `<section><h2>Related</h2><ul>`)
			for _, p := range related {
				fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, esc(p.Link()), esc(p.Title))
			}
			fmt.Fprint(w, `</ul></section>`)
		}
		if commentsEnabled {
			// The comment widget talks to the comment service directly.
			fmt.Fprintf(w, `<section id="comments" data-slug="%s"><h2>Comments</h2></section>`, esc(post.Slug))
		}
		fmt.Fprint(w, `<p><a href="/">&larr; Back</a></p>`)
		return nil
	})
}

func adminLoginView(showError bool, csrfToken string) templ.Component {
	return page("Admin login", func(w io.Writer) error {
		if showError {
			fmt.Fprint(w, `<p>Wrong password.</p>`)
		}
		fmt.Fprintf(w, `<form action="/admin/login/" method="post">
<input type="hidden" name="_csrf" value="%s">
<input type="password" name="password" autofocus><button>Log in</button></form>`, esc(csrfToken))
		return nil
	})
}

func adminDashboardView(posts []content.Post, report stats.Report, message string, csrfToken string) templ.Component {
	return page("Admin", func(w io.Writer) error {
		if message != "" {
			fmt.Fprintf(w, `<p><em>%s</em></p>`, esc(message))
		}
		fmt.Fprintf(w, `<h1>Dashboard</h1>
<p><a href="/admin/new/">New post</a> &middot; <a href="/admin/comments/">Comments</a> &middot;
<a href="/admin/backup/">Backup</a> &middot; <a href="/admin/export-stats/">Export stats</a></p>
<h2>Visits (total %d)</h2><ul>`, report.Total)
		for _, d := range report.Days {
			bar := strings.Repeat("#", d.Count*20/report.MaxVisits)
			fmt.Fprintf(w, `<li>%s %s %d</li>`, esc(d.Date), bar, d.Count)
		}
		fmt.Fprint(w, `</ul><h2>Most read</h2><ol>`)
		for _, p := range report.Top {
			fmt.Fprintf(w, `<li>%s (%d)</li>`, esc(p.Slug), p.Count)
		}
		fmt.Fprint(w, `</ol><h2>Posts</h2><ul>`)
		for _, p := range posts {
			label := ""
			if p.Draft() {
				label = " [draft]"
			}
			fmt.Fprintf(w, `<li>%s &middot; <a href="/admin/edit/%s/">%s</a>%s</li>`,
				esc(p.Date), url.PathEscape(p.Slug), esc(p.Title), label)
		}
		fmt.Fprint(w, `</ul>`)
		return nil
	})
}

func adminEditView(post content.Post, isNew bool, csrfToken string) templ.Component {
	title := "Edit post"
	if isNew {
		title = "New post"
	}
	return page(title, func(w io.Writer) error {
		slug := post.Slug
		if isNew {
			slug = ""
		}
		fmt.Fprintf(w, `<h1>%s</h1>
<form action="/admin/save/" method="post">
<input type="hidden" name="_csrf" value="%s">
<input type="hidden" name="slug" value="%s">
<input name="title" value="%s" placeholder="Title">
<input name="date" value="%s" placeholder="YYYY-MM-DD">
<input name="category" value="%s" placeholder="Category">
<input name="tags" value="%s" placeholder="tag, another-tag">
<input name="description" value="%s" placeholder="Description">
<select name="status"><option value="published"%s>Published</option><option value="draft"%s>Draft</option></select>
<textarea name="content" rows="24">%s</textarea>
<button>Save</button></form>`,
			esc(title), esc(csrfToken), esc(slug), esc(post.Title), esc(post.Date),
			esc(post.Category), esc(post.Tags), esc(post.Description),
			selected(!post.Draft()), selected(post.Draft()), esc(post.Body))
		return nil
	})
}

func selected(on bool) string {
	if on {
		return " selected"
	}
	return ""
}

func adminCommentsView(pending []comments.Comment, csrfToken string) templ.Component {
	return page("Moderation", func(w io.Writer) error {
		fmt.Fprint(w, `<h1>Pending comments</h1>`)
		if len(pending) == 0 {
			fmt.Fprint(w, `<p>Nothing to moderate.</p>`)
			return nil
		}
		fmt.Fprint(w, `<ul>`)
		for _, cm := range pending {
			id := strconv.FormatFloat(cm.ID, 'f', -1, 64)
			fmt.Fprintf(w, `<li><strong>%s</strong> on <em>%s</em> (%s): %s
<form action="/admin/comments/%s/approve/" method="post" style="display:inline">
<input type="hidden" name="_csrf" value="%s"><input type="hidden" name="id" value="%s">
<button>Approve</button></form>
<form action="/admin/comments/%s/delete/" method="post" style="display:inline">
<input type="hidden" name="_csrf" value="%s"><input type="hidden" name="id" value="%s">
<button>Delete</button></form></li>`,
				esc(cm.Author), esc(cm.Slug), esc(cm.Date), esc(cm.Text),
				url.PathEscape(cm.Slug), esc(csrfToken), id,
				url.PathEscape(cm.Slug), esc(csrfToken), id)
		}
		fmt.Fprint(w, `</ul>`)
		return nil
	})
}

func notFoundView() templ.Component {
	return page("Not found", func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>404</h1><p>That page does not exist. <a href="/">Home</a></p>`)
		return err
	})
}

func serverErrorView() templ.Component {
	return page("Server error", func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>500</h1><p>Something broke. <a href="/">Home</a></p>`)
		return err
	})
}
