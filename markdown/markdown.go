// Package markdown renders post bodies to HTML, exposed both as a raw
// string (for feeds) and as a templ component (for pages).
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is configured once: tables and strikethrough on, single newlines
// become <br>, raw HTML in post bodies passes through (only admins
// write posts).
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// Render converts markdown source to HTML.
func Render(source string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// Markdown returns a templ.Component that renders source as HTML.
func Markdown(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(source))
		return err
	})
}
