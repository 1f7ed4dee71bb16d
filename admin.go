package tintero

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lromero/tintero/content"
	"github.com/lromero/tintero/settings"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) != 1 {
		a.loginLimiter.Record(ip)
		return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	// The author's own browsing stays out of the visit counters.
	a.setMetricsExemptCookie(c)
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if slug == "" {
		post := content.Post{
			Date:     time.Now().Format("2006-01-02"),
			Category: content.DefaultCategory,
			Status:   content.StatusPublished,
		}
		return Render(c, a.Views.AdminEdit(post, true, CsrfToken(c)))
	}
	post, err := a.Content.Load(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminEdit(post, false, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	previousSlug := strings.TrimSpace(c.FormValue("slug"))
	if title == "" && previousSlug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+is+required.")
	}
	date := normalizeDate(c.FormValue("date"))
	status := content.StatusPublished
	if c.FormValue("status") == content.StatusDraft {
		status = content.StatusDraft
	}
	post := content.Post{
		Title:       title,
		Date:        date,
		Category:    strings.TrimSpace(c.FormValue("category")),
		Tags:        strings.TrimSpace(c.FormValue("tags")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Status:      status,
		Body:        c.FormValue("content"),
	}
	if _, err := a.Content.Save(post, previousSlug); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=saved")
}

// normalizeDate defaults an empty date to today. Anything else passes
// through untouched: the date field is free-form text sorted lexically,
// so YYYY-MM-DD is expected but not enforced.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().Format("2006-01-02")
	}
	return s
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Content.Delete(c.Param("slug")); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	sorted := append([]content.Post(nil), posts...)
	content.SortByDate(sorted)
	return Render(c, a.Views.AdminDashboard(sorted, a.Stats.Report(), msg, CsrfToken(c)))
}

// Comment moderation reads the same files the comment service writes.

func (a *App) handleAdminComments(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	pending, err := a.Comments.Pending()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminComments(pending, CsrfToken(c)))
}

func (a *App) handleCommentApprove(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	id, err := strconv.ParseFloat(c.FormValue("id"), 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	// Unknown slug or id is a silent no-op.
	if err := a.Comments.Approve(slug, id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/comments/")
}

func (a *App) handleCommentDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	id, err := strconv.ParseFloat(c.FormValue("id"), 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := a.Comments.Delete(slug, id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/comments/")
}

func (a *App) handleAdminSettings(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	v := settings.Settings{
		CommentsEnabled: c.FormValue("comments_enabled") != "",
	}
	if err := a.Settings.Save(v); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=settings+saved")
}

func (a *App) handleExportStats(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return c.Attachment(a.Stats.Path(), "stats.json")
}
