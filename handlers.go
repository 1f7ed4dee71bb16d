package tintero

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lromero/tintero/content"
	"github.com/lromero/tintero/markdown"
	"github.com/lromero/tintero/stats"
)

func (a *App) handleHome(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	q := content.Query{
		Text:     c.QueryParam("q"),
		Tag:      c.QueryParam("tag"),
		Category: c.QueryParam("category"),
		Page:     page,
	}

	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	res := content.Search(posts, q)

	a.recordVisit(c, stats.HomePath)

	return Render(c, a.Views.Home(res, q, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Content.Load(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	// Drafts are reachable only through the admin panel.
	if post.Draft() {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}

	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}

	a.recordVisit(c, post.Slug)

	body := markdown.Markdown(post.Body)
	related := content.Related(post, posts)
	commentsEnabled := a.Settings.Load().CommentsEnabled
	return Render(c, a.Views.Post(post, body, related, commentsEnabled, a.Config.URL))
}

// recordVisit counts one page view unless the browser carries the
// metrics-exemption marker. Counting is best effort; a failed write is
// logged and the page still renders.
func (a *App) recordVisit(c echo.Context, path string) {
	if excludedFromMetrics(c) {
		return
	}
	if err := a.Stats.RecordVisit(path); err != nil {
		c.Logger().Errorf("record visit: %v", err)
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, content.Published(posts))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	return a.renderRSS(c, content.Published(posts))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
