package comments

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handler serves the public comment API. It runs in its own process,
// away from the blog, so the browser talks to it cross-origin.
type Handler struct {
	store       *Store
	postLimiter *rateLimiter
}

// NewHandler creates a Handler over the given store. Submissions are
// rate-limited to 10 per IP per minute.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:       store,
		postLimiter: newRateLimiter(10, time.Minute),
	}
}

// SubmitRequest is the expected body of a comment submission.
type SubmitRequest struct {
	Author string `json:"author" form:"author"`
	Text   string `json:"text" form:"text"`
}

// RegisterRoutes mounts the comment API on e. Origin restricts
// browser-originated calls; empty means any origin.
func (h *Handler) RegisterRoutes(e *echo.Echo, origin string) {
	if origin == "" {
		origin = "*"
	}
	g := e.Group("/comments", middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{origin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	g.GET("/:slug", h.ListComments)
	g.POST("/:slug", h.SubmitComment)
}

// ListComments returns the full comment array for a slug. An unknown
// slug is an empty array, not an error.
func (h *Handler) ListComments(c echo.Context) error {
	list := h.store.List(c.Param("slug"))
	if list == nil {
		list = []Comment{}
	}
	return c.JSON(http.StatusOK, list)
}

// SubmitComment validates and stores a new comment, pending approval.
func (h *Handler) SubmitComment(c echo.Context) error {
	if !h.postLimiter.allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many comments, slow down"})
	}

	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if _, err := h.store.Add(c.Param("slug"), req.Author, req.Text); err != nil {
		if errors.Is(err, ErrInvalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "author and text are required"})
		}
		c.Logger().Errorf("save comment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save comment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "comment submitted, pending approval"})
}
