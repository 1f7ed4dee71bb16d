// The tintero-comments daemon is the decoupled comment service. It
// runs as its own process and shares the comments directory with the
// blog's admin moderation panel through the filesystem.
package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lromero/tintero"
	"github.com/lromero/tintero/comments"
)

func main() {
	store, err := comments.NewStore(tintero.EnvOr("COMMENTS_DIR", "data/comments"))
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	handler := comments.NewHandler(store)
	handler.RegisterRoutes(e, tintero.EnvOr("COMMENTS_ALLOWED_ORIGIN", ""))

	addr := tintero.EnvOr("COMMENTS_ADDR", ":5001")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
