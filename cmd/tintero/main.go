// The tintero binary runs the blog and admin server with a minimal
// built-in look. Site branding and every path come from environment
// variables; swap the views for your own templ components to restyle.
package main

import (
	"log"
	"os"

	"github.com/lromero/tintero"
)

func main() {
	cfg := tintero.SiteConfig{
		Name:        tintero.EnvOr("SITE_NAME", "Blog"),
		URL:         tintero.EnvOr("SITE_URL", "http://localhost:5000"),
		Description: tintero.EnvOr("SITE_DESCRIPTION", ""),
		Author:      tintero.EnvOr("SITE_AUTHOR", ""),

		Addr: tintero.EnvOr("ADDR", ":5000"),

		ContentDir:   tintero.EnvOr("CONTENT_DIR", "content"),
		StatsPath:    tintero.EnvOr("STATS_FILE", "data/stats.json"),
		SettingsPath: tintero.EnvOr("CONFIG_FILE", "data/config.json"),
		CommentsDir:  tintero.EnvOr("COMMENTS_DIR", "data/comments"),

		AdminPassword: tintero.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: tintero.MustEnv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") != "",
	}

	app := tintero.New(cfg, viewFuncs())
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
