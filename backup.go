package tintero

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
)

// handleBackup streams a zip of the posts and uploads directories as a
// download. The archive is staged in the temp dir and removed after
// the response is written.
func (a *App) handleBackup(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	name := fmt.Sprintf("blog_backup_%s.zip", time.Now().Format("20060102_150405"))
	path := filepath.Join(os.TempDir(), name)

	if err := writeBackup(path, map[string]string{
		"content": a.Content.Dir(),
		"uploads": filepath.Join(a.staticDir, uploadsSubdir),
	}); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	defer os.Remove(path)

	return c.Attachment(path, name)
}

// writeBackup zips each named directory under its prefix. Missing
// directories are skipped so a site with no uploads still backs up.
func writeBackup(path string, dirs map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for prefix, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := addDir(zw, prefix, dir); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addDir(zw *zip.Writer, prefix, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(filepath.Join(prefix, rel)))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
}
