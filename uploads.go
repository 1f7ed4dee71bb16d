package tintero

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/lromero/tintero/content"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// imageExts are re-encoded as resized JPEG; mediaExts are stored
// verbatim. Anything else is rejected.
var (
	imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}
	mediaExts = map[string]bool{".mp3": true, ".mp4": true}
)

// handleUpload accepts a media file from the admin editor and returns
// the public URL the editor inserts into the post body.
func (a *App) handleUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file part"})
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file too large (max 10MB)"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	var name string
	var data []byte
	switch {
	case imageExts[ext]:
		name, data, err = reencodeImage(src, file.Filename)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image: " + err.Error()})
		}
	case mediaExts[ext]:
		if data, err = io.ReadAll(src); err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		name = content.Slugify(base) + ext
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file type not allowed"})
	}

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	name = uniqueFilename(dir, name)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"url": "/static/" + uploadsSubdir + "/" + name})
}

// reencodeImage decodes an uploaded image, scales it down to at most
// maxImageWidth, and re-encodes it as JPEG under a slugified name.
func reencodeImage(src io.Reader, originalName string) (string, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	return content.Slugify(base) + ".jpg", buf.Bytes(), nil
}

// uniqueFilename appends a counter while the name is already taken.
func uniqueFilename(dir, name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for counter := 1; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, counter+1, ext)
	}
}
