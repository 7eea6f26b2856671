package atelier

import (
	"bytes"
	"encoding/base64"
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
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// if wider, and encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	filename := slugifyFilename(originalName) + ".jpg"

	return Image{
		Filename:     filename,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	s := Slugify(base)
	if s == "" {
		s = "image"
	}
	return s
}

// decodeBase64Image accepts either a bare base64 payload or a full
// data-URL ("data:image/png;base64,....") as sent by browser file readers.
func decodeBase64Image(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return data, nil
}

// ensureUniqueFilename appends a counter if filename already exists in the
// uploads directory or the metadata table.
func (a *App) ensureUniqueFilename(img *Image) {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	counter := 1
	existing, _ := a.Store.ListImages()
	taken := make(map[string]struct{}, len(existing))
	for _, ex := range existing {
		taken[ex.Filename] = struct{}{}
	}
	for {
		_, onDisk := os.Stat(filepath.Join(dir, candidate))
		_, inDB := taken[candidate]
		if onDisk != nil && !inDB {
			break
		}
		counter++
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
	img.Filename = candidate
}

// storeUpload runs the shared tail of both upload paths: unique name, write
// to the uploads dir, record metadata. Returns the public URL of the image.
func (a *App) storeUpload(img Image, data []byte) (string, error) {
	a.ensureUniqueFilename(&img)

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.Filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveImage(img); err != nil {
		return "", err
	}
	return "/public/" + uploadsSubdir + "/" + img.Filename, nil
}

// handleImageUpload serves the admin dashboard's multipart form uploads.
func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}
	if _, err := a.storeUpload(img, data); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=uploaded")
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	filename := c.Param("filename")
	if filename == "" || filename != filepath.Base(filename) {
		return c.String(http.StatusBadRequest, "Filename required")
	}

	// ignore error if file already gone
	_ = os.Remove(filepath.Join(a.staticDir, uploadsSubdir, filename))

	if err := a.Store.DeleteImage(filename); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=image+deleted")
}

// handleAPIUpload serves the sync client's JSON upload contract:
// {"image": "<base64>"} in, {"url": "..."} out.
func (a *App) handleAPIUpload(c echo.Context) error {
	if !requireAdminJSON(c) {
		return nil
	}
	var body struct {
		Image string `json:"image"`
	}
	if err := c.Bind(&body); err != nil || body.Image == "" {
		return c.JSON(http.StatusBadRequest, apiError{Error: "image payload required"})
	}
	if len(body.Image) > maxUploadSize {
		return c.JSON(http.StatusBadRequest, apiError{Error: "file too large (max 10MB)"})
	}
	raw, err := decodeBase64Image(body.Image)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid base64 image"})
	}
	img, data, err := processImage(bytes.NewReader(raw), "upload")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid image", Details: err.Error()})
	}
	url, err := a.storeUpload(img, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
