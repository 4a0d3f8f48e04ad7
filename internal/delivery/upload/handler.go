// Package upload implements the standalone image upload sidecar.
package upload

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"unimarket/internal/domain/service"
	"unimarket/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultMaxFiles = 10

// uploadedFile describes one stored object in the response payload.
type uploadedFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Handler serves the upload endpoints against a blob-backed file store.
type Handler struct {
	store        service.FileStore
	logger       *slog.Logger
	publicPrefix string
	maxFiles     int
	now          func() time.Time
}

// NewHandler is the constructor for the upload Handler.
func NewHandler(store service.FileStore, logger *slog.Logger, publicPrefix string, maxFiles int) *Handler {
	if publicPrefix == "" {
		publicPrefix = "/images/products"
	}
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	return &Handler{
		store:        store,
		logger:       logger,
		publicPrefix: publicPrefix,
		maxFiles:     maxFiles,
		now:          time.Now,
	}
}

// Upload stores one image from the "image" multipart field. The caller may
// pin the stored name via the "filename" form field; otherwise the name is
// derived from the productId (or a timestamp) and the sanitized original
// name. Existing objects with the same name are overwritten.
func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "No file uploaded",
		})
	}

	filename := h.storedName(c.FormValue("filename"), c.FormValue("productId"), fileHeader.Filename)
	if err := h.save(c, fileHeader, filename); err != nil {
		return errors.WithStack(err)
	}

	h.logger.Info("stored upload",
		"filename", filename,
		"size", util.FormatBytes(fileHeader.Size),
	)

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"filename": filename,
		"path":     h.publicPrefix + "/" + filename,
	})
}

// UploadMultiple stores every file from the "images" multipart field, capped
// at the configured maximum per request.
func (h *Handler) UploadMultiple(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "No file uploaded",
		})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "No file uploaded",
		})
	}
	if len(files) > h.maxFiles {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": fmt.Sprintf("Too many files, at most %d allowed", h.maxFiles),
		})
	}

	productID := c.FormValue("productId")
	stored := make([]uploadedFile, 0, len(files))
	for _, fileHeader := range files {
		filename := h.storedName("", productID, fileHeader.Filename)
		if err := h.save(c, fileHeader, filename); err != nil {
			return errors.WithStack(err)
		}
		stored = append(stored, uploadedFile{
			Filename: filename,
			Path:     h.publicPrefix + "/" + filename,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"files":   stored,
	})
}

// Serve streams a stored image back to the client.
func (h *Handler) Serve(c echo.Context) error {
	filename := c.Param("filename")

	reader, err := h.store.Read(c.Request().Context(), filename)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"message": "Image not found",
		})
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, util.ContentTypeForFilename(filename), reader)
}

// storedName picks the blob key for an upload. A caller-supplied name wins
// verbatim; otherwise the key is "<productId or unix millis>-<sanitized
// original name>".
func (h *Handler) storedName(requested, productID, original string) string {
	if requested != "" {
		return requested
	}

	prefix := productID
	if prefix == "" {
		prefix = fmt.Sprintf("%d", h.now().UnixMilli())
	}

	return prefix + "-" + util.SanitizeFilename(original)
}

func (h *Handler) save(c echo.Context, fileHeader *multipart.FileHeader, filename string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.ContentTypeForFilename(filename)
	}

	return h.store.Write(c.Request().Context(), filename, contentType, src)
}
