package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"unimarket/internal/infra/storage"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	store := storage.NewMemFileStore()
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(store, slog.Default(), "/images/products", 3)
	handler.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return handler
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("image", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, handler *Handler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Upload(c))

	return rec
}

func TestUpload_StoresFileAndReturnsPath(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartBody(t,
		map[string]string{"productId": "prod-1"},
		map[string][]byte{"blue couch.png": []byte("png-bytes")},
	)
	rec := doUpload(t, handler, body, contentType)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "prod-1-blue-couch.png", resp["filename"])
	assert.Equal(t, "/images/products/prod-1-blue-couch.png", resp["path"])

	reader, err := handler.store.Read(context.Background(), "prod-1-blue-couch.png")
	require.NoError(t, err)
	defer reader.Close()
	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestUpload_TimestampPrefixWithoutProductID(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartBody(t, nil,
		map[string][]byte{"desk lamp.jpg": []byte("jpg-bytes")},
	)
	rec := doUpload(t, handler, body, contentType)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1700000000000-desk-lamp.jpg", resp["filename"])
}

func TestUpload_ExplicitFilenameWinsVerbatim(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartBody(t,
		map[string]string{"filename": "cover.webp", "productId": "prod-9"},
		map[string][]byte{"original.png": []byte("bytes")},
	)
	rec := doUpload(t, handler, body, contentType)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cover.webp", resp["filename"])
	assert.Equal(t, "/images/products/cover.webp", resp["path"])
}

func TestUpload_SameNameSilentlyOverwrites(t *testing.T) {
	handler := newTestHandler(t)

	first, firstType := multipartBody(t,
		map[string]string{"filename": "cover.png"},
		map[string][]byte{"a.png": []byte("first")},
	)
	doUpload(t, handler, first, firstType)

	second, secondType := multipartBody(t,
		map[string]string{"filename": "cover.png"},
		map[string][]byte{"b.png": []byte("second")},
	)
	doUpload(t, handler, second, secondType)

	reader, err := handler.store.Read(context.Background(), "cover.png")
	require.NoError(t, err)
	defer reader.Close()
	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), stored)
}

func TestUpload_MissingFilePartReturns400(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartBody(t, map[string]string{"productId": "prod-1"}, nil)
	rec := doUpload(t, handler, body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "No file uploaded", resp["message"])
}

func TestUploadMultiple_StoresEveryFile(t *testing.T) {
	handler := newTestHandler(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("productId", "prod-7"))
	for _, name := range []string{"one.png", "two.png"} {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload-multiple", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.UploadMultiple(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Files   []uploadedFile `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Files, 2)
	assert.Equal(t, "prod-7-one.png", resp.Files[0].Filename)
	assert.Equal(t, "/images/products/prod-7-two.png", resp.Files[1].Path)
}

func TestUploadMultiple_TooManyFilesRejected(t *testing.T) {
	handler := newTestHandler(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range []string{"1.png", "2.png", "3.png", "4.png"} {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload-multiple", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.UploadMultiple(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_ReturnsStoredBytes(t *testing.T) {
	handler := newTestHandler(t)

	require.NoError(t, handler.store.Write(
		context.Background(), "photo.png", "image/png", bytes.NewReader([]byte("stored"))))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/images/products/photo.png", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues("photo.png")

	require.NoError(t, handler.Serve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "stored", rec.Body.String())
}

func TestServe_MissingFileReturns404(t *testing.T) {
	handler := newTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/images/products/nope.png", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues("nope.png")

	require.NoError(t, handler.Serve(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
