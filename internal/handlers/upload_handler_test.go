package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename, content, authHeader string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("title", "no file here"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func TestUploadHandler_UploadImage(t *testing.T) {
	t.Run("stores image", func(t *testing.T) {
		svc := &mockUploadService{path: "/uploads/abc.png"}
		w := httptest.NewRecorder()

		newTestRouter(testServices{upload: svc}).ServeHTTP(w, multipartRequest(t, "image", "cat.png", "png-bytes", bearer(t)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"success":true,"filePath":"/uploads/abc.png"}`, w.Body.String())
		assert.Equal(t, "png-bytes", svc.received)
		assert.Equal(t, "cat.png", svc.name)
	})

	t.Run("missing image field", func(t *testing.T) {
		svc := &mockUploadService{path: "/uploads/abc.png"}
		w := httptest.NewRecorder()

		newTestRouter(testServices{upload: svc}).ServeHTTP(w, multipartRequest(t, "", "", "", bearer(t)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"no file uploaded"}`, w.Body.String())
		assert.Empty(t, svc.name)
	})

	t.Run("wrong field name", func(t *testing.T) {
		svc := &mockUploadService{}
		w := httptest.NewRecorder()

		newTestRouter(testServices{upload: svc}).ServeHTTP(w, multipartRequest(t, "file", "cat.png", "x", bearer(t)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		svc := &mockUploadService{}

		w := doRequest(t, newTestRouter(testServices{upload: svc}), http.MethodPost, "/api/posts/upload", bearer(t), `{"image":"x"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires token", func(t *testing.T) {
		svc := &mockUploadService{}
		w := httptest.NewRecorder()

		newTestRouter(testServices{upload: svc}).ServeHTTP(w, multipartRequest(t, "image", "cat.png", "x", ""))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, svc.name)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &mockUploadService{err: errors.New("disk full")}
		w := httptest.NewRecorder()

		newTestRouter(testServices{upload: svc}).ServeHTTP(w, multipartRequest(t, "image", "cat.png", "x", bearer(t)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}
