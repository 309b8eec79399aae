package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/service"
	"github.com/acadsys/registra-backend/internal/storage"
)

// uploadFixture wires an Upload route around a material service with a tiny
// size ceiling. The repositories are nil: the cases below must be rejected
// before the service ever touches them.
func uploadFixture(t *testing.T, maxBytes int64) (*gin.Engine, *storage.Mem) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMem()
	svc := service.NewMaterialService(nil, nil, store, maxBytes, zerolog.Nop())
	h := NewMaterialHandler(svc)

	r := gin.New()
	r.POST("/api/v1/courses/:id/materials", h.Upload)
	return r, store
}

func multipartFile(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()
	return body, w.FormDataContentType()
}

func uploadErrCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error == nil {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	return envelope.Error.Code
}

func TestUploadRejectsOversizedFileBeforeReading(t *testing.T) {
	r, store := uploadFixture(t, 16)

	body, contentType := multipartFile(t, "file", "slides.pdf", bytes.Repeat([]byte("x"), 64))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/1/materials", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := uploadErrCode(t, rec); code != "FILE_TOO_LARGE" {
		t.Fatalf("expected FILE_TOO_LARGE, got %s", code)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no file written, store has %d", store.Len())
	}
}

func TestUploadRequiresFilePart(t *testing.T) {
	r, store := uploadFixture(t, 16)

	body, contentType := multipartFile(t, "attachment", "slides.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/1/materials", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := uploadErrCode(t, rec); code != "FILE_REQUIRED" {
		t.Fatalf("expected FILE_REQUIRED, got %s", code)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no file written, store has %d", store.Len())
	}
}
