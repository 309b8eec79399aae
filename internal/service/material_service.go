package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/storage"
)

// Sentinel errors for material uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Allowed course-material MIME types and their canonical extensions.
var allowedMaterialTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-powerpoint":                                             ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
	"application/vnd.rar":          ".rar",
	"application/x-rar-compressed": ".rar",
	"image/jpeg":                   ".jpg",
	"image/png":                    ".png",
	"image/gif":                    ".gif",
	"image/webp":                   ".webp",
	"text/plain":                   ".txt",
}

// MaterialService is material admission: it validates uploaded course files,
// persists bytes and metadata, and keeps the two consistent when either
// write fails.
type MaterialService struct {
	courseRepo   repository.CourseRepository
	materialRepo repository.MaterialRepository
	store        storage.FileStore
	maxBytes     int64
	log          zerolog.Logger
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(
	courseRepo repository.CourseRepository,
	materialRepo repository.MaterialRepository,
	store storage.FileStore,
	maxBytes int64,
	log zerolog.Logger,
) *MaterialService {
	return &MaterialService{
		courseRepo:   courseRepo,
		materialRepo: materialRepo,
		store:        store,
		maxBytes:     maxBytes,
		log:          log.With().Str("component", "material_service").Logger(),
	}
}

// MaxBytes is the upload size ceiling, exposed so callers can reject
// oversized files from the declared size before reading any bytes.
func (s *MaterialService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates and persists one uploaded file for a course. The file
// write, the metadata insert, and any compensating cleanup run detached from
// the caller's cancellation: a client disconnect mid-upload can never leave a
// file without a row or a row without a file.
func (s *MaterialService) Upload(ctx context.Context, courseID int, data []byte, declaredName, declaredMIME string) (*model.CourseMaterial, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	ext, ok := allowedMaterialTypes[normalizeMIME(declaredMIME)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, declaredMIME)
	}

	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, len(data), s.maxBytes)
	}

	storagePath := buildStoragePath(courseID, declaredName, ext)

	dctx := context.WithoutCancel(ctx)

	if err := s.store.Write(storagePath, data); err != nil {
		return nil, fmt.Errorf("write material: %w", err)
	}

	material := &model.CourseMaterial{
		CourseID:    courseID,
		FileName:    declaredName,
		StoragePath: storagePath,
	}
	if err := s.materialRepo.Create(dctx, material); err != nil {
		// The row never landed; take the file back out before surfacing.
		if delErr := s.store.Delete(storagePath); delErr != nil {
			s.log.Error().Err(delErr).
				Str("storage_path", storagePath).
				Msg("Orphaned file left behind after failed metadata insert")
		}
		return nil, err
	}

	return material, nil
}

// List retrieves the materials of a course.
func (s *MaterialService) List(ctx context.Context, courseID int) ([]model.CourseMaterial, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.materialRepo.ListByCourse(ctx, courseID)
}

// Delete removes a material row and then its backing file. The row goes
// first: if the row delete fails the file is untouched, and a file that is
// already gone counts as deleted.
func (s *MaterialService) Delete(ctx context.Context, courseID, materialID int) error {
	material, err := s.materialRepo.GetForCourse(ctx, courseID, materialID)
	if err != nil {
		return err
	}

	if err := s.materialRepo.Delete(ctx, material.ID); err != nil {
		return err
	}

	if err := s.store.Delete(material.StoragePath); err != nil && !storage.IsNotExist(err) {
		s.log.Warn().Err(err).
			Str("storage_path", material.StoragePath).
			Msg("Failed to delete material file; sweeper will reclaim it")
	}
	return nil
}

// normalizeMIME lowercases the declared type and drops any parameters
// (e.g. "text/plain; charset=utf-8").
func normalizeMIME(declared string) string {
	mime, _, _ := strings.Cut(declared, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}

// buildStoragePath derives a collision-free relative path for the upload:
// the sanitized original base name plus a timestamp and a random suffix,
// scoped under the course's directory. Uniqueness comes from the token, not
// from locking, so concurrent uploads of the same name never collide.
func buildStoragePath(courseID int, declaredName, ext string) string {
	base := strings.TrimSuffix(path.Base(declaredName), path.Ext(declaredName))
	base = sanitizeBaseName(base)

	token := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
	return fmt.Sprintf("courses/%d/%s-%s%s", courseID, base, token, ext)
}

// sanitizeBaseName keeps letters, digits, dashes, and underscores, replacing
// everything else so user-supplied names cannot escape the course directory.
func sanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	sanitized := strings.Trim(b.String(), "-")
	if sanitized == "" {
		sanitized = "file"
	}
	return sanitized
}
