package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/storage"
)

func newMaterialFixture(maxBytes int64) (*MaterialService, *fakeMaterialRepo, *storage.Mem) {
	courses := &fakeCourseRepo{courses: map[int]*model.Course{
		7: {ID: 7, Prefix: "CSI", Number: 300, Section: "01"},
	}}
	materials := &fakeMaterialRepo{}
	store := storage.NewMem()
	svc := NewMaterialService(courses, materials, store, maxBytes, zerolog.Nop())
	return svc, materials, store
}

func TestUploadPersistsFileAndMetadata(t *testing.T) {
	svc, materials, store := newMaterialFixture(1 << 20)

	material, err := svc.Upload(context.Background(), 7, []byte("%PDF-1.4"), "Syllabus Fall 2026.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if material.CourseID != 7 {
		t.Errorf("course_id = %d, want 7", material.CourseID)
	}
	if material.FileName != "Syllabus Fall 2026.pdf" {
		t.Errorf("file_name = %q", material.FileName)
	}
	if !strings.HasPrefix(material.StoragePath, "courses/7/syllabus-fall-2026-") {
		t.Errorf("storage_path = %q, want courses/7/syllabus-fall-2026-* prefix", material.StoragePath)
	}
	if !strings.HasSuffix(material.StoragePath, ".pdf") {
		t.Errorf("storage_path = %q, want .pdf suffix", material.StoragePath)
	}

	exists, err := store.Exists(material.StoragePath)
	if err != nil || !exists {
		t.Errorf("file missing from store (exists=%v, err=%v)", exists, err)
	}
	if len(materials.created) != 1 {
		t.Errorf("created rows = %d, want 1", len(materials.created))
	}
}

func TestUploadUnsupportedTypeLeavesNothing(t *testing.T) {
	svc, materials, store := newMaterialFixture(1 << 20)

	_, err := svc.Upload(context.Background(), 7, []byte("MZ"), "tool.exe", "application/x-msdownload")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("err = %v, want ErrUnsupportedFileType", err)
	}

	if store.Len() != 0 {
		t.Errorf("store has %d files, want 0", store.Len())
	}
	if len(materials.created) != 0 {
		t.Errorf("created rows = %d, want 0", len(materials.created))
	}
}

func TestUploadTooLargeLeavesNothing(t *testing.T) {
	svc, materials, store := newMaterialFixture(4)

	_, err := svc.Upload(context.Background(), 7, []byte("12345"), "notes.txt", "text/plain")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}

	if store.Len() != 0 {
		t.Errorf("store has %d files, want 0", store.Len())
	}
	if len(materials.created) != 0 {
		t.Errorf("created rows = %d, want 0", len(materials.created))
	}
}

func TestUploadUnknownCourse(t *testing.T) {
	svc, _, store := newMaterialFixture(1 << 20)

	_, err := svc.Upload(context.Background(), 99, []byte("x"), "notes.txt", "text/plain")
	if !errors.Is(err, repository.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d files, want 0", store.Len())
	}
}

func TestUploadFailedInsertDeletesFile(t *testing.T) {
	svc, materials, store := newMaterialFixture(1 << 20)
	materials.createErr = errors.New("insert exploded")

	_, err := svc.Upload(context.Background(), 7, []byte("hello"), "notes.txt", "text/plain")
	if err == nil {
		t.Fatal("expected error")
	}

	if store.Len() != 0 {
		t.Errorf("store has %d files after failed insert, want 0", store.Len())
	}
}

func TestUploadSurvivesCanceledCaller(t *testing.T) {
	svc, materials, store := newMaterialFixture(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Course lookup uses a fake that ignores ctx; the detached write and
	// insert must both land despite the canceled caller.
	material, err := svc.Upload(ctx, 7, []byte("late bytes"), "late.txt", "text/plain")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	exists, _ := store.Exists(material.StoragePath)
	if !exists {
		t.Error("file missing after canceled-caller upload")
	}
	if len(materials.created) != 1 {
		t.Errorf("created rows = %d, want 1", len(materials.created))
	}
}

func TestUploadNormalizesDeclaredMIME(t *testing.T) {
	svc, _, _ := newMaterialFixture(1 << 20)

	_, err := svc.Upload(context.Background(), 7, []byte("hi"), "readme.txt", "Text/Plain; charset=utf-8")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
}

func TestDeleteRemovesRowThenFile(t *testing.T) {
	svc, materials, store := newMaterialFixture(1 << 20)

	material, err := svc.Upload(context.Background(), 7, []byte("bye"), "old.txt", "text/plain")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(context.Background(), 7, material.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(materials.created) != 0 {
		t.Errorf("rows = %d, want 0", len(materials.created))
	}
	if store.Len() != 0 {
		t.Errorf("store has %d files, want 0", store.Len())
	}

	if err := svc.Delete(context.Background(), 7, material.ID); !errors.Is(err, repository.ErrMaterialNotFound) {
		t.Errorf("second delete err = %v, want ErrMaterialNotFound", err)
	}
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	svc, _, store := newMaterialFixture(1 << 20)

	material, err := svc.Upload(context.Background(), 7, []byte("gone"), "gone.txt", "text/plain")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// Simulate a file someone removed out of band.
	if err := store.Delete(material.StoragePath); err != nil {
		t.Fatalf("prep delete failed: %v", err)
	}

	if err := svc.Delete(context.Background(), 7, material.ID); err != nil {
		t.Errorf("delete with missing file = %v, want nil", err)
	}
}

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Syllabus Fall 2026", "syllabus-fall-2026"},
		{"../../etc/passwd", "etc-passwd"},
		{"notes_v2", "notes_v2"},
		{"!!!", "file"},
		{"", "file"},
	}
	for _, tc := range cases {
		if got := sanitizeBaseName(tc.in); got != tc.want {
			t.Errorf("sanitizeBaseName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
