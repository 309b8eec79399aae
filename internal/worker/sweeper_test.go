package worker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/storage"
)

// pathSetRepo answers ExistsByStoragePath from a fixed set.
type pathSetRepo struct {
	known map[string]bool
}

func (r *pathSetRepo) Create(ctx context.Context, m *model.CourseMaterial) error { return nil }

func (r *pathSetRepo) GetForCourse(ctx context.Context, courseID, materialID int) (*model.CourseMaterial, error) {
	return nil, repository.ErrMaterialNotFound
}

func (r *pathSetRepo) ListByCourse(ctx context.Context, courseID int) ([]model.CourseMaterial, error) {
	return nil, nil
}

func (r *pathSetRepo) Delete(ctx context.Context, id int) error { return nil }

func (r *pathSetRepo) ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error) {
	return r.known[storagePath], nil
}

func (r *pathSetRepo) ListStoragePathsByCourse(ctx context.Context, courseID int) ([]string, error) {
	return nil, nil
}

func TestSweepOnceReclaimsAgedOrphans(t *testing.T) {
	store := storage.NewMem()
	repo := &pathSetRepo{known: map[string]bool{
		"courses/1/kept.pdf": true,
	}}

	for _, p := range []string{"courses/1/kept.pdf", "courses/1/orphan.pdf", "courses/2/orphan.txt"} {
		if err := store.Write(p, []byte("x")); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
		store.SetModTime(p, time.Now().Add(-2*time.Hour))
	}

	sweeper := NewSweeper(store, repo, time.Minute, time.Hour, zerolog.Nop())

	n, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 2 {
		t.Errorf("reclaimed = %d, want 2", n)
	}

	if exists, _ := store.Exists("courses/1/kept.pdf"); !exists {
		t.Error("file with a metadata row was deleted")
	}
	if exists, _ := store.Exists("courses/1/orphan.pdf"); exists {
		t.Error("aged orphan survived the sweep")
	}
}

func TestSweepOnceSparesRecentOrphans(t *testing.T) {
	store := storage.NewMem()
	repo := &pathSetRepo{known: map[string]bool{}}

	// Fresh orphan: could be an upload whose row has not committed yet.
	if err := store.Write("courses/1/in-flight.pdf", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	sweeper := NewSweeper(store, repo, time.Minute, time.Hour, zerolog.Nop())

	n, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 0 {
		t.Errorf("reclaimed = %d, want 0", n)
	}
	if exists, _ := store.Exists("courses/1/in-flight.pdf"); !exists {
		t.Error("recent orphan was deleted inside the grace period")
	}
}

func TestSweepOnceEmptyStore(t *testing.T) {
	sweeper := NewSweeper(storage.NewMem(), &pathSetRepo{known: map[string]bool{}}, time.Minute, time.Hour, zerolog.Nop())

	n, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 0 {
		t.Errorf("reclaimed = %d, want 0", n)
	}
}

func TestSweepOnceHonorsCancellation(t *testing.T) {
	store := storage.NewMem()
	for _, p := range []string{"a.txt", "b.txt"} {
		if err := store.Write(p, []byte("x")); err != nil {
			t.Fatalf("write: %v", err)
		}
		store.SetModTime(p, time.Now().Add(-2*time.Hour))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sweeper := NewSweeper(store, &pathSetRepo{known: map[string]bool{}}, time.Minute, time.Hour, zerolog.Nop())
	if _, err := sweeper.SweepOnce(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
