// Package worker holds the background loops that run alongside the HTTP
// server.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/storage"
)

// SweepStore is the store surface the sweeper needs: enumeration plus delete.
type SweepStore interface {
	storage.FileStore
	storage.Lister
}

// Sweeper periodically reclaims material files that have no metadata row.
// Such orphans appear when a metadata insert fails after its file was
// written and the compensating delete also fails. The grace period keeps the
// sweeper from racing an upload whose row has not committed yet.
type Sweeper struct {
	store        SweepStore
	materialRepo repository.MaterialRepository
	interval     time.Duration
	grace        time.Duration
	log          zerolog.Logger
}

// NewSweeper creates a new Sweeper.
func NewSweeper(
	store SweepStore,
	materialRepo repository.MaterialRepository,
	interval, grace time.Duration,
	log zerolog.Logger,
) *Sweeper {
	return &Sweeper{
		store:        store,
		materialRepo: materialRepo,
		interval:     interval,
		grace:        grace,
		log:          log.With().Str("component", "orphan_sweeper").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *Sweeper) Start(ctx context.Context) {
	w.log.Info().
		Dur("interval", w.interval).
		Dur("grace", w.grace).
		Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if n, err := w.SweepOnce(ctx); err != nil {
				w.log.Error().Err(err).Msg("Sweep failed")
			} else if n > 0 {
				w.log.Info().Int("reclaimed", n).Msg("Sweep reclaimed orphaned files")
			}
		}
	}
}

// SweepOnce runs a single sweep pass and returns how many files it reclaimed.
func (w *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	files, err := w.store.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-w.grace)
	reclaimed := 0
	for _, f := range files {
		if ctx.Err() != nil {
			return reclaimed, ctx.Err()
		}
		if f.ModTime.After(cutoff) {
			continue
		}

		exists, err := w.materialRepo.ExistsByStoragePath(ctx, f.Path)
		if err != nil {
			return reclaimed, err
		}
		if exists {
			continue
		}

		if err := w.store.Delete(f.Path); err != nil {
			if storage.IsNotExist(err) {
				continue
			}
			w.log.Warn().Err(err).Str("storage_path", f.Path).Msg("Failed to delete orphaned file")
			continue
		}
		w.log.Debug().Str("storage_path", f.Path).Msg("Deleted orphaned file")
		reclaimed++
	}
	return reclaimed, nil
}
