// Package service implements the dataset ingest service
package service

import (
	"context"
	"time"

	"vidtally/internal/modkit/repokit"
	"vidtally/internal/platform/logger"
	"vidtally/internal/services/ingest/domain"
)

const defaultBatchSize = 500

// Config holds configuration options for the ingest service
type Config struct {
	// BatchSize is the number of videos per upsert statement; <=0 -> 500.
	// Snapshots flush at 20x this size since each video carries many
	BatchSize int
}

// Service implements domain.ImporterPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Loader domain.Loader
	Cfg    Config
}

// New constructs the ingest service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	loader domain.Loader,
	cfg Config,
) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Service{DB: db, Binder: binder, Loader: loader, Cfg: cfg}
}

// EnsureImported imports the dataset only when storage holds fewer rows
// than the file provides. Reports true when an import actually ran
func (s *Service) EnsureImported(ctx context.Context) (bool, error) {
	log := logger.Named("ingest")

	ds, dsErr := s.Loader.Load()

	videos, snapshots, cntErr := repokit.MustBind(s.Binder, s.DB).CountRows(ctx)

	if dsErr != nil {
		// An unreadable file is survivable when data is already in place
		if cntErr == nil && videos > 0 && snapshots > 0 {
			log.Warn().Err(dsErr).
				Int64("videos", videos).
				Int64("snapshots", snapshots).
				Msg("dataset unreadable, keeping existing rows")
			return false, nil
		}
		return false, dsErr
	}

	if cntErr != nil {
		log.Warn().Err(cntErr).Msg("row count check failed, importing anyway")
		_, err := s.write(ctx, ds)
		return err == nil, err
	}

	if videos >= int64(len(ds.Videos)) && snapshots >= int64(len(ds.Snapshots)) {
		log.Info().
			Int64("videos", videos).
			Int64("snapshots", snapshots).
			Int("expected_videos", len(ds.Videos)).
			Int("expected_snapshots", len(ds.Snapshots)).
			Msg("dataset already imported, skipping")
		return false, nil
	}

	log.Info().
		Int64("videos", videos).
		Int64("snapshots", snapshots).
		Int("expected_videos", len(ds.Videos)).
		Int("expected_snapshots", len(ds.Snapshots)).
		Msg("dataset import needed")
	_, err := s.write(ctx, ds)
	return err == nil, err
}

// Import loads the dataset and writes it unconditionally
func (s *Service) Import(ctx context.Context) (domain.Stats, error) {
	ds, err := s.Loader.Load()
	if err != nil {
		return domain.Stats{}, err
	}
	return s.write(ctx, ds)
}

// write upserts the whole dataset in one transaction, then refreshes the
// analytical mirror. Videos land before snapshots to satisfy the foreign key
func (s *Service) write(ctx context.Context, ds *domain.Dataset) (domain.Stats, error) {
	log := logger.Named("ingest")
	start := time.Now()

	videoBatch := s.Cfg.BatchSize
	snapshotBatch := videoBatch * 20

	err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		for off := 0; off < len(ds.Videos); off += videoBatch {
			if err := r.UpsertVideos(ctx, ds.Videos[off:min(off+videoBatch, len(ds.Videos))]); err != nil {
				return err
			}
		}
		for off := 0; off < len(ds.Snapshots); off += snapshotBatch {
			if err := r.UpsertSnapshots(ctx, ds.Snapshots[off:min(off+snapshotBatch, len(ds.Snapshots))]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Stats{}, err
	}

	mirrored, err := repokit.MustBind(s.Binder, s.DB).Mirror(ctx, ds.Videos, ds.Snapshots)
	if err != nil {
		// Postgres already committed; retries are safe because every write upserts
		return domain.Stats{}, err
	}

	st := domain.Stats{
		Videos:    len(ds.Videos),
		Snapshots: len(ds.Snapshots),
		Skipped:   ds.Skipped,
		Mirrored:  mirrored,
		Elapsed:   time.Since(start),
	}
	log.Info().
		Int("videos", st.Videos).
		Int("snapshots", st.Snapshots).
		Int("skipped", st.Skipped).
		Bool("mirrored", st.Mirrored).
		Dur("elapsed", st.Elapsed).
		Msg("import finished")
	return st, nil
}
