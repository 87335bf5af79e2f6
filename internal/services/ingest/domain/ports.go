package domain

import "context"

// ImporterPort drives dataset imports
type ImporterPort interface {
	// EnsureImported loads the dataset and imports it only when the current
	// row counts fall short of what the file contains.
	// Returns true when an import actually ran
	EnsureImported(ctx context.Context) (bool, error)

	// Import loads the dataset and writes it unconditionally.
	// Upserts keyed on id make repeated runs converge
	Import(ctx context.Context) (Stats, error)
}

// Loader reads and validates one dataset file
type Loader interface {
	Load() (*Dataset, error)
}

// StorageRepo is the storage surface the importer writes through
type StorageRepo interface {
	// CountRows reports current videos and video_snapshots row counts
	CountRows(ctx context.Context) (videos, snapshots int64, err error)

	// UpsertVideos writes one batch of videos, updating on id conflict
	UpsertVideos(ctx context.Context, vs []Video) error

	// UpsertSnapshots writes one batch of snapshots, updating on id conflict
	UpsertSnapshots(ctx context.Context, ss []Snapshot) error

	// Mirror rewrites the analytical copy of the dataset.
	// Reports false without error when no mirror backend is wired
	Mirror(ctx context.Context, vs []Video, ss []Snapshot) (bool, error)
}
