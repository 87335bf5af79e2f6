// Package domain defines types and ports for the dataset ingest service
package domain

import (
	"time"

	"vidtally/internal/adapters/ingest/dataset"
)

type (
	// Video is one row of the videos table; alias to the dataset adapter type
	Video = dataset.Video

	// Snapshot is one row of the video_snapshots table; alias to the dataset adapter type
	Snapshot = dataset.Snapshot

	// Dataset is one decoded and validated import file
	Dataset = dataset.Dataset
)

// Stats summarizes one import run
type Stats struct {
	Videos    int
	Snapshots int
	Skipped   int
	Mirrored  bool
	Elapsed   time.Duration
}
