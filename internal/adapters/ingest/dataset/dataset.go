// Package dataset decodes the JSON seed file of videos and their snapshots
//
// Design choices:
// - Entries validate one by one: a video or snapshot with an unparseable id
//   drops out of the batch instead of failing the whole file.
// - Timestamps accept RFC 3339 and zone-less ISO 8601 forms; zone-less reads as UTC.
// - Duplicate ids collapse to the last occurrence so a multi-row upsert never
//   touches the same row twice in one statement
package dataset

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	perr "vidtally/internal/platform/errors"
)

// Video is one validated video entry
type Video struct {
	ID             string
	CreatorID      string
	VideoCreatedAt time.Time
	ViewsCount     int64
	LikesCount     int64
	CommentsCount  int64
	ReportsCount   int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Snapshot is one validated snapshot entry, keyed to its owning video
type Snapshot struct {
	ID                 string
	VideoID            string
	ViewsCount         int64
	LikesCount         int64
	CommentsCount      int64
	ReportsCount       int64
	DeltaViewsCount    int64
	DeltaLikesCount    int64
	DeltaCommentsCount int64
	DeltaReportsCount  int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Dataset holds every row that survived validation.
// Skipped counts entries dropped along the way
type Dataset struct {
	Videos    []Video
	Snapshots []Snapshot
	Skipped   int
}

// fileRoot is the outer object of a dataset file.
// Video entries stay raw so one malformed entry cannot sink the rest
type fileRoot struct {
	Videos []json.RawMessage `json:"videos"`
}

type fileVideo struct {
	ID             string         `json:"id"`
	CreatorID      string         `json:"creator_id"`
	VideoCreatedAt string         `json:"video_created_at"`
	ViewsCount     int64          `json:"views_count"`
	LikesCount     int64          `json:"likes_count"`
	CommentsCount  int64          `json:"comments_count"`
	ReportsCount   int64          `json:"reports_count"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
	Snapshots      []fileSnapshot `json:"snapshots"`
}

type fileSnapshot struct {
	ID                 string `json:"id"`
	ViewsCount         int64  `json:"views_count"`
	LikesCount         int64  `json:"likes_count"`
	CommentsCount      int64  `json:"comments_count"`
	ReportsCount       int64  `json:"reports_count"`
	DeltaViewsCount    int64  `json:"delta_views_count"`
	DeltaLikesCount    int64  `json:"delta_likes_count"`
	DeltaCommentsCount int64  `json:"delta_comments_count"`
	DeltaReportsCount  int64  `json:"delta_reports_count"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// Loader reads one dataset file from disk
type Loader struct {
	Path string
}

// NewLoader returns a Loader for the dataset file at path
func NewLoader(path string) *Loader { return &Loader{Path: path} }

// Load reads and decodes the file at the configured path
func (l *Loader) Load() (*Dataset, error) {
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeAdapter, "read dataset %s", l.Path)
	}
	return Decode(raw)
}

// Decode validates raw dataset bytes into rows ready for storage
func Decode(raw []byte) (*Dataset, error) {
	var root fileRoot
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, perr.JSONErrf("decode dataset: %v", err)
	}

	ds := &Dataset{}
	videoAt := make(map[string]int)
	snapAt := make(map[string]int)

	for _, entry := range root.Videos {
		var fv fileVideo
		if err := json.Unmarshal(entry, &fv); err != nil {
			ds.Skipped++
			continue
		}

		id, err := uuid.Parse(fv.ID)
		if err != nil {
			ds.Skipped++
			continue
		}

		v := Video{
			ID:            id.String(),
			CreatorID:     fv.CreatorID,
			ViewsCount:    fv.ViewsCount,
			LikesCount:    fv.LikesCount,
			CommentsCount: fv.CommentsCount,
			ReportsCount:  fv.ReportsCount,
		}
		if v.VideoCreatedAt, err = parseTime(fv.VideoCreatedAt); err != nil {
			ds.Skipped++
			continue
		}
		if v.CreatedAt, err = parseTime(fv.CreatedAt); err != nil {
			ds.Skipped++
			continue
		}
		if v.UpdatedAt, err = parseTime(fv.UpdatedAt); err != nil {
			ds.Skipped++
			continue
		}

		if at, ok := videoAt[v.ID]; ok {
			ds.Videos[at] = v
		} else {
			videoAt[v.ID] = len(ds.Videos)
			ds.Videos = append(ds.Videos, v)
		}

		for _, fs := range fv.Snapshots {
			sid, err := uuid.Parse(fs.ID)
			if err != nil {
				ds.Skipped++
				continue
			}

			s := Snapshot{
				ID:                 sid.String(),
				VideoID:            v.ID,
				ViewsCount:         fs.ViewsCount,
				LikesCount:         fs.LikesCount,
				CommentsCount:      fs.CommentsCount,
				ReportsCount:       fs.ReportsCount,
				DeltaViewsCount:    fs.DeltaViewsCount,
				DeltaLikesCount:    fs.DeltaLikesCount,
				DeltaCommentsCount: fs.DeltaCommentsCount,
				DeltaReportsCount:  fs.DeltaReportsCount,
			}
			if s.CreatedAt, err = parseTime(fs.CreatedAt); err != nil {
				ds.Skipped++
				continue
			}
			if s.UpdatedAt, err = parseTime(fs.UpdatedAt); err != nil {
				ds.Skipped++
				continue
			}

			if at, ok := snapAt[s.ID]; ok {
				ds.Snapshots[at] = s
			} else {
				snapAt[s.ID] = len(ds.Snapshots)
				ds.Snapshots = append(ds.Snapshots, s)
			}
		}
	}
	return ds, nil
}

// timeLayouts are the ISO 8601 forms the source data uses
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, perr.Unparsablef("timestamp %q is not ISO 8601", s)
}
