package repo

import (
	"context"

	perr "vidtally/internal/platform/errors"
	"vidtally/internal/services/ingest/domain"
)

// chSchema creates the mirror tables when they do not exist yet.
// Ids stay String so compiled filters can bind plain string args
var chSchema = []string{`
	CREATE TABLE IF NOT EXISTS videos (
		id               String,
		creator_id       String,
		video_created_at DateTime64(6, 'UTC'),
		views_count      Int64,
		likes_count      Int64,
		comments_count   Int64,
		reports_count    Int64,
		created_at       DateTime64(6, 'UTC'),
		updated_at       DateTime64(6, 'UTC')
	) ENGINE = MergeTree ORDER BY id
`, `
	CREATE TABLE IF NOT EXISTS video_snapshots (
		id                   String,
		video_id             String,
		views_count          Int64,
		likes_count          Int64,
		comments_count       Int64,
		reports_count        Int64,
		delta_views_count    Int64,
		delta_likes_count    Int64,
		delta_comments_count Int64,
		delta_reports_count  Int64,
		created_at           DateTime64(6, 'UTC'),
		updated_at           DateTime64(6, 'UTC')
	) ENGINE = MergeTree ORDER BY (video_id, created_at)
`}

// Mirror rewrites the ClickHouse copy of the dataset.
// MergeTree has no upsert, so each run truncates and reinserts;
// imports are full-dataset rewrites, which keeps this deterministic
func (s *hybridStore) Mirror(ctx context.Context, vs []domain.Video, ss []domain.Snapshot) (bool, error) {
	if s.ch == nil {
		return false, nil
	}

	for _, ddl := range chSchema {
		if err := s.ch.Exec(ctx, ddl); err != nil {
			return false, perr.Wrapf(err, perr.ErrorCodeDB, "mirror schema")
		}
	}
	for _, table := range []string{"videos", "video_snapshots"} {
		if err := s.ch.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
			return false, perr.Wrapf(err, perr.ErrorCodeDB, "truncate mirror %s", table)
		}
	}

	videoRows := make([][]any, 0, len(vs))
	for _, v := range vs {
		videoRows = append(videoRows, []any{
			v.ID, v.CreatorID, v.VideoCreatedAt,
			v.ViewsCount, v.LikesCount, v.CommentsCount, v.ReportsCount,
			v.CreatedAt, v.UpdatedAt,
		})
	}
	if err := s.ch.InsertBatch(ctx, `
		INSERT INTO videos (
			id, creator_id, video_created_at,
			views_count, likes_count, comments_count, reports_count,
			created_at, updated_at
		)`, videoRows); err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeDB, "mirror %d videos", len(vs))
	}

	snapshotRows := make([][]any, 0, len(ss))
	for _, sn := range ss {
		snapshotRows = append(snapshotRows, []any{
			sn.ID, sn.VideoID,
			sn.ViewsCount, sn.LikesCount, sn.CommentsCount, sn.ReportsCount,
			sn.DeltaViewsCount, sn.DeltaLikesCount, sn.DeltaCommentsCount, sn.DeltaReportsCount,
			sn.CreatedAt, sn.UpdatedAt,
		})
	}
	if err := s.ch.InsertBatch(ctx, `
		INSERT INTO video_snapshots (
			id, video_id,
			views_count, likes_count, comments_count, reports_count,
			delta_views_count, delta_likes_count, delta_comments_count, delta_reports_count,
			created_at, updated_at
		)`, snapshotRows); err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeDB, "mirror %d snapshots", len(ss))
	}

	return true, nil
}
