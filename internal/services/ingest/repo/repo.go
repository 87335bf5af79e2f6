// Package repo provides storage access for dataset imports
package repo

import (
	"context"
	"time"

	"vidtally/internal/modkit/repokit"
	perr "vidtally/internal/platform/errors"
	"vidtally/internal/platform/store"
	"vidtally/internal/services/ingest/domain"
)

// NewHybrid returns a binder that uses
// - Postgres for the source-of-truth upserts and row counts
// - ClickHouse (optional, may be nil) for the analytical mirror
func NewHybrid(ch store.Clickhouse) repokit.Binder[domain.StorageRepo] {
	return repokit.BindFunc[domain.StorageRepo](func(q repokit.Queryer) domain.StorageRepo {
		return &hybridStore{pg: q, ch: ch}
	})
}

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

// CountRows reports how many videos and snapshots are already stored
func (s *hybridStore) CountRows(ctx context.Context) (videos, snapshots int64, err error) {
	if videos, err = store.Scalar[int64](ctx, s.pg, `SELECT count(*) FROM videos`); err != nil {
		return 0, 0, perr.FromPostgres(err, "count videos")
	}
	if snapshots, err = store.Scalar[int64](ctx, s.pg, `SELECT count(*) FROM video_snapshots`); err != nil {
		return 0, 0, perr.FromPostgres(err, "count video snapshots")
	}
	return videos, snapshots, nil
}

// UpsertVideos writes one batch of videos in a single statement
func (s *hybridStore) UpsertVideos(ctx context.Context, vs []domain.Video) error {
	if len(vs) == 0 {
		return nil
	}

	ids := make([]string, len(vs))
	creators := make([]string, len(vs))
	createdVid := make([]time.Time, len(vs))
	views := make([]int64, len(vs))
	likes := make([]int64, len(vs))
	comments := make([]int64, len(vs))
	reports := make([]int64, len(vs))
	created := make([]time.Time, len(vs))
	updated := make([]time.Time, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
		creators[i] = v.CreatorID
		createdVid[i] = v.VideoCreatedAt
		views[i] = v.ViewsCount
		likes[i] = v.LikesCount
		comments[i] = v.CommentsCount
		reports[i] = v.ReportsCount
		created[i] = v.CreatedAt
		updated[i] = v.UpdatedAt
	}

	_, err := s.pg.Exec(ctx, `
		INSERT INTO videos (
			id, creator_id, video_created_at,
			views_count, likes_count, comments_count, reports_count,
			created_at, updated_at
		)
		SELECT t.id::uuid, t.creator_id, t.video_created_at,
		       t.views_count, t.likes_count, t.comments_count, t.reports_count,
		       t.created_at, t.updated_at
		FROM UNNEST(
			$1::text[], $2::text[], $3::timestamptz[],
			$4::bigint[], $5::bigint[], $6::bigint[], $7::bigint[],
			$8::timestamptz[], $9::timestamptz[]
		) AS t(id, creator_id, video_created_at,
		       views_count, likes_count, comments_count, reports_count,
		       created_at, updated_at)
		ON CONFLICT (id) DO UPDATE SET
			creator_id = EXCLUDED.creator_id,
			video_created_at = EXCLUDED.video_created_at,
			views_count = EXCLUDED.views_count,
			likes_count = EXCLUDED.likes_count,
			comments_count = EXCLUDED.comments_count,
			reports_count = EXCLUDED.reports_count,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`, ids, creators, createdVid, views, likes, comments, reports, created, updated)
	if err != nil {
		return perr.FromPostgresf(err, "upsert %d videos", len(vs))
	}
	return nil
}

// UpsertSnapshots writes one batch of snapshots in a single statement
func (s *hybridStore) UpsertSnapshots(ctx context.Context, ss []domain.Snapshot) error {
	if len(ss) == 0 {
		return nil
	}

	ids := make([]string, len(ss))
	videoIDs := make([]string, len(ss))
	views := make([]int64, len(ss))
	likes := make([]int64, len(ss))
	comments := make([]int64, len(ss))
	reports := make([]int64, len(ss))
	dViews := make([]int64, len(ss))
	dLikes := make([]int64, len(ss))
	dComments := make([]int64, len(ss))
	dReports := make([]int64, len(ss))
	created := make([]time.Time, len(ss))
	updated := make([]time.Time, len(ss))
	for i, sn := range ss {
		ids[i] = sn.ID
		videoIDs[i] = sn.VideoID
		views[i] = sn.ViewsCount
		likes[i] = sn.LikesCount
		comments[i] = sn.CommentsCount
		reports[i] = sn.ReportsCount
		dViews[i] = sn.DeltaViewsCount
		dLikes[i] = sn.DeltaLikesCount
		dComments[i] = sn.DeltaCommentsCount
		dReports[i] = sn.DeltaReportsCount
		created[i] = sn.CreatedAt
		updated[i] = sn.UpdatedAt
	}

	_, err := s.pg.Exec(ctx, `
		INSERT INTO video_snapshots (
			id, video_id,
			views_count, likes_count, comments_count, reports_count,
			delta_views_count, delta_likes_count, delta_comments_count, delta_reports_count,
			created_at, updated_at
		)
		SELECT t.id::uuid, t.video_id::uuid,
		       t.views_count, t.likes_count, t.comments_count, t.reports_count,
		       t.delta_views_count, t.delta_likes_count, t.delta_comments_count, t.delta_reports_count,
		       t.created_at, t.updated_at
		FROM UNNEST(
			$1::text[], $2::text[],
			$3::bigint[], $4::bigint[], $5::bigint[], $6::bigint[],
			$7::bigint[], $8::bigint[], $9::bigint[], $10::bigint[],
			$11::timestamptz[], $12::timestamptz[]
		) AS t(id, video_id,
		       views_count, likes_count, comments_count, reports_count,
		       delta_views_count, delta_likes_count, delta_comments_count, delta_reports_count,
		       created_at, updated_at)
		ON CONFLICT (id) DO UPDATE SET
			video_id = EXCLUDED.video_id,
			views_count = EXCLUDED.views_count,
			likes_count = EXCLUDED.likes_count,
			comments_count = EXCLUDED.comments_count,
			reports_count = EXCLUDED.reports_count,
			delta_views_count = EXCLUDED.delta_views_count,
			delta_likes_count = EXCLUDED.delta_likes_count,
			delta_comments_count = EXCLUDED.delta_comments_count,
			delta_reports_count = EXCLUDED.delta_reports_count,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`, ids, videoIDs, views, likes, comments, reports, dViews, dLikes, dComments, dReports, created, updated)
	if err != nil {
		return perr.FromPostgresf(err, "upsert %d snapshots", len(ss))
	}
	return nil
}
