package recommendation

import (
	"context"

	"github.com/courseplatform/recommendation-service/internal/domain"
	"github.com/courseplatform/recommendation-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

// SyncCourses refreshes course_categories from the course catalog service.
// Each course upsert is independently atomic; a failure aborts the rest of
// the batch but does not roll back what already landed.
func (s *Service) SyncCourses(ctx context.Context) (int, error) {
	courses, err := s.catalog.FetchCourses(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, c := range courses {
		entry := domain.CourseCategory{CourseID: c.ID, Category: c.Category}
		if c.AverageRating != nil {
			entry.AverageRating = *c.AverageRating
		}
		if c.TotalRatings != nil {
			entry.TotalRatings = *c.TotalRatings
		}
		if err := s.categories.Upsert(ctx, entry); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

// SyncCoursesAndReport is the fire-and-forget boundary for the sync trigger
// endpoint and the delayed startup sync.
func (s *Service) SyncCoursesAndReport(ctx context.Context) {
	synced, err := s.SyncCourses(ctx)
	if err != nil {
		metrics.CatalogSyncDone("failed")
		zlog.Error().Err(err).Int("synced", synced).Msg("catalog sync failed")
		return
	}
	metrics.CatalogSyncDone("ok")
	zlog.Info().Int("synced", synced).Msg("catalog synced")
}
