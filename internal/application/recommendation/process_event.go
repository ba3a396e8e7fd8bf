package recommendation

import (
	"context"

	"github.com/courseplatform/recommendation-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// ProcessRatingEvent persists the rating and recalculates the user's
// recommendations. The rating write is the idempotent upsert; redelivered
// events land on the same (userId, courseId) row. A recalculation failure is
// reported but does not fail the event: the rating itself was saved.
func (s *Service) ProcessRatingEvent(ctx context.Context, ev domain.RatingEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	if err := s.ratings.Upsert(ctx, ev); err != nil {
		return err
	}
	zlog.Info().
		Int64("user_id", ev.UserID).
		Int64("course_id", ev.CourseID).
		Int("rating", ev.Rating).
		Msg("rating saved")

	s.RecalculateAndReport(ctx, ev.UserID)
	return nil
}
