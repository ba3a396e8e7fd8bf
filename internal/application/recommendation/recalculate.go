package recommendation

import (
	"context"
	"math"
	"sort"

	"github.com/courseplatform/recommendation-service/internal/domain"
	"github.com/courseplatform/recommendation-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

type categoryCount struct {
	Category string
	Count    int
}

// Recalculate recomputes and replaces the stored recommendation row-set for
// one user. An empty result is a no-op: absence of new signal must not erase
// prior recommendations. Runs for the same user are serialized; the last
// writer to commit wins across processes.
func (s *Service) Recalculate(ctx context.Context, userID int64) (Outcome, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	high, err := s.ratings.HighRatedCourses(ctx, userID, minHighRating)
	if err != nil {
		return OutcomeFailed, err
	}

	rated, err := s.ratings.RatedCourses(ctx, userID)
	if err != nil {
		return OutcomeFailed, err
	}
	excluded := make(map[int64]bool, len(rated))
	for _, id := range rated {
		excluded[id] = true
	}

	var out []domain.Recommendation
	seen := make(map[int64]bool)

	// Strategy 1: category affinity.
	top, err := s.topCategories(ctx, high)
	if err != nil {
		return OutcomeFailed, err
	}
	for _, tc := range top {
		courses, err := s.categories.TopRatedByCategory(ctx, tc.Category, coursesPerCategory)
		if err != nil {
			return OutcomeFailed, err
		}
		for _, c := range courses {
			if excluded[c.CourseID] || seen[c.CourseID] {
				continue
			}
			seen[c.CourseID] = true
			out = append(out, domain.Recommendation{
				UserID:   userID,
				CourseID: c.CourseID,
				Score:    categoryScore(c.AverageRating, tc.Count),
				Reason:   categoryReason(tc.Category),
			})
		}
	}

	// Strategy 2: collaborative signal from users who highly rated the
	// same courses. Category entries were added first, so they win on
	// courseId collisions.
	seeds := high
	if len(seeds) > collaborativeSeeds {
		seeds = seeds[:collaborativeSeeds]
	}
	for _, courseID := range seeds {
		raters, err := s.ratings.UsersWhoRated(ctx, courseID)
		if err != nil {
			return OutcomeFailed, err
		}
		taken := 0
		for _, other := range raters {
			if other == userID {
				continue
			}
			if taken >= similarUsersPerSeed {
				break
			}
			taken++

			theirHigh, err := s.ratings.HighRatedCourses(ctx, other, minHighRating)
			if err != nil {
				return OutcomeFailed, err
			}
			added := 0
			for _, cid := range theirHigh {
				if added >= coursesPerSimilarUser {
					break
				}
				if excluded[cid] || seen[cid] {
					continue
				}
				seen[cid] = true
				added++
				out = append(out, domain.Recommendation{
					UserID:   userID,
					CourseID: cid,
					Score:    collaborativeScore,
					Reason:   collaborativeReason,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}

	if len(out) == 0 {
		return OutcomeNoSignal, nil
	}

	if err := s.recs.ReplaceForUser(ctx, userID, out); err != nil {
		return OutcomeFailed, err
	}
	s.invalidate(ctx, userID)
	return OutcomeUpdated, nil
}

// RecalculateAndReport is the fire-and-forget boundary used by the event
// consumer and the trigger endpoint. Errors never escape; they are logged
// and counted instead.
func (s *Service) RecalculateAndReport(ctx context.Context, userID int64) Outcome {
	outcome, err := s.Recalculate(ctx, userID)
	metrics.RecalculationDone(string(outcome))

	log := zlog.With().Int64("user_id", userID).Logger()
	switch {
	case err != nil:
		log.Error().Err(err).Msg("recalculation failed")
	case outcome == OutcomeNoSignal:
		log.Debug().Msg("recalculation produced no signal, keeping stored recommendations")
	default:
		log.Info().Msg("recommendations recalculated")
	}
	return outcome
}

// topCategories counts categories over the user's highly-rated courses and
// returns the top 3. Courses with no category mapping are skipped. Ties are
// broken by category name ascending so the result does not depend on map
// iteration order.
func (s *Service) topCategories(ctx context.Context, highRated []int64) ([]categoryCount, error) {
	counts := make(map[string]int)
	for _, courseID := range highRated {
		category, err := s.categories.CategoryByCourse(ctx, courseID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		counts[category]++
	}

	ranked := make([]categoryCount, 0, len(counts))
	for category, n := range counts {
		ranked = append(ranked, categoryCount{Category: category, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > topCategoryCount {
		ranked = ranked[:topCategoryCount]
	}
	return ranked, nil
}

// categoryScore blends the course's catalog average with how often the
// category shows up among the user's highly-rated courses. Capped at 1.0 so
// users with more than ten high ratings in one category stay in range.
func categoryScore(averageRating float64, count int) float64 {
	score := (averageRating/5.0)*categoryRatingWeight + (float64(count)/10.0)*categoryCountWeight
	return math.Min(score, 1.0)
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recommendationsCacheKey(userID)); err != nil {
		zlog.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}
}
