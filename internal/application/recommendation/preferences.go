package recommendation

import (
	"context"

	"github.com/courseplatform/recommendation-service/internal/domain"
)

// GetUserPreferences derives the distinct categories among all the user's
// rated courses, plus average rating and rated-course count. Computed live
// from the stores on every call, never cached.
func (s *Service) GetUserPreferences(ctx context.Context, userID int64) (domain.UserPreference, error) {
	rated, err := s.ratings.RatedCourses(ctx, userID)
	if err != nil {
		return domain.UserPreference{}, err
	}

	categories := make([]string, 0)
	seen := make(map[string]bool)
	for _, courseID := range rated {
		category, err := s.categories.CategoryByCourse(ctx, courseID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return domain.UserPreference{}, err
		}
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}

	avg, total, err := s.ratings.UserRatingStats(ctx, userID)
	if err != nil {
		return domain.UserPreference{}, err
	}

	return domain.UserPreference{
		UserID:              userID,
		PreferredCategories: categories,
		AverageRating:       avg,
		TotalRatings:        total,
	}, nil
}
