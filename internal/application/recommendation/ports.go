package recommendation

import (
	"context"
	"time"

	"github.com/courseplatform/recommendation-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// RatingRepo owns the user_ratings table. Upsert is keyed by
// (userId, courseId) so redelivered events stay idempotent.
type RatingRepo interface {
	Upsert(ctx context.Context, ev domain.RatingEvent) error
	HighRatedCourses(ctx context.Context, userID int64, minRating int) ([]int64, error)
	RatedCourses(ctx context.Context, userID int64) ([]int64, error)
	UsersWhoRated(ctx context.Context, courseID int64) ([]int64, error)
	UserRatingStats(ctx context.Context, userID int64) (avg float64, total int, err error)
}

// CategoryRepo owns the course_categories table, populated by catalog sync.
// CategoryByCourse returns a not_found error for unmapped courses; callers
// skip those rather than fail.
type CategoryRepo interface {
	Upsert(ctx context.Context, entry domain.CourseCategory) error
	CategoryByCourse(ctx context.Context, courseID int64) (string, error)
	TopRatedByCategory(ctx context.Context, category string, limit int) ([]domain.CourseScore, error)
}

// RecommendationRepo owns the recommendations table. ReplaceForUser must
// delete and reinsert the user's row-set in one transaction.
type RecommendationRepo interface {
	ReplaceForUser(ctx context.Context, userID int64, recs []domain.Recommendation) error
	ForUser(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error)
}

// CourseCatalog fetches the full course list from the course service.
type CourseCatalog interface {
	FetchCourses(ctx context.Context) ([]domain.Course, error)
}

// Cache is an optional read-through cache for stored recommendations.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
