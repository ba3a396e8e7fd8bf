package recommendation

import (
	"fmt"
	"time"
)

const (
	minHighRating         = 4
	topCategoryCount      = 3
	coursesPerCategory    = 5
	collaborativeSeeds    = 3
	similarUsersPerSeed   = 5
	coursesPerSimilarUser = 2
	maxRecommendations    = 10

	categoryRatingWeight = 0.6
	categoryCountWeight  = 0.4
	collaborativeScore   = 0.7
)

const collaborativeReason = "Users with similar interests also liked this course"

func categoryReason(category string) string {
	return fmt.Sprintf("Based on your interest in %s courses", category)
}

type Service struct {
	ratings    RatingRepo
	recs       RecommendationRepo
	categories CategoryRepo
	catalog    CourseCatalog
	cache      Cache
	clock      Clock

	cacheTTL time.Duration
	locks    userLocks
}

func New(
	ratings RatingRepo,
	recs RecommendationRepo,
	categories CategoryRepo,
	catalog CourseCatalog,
	cache Cache,
	clock Clock,
	cacheTTL time.Duration,
) *Service {
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{
		ratings:    ratings,
		recs:       recs,
		categories: categories,
		catalog:    catalog,
		cache:      cache,
		clock:      clock,
		cacheTTL:   cacheTTL,
	}
}

func recommendationsCacheKey(userID int64) string {
	return fmt.Sprintf("recs:user:%d", userID)
}
