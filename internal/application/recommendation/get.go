package recommendation

import (
	"context"
	"time"

	"github.com/courseplatform/recommendation-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// RecommendationSet is a read of the stored row-set plus the generation
// timestamp, which is always the read time, never stored.
type RecommendationSet struct {
	UserID      int64
	Items       []domain.Recommendation
	GeneratedAt time.Time
}

// GetRecommendations returns the stored rows for a user, already sorted by
// score descending at write time. An unknown user yields an empty set, not
// an error.
func (s *Service) GetRecommendations(ctx context.Context, userID int64) (RecommendationSet, error) {
	key := recommendationsCacheKey(userID)

	if s.cache != nil {
		var cached []domain.Recommendation
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Msg("recommendations cache read failed")
		} else if found {
			return RecommendationSet{UserID: userID, Items: cached, GeneratedAt: s.clock.Now()}, nil
		}
	}

	items, err := s.recs.ForUser(ctx, userID, maxRecommendations)
	if err != nil {
		return RecommendationSet{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			zlog.Warn().Err(err).Msg("recommendations cache write failed")
		}
	}

	return RecommendationSet{UserID: userID, Items: items, GeneratedAt: s.clock.Now()}, nil
}
