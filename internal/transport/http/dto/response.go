package dto

import (
	"time"

	"github.com/courseplatform/recommendation-service/internal/application/recommendation"
	"github.com/courseplatform/recommendation-service/internal/domain"
)

// RecommendationResp is the stable API shape for one recommendation.
type RecommendationResp struct {
	UserID   int64   `json:"userId"`
	CourseID int64   `json:"courseId"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}

type RecommendationsResp struct {
	UserID          int64                `json:"userId"`
	Recommendations []RecommendationResp `json:"recommendations"`
	GeneratedAt     string               `json:"generatedAt"`
}

type PreferencesResp struct {
	UserID              int64    `json:"userId"`
	PreferredCategories []string `json:"preferredCategories"`
	AverageRating       float64  `json:"averageRating"`
	TotalRatings        int      `json:"totalRatings"`
}

type MessageResp struct {
	Message string `json:"message"`
}

func FromRecommendationSet(set recommendation.RecommendationSet) RecommendationsResp {
	items := make([]RecommendationResp, 0, len(set.Items))
	for _, rec := range set.Items {
		items = append(items, RecommendationResp{
			UserID:   rec.UserID,
			CourseID: rec.CourseID,
			Score:    rec.Score,
			Reason:   rec.Reason,
		})
	}
	return RecommendationsResp{
		UserID:          set.UserID,
		Recommendations: items,
		GeneratedAt:     set.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

func FromPreferences(p domain.UserPreference) PreferencesResp {
	categories := p.PreferredCategories
	if categories == nil {
		categories = []string{}
	}
	return PreferencesResp{
		UserID:              p.UserID,
		PreferredCategories: categories,
		AverageRating:       p.AverageRating,
		TotalRatings:        p.TotalRatings,
	}
}
