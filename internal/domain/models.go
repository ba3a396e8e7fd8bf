package domain

import "time"

// RatingRecord is the latest rating a user gave a course. One row per
// (user_id, course_id) pair; newer events overwrite rating, comment and
// updated_at but keep created_at.
type RatingRecord struct {
	ID        int64
	UserID    int64
	CourseID  int64
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourseCategory maps a course to its category plus the aggregate rating
// stats cached from the course catalog. Written only by the catalog sync.
type CourseCategory struct {
	CourseID      int64
	Category      string
	AverageRating float64
	TotalRatings  int
}

// CourseScore is a (course, average rating) pair as returned by the
// top-rated-by-category query.
type CourseScore struct {
	CourseID      int64
	AverageRating float64
}

// Recommendation is one stored recommendation row. The full set for a user
// is replaced atomically on every recalculation.
type Recommendation struct {
	UserID    int64
	CourseID  int64
	Score     float64
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPreference is derived live from ratings + categories, never stored.
type UserPreference struct {
	UserID              int64
	PreferredCategories []string
	AverageRating       float64
	TotalRatings        int
}

// Course is the catalog representation fetched from the course service.
type Course struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   *string  `json:"description,omitempty"`
	Category      string   `json:"category"`
	Instructor    string   `json:"instructor"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	TotalRatings  *int     `json:"totalRatings,omitempty"`
}
