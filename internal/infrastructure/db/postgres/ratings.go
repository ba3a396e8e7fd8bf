package postgres

import (
	"context"
	"database/sql"

	"github.com/courseplatform/recommendation-service/internal/domain"
)

// RatingRepo persists user ratings in the user_ratings table.
type RatingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo {
	return &RatingRepo{db: db}
}

// Upsert inserts the rating or, when the (user, course) pair already exists,
// overwrites the rating and comment while keeping the original created_at.
func (r *RatingRepo) Upsert(ctx context.Context, ev domain.RatingEvent) error {
	_, err := r.db.ExecContext(ctx, upsertRatingSQL, ev.UserID, ev.CourseID, ev.Rating, ev.Comment)
	return err
}

func (r *RatingRepo) HighRatedCourses(ctx context.Context, userID int64, minRating int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, highRatedCoursesSQL, userID, minRating)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (r *RatingRepo) RatedCourses(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, ratedCoursesSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (r *RatingRepo) UsersWhoRated(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, usersWhoRatedSQL, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (r *RatingRepo) UserRatingStats(ctx context.Context, userID int64) (float64, int, error) {
	var avg float64
	var total int
	if err := r.db.QueryRowContext(ctx, userRatingStatsSQL, userID).Scan(&avg, &total); err != nil {
		return 0, 0, err
	}
	return avg, total, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
