package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courseplatform/recommendation-service/internal/domain"
)

// CategoryRepo stores the local snapshot of the course catalog used for
// category lookups and per-category rankings.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Upsert(ctx context.Context, entry domain.CourseCategory) error {
	_, err := r.db.ExecContext(ctx, upsertCategorySQL,
		entry.CourseID, entry.Category, entry.AverageRating, entry.TotalRatings)
	return err
}

func (r *CategoryRepo) CategoryByCourse(ctx context.Context, courseID int64) (string, error) {
	var category string
	err := r.db.QueryRowContext(ctx, categoryByCourseSQL, courseID).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound("course category not found")
	}
	if err != nil {
		return "", err
	}
	return category, nil
}

func (r *CategoryRepo) TopRatedByCategory(ctx context.Context, category string, limit int) ([]domain.CourseScore, error) {
	rows, err := r.db.QueryContext(ctx, topRatedByCategorySQL, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CourseScore
	for rows.Next() {
		var cs domain.CourseScore
		if err := rows.Scan(&cs.CourseID, &cs.AverageRating); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}
