package postgres

import (
	"context"
	"database/sql"

	"github.com/courseplatform/recommendation-service/internal/domain"
)

// RecommendationRepo stores generated recommendations. Writes replace the
// user's whole set inside one transaction so readers never observe a
// partially updated list.
type RecommendationRepo struct {
	db *sql.DB
}

func NewRecommendationRepo(db *sql.DB) *RecommendationRepo {
	return &RecommendationRepo{db: db}
}

func (r *RecommendationRepo) ReplaceForUser(ctx context.Context, userID int64, recs []domain.Recommendation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteRecommendationsSQL, userID); err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, insertRecommendationSQL,
			userID, rec.CourseID, rec.Score, rec.Reason); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *RecommendationRepo) ForUser(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, recommendationsForUserSQL, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		if err := rows.Scan(&rec.UserID, &rec.CourseID, &rec.Score, &rec.Reason,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
