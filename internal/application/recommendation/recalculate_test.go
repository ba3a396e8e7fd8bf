package recommendation

import (
	"context"
	"testing"

	"github.com/courseplatform/recommendation-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculate_CategoryScoreFormula(t *testing.T) {
	// Three highly-rated Go courses -> category count 3; candidate with
	// catalog average 5.0 -> score (5/5)*0.6 + (3/10)*0.4 = 0.72.
	ratings := newFakeRatings()
	ratings.add(1, 10, 5)
	ratings.add(1, 11, 5)
	ratings.add(1, 12, 4)

	categories := newFakeCategories()
	categories.byCourse[10] = "Go"
	categories.byCourse[11] = "Go"
	categories.byCourse[12] = "Go"
	categories.top["Go"] = []domain.CourseScore{{CourseID: 20, AverageRating: 5.0}}

	recs := newFakeRecs()
	svc := newTestService(ratings, categories, recs, nil)

	outcome, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	stored := recs.stored[1]
	require.Len(t, stored, 1)
	assert.Equal(t, int64(20), stored[0].CourseID)
	assert.InDelta(t, 0.72, stored[0].Score, 1e-12)
	assert.Contains(t, stored[0].Reason, "Go")
}

func TestRecalculate_IncludesTopCategoryCourse(t *testing.T) {
	// User rated A:5 and B:3, category(A)=X; unrated course C leads X's
	// top list, so it must be recommended with a reason naming X.
	ratings := newFakeRatings()
	ratings.add(1, 100, 5) // A
	ratings.add(1, 101, 3) // B

	categories := newFakeCategories()
	categories.byCourse[100] = "X"
	categories.top["X"] = []domain.CourseScore{{CourseID: 102, AverageRating: 4.0}} // C

	recs := newFakeRecs()
	svc := newTestService(ratings, categories, recs, nil)

	outcome, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	stored := recs.stored[1]
	require.Len(t, stored, 1)
	assert.Equal(t, int64(102), stored[0].CourseID)
	assert.Contains(t, stored[0].Reason, "X")
	assert.InDelta(t, 0.52, stored[0].Score, 1e-12) // (4/5)*0.6 + (1/10)*0.4
}

func TestRecalculate_ExcludesAlreadyRatedCourses(t *testing.T) {
	ratings := newFakeRatings()
	ratings.add(1, 10, 5)
	ratings.add(1, 20, 2) // already rated, must never come back

	categories := newFakeCategories()
	categories.byCourse[10] = "Go"
	categories.top["Go"] = []domain.CourseScore{
		{CourseID: 10, AverageRating: 5.0}, // own highly-rated course
		{CourseID: 20, AverageRating: 4.8}, // rated low, still excluded
		{CourseID: 30, AverageRating: 4.0},
	}

	recs := newFakeRecs()
	svc := newTestService(ratings, categories, recs, nil)

	_, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)

	stored := recs.stored[1]
	require.Len(t, stored, 1)
	assert.Equal(t, int64(30), stored[0].CourseID)
}

func TestRecalculate_CollaborativeFixedScore(t *testing.T) {
	ratings := newFakeRatings()
	ratings.add(1, 10, 5) // seed course
	ratings.add(2, 10, 4) // similar user
	ratings.add(2, 30, 5) // their other highly-rated course

	recs := newFakeRecs()
	svc := newTestService(ratings, newFakeCategories(), recs, nil)

	outcome, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	stored := recs.stored[1]
	require.Len(t, stored, 1)
	assert.Equal(t, int64(30), stored[0].CourseID)
	assert.Equal(t, 0.7, stored[0].Score)
	assert.Equal(t, collaborativeReason, stored[0].Reason)
}

func TestRecalculate_CollaborativeTakeLimits(t *testing.T) {
	// One seed course rated by seven other users, each with three more
	// highly-rated courses. Only the first five raters contribute, at most
	// two courses each.
	ratings := newFakeRatings()
	ratings.add(1, 10, 5)
	for u := int64(2); u <= 8; u++ {
		ratings.add(u, 10, 5)
		for c := int64(0); c < 3; c++ {
			ratings.add(u, 100*u+c, 5)
		}
	}

	recs := newFakeRecs()
	svc := newTestService(ratings, newFakeCategories(), recs, nil)

	_, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)

	stored := recs.stored[1]
	require.Len(t, stored, 10) // 5 raters x 2 courses
	for _, rec := range stored {
		assert.Equal(t, 0.7, rec.Score)
		// raters are taken in user-id order, so courses from users 7 and 8
		// never make it
		assert.Less(t, rec.CourseID, int64(700))
	}
}

func TestRecalculate_DeduplicatesAndTruncates(t *testing.T) {
	ratings := newFakeRatings()
	// Go count 3, Databases count 2.
	ratings.add(1, 10, 5)
	ratings.add(1, 11, 5)
	ratings.add(1, 12, 4)
	ratings.add(1, 13, 5)
	ratings.add(1, 14, 4)
	// A similar user for collaborative entries.
	ratings.add(2, 10, 5)
	ratings.add(2, 300, 5)
	ratings.add(2, 301, 5)

	categories := newFakeCategories()
	categories.byCourse[10] = "Go"
	categories.byCourse[11] = "Go"
	categories.byCourse[12] = "Go"
	categories.byCourse[13] = "Databases"
	categories.byCourse[14] = "Databases"
	categories.top["Go"] = []domain.CourseScore{
		{CourseID: 100, AverageRating: 5.0},
		{CourseID: 101, AverageRating: 4.9},
		{CourseID: 102, AverageRating: 4.8},
		{CourseID: 103, AverageRating: 4.7},
		{CourseID: 104, AverageRating: 4.6},
	}
	categories.top["Databases"] = []domain.CourseScore{
		{CourseID: 104, AverageRating: 5.0}, // duplicate of a Go candidate
		{CourseID: 105, AverageRating: 4.9},
		{CourseID: 106, AverageRating: 4.8},
		{CourseID: 107, AverageRating: 4.7},
		{CourseID: 108, AverageRating: 4.6},
	}

	recs := newFakeRecs()
	svc := newTestService(ratings, categories, recs, nil)

	_, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)

	stored := recs.stored[1]
	require.Len(t, stored, maxRecommendations)

	seen := make(map[int64]bool)
	for _, rec := range stored {
		assert.False(t, seen[rec.CourseID], "duplicate course %d", rec.CourseID)
		seen[rec.CourseID] = true
	}
	for i := 1; i < len(stored); i++ {
		assert.GreaterOrEqual(t, stored[i-1].Score, stored[i].Score)
	}

	// Course 104 appears in both category lists; the Go entry was computed
	// first and wins, carrying the Go reason and the Go category count.
	for _, rec := range stored {
		if rec.CourseID == 104 {
			assert.Contains(t, rec.Reason, "Go")
			assert.InDelta(t, (4.6/5.0)*0.6+(3.0/10.0)*0.4, rec.Score, 1e-12)
		}
	}
}

func TestRecalculate_NoHighRatedIsNoOp(t *testing.T) {
	ratings := newFakeRatings()
	ratings.add(1, 10, 3) // rated, but below threshold

	recs := newFakeRecs()
	existing := []domain.Recommendation{{UserID: 1, CourseID: 50, Score: 0.9, Reason: "old"}}
	recs.stored[1] = existing

	svc := newTestService(ratings, newFakeCategories(), recs, nil)

	outcome, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoSignal, outcome)
	assert.Zero(t, recs.replaceCalls)
	assert.Equal(t, existing, recs.stored[1])
}

func TestRecalculate_UnknownUserIsNoOp(t *testing.T) {
	recs := newFakeRecs()
	svc := newTestService(newFakeRatings(), newFakeCategories(), recs, nil)

	outcome, err := svc.Recalculate(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoSignal, outcome)
	assert.Zero(t, recs.replaceCalls)
}

func TestRecalculate_ScoreNeverExceedsOne(t *testing.T) {
	ratings := newFakeRatings()
	// Eleven highly-rated Go courses -> raw category weight above 1.0.
	for c := int64(10); c < 21; c++ {
		ratings.add(1, c, 5)
	}

	categories := newFakeCategories()
	for c := int64(10); c < 21; c++ {
		categories.byCourse[c] = "Go"
	}
	categories.top["Go"] = []domain.CourseScore{{CourseID: 100, AverageRating: 5.0}}

	recs := newFakeRecs()
	svc := newTestService(ratings, categories, recs, nil)

	_, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)

	stored := recs.stored[1]
	require.NotEmpty(t, stored)
	for _, rec := range stored {
		assert.LessOrEqual(t, rec.Score, 1.0)
		assert.GreaterOrEqual(t, rec.Score, 0.0)
	}
}

func TestRecalculate_TopCategoriesTieBreak(t *testing.T) {
	// Two categories with equal counts: ties resolve by category name
	// ascending, not map order.
	counts := map[string]int{"Zig": 2, "Ada": 2, "Go": 3, "Rust": 1}

	categories := newFakeCategories()
	ratings := newFakeRatings()
	course := int64(10)
	for category, n := range counts {
		for i := 0; i < n; i++ {
			ratings.add(1, course, 5)
			categories.byCourse[course] = category
			course++
		}
	}

	svc := newTestService(ratings, categories, newFakeRecs(), nil)

	high, err := ratings.HighRatedCourses(context.Background(), 1, minHighRating)
	require.NoError(t, err)
	top, err := svc.topCategories(context.Background(), high)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, "Go", top[0].Category)
	assert.Equal(t, "Ada", top[1].Category)
	assert.Equal(t, "Zig", top[2].Category)
}

func TestRecalculate_StoreFailure(t *testing.T) {
	ratings := newFakeRatings()
	ratings.add(1, 10, 5)

	categories := newFakeCategories()
	categories.byCourse[10] = "Go"
	categories.top["Go"] = []domain.CourseScore{{CourseID: 20, AverageRating: 4.0}}

	recs := newFakeRecs()
	recs.failReplace = assert.AnError

	svc := newTestService(ratings, categories, recs, nil)

	outcome, err := svc.Recalculate(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)

	// the fire-and-forget boundary swallows the same failure
	assert.Equal(t, OutcomeFailed, svc.RecalculateAndReport(context.Background(), 1))
}
