package postgres

const upsertRatingSQL = `
INSERT INTO user_ratings (user_id, course_id, rating, comment, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
ON CONFLICT (user_id, course_id) DO UPDATE
SET rating = EXCLUDED.rating,
    comment = EXCLUDED.comment,
    updated_at = NOW()
`

const highRatedCoursesSQL = `
SELECT course_id FROM user_ratings
WHERE user_id = $1 AND rating >= $2
ORDER BY course_id
`

const ratedCoursesSQL = `
SELECT course_id FROM user_ratings
WHERE user_id = $1
ORDER BY course_id
`

const usersWhoRatedSQL = `
SELECT user_id FROM user_ratings
WHERE course_id = $1
ORDER BY user_id
`

const userRatingStatsSQL = `
SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM user_ratings
WHERE user_id = $1
`

const upsertCategorySQL = `
INSERT INTO course_categories (course_id, category, average_rating, total_ratings)
VALUES ($1, $2, $3, $4)
ON CONFLICT (course_id) DO UPDATE
SET category = EXCLUDED.category,
    average_rating = EXCLUDED.average_rating,
    total_ratings = EXCLUDED.total_ratings
`

const categoryByCourseSQL = `
SELECT category FROM course_categories WHERE course_id = $1
`

const topRatedByCategorySQL = `
SELECT course_id, average_rating FROM course_categories
WHERE category = $1
ORDER BY average_rating DESC, course_id ASC
LIMIT $2
`

const deleteRecommendationsSQL = `
DELETE FROM recommendations WHERE user_id = $1
`

const insertRecommendationSQL = `
INSERT INTO recommendations (user_id, course_id, score, reason, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
`

const recommendationsForUserSQL = `
SELECT user_id, course_id, score, reason, created_at, updated_at
FROM recommendations
WHERE user_id = $1
ORDER BY score DESC
LIMIT $2
`
