package domain

// RatingEvent is the ingestion channel message for one rating change.
// Only userId, courseId and rating are required; everything else is
// carried through as-is.
type RatingEvent struct {
	ID        *int64  `json:"id,omitempty"`
	UserID    int64   `json:"userId"`
	CourseID  int64   `json:"courseId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"`
}

// Validate checks the required shape. Events failing this are discarded by
// the consumer, never retried.
func (e RatingEvent) Validate() error {
	if e.UserID <= 0 {
		return ErrValidation("userId is required")
	}
	if e.CourseID <= 0 {
		return ErrValidation("courseId is required")
	}
	if e.Rating < 1 || e.Rating > 5 {
		return ErrValidation("rating must be between 1 and 5")
	}
	return nil
}
