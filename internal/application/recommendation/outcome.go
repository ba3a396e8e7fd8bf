package recommendation

// Outcome classifies how a background operation ended so callers can count
// and log it without an error escaping the consumer loop.
type Outcome string

const (
	// OutcomeUpdated means the user's stored row-set was replaced.
	OutcomeUpdated Outcome = "updated"
	// OutcomeNoSignal means the algorithm produced nothing; existing
	// stored recommendations are deliberately left untouched.
	OutcomeNoSignal Outcome = "no_signal"
	// OutcomeFailed means a store or network error aborted the run.
	OutcomeFailed Outcome = "failed"
)
