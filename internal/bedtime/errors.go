package bedtime

import "errors"

var (
	// ErrPrediction matches every PredictionError.
	ErrPrediction = errors.New("prediction failed")

	// ErrModelUnavailable is the cause when a backend cannot be opened.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInvalidOutput is the cause when a backend returns a non-finite or negative duration.
	ErrInvalidOutput = errors.New("invalid model output")
)

// PredictionError reports any failure to obtain a sleep prediction.
// Callers show FailureMessage for it and do not inspect it further;
// the cause is kept for logging.
type PredictionError struct {
	Op  string
	Err error
}

func (e *PredictionError) Error() string {
	if e.Err == nil {
		return "bedtime: " + e.Op + ": " + ErrPrediction.Error()
	}
	return "bedtime: " + e.Op + ": " + e.Err.Error()
}

func (e *PredictionError) Unwrap() error { return e.Err }

// Is reports true for ErrPrediction so callers can test the kind with errors.Is.
func (e *PredictionError) Is(target error) bool {
	return target == ErrPrediction
}
