// Package bedtime turns a wake time, a sleep goal and a coffee count into a
// recommended bedtime using a pluggable prediction backend.
package bedtime

import (
	"fmt"
	"math"
)

// maxSleepSeconds bounds model output so the hour count fits an int32.
const maxSleepSeconds = math.MaxInt32 * 3600.0

// Backend predicts the actual sleep a person needs, in seconds.
type Backend interface {
	Predict(wakeSeconds, estimatedSleepHours, coffeeCups float64) (float64, error)
}

// BackendFunc adapts a plain function to Backend.
type BackendFunc func(wakeSeconds, estimatedSleepHours, coffeeCups float64) (float64, error)

// Predict calls f.
func (f BackendFunc) Predict(wakeSeconds, estimatedSleepHours, coffeeCups float64) (float64, error) {
	return f(wakeSeconds, estimatedSleepHours, coffeeCups)
}

// Source hands out a ready backend. Open may do I/O such as reading a model file.
type Source interface {
	Open() (Backend, error)
}

// Request is the caller-owned form state. Ranges (sleep 4-12, coffee 0-20)
// are enforced by the caller; Compute passes values through untouched.
type Request struct {
	Wake       TimeOfDay
	SleepHours float64
	CoffeeCups int
}

// Result is a successful estimate.
type Result struct {
	Bedtime            TimeOfDay
	ActualSleepSeconds float64
}

// Breakdown splits the predicted sleep into whole hours and minutes.
func (r Result) Breakdown() (hours, minutes int) {
	return Breakdown(r.ActualSleepSeconds)
}

// Compute runs one prediction against backend and derives the bedtime.
func Compute(req Request, backend Backend) (Result, error) {
	if backend == nil {
		return Result{}, &PredictionError{Op: "predict", Err: ErrModelUnavailable}
	}

	wake := At(req.Wake.Hour, req.Wake.Minute)
	wakeSeconds := float64(wake.Hour*3600 + wake.Minute*60)

	actual, err := backend.Predict(wakeSeconds, req.SleepHours, float64(req.CoffeeCups))
	if err != nil {
		return Result{}, &PredictionError{Op: "predict", Err: err}
	}
	if math.IsNaN(actual) || math.IsInf(actual, 0) || actual < 0 || actual > maxSleepSeconds {
		return Result{}, &PredictionError{Op: "predict", Err: fmt.Errorf("%w: %v seconds", ErrInvalidOutput, actual)}
	}

	// floor keeps a fractional bedtime on the earlier second, as a
	// minute-resolution clock display would.
	bed := math.Mod(wakeSeconds-actual, secondsPerDay)
	if bed < 0 {
		bed += secondsPerDay
	}

	return Result{
		Bedtime:            fromSeconds(int(math.Floor(bed))),
		ActualSleepSeconds: actual,
	}, nil
}

// Breakdown returns floor(s/3600) hours and the floor of the remaining minutes.
func Breakdown(actualSleepSeconds float64) (hours, minutes int) {
	h := actualSleepSeconds / 3600
	hours = int(math.Floor(h))
	minutes = int(math.Floor((h - float64(hours)) * 60))
	return hours, minutes
}

// Estimator acquires a fresh backend from its Source for every estimate.
// It keeps no state between calls.
type Estimator struct {
	source Source
}

// NewEstimator returns an Estimator reading backends from source.
func NewEstimator(source Source) *Estimator {
	return &Estimator{source: source}
}

// Estimate opens a backend and computes the bedtime for req.
func (e *Estimator) Estimate(req Request) (Result, error) {
	if e == nil || e.source == nil {
		return Result{}, &PredictionError{Op: "open", Err: ErrModelUnavailable}
	}
	backend, err := e.source.Open()
	if err != nil {
		return Result{}, &PredictionError{Op: "open", Err: fmt.Errorf("%w: %w", ErrModelUnavailable, err)}
	}
	return Compute(req, backend)
}
