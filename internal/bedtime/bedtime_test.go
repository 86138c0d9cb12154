package bedtime

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	out   float64
	err   error
	calls [][3]float64
}

func (b *recordingBackend) Predict(wake, sleep, coffee float64) (float64, error) {
	b.calls = append(b.calls, [3]float64{wake, sleep, coffee})
	return b.out, b.err
}

type stubSource struct {
	backend Backend
	err     error
	opened  int
}

func (s *stubSource) Open() (Backend, error) {
	s.opened++
	return s.backend, s.err
}

func TestComputeEightHours(t *testing.T) {
	backend := &recordingBackend{out: 8 * 3600}

	res, err := Compute(Request{Wake: At(7, 0), SleepHours: 8, CoffeeCups: 1}, backend)
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{Hour: 23}, res.Bedtime)
	assert.Equal(t, [][3]float64{{25200, 8, 1}}, backend.calls)

	msg := Describe(res, Clock12)
	assert.Equal(t, SuccessTitle, msg.Title)
	assert.Equal(t, "Your ideal bedtime is 11:00 PM. You will get 8 hours and 0 minutes of sleep.", msg.Body)
}

func TestComputeLandsOnMidnight(t *testing.T) {
	backend := &recordingBackend{out: 6.5 * 3600}

	res, err := Compute(Request{Wake: At(6, 30), SleepHours: 6, CoffeeCups: 3}, backend)
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{}, res.Bedtime)
	h, m := res.Breakdown()
	assert.Equal(t, 6, h)
	assert.Equal(t, 30, m)
	assert.Contains(t, Describe(res, Clock24).Body, "00:00")
	assert.Contains(t, Describe(res, Clock24).Body, "6 hours and 30 minutes")
}

func TestComputeWrapsPastMidnight(t *testing.T) {
	res, err := Compute(Request{Wake: At(0, 30), SleepHours: 4}, &recordingBackend{out: 3600})
	require.NoError(t, err)
	assert.Equal(t, At(23, 30), res.Bedtime)
}

func TestComputeIgnoresWakeSeconds(t *testing.T) {
	backend := &recordingBackend{out: 60}
	res, err := Compute(Request{Wake: TimeOfDay{Hour: 1, Minute: 2, Second: 45}}, backend)
	require.NoError(t, err)
	assert.Equal(t, 3720.0, backend.calls[0][0])
	assert.Equal(t, At(1, 1), res.Bedtime)
}

func TestComputeFractionalSleepFloorsBedtime(t *testing.T) {
	res, err := Compute(Request{Wake: At(7, 0)}, &recordingBackend{out: 0.5})
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 6, Minute: 59, Second: 59}, res.Bedtime)
}

func TestComputeCoffeeBoundsPassThrough(t *testing.T) {
	for _, cups := range []int{0, 20} {
		backend := &recordingBackend{out: 8 * 3600}
		_, err := Compute(Request{Wake: At(7, 0), SleepHours: 8, CoffeeCups: cups}, backend)
		require.NoError(t, err)
		require.Len(t, backend.calls, 1)
		assert.Equal(t, float64(cups), backend.calls[0][2])
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	backend := &recordingBackend{out: 7.25 * 3600}
	req := Request{Wake: At(6, 45), SleepHours: 7, CoffeeCups: 2}

	first, err := Compute(req, backend)
	require.NoError(t, err)
	second, err := Compute(req, backend)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, Describe(first, Clock12), Describe(second, Clock12))
}

func TestComputeBackendFailure(t *testing.T) {
	boom := errors.New("boom")
	res, err := Compute(Request{Wake: At(7, 0), SleepHours: 8, CoffeeCups: 1}, &recordingBackend{err: boom})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrPrediction)
	assert.ErrorIs(t, err, boom)
	var perr *PredictionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "predict", perr.Op)

	assert.Equal(t, Failure(), Present(res, err, Clock12))
	assert.Equal(t, FailureMessage, Present(res, err, Clock12).Body)
}

func TestComputeRejectsBadOutput(t *testing.T) {
	for name, out := range map[string]float64{
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"negative": -1,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Compute(Request{Wake: At(7, 0)}, &recordingBackend{out: out})
			assert.ErrorIs(t, err, ErrPrediction)
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestComputeRejectsHugeOutput(t *testing.T) {
	for _, out := range []float64{1e20, 1e30, maxSleepSeconds + 3600} {
		res, err := Compute(Request{Wake: At(7, 0), SleepHours: 8, CoffeeCups: 1}, &recordingBackend{out: out})
		assert.ErrorIs(t, err, ErrInvalidOutput, "%v", out)
		assert.Equal(t, Failure(), Present(res, err, Clock12))
	}
}

func TestComputeLargeOutputWrapsDays(t *testing.T) {
	res, err := Compute(Request{Wake: At(7, 0)}, &recordingBackend{out: 1e9})
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{Hour: 5, Minute: 13, Second: 20}, res.Bedtime)
	h, m := res.Breakdown()
	assert.Equal(t, 277777, h)
	assert.Equal(t, 46, m)
}

func TestComputeNilBackend(t *testing.T) {
	_, err := Compute(Request{}, nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestBreakdown(t *testing.T) {
	tests := []struct {
		seconds float64
		hours   int
		minutes int
	}{
		{0, 0, 0},
		{8 * 3600, 8, 0},
		{6.5 * 3600, 6, 30},
		{7*3600 + 59*60 + 59, 7, 59},
		{29000, 8, 3},
	}
	for _, tt := range tests {
		h, m := Breakdown(tt.seconds)
		assert.Equal(t, tt.hours, h, "hours for %v", tt.seconds)
		assert.Equal(t, tt.minutes, m, "minutes for %v", tt.seconds)
	}
}

func TestEstimatorOpensBackendEveryCall(t *testing.T) {
	src := &stubSource{backend: &recordingBackend{out: 8 * 3600}}
	est := NewEstimator(src)

	for i := 0; i < 3; i++ {
		res, err := est.Estimate(Request{Wake: At(7, 0), SleepHours: 8, CoffeeCups: 1})
		require.NoError(t, err)
		assert.Equal(t, At(23, 0), res.Bedtime)
	}
	assert.Equal(t, 3, src.opened)
}

func TestEstimatorOpenFailure(t *testing.T) {
	missing := errors.New("no such file")
	est := NewEstimator(&stubSource{err: missing})

	res, err := est.Estimate(Request{Wake: At(7, 0), SleepHours: 8, CoffeeCups: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrediction)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.ErrorIs(t, err, missing)
	assert.Equal(t, Failure(), Present(res, err, Clock24))
}

func TestEstimatorWithoutSource(t *testing.T) {
	_, err := NewEstimator(nil).Estimate(Request{})
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestBackendFunc(t *testing.T) {
	f := BackendFunc(func(w, s, c float64) (float64, error) { return s * 3600, nil })
	res, err := Compute(Request{Wake: At(8, 0), SleepHours: 9}, f)
	require.NoError(t, err)
	assert.Equal(t, At(23, 0), res.Bedtime)
}
