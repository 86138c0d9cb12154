package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betterrest/internal/bedtime"
)

func TestParseDefaults(t *testing.T) {
	req, err := Parse(Input{}, Standard)
	require.NoError(t, err)
	assert.Equal(t, bedtime.Request{Wake: bedtime.At(7, 0), SleepHours: 8, CoffeeCups: 1}, req)
}

func TestParseValues(t *testing.T) {
	req, err := Parse(Input{Wake: "06:30", Sleep: "6,5", Coffee: " 3 "}, Standard)
	require.NoError(t, err)
	assert.Equal(t, bedtime.Request{Wake: bedtime.At(6, 30), SleepHours: 6.5, CoffeeCups: 3}, req)
}

func TestParseBounds(t *testing.T) {
	for _, in := range []Input{
		{Sleep: "4", Coffee: "0"},
		{Sleep: "12", Coffee: "20"},
	} {
		_, err := Parse(in, Standard)
		assert.NoError(t, err, "%+v", in)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in    Input
		field string
	}{
		{Input{Wake: "7am"}, "wake"},
		{Input{Sleep: "lots"}, "sleep"},
		{Input{Sleep: "NaN"}, "sleep"},
		{Input{Sleep: "3.5"}, "sleep"},
		{Input{Sleep: "12.5"}, "sleep"},
		{Input{Sleep: "7.25"}, "sleep"},
		{Input{Coffee: "-1"}, "coffee"},
		{Input{Coffee: "21"}, "coffee"},
		{Input{Coffee: "1.5"}, "coffee"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in, Standard)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "%+v: %v", tt.in, err)
		assert.Equal(t, tt.field, fe.Field, "%+v", tt.in)
		assert.NotErrorIs(t, err, bedtime.ErrPrediction)
	}
}

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, Standard.Validate())

	tests := []struct {
		def   Defaults
		field string
	}{
		{Defaults{Wake: "7", Sleep: 8, Coffee: 1}, "wake"},
		{Defaults{Wake: "07:00", Sleep: 15, Coffee: 1}, "sleep"},
		{Defaults{Wake: "07:00", Sleep: 7.2, Coffee: 1}, "sleep"},
		{Defaults{Wake: "07:00", Sleep: 8, Coffee: -3}, "coffee"},
		{Defaults{Wake: "07:00", Sleep: 8, Coffee: 21}, "coffee"},
	}
	for _, tt := range tests {
		var fe *FieldError
		require.True(t, errors.As(tt.def.Validate(), &fe), "%+v", tt.def)
		assert.Equal(t, tt.field, fe.Field, "%+v", tt.def)
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "8 Hours", SleepLabel(8))
	assert.Equal(t, "7.5 Hours", SleepLabel(7.5))
	assert.Equal(t, "0 cups", CupsLabel(0))
	assert.Equal(t, "1 cup", CupsLabel(1))
	assert.Equal(t, "2 cups", CupsLabel(2))
}
