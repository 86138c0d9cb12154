// Package form turns raw form fields into an estimate request. It enforces
// the ranges the input controls allow; the estimator itself does not.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"betterrest/internal/bedtime"
)

// Control ranges.
const (
	MinSleep  = 4.0
	MaxSleep  = 12.0
	SleepStep = 0.5

	MinCoffee = 0
	MaxCoffee = 20
)

// Input holds the raw field values, as typed or as found in a query string.
type Input struct {
	Wake   string
	Sleep  string
	Coffee string
}

// Defaults are used for empty fields.
type Defaults struct {
	Wake   string
	Sleep  float64
	Coffee int
}

// Standard are the defaults the form opens with.
var Standard = Defaults{Wake: "07:00", Sleep: 8, Coffee: 1}

// FieldError reports an invalid form field.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Msg
}

// Parse validates in and builds the request.
func Parse(in Input, def Defaults) (bedtime.Request, error) {
	wake, err := bedtime.ParseTimeOfDay(orDefault(in.Wake, def.Wake))
	if err != nil {
		return bedtime.Request{}, &FieldError{Field: "wake", Msg: err.Error()}
	}

	sleep := def.Sleep
	if s := strings.TrimSpace(in.Sleep); s != "" {
		sleep, err = parseFloat(s)
		if err != nil {
			return bedtime.Request{}, &FieldError{Field: "sleep", Msg: fmt.Sprintf("invalid number %q", in.Sleep)}
		}
	}
	if err := checkSleep(sleep); err != nil {
		return bedtime.Request{}, err
	}

	coffee := def.Coffee
	if s := strings.TrimSpace(in.Coffee); s != "" {
		coffee, err = strconv.Atoi(s)
		if err != nil {
			return bedtime.Request{}, &FieldError{Field: "coffee", Msg: fmt.Sprintf("invalid number %q", in.Coffee)}
		}
	}
	if err := checkCoffee(coffee); err != nil {
		return bedtime.Request{}, err
	}

	return bedtime.Request{Wake: wake, SleepHours: sleep, CoffeeCups: coffee}, nil
}

// Validate checks that the defaults lie within the control ranges.
func (d Defaults) Validate() error {
	if _, err := bedtime.ParseTimeOfDay(d.Wake); err != nil {
		return &FieldError{Field: "wake", Msg: err.Error()}
	}
	if err := checkSleep(d.Sleep); err != nil {
		return err
	}
	return checkCoffee(d.Coffee)
}

func checkSleep(h float64) error {
	if h < MinSleep || h > MaxSleep {
		return &FieldError{Field: "sleep", Msg: fmt.Sprintf("must be between %g and %g hours", MinSleep, MaxSleep)}
	}
	if math.Mod(h, SleepStep) != 0 {
		return &FieldError{Field: "sleep", Msg: fmt.Sprintf("must be a multiple of %g hours", SleepStep)}
	}
	return nil
}

func checkCoffee(n int) error {
	if n < MinCoffee || n > MaxCoffee {
		return &FieldError{Field: "coffee", Msg: fmt.Sprintf("must be between %d and %d cups", MinCoffee, MaxCoffee)}
	}
	return nil
}

// SleepLabel renders the sleep stepper value, e.g. "8 Hours" or "7.5 Hours".
func SleepLabel(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + " Hours"
}

// CupsLabel renders the coffee stepper value with the right plural.
func CupsLabel(n int) string {
	if n == 1 {
		return "1 cup"
	}
	return fmt.Sprintf("%d cups", n)
}

func orDefault(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return strings.TrimSpace(val)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}
