// Package model loads the pre-trained sleep regressor and serves predictions
// from it. The artifact is a small YAML (or JSON) document holding the
// intercept and one weight per input feature.
package model

import (
	_ "embed"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Feature names the regressor is trained on.
const (
	FeatureWake           = "wake"
	FeatureEstimatedSleep = "estimatedSleep"
	FeatureCoffee         = "coffee"
)

var (
	// ErrInputOutOfRange is returned for non-finite inputs or inputs outside
	// the range a feature was trained on.
	ErrInputOutOfRange = errors.New("model input out of range")

	// ErrInvalidOutput is returned when the regression produces a non-finite value.
	ErrInvalidOutput = errors.New("model produced invalid output")
)

//go:embed sleepcalculator.yaml
var defaultArtifact []byte

// Feature is one regression term.
type Feature struct {
	Name   string   `yaml:"name"`
	Weight float64  `yaml:"weight"`
	Min    *float64 `yaml:"min,omitempty"`
	Max    *float64 `yaml:"max,omitempty"`
}

// Artifact is the on-disk form of the model.
type Artifact struct {
	Name      string    `yaml:"name"`
	Version   int       `yaml:"version"`
	Output    string    `yaml:"output"`
	Intercept float64   `yaml:"intercept"`
	Features  []Feature `yaml:"features"`
}

// Regressor is a validated linear model over wake, estimatedSleep and coffee.
type Regressor struct {
	Name    string
	Version int

	intercept float64
	terms     [3]Feature
}

// Parse decodes and validates an artifact.
func Parse(data []byte) (*Regressor, error) {
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(err, "decode model artifact")
	}
	return newRegressor(a)
}

// Load reads the artifact at path.
func Load(path string) (*Regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", path)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", path)
	}
	return r, nil
}

// Default returns the regressor compiled into the binary.
func Default() (*Regressor, error) {
	return Parse(defaultArtifact)
}

func newRegressor(a Artifact) (*Regressor, error) {
	if !finite(a.Intercept) {
		return nil, errors.New("intercept must be finite")
	}

	order := map[string]int{
		FeatureWake:           0,
		FeatureEstimatedSleep: 1,
		FeatureCoffee:         2,
	}
	r := &Regressor{Name: a.Name, Version: a.Version, intercept: a.Intercept}
	seen := [3]bool{}

	for _, f := range a.Features {
		i, ok := order[f.Name]
		if !ok {
			return nil, errors.Errorf("unknown feature %q", f.Name)
		}
		if seen[i] {
			return nil, errors.Errorf("duplicate feature %q", f.Name)
		}
		if !finite(f.Weight) {
			return nil, errors.Errorf("feature %q: weight must be finite", f.Name)
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return nil, errors.Errorf("feature %q: min %v > max %v", f.Name, *f.Min, *f.Max)
		}
		seen[i] = true
		r.terms[i] = f
	}
	for name, i := range order {
		if !seen[i] {
			return nil, errors.Errorf("missing feature %q", name)
		}
	}
	return r, nil
}

// Predict returns the actual sleep needed, in seconds.
func (r *Regressor) Predict(wake, estimatedSleep, coffee float64) (float64, error) {
	x := [3]float64{wake, estimatedSleep, coffee}
	y := r.intercept
	for i, f := range r.terms {
		if err := f.check(x[i]); err != nil {
			return 0, err
		}
		y += f.Weight * x[i]
	}
	if !finite(y) {
		return 0, errors.Wrapf(ErrInvalidOutput, "%v", y)
	}
	return y, nil
}

func (f Feature) check(v float64) error {
	if !finite(v) {
		return errors.Wrapf(ErrInputOutOfRange, "%s=%v", f.Name, v)
	}
	if f.Min != nil && v < *f.Min {
		return errors.Wrapf(ErrInputOutOfRange, "%s=%v below %v", f.Name, v, *f.Min)
	}
	if f.Max != nil && v > *f.Max {
		return errors.Wrapf(ErrInputOutOfRange, "%s=%v above %v", f.Name, v, *f.Max)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
