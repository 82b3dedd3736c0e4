// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sfeek/bootstat/bootstrap"
)

var (
	// ErrInputValidation wraps every error Validate returns.
	ErrInputValidation = errors.New("invalid input")

	// ErrConfig is returned for out-of-range configuration values.
	ErrConfig = errors.New("invalid configuration")

	// ErrNonFinite is returned when a sample contains NaN or ±Inf.
	ErrNonFinite = errors.New("sample contains a non-finite value")

	ErrEmptySample        = bootstrap.ErrEmptySample
	ErrSampleSizeMismatch = bootstrap.ErrSampleSizeMismatch
)

// Iteration limits. Iterations are counted in thousands.
const (
	MinIterations = 1000
	MaxIterations = 9999000
)

// Tail selects one- or two-tailed hypothesis tests.
type Tail int

const (
	TwoTailed Tail = iota
	OneTailed
)

func (t Tail) String() string {
	switch t {
	case TwoTailed:
		return "two"
	case OneTailed:
		return "one"
	}
	return fmt.Sprintf("Tail(%d)", int(t))
}

// ParseTail parses "one" or "two", optionally followed by "-tailed".
func ParseTail(s string) (Tail, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-tailed") {
	case "two", "2":
		return TwoTailed, nil
	case "one", "1":
		return OneTailed, nil
	}
	return 0, fmt.Errorf("tail %q: want one or two: %w", s, ErrConfig)
}

func (t Tail) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tail) UnmarshalText(b []byte) error {
	v, err := ParseTail(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Config controls a comparison.
type Config struct {
	Paired bool `json:"paired" yaml:"paired"`
	Tail   Tail `json:"tail" yaml:"tail" validate:"oneof=0 1"`

	// Confidence is a percentage.
	Confidence float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=100"`

	// Iterations is the number of bootstrap resamples per sequence.
	// It must be a multiple of 1000.
	Iterations int `json:"iterations" yaml:"iterations" validate:"gte=1000,lte=9999000,thousands"`

	// Seed, if set, makes the resampling deterministic.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Workers is the number of goroutines resampling each sequence.
	Workers int `json:"workers" yaml:"workers" validate:"gte=0,lte=1024"`

	// KeepResamples retains the bootstrap distributions in the
	// report, for charting.
	KeepResamples bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a two-tailed, unpaired, 95% configuration with
// 10000 iterations.
func DefaultConfig() Config {
	return Config{
		Tail:       TwoTailed,
		Confidence: 95,
		Iterations: 10000,
	}
}

// Alpha returns the tail fraction used to pick bootstrap percentiles
// and as the significance threshold: (100-Confidence)/100, halved in
// one-tailed mode.
func (c Config) Alpha() float64 {
	a := (100 - c.Confidence) / 100
	if c.Tail == OneTailed {
		a /= 2
	}
	return a
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("thousands", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%1000 == 0
	})
}

// Validate checks the configuration and the two samples before any
// computation. Every error it returns wraps ErrInputValidation and one
// of ErrEmptySample, ErrSampleSizeMismatch, ErrNonFinite or ErrConfig.
func (c Config) Validate(a, b []float64) error {
	for _, s := range []struct {
		name string
		xs   []float64
	}{{"A", a}, {"B", b}} {
		if len(s.xs) == 0 {
			return fmt.Errorf("%w: sample %s: %w", ErrInputValidation, s.name, ErrEmptySample)
		}
		for i, x := range s.xs {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: sample %s[%d] = %v: %w", ErrInputValidation, s.name, i, x, ErrNonFinite)
			}
		}
	}
	if c.Paired && len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d values: %w", ErrInputValidation, len(a), len(b), ErrSampleSizeMismatch)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s = %v fails %q: %w", ErrInputValidation, fe.Field(), fe.Value(), fe.Tag(), ErrConfig)
		}
		return fmt.Errorf("%w: %w: %v", ErrInputValidation, ErrConfig, err)
	}
	return nil
}
