// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// CorrelationClass is an ordinal description of a correlation
// coefficient.
type CorrelationClass int

const (
	CorrUndefined CorrelationClass = iota
	CorrNone
	CorrWeakPos
	CorrModeratePos
	CorrStrongPos
	CorrPerfectPos
	CorrWeakNeg
	CorrModerateNeg
	CorrStrongNeg
	CorrPerfectNeg
)

var corrNames = [...]string{
	CorrUndefined:   "Undefined",
	CorrNone:        "None",
	CorrWeakPos:     "Weak Pos",
	CorrModeratePos: "Moderate Pos",
	CorrStrongPos:   "Strong Pos",
	CorrPerfectPos:  "Perfect Pos",
	CorrWeakNeg:     "Weak Neg",
	CorrModerateNeg: "Moderate Neg",
	CorrStrongNeg:   "Strong Neg",
	CorrPerfectNeg:  "Perfect Neg",
}

func (c CorrelationClass) String() string {
	if c < 0 || int(c) >= len(corrNames) {
		return fmt.Sprintf("CorrelationClass(%d)", int(c))
	}
	return corrNames[c]
}

func (c CorrelationClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// epsilon is the difference between 1 and the next float64.
const epsilon = 0x1p-52

// Classify maps a correlation coefficient onto the scale
// None, Weak (< 0.3), Moderate (< 0.7), Strong and Perfect, by sign.
// Coefficients within machine epsilon of ±1 are Perfect.
func Classify(r float64) CorrelationClass {
	switch {
	case r == 0:
		return CorrNone
	case math.Abs(r-1) < epsilon:
		return CorrPerfectPos
	case math.Abs(r+1) < epsilon:
		return CorrPerfectNeg
	case r > 0 && r < 0.3:
		return CorrWeakPos
	case r >= 0.3 && r < 0.7:
		return CorrModeratePos
	case r >= 0.7 && r < 1:
		return CorrStrongPos
	case r < 0 && r > -0.3:
		return CorrWeakNeg
	case r <= -0.3 && r > -0.7:
		return CorrModerateNeg
	case r <= -0.7 && r > -1:
		return CorrStrongNeg
	}
	return CorrUndefined
}

// Classical holds conventional two-sample tests of location run over
// the raw samples.
//
// A test that cannot be performed (too few values, zero variance,
// identical samples) has a P of NaN and adds a warning to the Report.
type Classical struct {
	// TTest names the t-test used: Welch's for unpaired samples, a
	// paired t-test otherwise.
	TTest string
	TP    float64

	// UP is the p-value of a Mann-Whitney U-test.
	UP float64

	N1, N2 int
}

// String summarizes the tests in the form "t: p=0.PPP U: p=0.PPP n=N1+N2".
func (c Classical) String() string {
	p := func(v float64) string {
		if math.IsNaN(v) {
			return "p=?"
		}
		return fmt.Sprintf("p=%0.3f", v)
	}
	s := fmt.Sprintf("t: %s U: %s ", p(c.TP), p(c.UP))
	if c.N1 == c.N2 {
		return s + fmt.Sprintf("n=%d", c.N1)
	}
	return s + fmt.Sprintf("n=%d+%d", c.N1, c.N2)
}

func (r *Report) classical(a, b []float64, paired bool) Classical {
	c := Classical{N1: len(a), N2: len(b), TP: math.NaN(), UP: math.NaN()}

	var (
		t   *stats.TTestResult
		err error
	)
	if paired {
		c.TTest = "paired t-test"
		t, err = stats.PairedTTest(a, b, 0, stats.LocationDiffers)
	} else {
		c.TTest = "Welch t-test"
		t, err = stats.TwoSampleWelchTTest(stats.Sample{Xs: a}, stats.Sample{Xs: b}, stats.LocationDiffers)
	}
	if err != nil {
		r.warnf("%s: %s", c.TTest, classicalReason(err))
	} else {
		c.TP = t.P
	}

	u, err := stats.MannWhitneyUTest(a, b, stats.LocationDiffers)
	if err != nil {
		r.warnf("U-test: %s", classicalReason(err))
	} else {
		c.UP = u.P
	}
	return c
}

func classicalReason(err error) string {
	switch {
	case errors.Is(err, stats.ErrSampleSize):
		return "too few samples"
	case errors.Is(err, stats.ErrZeroVariance):
		return "zero variance"
	case errors.Is(err, stats.ErrSamplesEqual):
		return "all samples are equal"
	}
	return err.Error()
}
