// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compare runs a two-sample comparison: it bootstraps both
// samples, derives interval-based tests for the difference of their
// means and of their standard deviations, and adds a variance-ratio
// F-test, effect size, shape statistics and, for paired samples, a rank
// correlation.
//
// Degenerate data (a single observation, zero spread, too few values
// for a shape statistic) does not fail a comparison. The affected
// values are NaN or ±Inf and the Report carries a warning for each.
package compare

import (
	"context"
	"fmt"
	"math"

	"github.com/sfeek/bootstat/bootstrap"
	"github.com/sfeek/bootstat/descstat"
	"github.com/sfeek/bootstat/specfunc"
)

// A Relation is the verdict of a difference test.
type Relation int

const (
	Similar  Relation = iota // the null hypothesis is accepted
	AGreater                 // A > B
	ALess                    // A < B
)

func (r Relation) String() string {
	switch r {
	case Similar:
		return "A ≈ B"
	case AGreater:
		return "A > B"
	case ALess:
		return "A < B"
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// SampleStats describes one sample. Mean and SD are the medians of
// their bootstrap distributions; everything else is computed from the
// raw data.
type SampleStats struct {
	N        int
	Min, Max float64

	MeanLo, Mean, MeanHi float64
	SDLo, SD, SDHi       float64

	// SDPop and Variance are the population standard deviation and
	// variance around Mean.
	SDPop, Variance float64

	Median float64

	// SE is the standard error SD/√N.
	SE float64

	Skewness, Kurtosis float64
}

// A DiffTest is an interval test of the difference B−A of some
// statistic.
type DiffTest struct {
	Lo, Center, Hi float64

	// ShowLo and ShowHi report which bounds the test uses. A
	// two-tailed test uses both. A one-tailed test uses only the
	// bound on the side of the observed direction.
	ShowLo, ShowHi bool

	P            float64
	NullAccepted bool
	Relation     Relation

	// PercentChange is the change from A's center to B's.
	PercentChange float64
}

// FTest is a variance-ratio test. Ratio is the smaller variance over
// the larger and P the two-sided p-value.
type FTest struct {
	Ratio       float64
	DF1, DF2    int
	P           float64
	Significant bool
}

// Correlation is Spearman's rank correlation of paired samples.
type Correlation struct {
	Rho         float64
	Class       CorrelationClass
	T           float64
	P           float64
	Significant bool

	// RSquared is the coefficient of determination of the raw
	// values, not of the ranks.
	RSquared float64
}

// A Report is the result of a comparison.
type Report struct {
	Config Config
	Alpha  float64

	A, B SampleStats

	// Mean and SD test the differences of the bootstrapped means and
	// standard deviations.
	Mean, SD DiffTest

	MedianChange float64
	CohensD      float64
	FTest        FTest

	// Correlation is only set for paired samples of more than one
	// pair.
	Correlation *Correlation

	// Classical holds conventional parametric and rank tests for
	// cross-checking the bootstrap verdict.
	Classical Classical

	Bootstrap bootstrap.Comparison

	// Warnings lists degenerate conditions met while computing
	// the report.
	Warnings []error
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Errorf(format, args...))
}

// Run validates cfg and the samples, bootstraps them and derives the
// report. Only validation errors and cancellation of ctx fail a run.
func Run(ctx context.Context, a, b []float64, cfg Config) (*Report, error) {
	if err := cfg.Validate(a, b); err != nil {
		return nil, err
	}

	alpha := cfg.Alpha()
	e := &bootstrap.Engine{
		Iterations: cfg.Iterations,
		Alpha:      alpha,
		Workers:    cfg.Workers,
		Keep:       cfg.KeepResamples,
	}
	if cfg.Seed != nil {
		e.NewSource = bootstrap.Seeded(*cfg.Seed)
	}

	var (
		c   bootstrap.Comparison
		err error
	)
	if cfg.Paired {
		c, err = e.Paired(ctx, a, b)
	} else {
		c, err = e.Unpaired(ctx, a, b)
	}
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	r := &Report{Config: cfg, Alpha: alpha, Bootstrap: c}
	r.A = r.describe("A", a, c.A)
	r.B = r.describe("B", b, c.B)

	d := c.Diff
	r.Mean = diffTest(cfg.Tail, r.A.Mean, r.B.Mean, d.MeanLo, d.MeanMid, d.MeanHi, alpha)
	r.SD = diffTest(cfg.Tail, r.A.SD, r.B.SD, d.SDLo, d.SDMid, d.SDHi, alpha)
	r.MedianChange = descstat.PercentChange(r.A.Median, r.B.Median)

	r.CohensD = d.MeanMid / math.Sqrt((r.A.SD*r.A.SD+r.B.SD*r.B.SD)/2)
	r.FTest = fTest(r.A.SD, r.B.SD, r.A.N, r.B.N, alpha)
	if r.A.SD == 0 && r.B.SD == 0 {
		r.warnf("both samples have zero spread; effect size and F-test are undefined")
	}

	if cfg.Paired && len(a) > 1 {
		r.Correlation = r.correlate(a, b, alpha)
	}
	r.Classical = r.classical(a, b, cfg.Paired)

	return r, nil
}

func (r *Report) describe(name string, xs []float64, res bootstrap.Result) SampleStats {
	s := SampleStats{
		N:      len(xs),
		MeanLo: res.MeanLo, Mean: res.MeanMid, MeanHi: res.MeanHi,
		SDLo: res.SDLo, SD: res.SDMid, SDHi: res.SDHi,
	}
	s.Min, s.Max, _ = descstat.Bounds(xs)
	s.Median, _ = descstat.Median(xs)
	s.SDPop = descstat.SDPopulation(xs, s.Mean)
	s.Variance = s.SDPop * s.SDPop
	s.SE = s.SD / math.Sqrt(float64(s.N))

	switch {
	case s.N == 1:
		r.warnf("sample %s has a single value; spread statistics are undefined", name)
	case s.SD == 0:
		r.warnf("sample %s has zero spread; shape statistics are undefined", name)
	}

	var err error
	if s.Skewness, err = descstat.Skewness(xs, s.Mean, s.SD); err != nil {
		r.warnf("sample %s: %w", name, err)
	}
	if s.Kurtosis, err = descstat.Kurtosis(xs, s.Mean, s.SD); err != nil {
		r.warnf("sample %s: %w", name, err)
	}
	return s
}

// diffTest decides an interval test of B−A given the centers of A and
// B and the interval [lo, hi] around center.
func diffTest(tail Tail, a, b, lo, center, hi, alpha float64) DiffTest {
	t := DiffTest{
		Lo: lo, Center: center, Hi: hi,
		P:             specfunc.PFromCI(lo, hi, center, 1-alpha),
		PercentChange: descstat.PercentChange(a, b),
	}
	switch {
	case tail == TwoTailed:
		t.ShowLo, t.ShowHi = true, true
		t.NullAccepted = lo <= 0 && hi >= 0
	case a > b:
		t.ShowLo = true
		t.NullAccepted = hi >= 0
	default:
		t.ShowHi = true
		t.NullAccepted = lo <= 0
	}
	switch {
	case t.NullAccepted:
		t.Relation = Similar
	case a > b:
		t.Relation = AGreater
	default:
		t.Relation = ALess
	}
	return t
}

// fTest compares the larger variance against the smaller, with the
// degrees of freedom following the variances.
func fTest(sdA, sdB float64, nA, nB int, alpha float64) FTest {
	f, n1, n2 := 1.0, nA, nB
	if sdA > sdB {
		f = sdA * sdA / (sdB * sdB)
	}
	if sdA < sdB {
		f = sdB * sdB / (sdA * sdA)
		n1, n2 = nB, nA
	}
	p := 2 * specfunc.PFromF(f, n1-1, n2-1)
	return FTest{
		Ratio:       1 / f,
		DF1:         n1 - 1,
		DF2:         n2 - 1,
		P:           p,
		Significant: p <= alpha,
	}
}

func (r *Report) correlate(a, b []float64, alpha float64) *Correlation {
	c := &Correlation{Rho: descstat.Spearman(a, b)}
	c.Class = Classify(c.Rho)
	if math.IsNaN(c.Rho) {
		r.warnf("rank correlation is undefined: a sample has no distinct values")
	}

	dof := float64(len(a) - 2)
	if dof < 1 {
		r.warnf("rank correlation significance needs at least 3 pairs, have %d", len(a))
	}
	c.T = c.Rho / math.Sqrt((1-c.Rho*c.Rho)/dof)
	c.P = specfunc.PFromT(c.T, dof)
	c.Significant = c.P <= alpha
	c.RSquared = descstat.RSquared(a, b)
	return c
}
