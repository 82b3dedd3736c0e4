// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"context"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Iterations = 1000
	cfg.Seed = &seed
	return cfg
}

func TestUnpairedShift(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}
	r, err := Run(context.Background(), a, b, seededConfig(1))
	require.NoError(t, err)

	assert.Equal(t, 0.05, r.Alpha)
	assert.InDelta(t, 3.0, r.A.Mean, 0.3)
	assert.InDelta(t, 4.0, r.B.Mean, 0.3)
	assert.InDelta(t, 1.0, r.Mean.Center, 0.4)
	assert.True(t, r.Mean.ShowLo)
	assert.True(t, r.Mean.ShowHi)
	assert.True(t, r.Mean.NullAccepted)
	assert.Equal(t, Similar, r.Mean.Relation)

	// Equal spreads.
	assert.InDelta(t, 1.0, r.FTest.Ratio, 0.25)
	assert.LessOrEqual(t, r.FTest.Ratio, 1.0)
	assert.False(t, r.FTest.Significant)

	assert.False(t, math.IsNaN(r.CohensD) || math.IsInf(r.CohensD, 0))
	assert.Greater(t, r.CohensD, 0.0)

	assert.Equal(t, 5, r.A.N)
	assert.Equal(t, 1.0, r.A.Min)
	assert.Equal(t, 6.0, r.B.Max)
	assert.Equal(t, 3.0, r.A.Median)
	assert.Equal(t, 4.0, r.B.Median)
	assert.InDelta(t, 100.0/3, r.MedianChange, 1e-12)
	assert.InDelta(t, r.A.SD/math.Sqrt(5), r.A.SE, 1e-15)
	assert.Equal(t, r.A.SDPop*r.A.SDPop, r.A.Variance)

	assert.Nil(t, r.Correlation)
	assert.Equal(t, "Welch t-test", r.Classical.TTest)
	assert.Greater(t, r.Classical.TP, 0.05)
	assert.Nil(t, r.Bootstrap.A.Means)
}

func TestPairedIdentical(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	cfg := seededConfig(2)
	cfg.Paired = true
	r, err := Run(context.Background(), a, slices.Clone(a), cfg)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Mean.Lo)
	assert.Equal(t, 0.0, r.Mean.Center)
	assert.Equal(t, 0.0, r.Mean.Hi)
	assert.Equal(t, 1.0, r.Mean.P)
	assert.True(t, r.Mean.NullAccepted)
	assert.Equal(t, Similar, r.Mean.Relation)

	assert.Equal(t, 0.0, r.SD.Center)
	assert.Equal(t, 1.0, r.SD.P)
	assert.True(t, r.SD.NullAccepted)

	require.NotNil(t, r.Correlation)
	assert.Equal(t, 1.0, r.Correlation.Rho)
	assert.Equal(t, CorrPerfectPos, r.Correlation.Class)
	assert.Equal(t, "Perfect Pos", r.Correlation.Class.String())
	assert.True(t, r.Correlation.Significant)
	assert.Less(t, r.Correlation.P, 0.001)
	assert.InDelta(t, 1.0, r.Correlation.RSquared, 1e-12)

	// The paired t-test has no variance to work with.
	assert.Equal(t, "paired t-test", r.Classical.TTest)
	assert.True(t, math.IsNaN(r.Classical.TP))
	assert.True(t, hasWarning(r, "paired t-test"))
}

func TestPairedShift(t *testing.T) {
	a := []float64{10, 12, 9, 14, 11, 13, 10, 12}
	b := make([]float64, len(a))
	for i, x := range a {
		b[i] = x - 3
	}
	cfg := seededConfig(3)
	cfg.Paired = true
	r, err := Run(context.Background(), a, b, cfg)
	require.NoError(t, err)

	// Every pair differs by exactly -3.
	assert.Equal(t, -3.0, r.Mean.Lo)
	assert.Equal(t, -3.0, r.Mean.Hi)
	assert.False(t, r.Mean.NullAccepted)
	assert.Equal(t, AGreater, r.Mean.Relation)
	assert.Equal(t, 0.0, r.Mean.P)
	assert.Less(t, r.Mean.PercentChange, 0.0)
	assert.Equal(t, CorrPerfectPos, r.Correlation.Class)
}

func TestOneTailed(t *testing.T) {
	a := []float64{20, 21, 22, 23, 24, 25}
	b := []float64{1, 2, 3, 4, 5, 6}
	cfg := seededConfig(4)
	cfg.Tail = OneTailed
	r, err := Run(context.Background(), a, b, cfg)
	require.NoError(t, err)

	assert.Equal(t, 0.025, r.Alpha)
	assert.True(t, r.Mean.ShowLo)
	assert.False(t, r.Mean.ShowHi)
	assert.False(t, r.Mean.NullAccepted)
	assert.Equal(t, AGreater, r.Mean.Relation)

	r, err = Run(context.Background(), b, a, cfg)
	require.NoError(t, err)
	assert.False(t, r.Mean.ShowLo)
	assert.True(t, r.Mean.ShowHi)
	assert.Equal(t, ALess, r.Mean.Relation)
}

func TestDiffTest(t *testing.T) {
	check := func(tail Tail, a, b, lo, hi float64, showLo, showHi, null bool, rel Relation) {
		t.Helper()
		d := diffTest(tail, a, b, lo, (lo+hi)/2, hi, 0.05)
		if d.ShowLo != showLo || d.ShowHi != showHi || d.NullAccepted != null || d.Relation != rel {
			t.Errorf("diffTest(%v, %v, %v, [%v, %v]) = show %v/%v null %v %v, want %v/%v %v %v",
				tail, a, b, lo, hi, d.ShowLo, d.ShowHi, d.NullAccepted, d.Relation, showLo, showHi, null, rel)
		}
	}
	check(TwoTailed, 3, 4, -1, 3, true, true, true, Similar)
	check(TwoTailed, 3, 5, 0.5, 3, true, true, false, ALess)
	check(TwoTailed, 5, 3, -3, -0.5, true, true, false, AGreater)
	check(TwoTailed, 3, 3, 0, 0, true, true, true, Similar)

	// One-tailed with A ahead tests the upper bound.
	check(OneTailed, 5, 3, -3, 0.5, true, false, true, Similar)
	check(OneTailed, 5, 3, -3, -0.5, true, false, false, AGreater)
	// Otherwise the lower bound.
	check(OneTailed, 3, 5, -0.5, 3, false, true, true, Similar)
	check(OneTailed, 3, 5, 0.5, 3, false, true, false, ALess)
}

func TestFTest(t *testing.T) {
	f := fTest(1.5, 1.5, 5, 5, 0.05)
	assert.Equal(t, 1.0, f.Ratio)
	assert.InDelta(t, 1.0, f.P, 1e-6)
	assert.False(t, f.Significant)

	f = fTest(2, 1, 5, 10, 0.05)
	assert.Equal(t, 0.25, f.Ratio)
	assert.Equal(t, 4, f.DF1)
	assert.Equal(t, 9, f.DF2)

	f = fTest(1, 2, 5, 10, 0.05)
	assert.Equal(t, 0.25, f.Ratio)
	assert.Equal(t, 9, f.DF1)
	assert.Equal(t, 4, f.DF2)

	f = fTest(10, 1, 30, 30, 0.05)
	assert.True(t, f.Significant)
}

func TestClassify(t *testing.T) {
	for r, want := range map[float64]CorrelationClass{
		0:     CorrNone,
		1:     CorrPerfectPos,
		-1:    CorrPerfectNeg,
		0.1:   CorrWeakPos,
		0.3:   CorrModeratePos,
		0.69:  CorrModeratePos,
		0.7:   CorrStrongPos,
		0.999: CorrStrongPos,
		-0.2:  CorrWeakNeg,
		-0.3:  CorrModerateNeg,
		-0.7:  CorrStrongNeg,
		-0.95: CorrStrongNeg,
	} {
		assert.Equal(t, want, Classify(r), "Classify(%v)", r)
	}
	assert.Equal(t, CorrUndefined, Classify(math.NaN()))
	assert.Equal(t, "Moderate Neg", CorrModerateNeg.String())
}

func TestValidate(t *testing.T) {
	good := []float64{1, 2, 3}
	check := func(mod func(*Config), a, b []float64, want error) {
		t.Helper()
		cfg := DefaultConfig()
		if mod != nil {
			mod(&cfg)
		}
		err := cfg.Validate(a, b)
		if want == nil {
			assert.NoError(t, err)
			return
		}
		assert.ErrorIs(t, err, ErrInputValidation)
		assert.ErrorIs(t, err, want)
	}
	check(nil, good, good, nil)
	check(nil, nil, good, ErrEmptySample)
	check(nil, good, []float64{}, ErrEmptySample)
	check(nil, good, []float64{1, math.NaN()}, ErrNonFinite)
	check(nil, []float64{math.Inf(-1)}, good, ErrNonFinite)
	check(func(c *Config) { c.Paired = true }, good, []float64{1, 2}, ErrSampleSizeMismatch)
	check(func(c *Config) { c.Paired = true }, good, []float64{4, 5, 6}, nil)
	check(func(c *Config) { c.Confidence = 100.5 }, good, good, ErrConfig)
	check(func(c *Config) { c.Confidence = -1 }, good, good, ErrConfig)
	check(func(c *Config) { c.Confidence = 0 }, good, good, nil)
	check(func(c *Config) { c.Iterations = 999 }, good, good, ErrConfig)
	check(func(c *Config) { c.Iterations = 1500 }, good, good, ErrConfig)
	check(func(c *Config) { c.Iterations = MaxIterations }, good, good, nil)
	check(func(c *Config) { c.Iterations = MaxIterations + 1000 }, good, good, ErrConfig)
	check(func(c *Config) { c.Tail = Tail(7) }, good, good, ErrConfig)
	check(func(c *Config) { c.Workers = -1 }, good, good, ErrConfig)

	_, err := Run(context.Background(), nil, good, DefaultConfig())
	require.ErrorIs(t, err, ErrEmptySample)
}

func TestAlpha(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.05, cfg.Alpha(), 1e-15)
	cfg.Tail = OneTailed
	assert.InDelta(t, 0.025, cfg.Alpha(), 1e-15)
	cfg.Confidence = 100
	assert.Equal(t, 0.0, cfg.Alpha())
}

func TestParseTail(t *testing.T) {
	for in, want := range map[string]Tail{"one": OneTailed, "Two": TwoTailed, "one-tailed": OneTailed, " 2 ": TwoTailed} {
		got, err := ParseTail(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTail("three")
	require.ErrorIs(t, err, ErrConfig)

	var tl Tail
	require.NoError(t, tl.UnmarshalText([]byte("one")))
	assert.Equal(t, OneTailed, tl)
	b, err := TwoTailed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
}

func TestDegenerateSamples(t *testing.T) {
	r, err := Run(context.Background(), []float64{3}, []float64{4}, seededConfig(5))
	require.NoError(t, err)

	assert.Equal(t, 3.0, r.A.Mean)
	assert.True(t, math.IsNaN(r.A.SD))
	assert.True(t, math.IsNaN(r.A.Skewness))
	assert.True(t, math.IsNaN(r.B.Kurtosis))
	assert.True(t, hasWarning(r, "sample A has a single value"))
	assert.True(t, hasWarning(r, "skewness"))
	assert.True(t, hasWarning(r, "Welch t-test"))
}

func TestZeroSpread(t *testing.T) {
	r, err := Run(context.Background(), []float64{2, 2, 2, 2}, []float64{5, 5, 5, 5}, seededConfig(6))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.A.SD)
	assert.True(t, math.IsNaN(r.A.Skewness))
	assert.True(t, math.IsInf(r.CohensD, 1))
	assert.True(t, hasWarning(r, "zero spread"))
}

func TestReproducible(t *testing.T) {
	a := []float64{1.2, 3.4, 2.2, 5.1, 4.4, 3.3, 2.9, 4.8}
	b := []float64{2.5, 4.1, 3.9, 6.6, 5.0, 4.2, 3.7, 5.9}
	cfg := seededConfig(99)
	cfg.Workers = 3
	r1, err := Run(context.Background(), a, b, cfg)
	require.NoError(t, err)
	require.Empty(t, r1.Warnings)
	r2, err := Run(context.Background(), a, b, cfg)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestKeepResamples(t *testing.T) {
	cfg := seededConfig(7)
	cfg.KeepResamples = true
	r, err := Run(context.Background(), []float64{1, 2, 3}, []float64{3, 4, 5}, cfg)
	require.NoError(t, err)
	assert.Len(t, r.Bootstrap.A.Means, 1000)
	assert.Len(t, r.Bootstrap.B.SDs, 1000)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []float64{1, 2}, []float64{3, 4}, seededConfig(8))
	require.ErrorIs(t, err, context.Canceled)
}

func TestClassicalString(t *testing.T) {
	c := Classical{TP: 0.0123, UP: math.NaN(), N1: 5, N2: 5}
	assert.Equal(t, "t: p=0.012 U: p=? n=5", c.String())
	c.N2 = 7
	assert.Equal(t, "t: p=0.012 U: p=? n=5+7", c.String())
}

func hasWarning(r *Report, substr string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w.Error(), substr) {
			return true
		}
	}
	return false
}
