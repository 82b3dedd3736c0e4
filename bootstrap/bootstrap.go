// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bootstrap estimates percentile bootstrap confidence intervals
// for the mean and standard deviation of a sample, and combines the
// intervals of two samples into an interval for their difference.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/sfeek/bootstat/descstat"
)

var (
	// ErrEmptySample is returned when a sample to resample is empty.
	ErrEmptySample = errors.New("empty sample")

	// ErrSampleSizeMismatch is returned when paired samples have
	// different lengths.
	ErrSampleSizeMismatch = errors.New("paired samples differ in length")

	// ErrIterations is returned when the iteration count is not
	// positive.
	ErrIterations = errors.New("iteration count must be positive")
)

// A Source produces uniformly distributed indexes in [0, n).
//
// A *math/rand.Rand is a Source. Sources need not be safe for
// concurrent use; the Engine gives each worker its own.
type Source interface {
	Intn(n int) int
}

// NewSource returns a Source seeded with *seed, or with a fresh
// non-deterministic seed if seed is nil.
func NewSource(seed *int64) Source {
	if seed == nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return rand.New(rand.NewSource(*seed))
}

// Seeded returns a source constructor for Engine.NewSource that derives
// a distinct deterministic seed for every (stream, worker) pair from
// seed.
func Seeded(seed int64) func(stream, worker int) Source {
	return func(stream, worker int) Source {
		s := mix(seed, stream, worker)
		return NewSource(&s)
	}
}

const rot = 23

func mix(x int64, vs ...int) int64 {
	for _, v := range vs {
		xlow := (x >> (64 - rot)) & (1<<rot - 1)
		x = (x << rot) ^ xlow ^ int64(v)
	}
	return x
}

// A Result summarizes the bootstrap distributions of the mean and of
// the sample standard deviation of one sequence: their medians and the
// lower and upper percentiles at the engine's alpha.
type Result struct {
	MeanLo, MeanMid, MeanHi float64
	SDLo, SDMid, SDHi       float64

	// Means and SDs are the sorted resampled statistics. They are
	// only set when the Engine retains resamples.
	Means, SDs []float64 `json:"-" yaml:"-"`
}

// A Comparison holds the intervals of two samples A and B and of their
// difference B−A.
//
// For paired samples Diff is the bootstrap of the elementwise
// differences b[i]−a[i]. For unpaired samples Diff is composed from
// the intervals of A and B so that it covers every difference of a
// point in one interval and a point in the other:
//
//	Diff.MeanLo  = B.MeanLo  − A.MeanHi
//	Diff.MeanMid = B.MeanMid − A.MeanMid
//	Diff.MeanHi  = B.MeanHi  − A.MeanLo
//
// and likewise for the SD fields.
type Comparison struct {
	A, B, Diff Result
	Paired     bool
}

// Streams passed to Engine.NewSource.
const (
	StreamA = iota
	StreamB
	StreamDiff
)

// An Engine runs percentile bootstrap resampling.
type Engine struct {
	// Iterations is the number of resamples per sequence.
	Iterations int

	// Alpha is the tail mass cut off below the lower percentile and
	// above the upper percentile.
	Alpha float64

	// Workers is the number of goroutines resampling each
	// sequence. Values below 2 resample sequentially.
	Workers int

	// Keep retains the sorted resampled statistics in each Result.
	Keep bool

	// NewSource returns the random source used by worker for the
	// given stream. If nil, every worker gets a fresh
	// non-deterministic source.
	NewSource func(stream, worker int) Source
}

// CI resamples xs and returns the percentile intervals of its mean and
// sample standard deviation.
func (e *Engine) CI(ctx context.Context, xs []float64) (Result, error) {
	return e.ci(ctx, StreamA, xs)
}

// Paired bootstraps a, b and the differences b[i]−a[i].
func (e *Engine) Paired(ctx context.Context, a, b []float64) (Comparison, error) {
	if len(a) != len(b) {
		return Comparison{}, fmt.Errorf("%d vs %d values: %w", len(a), len(b), ErrSampleSizeMismatch)
	}
	c := Comparison{Paired: true}
	var err error
	if c.A, err = e.ci(ctx, StreamA, a); err != nil {
		return Comparison{}, fmt.Errorf("sample A: %w", err)
	}
	if c.B, err = e.ci(ctx, StreamB, b); err != nil {
		return Comparison{}, fmt.Errorf("sample B: %w", err)
	}
	d := make([]float64, len(a))
	for i := range a {
		d[i] = b[i] - a[i]
	}
	if c.Diff, err = e.ci(ctx, StreamDiff, d); err != nil {
		return Comparison{}, fmt.Errorf("differences: %w", err)
	}
	return c, nil
}

// Unpaired bootstraps a and b independently and composes their
// difference as described on Comparison.
func (e *Engine) Unpaired(ctx context.Context, a, b []float64) (Comparison, error) {
	var c Comparison
	var err error
	if c.A, err = e.ci(ctx, StreamA, a); err != nil {
		return Comparison{}, fmt.Errorf("sample A: %w", err)
	}
	if c.B, err = e.ci(ctx, StreamB, b); err != nil {
		return Comparison{}, fmt.Errorf("sample B: %w", err)
	}
	c.Diff = Result{
		MeanLo:  c.B.MeanLo - c.A.MeanHi,
		MeanMid: c.B.MeanMid - c.A.MeanMid,
		MeanHi:  c.B.MeanHi - c.A.MeanLo,
		SDLo:    c.B.SDLo - c.A.SDHi,
		SDMid:   c.B.SDMid - c.A.SDMid,
		SDHi:    c.B.SDHi - c.A.SDLo,
	}
	return c, nil
}

func (e *Engine) source(stream, worker int) Source {
	if e.NewSource == nil {
		return NewSource(nil)
	}
	return e.NewSource(stream, worker)
}

func (e *Engine) ci(ctx context.Context, stream int, xs []float64) (Result, error) {
	if len(xs) == 0 {
		return Result{}, ErrEmptySample
	}
	n := e.Iterations
	if n <= 0 {
		return Result{}, fmt.Errorf("%d: %w", n, ErrIterations)
	}

	means := make([]float64, n)
	sds := make([]float64, n)

	workers := min(max(e.Workers, 1), n)
	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, n)
		if lo >= hi {
			break
		}
		src := e.source(stream, w)
		g.Go(func() error {
			return resampleInto(gctx, src, xs, means[lo:hi], sds[lo:hi])
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	descstat.Sort(means)
	descstat.Sort(sds)

	mid, lo, hi := indexes(n, e.Alpha)
	r := Result{
		MeanLo: means[lo], MeanMid: means[mid], MeanHi: means[hi],
		SDLo: sds[lo], SDMid: sds[mid], SDHi: sds[hi],
	}
	if e.Keep {
		r.Means, r.SDs = means, sds
	}
	return r, nil
}

// indexes returns the positions of the median and of the alpha and
// 1-alpha percentiles in n sorted values.
func indexes(n int, alpha float64) (mid, lo, hi int) {
	clamp := func(i int) int { return min(max(i, 0), n-1) }
	mid = n / 2
	lo = clamp(int(float64(n) * alpha))
	hi = clamp(int(float64(n) * (1 - alpha)))
	return
}

// checkEvery is how many resamples run between context checks.
const checkEvery = 256

// resampleInto fills means and sds with the mean and sample standard
// deviation of len(means) resamples of xs drawn with replacement.
func resampleInto(ctx context.Context, r Source, xs, means, sds []float64) error {
	l := len(xs)
	buf := make([]float64, l)
	for i := range means {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j := range buf {
			buf[j] = xs[r.Intn(l)]
		}
		m := descstat.MeanOf(buf)
		means[i] = m
		sds[i] = descstat.SDSample(buf, m)
	}
	return nil
}
