// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package descstat computes descriptive statistics over raw samples:
// moments, order statistics, shape measures and ranks.
//
// Functions in this package never modify their input. Routines that
// need sorted data sort a copy, ordering NaN after every other value
// (including +Inf).
package descstat

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
)

var (
	// ErrEmptyInput is returned when a statistic is requested over
	// an empty sequence.
	ErrEmptyInput = errors.New("empty input")

	// ErrInsufficientSampleSize is returned when a sample is too
	// small for the requested estimator.
	ErrInsufficientSampleSize = errors.New("insufficient sample size")
)

// Compare orders a and b ascending, treating NaN as greater than any
// other value. Two NaNs compare equal.
func Compare(a, b float64) int {
	switch {
	case math.IsNaN(a):
		if math.IsNaN(b) {
			return 0
		}
		return 1
	case math.IsNaN(b):
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sort sorts xs in place using Compare.
func Sort(xs []float64) {
	slices.SortFunc(xs, Compare)
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	return mean(xs), nil
}

// mean is Mean without the emptiness check, for hot loops that
// already guarantee len(xs) > 0.
func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// MeanOf is Mean for callers that have already checked that xs is
// non-empty. It returns NaN for an empty slice.
func MeanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return mean(xs)
}

func sumSquares(xs []float64, mean float64) float64 {
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss
}

// SDSample returns the sample standard deviation of xs around mean,
// sqrt(Σ(x-mean)²/(n-1)). For n == 1 the result is NaN or +Inf;
// callers must guard.
func SDSample(xs []float64, mean float64) float64 {
	return math.Sqrt(sumSquares(xs, mean) / float64(len(xs)-1))
}

// SDPopulation returns the population standard deviation of xs
// around mean, sqrt(Σ(x-mean)²/n).
func SDPopulation(xs []float64, mean float64) float64 {
	return math.Sqrt(sumSquares(xs, mean) / float64(len(xs)))
}

// Median returns the element at index ⌊n/2⌋ of the sorted sample.
// For even n this is the upper of the two middle elements; the
// midpoints are not averaged.
func Median(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	s := slices.Clone(xs)
	Sort(s)
	return s[len(s)/2], nil
}

// Skewness returns the bias-adjusted sample skewness
//
//	n/((n-1)(n-2)) · Σ((x-mean)/sd)³
//
// It requires at least 3 observations.
func Skewness(xs []float64, mean, sd float64) (float64, error) {
	n := float64(len(xs))
	if len(xs) < 3 {
		return math.NaN(), fmt.Errorf("skewness needs >= 3 values, have %d: %w", len(xs), ErrInsufficientSampleSize)
	}
	sd3 := sd * sd * sd
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d * d / sd3
	}
	return n / ((n - 1) * (n - 2)) * sum, nil
}

// Kurtosis returns the bias-adjusted sample excess kurtosis
//
//	n(n+1)/((n-1)(n-2)(n-3)) · Σ((x-mean)/sd)⁴ − 3(n-1)²/((n-2)(n-3))
//
// It requires at least 4 observations.
func Kurtosis(xs []float64, mean, sd float64) (float64, error) {
	n := float64(len(xs))
	if len(xs) < 4 {
		return math.NaN(), fmt.Errorf("kurtosis needs >= 4 values, have %d: %w", len(xs), ErrInsufficientSampleSize)
	}
	sd4 := sd * sd * sd * sd
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d * d * d / sd4
	}
	return n*(n+1)/((n-1)*(n-2)*(n-3))*sum -
		3*(n-1)*(n-1)/((n-2)*(n-3)), nil
}

// PercentChange returns the change from "from" to "to" as a
// percentage of |from|. A zero "from" yields +Inf or -Inf following
// the sign of "to", and NaN when both are zero.
func PercentChange(from, to float64) float64 {
	return (to - from) / math.Abs(from) * 100
}

// Rank assigns each element its mid-rank within xs: one plus the
// number of strictly smaller elements, plus half of the number of
// other elements tied with it. Values within machine epsilon of each
// other are ties.
func Rank(xs []float64) []float64 {
	ranks := make([]float64, len(xs))
	for i, x := range xs {
		smaller, ties := 0, 0
		for _, y := range xs {
			if y < x {
				smaller++
			}
			if math.Abs(y-x) < epsilon {
				ties++
			}
		}
		ranks[i] = float64(smaller) + 1 + 0.5*float64(ties-1)
	}
	return ranks
}

// epsilon is the difference between 1 and the next float64.
const epsilon = 0x1p-52

// Pearson returns the Pearson product-moment correlation of x and y,
// which must have the same length.
func Pearson(x, y []float64) float64 {
	mx, my := MeanOf(x), MeanOf(y)
	var sxx, syy, sxy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	return sxy / math.Sqrt(sxx*syy)
}

// Spearman returns Spearman's rank correlation of x and y: the
// Pearson correlation of their mid-ranks.
func Spearman(x, y []float64) float64 {
	return Pearson(Rank(x), Rank(y))
}

// RSquared returns the coefficient of determination of x and y,
// computed from raw sums rather than from deviations:
//
//	r = (nΣxy − ΣxΣy) / sqrt((nΣx² − (Σx)²)(nΣy² − (Σy)²))
func RSquared(x, y []float64) float64 {
	var sx, sy, sxx, syy, sxy float64
	n := float64(len(x))
	for i := range x {
		sx += x[i]
		sy += y[i]
		sxx += x[i] * x[i]
		syy += y[i] * y[i]
		sxy += x[i] * y[i]
	}
	r := (n*sxy - sx*sy) / math.Sqrt((n*sxx-sx*sx)*(n*syy-sy*sy))
	return r * r
}

// Bounds returns the minimum and maximum of xs.
func Bounds(xs []float64) (min, max float64, err error) {
	if len(xs) == 0 {
		return 0, 0, ErrEmptyInput
	}
	min, max = stats.Bounds(xs)
	return min, max, nil
}
