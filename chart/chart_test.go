// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfeek/bootstat/bootstrap"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestHistogram(t *testing.T) {
	var buf bytes.Buffer
	err := Histogram(&buf, "t", "x", []Series{
		{"A", []float64{1, 2, 2, 3, 3, 3, 4, math.NaN()}},
		{"B", []float64{5, 5, 5}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestHistogramNothing(t *testing.T) {
	var buf bytes.Buffer
	err := Histogram(&buf, "t", "x", []Series{
		{"A", nil},
		{"B", []float64{2, 2}},
		{"C", []float64{math.Inf(1), math.NaN()}},
	})
	assert.ErrorIs(t, err, ErrNothingToPlot)
	assert.Zero(t, buf.Len())
}

func comparison(t *testing.T, paired bool) bootstrap.Comparison {
	t.Helper()
	e := &bootstrap.Engine{
		Iterations: 2000,
		Alpha:      0.05,
		Workers:    2,
		Keep:       true,
		NewSource:  bootstrap.Seeded(1),
	}
	a := []float64{1, 3, 4, 7, 9, 10}
	b := []float64{2, 5, 5, 8, 11, 14}
	var (
		c   bootstrap.Comparison
		err error
	)
	if paired {
		c, err = e.Paired(context.Background(), a, b)
	} else {
		c, err = e.Unpaired(context.Background(), a, b)
	}
	require.NoError(t, err)
	return c
}

func TestWriteDir(t *testing.T) {
	for _, paired := range []bool{false, true} {
		dir := filepath.Join(t.TempDir(), "charts")
		files, err := WriteDir(dir, comparison(t, paired))
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "means.png"),
			filepath.Join(dir, "sds.png"),
		}, files)
		for _, f := range files {
			data, err := os.ReadFile(f)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, pngMagic), "%s", f)
		}
	}
}

func TestWriteDirWithoutResamples(t *testing.T) {
	dir := t.TempDir()
	files, err := WriteDir(dir, bootstrap.Comparison{})
	require.NoError(t, err)
	assert.Empty(t, files)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed charts must not leave files behind")
}
