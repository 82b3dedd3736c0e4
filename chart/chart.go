// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws histograms of bootstrap distributions.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sfeek/bootstat/bootstrap"
)

// Bins is the number of histogram bins.
const Bins = 50

const (
	width  = 16 * vg.Centimeter
	height = 10 * vg.Centimeter
	dpi    = 96
)

var palette = []color.Color{
	color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x90},
	color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0x90},
	color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0x90},
}

// ErrNothingToPlot is returned when no series has values to draw.
var ErrNothingToPlot = errors.New("no distribution with spread to plot")

// A Series is one named distribution.
type Series struct {
	Name   string
	Values []float64
}

// Histogram draws the series as overlaid, normalized histograms and
// writes the chart to w as a PNG.
//
// Non-finite values are ignored. A series with no spread is left out,
// and if no series remains Histogram returns ErrNothingToPlot.
func Histogram(w io.Writer, title, xlabel string, series []Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "density"
	p.Legend.Top = true

	n := 0
	for _, s := range series {
		vs := finiteValues(s.Values)
		if len(vs) == 0 || !spread(vs) {
			continue
		}
		h, err := plotter.NewHist(vs, Bins)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		h.Normalize(1)
		h.FillColor = palette[n%len(palette)]
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(s.Name, h)
		n++
	}
	if n == 0 {
		return ErrNothingToPlot
	}

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	p.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

// WriteDir draws the retained bootstrap distributions of c into dir,
// creating it if needed. It writes means.png and sds.png and returns
// the paths written. Distributions that were not retained, such as the
// composed difference of unpaired samples, are left out.
func WriteDir(dir string, c bootstrap.Comparison) ([]string, error) {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, err
	}

	var written []string
	for _, ch := range []struct {
		file, title, xlabel string
		pick                func(bootstrap.Result) []float64
	}{
		{"means.png", "Bootstrap distribution of the mean", "mean", func(r bootstrap.Result) []float64 { return r.Means }},
		{"sds.png", "Bootstrap distribution of the standard deviation", "standard deviation", func(r bootstrap.Result) []float64 { return r.SDs }},
	} {
		series := []Series{{"A", ch.pick(c.A)}, {"B", ch.pick(c.B)}}
		if c.Paired {
			series = append(series, Series{"B−A", ch.pick(c.Diff)})
		}

		path := filepath.Join(dir, ch.file)
		if err := writeFile(path, ch.title, ch.xlabel, series); err != nil {
			if errors.Is(err, ErrNothingToPlot) {
				continue
			}
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path, title, xlabel string, series []Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return Histogram(f, title, xlabel, series)
}

func finiteValues(xs []float64) plotter.Values {
	vs := make(plotter.Values, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			vs = append(vs, x)
		}
	}
	return vs
}

func spread(vs plotter.Values) bool {
	for _, v := range vs[1:] {
		if v != vs[0] {
			return true
		}
	}
	return false
}
