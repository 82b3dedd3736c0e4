// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a comparison report as text, CSV, JSON, YAML
// or HTML.
//
// Rendering happens in two steps. Build lays out a compare.Report as a
// Document of titled sections of labeled rows, and the writers render
// that Document. All formats therefore agree on content and order.
package report

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/sfeek/bootstat/compare"
)

// A Kind says how a Row's value is displayed.
type Kind int

const (
	Number Kind = iota // Value formatted by Sci with Digits
	Count              // Value as an integer with thousands separators
	Text               // Text only
)

// A Signal marks rows that carry a test verdict.
type Signal int

const (
	Plain Signal = iota
	NoDifference
	Difference
)

func (s Signal) String() string {
	switch s {
	case NoDifference:
		return "same"
	case Difference:
		return "different"
	}
	return ""
}

// A Row is one labeled value of a report.
type Row struct {
	Label  string
	Kind   Kind
	Value  float64
	Digits int
	Text   string
	Signal Signal
}

// Display returns the row's value as it is shown to people.
func (r Row) Display() string {
	switch r.Kind {
	case Count:
		return humanize.Comma(int64(r.Value))
	case Text:
		return r.Text
	}
	return Sci(r.Value, r.Digits)
}

// A Section is a titled group of rows.
type Section struct {
	Title string `json:"title" yaml:"title"`
	Rows  []Row  `json:"rows" yaml:"rows"`
}

// A Document is a laid out report.
type Document struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
	Warnings []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Digits after the decimal point for each kind of statistic.
const (
	valueDigits   = 6
	pDigits       = 3
	changeDigits  = 1
	shapeDigits   = 3
	effectDigits  = 2
	fRatioDigits  = 4
	alphaDigits   = 4
	correlDigits  = 2
	rSquareDigits = 3
)

func (s *Section) num(label string, v float64, digits int) {
	s.Rows = append(s.Rows, Row{Label: label, Kind: Number, Value: v, Digits: digits})
}

func (s *Section) count(label string, n int) {
	s.Rows = append(s.Rows, Row{Label: label, Kind: Count, Value: float64(n)})
}

func (s *Section) text(label, text string, sig Signal) {
	s.Rows = append(s.Rows, Row{Label: label, Kind: Text, Text: text, Signal: sig})
}

// Build lays out r as a Document.
func Build(r *compare.Report) *Document {
	d := &Document{Title: "Bootstrap comparison of A and B"}
	add := func(s *Section) { d.Sections = append(d.Sections, *s) }

	cfg := r.Config
	s := &Section{Title: "Settings"}
	s.text("Paired", yesNo(cfg.Paired), Plain)
	s.text("Tail", cfg.Tail.String()+"-tailed", Plain)
	s.num("Confidence %", cfg.Confidence, valueDigits)
	s.count("Iterations", cfg.Iterations)
	if cfg.Seed != nil {
		s.text("Seed", strconv.FormatInt(*cfg.Seed, 10), Plain)
	} else {
		s.text("Seed", "random", Plain)
	}
	s.num("Alpha", r.Alpha, alphaDigits)
	add(s)

	s = &Section{Title: "Samples"}
	s.count("Count A", r.A.N)
	s.count("Count B", r.B.N)
	s.num("Min A", r.A.Min, valueDigits)
	s.num("Max A", r.A.Max, valueDigits)
	s.num("Min B", r.B.Min, valueDigits)
	s.num("Max B", r.B.Max, valueDigits)
	add(s)

	s = &Section{Title: "Mean"}
	diffRows(s, "Mean", r.Mean,
		[3]float64{r.A.MeanLo, r.A.Mean, r.A.MeanHi},
		[3]float64{r.B.MeanLo, r.B.Mean, r.B.MeanHi})
	add(s)

	s = &Section{Title: "Standard Deviation"}
	diffRows(s, "SD", r.SD,
		[3]float64{r.A.SDLo, r.A.SD, r.A.SDHi},
		[3]float64{r.B.SDLo, r.B.SD, r.B.SDHi})
	add(s)

	s = &Section{Title: "Variance"}
	s.num("Variance A", r.A.Variance, valueDigits)
	s.num("Variance B", r.B.Variance, valueDigits)
	add(s)

	s = &Section{Title: "Median"}
	s.num("Median A", r.A.Median, valueDigits)
	s.num("Median B", r.B.Median, valueDigits)
	s.num("% Change", r.MedianChange, changeDigits)
	add(s)

	s = &Section{Title: "Effect Size"}
	s.num("Cohen's d", r.CohensD, effectDigits)
	add(s)

	s = &Section{Title: "F-Test"}
	s.num("F-Test", r.FTest.Ratio, fRatioDigits)
	s.num("p-Value", r.FTest.P, fRatioDigits)
	s.sig(r.FTest.Significant)
	add(s)

	s = &Section{Title: "Standard Error"}
	s.num("SE A", r.A.SE, valueDigits)
	s.num("SE B", r.B.SE, valueDigits)
	add(s)

	s = &Section{Title: "Shape"}
	s.num("Skewness A", r.A.Skewness, shapeDigits)
	s.num("Skewness B", r.B.Skewness, shapeDigits)
	s.num("Kurtosis A", r.A.Kurtosis, shapeDigits)
	s.num("Kurtosis B", r.B.Kurtosis, shapeDigits)
	add(s)

	if c := r.Correlation; c != nil {
		s = &Section{Title: "Correlation"}
		s.num("Spearman's ρ", c.Rho, correlDigits)
		s.text("Corr", c.Class.String(), Plain)
		s.num("p-Value", c.P, pDigits)
		s.sig(c.Significant)
		s.num("R²", c.RSquared, rSquareDigits)
		add(s)
	}

	s = &Section{Title: "Classical Tests"}
	s.num(r.Classical.TTest+" p", r.Classical.TP, pDigits)
	s.num("Mann-Whitney U p", r.Classical.UP, pDigits)
	add(s)

	for _, w := range r.Warnings {
		d.Warnings = append(d.Warnings, w.Error())
	}
	return d
}

// diffRows adds the rows of an interval test of statistic stat. a and
// b hold the low, center and high values of each sample.
func diffRows(s *Section, stat string, t compare.DiffTest, a, b [3]float64) {
	s.num("CI Low A", a[0], valueDigits)
	s.num(stat+" A", a[1], valueDigits)
	s.num("CI High A", a[2], valueDigits)
	s.num("CI Low B", b[0], valueDigits)
	s.num(stat+" B", b[1], valueDigits)
	s.num("CI High B", b[2], valueDigits)
	if t.ShowLo {
		s.num("CI Low Diff", t.Lo, valueDigits)
	}
	s.num(stat+" Diff", t.Center, valueDigits)
	if t.ShowHi {
		s.num("CI High Diff", t.Hi, valueDigits)
	}
	s.num("p-Value", t.P, pDigits)
	if t.NullAccepted {
		s.text("H0", "True  "+t.Relation.String(), NoDifference)
	} else {
		s.text("H0", "False  "+t.Relation.String(), Difference)
	}
	s.num("% Change", t.PercentChange, changeDigits)
}

func (s *Section) sig(significant bool) {
	if significant {
		s.text("Sig", "Significant", Difference)
	} else {
		s.text("Sig", "Not Significant", NoDifference)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// finite returns v, or nil if v is NaN or infinite.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
