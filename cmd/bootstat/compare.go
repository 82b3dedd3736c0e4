// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sfeek/bootstat/chart"
	"github.com/sfeek/bootstat/compare"
	"github.com/sfeek/bootstat/internal/config"
	"github.com/sfeek/bootstat/report"
	"github.com/sfeek/bootstat/sampleio"
)

type compareFlags struct {
	a, b       string
	paired     bool
	tail       string
	confidence float64
	iterations int
	seed       int64
	workers    int
	format     string
	chartDir   string
	color      string
}

func newCompareCmd(a *app) *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare [flags] [a.txt b.txt]",
		Short: "Compare sample A with sample B",
		Long: `Compare bootstraps the mean and standard deviation of samples A and B
and tests their difference. Samples are read from the two named files
("-" is standard input) or given inline with -a and -b.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(cmd, &f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.a, "a", "a", "", "sample A as comma-separated `values`")
	fl.StringVarP(&f.b, "b", "b", "", "sample B as comma-separated `values`")
	fl.BoolVarP(&f.paired, "paired", "p", false, "treat a[i] and b[i] as pairs")
	fl.StringVar(&f.tail, "tail", config.DefaultTail, "`one` or two tailed tests")
	fl.Float64VarP(&f.confidence, "confidence", "c", config.DefaultConfidence, "confidence level in `percent`")
	fl.IntVarP(&f.iterations, "iterations", "k", config.DefaultIterations, "bootstrap resamples in `thousands`")
	fl.Int64Var(&f.seed, "seed", 0, "seed the random source for reproducible results")
	fl.IntVar(&f.workers, "workers", 0, "goroutines resampling each sample (0 or 1 is sequential)")
	fl.StringVarP(&f.format, "format", "f", config.DefaultFormat, "output `format`: text, csv, json, yaml or html")
	fl.StringVar(&f.chartDir, "chart-dir", "", "write histograms of the bootstrap distributions to `dir`")
	fl.StringVar(&f.color, "color", "auto", "color text output: auto, always or never")
	return cmd
}

// settings overlays the flags the user set on the configured defaults.
func (f *compareFlags) settings(fl interface{ Changed(string) bool }, d config.Defaults) (compare.Config, report.Format, error) {
	if fl.Changed("paired") {
		d.Paired = f.paired
	}
	if fl.Changed("tail") {
		d.Tail = f.tail
	}
	if fl.Changed("confidence") {
		d.Confidence = f.confidence
	}
	if fl.Changed("iterations") {
		d.Iterations = f.iterations
	}
	if fl.Changed("seed") {
		d.Seed = &f.seed
	}
	if fl.Changed("workers") {
		d.Workers = f.workers
	}
	if fl.Changed("format") {
		d.Format = f.format
	}

	cfg, err := d.Compare()
	if err != nil {
		return cfg, 0, err
	}
	format, err := d.OutputFormat()
	if err != nil {
		return cfg, 0, err
	}
	cfg.KeepResamples = f.chartDir != ""
	return cfg, format, nil
}

func (f *compareFlags) useColor(w io.Writer) (bool, error) {
	switch f.color {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		// color.NoColor reflects whether standard output is a terminal.
		return !color.NoColor && w == color.Output, nil
	}
	return false, fmt.Errorf("--color must be auto, always or never, not %q", f.color)
}

// samples returns A and B from the inline flags or the named files.
func (f *compareFlags) samples(stdin io.Reader, args []string) (a, b []float64, err error) {
	inline := f.a != "" || f.b != ""
	switch {
	case inline && len(args) > 0:
		return nil, nil, errors.New("give samples either inline with -a and -b or as files, not both")
	case inline:
		if f.a == "" || f.b == "" {
			return nil, nil, errors.New("-a and -b must both be set")
		}
		return sampleio.Parse(f.a), sampleio.Parse(f.b), nil
	case len(args) != 2:
		return nil, nil, errors.New("need two sample files, or -a and -b")
	case args[0] == "-" && args[1] == "-":
		return nil, nil, errors.New("only one sample can be read from standard input")
	}

	read := func(path string) ([]float64, error) {
		if path == "-" {
			return sampleio.Read(stdin)
		}
		return sampleio.ReadFile(path)
	}
	if a, err = read(args[0]); err != nil {
		return nil, nil, err
	}
	if b, err = read(args[1]); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (a *app) compare(cmd *cobra.Command, f *compareFlags, args []string) error {
	cfg, format, err := f.settings(cmd.Flags(), a.cfg.Defaults)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	useColor, err := f.useColor(out)
	if err != nil {
		return err
	}
	xa, xb, err := f.samples(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	a.log.Debug("comparing",
		zap.Int("n_a", len(xa)), zap.Int("n_b", len(xb)),
		zap.Bool("paired", cfg.Paired), zap.Stringer("tail", cfg.Tail),
		zap.Int("iterations", cfg.Iterations))

	r, err := compare.Run(cmd.Context(), xa, xb, cfg)
	if err != nil {
		return err
	}
	for _, w := range r.Warnings {
		a.log.Debug("report warning", zap.Error(w))
	}

	if err := report.Write(out, report.Build(r), format, report.Options{Color: useColor}); err != nil {
		return err
	}

	if f.chartDir != "" {
		files, err := chart.WriteDir(f.chartDir, r.Bootstrap)
		if err != nil {
			return fmt.Errorf("writing charts: %w", err)
		}
		if len(files) == 0 {
			a.log.Warn("no bootstrap distribution has spread; no charts written")
		}
		a.log.Info("wrote charts", zap.String("files", strings.Join(files, ", ")))
	}
	return nil
}
