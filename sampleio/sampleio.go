// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sampleio reads numeric samples from free-form text.
//
// Values are separated by commas or newlines. All other whitespace is
// ignored, even inside a number, so "1 000" reads as 1000. Tokens that
// do not parse as finite floating-point numbers are dropped silently.
package sampleio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Parse returns the values in text.
func Parse(text string) []float64 {
	return appendValues(nil, strings.ReplaceAll(text, "\n", ","))
}

func appendValues(xs []float64, line string) []float64 {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	for _, f := range strings.Split(clean, ",") {
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, v)
	}
	return xs
}

// Read returns the values read from r.
func Read(r io.Reader) ([]float64, error) {
	var xs []float64
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for s.Scan() {
		xs = appendValues(xs, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return xs, nil
}

// ReadFile returns the values in the named file. The path "-" reads
// standard input.
func ReadFile(path string) ([]float64, error) {
	if path == "-" {
		xs, err := Read(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return xs, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	xs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return xs, nil
}
