// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/sfeek/bootstat/report/internal/texttab"
)

// A Format is an output format.
type Format int

const (
	FormatText Format = iota
	FormatCSV
	FormatJSON
	FormatYAML
	FormatHTML
)

var formatNames = map[Format]string{
	FormatText: "text",
	FormatCSV:  "csv",
	FormatJSON: "json",
	FormatYAML: "yaml",
	FormatHTML: "html",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	if s == "yml" {
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown format %q (want text, csv, json, yaml or html)", s)
}

// Options control rendering.
type Options struct {
	// Color enables terminal colors in text output.
	Color bool
}

// Write renders d to w in format f.
func Write(w io.Writer, d *Document, f Format, opts Options) error {
	switch f {
	case FormatText:
		return WriteText(w, d, opts)
	case FormatCSV:
		return WriteCSV(w, d)
	case FormatJSON:
		return WriteJSON(w, d)
	case FormatYAML:
		return WriteYAML(w, d)
	case FormatHTML:
		return WriteHTML(w, d)
	}
	return fmt.Errorf("unknown format %v", f)
}

// WriteText renders d as aligned text, one section per block.
func WriteText(w io.Writer, d *Document, opts Options) error {
	styles := map[Signal]func(string) string{}
	title := func(s string) string { return s }
	if opts.Color {
		styles[NoDifference] = sprint(color.New(color.FgGreen))
		styles[Difference] = sprint(color.New(color.FgYellow, color.Bold))
		title = sprint(color.New(color.Bold))
	}

	var tab texttab.Table
	tab.Row().Span(2, d.Title, texttab.Style(title))
	for _, s := range d.Sections {
		tab.Row()
		tab.Row().Span(2, s.Title, texttab.Style(title))
		for _, r := range s.Rows {
			tab.Row().Cell("  "+r.Label).Cell(r.Display(), texttab.LeftMargin("   "), texttab.Style(styles[r.Signal]))
		}
	}
	if err := tab.Format(w); err != nil {
		return err
	}

	if len(d.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", title("Warnings")); err != nil {
			return err
		}
		for _, msg := range d.Warnings {
			if _, err := fmt.Fprintf(w, "  %s\n", msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// sprint returns c's Sprint with color forced on, regardless of
// whether the process writes to a terminal.
func sprint(c *color.Color) func(string) string {
	c.EnableColor()
	return func(s string) string { return c.Sprint(s) }
}

// WriteCSV renders d as CSV with the columns section, label and value.
// Warnings follow as rows of the section "warning".
func WriteCSV(w io.Writer, d *Document) error {
	o := csv.NewWriter(w)
	o.Write([]string{"section", "label", "value"})
	for _, s := range d.Sections {
		for _, r := range s.Rows {
			o.Write([]string{s.Title, r.Label, r.Display()})
		}
	}
	for _, msg := range d.Warnings {
		o.Write([]string{"warning", "", msg})
	}
	o.Flush()
	return o.Error()
}

// wireRow is the machine-readable form of a Row. Value is omitted for
// text rows and null for values that are not finite.
type wireRow struct {
	Label   string   `json:"label" yaml:"label"`
	Value   *float64 `json:"value" yaml:"value"`
	Display string   `json:"display" yaml:"display"`
	Signal  string   `json:"signal,omitempty" yaml:"signal,omitempty"`
}

func (r Row) wire() wireRow {
	wr := wireRow{Label: r.Label, Display: r.Display(), Signal: r.Signal.String()}
	if r.Kind != Text {
		wr.Value = finite(r.Value)
	}
	return wr
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r Row) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// WriteJSON renders d as indented JSON.
func WriteJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteYAML renders d as YAML.
func WriteYAML(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
