// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff reports differences between two command outputs.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a unified diff from want to got, labeled with the given
// names, or "" if they are equal. If the diff command is missing it
// falls back to quoting both strings.
func Diff(wantName, want, gotName, got string) string {
	if want == got {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("%s:\n%s\n%s:\n%s", wantName, want, gotName, got)
	}

	dir, err := os.MkdirTemp("", "bootstat-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	if err := os.WriteFile(filepath.Join(dir, "want"), []byte(want), 0o666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(filepath.Join(dir, "got"), []byte(got), 0o666); err != nil {
		return err.Error()
	}

	cmd := exec.Command("diff", "-u", "--label", wantName, "--label", gotName, "want", "got")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	// diff exits 1 when the inputs differ.
	if len(out) == 0 && err != nil {
		return err.Error()
	}
	return string(out)
}
