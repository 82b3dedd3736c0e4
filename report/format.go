// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"
	"strconv"
)

// Sci formats v for display with the given number of digits after
// the decimal point.
//
// Values with magnitude of at least 10000 or less than 0.001 use
// scientific notation. Other values use fixed notation with trailing
// zeros and a trailing decimal point removed. Zero is "0".
func Sci(v float64, digits int) string {
	return string(AppendSci(nil, v, digits))
}

// AppendSci is like Sci, but appends to buf.
func AppendSci(buf []byte, v float64, digits int) []byte {
	switch {
	case math.IsNaN(v):
		return append(buf, "NaN"...)
	case math.IsInf(v, 1):
		return append(buf, "+Inf"...)
	case math.IsInf(v, -1):
		return append(buf, "-Inf"...)
	case v == 0:
		return append(buf, '0')
	}

	if a := math.Abs(v); a >= 10000 || a < 0.001 {
		return strconv.AppendFloat(buf, v, 'e', digits, 64)
	}

	start := len(buf)
	buf = strconv.AppendFloat(buf, v, 'f', digits, 64)
	if digits <= 0 {
		return buf
	}
	end := len(buf)
	for end > start && buf[end-1] == '0' {
		end--
	}
	if end > start && buf[end-1] == '.' {
		end--
	}
	return buf[:end]
}
