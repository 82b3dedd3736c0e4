// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sfeek/bootstat/compare"
	"github.com/sfeek/bootstat/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	seed := int64(1)
	defaults := compare.DefaultConfig()
	defaults.Iterations = 2000
	defaults.Seed = &seed
	return New(config.Server{MaxBodyBytes: 1 << 16}, defaults, zap.NewNop())
}

func post(t *testing.T, s *Server, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

type document struct {
	Title    string `json:"title"`
	Sections []struct {
		Title string `json:"title"`
		Rows  []struct {
			Label   string   `json:"label"`
			Value   *float64 `json:"value"`
			Display string   `json:"display"`
		} `json:"rows"`
	} `json:"sections"`
	Warnings []string `json:"warnings"`
}

func (d *document) value(t *testing.T, section, label string) string {
	t.Helper()
	for _, s := range d.Sections {
		if s.Title != section {
			continue
		}
		for _, r := range s.Rows {
			if r.Label == label {
				return r.Display
			}
		}
	}
	t.Fatalf("no row %s/%s", section, label)
	return ""
}

func TestCompareJSON(t *testing.T) {
	s := newTestServer()
	w := post(t, s, `{"a":[1,2,3,4,5],"b":[2,3,4,5,6]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var d document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "Bootstrap comparison of A and B", d.Title)
	assert.Equal(t, "no", d.value(t, "Settings", "Paired"))
	assert.Equal(t, "2,000", d.value(t, "Settings", "Iterations"))
	assert.Equal(t, "5", d.value(t, "Samples", "Count A"))

	// The same seed gives the same report.
	w2 := post(t, s, `{"a":[1,2,3,4,5],"b":[2,3,4,5,6]}`)
	assert.Equal(t, w.Body.String(), w2.Body.String())
}

func TestCompareText(t *testing.T) {
	s := newTestServer()
	body, err := json.Marshal(CompareRequest{
		TextA:  "1, 2, 3\n4 5",
		TextB:  "2,3,4\n5,6",
		Paired: new(bool),
		Tail:   "one",
		Format: "text",
	})
	require.NoError(t, err)
	w := post(t, s, string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "one-tailed")
	// "4 5" loses its space and parses as 45.
	assert.Regexp(t, `(?m)^  Max A +45$`, w.Body.String())
}

func TestComparePaired(t *testing.T) {
	s := newTestServer()
	w := post(t, s, `{"a":[1,2,3,4,5],"b":[1,2,3,4,5],"paired":true,"format":"csv"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Correlation,Corr,Perfect Pos")
	assert.Contains(t, w.Body.String(), "Mean,H0,True  A ≈ B")
}

func TestCompareErrors(t *testing.T) {
	s := newTestServer()
	for _, tc := range []struct {
		name, body string
		code       int
	}{
		{"malformed", `{"a":`, http.StatusBadRequest},
		{"empty sample", `{"a":[1,2],"b":[]}`, http.StatusBadRequest},
		{"paired mismatch", `{"a":[1,2],"b":[1],"paired":true}`, http.StatusBadRequest},
		{"tail", `{"a":[1],"b":[2],"tail":"three"}`, http.StatusBadRequest},
		{"confidence", `{"a":[1],"b":[2],"confidence":120}`, http.StatusBadRequest},
		{"iterations", `{"a":[1],"b":[2],"iterations":1500}`, http.StatusBadRequest},
		{"format", `{"a":[1],"b":[2],"format":"xml"}`, http.StatusBadRequest},
		{"too big", `{"a":[` + strings.Repeat("1,", 1<<16) + `1],"b":[1]}`, http.StatusRequestEntityTooLarge},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := post(t, s, tc.body, RequestIDHeader, "req-1")
			assert.Equal(t, tc.code, w.Code, w.Body.String())
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, "req-1", resp.RequestID)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer()
	post(t, s, `{"a":[1,2,3],"b":[4,5,6]}`)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `bootstat_http_requests_total{code="200",route="/v1/compare"} 1`)
	assert.Contains(t, out, `bootstat_comparisons_total{paired="false",result="ok"} 1`)
	assert.Contains(t, out, "bootstat_resamples_total 4000")
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("go_goroutines")))
}
