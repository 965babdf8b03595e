//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package webui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const timeline = `[
{"pid": 1, "ph": "M", "name": "process_name", "args": {"name": "allreduce.conv1_weight"}},
{"pid": 1, "ph": "B", "name": "NEGOTIATE_ALLREDUCE", "ts": 0},
{"pid": 1, "ph": "E", "ts": 1000},
{"pid": 1, "ph": "B", "name": "ALLREDUCE", "ts": 1000, "args": {"shape": "[32, 128]"}},
{"pid": 1, "ph": "E", "ts": 3000}
]`

func createConfig(t *testing.T) *Config {
	tempDir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("unable to create temporary directory")
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	cfg := Init()
	cfg.TraceFile = filepath.Join(tempDir, "profile.json")
	err = os.WriteFile(cfg.TraceFile, []byte(timeline), 0644)
	if err != nil {
		t.Fatalf("unable to write %s: %s", cfg.TraceFile, err)
	}
	err = cfg.Load()
	if err != nil {
		t.Fatalf("Load() failed: %s", err)
	}
	return cfg
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandlers(t *testing.T) {
	cfg := createConfig(t)
	h := cfg.Handler()

	tests := []struct {
		url              string
		expectedStatus   int
		expectedContents []string
	}{
		{
			url:              "/",
			expectedStatus:   http.StatusOK,
			expectedContents: []string{"allreduce.conv1_weight", "/layer?pid=1", "3.000", "5 events"},
		},
		{
			url:              "/layer?pid=1",
			expectedStatus:   http.StatusOK,
			expectedContents: []string{"size: 4,096 elements, shape: [32, 128]", "NEGOTIATE_ALLREDUCE/ALLREDUCE"},
		},
		{
			url:              "/report",
			expectedStatus:   http.StatusOK,
			expectedContents: []string{"<table>", "Top 1 data layers by total time:"},
		},
		{
			url:            "/layer?pid=42",
			expectedStatus: http.StatusNotFound,
		},
		{
			url:            "/layer",
			expectedStatus: http.StatusBadRequest,
		},
		{
			url:            "/unknown",
			expectedStatus: http.StatusNotFound,
		},
		{
			url:              "/stop",
			expectedStatus:   http.StatusOK,
			expectedContents: []string{"terminated"},
		},
	}

	for _, tt := range tests {
		w := get(t, h, tt.url)
		if w.Code != tt.expectedStatus {
			t.Fatalf("GET %s returned %d instead of %d", tt.url, w.Code, tt.expectedStatus)
		}
		body := w.Body.String()
		for _, c := range tt.expectedContents {
			if !strings.Contains(body, c) {
				t.Fatalf("GET %s does not contain %q:\n%s", tt.url, c, body)
			}
		}
	}
}

func TestLoadMissingTrace(t *testing.T) {
	cfg := Init()
	cfg.TraceFile = filepath.Join(os.TempDir(), "does", "not", "exist.json")
	if err := cfg.Load(); err == nil {
		t.Fatalf("Load() succeeded with a missing trace")
	}
}

func TestRemoteStop(t *testing.T) {
	cfg := createConfig(t)
	srv := httptest.NewServer(cfg.Handler())

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("unable to parse %s: %s", srv.URL, err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("invalid port in %s: %s", srv.URL, err)
	}

	err = RemoteStop(u.Hostname(), port)
	if err != nil {
		t.Fatalf("RemoteStop() failed: %s", err)
	}

	srv.Close()
	err = RemoteStop(u.Hostname(), port)
	if err == nil {
		t.Fatalf("RemoteStop() succeeded without a running web UI")
	}
}
