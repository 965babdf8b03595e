//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/XiaotaoChen/hvdProfileParser/pkg/errors"
	"github.com/google/go-cmp/cmp"
)

const sampleTimeline = `[
{"name": "process_name", "ph": "M", "pid": 1, "args": {"name": "allreduce.conv1_weight_0"}},
{"name": "ALLREDUCE", "ph": "B", "pid": 1, "ts": 10, "args": {"shape": "[4, 4]"}},
{"name": "ALLREDUCE", "ph": "E", "pid": "1", "ts": 110}
]`

func TestLoad(t *testing.T) {
	events, err := Load(strings.NewReader(sampleTimeline))
	if err != nil {
		t.Fatalf("Load() failed: %s", err)
	}

	expected := []ProcessID{"1", "1", "1"}
	var pids []ProcessID
	for _, e := range events {
		pids = append(pids, e.PID)
	}
	if diff := cmp.Diff(expected, pids); diff != "" {
		t.Fatalf("Load() returned unexpected pids (-want +got):\n%s", diff)
	}

	if events[1].Phase != PhaseBegin || events[2].Phase != PhaseEnd || events[0].Phase != PhaseMetadata {
		t.Fatalf("Load() returned unexpected phases")
	}
	if events[2].Timestamp-events[1].Timestamp != 100 {
		t.Fatalf("unexpected timestamps: %v and %v", events[1].Timestamp, events[2].Timestamp)
	}
	if events[0].HasTimestamp || !events[1].HasTimestamp || !events[2].HasTimestamp {
		t.Fatalf("Load() did not track the presence of timestamps")
	}
	shape, ok := events[1].StringArg("shape")
	if !ok || shape != "[4, 4]" {
		t.Fatalf("StringArg() returned %q, %v", shape, ok)
	}
	if _, ok := events[2].StringArg("shape"); ok {
		t.Fatalf("StringArg() found a shape on an event without arguments")
	}
}

func TestLoadFractionalTimestamps(t *testing.T) {
	input := `[
{"name": "ALLREDUCE", "ph": "B", "pid": 1, "ts": 0.5},
{"name": "ALLREDUCE", "ph": "E", "pid": 1, "ts": 2.25}
]`
	events, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() failed: %s", err)
	}
	if events[0].Timestamp != 0.5 || events[1].Timestamp != 2.25 {
		t.Fatalf("unexpected timestamps: %v and %v", events[0].Timestamp, events[1].Timestamp)
	}
	if events[0].String() != "ALLREDUCE@0.5[B, pid 1]" {
		t.Fatalf("String() returned %s", events[0].String())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		input string
	}{
		{input: `{"name": "not an array"}`},
		{input: `[{"name": "ALLREDUCE", "ph": "B", "ts": 0}]`},
		{input: `[{"name": "ALLREDUCE", "pid": 1, "ts": 0}]`},
		{input: `[{"name": "process_name", "ph": "M", "pid": 1, "args": {}}]`},
		{input: `[{"name": "ALLREDUCE", "ph": "B", "pid": true, "ts": 0}]`},
		{input: `[{"name": "ALLREDUCE", "ph": "B", "pid": 1, "ts": 100}, {"name": "ALLREDUCE", "ph": "E", "pid": 1}]`},
		{input: `[{"name": "ALLREDUCE", "ph": "B", "pid": 1}]`},
		{input: `[{"name": "ALLREDUCE", "ph": "B", "pid": 1, "ts": "late"}]`},
	}

	for _, tt := range tests {
		_, err := Load(strings.NewReader(tt.input))
		if err == nil {
			t.Fatalf("Load() succeeded on %s", tt.input)
		}
		if !errors.Has(err, errors.ErrInvalidInput) {
			t.Fatalf("Load() returned %s instead of an invalid input error", err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("unable to create temporary directory")
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, DefaultFile)
	err = os.WriteFile(path, []byte(sampleTimeline), 0644)
	if err != nil {
		t.Fatalf("unable to write %s: %s", path, err)
	}

	events, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %s", err)
	}
	if len(events) != 3 {
		t.Fatalf("LoadFile() returned %d events instead of 3", len(events))
	}

	_, err = LoadFile(filepath.Join(tempDir, "missing.json"))
	if !errors.Has(err, errors.ErrInvalidInput) {
		t.Fatalf("LoadFile() on a missing file returned %v", err)
	}
}
