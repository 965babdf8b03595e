//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

// Package trace loads the Chrome-tracing-style timeline produced by the
// communication library.
package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/XiaotaoChen/hvdProfileParser/pkg/errors"
)

// Phase is the "ph" field of an event
type Phase string

const (
	// PhaseBegin marks the start of an interval
	PhaseBegin Phase = "B"

	// PhaseEnd marks the end of the most recent pending interval of a process
	PhaseEnd Phase = "E"

	// PhaseMetadata marks a metadata event, e.g., process_name
	PhaseMetadata Phase = "M"

	// ProcessNameEvent is the name of the metadata event carrying the name of a process
	ProcessNameEvent = "process_name"

	// DefaultFile is the name of the timeline file used when none is specified
	DefaultFile = "profile.json"
)

// ProcessID identifies a process (a data layer) in the trace. Timelines use
// numbers but strings are accepted as well.
type ProcessID string

// UnmarshalJSON accepts both JSON numbers and JSON strings
func (p *ProcessID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ProcessID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid pid %s: %w", string(data), err)
	}
	*p = ProcessID(n.String())
	return nil
}

// Event is a single entry of the timeline
type Event struct {
	// Timestamp is in microseconds and may be fractional
	Timestamp float64                `json:"ts"`
	Phase     Phase                  `json:"ph"`
	PID       ProcessID              `json:"pid"`
	Name      string                 `json:"name"`
	Args      map[string]interface{} `json:"args,omitempty"`

	// HasTimestamp is set when the event carries a ts field
	HasTimestamp bool `json:"-"`
}

// UnmarshalJSON decodes an event and records whether its timestamp was present
func (e *Event) UnmarshalJSON(data []byte) error {
	type plainEvent Event
	aux := struct {
		*plainEvent
		Timestamp *float64 `json:"ts"`
	}{plainEvent: (*plainEvent)(e)}
	err := json.Unmarshal(data, &aux)
	if err != nil {
		return err
	}
	e.HasTimestamp = aux.Timestamp != nil
	if e.HasTimestamp {
		e.Timestamp = *aux.Timestamp
	}
	return nil
}

// StringArg returns the value of a string argument of the event, if any
func (e *Event) StringArg(key string) (string, bool) {
	if e.Args == nil {
		return "", false
	}
	v, ok := e.Args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Load reads the entire timeline, which must be a single JSON array of events
func Load(r io.Reader) ([]Event, error) {
	var events []Event
	dec := json.NewDecoder(bufio.NewReader(r))
	err := dec.Decode(&events)
	if err != nil {
		return nil, errors.New(errors.ErrInvalidInput, err)
	}
	for i := range events {
		err = validate(i, &events[i])
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// LoadFile reads the timeline stored in a file
func LoadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.ErrInvalidInput, err)
	}
	defer f.Close()
	return Load(f)
}

func validate(idx int, e *Event) error {
	if e.PID == "" {
		return errors.Newf(errors.ErrInvalidInput, "event #%d has no pid", idx)
	}
	if e.Phase == "" {
		return errors.Newf(errors.ErrInvalidInput, "event #%d (pid %s) has no phase", idx, e.PID)
	}
	if (e.Phase == PhaseBegin || e.Phase == PhaseEnd) && !e.HasTimestamp {
		return errors.Newf(errors.ErrInvalidInput, "event #%d (%s, pid %s) has no timestamp", idx, e.Phase, e.PID)
	}
	if e.Phase == PhaseMetadata && e.Name == ProcessNameEvent {
		if _, ok := e.StringArg("name"); !ok {
			return errors.Newf(errors.ErrInvalidInput, "event #%d: %s metadata for pid %s without args.name", idx, ProcessNameEvent, e.PID)
		}
	}
	return nil
}

// String returns a short human readable representation of the event, mainly for logs
func (e *Event) String() string {
	return e.Name + "@" + strconv.FormatFloat(e.Timestamp, 'f', -1, 64) + "[" + string(e.Phase) + ", pid " + string(e.PID) + "]"
}
