//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package interval

import (
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/trace"
	"github.com/XiaotaoChen/hvdProfileParser/pkg/errors"
)

// Begin is the part of a begin event we keep while the interval is pending
type Begin struct {
	Name      string
	Timestamp float64
	Shape     string
	HasShape  bool
}

// Interval is a closed begin/end pair
type Interval struct {
	Name string

	// Duration is in the unit of the timeline timestamps, i.e., microseconds
	Duration float64

	Shape    string
	HasShape bool
}

// Stack is the stack of pending begin events of a single process
type Stack struct {
	pending []Begin
}

// Push records a begin event
func (s *Stack) Push(e *trace.Event) {
	b := Begin{
		Name:      e.Name,
		Timestamp: e.Timestamp,
	}
	b.Shape, b.HasShape = e.StringArg("shape")
	s.pending = append(s.pending, b)
}

// Pop closes the most recent pending interval with an end event. The name of the end event
// is not checked, the name of the interval is the one of the begin event.
func (s *Stack) Pop(e *trace.Event) (Interval, error) {
	if len(s.pending) == 0 {
		return Interval{}, errors.Newf(errors.ErrMalformedTrace, "end event %s without pending begin event", e.String())
	}
	b := s.pending[len(s.pending)-1]
	s.pending = s.pending[:len(s.pending)-1]
	return Interval{
		Name:     b.Name,
		Duration: e.Timestamp - b.Timestamp,
		Shape:    b.Shape,
		HasShape: b.HasShape,
	}, nil
}

// Len returns the number of pending intervals
func (s *Stack) Len() int {
	return len(s.pending)
}

// Reconstruct pairs all the begin/end events of a process and returns the closed
// intervals in the order they are closed
func Reconstruct(events []trace.Event, pid trace.ProcessID) ([]Interval, error) {
	var s Stack
	var intervals []Interval
	for i := range events {
		e := &events[i]
		if e.PID != pid {
			continue
		}
		switch e.Phase {
		case trace.PhaseBegin:
			s.Push(e)
		case trace.PhaseEnd:
			in, err := s.Pop(e)
			if err != nil {
				return nil, err
			}
			intervals = append(intervals, in)
		}
	}
	return intervals, nil
}
