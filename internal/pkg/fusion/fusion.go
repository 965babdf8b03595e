//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

// Package fusion tracks whether a process is currently working out of the fusion buffer.
package fusion

import "github.com/XiaotaoChen/hvdProfileParser/internal/pkg/category"

// State is the fusion state of a process
type State int

const (
	// Outside is the initial state: intervals are not part of a fused operation
	Outside State = iota

	// Inside means a tensor was copied in the fusion buffer and not copied out yet
	Inside
)

// Table identifies the statistics table an interval is routed to
type Table int

const (
	// None means the interval is discarded
	None Table = iota

	// TopLevel is the table of negotiation and main operations
	TopLevel

	// Fused is the table of fusion buffer copies and fused MPI allreduces
	Fused

	// Unfused is the catch-all table
	Unfused
)

// Machine is the per-process fusion state machine
type Machine struct {
	state State
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Route returns the table an interval of a given kind goes into, based on the current state
func (m *Machine) Route(k category.Kind) Table {
	switch k {
	case category.Ignored:
		return None
	case category.Negotiation, category.Main:
		return TopLevel
	case category.FusionBufferIn, category.FusionBufferOut:
		return Fused
	case category.MPIAllreduce:
		if m.state == Inside {
			return Fused
		}
	}
	return Unfused
}

// Transition applies the effect of a closed interval of a given kind. It must be called
// after the statistics of the interval are recorded.
func (m *Machine) Transition(k category.Kind) {
	switch k {
	case category.FusionBufferIn:
		m.state = Inside
	case category.FusionBufferOut:
		m.state = Outside
	}
}

func (s State) String() string {
	if s == Inside {
		return "inside-fusion"
	}
	return "outside-fusion"
}

func (t Table) String() string {
	switch t {
	case TopLevel:
		return "top-level"
	case Fused:
		return "fusion"
	case Unfused:
		return "unfused"
	}
	return "none"
}
