//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package category

import "strings"

// Kind is the bucket an interval falls into based on its name only
type Kind int

const (
	// Other is any interval that is not part of the taxonomy
	Other Kind = iota

	// Ignored intervals do not update any statistics
	Ignored

	// Negotiation is the coordination phase preceding a collective
	Negotiation

	// Main is the actual collective operation
	Main

	// FusionBufferIn is the copy of a tensor into the fusion buffer
	FusionBufferIn

	// FusionBufferOut is the copy of a tensor out of the fusion buffer
	FusionBufferOut

	// MPIAllreduce is the MPI allreduce; it is fused or not depending on the fusion state
	MPIAllreduce
)

const (
	NegotiateAllreduce = "NEGOTIATE_ALLREDUCE"
	NegotiateAllgather = "NEGOTIATE_ALLGATHER"
	NegotiateBroadcast = "NEGOTIATE_BROADCAST"

	Allreduce = "ALLREDUCE"
	Allgather = "ALLGATHER"
	Broadcast = "BROADCAST"

	MemcpyInFusionBuffer  = "MEMCPY_IN_FUSION_BUFFER"
	MemcpyOutFusionBuffer = "MEMCPY_OUT_FUSION_BUFFER"
	MPIAllreduceName      = "MPI_ALLREDUCE"
	InitFusionBuffer      = "INIT_FUSION_BUFFER"

	// NegotiateMarker identifies negotiation entries in a top-level statistics table
	NegotiateMarker = "NEGOTIATE"
)

// DefaultOperators are the substrings of process names we analyze
var DefaultOperators = []string{"allreduce", "allgather", "broadcast"}

// Taxonomy is the ordered set of rules used to classify intervals
type Taxonomy struct {
	ignored     map[string]bool
	negotiation map[string]bool
	main        map[string]bool
}

func set(names []string) map[string]bool {
	m := make(map[string]bool)
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Default returns the taxonomy used for timelines of the communication library
func Default() *Taxonomy {
	return &Taxonomy{
		ignored:     set([]string{InitFusionBuffer}),
		negotiation: set([]string{NegotiateAllreduce, NegotiateAllgather, NegotiateBroadcast}),
		main:        set([]string{Allreduce, Allgather, Broadcast}),
	}
}

// WithIgnored returns a copy of the taxonomy where the extra names are also ignored
func (t *Taxonomy) WithIgnored(names ...string) *Taxonomy {
	n := &Taxonomy{
		ignored:     make(map[string]bool),
		negotiation: t.negotiation,
		main:        t.main,
	}
	for k := range t.ignored {
		n.ignored[k] = true
	}
	for _, name := range names {
		n.ignored[name] = true
	}
	return n
}

// Classify returns the kind of an interval. Rules are checked in priority order and the first
// match wins: ignored, top-level (negotiation then main), fusion buffer copies, MPI allreduce.
func (t *Taxonomy) Classify(name string) Kind {
	switch {
	case t.ignored[name]:
		return Ignored
	case t.negotiation[name]:
		return Negotiation
	case t.main[name]:
		return Main
	case name == MemcpyInFusionBuffer:
		return FusionBufferIn
	case name == MemcpyOutFusionBuffer:
		return FusionBufferOut
	case name == MPIAllreduceName:
		return MPIAllreduce
	}
	return Other
}

// IsTopLevel checks whether a kind goes into the top-level statistics table
func (k Kind) IsTopLevel() bool {
	return k == Negotiation || k == Main
}

// IsNegotiation checks whether an entry of a top-level statistics table is a negotiation
func IsNegotiation(name string) bool {
	return strings.Contains(name, NegotiateMarker)
}

// MatchOperator returns the first operator that is a substring of a process name
func MatchOperator(processName string, operators []string) (string, bool) {
	for _, op := range operators {
		if op != "" && strings.Contains(processName, op) {
			return op, true
		}
	}
	return "", false
}

func (k Kind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Negotiation:
		return "negotiation"
	case Main:
		return "main"
	case FusionBufferIn:
		return "fusion-in"
	case FusionBufferOut:
		return "fusion-out"
	case MPIAllreduce:
		return "mpi-allreduce"
	}
	return "other"
}
