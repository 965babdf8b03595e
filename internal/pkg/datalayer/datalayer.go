//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package datalayer

import (
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/category"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/opstats"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/shape"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/trace"
	"github.com/XiaotaoChen/hvdProfileParser/pkg/errors"
)

// Layer gathers the statistics of a data layer, i.e., a process of the timeline
type Layer struct {
	PID  trace.ProcessID
	Name string

	// Operator is the operator substring that matched the process name
	Operator string

	shape    shape.Shape
	hasShape bool

	// TopLevel holds the negotiation and main operations
	TopLevel *opstats.Table

	// Fusion holds the fusion buffer copies and the fused MPI allreduces
	Fusion *opstats.Table

	// Unfused holds everything else
	Unfused *opstats.Table
}

// New creates a data layer with empty statistics
func New(pid trace.ProcessID, name string, operator string) *Layer {
	l := new(Layer)
	l.PID = pid
	l.Name = name
	l.Operator = operator
	l.TopLevel = opstats.NewTable()
	l.Fusion = opstats.NewTable()
	l.Unfused = opstats.NewTable()
	return l
}

// Shape returns the shape captured from the first main operation of the layer
func (l *Layer) Shape() (shape.Shape, error) {
	if !l.hasShape {
		return nil, errors.Newf(errors.ErrMissingShape, "no shape captured for %s (pid %s)", l.Name, l.PID)
	}
	return l.shape, nil
}

// HasShape checks whether a shape was captured
func (l *Layer) HasShape() bool {
	return l.hasShape
}

// SetShape captures the shape of the layer; only the first call has an effect
func (l *Layer) SetShape(s shape.Shape) bool {
	if l.hasShape {
		return false
	}
	l.shape = s
	l.hasShape = true
	return true
}

// Averages computes, in a single pass over the top-level table, the average time spent
// negotiating, in the main operations, and the sum of both (all in ms/call).
func (l *Layer) Averages() (negotiate float64, main float64, total float64) {
	for _, name := range l.TopLevel.Names() {
		s, _ := l.TopLevel.Get(name)
		if category.IsNegotiation(name) {
			negotiate += s.Average()
		} else {
			main += s.Average()
		}
	}
	return negotiate, main, negotiate + main
}

// NegotiateAvg returns the average negotiation time in ms/call
func (l *Layer) NegotiateAvg() float64 {
	n, _, _ := l.Averages()
	return n
}

// MainAvg returns the average time of the main operations in ms/call
func (l *Layer) MainAvg() float64 {
	_, m, _ := l.Averages()
	return m
}

// TotalAvg returns the sum of the negotiation and main averages in ms/call
func (l *Layer) TotalAvg() float64 {
	_, _, t := l.Averages()
	return t
}

// Tables returns the non-empty statistics tables in reporting order
func (l *Layer) Tables() []*opstats.Table {
	var tables []*opstats.Table
	for _, t := range []*opstats.Table{l.TopLevel, l.Fusion, l.Unfused} {
		if !t.Empty() {
			tables = append(tables, t)
		}
	}
	return tables
}
