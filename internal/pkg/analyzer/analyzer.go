//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package analyzer

import (
	"log"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/category"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/datalayer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/fusion"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/interval"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/shape"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/trace"
)

// Options controls which processes are analyzed and how intervals are classified
type Options struct {
	// Operators are the substrings a process name must contain to be analyzed
	Operators []string

	// Op, when not empty, restricts the analysis to a single operator
	Op string

	Taxonomy *category.Taxonomy
}

// DefaultOptions returns the options used when nothing is specified
func DefaultOptions() Options {
	return Options{
		Operators: category.DefaultOperators,
		Taxonomy:  category.Default(),
	}
}

// processState is everything we track for a registered process during the pass
type processState struct {
	layer  *datalayer.Layer
	stack  interval.Stack
	fusion fusion.Machine
}

type analyzer struct {
	opts      Options
	operators []string
	processes map[trace.ProcessID]*processState
	layers    []*datalayer.Layer
	skipped   map[trace.ProcessID]bool
}

// Result is the outcome of an analysis
type Result struct {
	// Layers are in the order in which their process was registered
	Layers []*datalayer.Layer

	// NumEvents is the number of events of the trace
	NumEvents int

	// NumSkipped is the number of events that belong to a process that is not analyzed
	NumSkipped int
}

// Layer looks up the data layer of a process
func (r *Result) Layer(pid trace.ProcessID) (*datalayer.Layer, bool) {
	for _, l := range r.Layers {
		if l.PID == pid {
			return l, true
		}
	}
	return nil, false
}

func createAnalyzer(opts Options) *analyzer {
	a := new(analyzer)
	if opts.Taxonomy == nil {
		opts.Taxonomy = category.Default()
	}
	if len(opts.Operators) == 0 {
		opts.Operators = category.DefaultOperators
	}
	a.opts = opts
	a.operators = opts.Operators
	if opts.Op != "" {
		a.operators = []string{opts.Op}
	}
	a.processes = make(map[trace.ProcessID]*processState)
	a.skipped = make(map[trace.ProcessID]bool)
	return a
}

// Analyze walks the events once, in order, and returns the data layers of all the
// processes matching the options. Any begin/end mismatch aborts the analysis.
func Analyze(events []trace.Event, opts Options) (*Result, error) {
	a := createAnalyzer(opts)
	res := new(Result)
	res.NumEvents = len(events)

	for i := range events {
		e := &events[i]
		if e.Phase == trace.PhaseMetadata {
			a.handleMetadata(e)
			continue
		}

		p, ok := a.processes[e.PID]
		if !ok {
			if !a.skipped[e.PID] {
				log.Printf("skipping events of unregistered process %s", e.PID)
				a.skipped[e.PID] = true
			}
			res.NumSkipped++
			continue
		}

		switch e.Phase {
		case trace.PhaseBegin:
			p.stack.Push(e)
		case trace.PhaseEnd:
			in, err := p.stack.Pop(e)
			if err != nil {
				return nil, err
			}
			a.handleInterval(p, &in)
		default:
			log.Printf("ignoring event %s", e.String())
		}
	}

	for _, p := range a.processes {
		if p.stack.Len() != 0 {
			log.Printf("%d intervals of %s (pid %s) never ended", p.stack.Len(), p.layer.Name, p.layer.PID)
		}
	}

	res.Layers = a.layers
	return res, nil
}

func (a *analyzer) handleMetadata(e *trace.Event) {
	if e.Name != trace.ProcessNameEvent {
		return
	}
	if _, ok := a.processes[e.PID]; ok {
		return
	}
	name, _ := e.StringArg("name")
	op, ok := category.MatchOperator(name, a.operators)
	if !ok {
		log.Printf("process %s (%s) does not match any operator", e.PID, name)
		return
	}

	p := new(processState)
	p.layer = datalayer.New(e.PID, name, op)
	a.processes[e.PID] = p
	a.layers = append(a.layers, p.layer)
	delete(a.skipped, e.PID)
}

// handleInterval classifies a closed interval, records it in the right table and
// updates the fusion state of the process
func (a *analyzer) handleInterval(p *processState, in *interval.Interval) {
	kind := a.opts.Taxonomy.Classify(in.Name)
	switch p.fusion.Route(kind) {
	case fusion.None:
		return
	case fusion.TopLevel:
		p.layer.TopLevel.Record(in.Name, in.Duration)
		if kind == category.Main && !p.layer.HasShape() && in.HasShape {
			s, err := shape.Parse(in.Shape)
			if err != nil {
				log.Printf("unable to capture the shape of %s: %s", p.layer.Name, err)
			} else {
				p.layer.SetShape(s)
			}
		}
	case fusion.Fused:
		p.layer.Fusion.Record(in.Name, in.Duration)
	case fusion.Unfused:
		p.layer.Unfused.Record(in.Name, in.Duration)
	}
	p.fusion.Transition(kind)
}
