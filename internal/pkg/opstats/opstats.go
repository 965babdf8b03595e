//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package opstats

import (
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/unit"
)

// Stats is the running aggregate of the intervals of a category
type Stats struct {
	Calls int

	// TotalDuration is in microseconds
	TotalDuration float64
}

// Record adds the duration of an interval, in microseconds
func (s *Stats) Record(duration float64) {
	s.Calls++
	s.TotalDuration += duration
}

// Average returns the average duration of a call in milliseconds, 0 when no call was recorded
func (s *Stats) Average() float64 {
	if s.Calls == 0 {
		return 0
	}
	return unit.Convert(s.TotalDuration/float64(s.Calls), unit.Microseconds, unit.Milliseconds)
}

// Table maps category names to their statistics. Entries are created the first time a
// category is recorded and are kept in that order.
type Table struct {
	names   []string
	entries map[string]*Stats
}

// NewTable creates an empty table
func NewTable() *Table {
	t := new(Table)
	t.entries = make(map[string]*Stats)
	return t
}

// Record adds an interval of a category to the table
func (t *Table) Record(name string, duration float64) {
	s, ok := t.entries[name]
	if !ok {
		s = new(Stats)
		t.entries[name] = s
		t.names = append(t.names, name)
	}
	s.Record(duration)
}

// Get returns the statistics of a category
func (t *Table) Get(name string) (Stats, bool) {
	s, ok := t.entries[name]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// Names returns the categories in the order they were first recorded
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Len returns the number of categories in the table
func (t *Table) Len() int {
	return len(t.names)
}

// Empty checks if no category was ever recorded
func (t *Table) Empty() bool {
	return len(t.names) == 0
}
