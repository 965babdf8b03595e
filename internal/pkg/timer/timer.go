//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package timer

import "time"

// Handle is a structure gathering all the data necessary to time a step of the analysis
type Handle struct {
	label string
	start time.Time
}

// Start creates and start a timer for a step
func Start(label string) *Handle {
	h := new(Handle)
	h.label = label
	h.start = time.Now()
	return h
}

// Elapsed returns the time since the timer started
func (h *Handle) Elapsed() time.Duration {
	return time.Since(h.start)
}

// Stop ends a timer and returns a description of the step and its duration
func (h *Handle) Stop() string {
	return h.label + " completed in " + h.Elapsed().String()
}
