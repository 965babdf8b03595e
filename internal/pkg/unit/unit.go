//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package unit

const (
	// Nanoseconds is the smallest time scale
	Nanoseconds = iota

	// Microseconds is the scale of the timeline timestamps
	Microseconds

	// Milliseconds is the scale used in all the summaries
	Milliseconds

	// Seconds is the largest time scale
	Seconds
)

// IsValidScale checks whether a time scale is known
func IsValidScale(unitScale int) bool {
	return unitScale >= Nanoseconds && unitScale <= Seconds
}

// Convert scales a time value from one scale to another, each level being a factor 1000
func Convert(value float64, from int, to int) float64 {
	if !IsValidScale(from) || !IsValidScale(to) {
		return value
	}
	for from < to {
		value = value / 1000
		from++
	}
	for from > to {
		value = value * 1000
		from--
	}
	return value
}
