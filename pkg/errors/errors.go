//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package errors

import "fmt"

type InternalError struct {
	msg  string // message associated to the error
	code int    // error code
}

// AnalysisError is the error returned by all the analysis steps. It carries one of the
// error codes below and the details of what went wrong.
type AnalysisError struct {
	internal InternalError
	details  error
}

// ErrNone means success
var ErrNone = InternalError{"Success", 0}

// ErrInvalidInput means the trace could not be read or is not a JSON array of events
var ErrInvalidInput = InternalError{"Invalid input", -1}

// ErrMalformedTrace means that the begin/end events of a process do not pair up
var ErrMalformedTrace = InternalError{"Malformed trace", -2}

// ErrInconsistentCounts means that categories of a same statistics table report different numbers of calls
var ErrInconsistentCounts = InternalError{"Inconsistent call counts", -3}

// ErrInvalidShape means that the shape argument of an event could not be parsed
var ErrInvalidShape = InternalError{"Invalid shape", -4}

// ErrMissingShape means that no shape was ever captured for a data layer
var ErrMissingShape = InternalError{"Missing shape", -5}

// New creates an error of a given type with the associated details
func New(i InternalError, err error) *AnalysisError {
	e := new(AnalysisError)
	e.details = err
	e.internal = i
	return e
}

// Newf is a shortcut for New(i, fmt.Errorf(format, a...))
func Newf(i InternalError, format string, a ...interface{}) *AnalysisError {
	return New(i, fmt.Errorf(format, a...))
}

func (e *AnalysisError) Is(i InternalError) bool {
	return e.internal == i
}

func (e *AnalysisError) GetInternal() error {
	return e.details
}

// Code returns the numerical code of the error
func (e *AnalysisError) Code() int {
	return e.internal.code
}

func (e *AnalysisError) Error() string {
	if e.details == nil {
		return e.internal.msg
	}
	return fmt.Sprintf("%s: %s", e.internal.msg, e.details)
}

func (e *AnalysisError) Unwrap() error {
	return e.details
}

// Has checks whether an error, or any error it wraps, is an AnalysisError of type i
func Has(err error, i InternalError) bool {
	for err != nil {
		if ae, ok := err.(*AnalysisError); ok && ae.Is(i) {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
