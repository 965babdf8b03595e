//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

// Package shape handles the bracketed tensor shapes found in the arguments of
// the main collective events, e.g., "[32, 128]".
package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/XiaotaoChen/hvdProfileParser/pkg/errors"
)

// Shape is the list of dimensions of a tensor
type Shape []int

// Parse converts the string representation of a shape
func Parse(str string) (Shape, error) {
	s := strings.TrimSpace(str)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, errors.Newf(errors.ErrInvalidShape, "%q is not a bracketed list", str)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	shape := Shape{}
	if s == "" {
		return shape, nil
	}

	for _, t := range strings.Split(s, ",") {
		dim, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, errors.Newf(errors.ErrInvalidShape, "invalid dimension in %q: %s", str, err)
		}
		if dim < 0 {
			return nil, errors.Newf(errors.ErrInvalidShape, "negative dimension in %q", str)
		}
		shape = append(shape, dim)
	}
	return shape, nil
}

// NumElements returns the number of elements of a tensor of that shape
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

func (s Shape) String() string {
	dims := make([]string, len(s))
	for i, dim := range s {
		dims[i] = strconv.Itoa(dim)
	}
	return fmt.Sprintf("[%s]", strings.Join(dims, ", "))
}
