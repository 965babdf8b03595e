//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package ranking

import (
	"fmt"
	"sort"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/datalayer"
)

// Key is the derived scalar data layers are ranked by
type Key string

const (
	Total     Key = "total"
	Negotiate Key = "negotiate"
	Main      Key = "main"

	// DefaultTop is the default number of layers displayed per ranking
	DefaultTop = 5
)

// Keys are all the supported keys, in the order the rankings are displayed
var Keys = []Key{Total, Negotiate, Main}

// ParseKey validates a ranking key
func ParseKey(s string) (Key, error) {
	for _, k := range Keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown ranking key %q (expected one of %v)", s, Keys)
}

// Value returns the scalar of a layer for a key
func (k Key) Value(l *datalayer.Layer) float64 {
	switch k {
	case Negotiate:
		return l.NegotiateAvg()
	case Main:
		return l.MainAvg()
	}
	return l.TotalAvg()
}

type entry struct {
	layer *datalayer.Layer
	val   float64
}

type byValue []entry

func (x byValue) Len() int           { return len(x) }
func (x byValue) Less(i, j int) bool { return x[i].val > x[j].val }
func (x byValue) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// Sort returns the layers ordered by decreasing value of the key. The sort is stable so
// layers with the same value keep their relative order.
func Sort(layers []*datalayer.Layer, k Key) []*datalayer.Layer {
	entries := make(byValue, len(layers))
	for i, l := range layers {
		entries[i] = entry{layer: l, val: k.Value(l)}
	}
	sort.Stable(entries)

	sorted := make([]*datalayer.Layer, len(entries))
	for i, e := range entries {
		sorted[i] = e.layer
	}
	return sorted
}

// Top returns at most n layers with the highest value of the key
func Top(layers []*datalayer.Layer, k Key, n int) []*datalayer.Layer {
	sorted := Sort(layers, k)
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
