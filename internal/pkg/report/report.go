//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/datalayer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/ranking"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const (
	indent = "  "

	// maxNameWidth is the widest layer name displayed in ranking tables
	maxNameWidth = 48
)

// Options controls the content of a report
type Options struct {
	// Top is the number of layers displayed per ranking
	Top int

	Rankings []ranking.Key

	// All adds a section with every layer, in registration order
	All bool

	// Details adds one line per category after each summary line
	Details bool

	Color bool
}

// DefaultOptions returns the report options used when nothing is specified
func DefaultOptions() Options {
	return Options{
		Top:      ranking.DefaultTop,
		Rankings: ranking.Keys,
	}
}

type printer struct {
	opts    Options
	title   *color.Color
	layer   *color.Color
	warning *color.Color
}

func newPrinter(opts Options) *printer {
	p := new(printer)
	p.opts = opts
	p.title = color.New(color.FgYellow, color.Bold)
	p.layer = color.New(color.FgCyan, color.Bold)
	p.warning = color.New(color.FgRed)
	for _, c := range []*color.Color{p.title, p.layer, p.warning} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// SizeLine describes the size of the tensors of a layer
func SizeLine(l *datalayer.Layer) string {
	s, err := l.Shape()
	if err != nil {
		return "size: unknown (no shape captured)"
	}
	return fmt.Sprintf("size: %s elements, shape: %s", formatCount(s.NumElements()), s.String())
}

func (p *printer) layerBlock(buf *bytes.Buffer, l *datalayer.Layer) error {
	fmt.Fprintln(buf, p.layer.Sprintf("%s (pid %s)", l.Name, l.PID))
	if !l.HasShape() {
		fmt.Fprintln(buf, indent+p.warning.Sprint(SizeLine(l)))
	} else {
		fmt.Fprintln(buf, indent+SizeLine(l))
	}
	for _, t := range l.Tables() {
		line, err := SummaryLine(t)
		if err != nil {
			return fmt.Errorf("%s (pid %s): %w", l.Name, l.PID, err)
		}
		fmt.Fprintln(buf, indent+line)
		if p.opts.Details {
			for _, d := range DetailLines(t) {
				fmt.Fprintln(buf, indent+indent+d)
			}
		}
	}
	return nil
}

func nameWidth(layers []*datalayer.Layer) int {
	w := runewidth.StringWidth("layer")
	for _, l := range layers {
		if lw := runewidth.StringWidth(l.Name); lw > w {
			w = lw
		}
	}
	if w > maxNameWidth {
		w = maxNameWidth
	}
	return w
}

// Overview builds an aligned table with the derived scalars of the layers
func Overview(layers []*datalayer.Layer) []string {
	w := nameWidth(layers)
	lines := []string{
		fmt.Sprintf("%4s  %s  %12s  %14s  %12s", "#", runewidth.FillRight("layer", w), "total(ms)", "negotiate(ms)", "main(ms)"),
	}
	for i, l := range layers {
		name := runewidth.FillRight(runewidth.Truncate(l.Name, w, "..."), w)
		negotiate, main, total := l.Averages()
		lines = append(lines, fmt.Sprintf("%4d  %s  %12.3f  %14.3f  %12.3f", i+1, name, total, negotiate, main))
	}
	return lines
}

// RankingTitle is the header of a ranking section
func RankingTitle(k ranking.Key, n int) string {
	return fmt.Sprintf("Top %d data layers by %s time:", n, k)
}

// Write generates the report of a set of data layers. Nothing is written if any layer is
// inconsistent.
func Write(w io.Writer, layers []*datalayer.Layer, opts Options) error {
	p := newPrinter(opts)
	var buf bytes.Buffer

	if len(layers) == 0 {
		fmt.Fprintln(&buf, p.warning.Sprint("No data layer found"))
		_, err := w.Write(buf.Bytes())
		return err
	}

	for _, k := range opts.Rankings {
		top := ranking.Top(layers, k, opts.Top)
		fmt.Fprintln(&buf, p.title.Sprint(RankingTitle(k, len(top))))
		fmt.Fprintln(&buf, strings.Join(Overview(top), "\n"))
		fmt.Fprintln(&buf)
		for _, l := range top {
			err := p.layerBlock(&buf, l)
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(&buf)
	}

	if opts.All {
		fmt.Fprintln(&buf, p.title.Sprint("All data layers:"))
		for _, l := range layers {
			err := p.layerBlock(&buf, l)
			if err != nil {
				return err
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Layer generates the block of a single data layer
func Layer(l *datalayer.Layer, opts Options) (string, error) {
	var buf bytes.Buffer
	err := newPrinter(opts).layerBlock(&buf, l)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
