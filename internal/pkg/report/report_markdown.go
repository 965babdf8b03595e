//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/datalayer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/ranking"
	"github.com/gomarkdown/markdown"
)

func markdownLayer(buf *bytes.Buffer, l *datalayer.Layer, details bool) error {
	fmt.Fprintf(buf, "### `%s` (pid %s)\n\n", l.Name, l.PID)
	fmt.Fprintf(buf, "- %s\n", SizeLine(l))
	for _, t := range l.Tables() {
		line, err := SummaryLine(t)
		if err != nil {
			return fmt.Errorf("%s (pid %s): %w", l.Name, l.PID, err)
		}
		fmt.Fprintf(buf, "- `%s`\n", line)
		if details {
			for _, d := range DetailLines(t) {
				fmt.Fprintf(buf, "    - `%s`\n", d)
			}
		}
	}
	fmt.Fprintln(buf)
	return nil
}

func markdownOverview(buf *bytes.Buffer, layers []*datalayer.Layer) {
	fmt.Fprintln(buf, "| # | layer | total (ms) | negotiate (ms) | main (ms) |")
	fmt.Fprintln(buf, "|---|---|---|---|---|")
	for i, l := range layers {
		negotiate, main, total := l.Averages()
		fmt.Fprintf(buf, "| %d | `%s` | %.3f | %.3f | %.3f |\n", i+1, l.Name, total, negotiate, main)
	}
	fmt.Fprintln(buf)
}

// Markdown generates the report of a set of data layers in markdown
func Markdown(title string, layers []*datalayer.Layer, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", title)
	if len(layers) == 0 {
		fmt.Fprintln(&buf, "No data layer found")
		return buf.Bytes(), nil
	}

	for _, k := range opts.Rankings {
		top := ranking.Top(layers, k, opts.Top)
		fmt.Fprintf(&buf, "## %s\n\n", RankingTitle(k, len(top)))
		markdownOverview(&buf, top)
		for _, l := range top {
			err := markdownLayer(&buf, l, opts.Details)
			if err != nil {
				return nil, err
			}
		}
	}

	if opts.All {
		fmt.Fprintf(&buf, "## All data layers\n\n")
		markdownOverview(&buf, layers)
		for _, l := range layers {
			err := markdownLayer(&buf, l, opts.Details)
			if err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

// MarkdownLayer generates the markdown block of a single data layer
func MarkdownLayer(l *datalayer.Layer, details bool) ([]byte, error) {
	var buf bytes.Buffer
	err := markdownLayer(&buf, l, details)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML converts the report of a set of data layers to HTML
func HTML(title string, layers []*datalayer.Layer, opts Options) ([]byte, error) {
	md, err := Markdown(title, layers, opts)
	if err != nil {
		return nil, err
	}
	return markdown.ToHTML(md, nil, nil), nil
}

// WriteHTML saves the HTML report in a file
func WriteHTML(path string, title string, layers []*datalayer.Layer, opts Options) error {
	content, err := HTML(title, layers, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
