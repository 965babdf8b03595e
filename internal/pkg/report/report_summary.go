//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package report

import (
	"fmt"
	"strings"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/opstats"
	"github.com/XiaotaoChen/hvdProfileParser/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary is the content of a summary line of a statistics table
type Summary struct {
	Names       []string
	Averages    []float64
	Percentages []float64
	Calls       int
}

// Summarize computes the summary of a table. All the categories of a table are expected to be
// called the same number of times, a table where it is not the case is reported as an error.
func Summarize(t *opstats.Table) (*Summary, error) {
	s := new(Summary)
	s.Names = t.Names()
	sum := 0.0
	for i, name := range s.Names {
		st, _ := t.Get(name)
		if i == 0 {
			s.Calls = st.Calls
		} else if st.Calls != s.Calls {
			return nil, errors.Newf(errors.ErrInconsistentCounts, "%s has %d calls while %s has %d calls", name, st.Calls, s.Names[0], s.Calls)
		}
		avg := st.Average()
		s.Averages = append(s.Averages, avg)
		sum += avg
	}

	for _, avg := range s.Averages {
		p := 0.0
		if sum > 0 {
			p = avg / sum * 100
		}
		s.Percentages = append(s.Percentages, p)
	}
	return s, nil
}

// String formats a summary, e.g.
// [NEGOTIATE_ALLREDUCE/ALLREDUCE] total time: 0.100+0.300 ms/calls percent: 25.00/75.00(%) cnt: 2 calls
func (s *Summary) String() string {
	avgs := make([]string, len(s.Averages))
	for i, a := range s.Averages {
		avgs[i] = fmt.Sprintf("%.3f", a)
	}
	percents := make([]string, len(s.Percentages))
	for i, p := range s.Percentages {
		percents[i] = fmt.Sprintf("%.2f", p)
	}
	return fmt.Sprintf("[%s] total time: %s ms/calls percent: %s(%%) cnt: %d calls",
		strings.Join(s.Names, "/"), strings.Join(avgs, "+"), strings.Join(percents, "/"), s.Calls)
}

// SummaryLine builds the summary line of a statistics table
func SummaryLine(t *opstats.Table) (string, error) {
	s, err := Summarize(t)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// DetailLines builds one line per category of a table
func DetailLines(t *opstats.Table) []string {
	var lines []string
	for _, name := range t.Names() {
		st, _ := t.Get(name)
		lines = append(lines, fmt.Sprintf("%s    time: %.3f ms/calls     %d calls", name, st.Average(), st.Calls))
	}
	return lines
}

var numberPrinter = message.NewPrinter(language.English)

func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}
