//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/analyzer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/category"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/ranking"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/report"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/trace"
	"github.com/gvallee/go_util/pkg/util"
)

const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

type InputConfig struct {
	File string `toml:"file"`
}

type FilterConfig struct {
	Operators []string `toml:"operators"`
	Op        string   `toml:"op"`

	// Ignored are extra interval names that are not accounted for
	Ignored []string `toml:"ignored"`
}

type ReportConfig struct {
	Top      int      `toml:"top"`
	Rankings []string `toml:"rankings"`
	All      bool     `toml:"all"`
	Details  bool     `toml:"details"`
	Color    string   `toml:"color"`
	HTML     string   `toml:"html"`

	// PID restricts the report to the block of a single data layer
	PID string `toml:"pid"`
}

// Config is the complete configuration of an analysis
type Config struct {
	Input  InputConfig  `toml:"input"`
	Filter FilterConfig `toml:"filter"`
	Report ReportConfig `toml:"report"`
}

// Default returns the configuration used when nothing is specified
func Default() *Config {
	cfg := new(Config)
	cfg.Input.File = trace.DefaultFile
	cfg.Filter.Operators = append([]string{}, category.DefaultOperators...)
	cfg.Report.Top = ranking.DefaultTop
	for _, k := range ranking.Keys {
		cfg.Report.Rankings = append(cfg.Report.Rankings, string(k))
	}
	cfg.Report.Color = ColorAuto
	return cfg
}

// Load reads a TOML configuration file on top of the default configuration
func Load(path string) (*Config, error) {
	cfg := Default()
	if !util.PathExists(path) {
		return nil, fmt.Errorf("%s does not exist", path)
	}
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the consistency of a configuration
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("no input file")
	}
	if len(c.Filter.Operators) == 0 {
		return fmt.Errorf("no operator to analyze")
	}
	if c.Filter.Op != "" {
		found := false
		for _, op := range c.Filter.Operators {
			if op == c.Filter.Op {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("operator %q is not one of %v", c.Filter.Op, c.Filter.Operators)
		}
	}
	if c.Report.Top < 1 {
		return fmt.Errorf("invalid number of layers per ranking: %d", c.Report.Top)
	}
	if len(c.Report.Rankings) == 0 {
		return fmt.Errorf("no ranking requested")
	}
	for _, r := range c.Report.Rankings {
		if _, err := ranking.ParseKey(r); err != nil {
			return err
		}
	}
	switch c.Report.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("invalid color mode %q (expected %s, %s or %s)", c.Report.Color, ColorAuto, ColorOn, ColorOff)
	}
	return nil
}

// AnalyzerOptions translates the configuration into options for the analyzer
func (c *Config) AnalyzerOptions() analyzer.Options {
	opts := analyzer.DefaultOptions()
	opts.Operators = c.Filter.Operators
	opts.Op = c.Filter.Op
	if len(c.Filter.Ignored) > 0 {
		opts.Taxonomy = opts.Taxonomy.WithIgnored(c.Filter.Ignored...)
	}
	return opts
}

// ReportOptions translates the configuration into options for the report. isTerminal is used
// when the color mode is auto.
func (c *Config) ReportOptions(isTerminal bool) (report.Options, error) {
	opts := report.DefaultOptions()
	opts.Top = c.Report.Top
	opts.All = c.Report.All
	opts.Details = c.Report.Details
	opts.Rankings = nil
	for _, r := range c.Report.Rankings {
		k, err := ranking.ParseKey(r)
		if err != nil {
			return opts, err
		}
		opts.Rankings = append(opts.Rankings, k)
	}
	switch c.Report.Color {
	case ColorOn:
		opts.Color = true
	case ColorOff:
		opts.Color = false
	default:
		opts.Color = isTerminal
	}
	return opts, nil
}
