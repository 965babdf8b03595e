//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package config

import (
	"github.com/spf13/pflag"
)

const (
	FlagConfig  = "config"
	FlagFile    = "file"
	FlagOp      = "op"
	FlagIgnore  = "ignore"
	FlagTop     = "top"
	FlagRanking = "ranking"
	FlagAll     = "all"
	FlagDetails = "details"
	FlagColor   = "color"
	FlagHTML    = "html"
	FlagPID     = "pid"
	FlagVerbose = "verbose"
)

// BindFlags registers the command line flags that can override a configuration file
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "TOML configuration file")
	fs.String(FlagFile, d.Input.File, "profile json file")
	fs.String(FlagOp, "", "only analyze the data layers of this operator (e.g., allreduce)")
	fs.StringSlice(FlagIgnore, nil, "additional interval names to ignore")
	fs.Int(FlagTop, d.Report.Top, "number of data layers displayed per ranking")
	fs.StringSlice(FlagRanking, d.Report.Rankings, "rankings to display (total, negotiate, main)")
	fs.Bool(FlagAll, false, "also display every data layer")
	fs.Bool(FlagDetails, false, "display the statistics of every category")
	fs.String(FlagColor, d.Report.Color, "colorize output (auto|on|off)")
	fs.String(FlagHTML, "", "also save the report as HTML in this file")
	fs.String(FlagPID, "", "only display the data layer of this pid")
	fs.BoolP(FlagVerbose, "v", false, "enable verbose mode")
}

// FromFlags loads the configuration file given on the command line, if any, and applies
// the flags that were explicitly set on top of it
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	var err error
	cfg := Default()

	path, _ := fs.GetString(FlagConfig)
	if path != "" {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	if fs.Changed(FlagFile) {
		cfg.Input.File, _ = fs.GetString(FlagFile)
	}
	if fs.Changed(FlagOp) {
		cfg.Filter.Op, _ = fs.GetString(FlagOp)
	}
	if fs.Changed(FlagIgnore) {
		ignored, _ := fs.GetStringSlice(FlagIgnore)
		cfg.Filter.Ignored = append(cfg.Filter.Ignored, ignored...)
	}
	if fs.Changed(FlagTop) {
		cfg.Report.Top, _ = fs.GetInt(FlagTop)
	}
	if fs.Changed(FlagRanking) {
		cfg.Report.Rankings, _ = fs.GetStringSlice(FlagRanking)
	}
	if fs.Changed(FlagAll) {
		cfg.Report.All, _ = fs.GetBool(FlagAll)
	}
	if fs.Changed(FlagDetails) {
		cfg.Report.Details, _ = fs.GetBool(FlagDetails)
	}
	if fs.Changed(FlagColor) {
		cfg.Report.Color, _ = fs.GetString(FlagColor)
	}
	if fs.Changed(FlagHTML) {
		cfg.Report.HTML, _ = fs.GetString(FlagHTML)
	}
	if fs.Changed(FlagPID) {
		cfg.Report.PID, _ = fs.GetString(FlagPID)
	}

	return cfg, cfg.Validate()
}
