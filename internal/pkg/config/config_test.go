//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/category"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/ranking"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	tempDir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("unable to create temporary directory")
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	path := filepath.Join(tempDir, "hvdprofile.toml")
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("unable to write %s: %s", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	if err != nil {
		t.Fatalf("default configuration is invalid: %s", err)
	}
	opts, err := cfg.ReportOptions(false)
	if err != nil {
		t.Fatalf("ReportOptions() failed: %s", err)
	}
	if diff := cmp.Diff(ranking.Keys, opts.Rankings); diff != "" {
		t.Fatalf("unexpected rankings (-want +got):\n%s", diff)
	}
	if opts.Top != ranking.DefaultTop || opts.Color {
		t.Fatalf("unexpected report options: %+v", opts)
	}
	if cfg.AnalyzerOptions().Taxonomy.Classify(category.InitFusionBuffer) != category.Ignored {
		t.Fatalf("%s is not ignored by default", category.InitFusionBuffer)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[input]
file = "timeline.json"

[filter]
op = "broadcast"
ignored = ["QUEUE"]

[report]
top = 3
rankings = ["negotiate"]
color = "on"
all = true
pid = "3"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %s", err)
	}
	if cfg.Input.File != "timeline.json" || cfg.Report.PID != "3" {
		t.Fatalf("unexpected configuration: %+v", cfg)
	}
	if diff := cmp.Diff(category.DefaultOperators, cfg.Filter.Operators); diff != "" {
		t.Fatalf("default operators were not kept (-want +got):\n%s", diff)
	}

	aOpts := cfg.AnalyzerOptions()
	if aOpts.Op != "broadcast" {
		t.Fatalf("operator filter is %q", aOpts.Op)
	}
	if aOpts.Taxonomy.Classify("QUEUE") != category.Ignored {
		t.Fatalf("QUEUE is not ignored")
	}

	rOpts, err := cfg.ReportOptions(false)
	if err != nil {
		t.Fatalf("ReportOptions() failed: %s", err)
	}
	if rOpts.Top != 3 || !rOpts.Color || !rOpts.All {
		t.Fatalf("unexpected report options: %+v", rOpts)
	}
	if diff := cmp.Diff([]ranking.Key{ranking.Negotiate}, rOpts.Rankings); diff != "" {
		t.Fatalf("unexpected rankings (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		content string
	}{
		{content: "[report]\ntop = 0\n"},
		{content: "[report]\nrankings = [\"compute\"]\n"},
		{content: "[report]\ncolor = \"sometimes\"\n"},
		{content: "[filter]\nop = \"alltoall\"\n"},
		{content: "[filter]\noperators = []\n"},
		{content: "[input]\nfile = \"\"\n"},
		{content: "not toml at all ["},
	}

	for _, tt := range tests {
		_, err := Load(writeConfig(t, tt.content))
		if err == nil {
			t.Fatalf("Load() accepted %q", tt.content)
		}
	}

	_, err := Load(filepath.Join(os.TempDir(), "does", "not", "exist.toml"))
	if err == nil {
		t.Fatalf("Load() accepted a missing file")
	}
}

func TestColorAuto(t *testing.T) {
	cfg := Default()
	opts, _ := cfg.ReportOptions(true)
	if !opts.Color {
		t.Fatalf("colors are not enabled on a terminal")
	}
	cfg.Report.Color = ColorOff
	opts, _ = cfg.ReportOptions(true)
	if opts.Color {
		t.Fatalf("colors are enabled while turned off")
	}
}

func TestFromFlags(t *testing.T) {
	path := writeConfig(t, `
[input]
file = "timeline.json"

[report]
top = 3
color = "off"
`)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	err := fs.Parse([]string{"--config", path, "--top", "7", "--op", "allgather", "--ignore", "QUEUE,WAIT_FOR_DATA", "--ranking", "main", "--pid", "12"})
	if err != nil {
		t.Fatalf("Parse() failed: %s", err)
	}

	cfg, err := FromFlags(fs)
	if err != nil {
		t.Fatalf("FromFlags() failed: %s", err)
	}
	// Values of the configuration file that are not overridden are kept
	if cfg.Input.File != "timeline.json" || cfg.Report.Color != ColorOff {
		t.Fatalf("configuration file values lost: %+v", cfg)
	}
	if cfg.Report.Top != 7 || cfg.Filter.Op != "allgather" || cfg.Report.PID != "12" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"QUEUE", "WAIT_FOR_DATA"}, cfg.Filter.Ignored); diff != "" {
		t.Fatalf("unexpected ignored names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"main"}, cfg.Report.Rankings); diff != "" {
		t.Fatalf("unexpected rankings (-want +got):\n%s", diff)
	}
}

func TestFromFlagsDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse() failed: %s", err)
	}
	cfg, err := FromFlags(fs)
	if err != nil {
		t.Fatalf("FromFlags() failed: %s", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("unexpected configuration (-want +got):\n%s", diff)
	}

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--top", "0"}); err != nil {
		t.Fatalf("Parse() failed: %s", err)
	}
	if _, err := FromFlags(fs); err == nil {
		t.Fatalf("FromFlags() accepted an invalid number of layers")
	}
}
