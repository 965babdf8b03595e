//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/analyzer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/config"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/hash"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/logging"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/report"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/timer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/trace"
	"github.com/gvallee/go_util/pkg/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:           "hvdprofile",
	Short:         "Summarize the timings of a communication library timeline",
	Long:          `hvdprofile parses a timeline, reconstructs the operations of every data layer and reports per-category timings ranked by total, negotiation and main operation time`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool(config.FlagVerbose)
	logFile := logging.Setup(verbose, filepath.Base(os.Args[0]))
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if !util.PathExists(cfg.Input.File) {
		return fmt.Errorf("%s does not exist", cfg.Input.File)
	}

	t := timer.Start("Loading " + cfg.Input.File)
	events, err := trace.LoadFile(cfg.Input.File)
	if err != nil {
		return fmt.Errorf("unable to load %s: %w", cfg.Input.File, err)
	}
	log.Println(t.Stop())

	t = timer.Start("Analysis")
	res, err := analyzer.Analyze(events, cfg.AnalyzerOptions())
	if err != nil {
		return fmt.Errorf("unable to analyze %s: %w", cfg.Input.File, err)
	}
	log.Println(t.Stop())
	log.Printf("%d events, %d data layers, %d events skipped", res.NumEvents, len(res.Layers), res.NumSkipped)

	opts, err := cfg.ReportOptions(term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return err
	}
	if cfg.Report.PID != "" {
		l, ok := res.Layer(trace.ProcessID(cfg.Report.PID))
		if !ok {
			return fmt.Errorf("no data layer with pid %s", cfg.Report.PID)
		}
		block, err := report.Layer(l, opts)
		if err != nil {
			return err
		}
		fmt.Print(block)
	} else {
		err = report.Write(os.Stdout, res.Layers, opts)
		if err != nil {
			return err
		}
	}

	if cfg.Report.HTML != "" {
		fingerprint, err := hash.Short(cfg.Input.File)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s (%s)", filepath.Base(cfg.Input.File), fingerprint)
		// Colors do not apply to HTML
		opts.Color = false
		err = report.WriteHTML(cfg.Report.HTML, title, res.Layers, opts)
		if err != nil {
			return fmt.Errorf("unable to save %s: %w", cfg.Report.HTML, err)
		}
		log.Printf("HTML report saved in %s", cfg.Report.HTML)
	}

	return nil
}

func main() {
	config.BindFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
