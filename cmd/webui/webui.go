//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/config"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/logging"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/webui"
	"github.com/gvallee/go_util/pkg/util"
	"github.com/spf13/cobra"
)

const (
	flagPort = "port"
	flagName = "name"
	flagStop = "stop"
)

var rootCmd = &cobra.Command{
	Use:           "webui",
	Short:         "Start a Web-based user interface to explore a timeline",
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

	port, _ := cmd.Flags().GetInt(flagPort)
	stop, _ := cmd.Flags().GetBool(flagStop)
	if stop {
		return webui.RemoteStop("localhost", port)
	}

	cfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if !util.PathExists(cfg.Input.File) {
		return fmt.Errorf("%s does not exist", cfg.Input.File)
	}

	ui := webui.Init()
	ui.Port = port
	ui.Name, _ = cmd.Flags().GetString(flagName)
	ui.TraceFile = cfg.Input.File
	ui.AnalyzerOptions = cfg.AnalyzerOptions()
	ui.ReportOptions, err = cfg.ReportOptions(false)
	if err != nil {
		return err
	}

	err = ui.Start()
	if err != nil {
		return fmt.Errorf("WebUI faced an internal error: %w", err)
	}
	fmt.Printf("WebUI available at http://localhost:%d\n", ui.Port)
	ui.Wait()
	return nil
}

func main() {
	config.BindFlags(rootCmd.Flags())
	rootCmd.Flags().Int(flagPort, webui.DefaultPort, "port of the HTTP server")
	rootCmd.Flags().String(flagName, "Timeline summary", "name of the dataset to display")
	rootCmd.Flags().Bool(flagStop, false, "stop the web UI running on the local host and port")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
