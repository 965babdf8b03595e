//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

// Package logging sets up the log output shared by all the commands
package logging

import (
	"io"
	"log"
	"os"

	"github.com/gvallee/go_util/pkg/util"
)

// Application is the name under which log files are created
const Application = "hvdprofile"

// Setup opens the log file of a command and redirects the log output. In verbose mode,
// logs go both to stdout and to the log file; they are discarded otherwise. The returned
// file, if not nil, must be closed by the caller.
func Setup(verbose bool, cmdName string) *os.File {
	logFile := util.OpenLogFile(Application, cmdName)
	log.SetOutput(Output(verbose, logFile))
	return logFile
}

// Output returns the writer used for logs
func Output(verbose bool, logFile *os.File) io.Writer {
	if !verbose {
		return io.Discard
	}
	if logFile == nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, logFile)
}
