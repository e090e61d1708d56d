// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"
)

const (
	// LoggingConfigEnvKey holds the logging configuration of the
	// GUI commands.
	LoggingConfigEnvKey = "JUJU_GUI_LOGGING_CONFIG"

	// StartupLoggingConfigEnvKey configures logging before the
	// command line is parsed.
	StartupLoggingConfigEnvKey = "JUJU_GUI_STARTUP_LOGGING_CONFIG"
)

// Version is the version of the GUI commands.
const Version = "2.0.0"

func init() {
	// If the environment key is empty, ConfigureLoggers returns nil and does
	// nothing.
	err := loggo.ConfigureLoggers(os.Getenv(StartupLoggingConfigEnvKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR parsing %s: %s\n\n", StartupLoggingConfigEnvKey, err)
	}
}

var logger = loggo.GetLogger("juju.gui.cmd")

// NewSuperCommand is like cmd.NewSuperCommand but
// it adds GUI specific functionality:
// - The default logging configuration is taken from the environment;
// - The version is configured to the current GUI version;
// - The command emits a log message when a command runs.
func NewSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.Log = &cmd.Log{
		DefaultConfig: os.Getenv(LoggingConfigEnvKey),
	}
	p.Version = Version
	p.NotifyRun = runNotifier
	return cmd.NewSuperCommand(p)
}

func runNotifier(name string) {
	logger.Infof("running %s [%s %s %s]", name, Version, runtime.Compiler, runtime.Version())
}
