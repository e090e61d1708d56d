// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package commands holds the juju-gui-url command and its
// subcommands, which expose GUI routing from the command line.
package commands

import (
	"fmt"
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	jujucmd "github.com/juju/juju-gui/cmd"
)

var logger = loggo.GetLogger("juju.gui.cmd.url")

const guiDoc = `
juju-gui-url inspects the urls of the Juju GUI.

A GUI url holds the path of the application state, in its untagged
head, and the paths of other namespaces, each introduced by a
":name:" tag. The subcommands parse and combine such urls, and map
them to and from the application state.
`

// NewGUICommand returns the juju-gui-url super command.
func NewGUICommand() cmd.Command {
	gui := jujucmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "juju-gui-url",
		Purpose: "Inspect Juju GUI urls.",
		Doc:     guiDoc,
	})
	gui.Register(NewParseCommand())
	gui.Register(NewCombineCommand())
	gui.Register(NewLoadStateCommand())
	gui.Register(NewGenerateURLCommand())
	return gui
}

// Main runs the juju-gui-url command and returns its exit code.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return cmd.Main(NewGUICommand(), ctx, args[1:])
}
