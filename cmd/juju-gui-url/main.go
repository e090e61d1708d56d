// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"os"

	"github.com/juju/juju-gui/cmd/juju-gui-url/commands"
)

func main() {
	os.Exit(commands.Main(os.Args))
}
