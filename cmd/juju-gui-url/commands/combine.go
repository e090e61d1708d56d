// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

const combineDoc = `
Overlays the incoming url onto the original one, as navigating from
the original url to the incoming one does. Namespaces the incoming url
leaves out are kept from the original url.

Examples:
    juju-gui-url combine /machine/3/:gui:panel/ /inspector/mysql/
`

type combineCommand struct {
	cmd.CommandBase
	namespaceFlags

	out      cmd.Output
	orig     string
	incoming string
}

// NewCombineCommand returns a command combining two urls.
func NewCombineCommand() cmd.Command {
	return &combineCommand{}
}

// Info implements cmd.Command.
func (c *combineCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "combine",
		Args:    "<original-url> <incoming-url>",
		Purpose: "Combine two urls.",
		Doc:     combineDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *combineCommand) SetFlags(f *gnuflag.FlagSet) {
	c.namespaceFlags.addFlags(f)
	c.out.AddFlags(f, "smart", cmd.DefaultFormatters.Formatters())
}

// Init implements cmd.Command.
func (c *combineCommand) Init(args []string) error {
	switch len(args) {
	case 0:
		return errors.New("no urls specified")
	case 1:
		return errors.New("no incoming url specified")
	}
	c.orig, c.incoming = args[0], args[1]
	if err := c.validate(); err != nil {
		return errors.Trace(err)
	}
	return cmd.CheckEmpty(args[2:])
}

// Run implements cmd.Command.
func (c *combineCommand) Run(ctx *cmd.Context) error {
	combined := c.codec().CombineURLs(c.orig, c.incoming, c.settings().Combine)
	logger.Debugf("combined %q and %q into %q", c.orig, c.incoming, combined)
	return c.out.Write(ctx, combined)
}
