// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

const parseDoc = `
Shows the fragment of every namespace of a url, the search and the
hash. Anomalies found while parsing are listed as diagnostics.

Examples:
    juju-gui-url parse /inspector/mysql/:gui:panel/
    juju-gui-url parse --combine gui /:gui:a/:gui:b/
`

// namespaceMapOutput is the result of the parse command.
type namespaceMapOutput struct {
	Namespaces              map[string][]string `yaml:"namespaces" json:"namespaces"`
	DefaultNamespacePresent bool                `yaml:"default-namespace-present" json:"default-namespace-present"`
	Search                  string              `yaml:"search,omitempty" json:"search,omitempty"`
	Hash                    string              `yaml:"hash,omitempty" json:"hash,omitempty"`
	Diagnostics             []string            `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
}

type parseCommand struct {
	cmd.CommandBase
	namespaceFlags

	out cmd.Output
	url string
}

// NewParseCommand returns a command showing the namespaces of a url.
func NewParseCommand() cmd.Command {
	return &parseCommand{}
}

// Info implements cmd.Command.
func (c *parseCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "parse",
		Args:    "<url>",
		Purpose: "Show the namespaces of a url.",
		Doc:     parseDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *parseCommand) SetFlags(f *gnuflag.FlagSet) {
	c.namespaceFlags.addFlags(f)
	c.out.AddFlags(f, "yaml", structuredFormatters)
}

// Init implements cmd.Command.
func (c *parseCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no url specified")
	}
	c.url = args[0]
	if err := c.validate(); err != nil {
		return errors.Trace(err)
	}
	return cmd.CheckEmpty(args[1:])
}

// Run implements cmd.Command.
func (c *parseCommand) Run(ctx *cmd.Context) error {
	m := c.codec().Parse(c.url, c.settings().Combine)
	result := namespaceMapOutput{
		Namespaces:              m.Namespaces,
		DefaultNamespacePresent: m.DefaultNamespacePresent,
		Search:                  m.Search,
		Hash:                    m.Hash,
	}
	for _, d := range m.Diagnostics {
		result.Diagnostics = append(result.Diagnostics, d.String())
	}
	return c.out.Write(ctx, result)
}
