// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"gopkg.in/yaml.v2"

	"github.com/juju/juju-gui/core/uistate"
)

const generateURLDoc = `
Prints the url of an application state with a change applied. Both the
state and the change are YAML documents of sections, each holding a
component and its metadata. A null value in the change removes the
field from the state.

Examples:
    juju-gui-url generate-url --change change.yaml
    juju-gui-url generate-url --state current.yaml --change change.yaml
`

type generateURLCommand struct {
	cmd.CommandBase

	out        cmd.Output
	stateFile  cmd.FileVar
	changeFile cmd.FileVar
	baseURL    string
}

// NewGenerateURLCommand returns a command printing the url of a state
// change.
func NewGenerateURLCommand() cmd.Command {
	return &generateURLCommand{}
}

// Info implements cmd.Command.
func (c *generateURLCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "generate-url",
		Purpose: "Print the url of a state change.",
		Doc:     generateURLDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *generateURLCommand) SetFlags(f *gnuflag.FlagSet) {
	f.Var(&c.stateFile, "state", "Path to a YAML file holding the current state")
	f.Var(&c.changeFile, "change", "Path to a YAML file holding the change")
	f.StringVar(&c.baseURL, "base-url", "", "Prefix of the GUI paths")
	c.out.AddFlags(f, "smart", cmd.DefaultFormatters.Formatters())
}

func readYAMLFile(ctx *cmd.Context, file cmd.FileVar) (map[string]interface{}, error) {
	if file.Path == "" {
		return nil, nil
	}
	data, err := file.Read(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", file.Path)
	}
	if doc == nil {
		return nil, nil
	}
	normalised, err := normaliseYAML(doc)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", file.Path)
	}
	attrs, ok := normalised.(map[string]interface{})
	if !ok {
		return nil, errors.NotValidf("%s holding %T", file.Path, doc)
	}
	return attrs, nil
}

// Run implements cmd.Command.
func (c *generateURLCommand) Run(ctx *cmd.Context) error {
	store, err := uistate.NewStore(uistate.StoreConfig{
		BaseURL: c.baseURL,
		Table:   &uistate.Table{},
	})
	if err != nil {
		return errors.Trace(err)
	}
	current, err := readYAMLFile(ctx, c.stateFile)
	if err != nil {
		return errors.Trace(err)
	}
	if current != nil {
		state, err := uistate.NewStateFromMap(current)
		if err != nil {
			return errors.Annotatef(err, "reading %s", c.stateFile.Path)
		}
		store.SaveState(state, false)
	}
	change, err := readYAMLFile(ctx, c.changeFile)
	if err != nil {
		return errors.Trace(err)
	}
	return c.out.Write(ctx, store.GenerateURL(uistate.Change(change)))
}
