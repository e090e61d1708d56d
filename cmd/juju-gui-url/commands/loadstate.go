// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/juju-gui/core/uistate"
	"github.com/juju/juju-gui/guiapp"
)

const loadStateDoc = `
Shows the application state a url describes, and the view callbacks
dispatching it runs. Settings may be read from a YAML file holding
base-url, default-namespace, combine-namespaces and combine-all.

Examples:
    juju-gui-url load-state /inspector/mysql/config/
    juju-gui-url load-state --base-url /gui /gui/machine/3/?search=db
`

// components lists the components the load-state command renders, per
// section.
var components = map[uistate.SectionName][]string{
	uistate.App:      {uistate.Login, uistate.Logout},
	uistate.SectionA: {uistate.CharmBrowser, uistate.Inspector, uistate.Services, uistate.Applications},
	uistate.SectionB: {uistate.Machine, uistate.Profile, uistate.Account},
	uistate.SectionC: {uistate.CharmBrowser, uistate.Deploy},
}

// loadStateOutput is the result of the load-state command.
type loadStateOutput struct {
	State      uistate.State `yaml:"state" json:"state"`
	Dispatched []string      `yaml:"dispatched,omitempty" json:"dispatched,omitempty"`
}

// fixedHistory is a history standing still at a single url.
type fixedHistory string

func (h fixedHistory) Location() string      { return string(h) }
func (h fixedHistory) Push(url string) error { return nil }

type loadStateCommand struct {
	cmd.CommandBase

	out          cmd.Output
	settingsFile cmd.FileVar
	baseURL      string
	url          string
}

// NewLoadStateCommand returns a command showing the application state
// of a url.
func NewLoadStateCommand() cmd.Command {
	return &loadStateCommand{}
}

// Info implements cmd.Command.
func (c *loadStateCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "load-state",
		Args:    "<url>",
		Purpose: "Show the application state of a url.",
		Doc:     loadStateDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *loadStateCommand) SetFlags(f *gnuflag.FlagSet) {
	f.Var(&c.settingsFile, "settings", "Path to a YAML file of GUI settings")
	f.StringVar(&c.baseURL, "base-url", "", "Prefix of the GUI paths, overriding the settings")
	c.out.AddFlags(f, "yaml", structuredFormatters)
}

// Init implements cmd.Command.
func (c *loadStateCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no url specified")
	}
	c.url = args[0]
	return cmd.CheckEmpty(args[1:])
}

func (c *loadStateCommand) loadSettings(ctx *cmd.Context) (guiapp.Settings, error) {
	settings := guiapp.DefaultSettings()
	if c.settingsFile.Path != "" {
		data, err := c.settingsFile.Read(ctx)
		if err != nil {
			return guiapp.Settings{}, errors.Trace(err)
		}
		if settings, err = guiapp.LoadSettings(data); err != nil {
			return guiapp.Settings{}, errors.Trace(err)
		}
	}
	if c.baseURL != "" {
		settings.BaseURL = c.baseURL
	}
	return settings, nil
}

// Run implements cmd.Command.
func (c *loadStateCommand) Run(ctx *cmd.Context) error {
	settings, err := c.loadSettings(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	var result loadStateOutput
	app, err := guiapp.New(guiapp.Config{
		Settings: settings,
		Table:    recordingTable(&result.Dispatched),
		History:  fixedHistory(c.url),
	})
	if err != nil {
		return errors.Trace(err)
	}
	dispatched := app.Start()
	for _, d := range dispatched.Diagnostics {
		logger.Warningf("%s: %s", c.url, d)
	}
	result.State = app.Store().Current()
	return c.out.Write(ctx, result)
}

// recordingTable returns a dispatch table whose callbacks append
// "section: component" to dispatched.
func recordingTable(dispatched *[]string) *uistate.Table {
	record := func(entry string) {
		*dispatched = append(*dispatched, entry)
	}
	sectionTable := func(name uistate.SectionName) uistate.SectionTable {
		table := uistate.SectionTable{Components: make(map[string]uistate.Callback)}
		for _, component := range components[name] {
			entry := string(name) + ": " + component
			table.Components[component] = func(uistate.Metadata) { record(entry) }
		}
		return table
	}
	app := sectionTable(uistate.App)
	return &uistate.Table{
		App: uistate.AppTable{
			Components: app.Components,
			DeployTarget: func(target string) {
				record("app: deploy-target " + target)
			},
		},
		SectionA: sectionTable(uistate.SectionA),
		SectionB: sectionTable(uistate.SectionB),
		SectionC: sectionTable(uistate.SectionC),
	}
}
