// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

// Callback renders a component with its metadata.
type Callback func(metadata Metadata)

// SectionTable holds the view callbacks of a section.
type SectionTable struct {
	// Empty tears down whatever the section showed before a new
	// component is dispatched to it.
	Empty func()

	// Components maps component names to their callbacks.
	Components map[string]Callback
}

// AppTable holds the view callbacks of the app section.
type AppTable struct {
	Empty      func()
	Components map[string]Callback

	// DeployTarget receives the deploy target of the state, if any.
	DeployTarget func(target string)
}

// Table is the dispatch table of the application: for every section,
// the callbacks the store runs when a state is dispatched.
type Table struct {
	App      AppTable
	SectionA SectionTable
	SectionB SectionTable
	SectionC SectionTable
}

// Section returns the callbacks of the named section.
func (t *Table) Section(name SectionName) SectionTable {
	switch name {
	case App:
		return SectionTable{Empty: t.App.Empty, Components: t.App.Components}
	case SectionA:
		return t.SectionA
	case SectionB:
		return t.SectionB
	case SectionC:
		return t.SectionC
	}
	return SectionTable{}
}
