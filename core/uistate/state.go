// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	"github.com/juju/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
)

// SectionName names one of the sections of the application state.
type SectionName string

const (
	App      SectionName = "app"
	SectionA SectionName = "sectionA"
	SectionB SectionName = "sectionB"
	SectionC SectionName = "sectionC"
)

// Sections lists the sections in the order they are dispatched and
// rendered into urls.
var Sections = []SectionName{App, SectionA, SectionB, SectionC}

// Component names understood by the store.
const (
	CharmBrowser = "charmbrowser"
	Inspector    = "inspector"
	Machine      = "machine"
	Deploy       = "deploy"
	Services     = "services"
	Applications = "applications"
	Profile      = "profile"
	Account      = "account"
	Login        = "login"
	Logout       = "logout"
)

// Metadata holds whatever a component needs to render itself. It is
// passed verbatim to the component's callback.
type Metadata map[string]interface{}

// Section is the state of one section.
type Section struct {
	Component string   `mapstructure:"component" yaml:"component,omitempty" json:"component,omitempty"`
	Metadata  Metadata `mapstructure:"metadata" yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// IsEmpty reports whether the section shows nothing.
func (s Section) IsEmpty() bool {
	return s.Component == "" && len(s.Metadata) == 0
}

func (s Section) asMap() map[string]interface{} {
	result := make(map[string]interface{})
	if s.Component != "" {
		result["component"] = s.Component
	}
	if s.Metadata != nil {
		result["metadata"] = map[string]interface{}(copyMetadata(s.Metadata))
	}
	return result
}

// AppSection is the state of the app section, which may also carry the
// target of a deployment.
type AppSection struct {
	Component    string   `mapstructure:"component" yaml:"component,omitempty" json:"component,omitempty"`
	Metadata     Metadata `mapstructure:"metadata" yaml:"metadata,omitempty" json:"metadata,omitempty"`
	DeployTarget string   `mapstructure:"deployTarget" yaml:"deployTarget,omitempty" json:"deployTarget,omitempty"`
}

func (s AppSection) asMap() map[string]interface{} {
	result := Section{Component: s.Component, Metadata: s.Metadata}.asMap()
	if s.DeployTarget != "" {
		result["deployTarget"] = s.DeployTarget
	}
	return result
}

// State is the state of the whole application.
type State struct {
	App      AppSection `mapstructure:"app" yaml:"app,omitempty" json:"app,omitempty"`
	SectionA Section    `mapstructure:"sectionA" yaml:"sectionA" json:"sectionA"`
	SectionB Section    `mapstructure:"sectionB" yaml:"sectionB" json:"sectionB"`
	SectionC Section    `mapstructure:"sectionC" yaml:"sectionC" json:"sectionC"`
}

// Section returns the component and metadata of the named section.
func (s State) Section(name SectionName) Section {
	switch name {
	case App:
		return Section{Component: s.App.Component, Metadata: s.App.Metadata}
	case SectionA:
		return s.SectionA
	case SectionB:
		return s.SectionB
	case SectionC:
		return s.SectionC
	}
	return Section{}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return deepcopy.Copy(s).(State)
}

// AsMap returns the state as a generic map of its four sections.
func (s State) AsMap() map[string]interface{} {
	return map[string]interface{}{
		string(App):      s.App.asMap(),
		string(SectionA): s.SectionA.asMap(),
		string(SectionB): s.SectionB.asMap(),
		string(SectionC): s.SectionC.asMap(),
	}
}

// NewStateFromMap builds a State from a generic map of sections, as
// found in a change request or a decoded document.
func NewStateFromMap(attrs map[string]interface{}) (State, error) {
	var state State
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &state,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return State{}, errors.Trace(err)
	}
	if err := decoder.Decode(attrs); err != nil {
		return State{}, errors.Annotate(err, "decoding state")
	}
	return state, nil
}

func copyMetadata(md Metadata) Metadata {
	if md == nil {
		return nil
	}
	return deepcopy.Copy(md).(Metadata)
}

// asStringMap returns v as a generic map when it is one.
func asStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Metadata:
		return map[string]interface{}(m), true
	case Change:
		return map[string]interface{}(m), true
	}
	return nil, false
}

// deepMerge merges src into dst. Maps merge recursively, anything else
// replaces the existing value and a nil value removes the key.
func deepMerge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{})
	}
	for key, value := range src {
		if value == nil {
			delete(dst, key)
			continue
		}
		if srcMap, ok := asStringMap(value); ok {
			var existing map[string]interface{}
			if dstMap, ok := asStringMap(dst[key]); ok {
				existing = dstMap
			}
			dst[key] = deepMerge(existing, srcMap)
			continue
		}
		dst[key] = deepcopy.Copy(value)
	}
	return dst
}
