// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	"reflect"
	"sync"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/mohae/deepcopy"
)

// Snapshot selects one of the states kept by a Store.
type Snapshot string

const (
	CurrentSnapshot  Snapshot = "current"
	PreviousSnapshot Snapshot = "previous"
)

// Fields of a section readable with GetState.
const (
	FieldComponent    = "component"
	FieldMetadata     = "metadata"
	FieldDeployTarget = "deployTarget"
)

// StoreConfig holds the configuration for a Store.
type StoreConfig struct {
	// BaseURL prefixes every path the store reads and generates.
	BaseURL string

	// Table holds the view callbacks states are dispatched to.
	Table *Table

	// Logger defaults to the package logger.
	Logger Logger

	// Clock defaults to the wall clock.
	Clock clock.Clock

	// Collector is optional.
	Collector *Collector
}

// Validate returns an error if the config cannot be used to create a
// Store.
func (config StoreConfig) Validate() error {
	if config.Table == nil {
		return errors.NotValidf("nil Table")
	}
	if len(config.BaseURL) > 1 && config.BaseURL[len(config.BaseURL)-1] == '/' {
		return errors.NotValidf("base url %q with trailing slash", config.BaseURL)
	}
	return nil
}

// Store keeps the current and previous application states and
// dispatches states to a Table.
type Store struct {
	baseURL string
	table   *Table
	logger  Logger
	clock   clock.Clock
	metrics *Collector

	mu       sync.Mutex
	current  State
	previous State
	flash    interface{}

	// dispatching counts the dispatches in progress, to detect
	// callbacks that dispatch again.
	dispatching int
}

// NewStore returns a Store with empty current and previous states.
func NewStore(config StoreConfig) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	baseURL := config.BaseURL
	if baseURL == "/" {
		baseURL = ""
	}
	store := &Store{
		baseURL: baseURL,
		table:   config.Table,
		logger:  config.Logger,
		clock:   config.Clock,
		metrics: config.Collector,
	}
	if store.logger == nil {
		store.logger = logger
	}
	if store.clock == nil {
		store.clock = clock.WallClock
	}
	return store, nil
}

// BaseURL returns the prefix of the paths the store handles.
func (s *Store) BaseURL() string {
	return s.baseURL
}

// Current returns a copy of the current state.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Previous returns a copy of the state the current one replaced.
func (s *Store) Previous() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previous.Clone()
}

// Flash returns the transient value carried to the next dispatch.
func (s *Store) Flash() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deepcopy.Copy(s.flash)
}

// SetFlash sets a transient value carried to the next dispatch.
func (s *Store) SetFlash(flash interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = deepcopy.Copy(flash)
}

// SaveState makes state the current state, keeping a copy of the
// replaced one as the previous state, and dispatches it if asked to.
func (s *Store) SaveState(state State, dispatch bool) State {
	s.mu.Lock()
	if s.dispatching > 0 {
		s.logger.Warningf("state saved while dispatching, previous state replaced")
	}
	s.previous = s.current.Clone()
	s.current = state.Clone()
	s.mu.Unlock()
	if dispatch {
		s.DispatchState(state)
	}
	return state
}

// GetState returns a field of a section of the selected state, or nil
// when the field is unset.
func (s *Store) GetState(which Snapshot, section SectionName, field string) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getState(which, section, field)
}

func (s *Store) getState(which Snapshot, section SectionName, field string) interface{} {
	state := s.current
	if which == PreviousSnapshot {
		state = s.previous
	}
	switch field {
	case FieldComponent:
		if component := state.Section(section).Component; component != "" {
			return component
		}
	case FieldMetadata:
		if md := state.Section(section).Metadata; md != nil {
			return copyMetadata(md)
		}
	case FieldDeployTarget:
		if section == App && state.App.DeployTarget != "" {
			return state.App.DeployTarget
		}
	}
	return nil
}

// HasChanged reports whether a field of a section differs between the
// previous and the current state. An unset sectionA component compares
// as the charm browser.
func (s *Store) HasChanged(section SectionName, field string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasChanged(section, field)
}

func (s *Store) hasChanged(section SectionName, field string) bool {
	previous := s.getState(PreviousSnapshot, section, field)
	current := s.getState(CurrentSnapshot, section, field)
	if section == SectionA && field == FieldComponent {
		if previous == nil {
			previous = CharmBrowser
		}
		if current == nil {
			current = CharmBrowser
		}
	}
	return !reflect.DeepEqual(previous, current)
}

// Dispatch dispatches the current state.
func (s *Store) Dispatch() {
	s.DispatchState(s.Current())
}

// DispatchState runs the table callbacks for the given state. Sections
// whose component changed between the previous and current states are
// emptied first. The flash is cleared once every section is dispatched.
func (s *Store) DispatchState(state State) {
	start := s.clock.Now()
	s.mu.Lock()
	if s.dispatching > 0 {
		s.logger.Warningf("dispatch re-entered from a view callback")
	}
	s.dispatching++
	changed := make(map[SectionName]bool, len(Sections))
	for _, name := range Sections {
		changed[name] = s.hasChanged(name, FieldComponent)
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.dispatching--
		s.flash = nil
		s.mu.Unlock()
		s.metrics.observeDispatch(s.clock.Now().Sub(start).Seconds())
	}()

	state = state.Clone()
	for _, name := range Sections {
		table := s.table.Section(name)
		if changed[name] && table.Empty != nil {
			s.logger.Tracef("emptying %s", name)
			table.Empty()
			s.metrics.emptied(name)
		}
		s.dispatchSection(name, state)
	}
}

func (s *Store) dispatchSection(name SectionName, state State) {
	section := state.Section(name)
	component := section.Component
	if name == SectionA && component == "" {
		component = CharmBrowser
	}
	if name == App && state.App.DeployTarget != "" {
		if s.table.App.DeployTarget != nil {
			s.table.App.DeployTarget(state.App.DeployTarget)
		} else {
			s.logger.Warningf("no deploy target callback for %q", state.App.DeployTarget)
		}
	}
	if component == "" {
		return
	}
	callback, ok := s.table.Section(name).Components[component]
	if !ok || callback == nil {
		s.logger.Warningf("no %s callback for component %q", name, component)
		s.metrics.missing(name, component)
		return
	}
	s.logger.Debugf("dispatching %s to %q", name, component)
	callback(section.Metadata)
	s.metrics.dispatched(name, component)
}
