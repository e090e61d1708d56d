// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package uistate maps GUI paths to application state and back.
//
// The application state is made of four sections: app, sectionA,
// sectionB and sectionC. Each section shows at most one component,
// described by the component name and the metadata the component
// needs. A Store keeps the current and previous states, dispatches a
// state to the view callbacks of a Table and generates the canonical
// url of a state change.
package uistate

import (
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("juju.gui.uistate")

// Logger represents the logging methods called.
type Logger interface {
	Warningf(message string, args ...interface{})
	Debugf(message string, args ...interface{})
	Tracef(message string, args ...interface{})
}
