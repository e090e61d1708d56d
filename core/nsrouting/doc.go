// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package nsrouting implements namespaced routing of GUI urls.
//
// A namespaced url carries several independent sections of the
// application at once. The unnamespaced head of the path belongs to the
// default namespace; every other section is introduced with a
// ":name:" tag:
//
//	/charms/precise/wordpress/:inspector:/service/wordpress/:gui:/machines/
//
// Parse turns such a url into a NamespaceMap, URL turns a NamespaceMap
// back into its canonical url, and Combine overlays one url onto
// another. A Router matches each namespace fragment against its routes
// and runs the registered handlers.
package nsrouting

import (
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("juju.gui.nsrouting")
