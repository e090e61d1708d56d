// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting

import (
	"github.com/juju/errors"
)

// History is the browser history the navigator drives.
type History interface {
	// Location returns the url currently shown.
	Location() string

	// Push records the url as the new location.
	Push(url string) error
}

// NavigateOptions alter a single navigation.
type NavigateOptions struct {
	// OverrideAllNamespaces replaces the current url outright instead
	// of combining the new one with it.
	OverrideAllNamespaces bool
}

// Navigator moves a history to new urls, preserving the namespaces the
// new url does not mention, and dispatches the result.
type Navigator struct {
	router  *Router
	history History
}

// NewNavigator returns a Navigator dispatching through the router.
func NewNavigator(router *Router, history History) *Navigator {
	return &Navigator{router: router, history: history}
}

// Navigate combines the url with the current location, pushes the
// result onto the history and dispatches it.
func (n *Navigator) Navigate(url string, opts NavigateOptions) (DispatchResult, error) {
	target := url
	if !opts.OverrideAllNamespaces {
		codec := n.router.Codec()
		target = codec.CombineURLs(n.history.Location(), url, n.router.CombineFlags())
	}
	logger.Debugf("navigating to %q", target)
	if err := n.history.Push(target); err != nil {
		return DispatchResult{}, errors.Annotatef(err, "pushing %q", target)
	}
	return n.router.Dispatch(target, "navigate"), nil
}
