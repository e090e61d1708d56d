// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting

import (
	"fmt"
	"sync"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

// Outcome tells the router how to proceed after a handler ran.
type Outcome int

const (
	// Continue runs the next callback of the route.
	Continue Outcome = iota

	// SkipRoute abandons the remaining callbacks of the current route
	// and moves to the next matching route.
	SkipRoute

	// Abort stops the whole dispatch.
	Abort
)

// String returns a human readable outcome.
func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case SkipRoute:
		return "skip-route"
	case Abort:
		return "abort"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Request is handed to each handler of a matched route.
type Request struct {
	// URL is the url being dispatched.
	URL string

	// Source names what triggered the dispatch.
	Source string

	Namespace string
	Fragment  string

	// Route is the pattern of the matched route.
	Route string

	// Params holds the named captures of the route when every capture
	// is named.
	Params map[string]string

	// Matches holds the full match followed by each capture.
	Matches []string

	// Namespaces is the parsed url.
	Namespaces NamespaceMap
}

// Handler handles a matched route.
type Handler func(req *Request) Outcome

// DispatchResult reports what a dispatch did.
type DispatchResult struct {
	Namespaces NamespaceMap

	// Executed lists the handlers run, in order.
	Executed []string

	// Aborted is set when a handler aborted the dispatch or a fragment
	// matched no route.
	Aborted bool

	Diagnostics []Diagnostic
}

// RouterConfig holds the configuration for a Router.
type RouterConfig struct {
	// DefaultNamespace owns unnamespaced path heads and routes
	// registered without a namespace.
	DefaultNamespace string

	// Combine selects the namespaces whose repeated fragments are
	// dispatched in turn instead of replacing each other.
	Combine *CombineFlags
}

// Router dispatches the fragments of a namespaced url to the handlers
// of the routes they match.
type Router struct {
	codec   Codec
	combine *CombineFlags

	mu       sync.RWMutex
	handlers map[string]Handler
	routes   []*Route
}

// NewRouter returns a Router with no routes or handlers.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		codec:    NewCodec(config.DefaultNamespace),
		combine:  config.Combine,
		handlers: make(map[string]Handler),
	}
}

// Codec returns the codec the router parses urls with.
func (r *Router) Codec() Codec {
	return r.codec
}

// CombineFlags returns the flags the router parses urls with.
func (r *Router) CombineFlags() *CombineFlags {
	return r.combine
}

// Register makes the handler available to routes under the given name.
// Registering a name again replaces its handler for routes added
// afterwards.
func (r *Router) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Route appends a route to the routing table.
func (r *Router) Route(path, namespace string, callbacks ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, err := r.compile(RouteSpec{Path: path, Namespace: namespace, Callbacks: callbacks})
	if err != nil {
		return errors.Trace(err)
	}
	r.routes = append(r.routes, route)
	return nil
}

// SetRoutes replaces the routing table. The table is left untouched if
// any of the routes is invalid.
func (r *Router) SetRoutes(specs []RouteSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	routes := make([]*Route, 0, len(specs))
	for _, spec := range specs {
		route, err := r.compile(spec)
		if err != nil {
			return errors.Trace(err)
		}
		routes = append(routes, route)
	}
	r.routes = routes
	return nil
}

// Routes returns the routing table.
func (r *Router) Routes() []RouteSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]RouteSpec, len(r.routes))
	for i, route := range r.routes {
		specs[i] = RouteSpec{
			Path:      route.path,
			Namespace: route.namespace,
			Callbacks: route.Callbacks(),
		}
	}
	return specs
}

func (r *Router) compile(spec RouteSpec) (*Route, error) {
	if spec.Path == "" {
		return nil, errors.NotValidf("empty route path")
	}
	if len(spec.Callbacks) == 0 {
		return nil, errors.NotValidf("route %q with no callbacks", spec.Path)
	}
	namespace := spec.Namespace
	if namespace == "" {
		namespace = r.codec.DefaultNamespace()
	}
	route := &Route{
		path:      spec.Path,
		namespace: namespace,
		callbacks: append([]string(nil), spec.Callbacks...),
	}
	for _, name := range spec.Callbacks {
		handler, ok := r.handlers[name]
		if !ok {
			return nil, errors.NotFoundf("handler %q for route %q", name, spec.Path)
		}
		route.handlers = append(route.handlers, handler)
	}
	route.regex, route.keys = compilePattern(spec.Path)
	return route, nil
}

// Match returns the routes of the namespace matching the fragment, in
// registration order.
func (r *Router) Match(fragment, namespace string) []*Route {
	if namespace == "" {
		namespace = r.codec.DefaultNamespace()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*Route
	for _, route := range r.routes {
		if route.namespace != namespace {
			continue
		}
		if _, ok := route.match(fragment); ok {
			matched = append(matched, route)
		}
	}
	return matched
}

// step is one entry of the dispatch worklist.
type step struct {
	pair  Pair
	route *Route
}

// Dispatch parses the url and runs, for every (namespace, fragment)
// pair, the handlers of each matching route. The default namespace is
// dispatched first, then the others in lexicographic order. A fragment
// matching no route ends the dispatch.
func (r *Router) Dispatch(url, source string) DispatchResult {
	m := r.codec.Parse(url, r.combine)
	result := DispatchResult{
		Namespaces:  m,
		Diagnostics: append([]Diagnostic(nil), m.Diagnostics...),
	}
	seen := set.NewStrings()
	for _, pair := range m.Pairs(r.codec.DefaultNamespace()) {
		routes := r.Match(pair.Fragment, pair.Namespace)
		if len(routes) == 0 {
			d := Diagnostic{
				Namespace: pair.Namespace,
				Message:   fmt.Sprintf("no route matches %q", pair.Fragment),
			}
			logger.Debugf("dispatching %q: %s", url, d)
			result.Diagnostics = append(result.Diagnostics, d)
			result.Aborted = true
			return result
		}
		for _, route := range routes {
			outcome := r.runRoute(step{pair: pair, route: route}, url, source, m, seen, &result)
			if outcome == Abort {
				result.Aborted = true
				return result
			}
		}
	}
	return result
}

func (r *Router) runRoute(
	s step, url, source string, m NamespaceMap, seen set.Strings, result *DispatchResult,
) Outcome {
	route := s.route
	for _, name := range route.callbacks {
		if seen.Contains(name) {
			logger.Tracef("skipping route %q: %q already handled", route.path, name)
			return SkipRoute
		}
	}
	matches, _ := route.match(s.pair.Fragment)
	req := &Request{
		URL:        url,
		Source:     source,
		Namespace:  s.pair.Namespace,
		Fragment:   s.pair.Fragment,
		Route:      route.path,
		Matches:    matches,
		Namespaces: m,
	}
	if len(route.keys) > 0 && len(matches) == len(route.keys)+1 {
		req.Params = make(map[string]string, len(route.keys))
		for i, key := range route.keys {
			req.Params[key] = matches[i+1]
		}
	}
	for i, handler := range route.handlers {
		name := route.callbacks[i]
		seen.Add(name)
		result.Executed = append(result.Executed, name)
		switch outcome := handler(req); outcome {
		case Continue:
		case SkipRoute:
			return SkipRoute
		case Abort:
			logger.Debugf("dispatching %q aborted by %q", url, name)
			return Abort
		default:
			logger.Warningf("handler %q returned unknown %v, skipping route", name, outcome)
			return SkipRoute
		}
	}
	return Continue
}
