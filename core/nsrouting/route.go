// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting

import (
	"regexp"
	"strings"
)

// routeStateTracker heads every route's callback chain. It skips the
// route when any of its handlers already ran in the current dispatch.
const routeStateTracker = "_routeStateTracker"

// RouteSpec describes a route to be registered.
type RouteSpec struct {
	// Path is the route pattern. ":name" captures a single path
	// segment, "*name" captures lazily across segments and "*" alone
	// matches anything.
	Path string

	// Namespace owns the route; empty means the default namespace.
	Namespace string

	// Callbacks names the registered handlers to run, in order.
	Callbacks []string
}

// Route is a compiled route.
type Route struct {
	path      string
	namespace string
	callbacks []string
	handlers  []Handler
	regex     *regexp.Regexp
	keys      []string
}

// Path returns the pattern the route was registered with.
func (r *Route) Path() string {
	return r.path
}

// Namespace returns the namespace owning the route.
func (r *Route) Namespace() string {
	return r.namespace
}

// Callbacks returns the route's callback chain, state tracker included.
func (r *Route) Callbacks() []string {
	return append([]string{routeStateTracker}, r.callbacks...)
}

// Keys returns the names of the route's captures, in order.
func (r *Route) Keys() []string {
	return append([]string(nil), r.keys...)
}

var patternTokenRegexp = regexp.MustCompile(`[:*](\w+)`)

// compilePattern turns a route path into an anchored regular
// expression and the names of its captures.
func compilePattern(path string) (*regexp.Regexp, []string) {
	if path == "*" {
		return regexp.MustCompile(`^.*$`), nil
	}
	var (
		b    strings.Builder
		keys []string
		last int
	)
	body := strings.TrimSuffix(path, "/")
	for _, loc := range patternTokenRegexp.FindAllStringSubmatchIndex(body, -1) {
		b.WriteString(quoteLiteral(body[last:loc[0]]))
		keys = append(keys, body[loc[2]:loc[3]])
		if body[loc[0]] == '*' {
			b.WriteString(`(.*?)`)
		} else {
			b.WriteString(`([^/#?]*)`)
		}
		last = loc[1]
	}
	b.WriteString(quoteLiteral(body[last:]))
	return regexp.MustCompile(`^` + b.String() + `/?$`), keys
}

// quoteLiteral quotes the literal part of a pattern, leaving a bare "*"
// as a wildcard.
func quoteLiteral(literal string) string {
	pieces := strings.Split(literal, "*")
	for i, piece := range pieces {
		pieces[i] = regexp.QuoteMeta(piece)
	}
	return strings.Join(pieces, ".*")
}

// match tests the fragment against the route, returning the submatches
// when it matches.
func (r *Route) match(fragment string) ([]string, bool) {
	target := "/" + strings.TrimLeft(fragment, "/")
	matches := r.regex.FindStringSubmatch(target)
	return matches, matches != nil
}
