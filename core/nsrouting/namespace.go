// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/collections/set"
)

// DefaultNamespace is the namespace that owns the unnamespaced head of
// a url unless a router is configured otherwise.
const DefaultNamespace = "default"

// rootFragment is the fragment of a namespace with no path of its own.
const rootFragment = "/"

// Diagnostic describes a recoverable anomaly met while handling a url.
type Diagnostic struct {
	Namespace string
	Message   string
}

func (d Diagnostic) String() string {
	if d.Namespace == "" {
		return d.Message
	}
	return fmt.Sprintf("namespace %q: %s", d.Namespace, d.Message)
}

// NamespaceMap holds the fragments of a url grouped by namespace. Every
// fragment ends with exactly one "/". A namespace that was combined
// holds its fragments in the order they were met; any other namespace
// holds a single fragment.
type NamespaceMap struct {
	Namespaces map[string][]string

	// DefaultNamespacePresent records whether the url gave the default
	// namespace a value, either as a path prefix or with an explicit tag.
	DefaultNamespacePresent bool

	Search      string
	Hash        string
	Diagnostics []Diagnostic
}

// Get returns the first fragment of the namespace, or "" when the
// namespace is absent.
func (m NamespaceMap) Get(namespace string) string {
	fragments := m.Namespaces[namespace]
	if len(fragments) == 0 {
		return ""
	}
	return fragments[0]
}

// Fragments returns every fragment of the namespace.
func (m NamespaceMap) Fragments(namespace string) []string {
	return append([]string(nil), m.Namespaces[namespace]...)
}

// Names returns the namespaces of the map in lexicographic order.
func (m NamespaceMap) Names() []string {
	return set.NewStrings(m.names()...).SortedValues()
}

func (m NamespaceMap) names() []string {
	names := make([]string, 0, len(m.Namespaces))
	for name := range m.Namespaces {
		names = append(names, name)
	}
	return names
}

// Pair is a single (namespace, fragment) entry of a NamespaceMap.
type Pair struct {
	Namespace string
	Fragment  string
}

// Pairs flattens the map into (namespace, fragment) pairs, with the
// given default namespace first and the others in lexicographic order.
func (m NamespaceMap) Pairs(defaultNamespace string) []Pair {
	var pairs []Pair
	for _, name := range dispatchOrder(m, defaultNamespace) {
		for _, fragment := range m.Namespaces[name] {
			pairs = append(pairs, Pair{Namespace: name, Fragment: fragment})
		}
	}
	return pairs
}

// copy returns a NamespaceMap that shares no slices with m.
func (m NamespaceMap) copy() NamespaceMap {
	result := m
	result.Namespaces = make(map[string][]string, len(m.Namespaces))
	for name, fragments := range m.Namespaces {
		result.Namespaces[name] = append([]string(nil), fragments...)
	}
	result.Diagnostics = append([]Diagnostic(nil), m.Diagnostics...)
	return result
}

func (m *NamespaceMap) warnf(namespace, format string, args ...interface{}) {
	d := Diagnostic{Namespace: namespace, Message: fmt.Sprintf(format, args...)}
	logger.Warningf("%s", d)
	m.Diagnostics = append(m.Diagnostics, d)
}

func dispatchOrder(m NamespaceMap, defaultNamespace string) []string {
	names := set.NewStrings(m.names()...)
	var order []string
	if names.Contains(defaultNamespace) {
		order = append(order, defaultNamespace)
		names.Remove(defaultNamespace)
	}
	sorted := names.Values()
	sort.Strings(sorted)
	return append(order, sorted...)
}

// CombineFlags select which namespaces accumulate fragments instead of
// replacing them. A nil *CombineFlags never combines.
type CombineFlags struct {
	// All combines every namespace not listed in Namespaces.
	All bool

	// Namespaces holds per namespace overrides; an entry here always
	// takes precedence over All.
	Namespaces map[string]bool
}

// CombineAll returns flags that combine every namespace.
func CombineAll() *CombineFlags {
	return &CombineFlags{All: true}
}

// CombineNamespaces returns flags that combine only the named
// namespaces.
func CombineNamespaces(names ...string) *CombineFlags {
	flags := &CombineFlags{Namespaces: make(map[string]bool, len(names))}
	for _, name := range names {
		flags.Namespaces[name] = true
	}
	return flags
}

// Combines reports whether fragments of the namespace accumulate.
func (f *CombineFlags) Combines(namespace string) bool {
	if f == nil {
		return false
	}
	if combine, ok := f.Namespaces[namespace]; ok {
		return combine
	}
	return f.All
}

func (f *CombineFlags) String() string {
	if f == nil {
		return "none"
	}
	if f.All {
		return "all"
	}
	var names []string
	for name, combine := range f.Namespaces {
		if combine {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// normaliseFragment strips trailing slashes from the fragment and adds
// back exactly one.
func normaliseFragment(fragment string) string {
	return strings.TrimRight(fragment, "/") + "/"
}

// normaliseDefault strips slashes from both ends of a default namespace
// value and adds back exactly one trailing slash.
func normaliseDefault(fragment string) string {
	return strings.Trim(fragment, "/") + "/"
}
