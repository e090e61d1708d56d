// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting

import (
	"regexp"
	"strings"
)

// Codec parses and serialises namespaced urls for a given default
// namespace.
type Codec struct {
	defaultNamespace string
}

// NewCodec returns a Codec whose unnamespaced path head belongs to the
// given namespace. An empty name selects DefaultNamespace.
func NewCodec(defaultNamespace string) Codec {
	if defaultNamespace == "" {
		defaultNamespace = DefaultNamespace
	}
	return Codec{defaultNamespace: defaultNamespace}
}

// DefaultNamespace returns the namespace owning the unnamespaced head of
// a url.
func (c Codec) DefaultNamespace() string {
	if c.defaultNamespace == "" {
		return DefaultNamespace
	}
	return c.defaultNamespace
}

var defaultCodec = NewCodec(DefaultNamespace)

// Parse parses the url with the default codec.
func Parse(url string, flags *CombineFlags) NamespaceMap {
	return defaultCodec.Parse(url, flags)
}

// URL serialises the map with the default codec.
func URL(m NamespaceMap, opts URLOptions) string {
	return defaultCodec.URL(m, opts)
}

// Combine overlays incoming onto orig with the default codec.
func Combine(orig, incoming NamespaceMap, flags *CombineFlags) string {
	return defaultCodec.Combine(orig, incoming, flags)
}

// CombineURLs overlays the incoming url onto the orig url with the
// default codec.
func CombineURLs(orig, incoming string, flags *CombineFlags) string {
	return defaultCodec.CombineURLs(orig, incoming, flags)
}

// namespaceTagRegexp matches a ":name:" tag together with the slash
// that may precede it.
var namespaceTagRegexp = regexp.MustCompile(`/?(:\w+:)`)

type taggedFragment struct {
	namespace string
	fragment  string
	missing   bool
}

// splitTags breaks a pathname into its unnamespaced head and the
// fragments that follow each namespace tag. A slash consumed by the
// following tag is kept with the fragment before it, so "/:a:1/:b:2"
// gives a the fragment "1/".
func splitTags(pathname string) (string, []taggedFragment) {
	matches := namespaceTagRegexp.FindAllStringSubmatchIndex(pathname, -1)
	if len(matches) == 0 {
		return pathname, nil
	}
	head := pathname[:matches[0][0]]
	tagged := make([]taggedFragment, len(matches))
	for i, match := range matches {
		end := len(pathname)
		slash := ""
		if i+1 < len(matches) {
			next := matches[i+1]
			end = next[0]
			if next[2] > next[0] {
				slash = "/"
			}
		}
		fragment := pathname[match[1]:end] + slash
		tagged[i] = taggedFragment{
			namespace: strings.Trim(pathname[match[2]:match[3]], ":"),
			fragment:  fragment,
			missing:   fragment == "",
		}
	}
	return head, tagged
}

// Parse decomposes a url into its namespace fragments. Fragments of a
// repeated namespace accumulate when the flags combine that namespace;
// otherwise the last one wins and a diagnostic is recorded. A tag with
// no path stores the root fragment plus a diagnostic.
func (c Codec) Parse(url string, flags *CombineFlags) NamespaceMap {
	defaultNamespace := c.DefaultNamespace()
	parts := Split(url)
	result := NamespaceMap{
		Namespaces: make(map[string][]string),
		Search:     parts.Search,
		Hash:       parts.Hash,
	}
	head, tagged := splitTags(parts.Pathname)
	if head != "" {
		result.Namespaces[defaultNamespace] = []string{normaliseDefault(head)}
		result.DefaultNamespacePresent = true
	} else {
		result.Namespaces[defaultNamespace] = []string{rootFragment}
	}
	for _, t := range tagged {
		fragment := rootFragment
		if t.missing {
			result.warnf(t.namespace, "no fragment given, using %q", rootFragment)
		} else {
			fragment = normaliseFragment(t.fragment)
		}
		if t.namespace == defaultNamespace {
			fragment = normaliseDefault(fragment)
			if !result.DefaultNamespacePresent {
				result.Namespaces[defaultNamespace] = []string{fragment}
				result.DefaultNamespacePresent = true
				continue
			}
		} else if _, ok := result.Namespaces[t.namespace]; !ok {
			result.Namespaces[t.namespace] = []string{fragment}
			continue
		}
		if flags.Combines(t.namespace) {
			result.Namespaces[t.namespace] = append(result.Namespaces[t.namespace], fragment)
			continue
		}
		result.warnf(t.namespace, "fragment %q replaced by %q", result.Get(t.namespace), fragment)
		result.Namespaces[t.namespace] = []string{fragment}
	}
	return result
}

// URLOptions alter how a NamespaceMap is serialised.
type URLOptions struct {
	// ExcludeRootPaths drops namespaces whose fragment is the root.
	ExcludeRootPaths bool
}

// URL serialises the map into its canonical url: the default namespace
// first, then every other namespace in lexicographic order, then the
// search and hash.
func (c Codec) URL(m NamespaceMap, opts URLOptions) string {
	defaultNamespace := c.DefaultNamespace()
	var b strings.Builder
	b.WriteString("/")
	var heads []string
	for _, fragment := range m.Namespaces[defaultNamespace] {
		if trimmed := strings.Trim(fragment, "/"); trimmed != "" {
			heads = append(heads, trimmed)
		}
	}
	b.WriteString(strings.Join(heads, "/"))
	for _, name := range dispatchOrder(m, defaultNamespace) {
		if name == defaultNamespace {
			continue
		}
		for _, fragment := range m.Namespaces[name] {
			if opts.ExcludeRootPaths && fragment == rootFragment {
				continue
			}
			ensureSlash(&b)
			b.WriteString(":" + name + ":" + fragment)
		}
	}
	ensureSlash(&b)
	if m.Search != "" {
		b.WriteString("?" + m.Search)
	}
	if m.Hash != "" {
		b.WriteString("#" + m.Hash)
	}
	return b.String()
}

func ensureSlash(b *strings.Builder) {
	if !strings.HasSuffix(b.String(), "/") {
		b.WriteString("/")
	}
}

// Combine overlays incoming onto orig and returns the resulting url. A
// default namespace that incoming did not specify leaves orig's
// untouched. Fragments of combined namespaces are appended after
// orig's; every other namespace of incoming replaces orig's. Search and
// hash always come from incoming.
func (c Codec) Combine(orig, incoming NamespaceMap, flags *CombineFlags) string {
	defaultNamespace := c.DefaultNamespace()
	result := orig.copy()
	if result.Namespaces == nil {
		result.Namespaces = make(map[string][]string)
	}
	for name, fragments := range incoming.Namespaces {
		if name == defaultNamespace && !incoming.DefaultNamespacePresent {
			continue
		}
		if _, ok := result.Namespaces[name]; ok && flags.Combines(name) {
			result.Namespaces[name] = append(result.Namespaces[name], fragments...)
			continue
		}
		result.Namespaces[name] = append([]string(nil), fragments...)
	}
	result.Search = incoming.Search
	result.Hash = incoming.Hash
	return c.URL(result, URLOptions{ExcludeRootPaths: true})
}

// CombineURLs parses both urls with the given flags and combines them.
func (c Codec) CombineURLs(orig, incoming string, flags *CombineFlags) string {
	return c.Combine(c.Parse(orig, flags), c.Parse(incoming, flags), flags)
}
