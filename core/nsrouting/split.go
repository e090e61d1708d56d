// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting

import (
	"regexp"
	"strings"
)

// Parts holds the components of a url as found by Split.
type Parts struct {
	Href     string
	Origin   string
	Pathname string
	Search   string
	Hash     string
}

var originRegexp = regexp.MustCompile(`^(?:[A-Za-z][A-Za-z0-9+.-]*:)?//[^/?#]*`)

// Split breaks a url into its origin, pathname, search and hash. The
// search is the text after the first "?" up to the first following
// "#"; the hash is the text after the first "#". Neither has its
// leading marker, and nothing is percent-decoded.
func Split(url string) Parts {
	parts := Parts{Href: url}
	rest := url
	if origin := originRegexp.FindString(rest); origin != "" {
		parts.Origin = origin
		rest = rest[len(origin):]
	}
	if i := strings.Index(rest, "#"); i >= 0 {
		parts.Hash = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.Index(rest, "?"); i >= 0 {
		parts.Search = rest[i+1:]
		rest = rest[:i]
	}
	parts.Pathname = rest
	return parts
}
