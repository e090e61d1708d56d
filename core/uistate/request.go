// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/mohae/deepcopy"
)

// Request is a navigation request handed to the store.
type Request struct {
	Path  string
	Query url.Values
}

// Active components of the charm browser set from the query.
const (
	SearchResults = "search-results"
	MidPoint      = "mid-point"
	StoreFront    = "store"
	EntityDetails = "entity-details"
)

// Query keys read by LoadRequest and written by GenerateURL.
const (
	midpointKey     = "midpoint"
	searchKey       = "search"
	storeKey        = "store"
	deployTargetKey = "deploy-target"
)

// componentKeywords start the path slices that each describe the
// state of one section.
var componentKeywords = []string{
	Services, Applications, Machine, Inspector, Profile, Account, Deploy,
}

var (
	viewmodeRegexp     = regexp.MustCompile(`^(?:fullscreen|sidebar|minimized)/?`)
	legacySearchRegexp = regexp.MustCompile(`^search/?`)
)

// LoadRequest turns a navigation request into a state, saves it
// without dispatching and returns it. Slices of the path set the
// sections they describe, in path order; query values are layered on
// top and always win over the charm browser state of the path.
func (s *Store) LoadRequest(req Request, hash string) State {
	path := req.Path
	if s.baseURL != "" {
		path = strings.TrimPrefix(path, s.baseURL)
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	path = viewmodeRegexp.ReplaceAllString(path, "")
	path = legacySearchRegexp.ReplaceAllString(path, "")
	hash = sanitiseHash(hash)

	s.mu.Lock()
	flash := deepcopy.Copy(s.flash)
	s.mu.Unlock()

	var state State
	for _, part := range splitIntoComponents(path) {
		s.addPart(&state, part, hash, flash)
	}
	addQuery(&state, req.Query)
	s.logger.Debugf("loaded %q into %+v", req.Path, state)
	s.metrics.loaded()
	return s.SaveState(state, false)
}

// sanitiseHash drops the prefix older urls gave hashes and the hashes
// that carry nothing.
func sanitiseHash(hash string) string {
	hash = strings.Replace(hash, "bws_", "", 1)
	if hash == "#undefined" || hash == "#" {
		return ""
	}
	return hash
}

// splitIntoComponents slices the path at the first occurrence of each
// component keyword. Anything before the first keyword is kept as its
// own slice.
func splitIntoComponents(path string) []string {
	var indexes []int
	for _, keyword := range componentKeywords {
		if i := strings.Index(path, keyword); i >= 0 {
			indexes = append(indexes, i)
		}
	}
	sort.Ints(indexes)

	var parts []string
	if len(indexes) == 0 || indexes[0] != 0 {
		end := len(path)
		if len(indexes) > 0 {
			end = indexes[0]
		}
		parts = append(parts, path[:end])
	}
	for i, start := range indexes {
		end := len(path)
		if i+1 < len(indexes) {
			end = indexes[i+1]
		}
		parts = append(parts, path[start:end])
	}
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(strings.TrimPrefix(part, "/"), "/")
	}
	return parts
}

func (s *Store) addPart(state *State, part, hash string, flash interface{}) {
	switch {
	case part == "":
	case strings.HasPrefix(part, Inspector):
		state.SectionA = newSection(Inspector, parseInspectorURL(part, hash, flash))
	case strings.HasPrefix(part, Machine):
		state.SectionB = newSection(Machine, parseMachineURL(part))
	case strings.HasPrefix(part, Services):
		state.SectionA = Section{Component: Services}
	case strings.HasPrefix(part, Applications):
		state.SectionA = Section{Component: Applications}
	case strings.HasPrefix(part, Profile):
		state.SectionB = Section{Component: Profile}
	case strings.HasPrefix(part, Account):
		state.SectionB = Section{Component: Account}
	case strings.HasPrefix(part, Deploy):
		state.SectionC = newSection(Deploy, parseDeployURL(part))
	case part == Login || part == Logout:
		state.App.Component = part
	default:
		state.SectionC = newSection(CharmBrowser, parseCharmURL(part, hash))
	}
}

// newSection returns the section showing the component, leaving out
// empty metadata.
func newSection(component string, md Metadata) Section {
	section := Section{Component: component}
	if len(md) > 0 {
		section.Metadata = md
	}
	return section
}

// keywordArgs returns the slash separated segments following the
// keyword of a path slice.
func keywordArgs(part, keyword string) []string {
	rest := strings.Trim(strings.TrimPrefix(part, keyword), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// parseInspectorURL reads "inspector/<id>/<active>/<value>",
// "inspector/<id>/units/<status>/<unit>" or "inspector/local/<type>".
func parseInspectorURL(part, hash string, flash interface{}) Metadata {
	args := keywordArgs(part, Inspector)
	if len(args) == 0 {
		return nil
	}
	md := make(Metadata)
	if args[0] == "local" {
		if len(args) > 1 && args[1] != "" {
			md["localType"] = args[1]
		}
	} else {
		md["id"] = args[0]
		if len(args) > 1 && args[1] != "" {
			active := args[1]
			md["activeComponent"] = active
			switch {
			case active == "units":
				if len(args) > 2 && args[2] != "" {
					md["unitStatus"] = args[2]
				}
				if len(args) > 3 && args[3] != "" {
					md["unit"] = args[3]
				}
			case len(args) > 2 && args[2] != "":
				md[active] = args[2]
			case active == "charm":
				md["charm"] = true
			}
		}
	}
	if flash != nil {
		md["flash"] = flash
	}
	if hash != "" {
		md["hash"] = hash
	}
	return md
}

// parseMachineURL reads "machine/<id>/<container>".
func parseMachineURL(part string) Metadata {
	args := keywordArgs(part, Machine)
	md := make(Metadata)
	if len(args) > 0 && args[0] != "" {
		md["id"] = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		md["container"] = args[1]
	}
	return md
}

// parseDeployURL reads "deploy/<active>".
func parseDeployURL(part string) Metadata {
	args := keywordArgs(part, Deploy)
	md := make(Metadata)
	if len(args) > 0 && args[0] != "" {
		md["activeComponent"] = args[0]
	}
	return md
}

// parseCharmURL reads a charm or bundle id.
func parseCharmURL(part, hash string) Metadata {
	md := Metadata{"id": part}
	if hash != "" {
		md["hash"] = hash
	}
	return md
}

// addQuery layers the query values over the state: the mid-point, then
// search results, then the store, each replacing the charm browser
// state set before it.
func addQuery(state *State, query url.Values) {
	if query == nil {
		return
	}
	if _, ok := query[midpointKey]; ok {
		state.SectionC = newSection(CharmBrowser, Metadata{"activeComponent": MidPoint})
	}
	if _, ok := query[searchKey]; ok {
		md := Metadata{
			"activeComponent": SearchResults,
			searchKey:         query.Get(searchKey),
		}
		for _, key := range filterKeys {
			if _, ok := query[key]; ok {
				md[key] = query.Get(key)
			}
		}
		state.SectionC = newSection(CharmBrowser, md)
	}
	if _, ok := query[storeKey]; ok {
		md := Metadata{"activeComponent": StoreFront}
		if id := query.Get(storeKey); id != "" {
			md = Metadata{"activeComponent": EntityDetails, "id": id}
		}
		state.SectionC = newSection(CharmBrowser, md)
	}
	if target := query.Get(deployTargetKey); target != "" {
		state.App.DeployTarget = target
	}
}
