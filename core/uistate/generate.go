// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/mitchellh/mapstructure"
)

// Change is a partial state: any of the four sections, each with the
// fields to change. Maps merge into the current state, other values
// replace it and a nil value removes the field.
type Change map[string]interface{}

// defaultOwner is the owner left out of generated ids.
const defaultOwner = "~charmers"

var sectionNames = set.NewStrings(string(App), string(SectionA), string(SectionB), string(SectionC))

type queryPair struct {
	key   string
	value string
}

var queryUnescaper = strings.NewReplacer("%2F", "/", "%3A", ":")

func renderQuery(pairs []queryPair) string {
	rendered := make([]string, len(pairs))
	for i, pair := range pairs {
		if pair.value == "" {
			rendered[i] = url.QueryEscape(pair.key)
			continue
		}
		value := queryUnescaper.Replace(url.QueryEscape(pair.value))
		rendered[i] = url.QueryEscape(pair.key) + "=" + value
	}
	return strings.Join(rendered, "&")
}

// GenerateURL returns the canonical url of the current state with the
// change applied. The current state is left untouched; a flash found in
// the change is kept for the next dispatch.
func (s *Store) GenerateURL(change Change) string {
	s.mu.Lock()
	merged := deepMerge(s.current.AsMap(), change)
	s.mu.Unlock()
	for key := range merged {
		if !sectionNames.Contains(key) {
			s.logger.Warningf("ignoring unknown section %q", key)
			delete(merged, key)
		}
	}
	state, err := NewStateFromMap(merged)
	if err != nil {
		s.logger.Warningf("cannot apply change: %v", err)
		state = s.Current()
	}

	var (
		parts []string
		query []queryPair
		hash  string
	)
	for _, name := range Sections {
		section := state.Section(name)
		if flash, ok := section.Metadata["flash"]; ok && flash != nil {
			s.SetFlash(flash)
		}
		switch section.Component {
		case "":
		case CharmBrowser:
			q, h, err := charmBrowserQuery(section.Metadata)
			if err != nil {
				s.logger.Warningf("%s: %v", name, err)
				continue
			}
			if q != nil {
				query = q
			}
			if h != "" {
				hash = h
			}
		case Inspector:
			inspector, err := inspectorParts(section.Metadata)
			if err != nil {
				s.logger.Warningf("%s: %v", name, err)
			}
			parts = append(parts, inspector...)
		case Machine:
			machine, err := machineParts(section.Metadata)
			if err != nil {
				s.logger.Warningf("%s: %v", name, err)
			}
			parts = append(parts, machine...)
		case Deploy:
			parts = append(parts, Deploy)
			if active := metadataString(section.Metadata, "activeComponent"); active != "" {
				parts = append(parts, active)
			}
		default:
			parts = append(parts, section.Component)
		}
	}

	generated := s.baseURL + "/"
	if len(parts) > 0 {
		generated += strings.Join(parts, "/") + "/"
	}
	if len(query) > 0 {
		generated = strings.TrimSuffix(generated, "/") + "?" + renderQuery(query)
	}
	if hash != "" {
		if !strings.HasPrefix(hash, "#") {
			hash = "#" + hash
		}
		generated += hash
	}
	s.metrics.generated()
	return generated
}

// compactID drops the default owner from a charm or bundle id.
func compactID(id string) string {
	segments := strings.Split(id, "/")
	for i, segment := range segments {
		if segment == defaultOwner {
			return strings.Join(append(segments[:i:i], segments[i+1:]...), "/")
		}
	}
	return id
}

func decodeMetadata(md Metadata, out interface{}) error {
	if len(md) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Annotate(decoder.Decode(map[string]interface{}(md)), "decoding metadata")
}

// metadataString returns the named metadata value as a string, or ""
// when it is unset or false.
func metadataString(md Metadata, key string) string {
	value := md[key]
	if !truthy(value) {
		return ""
	}
	return fmt.Sprint(value)
}

// truthy reports whether a metadata value is set to something other
// than a zero value.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}

type charmBrowserMetadata struct {
	ActiveComponent string `mapstructure:"activeComponent"`
	ID              string `mapstructure:"id"`
	Hash            string `mapstructure:"hash"`
	Filter          `mapstructure:",squash"`
}

// charmBrowserQuery returns the query and hash showing the charm
// browser. A nil query leaves any query already built untouched.
func charmBrowserQuery(md Metadata) ([]queryPair, string, error) {
	var cb charmBrowserMetadata
	if err := decodeMetadata(md, &cb); err != nil {
		return nil, "", errors.Trace(err)
	}
	var query []queryPair
	switch cb.ActiveComponent {
	case SearchResults:
		pairs, err := cb.Filter.queryPairs()
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		query = pairs
	case MidPoint:
		query = []queryPair{{key: midpointKey}}
	case EntityDetails:
		query = []queryPair{{key: storeKey, value: compactID(cb.ID)}}
	case StoreFront:
		query = []queryPair{{key: storeKey}}
	}
	return query, cb.Hash, nil
}

type inspectorMetadata struct {
	ID              string      `mapstructure:"id"`
	ActiveComponent string      `mapstructure:"activeComponent"`
	UnitStatus      string      `mapstructure:"unitStatus"`
	Unit            interface{} `mapstructure:"unit"`
	Charm           interface{} `mapstructure:"charm"`
	LocalType       string      `mapstructure:"localType"`
}

// inspectorParts returns the path segments of the inspector; the
// segments known before a decoding error are still returned.
func inspectorParts(md Metadata) ([]string, error) {
	parts := []string{Inspector}
	var inspector inspectorMetadata
	if err := decodeMetadata(md, &inspector); err != nil {
		return parts, errors.Trace(err)
	}
	if inspector.ID != "" {
		parts = append(parts, compactID(inspector.ID))
	}
	active := inspector.ActiveComponent
	if active != "" {
		parts = append(parts, active)
	}
	switch active {
	case "", "unit", "charm":
	case "units":
		if inspector.UnitStatus != "" {
			parts = append(parts, inspector.UnitStatus)
		}
	default:
		if value, ok := md[active]; ok {
			if _, isFlag := value.(bool); !isFlag && truthy(value) {
				parts = append(parts, fmt.Sprint(value))
			}
		}
	}
	if truthy(inspector.Unit) {
		parts = append(parts, fmt.Sprint(inspector.Unit))
	}
	if truthy(inspector.Charm) && active != "charm" {
		parts = append(parts, "charm")
	}
	if inspector.LocalType != "" {
		parts = append(parts, "local", inspector.LocalType)
	}
	return parts, nil
}

type machineMetadata struct {
	ID        string `mapstructure:"id"`
	Container string `mapstructure:"container"`
}

func machineParts(md Metadata) ([]string, error) {
	parts := []string{Machine}
	var machine machineMetadata
	if err := decodeMetadata(md, &machine); err != nil {
		return parts, errors.Trace(err)
	}
	if machine.ID != "" {
		parts = append(parts, machine.ID)
	}
	if machine.Container != "" {
		parts = append(parts, machine.Container)
	}
	return parts, nil
}
