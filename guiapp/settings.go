// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package guiapp

import (
	"regexp"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
	"gopkg.in/yaml.v2"

	"github.com/juju/juju-gui/core/config"
	"github.com/juju/juju-gui/core/nsrouting"
)

// Setting keys read by LoadSettings.
const (
	BaseURLKey           = "base-url"
	DefaultNamespaceKey  = "default-namespace"
	CombineNamespacesKey = "combine-namespaces"
	CombineAllKey        = "combine-all"
)

var settingsFields = environschema.Fields{
	BaseURLKey: {
		Description: "The prefix of every path the GUI handles, without a trailing slash.",
		Type:        environschema.Tstring,
	},
	DefaultNamespaceKey: {
		Description: "The namespace owning the untagged head of a url.",
		Type:        environschema.Tstring,
	},
	CombineNamespacesKey: {
		Description: "The namespaces whose repeated fragments are all dispatched.",
		Type:        environschema.Tlist,
	},
	CombineAllKey: {
		Description: "Whether every namespace combines repeated fragments.",
		Type:        environschema.Tbool,
	},
}

var settingsDefaults = schema.Defaults{
	BaseURLKey:           "",
	DefaultNamespaceKey:  nsrouting.DefaultNamespace,
	CombineNamespacesKey: schema.Omit,
	CombineAllKey:        false,
}

var namespaceRegexp = regexp.MustCompile(`^\w+$`)

// Settings configure the routing of a GUI application.
type Settings struct {
	BaseURL          string
	DefaultNamespace string
	Combine          *nsrouting.CombineFlags
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{DefaultNamespace: nsrouting.DefaultNamespace}
}

// Validate returns an error if the settings cannot be used.
func (s Settings) Validate() error {
	if s.BaseURL != "" && !strings.HasPrefix(s.BaseURL, "/") {
		return errors.NotValidf("base url %q without leading slash", s.BaseURL)
	}
	if len(s.BaseURL) > 1 && strings.HasSuffix(s.BaseURL, "/") {
		return errors.NotValidf("base url %q with trailing slash", s.BaseURL)
	}
	if !namespaceRegexp.MatchString(s.DefaultNamespace) {
		return errors.NotValidf("default namespace %q", s.DefaultNamespace)
	}
	if s.Combine == nil {
		return nil
	}
	for name := range s.Combine.Namespaces {
		if !namespaceRegexp.MatchString(name) {
			return errors.NotValidf("combined namespace %q", name)
		}
	}
	return nil
}

// LoadSettings reads settings from a YAML document.
func LoadSettings(data []byte) (Settings, error) {
	var attrs map[string]interface{}
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return Settings{}, errors.Annotate(err, "parsing settings")
	}
	return NewSettings(attrs)
}

// NewSettings returns the settings held in attrs.
func NewSettings(attrs map[string]interface{}) (Settings, error) {
	cfg, err := config.NewConfig(attrs, settingsFields, settingsDefaults)
	if err != nil {
		return Settings{}, errors.Annotate(err, "validating settings")
	}
	values := cfg.Attributes()
	settings := Settings{
		BaseURL:          values.GetString(BaseURLKey, ""),
		DefaultNamespace: values.GetString(DefaultNamespaceKey, nsrouting.DefaultNamespace),
	}
	names, err := stringList(values.Get(CombineNamespacesKey, nil))
	if err != nil {
		return Settings{}, errors.Annotatef(err, "reading %s", CombineNamespacesKey)
	}
	if len(names) > 0 {
		settings.Combine = nsrouting.CombineNamespaces(names...)
	}
	if values.GetBool(CombineAllKey, false) {
		if settings.Combine == nil {
			settings.Combine = nsrouting.CombineAll()
		}
		settings.Combine.All = true
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, errors.Trace(err)
	}
	return settings, nil
}

func stringList(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.NotValidf("list item %v of type %T", item, item)
			}
			result[i] = s
		}
		return result, nil
	}
	return nil, errors.NotValidf("list of type %T", value)
}
