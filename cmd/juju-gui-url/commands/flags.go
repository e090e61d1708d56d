// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/juju-gui/core/nsrouting"
	"github.com/juju/juju-gui/guiapp"
)

// structuredFormatters format command results holding more than a
// single value.
var structuredFormatters = map[string]cmd.Formatter{
	"yaml": cmd.FormatYaml,
	"json": cmd.FormatJson,
}

// namespaceFlags select how urls are parsed.
type namespaceFlags struct {
	defaultNamespace string
	combine          string
	combineAll       bool
}

func (n *namespaceFlags) addFlags(f *gnuflag.FlagSet) {
	f.StringVar(&n.defaultNamespace, "default-namespace", nsrouting.DefaultNamespace, "Namespace of the untagged url head")
	f.StringVar(&n.combine, "combine", "", "Comma separated namespaces whose repeated fragments are all kept")
	f.BoolVar(&n.combineAll, "combine-all", false, "Keep the repeated fragments of every namespace")
}

func (n *namespaceFlags) settings() guiapp.Settings {
	settings := guiapp.Settings{DefaultNamespace: n.defaultNamespace}
	var names []string
	for _, name := range strings.Split(n.combine, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		settings.Combine = nsrouting.CombineNamespaces(names...)
	}
	if n.combineAll {
		if settings.Combine == nil {
			settings.Combine = nsrouting.CombineAll()
		}
		settings.Combine.All = true
	}
	return settings
}

func (n *namespaceFlags) validate() error {
	return errors.Trace(n.settings().Validate())
}

func (n *namespaceFlags) codec() nsrouting.Codec {
	return nsrouting.NewCodec(n.defaultNamespace)
}

// normaliseYAML turns the maps of a decoded YAML document into maps
// keyed by strings.
func normaliseYAML(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, item := range v {
			name, ok := key.(string)
			if !ok {
				return nil, errors.NotValidf("key %v of type %T", key, key)
			}
			normalised, err := normaliseYAML(item)
			if err != nil {
				return nil, errors.Annotatef(err, "%s", name)
			}
			result[name] = normalised
		}
		return result, nil
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for name, item := range v {
			normalised, err := normaliseYAML(item)
			if err != nil {
				return nil, errors.Annotatef(err, "%s", name)
			}
			result[name] = normalised
		}
		return result, nil
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			normalised, err := normaliseYAML(item)
			if err != nil {
				return nil, errors.Trace(err)
			}
			result[i] = normalised
		}
		return result, nil
	}
	return value, nil
}
