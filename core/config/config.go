// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config holds attribute maps validated against a schema.
package config

import (
	"fmt"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
)

// ConfigAttributes is the raw form of a Config.
type ConfigAttributes map[string]interface{}

// Config holds attributes coerced by a schema.
type Config struct {
	attributes ConfigAttributes
}

// KnownConfigKeys returns the keys the fields describe.
func KnownConfigKeys(fields environschema.Fields) set.Strings {
	keys := set.NewStrings()
	for name := range fields {
		keys.Add(name)
	}
	return keys
}

// NewConfig returns the attributes coerced by the fields, with the
// defaults filled in. Keys the fields do not describe are an error.
func NewConfig(attrs map[string]interface{}, fields environschema.Fields, defaults schema.Defaults) (*Config, error) {
	known := KnownConfigKeys(fields)
	for name, value := range attrs {
		if !known.Contains(name) {
			return nil, errors.Errorf("unknown key %q (value %#v)", name, value)
		}
	}
	checker, err := schemaChecker(fields, defaults)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	coerced, err := checker.Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	result := make(ConfigAttributes)
	for name, value := range coerced.(map[string]interface{}) {
		result[name] = value
	}
	return &Config{attributes: result}, nil
}

func schemaChecker(fields environschema.Fields, defaults schema.Defaults) (schema.Checker, error) {
	validation, validationDefaults, err := fields.ValidationSchema()
	if err != nil {
		return nil, errors.Annotate(err, "building config schema")
	}
	if validationDefaults == nil {
		validationDefaults = make(schema.Defaults)
	}
	for name, value := range defaults {
		validationDefaults[name] = value
	}
	return schema.StrictFieldMap(validation, validationDefaults), nil
}

// Attributes returns a copy of the attributes, or nil for a nil
// config.
func (c *Config) Attributes() ConfigAttributes {
	if c == nil {
		return nil
	}
	result := make(ConfigAttributes, len(c.attributes))
	for name, value := range c.attributes {
		result[name] = value
	}
	return result
}

// Get returns the named attribute, or the default when it is unset.
func (c ConfigAttributes) Get(attrName string, defaultValue interface{}) interface{} {
	if val, ok := c[attrName]; ok {
		return val
	}
	return defaultValue
}

// GetString returns the named string attribute.
func (c ConfigAttributes) GetString(attrName string, defaultValue string) string {
	if val, ok := c[attrName]; ok {
		return fmt.Sprint(val)
	}
	return defaultValue
}

// GetInt returns the named integer attribute.
func (c ConfigAttributes) GetInt(attrName string, defaultValue int) int {
	switch val := c[attrName].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return defaultValue
}

// GetBool returns the named boolean attribute.
func (c ConfigAttributes) GetBool(attrName string, defaultValue bool) bool {
	if val, ok := c[attrName].(bool); ok {
		return val
	}
	return defaultValue
}

// GetStringMap returns the named string map attribute.
func (c ConfigAttributes) GetStringMap(attrName string, defaultValue map[string]string) (map[string]string, error) {
	val, ok := c[attrName]
	if !ok || val == nil {
		return defaultValue, nil
	}
	switch m := val.(type) {
	case map[string]string:
		return m, nil
	case map[string]interface{}:
		result := make(map[string]string, len(m))
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return nil, errors.NotValidf("string map value %q of type %T", k, v)
			}
			result[k] = s
		}
		return result, nil
	}
	return nil, errors.NotValidf("string map value of type %T", val)
}
