// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	"net/url"

	"github.com/google/go-querystring/query"
	"github.com/juju/errors"
)

// filterKeys are the search filters, in the order they are rendered
// into urls.
var filterKeys = []string{"tags", "type", "sort", "series", "provides", "requires", "owner"}

// Filter is a charm browser search: the search text and the filters
// narrowing it.
type Filter struct {
	Text     string `mapstructure:"search" url:"search"`
	Tags     string `mapstructure:"tags" url:"tags,omitempty"`
	Type     string `mapstructure:"type" url:"type,omitempty"`
	Sort     string `mapstructure:"sort" url:"sort,omitempty"`
	Series   string `mapstructure:"series" url:"series,omitempty"`
	Provides string `mapstructure:"provides" url:"provides,omitempty"`
	Requires string `mapstructure:"requires" url:"requires,omitempty"`
	Owner    string `mapstructure:"owner" url:"owner,omitempty"`
}

// NewFilter returns the filter described by the query values.
func NewFilter(values url.Values) Filter {
	var f Filter
	f.Update(values)
	return f
}

func (f *Filter) fields() map[string]*string {
	return map[string]*string{
		searchKey:  &f.Text,
		"tags":     &f.Tags,
		"type":     &f.Type,
		"sort":     &f.Sort,
		"series":   &f.Series,
		"provides": &f.Provides,
		"requires": &f.Requires,
		"owner":    &f.Owner,
	}
}

// Update sets every field present in the query values. The legacy
// "text" key sets the search text unless "search" is also present.
func (f *Filter) Update(values url.Values) {
	if _, ok := values["text"]; ok {
		f.Text = values.Get("text")
	}
	for key, field := range f.fields() {
		if _, ok := values[key]; ok {
			*field = values.Get(key)
		}
	}
}

// Clear resets the filter.
func (f *Filter) Clear() {
	*f = Filter{}
}

// QueryValues returns the filter as query values. The search text is
// always present; empty filters are left out.
func (f Filter) QueryValues() (url.Values, error) {
	values, err := query.Values(f)
	if err != nil {
		return nil, errors.Annotate(err, "encoding search filter")
	}
	return values, nil
}

// queryPairs returns the filter as ordered query pairs.
func (f Filter) queryPairs() ([]queryPair, error) {
	values, err := f.QueryValues()
	if err != nil {
		return nil, errors.Trace(err)
	}
	pairs := []queryPair{{key: searchKey, value: values.Get(searchKey)}}
	for _, key := range filterKeys {
		if value := values.Get(key); value != "" {
			pairs = append(pairs, queryPair{key: key, value: value})
		}
	}
	return pairs, nil
}
