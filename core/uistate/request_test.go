// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate_test

import (
	"net/url"

	jc "github.com/juju/testing/checkers"
	"github.com/kr/pretty"
	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/core/uistate"
	coretesting "github.com/juju/juju-gui/testing"
)

type requestSuite struct {
	coretesting.BaseSuite
}

var _ = gc.Suite(&requestSuite{})

func (s *requestSuite) newStore(c *gc.C, baseURL string) *uistate.Store {
	store, err := uistate.NewStore(uistate.StoreConfig{
		BaseURL: baseURL,
		Table:   &uistate.Table{},
		Logger:  coretesting.NewCheckLogger(c),
	})
	c.Assert(err, jc.ErrorIsNil)
	return store
}

func (s *requestSuite) TestSplitIntoComponents(c *gc.C) {
	for i, test := range []struct {
		path   string
		expect []string
	}{
		{"", []string{""}},
		{"precise/mysql-38", []string{"precise/mysql-38"}},
		{"inspector/apache2", []string{"inspector/apache2"}},
		{"machine/3/lxc-0/inspector/apache2", []string{"machine/3/lxc-0", "inspector/apache2"}},
		{
			"precise/apache2-13/machine/3/lxc-0/deploy/summary",
			[]string{"precise/apache2-13", "machine/3/lxc-0", "deploy/summary"},
		},
		{"applications/machine/account", []string{"applications", "machine", "account"}},
	} {
		c.Logf("%d: %s", i, test.path)
		c.Check(uistate.SplitIntoComponents(test.path), jc.DeepEquals, test.expect)
	}
}

func (s *requestSuite) TestSanitiseHash(c *gc.C) {
	c.Assert(uistate.SanitiseHash("bws_foo"), gc.Equals, "foo")
	c.Assert(uistate.SanitiseHash("readme"), gc.Equals, "readme")
	c.Assert(uistate.SanitiseHash("#undefined"), gc.Equals, "")
	c.Assert(uistate.SanitiseHash(""), gc.Equals, "")
}

func inspector(md uistate.Metadata) uistate.Section {
	return uistate.Section{Component: uistate.Inspector, Metadata: md}
}

func charmbrowser(md uistate.Metadata) uistate.Section {
	return uistate.Section{Component: uistate.CharmBrowser, Metadata: md}
}

var loadRequestTests = []struct {
	path   string
	query  url.Values
	hash   string
	expect uistate.State
}{{
	path:   "/",
	expect: uistate.State{},
}, {
	path: "/inspector/wordpress/config/",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{"id": "wordpress", "activeComponent": "config"}),
	},
}, {
	path: "/inspector/wordpress/relate-to/mysql/",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{
			"id":              "wordpress",
			"activeComponent": "relate-to",
			"relate-to":       "mysql",
		}),
	},
}, {
	path: "/inspector/service123/unit/13/",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{
			"id":              "service123",
			"activeComponent": "unit",
			"unit":            "13",
		}),
	},
}, {
	path: "/inspector/service123/units/uncommitted/5/",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{
			"id":              "service123",
			"activeComponent": "units",
			"unitStatus":      "uncommitted",
			"unit":            "5",
		}),
	},
}, {
	path: "/inspector/service123/charm",
	hash: "relations",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{
			"id":              "service123",
			"activeComponent": "charm",
			"charm":           true,
			"hash":            "relations",
		}),
	},
}, {
	path: "/inspector/local/new/",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{"localType": "new"}),
	},
}, {
	path: "/inspector/profile",
	expect: uistate.State{
		SectionA: uistate.Section{Component: uistate.Inspector},
		SectionB: uistate.Section{Component: uistate.Profile},
	},
}, {
	path: "/precise/mysql-38/",
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"id": "precise/mysql-38"}),
	},
}, {
	path: "/bundle/~charmers/mediawiki/6/single/",
	hash: "bws_readme",
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{
			"id":   "bundle/~charmers/mediawiki/6/single",
			"hash": "readme",
		}),
	},
}, {
	path: "/fullscreen/~prismakov/trusty/cf-dea-1/",
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"id": "~prismakov/trusty/cf-dea-1"}),
	},
}, {
	path: "/sidebar/precise/mysql-38/",
	hash: "#undefined",
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"id": "precise/mysql-38"}),
	},
}, {
	path:   "/search/",
	expect: uistate.State{},
}, {
	path: "/search/precise/cassandra-1/",
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"id": "precise/cassandra-1"}),
	},
}, {
	path:  "/",
	query: url.Values{"search": {"apache"}, "type": {"charm"}},
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{
			"activeComponent": "search-results",
			"search":          "apache",
			"type":            "charm",
		}),
	},
}, {
	path:  "/sidebar/search/precise/apache2-19/",
	query: url.Values{"search": {"apache"}},
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{
			"activeComponent": "search-results",
			"search":          "apache",
		}),
	},
}, {
	path:  "/machine/3/",
	query: url.Values{"search": {""}, "owner": {"charmers"}},
	expect: uistate.State{
		SectionB: uistate.Section{Component: uistate.Machine, Metadata: uistate.Metadata{"id": "3"}},
		SectionC: charmbrowser(uistate.Metadata{
			"activeComponent": "search-results",
			"search":          "",
			"owner":           "charmers",
		}),
	},
}, {
	path:  "/",
	query: url.Values{"midpoint": {""}},
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"activeComponent": "mid-point"}),
	},
}, {
	path:  "/",
	query: url.Values{"store": {""}, "midpoint": {""}},
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"activeComponent": "store"}),
	},
}, {
	path:  "/",
	query: url.Values{"store": {"bundle/mediawiki/6/single"}, "search": {"wiki"}},
	expect: uistate.State{
		SectionC: charmbrowser(uistate.Metadata{
			"activeComponent": "entity-details",
			"id":              "bundle/mediawiki/6/single",
		}),
	},
}, {
	path:  "/",
	query: url.Values{"deploy-target": {"bundle:foo/5/bar"}},
	expect: uistate.State{
		App: uistate.AppSection{DeployTarget: "bundle:foo/5/bar"},
	},
}, {
	path:  "/machine/",
	query: url.Values{"deploy-target": {"bundle:foo/5/bar"}},
	expect: uistate.State{
		App:      uistate.AppSection{DeployTarget: "bundle:foo/5/bar"},
		SectionB: uistate.Section{Component: uistate.Machine},
	},
}, {
	path: "/deploy/",
	expect: uistate.State{
		SectionC: uistate.Section{Component: uistate.Deploy},
	},
}, {
	path: "/inspector/apache2/machine/3/lxc-0/deploy/foo",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{"id": "apache2"}),
		SectionB: uistate.Section{
			Component: uistate.Machine,
			Metadata:  uistate.Metadata{"id": "3", "container": "lxc-0"},
		},
		SectionC: uistate.Section{
			Component: uistate.Deploy,
			Metadata:  uistate.Metadata{"activeComponent": "foo"},
		},
	},
}, {
	path:  "/inspector/apache2/machine/3/lxc-0/deploy/foo/",
	query: url.Values{"search": {"spinach"}},
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{"id": "apache2"}),
		SectionB: uistate.Section{
			Component: uistate.Machine,
			Metadata:  uistate.Metadata{"id": "3", "container": "lxc-0"},
		},
		SectionC: charmbrowser(uistate.Metadata{
			"activeComponent": "search-results",
			"search":          "spinach",
		}),
	},
}, {
	path: "/machine/3/lxc-0/inspector/apache2",
	expect: uistate.State{
		SectionA: inspector(uistate.Metadata{"id": "apache2"}),
		SectionB: uistate.Section{
			Component: uistate.Machine,
			Metadata:  uistate.Metadata{"id": "3", "container": "lxc-0"},
		},
	},
}, {
	path: "/applications/machine/account",
	expect: uistate.State{
		SectionA: uistate.Section{Component: uistate.Applications},
		SectionB: uistate.Section{Component: uistate.Account},
	},
}, {
	path: "/services/machine/profile",
	expect: uistate.State{
		SectionA: uistate.Section{Component: uistate.Services},
		SectionB: uistate.Section{Component: uistate.Profile},
	},
}, {
	path: "login",
	expect: uistate.State{
		App: uistate.AppSection{Component: uistate.Login},
	},
}, {
	path:  "/inspector",
	query: url.Values{"search": {"hadoop"}},
	expect: uistate.State{
		SectionA: uistate.Section{Component: uistate.Inspector},
		SectionC: charmbrowser(uistate.Metadata{
			"activeComponent": "search-results",
			"search":          "hadoop",
		}),
	},
}}

func (s *requestSuite) TestLoadRequest(c *gc.C) {
	store := s.newStore(c, "")
	for i, test := range loadRequestTests {
		c.Logf("%d: %s?%s#%s", i, test.path, test.query.Encode(), test.hash)
		state := store.LoadRequest(uistate.Request{Path: test.path, Query: test.query}, test.hash)
		c.Check(state, jc.DeepEquals, test.expect, gc.Commentf("%# v", pretty.Formatter(state)))
		c.Check(store.Current(), jc.DeepEquals, test.expect)
	}
}

func (s *requestSuite) TestLoadRequestBaseURL(c *gc.C) {
	store := s.newStore(c, "/foo")
	state := store.LoadRequest(uistate.Request{Path: "/foo/precise/mysql-38/"}, "")
	c.Assert(state, jc.DeepEquals, uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"id": "precise/mysql-38"}),
	})
}

func (s *requestSuite) TestLoadRequestSavesWithoutDispatching(c *gc.C) {
	var calls int
	store, err := uistate.NewStore(uistate.StoreConfig{
		Table: &uistate.Table{
			SectionA: uistate.SectionTable{
				Empty: func() { calls++ },
				Components: map[string]uistate.Callback{
					uistate.Inspector: func(uistate.Metadata) { calls++ },
				},
			},
		},
	})
	c.Assert(err, jc.ErrorIsNil)

	store.LoadRequest(uistate.Request{Path: "/precise/mysql/"}, "")
	store.LoadRequest(uistate.Request{Path: "/inspector/mysql/"}, "")
	c.Assert(calls, gc.Equals, 0)
	c.Assert(store.Previous(), jc.DeepEquals, uistate.State{
		SectionC: charmbrowser(uistate.Metadata{"id": "precise/mysql"}),
	})
	c.Assert(store.HasChanged(uistate.SectionA, uistate.FieldComponent), jc.IsTrue)
}

func (s *requestSuite) TestLoadRequestCopiesFlashIntoInspector(c *gc.C) {
	store := s.newStore(c, "")
	store.SetFlash(map[string]interface{}{"file": "charm.zip"})
	state := store.LoadRequest(uistate.Request{Path: "/inspector/local/upgrade/"}, "")
	c.Assert(state.SectionA.Metadata, jc.DeepEquals, uistate.Metadata{
		"localType": "upgrade",
		"flash":     map[string]interface{}{"file": "charm.zip"},
	})
}
