// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/core/nsrouting"
)

type routerSuite struct {
	testing.IsolationSuite

	router   *nsrouting.Router
	requests []*nsrouting.Request
}

var _ = gc.Suite(&routerSuite{})

func (s *routerSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.router = nsrouting.NewRouter(nsrouting.RouterConfig{})
	s.requests = nil
}

func (s *routerSuite) register(name string, outcome nsrouting.Outcome) {
	s.router.Register(name, func(req *nsrouting.Request) nsrouting.Outcome {
		s.requests = append(s.requests, req)
		return outcome
	})
}

func (s *routerSuite) TestDispatchRoot(c *gc.C) {
	s.register("home", nsrouting.Continue)
	err := s.router.Route("/", "", "home")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"home"})
	c.Assert(result.Aborted, jc.IsFalse)
	c.Assert(s.requests, gc.HasLen, 1)
	c.Assert(s.requests[0].Namespace, gc.Equals, "default")
	c.Assert(s.requests[0].Fragment, gc.Equals, "/")
	c.Assert(s.requests[0].Source, gc.Equals, "test")
}

func (s *routerSuite) TestDispatchNamedParams(c *gc.C) {
	s.register("charm", nsrouting.Continue)
	err := s.router.Route("/charms/:series/:name/", "", "charm")
	c.Assert(err, jc.ErrorIsNil)

	s.router.Dispatch("/charms/precise/wordpress/", "test")
	c.Assert(s.requests, gc.HasLen, 1)
	c.Assert(s.requests[0].Params, jc.DeepEquals, map[string]string{
		"series": "precise",
		"name":   "wordpress",
	})
	c.Assert(s.requests[0].Matches, jc.DeepEquals, []string{
		"/charms/precise/wordpress/", "precise", "wordpress",
	})
}

func (s *routerSuite) TestDispatchSplatParam(c *gc.C) {
	s.register("charm", nsrouting.Continue)
	err := s.router.Route("/charms/*path", "", "charm")
	c.Assert(err, jc.ErrorIsNil)

	s.router.Dispatch("/charms/precise/wordpress/", "test")
	c.Assert(s.requests, gc.HasLen, 1)
	c.Assert(s.requests[0].Params, jc.DeepEquals, map[string]string{"path": "precise/wordpress"})
}

func (s *routerSuite) TestDispatchDefaultNamespaceFirst(c *gc.C) {
	s.register("default", nsrouting.Continue)
	s.register("inspect", nsrouting.Continue)
	s.register("machines", nsrouting.Continue)
	err := s.router.SetRoutes([]nsrouting.RouteSpec{
		{Path: "/service/:id/", Namespace: "inspector", Callbacks: []string{"inspect"}},
		{Path: "/machines/", Namespace: "gui", Callbacks: []string{"machines"}},
		{Path: "*", Callbacks: []string{"default"}},
	})
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/foo/:inspector:/service/wordpress/:gui:/machines/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"default", "machines", "inspect"})
	c.Assert(result.Aborted, jc.IsFalse)
	c.Assert(s.requests[2].Params, jc.DeepEquals, map[string]string{"id": "wordpress"})
}

func (s *routerSuite) TestDispatchUnmatchedFragmentEndsDispatch(c *gc.C) {
	s.register("home", nsrouting.Continue)
	s.register("inspect", nsrouting.Continue)
	err := s.router.Route("/", "", "home")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("*", "inspector", "inspect")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/:gui:/x/:inspector:/service/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"home"})
	c.Assert(result.Aborted, jc.IsTrue)
	c.Assert(result.Diagnostics, jc.DeepEquals, []nsrouting.Diagnostic{{
		Namespace: "gui",
		Message:   `no route matches "/x/"`,
	}})
}

func (s *routerSuite) TestSkipRouteAbandonsOnlyCurrentRoute(c *gc.C) {
	s.register("skipper", nsrouting.SkipRoute)
	s.register("after", nsrouting.Continue)
	s.register("other", nsrouting.Continue)
	err := s.router.Route("*", "", "skipper", "after")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("*", "", "other")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/foo/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"skipper", "other"})
	c.Assert(result.Aborted, jc.IsFalse)
}

func (s *routerSuite) TestAbortStopsDispatch(c *gc.C) {
	s.register("aborter", nsrouting.Abort)
	s.register("other", nsrouting.Continue)
	err := s.router.Route("*", "", "aborter")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("*", "", "other")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("*", "inspector", "other")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/foo/:inspector:/service/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"aborter"})
	c.Assert(result.Aborted, jc.IsTrue)
}

func (s *routerSuite) TestHandlerRunsOncePerDispatch(c *gc.C) {
	s.register("shared", nsrouting.Continue)
	err := s.router.Route("*", "", "shared")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("/x/", "inspector", "shared")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/foo/:inspector:/x/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"shared"})
	c.Assert(result.Aborted, jc.IsFalse)

	// A new dispatch starts with a clean slate.
	result = s.router.Dispatch("/foo/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"shared"})
}

func (s *routerSuite) TestDispatchCombinedNamespace(c *gc.C) {
	s.router = nsrouting.NewRouter(nsrouting.RouterConfig{
		Combine: nsrouting.CombineNamespaces("a"),
	})
	s.register("home", nsrouting.Continue)
	s.register("first", nsrouting.Continue)
	s.register("second", nsrouting.Continue)
	err := s.router.Route("/", "", "home")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("/1/", "a", "first")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("/2/", "a", "second")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/:a:1/:a:2/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"home", "first", "second"})
	c.Assert(result.Namespaces.Fragments("a"), jc.DeepEquals, []string{"1/", "2/"})
}

func (s *routerSuite) TestDispatchReportsParseDiagnostics(c *gc.C) {
	s.register("any", nsrouting.Continue)
	err := s.router.Route("*", "", "any")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("*", "a", "any")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/:a:1/:a:2/", "test")
	c.Assert(result.Diagnostics, jc.DeepEquals, []nsrouting.Diagnostic{{
		Namespace: "a",
		Message:   `fragment "1/" replaced by "2/"`,
	}})
}

func (s *routerSuite) TestCustomDefaultNamespace(c *gc.C) {
	s.router = nsrouting.NewRouter(nsrouting.RouterConfig{DefaultNamespace: "charmbrowser"})
	s.register("browse", nsrouting.Continue)
	err := s.router.Route("/:id/", "", "browse")
	c.Assert(err, jc.ErrorIsNil)

	result := s.router.Dispatch("/mysql/", "test")
	c.Assert(result.Executed, jc.DeepEquals, []string{"browse"})
	c.Assert(s.requests[0].Namespace, gc.Equals, "charmbrowser")
	c.Assert(s.requests[0].Params, jc.DeepEquals, map[string]string{"id": "mysql"})
}

func (s *routerSuite) TestRouteUnknownHandler(c *gc.C) {
	err := s.router.Route("/", "", "missing")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
	c.Assert(err, gc.ErrorMatches, `handler "missing" for route "/" not found`)
}

func (s *routerSuite) TestRouteInvalid(c *gc.C) {
	err := s.router.Route("", "", "home")
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
	err = s.router.Route("/", "")
	c.Assert(err, gc.ErrorMatches, `route "/" with no callbacks not valid`)
}

func (s *routerSuite) TestSetRoutesReplacesTable(c *gc.C) {
	s.register("home", nsrouting.Continue)
	s.register("inspect", nsrouting.Continue)
	err := s.router.Route("/", "", "home")
	c.Assert(err, jc.ErrorIsNil)

	err = s.router.SetRoutes([]nsrouting.RouteSpec{
		{Path: "/service/:id/", Namespace: "inspector", Callbacks: []string{"inspect"}},
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(s.router.Routes(), jc.DeepEquals, []nsrouting.RouteSpec{{
		Path:      "/service/:id/",
		Namespace: "inspector",
		Callbacks: []string{"_routeStateTracker", "inspect"},
	}})

	err = s.router.SetRoutes([]nsrouting.RouteSpec{
		{Path: "/", Callbacks: []string{"home"}},
		{Path: "/", Callbacks: []string{"missing"}},
	})
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
	c.Assert(s.router.Routes(), gc.HasLen, 1)
}

func (s *routerSuite) TestMatch(c *gc.C) {
	s.register("home", nsrouting.Continue)
	s.register("inspect", nsrouting.Continue)
	err := s.router.Route("/", "", "home")
	c.Assert(err, jc.ErrorIsNil)
	err = s.router.Route("/service/:id/", "inspector", "inspect")
	c.Assert(err, jc.ErrorIsNil)

	routes := s.router.Match("/", "")
	c.Assert(routes, gc.HasLen, 1)
	c.Assert(routes[0].Path(), gc.Equals, "/")
	c.Assert(routes[0].Namespace(), gc.Equals, "default")

	c.Assert(s.router.Match("/service/mysql", "inspector"), gc.HasLen, 1)
	c.Assert(s.router.Match("service/mysql/", "inspector")[0].Keys(), jc.DeepEquals, []string{"id"})
	c.Assert(s.router.Match("/service/mysql/", ""), gc.HasLen, 0)
	c.Assert(s.router.Match("/service/mysql/unit/", "inspector"), gc.HasLen, 0)
}

func (s *routerSuite) TestOutcomeString(c *gc.C) {
	c.Assert(nsrouting.Continue.String(), gc.Equals, "continue")
	c.Assert(nsrouting.SkipRoute.String(), gc.Equals, "skip-route")
	c.Assert(nsrouting.Abort.String(), gc.Equals, "abort")
	c.Assert(nsrouting.Outcome(7).String(), gc.Equals, "outcome(7)")
}
