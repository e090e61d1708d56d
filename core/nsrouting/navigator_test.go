// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nsrouting_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/core/nsrouting"
	"github.com/juju/juju-gui/core/nsrouting/mocks"
)

type navigatorSuite struct {
	testing.IsolationSuite

	history *mocks.MockHistory
	router  *nsrouting.Router
}

var _ = gc.Suite(&navigatorSuite{})

func (s *navigatorSuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.history = mocks.NewMockHistory(ctrl)

	s.router = nsrouting.NewRouter(nsrouting.RouterConfig{})
	noop := func(*nsrouting.Request) nsrouting.Outcome { return nsrouting.Continue }
	s.router.Register("home", noop)
	s.router.Register("panel", noop)
	err := s.router.SetRoutes([]nsrouting.RouteSpec{
		{Path: "*", Callbacks: []string{"home"}},
		{Path: "*", Namespace: "a", Callbacks: []string{"panel"}},
	})
	c.Assert(err, jc.ErrorIsNil)
	return ctrl
}

func (s *navigatorSuite) TestNavigateCombinesWithLocation(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.history.EXPECT().Location().Return("/foo/:a:1/")
	s.history.EXPECT().Push("/bar/:a:1/").Return(nil)

	navigator := nsrouting.NewNavigator(s.router, s.history)
	result, err := navigator.Navigate("/bar/", nsrouting.NavigateOptions{})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(result.Executed, jc.DeepEquals, []string{"home", "panel"})
	c.Assert(result.Namespaces.Get("default"), gc.Equals, "bar/")
}

func (s *navigatorSuite) TestNavigateOverrideAllNamespaces(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.history.EXPECT().Push("/bar/").Return(nil)

	navigator := nsrouting.NewNavigator(s.router, s.history)
	result, err := navigator.Navigate("/bar/", nsrouting.NavigateOptions{OverrideAllNamespaces: true})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(result.Executed, jc.DeepEquals, []string{"home"})
}

func (s *navigatorSuite) TestNavigateKeepsIncomingQuery(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.history.EXPECT().Location().Return("/foo/?old=1")
	s.history.EXPECT().Push("/foo/:a:2/?search=mysql").Return(nil)

	navigator := nsrouting.NewNavigator(s.router, s.history)
	_, err := navigator.Navigate("/:a:2/?search=mysql", nsrouting.NavigateOptions{})
	c.Assert(err, jc.ErrorIsNil)
}

func (s *navigatorSuite) TestNavigatePushError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.history.EXPECT().Push("/bar/").Return(errors.New("boom"))

	navigator := nsrouting.NewNavigator(s.router, s.history)
	_, err := navigator.Navigate("/bar/", nsrouting.NavigateOptions{OverrideAllNamespaces: true})
	c.Assert(err, gc.ErrorMatches, `pushing "/bar/": boom`)
}
