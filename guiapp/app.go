// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package guiapp wires the namespaced router to the state store: the
// default namespace of every url is loaded into the store and
// dispatched to the view callbacks.
package guiapp

import (
	"net/url"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/juju-gui/core/nsrouting"
	"github.com/juju/juju-gui/core/uistate"
)

var logger = loggo.GetLogger("juju.gui.app")

// loadStateHandler names the handler of the catch-all route.
const loadStateHandler = "loadState"

// Config holds the configuration for an App.
type Config struct {
	Settings Settings

	// Table holds the view callbacks of the application.
	Table *uistate.Table

	// History is the browser history urls are pushed onto.
	History nsrouting.History

	// Logger is passed to the store; it defaults to the store's
	// package logger.
	Logger uistate.Logger

	Clock     clock.Clock
	Collector *uistate.Collector
}

// Validate returns an error if the config cannot be used to create an
// App.
func (config Config) Validate() error {
	if config.Table == nil {
		return errors.NotValidf("nil Table")
	}
	if config.History == nil {
		return errors.NotValidf("nil History")
	}
	return errors.Trace(config.Settings.Validate())
}

// App routes urls into application state.
type App struct {
	router    *nsrouting.Router
	navigator *nsrouting.Navigator
	store     *uistate.Store
	history   nsrouting.History
}

// New returns an App whose default namespace routes load the url into
// the store and dispatch it.
func New(config Config) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	store, err := uistate.NewStore(uistate.StoreConfig{
		BaseURL:   config.Settings.BaseURL,
		Table:     config.Table,
		Logger:    config.Logger,
		Clock:     config.Clock,
		Collector: config.Collector,
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating store")
	}
	router := nsrouting.NewRouter(nsrouting.RouterConfig{
		DefaultNamespace: config.Settings.DefaultNamespace,
		Combine:          config.Settings.Combine,
	})
	app := &App{
		router:    router,
		navigator: nsrouting.NewNavigator(router, config.History),
		store:     store,
		history:   config.History,
	}
	router.Register(loadStateHandler, app.loadState)
	if err := router.Route("*", "", loadStateHandler); err != nil {
		return nil, errors.Trace(err)
	}
	return app, nil
}

// Router returns the router, for registering the routes of other
// namespaces.
func (a *App) Router() *nsrouting.Router {
	return a.router
}

// Store returns the state store.
func (a *App) Store() *uistate.Store {
	return a.store
}

// Start dispatches the current location of the history.
func (a *App) Start() nsrouting.DispatchResult {
	return a.router.Dispatch(a.history.Location(), "start")
}

// Navigate combines the url with the current location and dispatches
// the result.
func (a *App) Navigate(target string) (nsrouting.DispatchResult, error) {
	result, err := a.navigator.Navigate(target, nsrouting.NavigateOptions{})
	return result, errors.Trace(err)
}

// ChangeState navigates to the url of the current state with the
// change applied.
func (a *App) ChangeState(change uistate.Change) (nsrouting.DispatchResult, error) {
	target := a.store.GenerateURL(change)
	result, err := a.navigator.Navigate(target, nsrouting.NavigateOptions{OverrideAllNamespaces: true})
	return result, errors.Trace(err)
}

func (a *App) loadState(req *nsrouting.Request) nsrouting.Outcome {
	query, err := url.ParseQuery(req.Namespaces.Search)
	if err != nil {
		logger.Warningf("ignoring query of %q: %v", req.URL, err)
	}
	path := "/" + strings.TrimPrefix(req.Fragment, "/")
	a.store.LoadRequest(uistate.Request{Path: path, Query: query}, req.Namespaces.Hash)
	a.store.Dispatch()
	return nsrouting.Continue
}
