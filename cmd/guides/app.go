package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	// Packages
	token "github.com/chalpu/go-guides/pkg/token"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	Endpoint string `env:"GUIDES_ENDPOINT" default:"http://localhost:8080/" help:"Service endpoint"`
	Debug    bool   `help:"Enable debug output"`
	Trace    bool   `help:"Enable trace output"`

	ctx    context.Context
	cancel context.CancelFunc
	store  token.Store
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewApp(app Globals) (*Globals, error) {
	// Select the credential store: environment first, then the config file
	store, err := token.Detect(token.EnvToken, "")
	if err != nil {
		return nil, err
	}
	app.store = store

	// Create the context
	// This context is cancelled when the process receives a SIGINT or SIGTERM
	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Return the app
	return &app, nil
}

func (app *Globals) Close() error {
	app.cancel()
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (app *Globals) Context() context.Context {
	return app.ctx
}

func (app *Globals) GetEndpoint() *url.URL {
	if url, err := url.Parse(app.Endpoint); err == nil {
		return url
	}
	return nil
}

func (app *Globals) GetDebug() bool {
	return app.Debug || app.Trace
}
