package main

import (
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"

	httpclient "github.com/chalpu/go-guides/pkg/httpclient"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client builds a catalog HTTP client from the global flags.
func (g *Globals) Client() (*httpclient.Client, error) {
	opts := []client.ClientOpt{}
	if g.GetDebug() {
		opts = append(opts, client.OptTrace(os.Stderr, g.Trace))
	}
	return httpclient.New(g.Endpoint, g.store, opts...)
}
