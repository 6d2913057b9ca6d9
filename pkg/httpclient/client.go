package httpclient

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	token "github.com/chalpu/go-guides/pkg/token"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a guide catalog HTTP client that wraps the base HTTP client and
// provides typed methods for the catalog API. Authenticated calls carry the
// operator credential from the token store as a bearer header; the storage
// client never does, since presigned upload URLs embed their own
// authorization and reject an extra Authorization header.
type Client struct {
	*client.Client
	storage *client.Client
	store   token.Store
	notify  token.Notifier
}

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// parallelDetails is the maximum number of concurrent detail requests issued
// by GetGuideDetails.
const parallelDetails = 10

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new catalog HTTP client with the given base URL and options.
// The url parameter should point to the service root, e.g.
// "http://localhost:8080". The store supplies the operator credential and
// may be nil for unauthenticated use (the development server's read paths).
func New(url string, store token.Store, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	cl, err := client.New(append(opts, client.OptEndpoint(url))...)
	if err != nil {
		return nil, err
	}
	storage, err := client.New(append(opts, client.OptEndpoint(url))...)
	if err != nil {
		return nil, err
	}
	c.Client = cl
	c.storage = storage
	c.store = store
	return c, nil
}

// OnCredentialInvalid registers a callback invoked when a probe finds the
// stored credential rejected by the backend, so a hosting shell can clear
// its own session state. A nil callback removes the registration.
func (c *Client) OnCredentialInvalid(fn token.Notifier) {
	c.notify = fn
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// authOpts returns the per-request options carrying the bearer credential,
// or no options when no credential is stored.
func (c *Client) authOpts() ([]client.RequestOpt, error) {
	if c.store == nil {
		return nil, nil
	}
	tok, err := c.store.Token()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, nil
	}
	return []client.RequestOpt{
		client.OptReqHeader("Authorization", token.Bearer(tok)),
	}, nil
}
