package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// jsonPayload implements client.Payload for requests carrying a JSON body
// with an arbitrary method (the catalog's batch delete is a DELETE with a
// body, which the stock JSON request does not support).
type jsonPayload struct {
	method string
	body   io.Reader
}

// putPayload implements client.Payload for raw PUT bodies sent to presigned
// upload URLs.
type putPayload struct {
	body        io.Reader
	contentType string
}

var (
	_ client.Payload = (*jsonPayload)(nil)
	_ client.Payload = (*putPayload)(nil)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newJSONPayload(method string, v any) (*jsonPayload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &jsonPayload{method: method, body: bytes.NewReader(data)}, nil
}

///////////////////////////////////////////////////////////////////////////////
// INTERFACE IMPLEMENTATION

func (p *jsonPayload) Method() string {
	return p.method
}

func (p *jsonPayload) Accept() string {
	return types.ContentTypeJSON
}

func (p *jsonPayload) Type() string {
	return types.ContentTypeJSON
}

func (p *jsonPayload) Read(b []byte) (int, error) {
	return p.body.Read(b)
}

func (p *putPayload) Method() string {
	return http.MethodPut
}

func (p *putPayload) Accept() string {
	return "" // presigned endpoints return an empty body
}

func (p *putPayload) Type() string {
	if p.contentType != "" {
		return p.contentType
	}
	return types.ContentTypeBinary
}

func (p *putPayload) Read(b []byte) (int, error) {
	return p.body.Read(b)
}
