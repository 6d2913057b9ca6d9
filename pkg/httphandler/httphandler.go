// Package httphandler exposes the guide catalog REST contract over a
// manager: paginated listing, detail lookup, presigned upload URL
// issuance, registration, batch deletion and the self-signed asset PUT
// endpoint used by the mem:// and file:// storage modes.
package httphandler

import (
	"errors"
	"net/http"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"

	manager "github.com/chalpu/go-guides/pkg/manager"
	token "github.com/chalpu/go-guides/pkg/token"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is the interface required to register HTTP handlers.
type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers all guide HTTP handlers on the provided router.
// When adminToken is not empty, the catalog endpoints require it as a bearer
// token. The storage PUT endpoint never reads the Authorization header; its
// URLs carry their own signature.
func RegisterHandlers(mgr *manager.Manager, router Router, adminToken string) error {
	var result error
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.RegisterFunc(path, handler, true, spec))
	}
	register(GuideHandler(mgr, adminToken))
	register(GuideDetailHandler(mgr, adminToken))
	register(PresignHandler(mgr, adminToken))
	register(StorageHandler(mgr))
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func authorize(r *http.Request, adminToken string) error {
	if adminToken == "" {
		return nil
	}
	if r.Header.Get("Authorization") != token.Bearer(adminToken) {
		return httpresponse.Err(http.StatusUnauthorized).With("missing or invalid bearer token")
	}
	return nil
}
