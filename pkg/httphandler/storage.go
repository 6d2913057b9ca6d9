package httphandler

import (
	"net/http"
	"strconv"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"

	manager "github.com/chalpu/go-guides/pkg/manager"
	schema "github.com/chalpu/go-guides/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /storage/{key...}
// PUT stores one asset under its issued key. Authorization is the exp/sig
// query pair issued with the upload URL, never a bearer token.
func StorageHandler(mgr *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return schema.StoragePrefix + "/{key...}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut:
				_ = storagePut(w, r, mgr)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Put: &openapi.Operation{
				Description: "Store one uploaded asset under its issued key",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func storagePut(w http.ResponseWriter, r *http.Request, mgr *manager.Manager) error {
	key := r.PathValue("key")
	query := r.URL.Query()

	// Verify the signed exp/sig pair before touching the body
	exp, err := strconv.ParseInt(query.Get("exp"), 10, 64)
	if err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest.With("missing or invalid exp"))
	}
	if err := mgr.VerifyUpload(key, exp, query.Get("sig")); err != nil {
		return httpresponse.Error(w, err)
	}

	contentType := r.Header.Get(types.ContentTypeHeader)
	if contentType == "" {
		contentType = types.ContentTypeBinary
	}
	if _, err := mgr.PutObject(r.Context(), key, contentType, r.Body); err != nil {
		return httpresponse.Error(w, err)
	}

	// Mirror object storage: a bare 200 with no body
	w.WriteHeader(http.StatusOK)
	return nil
}
