package httphandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"

	manager "github.com/chalpu/go-guides/pkg/manager"
	schema "github.com/chalpu/go-guides/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /api/guides
// GET lists guides page by page, POST registers uploaded assets as a guide,
// DELETE removes a batch of guides by id.
func GuideHandler(mgr *manager.Manager, adminToken string) (string, http.HandlerFunc, *openapi.PathItem) {
	return schema.APIPrefix, func(w http.ResponseWriter, r *http.Request) {
			if err := authorize(r, adminToken); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			switch r.Method {
			case http.MethodGet:
				_ = guideList(w, r, mgr)
			case http.MethodPost:
				_ = guideRegister(w, r, mgr)
			case http.MethodDelete:
				_ = guideDelete(w, r, mgr)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List registered guides page by page",
			},
			Post: &openapi.Operation{
				Description: "Register uploaded assets as a new guide",
			},
			Delete: &openapi.Operation{
				Description: "Delete a batch of guides by id",
			},
		})
}

// Path: /api/guides/{id}
// GET returns the detail shape for one guide.
func GuideDetailHandler(mgr *manager.Manager, adminToken string) (string, http.HandlerFunc, *openapi.PathItem) {
	return schema.APIPrefix + "/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := authorize(r, adminToken); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			switch r.Method {
			case http.MethodGet:
				_ = guideGet(w, r, mgr)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get one guide by id",
			},
		})
}

// Path: /api/guides/presigned-urls
// POST issues storage keys and upload URLs for the three asset roles.
func PresignHandler(mgr *manager.Manager, adminToken string) (string, http.HandlerFunc, *openapi.PathItem) {
	return schema.APIPrefix + "/presigned-urls", func(w http.ResponseWriter, r *http.Request) {
			if err := authorize(r, adminToken); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			switch r.Method {
			case http.MethodPost:
				_ = guidePresign(w, r, mgr)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Issue upload URLs for the image, vector drawable and SVG of one guide",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func guideList(w http.ResponseWriter, r *http.Request, mgr *manager.Manager) error {
	var page schema.Pageable
	if err := httprequest.Query(r.URL.Query(), &page); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
	}

	list, err := mgr.List(r.Context(), page)
	if err != nil {
		return httpresponse.Error(w, err)
	}
	return envelope(w, r, http.StatusOK, list)
}

func guideGet(w http.ResponseWriter, r *http.Request, mgr *manager.Manager) error {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest.Withf("invalid guide id %q", r.PathValue("id")))
	}

	detail, err := mgr.Get(r.Context(), id)
	if err != nil {
		return httpresponse.Error(w, err)
	}
	return envelope(w, r, http.StatusOK, detail)
}

func guidePresign(w http.ResponseWriter, r *http.Request, mgr *manager.Manager) error {
	var req schema.PresignedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
	}

	urls, err := mgr.PresignedURLs(r.Context(), req.FileName)
	if err != nil {
		return httpresponse.Error(w, err)
	}
	return envelope(w, r, http.StatusOK, urls)
}

func guideRegister(w http.ResponseWriter, r *http.Request, mgr *manager.Manager) error {
	var req schema.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
	}

	guide, err := mgr.Register(r.Context(), req)
	if err != nil {
		return httpresponse.Error(w, err)
	}
	return envelope(w, r, http.StatusCreated, guide)
}

func guideDelete(w http.ResponseWriter, r *http.Request, mgr *manager.Manager) error {
	var req schema.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
	}

	if err := mgr.Delete(r.Context(), req.GuideIDs); err != nil {
		return httpresponse.Error(w, err)
	}
	return envelope(w, r, http.StatusOK, len(req.GuideIDs))
}

// envelope wraps a payload in the catalog response envelope.
func envelope[T any](w http.ResponseWriter, r *http.Request, status int, result T) error {
	return httpresponse.JSON(w, status, httprequest.Indent(r), schema.Response[T]{
		Code:    status,
		Message: "OK",
		Result:  result,
	})
}
