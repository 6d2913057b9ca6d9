package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	// Packages
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	httphandler "github.com/chalpu/go-guides/pkg/httphandler"
	manager "github.com/chalpu/go-guides/pkg/manager"
	schema "github.com/chalpu/go-guides/pkg/schema"
)

const testToken = "sekrit"

///////////////////////////////////////////////////////////////////////////////
// MOCK ROUTER

type mockRouter struct {
	paths  []string
	retErr error
}

func (m *mockRouter) RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error {
	m.paths = append(m.paths, path)
	return m.retErr
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func serveMux(mgr *manager.Manager, adminToken string) *http.ServeMux {
	mux := http.NewServeMux()
	path, handler, _ := httphandler.GuideHandler(mgr, adminToken)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.GuideDetailHandler(mgr, adminToken)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.PresignHandler(mgr, adminToken)
	mux.HandleFunc(path, handler)
	path, handler, _ = httphandler.StorageHandler(mgr)
	mux.HandleFunc(path, handler)
	return mux
}

func newTestManager(t *testing.T) *manager.Manager {
	t.Helper()
	mgr, err := manager.New(context.Background())
	require.NoError(t, err)
	mgr.SetBaseURL("http://storage.test")
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func call(t *testing.T, mux *http.ServeMux, method, path, bearer string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	return rw.Result()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out schema.Response[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, resp.StatusCode, out.Code)
	return out.Result
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_RegisterHandlers(t *testing.T) {
	mgr := newTestManager(t)

	router := &mockRouter{}
	require.NoError(t, httphandler.RegisterHandlers(mgr, router, testToken))
	assert.Len(t, router.paths, 4)

	failing := &mockRouter{retErr: fmt.Errorf("router error")}
	assert.Error(t, httphandler.RegisterHandlers(mgr, failing, testToken))
}

func Test_Authorization(t *testing.T) {
	mgr := newTestManager(t)
	mux := serveMux(mgr, testToken)

	// Missing and wrong bearer tokens are rejected
	resp := call(t, mux, http.MethodGet, schema.APIPrefix, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = call(t, mux, http.MethodGet, schema.APIPrefix, "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The right token is accepted
	resp = call(t, mux, http.MethodGet, schema.APIPrefix, testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// No configured token disables the check
	open := serveMux(mgr, "")
	resp = call(t, open, http.MethodGet, schema.APIPrefix, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_MethodNotAllowed(t *testing.T) {
	mgr := newTestManager(t)
	mux := serveMux(mgr, testToken)

	resp := call(t, mux, http.MethodPatch, schema.APIPrefix, testToken, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp = call(t, mux, http.MethodGet, schema.APIPrefix+"/presigned-urls", testToken, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp = call(t, mux, http.MethodGet, schema.StoragePrefix+"/guides/images/x.png", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// Walks the whole pipeline through the HTTP surface: presign, PUT every
// asset to its signed URL, register, list, fetch detail, delete.
func Test_UploadPipeline(t *testing.T) {
	mgr := newTestManager(t)
	mux := serveMux(mgr, testToken)

	// Presign
	resp := call(t, mux, http.MethodPost, schema.APIPrefix+"/presigned-urls", testToken, schema.PresignedURLRequest{FileName: "cat.png"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	urls := decode[schema.PresignedURLs](t, resp)
	require.NotEmpty(t, urls.ImageUploadURL)

	// PUT each asset to its signed path, without any bearer token
	for role, contentType := range map[string]string{
		schema.RoleImage:  "image/png",
		schema.RoleMarkup: "application/xml",
		schema.RoleVector: "image/svg+xml",
	} {
		u, err := url.Parse(urls.URL(role))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, u.Path+"?"+u.RawQuery, strings.NewReader("payload"))
		req.Header.Set("Content-Type", contentType)
		rw := httptest.NewRecorder()
		mux.ServeHTTP(rw, req)
		require.Equal(t, http.StatusOK, rw.Result().StatusCode, role)
	}

	// A tampered signature is refused
	u, err := url.Parse(urls.URL(schema.RoleImage))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, u.Path+"?exp="+u.Query().Get("exp")+"&sig=forged", strings.NewReader("payload"))
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusForbidden, rw.Result().StatusCode)

	// Register
	resp = call(t, mux, http.MethodPost, schema.APIPrefix, testToken, schema.RegisterRequest{
		GuideS3Key:    urls.GuideS3Key,
		SvgS3Key:      urls.SvgS3Key,
		FileName:      "cat.png",
		ImageS3Key:    urls.ImageS3Key,
		SubCategoryID: int(schema.CategoryCoffee),
		Tags:          []string{"아메리카노"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	guide := decode[schema.Guide](t, resp)
	assert.Equal(t, uint64(1), guide.GuideID)
	assert.Equal(t, schema.CategoryCoffee.Label(), guide.SubCategoryName)

	// List
	resp = call(t, mux, http.MethodGet, schema.APIPrefix+"?page=0&size=10", testToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[schema.GuideList](t, resp)
	require.Len(t, list.Content, 1)
	assert.Equal(t, "cat.png", list.Content[0].FileName)

	// Detail
	resp = call(t, mux, http.MethodGet, fmt.Sprintf("%s/%d", schema.APIPrefix, guide.GuideID), testToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[schema.GuideDetail](t, resp)
	assert.Equal(t, guide.SvgS3Key, detail.S3Key)

	// Delete
	resp = call(t, mux, http.MethodDelete, schema.APIPrefix, testToken, schema.DeleteRequest{GuideIDs: []uint64{guide.GuideID}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, mux, http.MethodGet, schema.APIPrefix, testToken, nil)
	list = decode[schema.GuideList](t, resp)
	assert.Empty(t, list.Content)
}

func Test_GuideDetail_errors(t *testing.T) {
	mgr := newTestManager(t)
	mux := serveMux(mgr, testToken)

	resp := call(t, mux, http.MethodGet, schema.APIPrefix+"/abc", testToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = call(t, mux, http.MethodGet, schema.APIPrefix+"/42", testToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_GuideDelete_unknownId(t *testing.T) {
	mgr := newTestManager(t)
	mux := serveMux(mgr, testToken)

	resp := call(t, mux, http.MethodDelete, schema.APIPrefix, testToken, schema.DeleteRequest{GuideIDs: []uint64{7}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
