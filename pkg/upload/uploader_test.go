package upload_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	httpclient "github.com/chalpu/go-guides/pkg/httpclient"
	httphandler "github.com/chalpu/go-guides/pkg/httphandler"
	manager "github.com/chalpu/go-guides/pkg/manager"
	schema "github.com/chalpu/go-guides/pkg/schema"
	upload "github.com/chalpu/go-guides/pkg/upload"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24"><path d="M4 4h16v16H4z" fill="#ff0000"/></svg>`

// testServer wraps the development handlers so individual endpoints can be
// made to fail.
type testServer struct {
	mux         *http.ServeMux
	failPresign atomic.Bool
	puts        atomic.Int64
}

func (s *testServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.failPresign.Load() && r.URL.Path == schema.APIPrefix+"/presigned-urls" {
		http.Error(w, "presign unavailable", http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodPut {
		s.puts.Add(1)
	}
	s.mux.ServeHTTP(w, r)
}

func newTestClient(t *testing.T) (*httpclient.Client, *testServer) {
	t.Helper()
	mgr, err := manager.New(context.Background())
	require.NoError(t, err)

	mux := http.NewServeMux()
	p, h, _ := httphandler.GuideHandler(mgr, "")
	mux.HandleFunc(p, h)
	p, h, _ = httphandler.GuideDetailHandler(mgr, "")
	mux.HandleFunc(p, h)
	p, h, _ = httphandler.PresignHandler(mgr, "")
	mux.HandleFunc(p, h)
	p, h, _ = httphandler.StorageHandler(mgr)
	mux.HandleFunc(p, h)

	ts := &testServer{mux: mux}
	srv := httptest.NewServer(ts)
	mgr.SetBaseURL(srv.URL)
	t.Cleanup(func() {
		srv.Close()
		_ = mgr.Close()
	})

	c, err := httpclient.New(srv.URL, nil)
	require.NoError(t, err)
	return c, ts
}

// newReadyGroup builds a group with a matching image/vector pair selected.
func newReadyGroup(t *testing.T, id, base string) *upload.Group {
	t.Helper()
	g := upload.NewGroup(id)
	g.SetImage(&upload.Asset{Name: base + ".png", ContentType: "image/png", Data: []byte("raster")})
	require.NoError(t, g.SetVector(&upload.Asset{Name: base + ".svg", ContentType: "image/svg+xml", Data: []byte(testSVG)}))
	require.True(t, g.Ready())
	return g
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Upload(t *testing.T) {
	c, ts := newTestClient(t)
	uploader, err := upload.New(c)
	require.NoError(t, err)

	g := newReadyGroup(t, "g1", "cat")
	g.Category = schema.CategoryCoffee
	g.Content = "아이스 아메리카노"
	require.NoError(t, g.AddTag("아메리카노"))

	guide, err := uploader.Upload(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, upload.StatusCompleted, g.Status)
	assert.Equal(t, 100, g.Progress)
	assert.Empty(t, g.Err)
	assert.Equal(t, "cat", guide.FileName)
	assert.Equal(t, schema.CategoryCoffee.Label(), guide.SubCategoryName)
	assert.Equal(t, []string{"아메리카노"}, guide.Tags)

	// All three assets were PUT to storage
	assert.Equal(t, int64(3), ts.puts.Load())

	// The registered entry is in the catalog
	list, err := c.ListGuides(context.Background(), schema.Pageable{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalElements)
}

func Test_Upload_progress(t *testing.T) {
	c, _ := newTestClient(t)

	var events []int
	uploader, err := upload.New(c, upload.WithProgress(func(groupID string, pct int) {
		events = append(events, pct)
	}))
	require.NoError(t, err)

	g := newReadyGroup(t, "g1", "cat")
	_, err = uploader.Upload(context.Background(), g)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	// The aggregate percentage never decreases across the three bands
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i], events[i-1])
	}
	assert.Equal(t, 100, events[len(events)-1])
}

func Test_Upload_notReady(t *testing.T) {
	c, ts := newTestClient(t)
	uploader, err := upload.New(c)
	require.NoError(t, err)

	// Image only
	g := upload.NewGroup("g1")
	g.SetImage(&upload.Asset{Name: "cat.png", Data: []byte("raster")})
	_, err = uploader.Upload(context.Background(), g)
	assert.Error(t, err)

	// Mismatched pair
	g = upload.NewGroup("g2")
	g.SetImage(&upload.Asset{Name: "cat.png", Data: []byte("raster")})
	require.NoError(t, g.SetVector(&upload.Asset{Name: "dog.svg", Data: []byte(testSVG)}))
	_, err = uploader.Upload(context.Background(), g)
	assert.ErrorIs(t, err, upload.ErrNameMismatch)

	// Nothing reached the network
	assert.Zero(t, ts.puts.Load())
}

func Test_Upload_presignFailure(t *testing.T) {
	c, ts := newTestClient(t)
	uploader, err := upload.New(c)
	require.NoError(t, err)

	ts.failPresign.Store(true)
	g := newReadyGroup(t, "g1", "cat")
	_, err = uploader.Upload(context.Background(), g)
	assert.Error(t, err)
	assert.Equal(t, upload.StatusError, g.Status)
	assert.NotEmpty(t, g.Err)

	// No storage PUT was attempted
	assert.Zero(t, ts.puts.Load())

	// A retry after the failure resets state and succeeds
	ts.failPresign.Store(false)
	_, err = uploader.Upload(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, upload.StatusCompleted, g.Status)
	assert.Empty(t, g.Err)
	assert.Equal(t, 100, g.Progress)
}

func Test_UploadAll(t *testing.T) {
	c, ts := newTestClient(t)
	uploader, err := upload.New(c)
	require.NoError(t, err)

	good := newReadyGroup(t, "g1", "cat")
	otherGood := newReadyGroup(t, "g2", "dog")

	// Incomplete group is skipped, not failed
	pending := upload.NewGroup("g3")
	pending.SetImage(&upload.Asset{Name: "bird.png", Data: []byte("raster")})

	result := uploader.UploadAll(context.Background(), []*upload.Group{good, pending, otherGood})
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, int64(6), ts.puts.Load())

	// Completed groups are not re-uploaded
	result = uploader.UploadAll(context.Background(), []*upload.Group{good, otherGood})
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 2, result.Skipped)
}

func Test_UploadAll_failureIsolation(t *testing.T) {
	c, ts := newTestClient(t)
	uploader, err := upload.New(c)
	require.NoError(t, err)

	// Fail presigning for the whole batch, then re-enable halfway: the first
	// group fails, the second still runs and succeeds.
	first := newReadyGroup(t, "g1", "cat")
	second := newReadyGroup(t, "g2", "dog")

	ts.failPresign.Store(true)
	result := uploader.UploadAll(context.Background(), []*upload.Group{first})
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, upload.StatusError, first.Status)

	ts.failPresign.Store(false)
	result = uploader.UploadAll(context.Background(), []*upload.Group{first, second})
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, upload.StatusCompleted, first.Status)
	assert.Equal(t, upload.StatusCompleted, second.Status)
}

func Test_Upload_cancelled(t *testing.T) {
	c, _ := newTestClient(t)
	uploader, err := upload.New(c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newReadyGroup(t, "g1", "cat")
	_, err = uploader.Upload(ctx, g)
	assert.Error(t, err)
	assert.Equal(t, upload.StatusError, g.Status)
}
