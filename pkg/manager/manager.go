// Package manager implements the guide catalog behind the development
// server: an in-memory registry of registered guides, a blob bucket for
// the uploaded assets, and upload URL issuance. Upload URLs are either
// self-signed (mem:// and file:// storage, PUTs served by this process)
// or delegated to an S3 presigner.
package manager

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	blob "gocloud.dev/blob"

	schema "github.com/chalpu/go-guides/pkg/schema"

	// Drivers
	_ "gocloud.dev/blob/fileblob" // file:// URLs
	_ "gocloud.dev/blob/memblob"  // mem:// URLs
	_ "gocloud.dev/blob/s3blob"   // s3:// URLs
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Manager struct {
	opts
	bucket *blob.Bucket

	mu     sync.RWMutex
	guides map[uint64]*record
	nextID uint64
}

type record struct {
	guide   schema.Guide
	created time.Time
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new guide manager and opens its storage bucket.
func New(ctx context.Context, opts ...Opt) (*Manager, error) {
	self := new(Manager)

	// Apply options
	if opt, err := applyOpts(opts); err != nil {
		return nil, err
	} else {
		self.opts = opt
	}

	// Open the bucket
	if bucket, err := blob.OpenBucket(ctx, self.storage); err != nil {
		return nil, err
	} else {
		self.bucket = bucket
	}

	self.guides = make(map[uint64]*record)

	// Return success
	return self, nil
}

// Close releases the storage bucket.
func (manager *Manager) Close() error {
	return manager.bucket.Close()
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SetBaseURL sets the external address self-signed upload URLs point at.
// It is called once the listener address is known.
func (manager *Manager) SetBaseURL(url string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.baseURL = strings.TrimSuffix(url, "/")
}

// PresignedURLs issues storage keys and one-time upload URLs for the three
// asset roles of a guide named after fileName.
func (manager *Manager) PresignedURLs(ctx context.Context, fileName string) (*schema.PresignedURLs, error) {
	var result error
	child, endFunc := otel.StartSpan(manager.tracer, ctx, spanName("PresignedURLs"))
	defer func() { endFunc(result) }()

	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		result = httpresponse.ErrBadRequest.With("missing fileName")
		return nil, result
	}

	// Derive a unique key stem from the file name
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	if ext == "" {
		ext = ".png"
	}
	nonce, err := newNonce()
	if err != nil {
		result = err
		return nil, result
	}
	stem := base + "-" + nonce

	urls := &schema.PresignedURLs{
		ImageS3Key: "guides/images/" + stem + ext,
		GuideS3Key: "guides/xml/" + stem + ".xml",
		SvgS3Key:   "guides/svg/" + stem + ".svg",
	}
	for _, asset := range []struct {
		key, contentType string
		url              *string
	}{
		{urls.ImageS3Key, imageContentType(ext), &urls.ImageUploadURL},
		{urls.GuideS3Key, "application/xml", &urls.GuideUploadURL},
		{urls.SvgS3Key, "image/svg+xml", &urls.SvgUploadURL},
	} {
		u, err := manager.signPut(child, asset.key, asset.contentType)
		if err != nil {
			result = err
			return nil, result
		}
		*asset.url = u
	}

	// Return success
	return urls, nil
}

// PutObject stores one uploaded asset under key. The caller is expected to
// have verified the upload signature first.
func (manager *Manager) PutObject(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	var result error
	child, endFunc := otel.StartSpan(manager.tracer, ctx, spanName("PutObject"))
	defer func() { endFunc(result) }()

	w, err := manager.bucket.NewWriter(child, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		result = err
		return 0, result
	}
	n, err := io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		result = err
		return 0, result
	}

	// Return success
	return n, nil
}

// VerifyUpload checks the signature and expiry of a self-signed upload URL.
func (manager *Manager) VerifyUpload(key string, exp int64, sig string) error {
	if exp < time.Now().Unix() {
		return httpresponse.ErrForbidden.With("upload url expired")
	}
	if !hmac.Equal([]byte(sig), []byte(manager.sign(key, exp))) {
		return httpresponse.ErrForbidden.With("invalid upload signature")
	}
	return nil
}

// Register binds three stored assets into a catalog entry and returns it.
func (manager *Manager) Register(ctx context.Context, req schema.RegisterRequest) (*schema.Guide, error) {
	var result error
	child, endFunc := otel.StartSpan(manager.tracer, ctx, spanName("Register"))
	defer func() { endFunc(result) }()

	// Validate the request
	category := schema.Category(req.SubCategoryID)
	switch {
	case strings.TrimSpace(req.FileName) == "":
		result = httpresponse.ErrBadRequest.With("missing fileName")
	case req.GuideS3Key == "" || req.SvgS3Key == "" || req.ImageS3Key == "":
		result = httpresponse.ErrBadRequest.With("missing storage keys")
	case !category.Valid():
		result = httpresponse.ErrBadRequest.Withf("unknown subCategoryId %d", req.SubCategoryID)
	}
	if result != nil {
		return nil, result
	}

	// When uploads go through this process, all three assets must be stored
	// before registration. With an external signer the bucket is remote and
	// not checked here.
	if manager.signer == nil {
		for _, key := range []string{req.ImageS3Key, req.GuideS3Key, req.SvgS3Key} {
			exists, err := manager.bucket.Exists(child, key)
			if err != nil {
				result = err
				return nil, result
			} else if !exists {
				result = httpresponse.ErrBadRequest.Withf("no stored object for key %q", key)
				return nil, result
			}
		}
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.nextID++
	guide := schema.Guide{
		GuideID:         manager.nextID,
		Content:         req.Content,
		GuideS3Key:      req.GuideS3Key,
		SvgS3Key:        req.SvgS3Key,
		FileName:        req.FileName,
		ImageS3Key:      req.ImageS3Key,
		CategoryName:    category.Group(),
		SubCategoryName: category.Label(),
		Tags:            append([]string(nil), req.Tags...),
	}
	manager.guides[guide.GuideID] = &record{guide: guide, created: time.Now().UTC()}

	// Return success
	return &guide, nil
}

// List returns one page of registered guides.
func (manager *Manager) List(ctx context.Context, req schema.Pageable) (*schema.GuideList, error) {
	var result error
	_, endFunc := otel.StartSpan(manager.tracer, ctx, spanName("List"))
	defer func() { endFunc(result) }()

	// Snapshot the registry
	manager.mu.RLock()
	guides := make([]schema.Guide, 0, len(manager.guides))
	for _, r := range manager.guides {
		guides = append(guides, r.guide)
	}
	manager.mu.RUnlock()

	if err := sortGuides(guides, req.Sort); err != nil {
		result = err
		return nil, result
	}

	// Clamp the page request
	size := req.Size
	if size <= 0 {
		size = schema.DefaultPageSize
	} else if size > schema.MaxPageSize {
		size = schema.MaxPageSize
	}
	page := req.Page
	if page < 0 {
		page = 0
	}

	total := len(guides)
	pages := (total + size - 1) / size
	offset := page * size
	if offset > total {
		offset = total
	}
	end := offset + size
	if end > total {
		end = total
	}

	// Return success
	return &schema.GuideList{
		Content:       guides[offset:end],
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		HasNext:       page+1 < pages,
		HasPrevious:   page > 0 && total > 0,
	}, nil
}

// Get returns the detail shape for one guide.
func (manager *Manager) Get(ctx context.Context, id uint64) (*schema.GuideDetail, error) {
	var result error
	_, endFunc := otel.StartSpan(manager.tracer, ctx, spanName("Get"))
	defer func() { endFunc(result) }()

	manager.mu.RLock()
	defer manager.mu.RUnlock()
	r, exists := manager.guides[id]
	if !exists {
		result = httpresponse.ErrNotFound.Withf("no guide with id %d", id)
		return nil, result
	}

	// The detail key is the preview asset
	return &schema.GuideDetail{
		ID:        r.guide.GuideID,
		S3Key:     r.guide.SvgS3Key,
		FileName:  r.guide.FileName,
		CreatedAt: r.created,
	}, nil
}

// Delete removes the listed guides and their stored assets. The batch is
// all-or-nothing: when any id is unknown nothing is deleted.
func (manager *Manager) Delete(ctx context.Context, ids []uint64) error {
	var result error
	child, endFunc := otel.StartSpan(manager.tracer, ctx, spanName("Delete"))
	defer func() { endFunc(result) }()

	if len(ids) == 0 {
		result = httpresponse.ErrBadRequest.With("missing guide ids")
		return result
	}

	manager.mu.Lock()
	var unknown []uint64
	for _, id := range ids {
		if _, exists := manager.guides[id]; !exists {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		manager.mu.Unlock()
		result = httpresponse.ErrNotFound.Withf("unknown guide ids %v", unknown)
		return result
	}
	var keys []string
	for _, id := range ids {
		r := manager.guides[id]
		keys = append(keys, r.guide.ImageS3Key, r.guide.GuideS3Key, r.guide.SvgS3Key)
		delete(manager.guides, id)
	}
	manager.mu.Unlock()

	// Asset removal is best-effort once the registry entries are gone
	if manager.signer == nil {
		for _, key := range keys {
			if exists, _ := manager.bucket.Exists(child, key); exists {
				_ = manager.bucket.Delete(child, key)
			}
		}
	}

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (manager *Manager) signPut(ctx context.Context, key, contentType string) (string, error) {
	if manager.signer != nil {
		return manager.signer.SignPut(ctx, key, contentType)
	}

	manager.mu.RLock()
	base := manager.baseURL
	manager.mu.RUnlock()
	if base == "" {
		return "", httpresponse.ErrInternalError.With("no base url set for upload urls")
	}

	exp := time.Now().Add(manager.expiry).Unix()
	return fmt.Sprintf("%s%s/%s?exp=%d&sig=%s", base, schema.StoragePrefix, key, exp, url.QueryEscape(manager.sign(key, exp))), nil
}

func (manager *Manager) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, manager.secret)
	fmt.Fprintf(mac, "%s\n%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

func sortGuides(guides []schema.Guide, keys []string) error {
	less := func(a, b schema.Guide) int {
		if a.GuideID < b.GuideID {
			return -1
		} else if a.GuideID > b.GuideID {
			return 1
		}
		return 0
	}
	if len(keys) > 0 {
		field, dir, found := strings.Cut(keys[0], ",")
		desc := found && strings.EqualFold(dir, "desc")
		switch field {
		case "id", "guideId", "":
			// default ordering
		case "fileName":
			less = func(a, b schema.Guide) int { return strings.Compare(a.FileName, b.FileName) }
		case "subCategoryName":
			less = func(a, b schema.Guide) int { return strings.Compare(a.SubCategoryName, b.SubCategoryName) }
		default:
			return httpresponse.ErrBadRequest.Withf("unknown sort field %q", field)
		}
		if desc {
			inner := less
			less = func(a, b schema.Guide) int { return -inner(a, b) }
		}
	}
	sort.SliceStable(guides, func(i, j int) bool { return less(guides[i], guides[j]) < 0 })
	return nil
}

func imageContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

func newNonce() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func spanName(op string) string {
	return schema.SchemaName + ".manager." + op
}
