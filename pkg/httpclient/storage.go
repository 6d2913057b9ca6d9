package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Progress reports byte-level transfer progress for one asset upload.
type Progress struct {
	Loaded     int64 `json:"loaded"`
	Total      int64 `json:"total"`
	Percentage int   `json:"percentage"`
}

// progressReader wraps an upload body and emits Progress on the way through.
type progressReader struct {
	r        io.Reader
	total    int64
	loaded   int64
	lastEmit int64
	cb       func(Progress)
}

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Text assets are stored with an explicit text content type so the backend
// can read them inline for later processing; raster images pass through as
// binary with their native content type.
const (
	contentTypeXML = "application/xml"
	contentTypeSVG = "image/svg+xml"
)

// progressGranularity is the byte interval between progress emissions.
const progressGranularity = 32 * 1024

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// UploadToStorage transmits one asset body to its presigned upload URL via
// HTTP PUT. The content handling policy follows the asset kind: markup (XML)
// and vector (SVG) assets are sent as UTF-8 text with an explicit content
// type; raster images are sent as binary with their native content type;
// anything else is rejected. No Authorization header is sent: presigned URLs
// embed their own authorization and reject an extra header. onProgress may
// be nil.
func (c *Client) UploadToStorage(ctx context.Context, uploadURL, name, contentType string, data []byte, onProgress func(Progress)) error {
	ct, err := storageContentType(name, contentType)
	if err != nil {
		return err
	}

	var body io.Reader = bytes.NewReader(data)
	if onProgress != nil {
		body = &progressReader{r: body, total: int64(len(data)), cb: onProgress}
	}

	// The PUT goes through the storage client, which carries no credential.
	// Large assets can outlive the default request timeout.
	return c.storage.DoWithContext(ctx,
		&putPayload{body: body, contentType: ct},
		nil,
		client.OptReqEndpoint(uploadURL),
		client.OptNoTimeout(),
	)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// storageContentType applies the content handling policy for one asset,
// identified by MIME type or file extension.
func storageContentType(name, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case contentType == contentTypeXML || ext == ".xml":
		return contentTypeXML, nil
	case contentType == contentTypeSVG || ext == ".svg":
		return contentTypeSVG, nil
	case strings.HasPrefix(contentType, "image/"):
		return contentType, nil
	case ext == ".png":
		return "image/png", nil
	case ext == ".jpg", ext == ".jpeg":
		return "image/jpeg", nil
	}
	return "", fmt.Errorf("unsupported file type %q for %q", contentType, name)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.loaded += int64(n)
		if r.loaded-r.lastEmit >= progressGranularity || r.loaded >= r.total {
			r.lastEmit = r.loaded
			r.cb(Progress{
				Loaded:     r.loaded,
				Total:      r.total,
				Percentage: percentage(r.loaded, r.total),
			})
		}
	}
	return n, err
}

func percentage(loaded, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(loaded) / float64(total) * 100))
	if p > 100 {
		p = 100
	}
	return p
}
