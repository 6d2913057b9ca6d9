package upload

import (
	"context"
	"errors"
	"fmt"

	// Packages
	httpclient "github.com/chalpu/go-guides/pkg/httpclient"
	schema "github.com/chalpu/go-guides/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Uploader sequences the upload pipeline for guide groups: presigned URL
// acquisition, three object-storage PUTs, then metadata registration.
type Uploader struct {
	client   *httpclient.Client
	tracer   trace.Tracer
	progress func(groupID string, percentage int)
}

// Opt is a functional option for Uploader configuration.
type Opt func(*Uploader) error

// Result summarises one batch run.
type Result struct {
	Succeeded int
	Failed    int
	Skipped   int
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrNameMismatch is returned when a group's image and vector file names
// disagree, which blocks the upload until one of them is replaced.
var ErrNameMismatch = errors.New("image and vector file names do not match")

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an uploader over the given catalog client.
func New(client *httpclient.Client, opts ...Opt) (*Uploader, error) {
	u := &Uploader{client: client}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTracer sets the tracer used for spans around each group's pipeline.
func WithTracer(tracer trace.Tracer) Opt {
	return func(u *Uploader) error {
		u.tracer = tracer
		return nil
	}
}

// WithProgress sets a callback invoked with the aggregate group percentage
// on every progress change.
func WithProgress(fn func(groupID string, percentage int)) Opt {
	return func(u *Uploader) error {
		u.progress = fn
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Upload runs the pipeline for one group. The group transitions
// pending -> uploading -> completed or error; a retry of a failed group
// resets its progress to zero and re-enters uploading. The context is
// checked between pipeline steps so an in-flight group can be abandoned
// between PUTs.
func (u *Uploader) Upload(ctx context.Context, g *Group) (*schema.Guide, error) {
	if !g.Ready() {
		if g.NameMismatch() {
			return nil, fmt.Errorf("group %s: %w", g.ID, ErrNameMismatch)
		}
		return nil, fmt.Errorf("group %s: not ready for upload", g.ID)
	}

	// Fresh attempt: reset state
	g.Status = StatusUploading
	g.Progress = 0
	g.Err = ""

	guide, err := u.upload(ctx, g)
	if err != nil {
		g.Status = StatusError
		g.Err = err.Error()
		return nil, err
	}

	g.setProgress(100)
	g.Status = StatusCompleted
	return guide, nil
}

// UploadAll runs the pipeline over a batch of groups, strictly sequentially
// in slice order. One group's failure does not abort the others; groups that
// are not eligible (incomplete, completed, or name-mismatched) are skipped.
// The caller should refresh the catalog when Result.Succeeded > 0.
func (u *Uploader) UploadAll(ctx context.Context, groups []*Group) Result {
	var result Result
	for _, g := range groups {
		if !g.Ready() {
			result.Skipped++
			continue
		}
		if _, err := u.Upload(ctx, g); err != nil {
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// upload is the pipeline for one group: any step's failure aborts the
// remaining steps.
func (u *Uploader) upload(ctx context.Context, g *Group) (*schema.Guide, error) {
	var result error
	child, endFunc := otel.StartSpan(u.tracer, ctx, spanName("Upload"))
	defer func() { endFunc(result) }()

	agg := newAggregator(func(pct int) {
		g.setProgress(pct)
		if u.progress != nil {
			u.progress(g.ID, g.Progress)
		}
	})

	// Acquire presigned upload URLs and storage keys for all three roles
	urls, err := u.client.PresignedURLs(child, g.FileName)
	if err != nil {
		result = err
		return nil, err
	}

	// Upload each asset in band order, checking for cancellation in between
	for _, step := range []struct {
		role  string
		asset *Asset
	}{
		{schema.RoleImage, g.Image},
		{schema.RoleMarkup, g.Markup},
		{schema.RoleVector, g.Vector},
	} {
		if err := child.Err(); err != nil {
			result = err
			return nil, err
		}
		err := u.client.UploadToStorage(child, urls.URL(step.role), step.asset.Name, step.asset.ContentType, step.asset.Data, func(p httpclient.Progress) {
			agg.update(step.role, p)
		})
		if err != nil {
			result = err
			return nil, err
		}
		agg.complete(step.role)
	}

	// All assets durably stored: register the catalog entry
	guide, err := u.client.RegisterGuide(child, schema.RegisterRequest{
		GuideS3Key:    urls.GuideS3Key,
		SvgS3Key:      urls.SvgS3Key,
		FileName:      g.FileName,
		ImageS3Key:    urls.ImageS3Key,
		SubCategoryID: int(g.Category),
		Content:       g.Content,
		Tags:          g.Tags,
	})
	if err != nil {
		result = err
		return nil, err
	}
	return guide, nil
}

func spanName(op string) string {
	return schema.SchemaName + "." + op
}
