package manager

import (
	"context"
	"crypto/rand"
	"time"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for guide manager configuration.
type Opt func(*opts) error

// Signer issues an upload URL for a storage key, typically backed by S3
// presigning. When no signer is configured the manager signs its own
// upload URLs and serves the PUTs itself.
type Signer interface {
	SignPut(ctx context.Context, key, contentType string) (string, error)
}

type opts struct {
	tracer  trace.Tracer
	storage string
	baseURL string
	signer  Signer
	secret  []byte
	expiry  time.Duration
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	// DefaultStorage is the bucket used when none is configured.
	DefaultStorage = "mem://guides"

	// DefaultExpiry is how long issued upload URLs stay valid.
	DefaultExpiry = 15 * time.Minute
)

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTracer sets the tracer used for tracing operations.
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// WithStorage sets the bucket URL assets are stored in (mem://, file://, s3://).
func WithStorage(url string) Opt {
	return func(o *opts) error {
		if url == "" {
			return httpresponse.ErrBadRequest.With("missing storage url")
		}
		o.storage = url
		return nil
	}
}

// WithBaseURL sets the external address self-signed upload URLs point at,
// e.g. "http://localhost:8080". Ignored when a signer is configured.
func WithBaseURL(url string) Opt {
	return func(o *opts) error {
		o.baseURL = url
		return nil
	}
}

// WithSigner delegates upload URL issuance to an external signer, so
// clients PUT directly to object storage instead of through this server.
func WithSigner(signer Signer) Opt {
	return func(o *opts) error {
		o.signer = signer
		return nil
	}
}

// WithExpiry sets the validity window for self-signed upload URLs.
func WithExpiry(d time.Duration) Opt {
	return func(o *opts) error {
		if d <= 0 {
			return httpresponse.ErrBadRequest.Withf("invalid expiry %v", d)
		}
		o.expiry = d
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt []Opt) (opts, error) {
	// Set defaults
	o := opts{
		storage: DefaultStorage,
		expiry:  DefaultExpiry,
		secret:  make([]byte, 32),
	}
	if _, err := rand.Read(o.secret); err != nil {
		return opts{}, err
	}

	// Apply options
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return opts{}, err
		}
	}

	// Return success
	return o, nil
}
