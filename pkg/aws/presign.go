// Package aws issues presigned S3 PUT URLs for the development server's
// s3 storage mode. Uploaders PUT directly to the returned URLs; no
// Authorization header must be attached since the URL embeds its own
// signature.
package aws

import (
	"context"
	"time"

	// Packages
	aws "github.com/aws/aws-sdk-go-v2/aws"
	config "github.com/aws/aws-sdk-go-v2/config"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Presigner struct {
	bucket   string
	endpoint *string
	client   *s3.Client
	presign  *s3.PresignClient
	expiry   time.Duration
}

// Opt is a functional option for Presigner configuration.
type Opt func(*Presigner) error

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// DefaultExpiry is how long an issued upload URL stays valid.
const DefaultExpiry = 15 * time.Minute

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a presigner for the named bucket. The AWS configuration is
// loaded from the environment; endpoint and region may be overridden with
// options.
func New(ctx context.Context, bucket string, opts ...Opt) (*Presigner, error) {
	if bucket == "" {
		return nil, httpresponse.ErrBadRequest.With("missing bucket name")
	}
	p := &Presigner{bucket: bucket, expiry: DefaultExpiry}

	// Apply the options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	// Load the default configuration
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	// Create the S3 client
	if client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if o.Region == "" {
			o.Region = "none"
		}
		if p.endpoint != nil {
			o.BaseEndpoint = p.endpoint
		}
	}); client == nil {
		return nil, httpresponse.ErrInternalError.Withf("Invalid S3 client")
	} else {
		p.client = client
		p.presign = s3.NewPresignClient(client)
	}

	// Return success
	return p, nil
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithExpiry sets the validity window for issued URLs.
func WithExpiry(d time.Duration) Opt {
	return func(p *Presigner) error {
		if d <= 0 {
			return httpresponse.ErrBadRequest.Withf("invalid expiry %v", d)
		}
		p.expiry = d
		return nil
	}
}

// WithEndpoint overrides the S3 endpoint, for localstack or minio.
func WithEndpoint(endpoint string) Opt {
	return func(p *Presigner) error {
		if endpoint == "" {
			return httpresponse.ErrBadRequest.With("missing endpoint")
		}
		p.endpoint = &endpoint
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SignPut returns a presigned URL that accepts a single PUT of the object at
// key with the given content type.
func (p *Presigner) SignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
