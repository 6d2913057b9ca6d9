package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	// Packages
	schema "github.com/chalpu/go-guides/pkg/schema"
	token "github.com/chalpu/go-guides/pkg/token"
	client "github.com/mutablelogic/go-client"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListGuides returns one page of the guide catalog.
func (c *Client) ListGuides(ctx context.Context, page schema.Pageable) (*schema.GuideList, error) {
	query := make(url.Values)
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))
	for _, sort := range page.Sort {
		query.Add("sort", sort)
	}

	var response schema.Response[schema.GuideList]
	if err := c.do(ctx, nil, &response,
		apiPath(),
		client.OptQuery(query),
	); err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// GetGuide returns the detail record for a single guide.
func (c *Client) GetGuide(ctx context.Context, id uint64) (*schema.GuideDetail, error) {
	var response schema.Response[schema.GuideDetail]
	if err := c.do(ctx, nil, &response,
		apiPath(strconv.FormatUint(id, 10)),
	); err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// GetGuideDetails fetches detail records for several guides, with a bounded
// number of requests in flight. The result slice is ordered as the ids.
func (c *Client) GetGuideDetails(ctx context.Context, ids []uint64) ([]*schema.GuideDetail, error) {
	result := make([]*schema.GuideDetail, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelDetails)
	for i, id := range ids {
		g.Go(func() error {
			detail, err := c.GetGuide(ctx, id)
			if err != nil {
				return err
			}
			result[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// PresignedURLs requests one-time upload URLs and storage keys for all three
// asset roles of a guide with the given base file name.
func (c *Client) PresignedURLs(ctx context.Context, fileName string) (*schema.PresignedURLs, error) {
	payload, err := newJSONPayload(http.MethodPost, schema.PresignedURLRequest{FileName: fileName})
	if err != nil {
		return nil, err
	}

	var response schema.Response[schema.PresignedURLs]
	if err := c.do(ctx, payload, &response,
		apiPath("presigned-urls"),
	); err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// RegisterGuide submits one registration call binding the stored asset keys,
// display name, category and optional content/tags into a catalog entry. All
// three assets must already be durably stored.
func (c *Client) RegisterGuide(ctx context.Context, req schema.RegisterRequest) (*schema.Guide, error) {
	payload, err := newJSONPayload(http.MethodPost, req)
	if err != nil {
		return nil, err
	}

	var response schema.Response[schema.Guide]
	if err := c.do(ctx, payload, &response,
		apiPath(),
	); err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// DeleteGuides deletes all listed guides in a single call.
func (c *Client) DeleteGuides(ctx context.Context, ids []uint64) error {
	payload, err := newJSONPayload(http.MethodDelete, schema.DeleteRequest{GuideIDs: ids})
	if err != nil {
		return err
	}

	var response schema.Response[any]
	return c.do(ctx, payload, &response, apiPath())
}

// Probe checks whether the stored credential is accepted by the backend,
// using a single-entry list call. It returns the resulting credential status;
// the error carries the underlying failure when the status is invalid.
func (c *Client) Probe(ctx context.Context) (token.Status, error) {
	if c.store != nil {
		if tok, err := c.store.Token(); err != nil {
			return token.StatusNone, err
		} else if tok == "" {
			return token.StatusNone, nil
		}
	}
	if _, err := c.ListGuides(ctx, schema.Pageable{Page: 0, Size: 1}); err != nil {
		if c.notify != nil {
			c.notify()
		}
		return token.StatusInvalid, err
	}
	return token.StatusValid, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// apiPath returns the request path option rooted at the catalog API prefix.
// Each part is passed as its own segment; OptPath escapes any slash within a
// segment, so passing the prefix whole would miss every route.
func apiPath(segments ...string) client.RequestOpt {
	prefix := strings.Split(strings.Trim(schema.APIPrefix, "/"), "/")
	parts := make([]any, 0, len(prefix)+len(segments))
	for _, segment := range prefix {
		parts = append(parts, segment)
	}
	for _, segment := range segments {
		parts = append(parts, segment)
	}
	return client.OptPath(parts...)
}

// do performs an authenticated request, attaching the bearer credential from
// the token store.
func (c *Client) do(ctx context.Context, payload client.Payload, out any, opts ...client.RequestOpt) error {
	auth, err := c.authOpts()
	if err != nil {
		return err
	}
	return c.DoWithContext(ctx, payload, out, append(auth, opts...)...)
}
