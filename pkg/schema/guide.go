package schema

import (
	"strconv"
	"time"

	// Packages
	"github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Guide is a registered catalog entry. Guides are owned and mutated by the
// backend; clients read them and request deletion by id.
type Guide struct {
	GuideID         uint64   `json:"guideId"`
	Content         string   `json:"content,omitempty"`
	GuideS3Key      string   `json:"guideS3Key"` // vector drawable XML (Android)
	SvgS3Key        string   `json:"svgS3Key"`   // source SVG (preview)
	FileName        string   `json:"fileName"`
	ImageS3Key      string   `json:"imageS3Key"`
	CategoryName    string   `json:"categoryName"`
	SubCategoryName string   `json:"subCategoryName"`
	Tags            []string `json:"tags,omitempty"`
}

// GuideDetail is the reduced shape returned by the detail endpoint.
type GuideDetail struct {
	ID        uint64    `json:"id"`
	S3Key     string    `json:"s3Key"`
	FileName  string    `json:"fileName"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Pageable describes a page request for the listing endpoint. Sort entries
// use the "field,direction" form, e.g. "fileName,asc".
type Pageable struct {
	Page int      `json:"page"`
	Size int      `json:"size"`
	Sort []string `json:"sort,omitempty"`
}

type GuideList struct {
	Content       []Guide `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int     `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	HasNext       bool    `json:"hasNext"`
	HasPrevious   bool    `json:"hasPrevious"`
}

// PresignedURLRequest asks for one-time upload URLs for all three asset roles
// of a guide with the given base file name.
type PresignedURLRequest struct {
	FileName string `json:"fileName"`
}

// PresignedURLs carries one (storage key, upload URL) pair per asset role.
// The upload URLs embed their own authorization; clients must not attach a
// bearer token when PUTting to them.
type PresignedURLs struct {
	GuideS3Key     string `json:"guideS3Key"`
	GuideUploadURL string `json:"guideUploadUrl"`
	SvgS3Key       string `json:"svgS3Key"`
	SvgUploadURL   string `json:"svgUploadUrl"`
	ImageS3Key     string `json:"imageS3Key"`
	ImageUploadURL string `json:"imageUploadUrl"`
}

// RegisterRequest binds the three storage keys, display name, category and
// optional content/tags into one catalog entry. All three assets must already
// be stored before registration.
type RegisterRequest struct {
	GuideS3Key    string   `json:"guideS3Key"`
	SvgS3Key      string   `json:"svgS3Key"`
	FileName      string   `json:"fileName"`
	ImageS3Key    string   `json:"imageS3Key"`
	SubCategoryID int      `json:"subCategoryId"`
	Content       string   `json:"content,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// DeleteRequest deletes all listed guides in a single call.
type DeleteRequest struct {
	GuideIDs []uint64 `json:"guideIds"`
}

// Response is the envelope wrapped around every catalog API payload.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Key returns the storage key for the given asset role, or empty string when
// the role is unknown.
func (p PresignedURLs) Key(role string) string {
	switch role {
	case RoleImage:
		return p.ImageS3Key
	case RoleMarkup:
		return p.GuideS3Key
	case RoleVector:
		return p.SvgS3Key
	}
	return ""
}

// URL returns the upload URL for the given asset role, or empty string when
// the role is unknown.
func (p PresignedURLs) URL(role string) string {
	switch role {
	case RoleImage:
		return p.ImageUploadURL
	case RoleMarkup:
		return p.GuideUploadURL
	case RoleVector:
		return p.SvgUploadURL
	}
	return ""
}

// Values returns the page request as query parameters.
func (p Pageable) Values() map[string][]string {
	values := map[string][]string{
		"page": {strconv.Itoa(p.Page)},
		"size": {strconv.Itoa(p.Size)},
	}
	if len(p.Sort) > 0 {
		values["sort"] = p.Sort
	}
	return values
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (g Guide) String() string {
	return types.Stringify(g)
}

func (g GuideDetail) String() string {
	return types.Stringify(g)
}

func (l GuideList) String() string {
	return types.Stringify(l)
}

func (p PresignedURLs) String() string {
	return types.Stringify(p)
}

func (r RegisterRequest) String() string {
	return types.Stringify(r)
}
