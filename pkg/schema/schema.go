package schema

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	SchemaName = "guides"

	// APIPrefix is the path prefix for all catalog endpoints.
	APIPrefix = "/api/guides"

	// DefaultPageSize is the page size used when listing without an explicit size.
	DefaultPageSize = 50

	// MaxPageSize is the maximum page size accepted by the listing endpoint.
	MaxPageSize = 500

	// StoragePrefix is the path prefix the development server accepts
	// self-signed asset PUTs under. Requests here carry their authorization
	// in the URL, never in a header.
	StoragePrefix = "/storage"
)

// Asset roles within one upload group. Every registered guide carries exactly
// one stored asset per role.
const (
	RoleImage  = "image"  // raster preview (png/jpg/jpeg), uploaded as binary
	RoleMarkup = "markup" // Android vector drawable XML, derived from the SVG
	RoleVector = "vector" // source SVG
)
