package upload

import (
	"os"
	"path/filepath"
	"strings"

	// Packages
	vectordrawable "github.com/chalpu/go-guides/pkg/vectordrawable"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Asset is one in-memory file taking part in an upload group: a selected
// raster image, a selected source SVG, or the markup derived from the SVG.
type Asset struct {
	Name        string
	ContentType string
	Data        []byte
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ReadAssetFile loads a local file as an asset, deriving the content type
// from the file extension.
func ReadAssetFile(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	return &Asset{
		Name:        name,
		ContentType: contentTypeForName(name),
		Data:        data,
	}, nil
}

// ConvertVector derives the markup asset from a source SVG asset: the SVG is
// converted to an Android vector drawable and wrapped as a new asset named
// after the SVG's base name with the ".xml" extension.
func ConvertVector(vector *Asset) (*Asset, error) {
	markup, err := vectordrawable.ConvertBytes(vector.Data)
	if err != nil {
		return nil, err
	}
	return &Asset{
		Name:        vectordrawable.DrawableName(vector.Name),
		ContentType: "application/xml",
		Data:        []byte(markup),
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func contentTypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg":
		return "image/svg+xml"
	case ".xml":
		return "application/xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}
