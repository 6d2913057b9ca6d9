package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	// Packages
	schema "github.com/chalpu/go-guides/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Status is the lifecycle state of one upload group.
type Status int

// Group is one in-flight or completed triple-upload unit: a raster image, the
// markup derived from the SVG, and the source SVG itself. The group identity
// is client-assigned and never persisted; only the registered catalog entry
// survives the session.
type Group struct {
	ID       string
	Image    *Asset
	Markup   *Asset
	Vector   *Asset
	FileName string
	Status   Status
	Progress int
	Err      string
	Category schema.Category
	Content  string
	Tags     []string

	nameMismatch bool
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	StatusPending Status = iota
	StatusUploading
	StatusCompleted
	StatusError
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewGroup creates an empty group with the default category.
func NewGroup(id string) *Group {
	return &Group{
		ID:       id,
		Category: schema.DefaultCategory,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (s Status) String() string {
	switch s {
	case StatusUploading:
		return "uploading"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	default:
		return "pending"
	}
}

// CheckFilenames validates that a raster image and a source vector belong
// together: their base names, with the role's known extensions stripped
// case-insensitively, must match exactly. When either name is empty the pair
// is not yet checkable and the result is valid with an empty derived name.
func CheckFilenames(imageName, vectorName string) (valid bool, derived string) {
	if imageName == "" || vectorName == "" {
		return true, ""
	}
	image := stripImageExt(imageName)
	vector := stripVectorExt(vectorName)
	if image != vector {
		return false, ""
	}
	return true, vector
}

// SetVector selects the source SVG for the group, deriving the markup asset
// from it and revalidating the pair of file names.
func (g *Group) SetVector(vector *Asset) error {
	markup, err := ConvertVector(vector)
	if err != nil {
		return err
	}
	g.Vector = vector
	g.Markup = markup
	g.revalidate()
	return nil
}

// SetImage selects the raster image for the group and revalidates the pair
// of file names.
func (g *Group) SetImage(image *Asset) {
	g.Image = image
	g.revalidate()
}

// RemoveVector clears the source SVG and the markup derived from it. The
// display name falls back to the image's stripped name when one is selected.
func (g *Group) RemoveVector() {
	g.Vector = nil
	g.Markup = nil
	g.nameMismatch = false
	if g.Image != nil {
		g.FileName = stripImageExt(g.Image.Name)
	} else {
		g.FileName = ""
	}
}

// RemoveImage clears the raster image. The display name falls back to the
// vector's stripped name when one is selected.
func (g *Group) RemoveImage() {
	g.Image = nil
	g.nameMismatch = false
	if g.Vector != nil {
		g.FileName = stripVectorExt(g.Vector.Name)
	} else {
		g.FileName = ""
	}
}

// AddTag appends a tag, rejecting duplicates and blanks.
func (g *Group) AddTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("tag is empty")
	}
	for _, existing := range g.Tags {
		if existing == tag {
			return fmt.Errorf("duplicate tag %q", tag)
		}
	}
	g.Tags = append(g.Tags, tag)
	return nil
}

// NameMismatch reports whether the selected image and vector names disagree,
// which blocks the upload regardless of other readiness.
func (g *Group) NameMismatch() bool {
	return g.nameMismatch
}

// Ready reports whether the group is eligible for upload: all three assets
// present, not already completed, and no name mismatch.
func (g *Group) Ready() bool {
	return g.Image != nil && g.Markup != nil && g.Vector != nil &&
		g.Status != StatusCompleted && !g.nameMismatch
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// revalidate recomputes the derived display name and mismatch flag after a
// file selection changes.
func (g *Group) revalidate() {
	var imageName, vectorName string
	if g.Image != nil {
		imageName = g.Image.Name
	}
	if g.Vector != nil {
		vectorName = g.Vector.Name
	}
	valid, derived := CheckFilenames(imageName, vectorName)
	g.nameMismatch = !valid
	g.FileName = derived
	// Best-effort display name while the pair is incomplete
	if valid && derived == "" {
		if g.Vector != nil {
			g.FileName = stripVectorExt(g.Vector.Name)
		} else if g.Image != nil {
			g.FileName = stripImageExt(g.Image.Name)
		}
	}
}

// setProgress clamps the reported progress to the running maximum, so the
// aggregate never decreases within one upload attempt.
func (g *Group) setProgress(p int) {
	if p > g.Progress {
		g.Progress = p
	}
}

func stripImageExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return name[:len(name)-len(filepath.Ext(name))]
	}
	return name
}

func stripVectorExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return name[:len(name)-len(filepath.Ext(name))]
	}
	return name
}
