// Package version reports the build version of the executable, from
// -ldflags when the release pipeline set them, or from the embedded
// build info otherwise.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type metadata struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Hash     string `json:"hash,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Compiler string `json:"compiler"`
	Platform string `json:"platform"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set via -ldflags "-X .../pkg/version.GitTag=... -X .../pkg/version.GitHash=..."
var (
	GitTag  string
	GitHash string
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the best available version string: the git tag set at
// build time, else the short VCS revision from the embedded build info,
// else "dev".
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if hash := revision(); hash != "" {
		if len(hash) > 12 {
			return hash[:12]
		}
		return hash
	}
	return "dev"
}

// JSON returns JSON-encoded build metadata for the given executable name.
func JSON(execName string) []byte {
	m := metadata{
		Name:     execName,
		Version:  Version(),
		Hash:     GitHash,
		Compiler: runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if m.Hash == "" {
		m.Hash = revision()
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.modified" && s.Value == "true" {
				m.Modified = true
			}
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// revision returns the VCS revision recorded in the embedded build info.
func revision() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}
