package version_test

import (
	"encoding/json"
	"runtime"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"

	version "github.com/chalpu/go-guides/pkg/version"
)

func Test_Version(t *testing.T) {
	assert.NotEmpty(t, version.Version())

	var m map[string]any
	require.NoError(t, json.Unmarshal(version.JSON("guides"), &m))
	assert.Equal(t, "guides", m["name"])
	assert.Equal(t, version.Version(), m["version"])
	assert.Equal(t, runtime.Version(), m["compiler"])
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, m["platform"])
}
