package upload

import (
	"testing"

	// Packages
	httpclient "github.com/chalpu/go-guides/pkg/httpclient"
	schema "github.com/chalpu/go-guides/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands_CoverWholeRange(t *testing.T) {
	// Bands must cover [0,100] with no gaps or overlaps, in upload order
	total := 0
	for _, b := range bands {
		total += b.width
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 0, bands[schema.RoleImage].start)
	assert.Equal(t, bands[schema.RoleImage].start+bands[schema.RoleImage].width, bands[schema.RoleMarkup].start)
	assert.Equal(t, bands[schema.RoleMarkup].start+bands[schema.RoleMarkup].width, bands[schema.RoleVector].start)
	assert.Equal(t, 100, bands[schema.RoleVector].start+bands[schema.RoleVector].width)
}

func TestAggregator_BandMapping(t *testing.T) {
	var emitted []int
	agg := newAggregator(func(pct int) { emitted = append(emitted, pct) })

	agg.update(schema.RoleImage, httpclient.Progress{Percentage: 50})
	agg.update(schema.RoleImage, httpclient.Progress{Percentage: 100})
	agg.update(schema.RoleMarkup, httpclient.Progress{Percentage: 50})
	agg.update(schema.RoleVector, httpclient.Progress{Percentage: 100})

	assert.Equal(t, []int{20, 40, 60, 100}, emitted)
}

func TestAggregator_NeverDecreases(t *testing.T) {
	var emitted []int
	agg := newAggregator(func(pct int) { emitted = append(emitted, pct) })

	// Non-monotonic transport ticks within one asset
	agg.update(schema.RoleImage, httpclient.Progress{Percentage: 80})
	agg.update(schema.RoleImage, httpclient.Progress{Percentage: 30})
	// A later role reporting 0 must not drop below the running maximum
	agg.update(schema.RoleMarkup, httpclient.Progress{Percentage: 0})
	agg.update(schema.RoleVector, httpclient.Progress{Percentage: 100})

	require.NotEmpty(t, emitted)
	prev := -1
	for _, pct := range emitted {
		assert.GreaterOrEqual(t, pct, prev)
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
		prev = pct
	}
	assert.Equal(t, 100, emitted[len(emitted)-1])
}

func TestAggregator_ClampsOutOfRange(t *testing.T) {
	var last int
	agg := newAggregator(func(pct int) { last = pct })

	agg.update(schema.RoleImage, httpclient.Progress{Percentage: 250})
	assert.Equal(t, 40, last)
	agg.update(schema.RoleMarkup, httpclient.Progress{Percentage: -10})
	assert.Equal(t, 40, last)
}

func TestAggregator_CompleteAdvancesBand(t *testing.T) {
	var last int
	agg := newAggregator(func(pct int) { last = pct })

	// A tiny asset may produce no transport ticks at all
	agg.complete(schema.RoleImage)
	assert.Equal(t, 40, last)
	agg.complete(schema.RoleMarkup)
	assert.Equal(t, 80, last)
	agg.complete(schema.RoleVector)
	assert.Equal(t, 100, last)
}

func TestAggregator_UnknownRoleIgnored(t *testing.T) {
	called := false
	agg := newAggregator(func(int) { called = true })
	agg.update("thumbnail", httpclient.Progress{Percentage: 50})
	assert.False(t, called)
}
