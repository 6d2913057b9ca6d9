package upload

import (
	// Packages
	httpclient "github.com/chalpu/go-guides/pkg/httpclient"
	schema "github.com/chalpu/go-guides/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// band is the contiguous slice of the group percentage assigned to one asset
// role. Bands cover [0,100] with no gaps or overlaps, in upload order.
type band struct {
	start int
	width int
}

// aggregator folds per-asset progress events into one group-level percentage.
// The emitted sequence never decreases within one upload attempt, even when
// the underlying transport reports non-monotonic byte counts.
type aggregator struct {
	max  int
	emit func(int)
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Upload order is image, markup, vector; the bands follow that order.
var bands = map[string]band{
	schema.RoleImage:  {start: 0, width: 40},
	schema.RoleMarkup: {start: 40, width: 40},
	schema.RoleVector: {start: 80, width: 20},
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newAggregator(emit func(int)) *aggregator {
	return &aggregator{emit: emit}
}

// update maps an asset-level progress event into the group percentage and
// emits it, clamped to the running maximum.
func (a *aggregator) update(role string, p httpclient.Progress) {
	b, ok := bands[role]
	if !ok {
		return
	}
	pct := p.Percentage
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	value := b.start + pct*b.width/100
	if value > a.max {
		a.max = value
	}
	if a.emit != nil {
		a.emit(a.max)
	}
}

// complete marks a whole band as done, so small assets that produce no
// transport ticks still advance the aggregate.
func (a *aggregator) complete(role string) {
	a.update(role, httpclient.Progress{Percentage: 100})
}
