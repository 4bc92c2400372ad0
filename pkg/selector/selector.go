// Package selector derives the edge selector set the enclosure pipeline
// fillets with. The selectors reference parameter-derived bounds only,
// so one set stays valid across every intermediate solid of a build.
package selector

import (
	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/param"
)

// Inflation margins. The inner box grows so cavity-wall edges fall
// inside it; the outer box shrinks a hair so the enclosure's own outer
// corner edges fall outside the gasket band.
const (
	innerMargin = 1.0
	skinMargin  = 1e-3
)

// Set carries the selectors for one parameter set.
type Set struct {
	// Inner matches edges on or within the cavity walls, screw bosses
	// included for inside placement.
	Inner kernel.Selector
	// Outer matches edges outside the cavity region.
	Outer kernel.Selector
	// Gasket matches edges of the gasket groove and press, in a z band
	// around the split plane.
	Gasket kernel.Selector
}

// ForParams builds the selector set for finalized parameters.
func ForParams(p *param.Params) Set {
	innerBox := kernel.BoxSelector{
		Min: [3]float64{-(p.InnerWidth/2 + innerMargin), -(p.InnerLength/2 + innerMargin), -1},
		Max: [3]float64{p.InnerWidth/2 + innerMargin, p.InnerLength/2 + innerMargin, p.InnerHeight + 1},
	}

	band := 2 * p.GasketHeight
	gasketOuter := kernel.BoxSelector{
		Min: [3]float64{-(p.OuterWidth()/2 - skinMargin), -(p.OuterLength()/2 - skinMargin), p.SplitZ() - band},
		Max: [3]float64{p.OuterWidth()/2 - skinMargin, p.OuterLength()/2 - skinMargin, p.SplitZ() + band},
	}
	gasketInner := kernel.BoxSelector{
		Min: [3]float64{-(p.InnerWidth/2 + skinMargin), -(p.InnerLength/2 + skinMargin), p.SplitZ() - band},
		Max: [3]float64{p.InnerWidth/2 + skinMargin, p.InnerLength/2 + skinMargin, p.SplitZ() + band},
	}

	return Set{
		Inner:  innerBox,
		Outer:  kernel.Inverse{S: innerBox},
		Gasket: kernel.Sub{A: gasketOuter, B: gasketInner},
	}
}
