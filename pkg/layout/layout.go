// Package layout computes the sketch-plane positions of enclosure screw
// bosses from finalized parameters.
package layout

import (
	"fmt"

	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/param"
)

// ScrewPoints returns the boss centers for every enabled screw group,
// in the order corner, middle-of-length, middle-of-width. Inside
// placement pulls the bosses into the cavity so the cylinders stay
// tangent to the inner wall; outside placement pushes them past the
// outer wall.
func ScrewPoints(p *param.Params) ([]kernel.Point, error) {
	var w, l float64
	switch p.Placement {
	case param.ScrewInsideBox:
		w = p.InnerWidth/2 - p.ScrewCylinderRadius() + p.WallThickness()
		l = p.InnerLength/2 - p.ScrewCylinderRadius() + p.WallThickness()
	case param.ScrewOutsideBox:
		w = p.OuterWidth()/2 + p.ScrewCylinderRadius() - p.WallThickness()
		l = p.OuterLength()/2 + p.ScrewCylinderRadius() - p.WallThickness()
	default:
		return nil, fmt.Errorf("layout: unhandled screw placement %v", p.Placement)
	}

	var pts []kernel.Point
	if p.CornerScrews {
		pts = append(pts,
			kernel.Point{X: w, Y: l},
			kernel.Point{X: -w, Y: -l},
			kernel.Point{X: w, Y: -l},
			kernel.Point{X: -w, Y: l},
		)
	}
	if p.MiddleLengthScrews {
		pts = append(pts,
			kernel.Point{X: -w},
			kernel.Point{X: w},
		)
	}
	if p.MiddleWidthScrews {
		pts = append(pts,
			kernel.Point{Y: -l},
			kernel.Point{Y: l},
		)
	}
	return pts, nil
}
