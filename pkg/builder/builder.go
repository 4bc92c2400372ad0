// Package builder assembles the enclosure solids. The build is a fixed
// pipeline: body, bosses, screw holes, body fillets, nut pockets, split,
// gasket groove, gasket press, gasket cord, gasket fillets, mount
// holders. Every step takes finalized parameters and a kernel handle
// and returns replacement solids.
package builder

import (
	"fmt"
	"math"

	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/layout"
	"github.com/chazu/enclosure/pkg/param"
	"github.com/chazu/enclosure/pkg/selector"
)

// cskAngle is the included angle of every countersunk hole.
const cskAngle = 82.0

// Result holds the three printable solids of one build together with
// the finalized parameters they were built from.
type Result struct {
	Params *param.Params
	Box    kernel.Solid
	Lid    kernel.Solid
	Gasket kernel.Solid
}

// Build finalizes the configuration and runs the full pipeline.
func Build(k kernel.Kernel, c param.Config) (*Result, error) {
	p, err := c.Finalize()
	if err != nil {
		return nil, err
	}
	pts, err := layout.ScrewPoints(p)
	if err != nil {
		return nil, err
	}
	sel := selector.ForParams(p)

	body := buildBody(k, p, pts)
	body, err = filletBody(k, p, sel, body)
	if err != nil {
		return nil, err
	}
	if p.Fastening == param.FasteningSquareNut {
		body, err = cutNutPockets(k, p, body, pts)
		if err != nil {
			return nil, err
		}
	}

	box, lid := k.SplitZ(body, p.SplitZ())

	box = cutGasketSlot(k, p, box, pts)
	lid = addGasketPress(k, p, lid, pts)
	gasket := buildGasket(k, p, pts)

	box, lid, gasket, err = applyGasketFillets(k, p, sel, box, lid, gasket)
	if err != nil {
		return nil, err
	}

	if p.MountHolders {
		box, err = addMountHolders(k, p, box)
		if err != nil {
			return nil, err
		}
	}

	return &Result{Params: p, Box: box, Lid: lid, Gasket: gasket}, nil
}

// topDown is the sketch plane on the closed body's top face, advancing
// into the material.
func topDown(p *param.Params) kernel.Plane {
	return kernel.Plane{Z: p.OuterHeight(), Down: true}
}

// buildBody creates the closed shell with screw bosses and screw holes.
func buildBody(k kernel.Kernel, p *param.Params, pts []kernel.Point) kernel.Solid {
	s := k.Extrude(nil, kernel.Plane{}, nil,
		kernel.Rect{W: p.OuterWidth(), L: p.OuterLength()}, p.OuterHeight())
	s = k.CutBlind(s, kernel.Plane{Z: p.BottomLidThickness()}, nil,
		kernel.Rect{W: p.InnerWidth, L: p.InnerLength}, p.InnerHeight)

	s = k.Extrude(s, topDown(p), pts,
		kernel.Circle{R: p.ScrewCylinderRadius()}, p.OuterHeight())

	s = k.CskHole(s, topDown(p), pts,
		p.LidScrewHoleDiameter(), p.ScrewHeadDiameter, cskAngle, p.SplitHeight)
	s = k.Hole(s, topDown(p), pts, p.ScrewHoleDiameter, p.ScrewTotalLength)
	return s
}

// filletBody rounds the vertical body edges and, when enabled, the top
// and bottom faces. Which radius lands on which edge set depends on the
// screw placement.
func filletBody(k kernel.Kernel, p *param.Params, sel selector.Set, s kernel.Solid) (kernel.Solid, error) {
	var err error
	vertical := kernel.Vertical{}
	switch p.Placement {
	case param.ScrewOutsideBox:
		s, err = k.Fillet(s, kernel.Sub{A: vertical, B: sel.Inner}, p.ScrewCylinderFillet())
		if err != nil {
			return nil, fmt.Errorf("fillet screw cylinders: %w", err)
		}
		s, err = k.Fillet(s, kernel.And{vertical, sel.Inner}, p.InnerFillet())
		if err != nil {
			return nil, fmt.Errorf("fillet inner edges: %w", err)
		}
	case param.ScrewInsideBox:
		s, err = k.Fillet(s, kernel.And{vertical, sel.Inner}, p.ScrewCylinderFillet())
		if err != nil {
			return nil, fmt.Errorf("fillet screw cylinders: %w", err)
		}
		s, err = k.Fillet(s, kernel.Sub{A: vertical, B: sel.Inner}, p.OuterVerticalFillet())
		if err != nil {
			return nil, fmt.Errorf("fillet outer edges: %w", err)
		}
	default:
		return nil, fmt.Errorf("builder: unhandled screw placement %v", p.Placement)
	}

	if p.FilletTop {
		top := kernel.And{kernel.OnPlane{Z: p.OuterHeight()}, kernel.Inverse{S: kernel.CircleType{}}}
		s, err = k.Fillet(s, top, p.BottomLidFillet()-1e-2)
		if err != nil {
			return nil, fmt.Errorf("fillet lid top: %w", err)
		}
	}
	if p.FilletBottom && !p.MountHolders {
		s, err = k.Fillet(s, kernel.OnPlane{Z: 0}, p.BottomLidFillet())
		if err != nil {
			return nil, fmt.Errorf("fillet box bottom: %w", err)
		}
	}
	return s, nil
}

// cutNutPockets cuts the square nut pockets into the bosses and applies
// the configured printing workaround above the pocket ceiling.
func cutNutPockets(k kernel.Kernel, p *param.Params, s kernel.Solid, pts []kernel.Point) (kernel.Solid, error) {
	pocketTop := p.OuterHeight() - p.SquareNutDepthPlacement()
	nut := kernel.Rect{W: p.SquareNutWidth, L: p.SquareNutWidth}
	s = k.CutBlind(s, kernel.Plane{Z: pocketTop, Down: true}, pts, nut, p.SquareNutHeight)

	switch p.NutWorkaround {
	case param.NutCutReliefs:
		// Two stepped bridging reliefs so the hole ceiling prints
		// without support.
		s = k.CutBlind(s, kernel.Plane{Z: pocketTop}, pts,
			kernel.Rect{W: p.SquareNutWidth, L: p.ScrewHoleDiameter}, p.LayerHeight)
		s = k.CutBlind(s, kernel.Plane{Z: pocketTop + p.LayerHeight}, pts,
			kernel.Rect{W: p.ScrewHoleDiameter, L: p.ScrewHoleDiameter}, p.LayerHeight)
	case param.NutAddCeiling:
		// One solid layer over the pocket bridges the screw hole.
		s = k.Extrude(s, kernel.Plane{Z: pocketTop}, pts, nut, p.LayerHeight)
	default:
		return nil, fmt.Errorf("builder: unhandled nut workaround %v", p.NutWorkaround)
	}
	return s, nil
}

// degeneracyThreshold is the area below which a planar sliver between
// the rectangular gasket band and a per-screw ring is merged away.
func degeneracyThreshold(p *param.Params) float64 {
	return math.Pow(p.ScrewHoleDiameter, 1.5)
}

// reliefRadii centers a band of the given width between the box screw
// hole and the boss cylinder wall.
func reliefRadii(p *param.Params, width float64) (outer, inner float64) {
	base := p.BoxScrewHoleRadius()
	span := p.ScrewCylinderRadius() - base
	return base + (span+width)/2, base + (span-width)/2
}

// cutGasketSlot cuts the gasket groove into the box rim. For inside
// placement the groove detours around each boss as an annular ring, and
// any sliver of rim material left between the rectangular groove and a
// ring is cut away with it.
func cutGasketSlot(k kernel.Kernel, p *param.Params, box kernel.Solid, pts []kernel.Point) kernel.Solid {
	rim := kernel.Plane{Z: p.SplitZ(), Down: true}
	box = k.CutBlind(box, rim, nil, kernel.AnnularRect{
		OuterW: p.GasketSlotOuterWidth(), OuterL: p.GasketSlotOuterLength(),
		InnerW: p.GasketSlotInnerWidth(), InnerL: p.GasketSlotInnerLength(),
	}, p.GasketSlotDepth())

	if p.Placement == param.ScrewInsideBox {
		outerR, innerR := reliefRadii(p, p.GasketSlotWidth())
		box = k.CutBlind(box, rim, pts,
			kernel.Annulus{OuterR: outerR, InnerR: innerR}, p.GasketSlotDepth())

		for _, r := range k.Regions(box, rim) {
			if r.Area() < degeneracyThreshold(p) {
				box = k.CutRegion(box, r, p.GasketSlotDepth())
			}
		}
	}
	return box
}

// addGasketPress extrudes the press band under the lid rim. For inside
// placement each boss gets its own press ring, and any enclosed sliver
// between ring and band is filled so the press stays one solid loop.
func addGasketPress(k kernel.Kernel, p *param.Params, lid kernel.Solid, pts []kernel.Point) kernel.Solid {
	rim := kernel.Plane{Z: p.SplitZ(), Down: true}
	lid = k.Extrude(lid, rim, nil, kernel.AnnularRect{
		OuterW: p.GasketOuterWidth(), OuterL: p.GasketOuterLength(),
		InnerW: p.GasketInnerWidth(), InnerL: p.GasketInnerLength(),
	}, p.GasketPressHeight())

	if p.Placement == param.ScrewInsideBox {
		outerR, innerR := reliefRadii(p, p.GasketWidth)
		lid = k.Extrude(lid, rim, pts,
			kernel.Annulus{OuterR: outerR, InnerR: innerR}, p.GasketPressHeight())

		for _, v := range k.Voids(lid, rim) {
			if v.Area() < degeneracyThreshold(p) {
				lid = k.ExtrudeRegion(lid, v, p.GasketPressHeight())
			}
		}
	}
	return lid
}

// buildGasket creates the gasket cord as its own solid on the base
// plane, with per-boss rings for inside placement.
func buildGasket(k kernel.Kernel, p *param.Params, pts []kernel.Point) kernel.Solid {
	base := kernel.Plane{}
	g := k.Extrude(nil, base, nil, kernel.AnnularRect{
		OuterW: p.GasketOuterWidth(), OuterL: p.GasketOuterLength(),
		InnerW: p.GasketInnerWidth(), InnerL: p.GasketInnerLength(),
	}, p.GasketHeight)

	if p.Placement == param.ScrewInsideBox {
		outerR, innerR := reliefRadii(p, p.GasketWidth)
		g = k.Extrude(g, base, pts,
			kernel.Annulus{OuterR: outerR, InnerR: innerR}, p.GasketHeight)

		for _, v := range k.Voids(g, base) {
			if v.Area() < degeneracyThreshold(p) {
				g = k.ExtrudeRegion(g, v, p.GasketHeight)
			}
		}
	}
	return g
}

// applyGasketFillets rounds the groove and press walls in the gasket
// band and every vertical edge of the cord itself.
func applyGasketFillets(k kernel.Kernel, p *param.Params, sel selector.Set, box, lid, gasket kernel.Solid) (kernel.Solid, kernel.Solid, kernel.Solid, error) {
	var err error
	band := kernel.And{kernel.Vertical{}, sel.Gasket}
	box, err = k.Fillet(box, band, p.GasketFillet())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fillet gasket groove: %w", err)
	}
	lid, err = k.Fillet(lid, band, p.GasketFillet())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fillet gasket press: %w", err)
	}
	gasket, err = k.Fillet(gasket, kernel.Vertical{}, p.GasketFillet())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fillet gasket cord: %w", err)
	}
	return box, lid, gasket, nil
}

// addMountHolders extends the box bottom into a mounting tab with two
// countersunk holes on the length axis.
func addMountHolders(k kernel.Kernel, p *param.Params, box kernel.Solid) (kernel.Solid, error) {
	bottom := kernel.Plane{Z: 0, Down: true}
	box = k.Extrude(box, bottom, nil,
		kernel.Rect{W: p.OuterWidth() / 2, L: p.MountHolderTotalLength()},
		p.BottomLidThickness())

	var err error
	if p.MountHolderFillet {
		tab := kernel.And{kernel.Vertical{}, kernel.BoxSelector{
			Min: [3]float64{-(p.OuterWidth()/4 + 1), -(p.MountHolderTotalLength()/2 + 1), -(p.BottomLidThickness() + 1)},
			Max: [3]float64{p.OuterWidth()/4 + 1, p.MountHolderTotalLength()/2 + 1, 1},
		}}
		box, err = k.Fillet(box, tab, p.MountHolderFilletRadius())
		if err != nil {
			return nil, fmt.Errorf("fillet mount holder: %w", err)
		}
	}

	box, err = k.Fillet(box, kernel.OnPlane{Z: -p.BottomLidThickness()}, p.BottomLidFillet())
	if err != nil {
		return nil, fmt.Errorf("fillet mount holder bottom: %w", err)
	}

	// Holder holes sit halfway between the enclosure footprint and the
	// tab ends. Middle-of-width bosses widen that footprint.
	outerLen := p.OuterLength()
	if p.MiddleWidthScrews && p.Placement == param.ScrewOutsideBox {
		loc := p.OuterLength()/2 + p.ScrewCylinderRadius() - p.WallThickness()
		outerLen = (loc + p.ScrewCylinderRadius()) * 2
	}
	spread := outerLen + (p.MountHolderTotalLength()-outerLen)/2

	box = k.CskHole(box, bottom,
		[]kernel.Point{{Y: -spread / 2}, {Y: spread / 2}},
		p.MountHolderHoleDiameter, p.MountHolderHeadDiameter, cskAngle,
		p.BottomLidThickness())
	return box, nil
}
