package prism

import (
	"errors"
	"math"

	"github.com/chazu/enclosure/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PrismKernel)(nil)

// PrismKernel implements kernel.Kernel for plane-sketched prismatic
// solids.
type PrismKernel struct{}

// New returns a new PrismKernel.
func New() *PrismKernel {
	return &PrismKernel{}
}

// Extrude sketches the profile at the given points and extrudes it by
// depth in the plane direction. A nil solid starts a new body.
func (k *PrismKernel) Extrude(s kernel.Solid, pl kernel.Plane, at []kernel.Point, prof kernel.Profile, depth float64) kernel.Solid {
	return k.sketchOp(s, pl, at, prof, depth, opAdd)
}

// CutBlind sketches the profile at the given points and removes material
// to the given depth in the plane direction.
func (k *PrismKernel) CutBlind(s kernel.Solid, pl kernel.Plane, at []kernel.Point, prof kernel.Profile, depth float64) kernel.Solid {
	return k.sketchOp(s, pl, at, prof, depth, opCut)
}

func (k *PrismKernel) sketchOp(s kernel.Solid, pl kernel.Plane, at []kernel.Point, prof kernel.Profile, depth float64, op opKind) kernel.Solid {
	var c *solid
	if s == nil {
		c = newSolid()
	} else {
		c = unwrap(s).clone()
	}
	zmin, zmax := pl.Span(depth)
	f := feature{op: op, prof: prof, at: at, zmin: zmin, zmax: zmax}
	c.feats = append(c.feats, f)
	c.recordEdges(&c.feats[len(c.feats)-1])
	return c
}

// CskHole cuts countersunk bores at the given points.
func (k *PrismKernel) CskHole(s kernel.Solid, pl kernel.Plane, at []kernel.Point, holeDiam, headDiam, includedAngle, depth float64) kernel.Solid {
	c := unwrap(s).clone()
	b := &cskBore{
		holeR:  holeDiam / 2,
		headR:  headDiam / 2,
		taper:  math.Tan(includedAngle / 2 * math.Pi / 180),
		planeZ: pl.Z,
		down:   pl.Down,
		depth:  depth,
	}
	zmin, zmax := pl.Span(depth)
	c.feats = append(c.feats, feature{op: opCut, at: at, zmin: zmin, zmax: zmax, csk: b})
	c.recordEdges(&c.feats[len(c.feats)-1])
	return c
}

// Hole cuts plain bores at the given points.
func (k *PrismKernel) Hole(s kernel.Solid, pl kernel.Plane, at []kernel.Point, diam, depth float64) kernel.Solid {
	return k.CutBlind(s, pl, at, kernel.Circle{R: diam / 2}, depth)
}

// SplitZ splits the solid by the horizontal plane at z. Both halves keep
// the full feature history: the discarded side becomes a clip feature,
// so material added after the split is not subject to it.
func (k *PrismKernel) SplitZ(s kernel.Solid, z float64) (below, above kernel.Solid) {
	src := unwrap(s)
	lo := src.clone()
	lo.feats = append(lo.feats, feature{op: opCut, clip: &clipPlane{z: z, keepBelow: true}})
	lo.edges = clampEdges(lo.edges, math.Inf(-1), z)
	hi := src.clone()
	hi.feats = append(hi.feats, feature{op: opCut, clip: &clipPlane{z: z, keepBelow: false}})
	hi.edges = clampEdges(hi.edges, z, math.Inf(1))
	return lo, hi
}

// Edges returns the recorded edges matched by the selector.
func (k *PrismKernel) Edges(s kernel.Solid, sel kernel.Selector) []kernel.Edge {
	var out []kernel.Edge
	for _, e := range unwrap(s).edges {
		if sel.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// ErrEmptyFillet is reported when a fillet selector matches no edges.
var ErrEmptyFillet = errors.New("prism: fillet selector matched no edges")

// Fillet records a rounding of the selected edges. An empty selection is
// an error so that callers abort instead of silently skipping the round.
func (k *PrismKernel) Fillet(s kernel.Solid, sel kernel.Selector, radius float64) (kernel.Solid, error) {
	matched := k.Edges(s, sel)
	if len(matched) == 0 {
		return nil, ErrEmptyFillet
	}
	c := unwrap(s).clone()
	c.fillets = append(c.fillets, Fillet{Radius: radius, Edges: matched})
	return c, nil
}

// Regions returns the connected material areas of the section just
// inside the plane, ascending by area.
func (k *PrismKernel) Regions(s kernel.Solid, pl kernel.Plane) []kernel.Region {
	return sectionComponents(unwrap(s), pl, false)
}

// Voids returns the bounded empty areas enclosed by material on the
// section just inside the plane, ascending by area.
func (k *PrismKernel) Voids(s kernel.Solid, pl kernel.Plane) []kernel.Region {
	return sectionComponents(unwrap(s), pl, true)
}

// CutRegion removes the region footprint to the given depth, advancing
// in the direction the region's plane was measured on.
func (k *PrismKernel) CutRegion(s kernel.Solid, r kernel.Region, depth float64) kernel.Solid {
	return regionOp(unwrap(s), r.(*region), depth, opCut)
}

// ExtrudeRegion adds material over the region footprint.
func (k *PrismKernel) ExtrudeRegion(s kernel.Solid, r kernel.Region, height float64) kernel.Solid {
	return regionOp(unwrap(s), r.(*region), height, opAdd)
}

func regionOp(s *solid, r *region, depth float64, op opKind) kernel.Solid {
	c := s.clone()
	zmin, zmax := r.pl.Span(depth)
	c.feats = append(c.feats, feature{op: op, zmin: zmin, zmax: zmax, mask: r.mask})
	return c
}
