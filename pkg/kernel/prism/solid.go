// Package prism implements the kernel.Kernel interface for solids built
// from horizontal sketch planes: axis-aligned extrusions, blind cuts,
// hole bores and plane splits. Solids are stored as ordered feature
// histories; membership queries replay the history, planar topology
// queries rasterize a section, and meshing evaluates the history into a
// github.com/deadsy/sdfx signed distance field.
package prism

import (
	"math"

	"github.com/chazu/enclosure/pkg/kernel"
)

type opKind int

const (
	opAdd opKind = iota
	opCut
)

// cskBore is a countersunk bore: a cone opening to headR at the plane,
// tapering down to holeR, then a plain bore of holeR to the full depth.
type cskBore struct {
	holeR, headR float64
	taper        float64 // radius decrease per unit depth below the plane
	planeZ       float64
	down         bool
	depth        float64
}

// clipPlane halves the body at a split. It is stored as a cut feature
// that removes everything on the discarded side, so material added later
// in the history is unaffected.
type clipPlane struct {
	z         float64
	keepBelow bool
}

func (c *clipPlane) hits(z float64) bool {
	if c.keepBelow {
		return z > c.z
	}
	return z < c.z
}

// feature is one history entry. Exactly one of prof, csk, mask or clip
// is set.
type feature struct {
	op         opKind
	prof       kernel.Profile
	at         []kernel.Point
	zmin, zmax float64
	csk        *cskBore
	mask       *sectionMask
	clip       *clipPlane
}

// Fillet records a rounding applied to an edge set. The prism backend
// keeps fillets as model attributes: they do not alter the topology the
// pipeline queries, and meshing renders the nominal sharp-edged shape.
type Fillet struct {
	Radius float64
	Edges  []kernel.Edge
}

// solid is the prism implementation of kernel.Solid.
type solid struct {
	feats   []feature
	edges   []kernel.Edge
	fillets []Fillet
}

var _ kernel.Solid = (*solid)(nil)

func newSolid() *solid {
	return &solid{}
}

// clone copies the solid so that appends never alias a previous handle.
func (s *solid) clone() *solid {
	c := &solid{
		feats:   make([]feature, len(s.feats), len(s.feats)+1),
		edges:   make([]kernel.Edge, len(s.edges), len(s.edges)+8),
		fillets: make([]Fillet, len(s.fillets), len(s.fillets)+1),
	}
	copy(c.feats, s.feats)
	copy(c.edges, s.edges)
	copy(c.fillets, s.fillets)
	return c
}

// contains reports whether the point is inside the solid, replaying the
// feature history in order so that later operations win.
func (s *solid) contains(x, y, z float64) bool {
	inside := false
	for i := range s.feats {
		f := &s.feats[i]
		if f.hits(x, y, z) {
			inside = f.op == opAdd
		}
	}
	return inside
}

func (f *feature) hits(x, y, z float64) bool {
	if f.clip != nil {
		return f.clip.hits(z)
	}
	if f.csk != nil {
		for _, pt := range f.placements() {
			if f.csk.hits(x-pt.X, y-pt.Y, z) {
				return true
			}
		}
		return false
	}
	if z < f.zmin || z > f.zmax {
		return false
	}
	if f.mask != nil {
		return f.mask.contains(x, y)
	}
	for _, pt := range f.placements() {
		if profileContains(f.prof, x-pt.X, y-pt.Y) {
			return true
		}
	}
	return false
}

// placements returns the sketch centers; an empty point array means a
// single sketch at the plane origin.
func (f *feature) placements() []kernel.Point {
	if len(f.at) == 0 {
		return originPoint
	}
	return f.at
}

var originPoint = []kernel.Point{{}}

func (b *cskBore) hits(x, y, z float64) bool {
	var d float64 // depth below the bore plane
	if b.down {
		d = b.planeZ - z
	} else {
		d = z - b.planeZ
	}
	if d < 0 || d > b.depth {
		return false
	}
	r := b.headR - d*b.taper
	if r < b.holeR {
		r = b.holeR
	}
	return x*x+y*y <= r*r
}

func profileContains(p kernel.Profile, dx, dy float64) bool {
	switch q := p.(type) {
	case kernel.Rect:
		return math.Abs(dx) <= q.W/2 && math.Abs(dy) <= q.L/2
	case kernel.AnnularRect:
		in := math.Abs(dx) <= q.InnerW/2 && math.Abs(dy) <= q.InnerL/2
		out := math.Abs(dx) <= q.OuterW/2 && math.Abs(dy) <= q.OuterL/2
		return out && !in
	case kernel.Circle:
		return dx*dx+dy*dy <= q.R*q.R
	case kernel.Annulus:
		d2 := dx*dx + dy*dy
		return d2 >= q.InnerR*q.InnerR && d2 <= q.OuterR*q.OuterR
	}
	return false
}

// BoundingBox returns the axis-aligned bounds of all additive features,
// clipped by the plane splits that follow them in the history. Cuts are
// ignored, so the box is exact for outer dimensions and conservative
// elsewhere.
func (s *solid) BoundingBox() (min, max [3]float64) {
	// suffix windows: window[i] is the z-range left by clips after i.
	lo := make([]float64, len(s.feats))
	hi := make([]float64, len(s.feats))
	cl, ch := math.Inf(-1), math.Inf(1)
	for i := len(s.feats) - 1; i >= 0; i-- {
		lo[i], hi[i] = cl, ch
		if c := s.feats[i].clip; c != nil {
			if c.keepBelow {
				ch = math.Min(ch, c.z)
			} else {
				cl = math.Max(cl, c.z)
			}
		}
	}
	first := true
	for i := range s.feats {
		f := &s.feats[i]
		if f.op != opAdd {
			continue
		}
		zlo := math.Max(f.zmin, lo[i])
		zhi := math.Min(f.zmax, hi[i])
		if zlo > zhi {
			continue
		}
		for _, pt := range f.placements() {
			hw, hl := profileExtent(f.prof, f.mask)
			var fmin, fmax [3]float64
			if f.mask != nil {
				fmin = [3]float64{f.mask.x0, f.mask.y0, zlo}
				fmax = [3]float64{f.mask.x0 + float64(f.mask.nx)*f.mask.step,
					f.mask.y0 + float64(f.mask.ny)*f.mask.step, zhi}
			} else {
				fmin = [3]float64{pt.X - hw, pt.Y - hl, zlo}
				fmax = [3]float64{pt.X + hw, pt.Y + hl, zhi}
			}
			if first {
				min, max = fmin, fmax
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], fmin[i])
				max[i] = math.Max(max[i], fmax[i])
			}
		}
	}
	return min, max
}

// profileExtent returns the half-extents of a profile.
func profileExtent(p kernel.Profile, _ *sectionMask) (hw, hl float64) {
	switch q := p.(type) {
	case kernel.Rect:
		return q.W / 2, q.L / 2
	case kernel.AnnularRect:
		return q.OuterW / 2, q.OuterL / 2
	case kernel.Circle:
		return q.R, q.R
	case kernel.Annulus:
		return q.OuterR, q.OuterR
	}
	return 0, 0
}

// Fillets exposes the fillet records of a prism solid for inspection.
func Fillets(s kernel.Solid) []Fillet {
	return unwrap(s).fillets
}

// unwrap extracts the prism solid from a kernel.Solid handle.
func unwrap(s kernel.Solid) *solid {
	return s.(*solid)
}
