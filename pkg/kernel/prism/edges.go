package prism

import (
	"math"

	"github.com/chazu/enclosure/pkg/kernel"
)

// recordEdges appends the boundary edges a feature introduces. Corner
// verticals and boundary wires are recorded at both sketch planes of the
// feature so that downstream selectors can match either end.
func (s *solid) recordEdges(f *feature) {
	if f.mask != nil {
		return
	}
	if f.csk != nil {
		for _, pt := range f.placements() {
			s.recordCskEdges(f.csk, pt)
		}
		return
	}
	for _, pt := range f.placements() {
		switch q := f.prof.(type) {
		case kernel.Rect:
			s.recordRectEdges(pt, q.W, q.L, f.zmin, f.zmax)
		case kernel.AnnularRect:
			s.recordRectEdges(pt, q.OuterW, q.OuterL, f.zmin, f.zmax)
			s.recordRectEdges(pt, q.InnerW, q.InnerL, f.zmin, f.zmax)
		case kernel.Circle:
			s.recordCircleEdges(f, pt, q.R)
		case kernel.Annulus:
			s.recordRims(pt, q.OuterR, f.zmin)
			s.recordRims(pt, q.OuterR, f.zmax)
			s.recordRims(pt, q.InnerR, f.zmin)
			s.recordRims(pt, q.InnerR, f.zmax)
		}
	}
}

func (s *solid) recordRectEdges(pt kernel.Point, w, l, zmin, zmax float64) {
	hw, hl := w/2, l/2
	corners := [4]kernel.Point{
		{X: pt.X - hw, Y: pt.Y - hl},
		{X: pt.X + hw, Y: pt.Y - hl},
		{X: pt.X + hw, Y: pt.Y + hl},
		{X: pt.X - hw, Y: pt.Y + hl},
	}
	for _, c := range corners {
		s.edges = append(s.edges, kernel.Edge{
			Kind: kernel.EdgeLine,
			A:    [3]float64{c.X, c.Y, zmin},
			B:    [3]float64{c.X, c.Y, zmax},
		})
	}
	for _, z := range [2]float64{zmin, zmax} {
		for i := range corners {
			a, b := corners[i], corners[(i+1)%4]
			s.edges = append(s.edges, kernel.Edge{
				Kind: kernel.EdgeLine,
				A:    [3]float64{a.X, a.Y, z},
				B:    [3]float64{b.X, b.Y, z},
			})
		}
	}
}

// recordCircleEdges records the rim circles of a cylindrical feature and
// the vertical seam lines where the cylinder meets the side wall of an
// earlier rectangular feature.
func (s *solid) recordCircleEdges(f *feature, pt kernel.Point, r float64) {
	s.recordRims(pt, r, f.zmin)
	s.recordRims(pt, r, f.zmax)
	for i := range s.feats {
		prev := &s.feats[i]
		if prev == f {
			break
		}
		for _, pp := range prev.placements() {
			switch q := prev.prof.(type) {
			case kernel.Rect:
				s.recordSeams(pt, r, pp, q.W, q.L, f.zmin, f.zmax)
			case kernel.AnnularRect:
				s.recordSeams(pt, r, pp, q.OuterW, q.OuterL, f.zmin, f.zmax)
				s.recordSeams(pt, r, pp, q.InnerW, q.InnerL, f.zmin, f.zmax)
			}
		}
	}
}

// recordSeams intersects a circle with the four sides of a rectangle and
// records a vertical line at each crossing.
func (s *solid) recordSeams(c kernel.Point, r float64, pt kernel.Point, w, l, zmin, zmax float64) {
	hw, hl := w/2, l/2
	// Sides at constant x.
	for _, x := range [2]float64{pt.X - hw, pt.X + hw} {
		dx := x - c.X
		if math.Abs(dx) >= r {
			continue
		}
		dy := math.Sqrt(r*r - dx*dx)
		for _, y := range [2]float64{c.Y - dy, c.Y + dy} {
			if y >= pt.Y-hl && y <= pt.Y+hl {
				s.recordVertical(x, y, zmin, zmax)
			}
		}
	}
	// Sides at constant y.
	for _, y := range [2]float64{pt.Y - hl, pt.Y + hl} {
		dy := y - c.Y
		if math.Abs(dy) >= r {
			continue
		}
		dx := math.Sqrt(r*r - dy*dy)
		for _, x := range [2]float64{c.X - dx, c.X + dx} {
			if x >= pt.X-hw && x <= pt.X+hw {
				s.recordVertical(x, y, zmin, zmax)
			}
		}
	}
}

func (s *solid) recordVertical(x, y, zmin, zmax float64) {
	s.edges = append(s.edges, kernel.Edge{
		Kind: kernel.EdgeLine,
		A:    [3]float64{x, y, zmin},
		B:    [3]float64{x, y, zmax},
	})
}

func (s *solid) recordRims(pt kernel.Point, r, z float64) {
	s.edges = append(s.edges, kernel.Edge{
		Kind:   kernel.EdgeCircle,
		Center: [3]float64{pt.X, pt.Y, z},
		R:      r,
	})
}

func (s *solid) recordCskEdges(b *cskBore, pt kernel.Point) {
	coneDepth := (b.headR - b.holeR) / b.taper
	sign := 1.0
	if b.down {
		sign = -1.0
	}
	s.recordRims(pt, b.headR, b.planeZ)
	s.recordRims(pt, b.holeR, b.planeZ+sign*coneDepth)
	s.recordRims(pt, b.holeR, b.planeZ+sign*b.depth)
}

const edgeClipEps = 1e-9

// clampEdges restricts an edge list to the z-window left by a split.
// Vertical lines are clamped; other edges outside the window are
// dropped.
func clampEdges(edges []kernel.Edge, clipLo, clipHi float64) []kernel.Edge {
	out := make([]kernel.Edge, 0, len(edges))
	for _, e := range edges {
		switch e.Kind {
		case kernel.EdgeCircle:
			if e.Center[2] < clipLo-edgeClipEps || e.Center[2] > clipHi+edgeClipEps {
				continue
			}
			out = append(out, e)
		case kernel.EdgeLine:
			if e.IsVertical() {
				lo := math.Max(math.Min(e.A[2], e.B[2]), clipLo)
				hi := math.Min(math.Max(e.A[2], e.B[2]), clipHi)
				if hi-lo <= edgeClipEps {
					continue
				}
				e.A[2], e.B[2] = lo, hi
				out = append(out, e)
				continue
			}
			if e.A[2] < clipLo-edgeClipEps || e.A[2] > clipHi+edgeClipEps {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}
