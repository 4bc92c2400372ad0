package kernel

// EdgeKind distinguishes straight edges from circular ones.
type EdgeKind int

const (
	EdgeLine EdgeKind = iota
	EdgeCircle
)

// Edge is a topological edge reported by a kernel. Lines carry their
// endpoints in A and B; circles carry Center and R and lie in a
// horizontal plane.
type Edge struct {
	Kind   EdgeKind
	A, B   [3]float64
	Center [3]float64
	R      float64
}

// Midpoint returns the edge midpoint, the reference point all spatial
// selectors classify by. For circles it is the circle center.
func (e Edge) Midpoint() [3]float64 {
	if e.Kind == EdgeCircle {
		return e.Center
	}
	return [3]float64{
		(e.A[0] + e.B[0]) / 2,
		(e.A[1] + e.B[1]) / 2,
		(e.A[2] + e.B[2]) / 2,
	}
}

// IsVertical reports whether the edge is a straight line parallel to Z.
func (e Edge) IsVertical() bool {
	return e.Kind == EdgeLine &&
		e.A[0] == e.B[0] && e.A[1] == e.B[1] && e.A[2] != e.B[2]
}

// Selector classifies edges by geometric predicate. Selectors are pure
// and stateless: they reference parameter-derived bounds, not solid
// state, so they stay valid as geometry evolves.
type Selector interface {
	Matches(e Edge) bool
}

// BoxSelector matches edges whose midpoint lies inside the axis-aligned
// box spanned by Min and Max (inclusive). Corners may be given in any
// order.
type BoxSelector struct {
	Min, Max [3]float64
}

func (s BoxSelector) Matches(e Edge) bool {
	m := e.Midpoint()
	for i := 0; i < 3; i++ {
		lo, hi := s.Min[i], s.Max[i]
		if lo > hi {
			lo, hi = hi, lo
		}
		if m[i] < lo || m[i] > hi {
			return false
		}
	}
	return true
}

// Vertical matches straight edges parallel to the Z axis.
type Vertical struct{}

func (Vertical) Matches(e Edge) bool { return e.IsVertical() }

// CircleType matches circular edges.
type CircleType struct{}

func (CircleType) Matches(e Edge) bool { return e.Kind == EdgeCircle }

// OnPlane matches edges lying in the horizontal plane at Z, within a
// small tolerance.
type OnPlane struct {
	Z float64
}

func (s OnPlane) Matches(e Edge) bool {
	const tol = 1e-6
	if e.Kind == EdgeCircle {
		return abs(e.Center[2]-s.Z) < tol
	}
	return abs(e.A[2]-s.Z) < tol && abs(e.B[2]-s.Z) < tol
}

// Inverse matches edges the wrapped selector rejects.
type Inverse struct {
	S Selector
}

func (s Inverse) Matches(e Edge) bool { return !s.S.Matches(e) }

// Sub matches edges selected by A but not by B.
type Sub struct {
	A, B Selector
}

func (s Sub) Matches(e Edge) bool { return s.A.Matches(e) && !s.B.Matches(e) }

// And matches edges selected by every member.
type And []Selector

func (s And) Matches(e Edge) bool {
	for _, sel := range s {
		if !sel.Matches(e) {
			return false
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
