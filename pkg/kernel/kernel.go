// Package kernel defines the abstract solid-modeling kernel interface.
// Implementations (prism) provide sketch-based solid construction,
// boolean splits, hole primitives, edge selection and fillets behind
// this interface. The kernel abstraction keeps the enclosure pipeline
// independent of the geometry backend.
package kernel

// Point is a 2D coordinate in a sketch plane.
type Point struct {
	X, Y float64
}

// Plane is a horizontal reference plane value object. Steps that
// establish a plane pass it forward explicitly; there is no string-keyed
// workplane registry. Down selects the direction in which extrusions and
// blind cuts advance from the plane.
type Plane struct {
	Z    float64
	Down bool
}

// Span returns the world-frame z-range covered by an operation of the
// given depth started on the plane.
func (p Plane) Span(depth float64) (zmin, zmax float64) {
	if p.Down {
		return p.Z - depth, p.Z
	}
	return p.Z, p.Z + depth
}

// Profile is a closed planar sketch profile. The concrete types below
// cover everything the enclosure pipeline sketches.
type Profile interface {
	profile()
}

// Rect is a rectangle centered on the sketch origin.
type Rect struct {
	W, L float64
}

// AnnularRect is the band between two concentric rectangles.
type AnnularRect struct {
	OuterW, OuterL float64
	InnerW, InnerL float64
}

// Circle is a disk centered on the sketch origin.
type Circle struct {
	R float64
}

// Annulus is the band between two concentric circles.
type Annulus struct {
	OuterR, InnerR float64
}

func (Rect) profile()        {}
func (AnnularRect) profile() {}
func (Circle) profile()      {}
func (Annulus) profile()     {}

// Region is a connected planar area measured on a solid section,
// produced by Regions or Voids. It carries enough state for the
// implementation to cut or extrude exactly that area.
type Region interface {
	Area() float64
	Perimeter() float64
}

// Solid is an opaque handle to a kernel solid. Operations never mutate
// a Solid in place; they return a replacement handle.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-modeling service.
//
// Operations that place sketches accept a point array; a nil or empty
// array places a single sketch at the plane origin. Extrude with a nil
// solid starts a new body. Kernel-level failures outside Fillet are
// programming errors and panic; Fillet reports an empty edge selection
// as an error because parameter-dependent edge sets can legitimately
// come up empty and the pipeline must abort cleanly.
type Kernel interface {
	// Sketch-and-extrude (additive) on a reference plane.
	Extrude(s Solid, pl Plane, at []Point, prof Profile, depth float64) Solid

	// Sketch-and-cut-blind (subtractive) on a reference plane.
	CutBlind(s Solid, pl Plane, at []Point, prof Profile, depth float64) Solid

	// CskHole cuts countersunk holes: a cone opening to headDiam at the
	// plane, tapering at the included angle down to holeDiam, then a
	// plain bore of holeDiam to the full depth.
	CskHole(s Solid, pl Plane, at []Point, holeDiam, headDiam, includedAngle, depth float64) Solid

	// Hole cuts plain holes of the given diameter to the given depth.
	Hole(s Solid, pl Plane, at []Point, diam, depth float64) Solid

	// SplitZ cuts the solid with the horizontal plane at z and keeps
	// both halves as independent solids.
	SplitZ(s Solid, z float64) (below, above Solid)

	// Edges returns the edges matched by the selector.
	Edges(s Solid, sel Selector) []Edge

	// Fillet rounds the selected edge set with the given radius.
	Fillet(s Solid, sel Selector, radius float64) (Solid, error)

	// Regions returns the connected material areas of the section just
	// inside the plane, sorted by ascending area.
	Regions(s Solid, pl Plane) []Region

	// Voids returns the bounded empty areas enclosed by material on the
	// same section, sorted by ascending area.
	Voids(s Solid, pl Plane) []Region

	// CutRegion removes the region's footprint to the given depth,
	// advancing in the plane direction the region was measured on.
	CutRegion(s Solid, r Region, depth float64) Solid

	// ExtrudeRegion adds material over the region's footprint.
	ExtrudeRegion(s Solid, r Region, height float64) Solid

	// ToMesh tessellates the solid into a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
