package prism

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/enclosure/pkg/kernel"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// ToMesh converts a solid to a triangle mesh using marching cubes. The
// feature history is evaluated into an sdf.SDF3 and tessellated. Fillet
// records are model attributes and do not round the tessellated shape.
func (k *PrismKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := evaluate(unwrap(s))
	if sdf3 == nil {
		return nil, errors.New("prism: cannot mesh an empty solid")
	}

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// evaluate folds the feature history into a signed distance field,
// preserving operation order so that later features win.
func evaluate(s *solid) sdf.SDF3 {
	var acc sdf.SDF3
	for i := range s.feats {
		f := &s.feats[i]
		if f.clip != nil {
			if acc == nil {
				continue
			}
			n := v3.Vec{Z: 1}
			if f.clip.keepBelow {
				n = v3.Vec{Z: -1}
			}
			acc = sdf.Cut3D(acc, v3.Vec{Z: f.clip.z}, n)
			continue
		}
		part := featureSDF(f)
		switch {
		case f.op == opAdd && acc == nil:
			acc = part
		case f.op == opAdd:
			acc = sdf.Union3D(acc, part)
		case acc != nil:
			acc = sdf.Difference3D(acc, part)
		}
	}
	return acc
}

func featureSDF(f *feature) sdf.SDF3 {
	if f.csk != nil {
		parts := make([]sdf.SDF3, 0, len(f.placements()))
		for _, pt := range f.placements() {
			parts = append(parts, cskSDF(f.csk, pt))
		}
		return sdf.Union3D(parts...)
	}

	var prof2 sdf.SDF2
	if f.mask != nil {
		prof2 = maskSDF(f.mask)
	} else {
		prof2 = profileSDF(f.prof)
	}

	if f.mask == nil {
		placed := make([]sdf.SDF2, 0, len(f.placements()))
		for _, pt := range f.placements() {
			placed = append(placed,
				sdf.Transform2D(prof2, sdf.Translate2d(v2.Vec{X: pt.X, Y: pt.Y})))
		}
		prof2 = sdf.Union2D(placed...)
	}

	h := f.zmax - f.zmin
	e := sdf.Extrude3D(prof2, h)
	// Extrude3D spans z in [-h/2, h/2]; shift into the feature window.
	return sdf.Transform3D(e, sdf.Translate3d(v3.Vec{Z: (f.zmin + f.zmax) / 2}))
}

func profileSDF(p kernel.Profile) sdf.SDF2 {
	switch q := p.(type) {
	case kernel.Rect:
		return box2d(q.W, q.L)
	case kernel.AnnularRect:
		return sdf.Difference2D(box2d(q.OuterW, q.OuterL), box2d(q.InnerW, q.InnerL))
	case kernel.Circle:
		return circle2d(q.R)
	case kernel.Annulus:
		return sdf.Difference2D(circle2d(q.OuterR), circle2d(q.InnerR))
	}
	panic(fmt.Sprintf("prism: unknown profile %T", p))
}

func box2d(w, l float64) sdf.SDF2 {
	return sdf.Box2D(v2.Vec{X: w, Y: l}, 0)
}

func circle2d(r float64) sdf.SDF2 {
	s, err := sdf.Circle2D(r)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Circle2D: %v", err))
	}
	return s
}

// cskSDF builds a countersunk bore as a cone joined with a cylinder.
func cskSDF(b *cskBore, pt kernel.Point) sdf.SDF3 {
	coneDepth := (b.headR - b.holeR) / b.taper
	sign := 1.0
	if b.down {
		sign = -1.0
	}

	r0, r1 := b.headR, b.holeR
	if b.down {
		r0, r1 = r1, r0
	}
	cone, err := sdf.Cone3D(coneDepth, r0, r1, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cone3D: %v", err))
	}
	cone = sdf.Transform3D(cone,
		sdf.Translate3d(v3.Vec{X: pt.X, Y: pt.Y, Z: b.planeZ + sign*coneDepth/2}))

	bore, err := sdf.Cylinder3D(b.depth, b.holeR, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	bore = sdf.Transform3D(bore,
		sdf.Translate3d(v3.Vec{X: pt.X, Y: pt.Y, Z: b.planeZ + sign*b.depth/2}))

	return sdf.Union3D(cone, bore)
}

// maskSDF converts a raster mask into a union of row-run boxes.
func maskSDF(m *sectionMask) sdf.SDF2 {
	var runs []sdf.SDF2
	for iy := 0; iy < m.ny; iy++ {
		run := -1
		for ix := 0; ix <= m.nx; ix++ {
			on := ix < m.nx && m.get(ix, iy)
			if on && run < 0 {
				run = ix
			}
			if !on && run >= 0 {
				w := float64(ix-run) * m.step
				cx := m.x0 + (float64(run)+float64(ix-run)/2)*m.step
				cy := m.y0 + (float64(iy)+0.5)*m.step
				b := sdf.Transform2D(box2d(w, m.step),
					sdf.Translate2d(v2.Vec{X: cx, Y: cy}))
				runs = append(runs, b)
				run = -1
			}
		}
	}
	if len(runs) == 0 {
		panic("prism: empty region mask")
	}
	return sdf.Union2D(runs...)
}
