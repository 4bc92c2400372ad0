package prism

import (
	"math"
	"sort"

	"github.com/chazu/enclosure/pkg/kernel"
)

// probeEps offsets the section sample off the reference plane, onto the
// side the plane faces, so the sample never lands exactly on a feature
// boundary.
const probeEps = 1e-4

// Raster resolution bounds. minStep keeps small sections from wasting
// cells; maxCells caps memory on large sections.
const (
	minStep  = 0.025
	maxCells = 4 << 20
	padCells = 2
)

// sectionMask is a raster bitmask over a planar grid. Regions carry one
// so that CutRegion and ExtrudeRegion reproduce exactly the labeled
// footprint.
type sectionMask struct {
	x0, y0 float64
	step   float64
	nx, ny int
	bits   []uint64
}

func newSectionMask(x0, y0, step float64, nx, ny int) *sectionMask {
	return &sectionMask{
		x0: x0, y0: y0, step: step, nx: nx, ny: ny,
		bits: make([]uint64, (nx*ny+63)/64),
	}
}

func (m *sectionMask) set(ix, iy int) {
	i := iy*m.nx + ix
	m.bits[i/64] |= 1 << (i % 64)
}

func (m *sectionMask) get(ix, iy int) bool {
	i := iy*m.nx + ix
	return m.bits[i/64]&(1<<(i%64)) != 0
}

// contains tests an arbitrary planar point against the mask.
func (m *sectionMask) contains(x, y float64) bool {
	ix := int(math.Floor((x - m.x0) / m.step))
	iy := int(math.Floor((y - m.y0) / m.step))
	if ix < 0 || ix >= m.nx || iy < 0 || iy >= m.ny {
		return false
	}
	return m.get(ix, iy)
}

// region is the prism implementation of kernel.Region.
type region struct {
	area  float64
	perim float64
	mask  *sectionMask
	pl    kernel.Plane
}

var _ kernel.Region = (*region)(nil)

func (r *region) Area() float64      { return r.area }
func (r *region) Perimeter() float64 { return r.perim }

// sectionComponents rasterizes the section just inside the plane and
// labels its connected components: material components when voids is
// false, bounded empty components when voids is true. Components are
// returned ascending by area.
func sectionComponents(s *solid, pl kernel.Plane, voids bool) []kernel.Region {
	z := pl.Z + probeEps
	if pl.Down {
		z = pl.Z - probeEps
	}
	min, max := s.BoundingBox()
	w, h := max[0]-min[0], max[1]-min[1]
	if w <= 0 || h <= 0 {
		return nil
	}
	step := math.Max(minStep, math.Sqrt(w*h/maxCells))
	nx := int(math.Ceil(w/step)) + 2*padCells
	ny := int(math.Ceil(h/step)) + 2*padCells
	x0 := min[0] - float64(padCells)*step
	y0 := min[1] - float64(padCells)*step

	material := make([]bool, nx*ny)
	for iy := 0; iy < ny; iy++ {
		y := y0 + (float64(iy)+0.5)*step
		for ix := 0; ix < nx; ix++ {
			x := x0 + (float64(ix)+0.5)*step
			material[iy*nx+ix] = s.contains(x, y, z)
		}
	}

	labels := make([]int32, nx*ny)
	next := int32(0)
	var queue []int
	var borderLabels map[int32]bool
	if voids {
		borderLabels = make(map[int32]bool)
	}
	for start := range material {
		if labels[start] != 0 || material[start] == voids {
			continue
		}
		next++
		labels[start] = next
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			c := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			cx, cy := c%nx, c/nx
			if voids && (cx == 0 || cy == 0 || cx == nx-1 || cy == ny-1) {
				borderLabels[next] = true
			}
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				px, py := cx+d[0], cy+d[1]
				if px < 0 || px >= nx || py < 0 || py >= ny {
					continue
				}
				n := py*nx + px
				if labels[n] == 0 && material[n] != voids {
					labels[n] = next
					queue = append(queue, n)
				}
			}
		}
	}

	counts := make([]int, next+1)
	sides := make([]int, next+1)
	masks := make([]*sectionMask, next+1)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			l := labels[iy*nx+ix]
			if l == 0 || (voids && borderLabels[l]) {
				continue
			}
			if masks[l] == nil {
				masks[l] = newSectionMask(x0, y0, step, nx, ny)
			}
			masks[l].set(ix, iy)
			counts[l]++
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				px, py := ix+d[0], iy+d[1]
				if px < 0 || px >= nx || py < 0 || py >= ny || labels[py*nx+px] != l {
					sides[l]++
				}
			}
		}
	}

	var out []kernel.Region
	for l := int32(1); l <= next; l++ {
		if masks[l] == nil {
			continue
		}
		out = append(out, &region{
			area:  float64(counts[l]) * step * step,
			perim: float64(sides[l]) * step,
			mask:  masks[l],
			pl:    pl,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Area() < out[j].Area() })
	return out
}
