package kernel

import "testing"

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Edge and selector tests ---

func vline(x, y, z0, z1 float64) Edge {
	return Edge{Kind: EdgeLine, A: [3]float64{x, y, z0}, B: [3]float64{x, y, z1}}
}

func hline(x0, y0, x1, y1, z float64) Edge {
	return Edge{Kind: EdgeLine, A: [3]float64{x0, y0, z}, B: [3]float64{x1, y1, z}}
}

func circle(x, y, z, r float64) Edge {
	return Edge{Kind: EdgeCircle, Center: [3]float64{x, y, z}, R: r}
}

func TestEdgeMidpoint(t *testing.T) {
	e := vline(2, 3, 0, 10)
	if got := e.Midpoint(); got != [3]float64{2, 3, 5} {
		t.Errorf("Midpoint() = %v, want [2 3 5]", got)
	}
	c := circle(1, 2, 3, 4)
	if got := c.Midpoint(); got != [3]float64{1, 2, 3} {
		t.Errorf("circle Midpoint() = %v, want center", got)
	}
}

func TestEdgeIsVertical(t *testing.T) {
	tests := []struct {
		name string
		e    Edge
		want bool
	}{
		{"vertical line", vline(1, 1, 0, 5), true},
		{"horizontal line", hline(0, 0, 5, 0, 2), false},
		{"circle", circle(0, 0, 0, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.IsVertical(); got != tt.want {
				t.Errorf("IsVertical() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxSelector(t *testing.T) {
	sel := BoxSelector{
		Min: [3]float64{-5, -5, -1},
		Max: [3]float64{5, 5, 11},
	}
	if !sel.Matches(vline(0, 0, 0, 10)) {
		t.Error("BoxSelector rejected edge with midpoint inside")
	}
	if sel.Matches(vline(6, 0, 0, 10)) {
		t.Error("BoxSelector matched edge with midpoint outside")
	}
	// Midpoint classification: an edge poking out of the box still
	// matches while its midpoint is inside.
	if !sel.Matches(vline(0, 0, -4, 10)) {
		t.Error("BoxSelector rejected edge whose midpoint is inside")
	}

	// Swapped corners are normalized.
	swapped := BoxSelector{Min: sel.Max, Max: sel.Min}
	if !swapped.Matches(vline(0, 0, 0, 10)) {
		t.Error("BoxSelector with swapped corners rejected inside edge")
	}
}

func TestSelectorAlgebra(t *testing.T) {
	inner := BoxSelector{Min: [3]float64{-5, -5, -5}, Max: [3]float64{5, 5, 5}}
	innerEdge := vline(0, 0, -2, 2)
	outerEdge := vline(8, 0, -2, 2)

	if (Sub{Vertical{}, inner}).Matches(innerEdge) {
		t.Error("Sub matched an edge selected by B")
	}
	if !(Sub{Vertical{}, inner}).Matches(outerEdge) {
		t.Error("Sub rejected a vertical edge outside B")
	}
	if !(Inverse{inner}).Matches(outerEdge) {
		t.Error("Inverse rejected an edge outside the wrapped box")
	}
	if !(And{Vertical{}, inner}).Matches(innerEdge) {
		t.Error("And rejected an edge matching all members")
	}
	if (And{Vertical{}, inner}).Matches(circle(0, 0, 0, 1)) {
		t.Error("And matched a circle against Vertical")
	}
}

func TestOnPlaneSelector(t *testing.T) {
	sel := OnPlane{Z: 10}
	if !sel.Matches(hline(0, 0, 5, 5, 10)) {
		t.Error("OnPlane rejected a line in the plane")
	}
	if sel.Matches(vline(0, 0, 5, 10)) {
		t.Error("OnPlane matched a vertical line touching the plane")
	}
	if !sel.Matches(circle(0, 0, 10, 2)) {
		t.Error("OnPlane rejected a circle in the plane")
	}
	if sel.Matches(circle(0, 0, 9.5, 2)) {
		t.Error("OnPlane matched a circle off the plane")
	}
}

func TestPlaneSpan(t *testing.T) {
	up := Plane{Z: 2}
	if lo, hi := up.Span(5); lo != 2 || hi != 7 {
		t.Errorf("Span(5) = [%v %v], want [2 7]", lo, hi)
	}
	down := Plane{Z: 20, Down: true}
	if lo, hi := down.Span(5); lo != 15 || hi != 20 {
		t.Errorf("Span(5) inverted = [%v %v], want [15 20]", lo, hi)
	}
}
