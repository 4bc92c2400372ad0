package layout

import (
	"math"
	"testing"

	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/param"
)

func finalize(t *testing.T, c param.Config) *param.Params {
	t.Helper()
	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	return p
}

func baseConfig() param.Config {
	c := param.DefaultConfig()
	c.InnerWidth = 40
	c.InnerLength = 80
	c.InnerHeight = 20
	return c
}

func TestCornerScrewPointsOutside(t *testing.T) {
	p := finalize(t, baseConfig())
	pts, err := ScrewPoints(p)
	if err != nil {
		t.Fatalf("ScrewPoints failed: %v", err)
	}
	if len(pts) != 4 {
		t.Fatalf("point count = %d, want 4", len(pts))
	}

	w := p.OuterWidth()/2 + p.ScrewCylinderRadius() - p.WallThickness()
	l := p.OuterLength()/2 + p.ScrewCylinderRadius() - p.WallThickness()
	for _, pt := range pts {
		if math.Abs(pt.X) != w || math.Abs(pt.Y) != l {
			t.Errorf("corner point %v not at (±%v, ±%v)", pt, w, l)
		}
	}
	// All four quadrants must be covered.
	seen := map[[2]bool]bool{}
	for _, pt := range pts {
		seen[[2]bool{pt.X > 0, pt.Y > 0}] = true
	}
	if len(seen) != 4 {
		t.Errorf("corner points cover %d quadrants, want 4", len(seen))
	}
}

func TestInsidePlacementStaysWithinCavity(t *testing.T) {
	c := baseConfig()
	c.Placement = param.ScrewInsideBox
	p := finalize(t, c)

	pts, err := ScrewPoints(p)
	if err != nil {
		t.Fatalf("ScrewPoints failed: %v", err)
	}
	const tol = 1e-9
	for _, pt := range pts {
		if math.Abs(pt.X)+p.ScrewCylinderRadius() > p.InnerWidth/2+p.WallThickness()+tol {
			t.Errorf("boss at %v extends past the inner wall", pt)
		}
		if math.Abs(pt.Y)+p.ScrewCylinderRadius() > p.InnerLength/2+p.WallThickness()+tol {
			t.Errorf("boss at %v extends past the inner wall", pt)
		}
	}
}

func TestAllGroupsOrderedAndDistinct(t *testing.T) {
	c := baseConfig()
	c.MiddleLengthScrews = true
	c.MiddleWidthScrews = true
	p := finalize(t, c)

	pts, err := ScrewPoints(p)
	if err != nil {
		t.Fatalf("ScrewPoints failed: %v", err)
	}
	if len(pts) != 8 {
		t.Fatalf("point count = %d, want 8", len(pts))
	}
	uniq := map[kernel.Point]bool{}
	for _, pt := range pts {
		uniq[pt] = true
	}
	if len(uniq) != 8 {
		t.Errorf("distinct points = %d, want 8", len(uniq))
	}
	// Middle-of-length points sit on the x axis, middle-of-width on y.
	if pts[4].Y != 0 || pts[5].Y != 0 {
		t.Error("middle-of-length points should lie on y=0")
	}
	if pts[6].X != 0 || pts[7].X != 0 {
		t.Error("middle-of-width points should lie on x=0")
	}
}

func TestMiddleWidthOnly(t *testing.T) {
	c := baseConfig()
	c.CornerScrews = false
	c.MiddleWidthScrews = true
	p := finalize(t, c)

	pts, err := ScrewPoints(p)
	if err != nil {
		t.Fatalf("ScrewPoints failed: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("point count = %d, want 2", len(pts))
	}
	if pts[0].Y >= 0 || pts[1].Y <= 0 {
		t.Errorf("middle-of-width points = %v, want -l then +l", pts)
	}
}

func TestUnhandledPlacement(t *testing.T) {
	p := finalize(t, baseConfig())
	p.Placement = param.ScrewPlacement(99)
	if _, err := ScrewPoints(p); err == nil {
		t.Fatal("expected error for unhandled placement")
	}
}
