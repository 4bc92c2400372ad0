package selector

import (
	"testing"

	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/param"
)

func testParams(t *testing.T) *param.Params {
	t.Helper()
	c := param.DefaultConfig()
	c.InnerWidth = 40
	c.InnerLength = 80
	c.InnerHeight = 20
	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	return p
}

func vline(x, y, zlo, zhi float64) kernel.Edge {
	return kernel.Edge{
		Kind: kernel.EdgeLine,
		A:    [3]float64{x, y, zlo},
		B:    [3]float64{x, y, zhi},
	}
}

func TestInnerAndOuterSplitCavityWall(t *testing.T) {
	p := testParams(t)
	s := ForParams(p)

	cavity := vline(p.InnerWidth/2, p.InnerLength/2, p.BottomLidThickness(), p.BottomLidThickness()+p.InnerHeight)
	shell := vline(p.OuterWidth()/2, p.OuterLength()/2, 0, p.OuterHeight())

	if !s.Inner.Matches(cavity) {
		t.Error("cavity wall edge should match Inner")
	}
	if s.Inner.Matches(shell) {
		t.Error("outer shell edge should not match Inner")
	}
	if !s.Outer.Matches(shell) {
		t.Error("outer shell edge should match Outer")
	}
	if s.Outer.Matches(cavity) {
		t.Error("cavity wall edge should not match Outer")
	}
}

func TestInnerCoversInsideBosses(t *testing.T) {
	c := param.DefaultConfig()
	c.InnerWidth = 40
	c.InnerLength = 80
	c.InnerHeight = 20
	c.Placement = param.ScrewInsideBox
	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	s := ForParams(p)

	// A boss seam at the cavity wall, full height.
	bossX := p.InnerWidth/2 - p.ScrewCylinderRadius() + p.WallThickness()
	seam := vline(bossX, p.InnerLength/2, 0, p.OuterHeight())
	if !s.Inner.Matches(seam) {
		t.Error("inside boss seam should match Inner")
	}
}

func TestGasketBandSelectsGrooveNotShell(t *testing.T) {
	p := testParams(t)
	s := ForParams(p)

	grooveX := (p.InnerWidth/2 + p.OuterWidth()/2) / 2
	grooveY := (p.InnerLength/2 + p.OuterLength()/2) / 2
	groove := vline(grooveX, grooveY, p.SplitZ()-p.GasketSlotDepth(), p.SplitZ())
	press := vline(grooveX, grooveY, p.SplitZ(), p.SplitZ()+p.GasketPressHeight())
	shell := vline(p.OuterWidth()/2, p.OuterLength()/2, p.SplitZ(), p.OuterHeight())
	cavity := vline(p.InnerWidth/2, p.InnerLength/2, p.SplitZ()-1, p.SplitZ()+1)

	if !s.Gasket.Matches(groove) {
		t.Error("groove wall edge should match Gasket")
	}
	if !s.Gasket.Matches(press) {
		t.Error("press wall edge should match Gasket")
	}
	if s.Gasket.Matches(shell) {
		t.Error("outer shell edge should not match Gasket")
	}
	if s.Gasket.Matches(cavity) {
		t.Error("cavity wall edge should not match Gasket")
	}
}

func TestGasketBandLimitsZ(t *testing.T) {
	p := testParams(t)
	s := ForParams(p)

	grooveX := (p.InnerWidth/2 + p.OuterWidth()/2) / 2
	grooveY := (p.InnerLength/2 + p.OuterLength()/2) / 2
	tall := vline(grooveX, grooveY, 0, p.OuterHeight())
	if s.Gasket.Matches(tall) {
		t.Error("full-height edge should fall outside the gasket z band")
	}
}
