package param

import (
	"errors"
	"math"
	"testing"
)

// testConfig returns a valid baseline config for tests.
func testConfig() Config {
	c := DefaultConfig()
	c.InnerWidth = 40
	c.InnerLength = 80
	c.InnerHeight = 20
	return c
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFinalizeAppliesClearancesOnce(t *testing.T) {
	c := testConfig()
	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if got, want := p.SquareNutWidth, c.SquareNutWidth+0.4; !almostEqual(got, want) {
		t.Errorf("SquareNutWidth = %v, want %v", got, want)
	}
	if got, want := p.SquareNutHeight, c.SquareNutHeight+0.4; !almostEqual(got, want) {
		t.Errorf("SquareNutHeight = %v, want %v", got, want)
	}
	if got, want := p.ScrewHeadDiameter, c.ScrewHeadDiameter+0.5; !almostEqual(got, want) {
		t.Errorf("ScrewHeadDiameter = %v, want %v", got, want)
	}
	if got, want := p.ScrewTotalLength, c.ScrewTotalLength+1.0; !almostEqual(got, want) {
		t.Errorf("ScrewTotalLength = %v, want %v", got, want)
	}

	// The caller's config is a value copy and must be untouched.
	if c.SquareNutWidth != 5.5 {
		t.Errorf("caller config mutated: SquareNutWidth = %v", c.SquareNutWidth)
	}
}

func TestFinalizeInflatesInnerDimensionsInsideBox(t *testing.T) {
	c := testConfig()
	c.Placement = ScrewInsideBox
	c.MountHolders = false

	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	// Wood screw, hole 3.3: cylinder radius is 3.3 + 1.6 = 4.9,
	// so each dimension grows by 2*(2*4.9 - 3) = 13.6.
	grow := 2 * (2*p.ScrewCylinderRadius() - p.WallThickness())
	if got, want := p.InnerWidth, c.InnerWidth+grow; !almostEqual(got, want) {
		t.Errorf("InnerWidth = %v, want %v", got, want)
	}
	if got, want := p.InnerLength, c.InnerLength+grow; !almostEqual(got, want) {
		t.Errorf("InnerLength = %v, want %v", got, want)
	}
}

func TestFinalizeRespectsActualInnerFlags(t *testing.T) {
	c := testConfig()
	c.Placement = ScrewInsideBox
	c.MountHolders = false
	c.ActualInnerWidth = false
	c.ActualInnerLength = false

	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if p.InnerWidth != c.InnerWidth || p.InnerLength != c.InnerLength {
		t.Errorf("inner dimensions inflated despite actual-inner flags off: %v x %v",
			p.InnerWidth, p.InnerLength)
	}
}

func TestFinalizeRaisesMountHolderFloor(t *testing.T) {
	c := testConfig()
	c.CornerScrews = false
	c.MiddleWidthScrews = true
	c.MountHolderLength = 1.0

	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	want := math.Ceil(p.ScrewCylinderRadius() * 4)
	if !almostEqual(p.MountHolderLength, want) {
		t.Errorf("MountHolderLength = %v, want floor %v", p.MountHolderLength, want)
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{
			"no screw group",
			func(c *Config) {
				c.CornerScrews = false
				c.MiddleLengthScrews = false
				c.MiddleWidthScrews = false
			},
			"NO_SCREW_GROUP",
		},
		{
			"hole diameter too small",
			func(c *Config) { c.ScrewHoleDiameter = 1.5 },
			"SCREW_HOLE_DIAMETER",
		},
		{
			"hole diameter too large",
			func(c *Config) { c.ScrewHoleDiameter = 6.5 },
			"SCREW_HOLE_DIAMETER",
		},
		{
			"width exceeds length",
			func(c *Config) { c.InnerWidth = 90 },
			"INNER_DIMENSIONS",
		},
		{
			"narrow box with holders and corner screws",
			func(c *Config) {
				c.InnerWidth = 25
				c.Placement = ScrewOutsideBox
				c.MountHolders = true
				c.CornerScrews = true
			},
			"BOX_WIDTH",
		},
		{
			"invalid placement enum",
			func(c *Config) { c.Placement = ScrewPlacement(7) },
			"INVALID_PLACEMENT",
		},
		{
			"invalid fastening enum",
			func(c *Config) { c.Fastening = Fastening(-1) },
			"INVALID_FASTENING",
		},
		{
			"invalid nut work-around enum",
			func(c *Config) { c.NutWorkaround = NutWorkaround(3) },
			"INVALID_NUT_WORKAROUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(&c)
			_, err := c.Finalize()
			if err == nil {
				t.Fatal("Finalize() succeeded, want error")
			}
			var ce ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error type %T, want ConfigError", err)
			}
			if ce.Code != tt.wantCode {
				t.Errorf("error code %q, want %q", ce.Code, tt.wantCode)
			}
		})
	}
}

func TestOuterDimensionIdentities(t *testing.T) {
	tests := []struct {
		name    string
		w, l, h float64
	}{
		{"small", 31, 71, 16},
		{"square", 40, 40, 25},
		{"large", 120, 200, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			c.InnerWidth, c.InnerLength, c.InnerHeight = tt.w, tt.l, tt.h
			p, err := c.Finalize()
			if err != nil {
				t.Fatalf("Finalize() error: %v", err)
			}
			if got := p.OuterWidth(); !almostEqual(got, p.InnerWidth+2*p.WallThickness()) {
				t.Errorf("OuterWidth = %v, want inner + 2*wall", got)
			}
			if got := p.OuterLength(); !almostEqual(got, p.InnerLength+2*p.WallThickness()) {
				t.Errorf("OuterLength = %v, want inner + 2*wall", got)
			}
			if got := p.OuterHeight(); !almostEqual(got, p.InnerHeight+2*p.BottomLidThickness()) {
				t.Errorf("OuterHeight = %v, want inner + 2*thickness", got)
			}
		})
	}
}

func TestScrewCylinderRadius(t *testing.T) {
	tests := []struct {
		name      string
		fastening Fastening
		holeDiam  float64
		nutWidth  float64
		want      float64
	}{
		// Base radius is max(holeDiam, 3.0) + 1.6.
		{"small wood screw", FasteningWoodScrew, 2.0, 5.5, 3.0 + 1.6},
		{"default wood screw", FasteningWoodScrew, 3.3, 5.5, 3.3 + 1.6},
		// Square nut: nut diagonal governs once it exceeds the hole
		// minimum. Nut width gains the 0.4 clearance in Finalize.
		{"square nut", FasteningSquareNut, 3.3, 5.5, (5.5 + 0.4) * math.Sqrt2 / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			c.Fastening = tt.fastening
			c.ScrewHoleDiameter = tt.holeDiam
			c.SquareNutWidth = tt.nutWidth
			p, err := c.Finalize()
			if err != nil {
				t.Fatalf("Finalize() error: %v", err)
			}
			want := tt.want
			if tt.fastening == FasteningSquareNut {
				want = math.Max(math.Max(tt.holeDiam, 3.0), want) + 1.6
			}
			if got := p.ScrewCylinderRadius(); !almostEqual(got, want) {
				t.Errorf("ScrewCylinderRadius = %v, want %v", got, want)
			}
		})
	}
}

func TestGasketBandConsistency(t *testing.T) {
	c := testConfig()
	p, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	// Slot is wider than the gasket by the in-slot play on each side.
	if got, want := p.GasketSlotOuterWidth()-p.GasketOuterWidth(), p.GasketInSlotDistance(); !almostEqual(got, want) {
		t.Errorf("slot/gasket outer width delta = %v, want %v", got, want)
	}
	if got, want := p.GasketInnerWidth()-p.GasketSlotInnerWidth(), p.GasketInSlotDistance(); !almostEqual(got, want) {
		t.Errorf("gasket/slot inner width delta = %v, want %v", got, want)
	}
	// Channel width equals gasket width plus total play.
	if got, want := p.GasketSlotWidth(), p.GasketWidth+2*p.GasketSpacing; !almostEqual(got, want) {
		t.Errorf("GasketSlotWidth = %v, want %v", got, want)
	}
	// Press stands taller than the gasket by the compression ratio.
	if got, want := p.GasketPressHeight(), p.GasketHeight*1.2; !almostEqual(got, want) {
		t.Errorf("GasketPressHeight = %v, want %v", got, want)
	}
}

func TestModeStrings(t *testing.T) {
	if ScrewInsideBox.String() != "inside-box" || ScrewOutsideBox.String() != "outside-box" {
		t.Error("ScrewPlacement.String() mismatch")
	}
	if FasteningWoodScrew.String() != "wood-screw" || FasteningSquareNut.String() != "square-nut" {
		t.Error("Fastening.String() mismatch")
	}
	if NutCutReliefs.String() != "cut-reliefs" || NutAddCeiling.String() != "add-ceiling" {
		t.Error("NutWorkaround.String() mismatch")
	}
}
