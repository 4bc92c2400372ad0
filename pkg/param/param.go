// Package param holds the dimensional parameters that drive enclosure
// generation. A Config is user-edited; Finalize applies the fixed
// manufacturing clearances and returns an immutable Params snapshot that
// the rest of the system reads. All derived dimensions are computed on
// access from the snapshot, never stored.
package param

import (
	"fmt"
	"math"
)

// ScrewPlacement selects which side of the enclosure wall carries the
// screw cylinders.
type ScrewPlacement int

const (
	// ScrewInsideBox places screw cylinders inside the cavity, tangent
	// to the wall. The cavity is inflated during Finalize so the stated
	// inner dimensions remain usable.
	ScrewInsideBox ScrewPlacement = iota
	// ScrewOutsideBox lets screw cylinders bulge outward, overlapping
	// the wall for strength.
	ScrewOutsideBox
)

func (p ScrewPlacement) String() string {
	switch p {
	case ScrewInsideBox:
		return "inside-box"
	case ScrewOutsideBox:
		return "outside-box"
	}
	return fmt.Sprintf("ScrewPlacement(%d)", int(p))
}

// Fastening selects how lid screws engage the box.
type Fastening int

const (
	// FasteningWoodScrew threads directly into the screw cylinder.
	FasteningWoodScrew Fastening = iota
	// FasteningSquareNut seats a square nut in a pocket cut into the
	// screw cylinder.
	FasteningSquareNut
)

func (f Fastening) String() string {
	switch f {
	case FasteningWoodScrew:
		return "wood-screw"
	case FasteningSquareNut:
		return "square-nut"
	}
	return fmt.Sprintf("Fastening(%d)", int(f))
}

// NutWorkaround selects the 3D-printing trick used to make the
// unsupported ceiling of a square-nut pocket manufacturable. It is a
// build-reliability trade-off, not a geometric necessity.
type NutWorkaround int

const (
	// NutCutReliefs cuts two thin relief slots at single-layer-height
	// increments above the pocket so the printer can bridge.
	NutCutReliefs NutWorkaround = iota
	// NutAddCeiling re-adds one sacrificial layer over the pocket,
	// sealing the screw hole across that layer.
	NutAddCeiling
)

func (n NutWorkaround) String() string {
	switch n {
	case NutCutReliefs:
		return "cut-reliefs"
	case NutAddCeiling:
		return "add-ceiling"
	}
	return fmt.Sprintf("NutWorkaround(%d)", int(n))
}

// Config is the user-supplied parameter set. Dimensions are millimeters.
// Screw and nut dimensions are entered as actual hardware sizes; the
// printing clearances are added by Finalize, not by the user.
type Config struct {
	// Inner cavity dimensions. Width is X, length is Y, height is Z.
	InnerWidth  float64
	InnerLength float64
	InnerHeight float64

	// When screw cylinders are carved from the inside
	// (ScrewInsideBox), these flags request that the stated inner
	// dimensions remain usable: Finalize inflates the cavity to make
	// room for the cylinders.
	ActualInnerWidth  bool
	ActualInnerLength bool

	// SplitHeight is the distance from the top at which the solid is
	// split into box and lid.
	SplitHeight float64

	ScrewHoleDiameter float64
	ScrewHeadDiameter float64
	ScrewTotalLength  float64
	Placement         ScrewPlacement
	Fastening         Fastening

	// Enabled screw groups. At least one must be set.
	CornerScrews       bool
	MiddleLengthScrews bool
	MiddleWidthScrews  bool

	SquareNutWidth  float64
	SquareNutHeight float64
	NutWorkaround   NutWorkaround

	GasketHeight      float64
	GasketWidth       float64
	GasketSpacing     float64
	GasketCompression float64

	MountHolders            bool
	MountHolderLength       float64
	MountHolderHoleDiameter float64
	MountHolderHeadDiameter float64
	MountHolderFillet       bool

	// LayerHeight is the additive-manufacturing layer pitch, used to
	// size the nut-pocket bridging reliefs.
	LayerHeight float64

	FilletBottom bool
	FilletTop    bool
}

// DefaultConfig returns a Config with the expert defaults. Inner
// dimensions are left zero and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		ActualInnerWidth:        true,
		ActualInnerLength:       true,
		SplitHeight:             5.0,
		ScrewHoleDiameter:       3.0 + 0.3,
		ScrewHeadDiameter:       6.0,
		ScrewTotalLength:        16.0,
		Placement:               ScrewOutsideBox,
		Fastening:               FasteningWoodScrew,
		CornerScrews:            true,
		SquareNutWidth:          5.5,
		SquareNutHeight:         1.8,
		NutWorkaround:           NutAddCeiling,
		GasketHeight:            1.6,
		GasketWidth:             1.2,
		GasketSpacing:           0.15,
		GasketCompression:       0.2,
		MountHolders:            true,
		MountHolderLength:       15.0,
		MountHolderHoleDiameter: 5.0,
		MountHolderHeadDiameter: 9.0,
		MountHolderFillet:       true,
		LayerHeight:             0.28,
		FilletBottom:            true,
		FilletTop:               true,
	}
}

// Fixed clearances applied once by Finalize.
const (
	nutClearance        = 0.4
	screwHeadClearance  = 0.5
	screwLengthAddition = 1.0
)

// ConfigError reports a violated parameter constraint. Configuration
// errors are fatal and raised before any kernel operation runs.
type ConfigError struct {
	Code    string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Params is the finalized, immutable parameter snapshot. Construct it
// only through Config.Finalize. Treat the embedded Config as read-only:
// every derived accessor recomputes from it, so mutating a primary
// after Finalize would desynchronize geometry already built.
type Params struct {
	Config
}

// Finalize applies the fixed manufacturing clearances, inflates the
// cavity for inside-box screw placement, raises the mount-holder length
// floor where middle-width screw cylinders need clearance, validates
// the result, and returns the immutable snapshot. The receiver is a
// copy, so the caller's Config is left untouched and Finalize can be
// called once per build without call-order hazards.
func (c Config) Finalize() (*Params, error) {
	if err := c.checkModes(); err != nil {
		return nil, err
	}

	c.SquareNutWidth += nutClearance
	c.SquareNutHeight += nutClearance
	c.ScrewHeadDiameter += screwHeadClearance
	c.ScrewTotalLength += screwLengthAddition

	p := &Params{Config: c}

	if c.Placement == ScrewInsideBox {
		if (c.CornerScrews || c.MiddleLengthScrews) && c.ActualInnerWidth {
			p.InnerWidth += 2 * (2*p.ScrewCylinderRadius() - p.WallThickness())
		}
		if (c.CornerScrews || c.MiddleWidthScrews) && c.ActualInnerLength {
			p.InnerLength += 2 * (2*p.ScrewCylinderRadius() - p.WallThickness())
		}
	}

	if c.MountHolders && c.MiddleWidthScrews && c.Placement == ScrewOutsideBox {
		p.MountHolderLength = math.Max(
			p.MountHolderLength, math.Ceil(p.ScrewCylinderRadius()*4))
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// checkModes rejects out-of-range enum selections before any derived
// value is computed.
func (c Config) checkModes() error {
	if c.Placement != ScrewInsideBox && c.Placement != ScrewOutsideBox {
		return ConfigError{"INVALID_PLACEMENT",
			fmt.Sprintf("invalid screw placement %d", int(c.Placement))}
	}
	if c.Fastening != FasteningWoodScrew && c.Fastening != FasteningSquareNut {
		return ConfigError{"INVALID_FASTENING",
			fmt.Sprintf("invalid fastening mode %d", int(c.Fastening))}
	}
	if c.NutWorkaround != NutCutReliefs && c.NutWorkaround != NutAddCeiling {
		return ConfigError{"INVALID_NUT_WORKAROUND",
			fmt.Sprintf("invalid nut work-around %d", int(c.NutWorkaround))}
	}
	return nil
}

// validate runs the dimensional invariants in a fixed order and returns
// the first violation.
func (p *Params) validate() error {
	if !p.CornerScrews && !p.MiddleLengthScrews && !p.MiddleWidthScrews {
		return ConfigError{"NO_SCREW_GROUP",
			"cannot generate an enclosure without screws"}
	}
	if p.ScrewHoleDiameter < 2.0 || p.ScrewHoleDiameter > 6.0 {
		return ConfigError{"SCREW_HOLE_DIAMETER", fmt.Sprintf(
			"screw hole diameter %.2f must be between 2.0 and 6.0",
			p.ScrewHoleDiameter)}
	}
	if p.InnerWidth > p.InnerLength {
		return ConfigError{"INNER_DIMENSIONS",
			"inner width must be smaller or equal to inner length"}
	}
	if p.MountHolders && p.MiddleWidthScrews && p.Placement == ScrewOutsideBox {
		if p.MountHolderLength < p.ScrewCylinderRadius()*4 {
			return ConfigError{"MOUNT_HOLDER_LENGTH", fmt.Sprintf(
				"mount holder length has to be at least %.2f when middle-width screws are enabled",
				p.ScrewCylinderRadius()*4)}
		}
	}
	if p.Placement == ScrewOutsideBox && p.InnerWidth < 31.0 &&
		p.MountHolders && p.CornerScrews {
		return ConfigError{"BOX_WIDTH",
			"inner width must be at least 31.0 when mount holders are enabled and screws are outside the box"}
	}
	return nil
}

// Wall and floor thicknesses are fixed expert constants.

// WallThickness is the enclosure wall thickness.
func (p *Params) WallThickness() float64 { return 3.0 }

// BottomLidThickness is the thickness of both the box floor and the lid.
func (p *Params) BottomLidThickness() float64 { return 2.0 }

// Fillet radii carry a tiny positive epsilon so that edge sets rounded
// in successive passes never meet at exact tangency, which the kernel
// resolves ambiguously. The epsilons exist to dodge zero-measure
// edge-merge failures, not to change nominal geometry.

// ScrewCylinderFillet rounds the boss-cylinder seams.
func (p *Params) ScrewCylinderFillet() float64 { return 2.0 + 1e-3 }

// InnerFillet rounds the true inner vertical edges.
func (p *Params) InnerFillet() float64 { return 2.0 + 2e-3 }

// BottomLidFillet rounds the box bottom and lid top faces.
func (p *Params) BottomLidFillet() float64 { return 1.0 }

// OuterVerticalFillet rounds the outer vertical edges for inside-box
// placement.
func (p *Params) OuterVerticalFillet() float64 { return 2.0 + 1e-3 }

// GasketFillet rounds the groove, the press and the gasket itself with
// one shared radius so the three parts keep mating after rounding.
func (p *Params) GasketFillet() float64 { return 2.0 + 4e-3 }

// MountHolderFilletRadius rounds the mount-tab vertical edges.
func (p *Params) MountHolderFilletRadius() float64 { return 3.0 }

// ScrewCylinderRadius is the boss radius: the larger of the
// hole-diameter minimum and, for square nuts, the nut diagonal, plus a
// fixed wall allowance.
func (p *Params) ScrewCylinderRadius() float64 {
	base := math.Max(p.ScrewHoleDiameter, 3.0)
	if p.Fastening == FasteningSquareNut {
		base = math.Max(base, p.SquareNutWidth*math.Sqrt2/2)
	}
	return base + 1.6
}

// SquareNutDepthPlacement is how far below the lid top the nut pocket
// plane sits.
func (p *Params) SquareNutDepthPlacement() float64 {
	return p.ScrewTotalLength - 4.0
}

// LidScrewHoleDiameter is the loose clearance hole through the lid.
func (p *Params) LidScrewHoleDiameter() float64 {
	return p.ScrewHoleDiameter + 1.0
}

// BoxScrewHoleRadius is the thread-engagement hole radius in the box.
func (p *Params) BoxScrewHoleRadius() float64 {
	return p.ScrewHoleDiameter / 2
}

// OuterWidth is the outer box dimension along X.
func (p *Params) OuterWidth() float64 {
	return p.InnerWidth + 2*p.WallThickness()
}

// OuterLength is the outer box dimension along Y.
func (p *Params) OuterLength() float64 {
	return p.InnerLength + 2*p.WallThickness()
}

// OuterHeight is the outer box dimension along Z.
func (p *Params) OuterHeight() float64 {
	return p.InnerHeight + 2*p.BottomLidThickness()
}

// SplitZ is the height of the split plane above the box bottom.
func (p *Params) SplitZ() float64 {
	return p.OuterHeight() - p.SplitHeight
}

// GasketInSlotDistance is the total lateral play of the gasket in its
// slot.
func (p *Params) GasketInSlotDistance() float64 {
	return p.GasketSpacing * 2
}

// The gasket band is centered on the wall midline: outer box dimension
// minus one wall thickness, widened or narrowed by the gasket width and
// its in-slot play.

func (p *Params) GasketSlotOuterWidth() float64 {
	return p.OuterWidth() - p.WallThickness() + p.GasketWidth + p.GasketInSlotDistance()
}

func (p *Params) GasketSlotOuterLength() float64 {
	return p.OuterLength() - p.WallThickness() + p.GasketWidth + p.GasketInSlotDistance()
}

func (p *Params) GasketSlotInnerWidth() float64 {
	return p.OuterWidth() - p.WallThickness() - p.GasketWidth - p.GasketInSlotDistance()
}

func (p *Params) GasketSlotInnerLength() float64 {
	return p.OuterLength() - p.WallThickness() - p.GasketWidth - p.GasketInSlotDistance()
}

func (p *Params) GasketOuterWidth() float64 {
	return p.GasketSlotOuterWidth() - p.GasketInSlotDistance()
}

func (p *Params) GasketOuterLength() float64 {
	return p.GasketSlotOuterLength() - p.GasketInSlotDistance()
}

func (p *Params) GasketInnerWidth() float64 {
	return p.GasketSlotInnerWidth() + p.GasketInSlotDistance()
}

func (p *Params) GasketInnerLength() float64 {
	return p.GasketSlotInnerLength() + p.GasketInSlotDistance()
}

// GasketSlotWidth is the radial width of the slot channel.
func (p *Params) GasketSlotWidth() float64 {
	return p.GasketWidth + p.GasketInSlotDistance()
}

// GasketSlotDepth is the groove cut depth in the box.
func (p *Params) GasketSlotDepth() float64 {
	return p.GasketHeight * 2
}

// GasketPressHeight is the rib height on the lid underside, oversized
// by the compression ratio so the gasket is squeezed when closed.
func (p *Params) GasketPressHeight() float64 {
	return p.GasketHeight * (1 + p.GasketCompression)
}

// MountHolderTotalLength spans the box plus one holder tab on each end.
func (p *Params) MountHolderTotalLength() float64 {
	return p.OuterLength() + 2*p.MountHolderLength
}
