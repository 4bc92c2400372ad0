package export

import (
	"github.com/yofu/dxf"

	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/layout"
	"github.com/chazu/enclosure/pkg/param"
)

// SaveGasketDXF writes the flat gasket outline as a DXF drawing, for
// cutting the gasket from sheet material instead of printing it. The
// rectangular band becomes two closed polylines; for inside screw
// placement each boss ring adds a pair of circles.
func SaveGasketDXF(path string, p *param.Params) error {
	pts, err := layout.ScrewPoints(p)
	if err != nil {
		return err
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("GASKET", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}

	if _, err := d.LwPolyline(true, rectVertices(p.GasketOuterWidth(), p.GasketOuterLength())...); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true, rectVertices(p.GasketInnerWidth(), p.GasketInnerLength())...); err != nil {
		return err
	}

	if p.Placement == param.ScrewInsideBox {
		base := p.BoxScrewHoleRadius()
		span := p.ScrewCylinderRadius() - base
		outerR := base + (span+p.GasketWidth)/2
		innerR := base + (span-p.GasketWidth)/2
		for _, pt := range pts {
			if _, err := d.Circle(pt.X, pt.Y, 0, outerR); err != nil {
				return err
			}
			if _, err := d.Circle(pt.X, pt.Y, 0, innerR); err != nil {
				return err
			}
		}
	}

	return d.SaveAs(path)
}

func rectVertices(w, l float64) [][]float64 {
	corners := []kernel.Point{
		{X: -w / 2, Y: -l / 2},
		{X: w / 2, Y: -l / 2},
		{X: w / 2, Y: l / 2},
		{X: -w / 2, Y: l / 2},
	}
	out := make([][]float64, 0, len(corners))
	for _, c := range corners {
		out = append(out, []float64{c.X, c.Y, 0})
	}
	return out
}
