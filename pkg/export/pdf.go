package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/chazu/enclosure/pkg/layout"
	"github.com/chazu/enclosure/pkg/param"
)

// Page layout constants (A4 portrait in mm).
const (
	pdfMarginLeft = 15.0
	pdfMarginTop  = 15.0
	pdfLineHeight = 7.0
	pdfLabelWidth = 80.0
	pdfValueWidth = 50.0
)

// SaveDimensionSheet writes a one-page PDF listing the finalized
// dimensions of a build, as a reference to keep next to the printer.
func SaveDimensionSheet(path string, p *param.Params) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfMarginTop)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	title := fmt.Sprintf("Enclosure %.0f x %.0f x %.0f mm",
		p.InnerWidth, p.InnerLength, p.InnerHeight)
	pdf.CellFormat(pdfLabelWidth+pdfValueWidth, pdfLineHeight, title, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	rows := []struct {
		label string
		value string
	}{
		{"Outer dimensions", fmt.Sprintf("%.1f x %.1f x %.1f mm",
			p.OuterWidth(), p.OuterLength(), p.OuterHeight())},
		{"Wall thickness", fmt.Sprintf("%.1f mm", p.WallThickness())},
		{"Bottom and lid thickness", fmt.Sprintf("%.1f mm", p.BottomLidThickness())},
		{"Split plane height", fmt.Sprintf("%.1f mm", p.SplitZ())},
		{"Screw placement", p.Placement.String()},
		{"Fastening", p.Fastening.String()},
		{"Screw hole diameter", fmt.Sprintf("%.2f mm", p.ScrewHoleDiameter)},
		{"Lid screw hole diameter", fmt.Sprintf("%.2f mm", p.LidScrewHoleDiameter())},
		{"Screw cylinder radius", fmt.Sprintf("%.2f mm", p.ScrewCylinderRadius())},
		{"Gasket cord height", fmt.Sprintf("%.2f mm", p.GasketHeight)},
		{"Gasket slot depth", fmt.Sprintf("%.2f mm", p.GasketSlotDepth())},
		{"Gasket press height", fmt.Sprintf("%.2f mm", p.GasketPressHeight())},
	}
	if p.MountHolders {
		rows = append(rows, struct {
			label string
			value string
		}{"Mount tab total length", fmt.Sprintf("%.1f mm", p.MountHolderTotalLength())})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetX(pdfMarginLeft)
		pdf.CellFormat(pdfLabelWidth, pdfLineHeight, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(pdfValueWidth, pdfLineHeight, row.value, "B", 1, "R", false, 0, "")
	}

	if err := drawTopView(pdf, p); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// drawTopView draws the outer shell, cavity, and screw centers to scale
// below the dimension table.
func drawTopView(pdf *fpdf.Fpdf, p *param.Params) error {
	pts, err := layout.ScrewPoints(p)
	if err != nil {
		return err
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(pdfLabelWidth+pdfValueWidth, pdfLineHeight, "Top view", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Footprint half-extents, including bosses that stand proud of the wall.
	cylR := p.ScrewCylinderRadius()
	halfW, halfL := p.OuterWidth()/2, p.OuterLength()/2
	for _, pt := range pts {
		halfW = math.Max(halfW, math.Abs(pt.X)+cylR)
		halfL = math.Max(halfL, math.Abs(pt.Y)+cylR)
	}

	// Scale to fit the remaining page area, never magnifying past 1:1.
	pageW, pageH := pdf.GetPageSize()
	drawW := pageW - 2*pdfMarginLeft
	drawH := pageH - pdf.GetY() - 2*pdfMarginTop
	scale := math.Min(drawW/(2*halfW), drawH/(2*halfL))
	scale = math.Min(scale, 1.0)

	cx := pdfMarginLeft + drawW/2
	cy := pdf.GetY() + halfL*scale

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.4)
	pdf.Rect(cx-p.OuterWidth()/2*scale, cy-p.OuterLength()/2*scale,
		p.OuterWidth()*scale, p.OuterLength()*scale, "D")

	pdf.SetDrawColor(130, 130, 130)
	pdf.SetLineWidth(0.2)
	pdf.Rect(cx-p.InnerWidth/2*scale, cy-p.InnerLength/2*scale,
		p.InnerWidth*scale, p.InnerLength*scale, "D")

	for _, pt := range pts {
		x := cx + pt.X*scale
		y := cy + pt.Y*scale
		pdf.SetDrawColor(30, 30, 30)
		pdf.Circle(x, y, cylR*scale, "D")
		pdf.SetFillColor(30, 30, 30)
		pdf.Circle(x, y, 0.6, "F")
	}

	return nil
}
