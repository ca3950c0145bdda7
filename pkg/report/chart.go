package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tidemark/spillcast/pkg/spill"
)

var (
	evapColor    = color.RGBA{R: 0xf4, G: 0xd1, B: 0x66, A: 0xff}
	dissColor    = color.RGBA{R: 0x5f, G: 0xa3, B: 0xdb, A: 0xff}
	surfaceColor = color.RGBA{R: 0xd9, G: 0x3b, B: 0x48, A: 0xff}
	cleanupColor = color.RGBA{R: 0x8e, G: 0x7c, B: 0xc3, A: 0xff}
	markerGray   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// FractionChart writes a bar chart of the oil mass balance to path.
// The image format follows the file extension (.png, .svg, .pdf).
func FractionChart(fr spill.Fractions, path string) error {
	p := plot.New()
	p.Title.Text = "Oil Mass Balance"
	p.Y.Label.Text = "Share of Volume (%)"
	p.Y.Min, p.Y.Max = 0, 100

	groups := []struct {
		vals plotter.Values
		col  color.RGBA
	}{
		{plotter.Values{fr.Evaporated * 100, 0, 0}, evapColor},
		{plotter.Values{0, fr.Dissolved * 100, 0}, dissColor},
		{plotter.Values{0, 0, fr.Surface * 100}, surfaceColor},
	}
	for _, g := range groups {
		bars, err := plotter.NewBarChart(g.vals, vg.Points(50))
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		bars.Color = g.col
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	p.NominalX("Evaporated", "Dissolved", "Surface")

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save chart: %w", err)
	}
	return nil
}

// TimelineChart plots projected cleanup progress against the share of oil
// still on the surface, out to the estimated cleanup time. Progress follows
// a saturating exponential; surface oil decays a little faster since the
// early skimming passes recover the most.
func TimelineChart(sum spill.Summary, path string) error {
	total := sum.CleanupTimeDays
	if total <= 0 {
		return fmt.Errorf("report: cleanup time must be positive, got %v", total)
	}

	days := int(total)
	progress := make(plotter.XYs, 0, days+1)
	surface := make(plotter.XYs, 0, days+1)
	for d := 0; d <= days; d++ {
		t := float64(d)
		progress = append(progress, plotter.XY{X: t, Y: 100 * (1 - math.Exp(-3*t/total))})
		surface = append(surface, plotter.XY{X: t, Y: 100 * sum.OilFractions.Surface * math.Exp(-4*t/total)})
	}

	p := plot.New()
	p.Title.Text = "Cleanup Timeline Projection"
	p.X.Label.Text = "Days Since Spill"
	p.Y.Label.Text = "Percent"
	p.Y.Min, p.Y.Max = 0, 100

	progLine, err := plotter.NewLine(progress)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	progLine.LineStyle.Width = vg.Points(2)
	progLine.LineStyle.Color = cleanupColor

	surfLine, err := plotter.NewLine(surface)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	surfLine.LineStyle.Width = vg.Points(2)
	surfLine.LineStyle.Color = surfaceColor

	doneLine, err := plotter.NewLine(plotter.XYs{{X: total, Y: 0}, {X: total, Y: 100}})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	doneLine.LineStyle.Color = markerGray
	doneLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(progLine, surfLine, doneLine)
	p.Legend.Add("Cleanup Progress (%)", progLine)
	p.Legend.Add("Surface Oil Remaining (%)", surfLine)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save chart: %w", err)
	}
	return nil
}
