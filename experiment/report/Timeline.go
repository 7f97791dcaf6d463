package report

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/energybaselines/experiment/tracker"
	"github.com/samuelfneumann/energybaselines/utils/floatutils"
)

const margin = 30.0

// Timeline draws a PNG image at path of an observation field (top) and
// one dimension of the actions taken (bottom) at every tracked step
func Timeline(path string, d tracker.DecisionData, field string, dim,
	width, height int) error {
	values, err := d.Field(field)
	if err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	actions, err := d.Action(dim)
	if err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if len(values) == 0 {
		return fmt.Errorf("timeline: no decisions to draw")
	}
	if width <= 2*margin || height <= 4*margin {
		return fmt.Errorf("timeline: image of %vx%v too small", width,
			height)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	panel := (float64(height) - 3*margin) / 2
	drawPanel(dc, values, field, margin, panel, 0.2, 0.4, 0.8)
	drawPanel(dc, actions, fmt.Sprintf("action[%v]", dim), 2*margin+panel,
		panel, 0.8, 0.3, 0.2)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	return nil
}

// drawPanel draws values as a step line in a panel starting top pixels
// from the top of the image and spanning height pixels
func drawPanel(dc *gg.Context, values []float64, label string, top,
	height, r, g, b float64) {
	left := margin
	width := float64(dc.Width()) - 2*margin

	rng := floatutils.Range(values)
	span := rng.Max - rng.Min
	if span == 0 {
		span = 1
	}

	x := func(i int) float64 {
		return left + width*float64(i)/float64(len(values))
	}
	y := func(v float64) float64 {
		frac := floatutils.Clip((v-rng.Min)/span, 0, 1)
		return top + height*(1-frac)
	}

	// Axes
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, top, width, height)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.DrawString(fmt.Sprintf("%v [%.4g, %.4g]", label, rng.Min, rng.Max),
		left, top-8)

	// Values are held constant over each step
	dc.SetRGB(r, g, b)
	dc.SetLineWidth(2)
	dc.MoveTo(x(0), y(values[0]))
	for i, v := range values {
		dc.LineTo(x(i), y(v))
		dc.LineTo(x(i+1), y(v))
	}
	dc.Stroke()
}
