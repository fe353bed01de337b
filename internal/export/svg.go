package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/sim"
	"github.com/san-kum/cyclosim/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type OrbitOptions struct {
	Width, Height int
	Stroke        string
	// Boundary draws the dee edge and the extraction window. A zero
	// BoundaryRadius leaves them out.
	Boundary lorentz.Params
}

func DefaultOrbitOptions(p lorentz.Params) OrbitOptions {
	return OrbitOptions{Width: 600, Height: 600, Stroke: "#4fc3f7", Boundary: p}
}

// OrbitToSVG draws the X-Z trace of samples seen from +Y, X to the right
// and Z up, centred on the field axis.
func OrbitToSVG(samples []sim.Sample, opts OrbitOptions) string {
	if len(samples) < 2 {
		return ""
	}

	extent := opts.Boundary.BoundaryRadius
	for _, s := range samples {
		extent = math.Max(extent, s.Radius)
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1

	w, h := float64(opts.Width), float64(opts.Height)
	scale := math.Min(w, h) / (2 * extent)
	cx, cy := w/2, h/2
	px := func(x, z float64) (float64, float64) {
		return cx + x*scale, cy - z*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height)

	// accelerating gap along the Z axis
	gx0, gy0 := px(0, -extent)
	gx1, gy1 := px(0, extent)
	fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#555\" stroke-dasharray=\"4 4\"/>\n", gx0, gy0, gx1, gy1)

	if r := opts.Boundary.BoundaryRadius; r > 0 {
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"#888\"/>\n", cx, cy, r*scale)

		if opts.Boundary.ExtractionEnabled {
			tol := opts.Boundary.ExtractionTolerance
			if tol <= 0 {
				tol = lorentz.DefaultExtractionTolerance
			}
			a0 := opts.Boundary.ExtractionAngle - tol
			a1 := opts.Boundary.ExtractionAngle + tol
			x0, y0 := px(r*math.Cos(a0), r*math.Sin(a0))
			x1, y1 := px(r*math.Cos(a1), r*math.Sin(a1))
			// SVG y grows downward, so counter-clockwise in X-Z is sweep 0
			fmt.Fprintf(&sb, "<path class=\"extraction-window\" fill=\"none\" stroke=\"#ffb300\" stroke-width=\"4\" d=\"M%.1f,%.1f A%.1f,%.1f 0 0 0 %.1f,%.1f\"/>\n",
				x0, y0, r*scale, r*scale, x1, y1)
		}
	}

	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", opts.Stroke)
	for i, s := range samples {
		x, y := px(s.Position.X, s.Position.Z)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := px(samples[0].Position.X, samples[0].Position.Z)
	fmt.Fprintf(&sb, "<circle class=\"start\" cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"#66bb6a\"/>\n", sx, sy)

	for _, s := range samples {
		if s.Outcome == lorentz.Extracted || s.Outcome == lorentz.Halted {
			ex, ey := px(s.Position.X, s.Position.Z)
			fmt.Fprintf(&sb, "<circle class=\"%s\" cx=\"%.1f\" cy=\"%.1f\" r=\"5\" fill=\"#ef5350\"/>\n", s.Outcome, ex, ey)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
