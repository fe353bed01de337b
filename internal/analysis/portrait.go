package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/cyclosim/internal/sim"
)

// TurnPoint records the orbit as it crosses the +X axis heading into +Z.
type TurnPoint struct {
	Time   float64
	Radius float64
	Energy float64
}

// TurnRadii samples the orbit once per revolution, interpolating between
// the two samples that straddle the +X axis.
func TurnRadii(samples []sim.Sample) []TurnPoint {
	points := make([]TurnPoint, 0)
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if !(prev.Position.Z < 0 && cur.Position.Z >= 0) {
			continue
		}

		frac := -prev.Position.Z / (cur.Position.Z - prev.Position.Z)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		x := prev.Position.X + frac*(cur.Position.X-prev.Position.X)
		if x <= 0 {
			continue
		}

		points = append(points, TurnPoint{
			Time:   prev.Time + frac*(cur.Time-prev.Time),
			Radius: x,
			Energy: prev.Energy + frac*(cur.Energy-prev.Energy),
		})
	}
	return points
}

// OrbitToASCII draws the X-Z trace of samples, X to the right and Z up.
func OrbitToASCII(samples []sim.Sample, width, height int) string {
	if len(samples) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := samples[0].Position.X, samples[0].Position.X
	minZ, maxZ := samples[0].Position.Z, samples[0].Position.Z
	for _, s := range samples {
		minX = math.Min(minX, s.Position.X)
		maxX = math.Max(maxX, s.Position.X)
		minZ = math.Min(minZ, s.Position.Z)
		maxZ = math.Max(maxZ, s.Position.Z)
	}

	rangeX := maxX - minX
	rangeZ := maxZ - minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minZ -= rangeZ * 0.1
	maxZ += rangeZ * 0.1
	rangeX = maxX - minX
	rangeZ = maxZ - minZ

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, s := range samples {
		col := int((s.Position.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((s.Position.Z-minZ)/rangeZ*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// the gap lies along the Z axis
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '┆'
			}
		}
	}
	if minZ <= 0 && maxZ >= 0 {
		row := height - 1 - int((0-minZ)/rangeZ*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
