package canvas

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Effect geometry is computed here; the host only receives sampled values.

const waveSamplesPerPeriod = 16

// waveOffsets samples a sine displacement across an item's width. Sample
// density scales with the number of periods that fit in the width so narrow
// items are not oversampled.
func waveOffsets(width, amplitude, wavelength, phase float64) []float64 {
	if width <= 0 || wavelength <= 0 {
		return nil
	}

	periods := width / wavelength
	samples := int(math.Ceil(periods*waveSamplesPerPeriod)) + 1
	if samples < 2 {
		samples = 2
	}

	xs := floats.Span(make([]float64, samples), 0, width)
	offsets := make([]float64, samples)
	for i, x := range xs {
		offsets[i] = amplitude * math.Sin(2*math.Pi*x/wavelength+phase)
	}
	return offsets
}

// Gold gradient endpoints, matching classic metallic frame decoration:
// deep gold at the edges, bright highlight in the center.
var (
	goldDark  = Color{R: 0x8B, G: 0x6B, B: 0x23}
	goldLight = Color{R: 0xFF, G: 0xD9, B: 0x70}
)

// goldStops builds a symmetric dark-light-dark gradient with n stops.
// n is clamped to at least 3 so the highlight always exists.
func goldStops(n int) []GradientStop {
	if n < 3 {
		n = 3
	}

	offsets := floats.Span(make([]float64, n), 0, 1)
	stops := make([]GradientStop, n)
	for i, off := range offsets {
		// Triangle ramp: 0 at edges, 1 at center.
		t := 1 - math.Abs(2*off-1)
		stops[i] = GradientStop{Offset: off, Color: lerpColor(goldDark, goldLight, t)}
	}
	return stops
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
	}
}

// unionBounds returns the smallest rect covering all items.
func unionBounds(items []Item) Rect {
	if len(items) == 0 {
		return Rect{}
	}

	left := items[0].Bounds.Left
	top := items[0].Bounds.Top
	right := left + items[0].Bounds.Width
	bottom := top + items[0].Bounds.Height

	for _, it := range items[1:] {
		b := it.Bounds
		left = math.Min(left, b.Left)
		top = math.Min(top, b.Top)
		right = math.Max(right, b.Left+b.Width)
		bottom = math.Max(bottom, b.Top+b.Height)
	}

	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}
