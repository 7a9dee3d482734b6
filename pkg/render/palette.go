package render

import (
	"fmt"
	"image/color"
	"strings"
)

// viridisStops are the published 10-stop viridis palette colors. The
// 256-entry lookup table is built from them by linear interpolation,
// matching the fixed [0, 1] color mapping of the report figures.
var viridisStops = []string{
	"440154", "482878", "3e4989", "31688e", "26828e",
	"1f9e89", "35b779", "6ece58", "b5de2b", "fde725",
}

var viridis [256]color.NRGBA

func init() {
	stops := make([]color.NRGBA, len(viridisStops))
	for i, s := range viridisStops {
		stops[i] = parseHexColor(s)
	}
	for i := range viridis {
		pos := float64(i) / 255 * float64(len(stops)-1)
		lo := int(pos)
		hi := lo + 1
		if hi >= len(stops) {
			viridis[i] = stops[len(stops)-1]
			continue
		}
		frac := pos - float64(lo)
		viridis[i] = lerpColor(stops[lo], stops[hi], frac)
	}
}

func parseHexColor(s string) color.NRGBA {
	var r, g, b uint8
	fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func lerpColor(a, b color.NRGBA, frac float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xFF}
}

// mapColor maps a flag fraction in [0, 1] to its palette color. Values
// outside the range, including NaN from empty selections, clamp to the
// palette floor or ceiling.
func mapColor(v float64) color.NRGBA {
	if !(v > 0) { // catches NaN as well
		return viridis[0]
	}
	if v >= 1 {
		return viridis[255]
	}
	return viridis[int(v*255+0.5)]
}

// GradientCSS returns the palette as CSS linear-gradient stops, bottom
// to top, for rendering the colorbar.
func GradientCSS() string {
	parts := make([]string, len(viridisStops))
	for i, s := range viridisStops {
		pct := float64(i) / float64(len(viridisStops)-1) * 100
		parts[i] = fmt.Sprintf("#%s %.1f%%", s, pct)
	}
	return "linear-gradient(to top, " + strings.Join(parts, ", ") + ")"
}

// ColorbarLabels returns n evenly spaced value labels over the fixed
// [0, 1] color range, low first.
func ColorbarLabels(n int) []string {
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = fmt.Sprintf("%.2f", float64(i)/float64(n-1))
	}
	return labels
}
