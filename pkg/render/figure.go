// Package render turns 2-D flag-fraction images into the color-mapped
// figures embedded in the RFI report HTML.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/png"
)

// Tick is one y-axis tick at a data-space position.
type Tick struct {
	Pos   float64
	Label string
}

// Figure is one renderable waterfall panel: the color-mapped image plus
// the axis metadata its HTML needs. All figures of one report share the
// same axis ranges so the panels align visually.
type Figure struct {
	Title  string
	XLabel string
	YLabel string

	// ImageURI is the base64 PNG data URI of the waterfall.
	ImageURI template.URL

	XMin, XMax float64
	YMin, YMax float64
	YTicks     []Tick
}

// NewFreqTimeFigure builds the frequency-time panel for one flag
// category and polarization. Rows of image are dumps, columns are
// channels; frequencies are channel centres in MHz.
func NewFreqTimeFigure(title, pol string, img [][]float64, freqsMHz []float64, dumps int, targets []string) (Figure, error) {
	uri, err := Waterfall(img)
	if err != nil {
		return Figure{}, err
	}
	xmin, xmax := minMax(freqsMHz)
	return Figure{
		Title:    title,
		XLabel:   "Frequency MHz",
		YLabel:   fmt.Sprintf("Pol %s Scans", pol),
		ImageURI: uri,
		XMin:     xmin,
		XMax:     xmax,
		YMin:     0,
		YMax:     float64(dumps),
		YTicks:   ScanTicks(dumps, targets),
	}, nil
}

// NewFreqBaselineFigure builds the frequency-baseline panel. Rows of
// image are baselines ascending in length; lengths is the shared
// ordered length axis.
func NewFreqBaselineFigure(title, pol string, img [][]float64, freqsMHz, lengths []float64) (Figure, error) {
	uri, err := Waterfall(img)
	if err != nil {
		return Figure{}, err
	}
	xmin, xmax := minMax(freqsMHz)
	ymin, ymax := minMax(lengths)
	return Figure{
		Title:    title,
		XLabel:   "Frequency [MHz]",
		YLabel:   fmt.Sprintf("Pol %s Baseline length [m]", pol),
		ImageURI: uri,
		XMin:     xmin,
		XMax:     xmax,
		YMin:     ymin,
		YMax:     ymax,
	}, nil
}

// Waterfall encodes a 2-D fraction image as a PNG data URI, one pixel
// per sample. Row 0 maps to the bottom of the image, so the figure y
// axis grows upward.
func Waterfall(img [][]float64) (template.URL, error) {
	if len(img) == 0 || len(img[0]) == 0 {
		return "", fmt.Errorf("empty image")
	}
	h, w := len(img), len(img[0])

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for r, row := range img {
		if len(row) != w {
			return "", fmt.Errorf("ragged image: row %d has %d columns, want %d", r, len(row), w)
		}
		y := h - 1 - r
		for x, v := range row {
			out.SetNRGBA(x, y, mapColor(v))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return "", fmt.Errorf("encode waterfall: %w", err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return template.URL(uri), nil
}

// ScanTicks places scan-target labels along the dump axis using a
// stride of dumps/targets+1 with a constant +10 offset, one label per
// scan in scan order. It is a label placement aid, not an exact
// dump-to-scan mapping.
func ScanTicks(dumps int, targets []string) []Tick {
	if dumps == 0 || len(targets) == 0 {
		return nil
	}
	step := dumps/len(targets) + 1
	positions := (dumps + step - 1) / step
	if positions > len(targets) {
		positions = len(targets)
	}

	ticks := make([]Tick, 0, positions)
	for i := 0; i < positions; i++ {
		ticks = append(ticks, Tick{
			Pos:   float64(i*step + 10),
			Label: targets[i],
		})
	}
	return ticks
}

// TickPercent converts a tick position to a percentage of the figure's
// y extent, clamped to [0, 100], for CSS placement.
func (f Figure) TickPercent(t Tick) float64 {
	if f.YMax <= f.YMin {
		return 0
	}
	pct := (t.Pos - f.YMin) / (f.YMax - f.YMin) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
