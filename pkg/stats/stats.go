// Package stats reduces the observation flag cube to the 2-D mean
// images shown in the RFI report.
package stats

import (
	"fmt"
	"math"

	"github.com/ska-sa/rfireport/pkg/baseline"
	"github.com/ska-sa/rfireport/pkg/dataset"
	"github.com/ska-sa/rfireport/pkg/logger"
)

// Kind selects the reduction axis and axis semantics of a report.
type Kind string

// Report kinds, generated in this order.
const (
	KindFreqTime     Kind = "freq_time"
	KindFreqBaseline Kind = "freq_baseline"
)

// Kinds lists the report kinds in generation order.
var Kinds = []Kind{KindFreqTime, KindFreqBaseline}

// FlagCategories are the flag selections shown in the report, in tab
// order. "combined_flags" is the unfiltered union of all categories.
var FlagCategories = []string{"data_lost", "cam", "ingest_rfi", "cal_rfi", "combined_flags"}

// Polarizations are the correlation-product polarizations reported.
var Polarizations = []string{"HH", "VV"}

// Result is one reduced statistics image with the axis metadata its
// figure needs.
type Result struct {
	Flag string
	Pol  string

	// Image rows map to the figure y axis (dumps for freq-time,
	// length-ordered baselines for freq-baseline); columns are
	// frequency channels.
	Image [][]float64

	// Dumps is the selected dump count, the freq-time y extent.
	Dumps int
	// Targets are the selected scan target names in scan order.
	Targets []string
}

// Collector produces the ten statistics images of one report kind.
type Collector struct {
	ds    *dataset.Dataset
	kind  Kind
	table baseline.Table

	// orderedLengths is the shared freq-baseline y range, ascending.
	orderedLengths []float64
}

// NewCollector builds a collector for one report kind. The baseline
// length table is required for KindFreqBaseline and the ordering is
// resolved up front, so a correlation product missing from the table
// fails here, before any image is produced.
func NewCollector(ds *dataset.Dataset, kind Kind, table baseline.Table) (*Collector, error) {
	c := &Collector{ds: ds, kind: kind, table: table}

	if kind == KindFreqBaseline {
		if table == nil {
			return nil, fmt.Errorf("report kind %s needs a baseline length table", kind)
		}
		view, err := ds.Resolve(dataset.Selection{
			ScanType:  "track",
			CorrProds: "cross",
			Pol:       Polarizations[0],
		})
		if err != nil {
			return nil, err
		}
		_, lengths, err := baseline.Ordering(table, baseline.Select(ds, view.Products))
		if err != nil {
			return nil, err
		}
		c.orderedLengths = lengths
	}

	return c, nil
}

// OrderedLengths returns the ascending baseline lengths of the
// freq-baseline report, nil for other kinds.
func (c *Collector) OrderedLengths() []float64 { return c.orderedLengths }

// CollectAll produces the images for every (polarization, flag)
// combination in fixed order.
func (c *Collector) CollectAll() ([]Result, error) {
	var results []Result
	for _, pol := range Polarizations {
		logger.Info("Processing %s polarization", pol)
		for _, flag := range FlagCategories {
			logger.Info(" %s flags", flag)
			res, err := c.Collect(flag, pol)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}

// Collect reduces one (flag, polarization) selection to its image.
func (c *Collector) Collect(flag, pol string) (Result, error) {
	sel := dataset.Selection{ScanType: "track", CorrProds: "cross", Pol: pol}
	if flag != "combined_flags" {
		sel.Flag = flag
	}
	view, err := c.ds.Resolve(sel)
	if err != nil {
		return Result{}, err
	}

	var image [][]float64
	switch c.kind {
	case KindFreqTime:
		image = meanOverProducts(view)
	case KindFreqBaseline:
		perm, _, err := baseline.Ordering(c.table, baseline.Select(c.ds, view.Products))
		if err != nil {
			return Result{}, err
		}
		image = meanOverDumps(view, perm)
	default:
		return Result{}, fmt.Errorf("unknown report kind %q", c.kind)
	}

	return Result{
		Flag:    flag,
		Pol:     pol,
		Image:   image,
		Dumps:   view.NumDumps(),
		Targets: scanTargets(view.Scans),
	}, nil
}

// meanOverProducts averages the flag cube over the baseline axis,
// giving one row per selected dump.
func meanOverProducts(view *dataset.View) [][]float64 {
	nt, nc, nb := view.NumDumps(), view.NumChannels(), view.NumProducts()
	image := make([][]float64, nt)
	for t := 0; t < nt; t++ {
		row := make([]float64, nc)
		for ch := 0; ch < nc; ch++ {
			row[ch] = mean(nb, func(b int) float64 { return view.FlagFraction(t, ch, b) })
		}
		image[t] = row
	}
	return image
}

// meanOverDumps averages the flag cube over the time axis and reorders
// the baseline axis by the given permutation, giving one row per
// baseline ascending in length.
func meanOverDumps(view *dataset.View, perm []int) [][]float64 {
	nt, nc, nb := view.NumDumps(), view.NumChannels(), view.NumProducts()
	image := make([][]float64, nb)
	for j := 0; j < nb; j++ {
		b := perm[j]
		row := make([]float64, nc)
		for ch := 0; ch < nc; ch++ {
			row[ch] = mean(nt, func(t int) float64 { return view.FlagFraction(t, ch, b) })
		}
		image[j] = row
	}
	return image
}

func mean(n int, sample func(int) float64) float64 {
	if n == 0 {
		return math.NaN()
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += sample(i)
	}
	return sum / float64(n)
}

func scanTargets(scans []dataset.Scan) []string {
	targets := make([]string, len(scans))
	for i, s := range scans {
		targets[i] = s.Target
	}
	return targets
}
