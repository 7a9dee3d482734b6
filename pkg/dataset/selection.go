package dataset

import "fmt"

// Selection describes a data subset as an explicit query. Zero-value
// fields select everything along that dimension.
type Selection struct {
	// ScanType keeps only dumps belonging to scans of this type,
	// e.g. "track".
	ScanType string
	// CorrProds is "cross" to keep only products whose two antennas
	// differ, or empty for all products.
	CorrProds string
	// Pol keeps products whose both inputs carry this polarization,
	// "HH" or "VV".
	Pol string
	// Flag names the flag category to extract; empty extracts the
	// union of all categories.
	Flag string
}

// View is a resolved Selection: concrete dump and product indices plus
// the flag bit mask. Views are independent of each other; a dataset can
// hold any number of live views.
type View struct {
	Dumps    []int
	Products []int
	Mask     uint8
	Scans    []Scan

	nchan int
	ncorr int
	flags []uint8
}

// Resolve applies a selection to the dataset and returns the resulting
// view. The dataset itself is never modified.
func (d *Dataset) Resolve(sel Selection) (*View, error) {
	mask, err := FlagMask(sel.Flag)
	if err != nil {
		return nil, err
	}

	dumps, scans, err := d.selectDumps(sel.ScanType)
	if err != nil {
		return nil, err
	}

	products, err := d.selectProducts(sel.CorrProds, sel.Pol)
	if err != nil {
		return nil, err
	}

	return &View{
		Dumps:    dumps,
		Products: products,
		Mask:     mask,
		Scans:    scans,
		nchan:    len(d.frequencies),
		ncorr:    len(d.corrProducts),
		flags:    d.flags,
	}, nil
}

func (d *Dataset) selectDumps(scanType string) ([]int, []Scan, error) {
	if scanType == "" {
		dumps := make([]int, len(d.timestamps))
		for i := range dumps {
			dumps[i] = i
		}
		return dumps, d.scans, nil
	}

	var dumps []int
	var scans []Scan
	for _, s := range d.scans {
		if s.Type != scanType {
			continue
		}
		scans = append(scans, s)
		for t := s.StartDump; t < s.EndDump; t++ {
			dumps = append(dumps, t)
		}
	}
	return dumps, scans, nil
}

func (d *Dataset) selectProducts(corrProds, pol string) ([]int, error) {
	var suffix byte
	switch pol {
	case "":
	case "HH":
		suffix = 'h'
	case "VV":
		suffix = 'v'
	default:
		return nil, fmt.Errorf("unknown polarization %q", pol)
	}
	if corrProds != "" && corrProds != "cross" {
		return nil, fmt.Errorf("unknown correlation product selection %q", corrProds)
	}

	var products []int
	for i, p := range d.corrProducts {
		antA, polA := splitLabel(p[0])
		antB, polB := splitLabel(p[1])
		if corrProds == "cross" && antA == antB {
			continue
		}
		if suffix != 0 && (polA != suffix || polB != suffix) {
			continue
		}
		products = append(products, i)
	}
	return products, nil
}

// splitLabel splits an input label like "m012h" into its antenna name
// and polarization suffix.
func splitLabel(label string) (string, byte) {
	return label[:len(label)-1], label[len(label)-1]
}

// NumDumps returns the number of selected dumps.
func (v *View) NumDumps() int { return len(v.Dumps) }

// NumChannels returns the number of frequency channels (the channel
// axis is never subset).
func (v *View) NumChannels() int { return v.nchan }

// NumProducts returns the number of selected correlation products.
func (v *View) NumProducts() int { return len(v.Products) }

// FlagFraction returns 1 if any selected flag bit is set for the given
// view-relative (dump, channel, product) sample, else 0.
func (v *View) FlagFraction(t, c, b int) float64 {
	dump := v.Dumps[t]
	prod := v.Products[b]
	if v.flags[(dump*v.nchan+c)*v.ncorr+prod]&v.Mask != 0 {
		return 1
	}
	return 0
}
