// Package dataset reads MeerKAT observation flag archives.
//
// An archive is a directory holding two files:
//   - observation.yaml: observation parameters, timestamps, channel
//     frequencies, correlation-product input labels and the scan table.
//   - flags.dat: the raw uint8 flag-bit cube, C order, time-major
//     (dump x channel x correlation product).
//
// Flag categories are stored one per bit, using the MeerKAT pipeline
// bit layout. Selection is expressed as an immutable Selection value
// resolved against the dataset; resolving never mutates the dataset,
// so independent reductions cannot interfere with each other.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flag bit assignments within the uint8 flag cube.
const (
	FlagCam       uint8 = 0x04
	FlagDataLost  uint8 = 0x08
	FlagIngestRFI uint8 = 0x10
	FlagCalRFI    uint8 = 0x40
)

// flagMasks maps flag category names to their bit masks.
var flagMasks = map[string]uint8{
	"cam":        FlagCam,
	"data_lost":  FlagDataLost,
	"ingest_rfi": FlagIngestRFI,
	"cal_rfi":    FlagCalRFI,
}

// FlagMask returns the bit mask for a flag category name. The empty
// name selects all flag bits (the unfiltered "combined" view).
func FlagMask(name string) (uint8, error) {
	if name == "" {
		return 0xFF, nil
	}
	mask, ok := flagMasks[name]
	if !ok {
		return 0, fmt.Errorf("unknown flag category %q", name)
	}
	return mask, nil
}

// Scan is one entry of the observation's scan table. Dump indices are
// half-open: the scan covers dumps [StartDump, EndDump).
type Scan struct {
	StartDump int    `yaml:"start_dump"`
	EndDump   int    `yaml:"end_dump"`
	Type      string `yaml:"type"`
	Target    string `yaml:"target"`
}

// header is the on-disk layout of observation.yaml.
type header struct {
	Name         string            `yaml:"name"`
	ObsParams    map[string]string `yaml:"obs_params"`
	Timestamps   []float64         `yaml:"timestamps"`
	Frequencies  []float64         `yaml:"frequencies"`
	CorrProducts [][2]string       `yaml:"corr_products"`
	Scans        []Scan            `yaml:"scans"`
}

// Dataset is a read-only handle on one observation archive.
type Dataset struct {
	name         string
	obsParams    map[string]string
	timestamps   []float64
	frequencies  []float64
	corrProducts [][2]string
	scans        []Scan
	flags        []uint8
}

// New builds a dataset from in-memory arrays, validating shapes.
// The flag cube is time-major: flags[(t*nchan+c)*ncorr+b].
func New(name string, obsParams map[string]string, timestamps, frequencies []float64,
	corrProducts [][2]string, scans []Scan, flags []uint8) (*Dataset, error) {
	if name == "" {
		return nil, fmt.Errorf("dataset name is empty")
	}
	if len(timestamps) == 0 || len(frequencies) == 0 || len(corrProducts) == 0 {
		return nil, fmt.Errorf("dataset %s has empty axes (%d dumps, %d channels, %d products)",
			name, len(timestamps), len(frequencies), len(corrProducts))
	}
	want := len(timestamps) * len(frequencies) * len(corrProducts)
	if len(flags) != want {
		return nil, fmt.Errorf("flag cube has %d samples, want %d (%d x %d x %d)",
			len(flags), want, len(timestamps), len(frequencies), len(corrProducts))
	}
	for i, p := range corrProducts {
		if len(p[0]) < 2 || len(p[1]) < 2 {
			return nil, fmt.Errorf("correlation product %d has malformed labels %q,%q", i, p[0], p[1])
		}
	}
	for i, s := range scans {
		if s.StartDump < 0 || s.EndDump > len(timestamps) || s.StartDump >= s.EndDump {
			return nil, fmt.Errorf("scan %d covers dumps [%d,%d) outside [0,%d)",
				i, s.StartDump, s.EndDump, len(timestamps))
		}
	}
	if obsParams == nil {
		obsParams = map[string]string{}
	}

	return &Dataset{
		name:         name,
		obsParams:    obsParams,
		timestamps:   timestamps,
		frequencies:  frequencies,
		corrProducts: corrProducts,
		scans:        scans,
		flags:        flags,
	}, nil
}

// Open opens an observation archive directory.
func Open(path string) (*Dataset, error) {
	data, err := os.ReadFile(filepath.Join(path, "observation.yaml")) //#nosec G304 -- user-provided dataset
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}

	var h header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse observation header: %w", err)
	}

	flags, err := os.ReadFile(filepath.Join(path, "flags.dat")) //#nosec G304
	if err != nil {
		return nil, fmt.Errorf("open flag cube: %w", err)
	}

	ds, err := New(h.Name, h.ObsParams, h.Timestamps, h.Frequencies, h.CorrProducts, h.Scans, flags)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Name returns the dataset name.
func (d *Dataset) Name() string { return d.name }

// CaptureBlockID returns the capture block id, the leading underscore
// separated segment of the dataset name.
func (d *Dataset) CaptureBlockID() string {
	return strings.SplitN(d.name, "_", 2)[0]
}

// ObsParams returns the observation parameters.
func (d *Dataset) ObsParams() map[string]string { return d.obsParams }

// Timestamps returns the Unix timestamps of all dumps.
func (d *Dataset) Timestamps() []float64 { return d.timestamps }

// Frequencies returns the channel centre frequencies in Hz.
func (d *Dataset) Frequencies() []float64 { return d.frequencies }

// CorrProducts returns the correlation-product input label pairs.
func (d *Dataset) CorrProducts() [][2]string { return d.corrProducts }

// Scans returns the full scan table.
func (d *Dataset) Scans() []Scan { return d.scans }

// NumChannels returns the number of frequency channels.
func (d *Dataset) NumChannels() int { return len(d.frequencies) }
