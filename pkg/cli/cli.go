// Package cli provides the command-line interface for rfireport.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// Execute runs the CLI.
func Execute() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "rfireport",
		Usage:     "Generate the MeerKAT RFI flag statistics report for an observation",
		Version:   Version,
		ArgsUsage: "<dataset> <baseline-lengths.csv> <output-dir> <prefix>",
		Description: `rfireport reads an observation flag archive, averages the RFI flag
cube along the time and baseline projections, and writes a tabbed HTML
report bundle (two waterfall reports, metadata.json and a combined
index.html) into <output-dir>/<prefix>_<uuid>/.

Examples:
  rfireport 1630212001_sdp_l0 mkat_baselines.csv /data/reports obs42
  rfireport --log-level debug 1630212001_sdp_l0 bl.csv out obs42`,
		Flags:  reportFlags,
		Action: runReport,
	}
}
