package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ska-sa/rfireport/pkg/baseline"
	"github.com/ska-sa/rfireport/pkg/config"
	"github.com/ska-sa/rfireport/pkg/dataset"
	"github.com/ska-sa/rfireport/pkg/logger"
	"github.com/ska-sa/rfireport/pkg/report"
)

var reportFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "Logging level (debug, info, warn, error)",
		Value:   "info",
		EnvVars: []string{"RFIREPORT_LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "Path to render config.yaml",
	},
}

func runReport(c *cli.Context) error {
	if c.NArg() != 4 {
		return fmt.Errorf("expected 4 arguments (dataset, baseline CSV, output dir, prefix), got %d", c.NArg())
	}

	if err := logger.SetLevel(c.String("log-level")); err != nil {
		return err
	}
	logger.Info("MEERKAT RFI REPORT")

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	ds, err := dataset.Open(c.Args().Get(0))
	if err != nil {
		return err
	}

	table, err := baseline.LoadTable(c.Args().Get(1))
	if err != nil {
		return err
	}

	packager := &report.Packager{
		Dataset:   ds,
		Table:     table,
		OutputDir: c.Args().Get(2),
		Prefix:    c.Args().Get(3),
		Render:    cfg,
	}
	_, err = packager.Run()
	return err
}
