package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ska-sa/rfireport/pkg/baseline"
	"github.com/ska-sa/rfireport/pkg/config"
	"github.com/ska-sa/rfireport/pkg/dataset"
	"github.com/ska-sa/rfireport/pkg/logger"
	"github.com/ska-sa/rfireport/pkg/stats"
)

// Packager generates the full report bundle for one observation.
type Packager struct {
	Dataset *dataset.Dataset
	Table   baseline.Table

	// OutputDir is the parent directory; the bundle lands in
	// OutputDir/<Prefix>_<uuid>.
	OutputDir string
	Prefix    string

	Render *config.Config
}

// Run generates both reports, the metadata sidecar and the combined
// index page, and returns the final output directory. Everything is
// written into a ".writing" temporary directory that is renamed to its
// final name only once the whole bundle exists; on any failure the
// temporary directory is removed (best effort) and the original error
// is returned, so no partial bundle is ever visible under the final
// name.
func (p *Packager) Run() (string, error) {
	name := fmt.Sprintf("%s_%s", p.Prefix, uuid.New())
	finalDir := filepath.Join(p.OutputDir, name)
	tmpDir := finalDir + ".writing"

	if err := os.Mkdir(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	if err := p.generate(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}

	if err := os.Rename(tmpDir, finalDir); err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("publish output directory: %w", err)
	}

	logger.Info("Report written to %s", finalDir)
	return finalDir, nil
}

// generate writes every artifact of the bundle into dir.
func (p *Packager) generate(dir string) error {
	cbid := p.Dataset.CaptureBlockID()

	freqs := p.Dataset.Frequencies()
	freqsMHz := make([]float64, len(freqs))
	for i, f := range freqs {
		freqsMHz[i] = f / 1e6
	}

	var files []ReportFile
	for _, kind := range stats.Kinds {
		logger.Info("Collecting %s RFI Statistics", kind)
		collector, err := stats.NewCollector(p.Dataset, kind, p.Table)
		if err != nil {
			return err
		}
		results, err := collector.CollectAll()
		if err != nil {
			return err
		}

		logger.Info("Creating report for %s", kind)
		doc, err := BuildDocument(kind, results, freqsMHz, collector.OrderedLengths(), p.Render)
		if err != nil {
			return err
		}

		filename := fmt.Sprintf("%s_%s_%s_report.html", cbid, kind, p.Prefix)
		if err := WriteHTML(filepath.Join(dir, filename), doc); err != nil {
			return err
		}
		files = append(files, ReportFile{Kind: kind, Filename: filename})
	}

	if err := WriteMetadata(filepath.Join(dir, "metadata.json"), p.Dataset); err != nil {
		return err
	}
	return WriteIndex(filepath.Join(dir, "index.html"), dir, files)
}
