package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ska-sa/rfireport/pkg/baseline"
	"github.com/ska-sa/rfireport/pkg/config"
)

func TestPackager_Run(t *testing.T) {
	outDir := t.TempDir()
	p := &Packager{
		Dataset:   testObservation(t),
		Table:     testTable(),
		OutputDir: outDir,
		Prefix:    "test",
		Render:    config.Default(),
	}

	bundle, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if filepath.Dir(bundle) != outDir {
		t.Errorf("bundle %q not under %q", bundle, outDir)
	}
	if base := filepath.Base(bundle); !strings.HasPrefix(base, "test_") {
		t.Errorf("bundle name %q lacks prefix", base)
	}

	for _, name := range []string{
		"1630212001_freq_time_test_report.html",
		"1630212001_freq_baseline_test_report.html",
		"metadata.json",
		"index.html",
	} {
		if _, err := os.Stat(filepath.Join(bundle, name)); err != nil {
			t.Errorf("bundle missing %s: %v", name, err)
		}
	}

	// The working directory must be gone after the rename.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("output dir holds %v, want only the bundle", names)
	}
}

func TestPackager_Run_FailureLeavesNothing(t *testing.T) {
	outDir := t.TempDir()
	p := &Packager{
		Dataset: testObservation(t),
		// One baseline missing from the table fails the freq-baseline
		// report after the freq-time report has been generated.
		Table:     baseline.Table{"m000m001": 100, "m000m002": 50},
		OutputDir: outDir,
		Prefix:    "test",
		Render:    config.Default(),
	}

	if _, err := p.Run(); err == nil {
		t.Fatal("Run() succeeded with incomplete baseline table")
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("output dir holds %v after failure, want nothing", names)
	}
}

func TestPackager_Run_DistinctNames(t *testing.T) {
	outDir := t.TempDir()
	p := &Packager{
		Dataset:   testObservation(t),
		Table:     testTable(),
		OutputDir: outDir,
		Prefix:    "test",
		Render:    config.Default(),
	}

	first, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first == second {
		t.Errorf("two runs produced the same bundle name %q", first)
	}
}
