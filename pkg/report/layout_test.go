package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ska-sa/rfireport/pkg/config"
	"github.com/ska-sa/rfireport/pkg/stats"
)

func collectResults(t *testing.T, kind stats.Kind) ([]stats.Result, []float64) {
	t.Helper()
	collector, err := stats.NewCollector(testObservation(t), kind, testTable())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	results, err := collector.CollectAll()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return results, collector.OrderedLengths()
}

func TestBuildDocument_FreqTime(t *testing.T) {
	results, _ := collectResults(t, stats.KindFreqTime)
	freqsMHz := []float64{856, 857, 858}

	doc, err := BuildDocument(stats.KindFreqTime, results, freqsMHz, nil, config.Default())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	if doc.Subtitle != "Frequency-Time RFI Statistics" {
		t.Errorf("Subtitle = %q", doc.Subtitle)
	}

	wantTitles := []string{"All flags", "Ingest RFI flags", "Cal RFI flags", "data RFI flags", "cam RFI flags"}
	if len(doc.Tabs) != len(wantTitles) {
		t.Fatalf("len(Tabs) = %d, want %d", len(doc.Tabs), len(wantTitles))
	}
	for i, tab := range doc.Tabs {
		if tab.Title != wantTitles[i] {
			t.Errorf("Tabs[%d].Title = %q, want %q", i, tab.Title, wantTitles[i])
		}
		if len(tab.Figures) != 2 {
			t.Fatalf("Tabs[%d] has %d figures, want 2 (HH, VV)", i, len(tab.Figures))
		}
		if !strings.Contains(tab.Figures[0].YLabel, "HH") || !strings.Contains(tab.Figures[1].YLabel, "VV") {
			t.Errorf("Tabs[%d] pol order = %q, %q; want HH above VV",
				i, tab.Figures[0].YLabel, tab.Figures[1].YLabel)
		}
	}

	if got := len(doc.ColorbarLabels); got != config.Default().ColorbarTicks {
		t.Errorf("len(ColorbarLabels) = %d, want %d", got, config.Default().ColorbarTicks)
	}
}

func TestBuildDocument_FreqBaseline(t *testing.T) {
	results, lengths := collectResults(t, stats.KindFreqBaseline)

	doc, err := BuildDocument(stats.KindFreqBaseline, results, []float64{856, 857, 858}, lengths, config.Default())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	if doc.Subtitle != "Frequency-Baseline RFI Statistics" {
		t.Errorf("Subtitle = %q", doc.Subtitle)
	}
	fig := doc.Tabs[0].Figures[0]
	if fig.YMin != 50 || fig.YMax != 100 {
		t.Errorf("figure y range = [%v, %v], want [50, 100]", fig.YMin, fig.YMax)
	}
}

func TestBuildDocument_MissingResult(t *testing.T) {
	results, _ := collectResults(t, stats.KindFreqTime)

	_, err := BuildDocument(stats.KindFreqTime, results[:4], []float64{856, 857, 858}, nil, config.Default())
	if err == nil {
		t.Fatal("BuildDocument() succeeded with incomplete results")
	}
}

func TestWriteHTML(t *testing.T) {
	results, _ := collectResults(t, stats.KindFreqTime)
	doc, err := BuildDocument(stats.KindFreqTime, results, []float64{856, 857, 858}, nil, config.Default())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, doc); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"Frequency-Time RFI Statistics",
		"All flags",
		"cam RFI flags",
		"data:image/png;base64,",
		"Pol HH Scans",
		"Pol VV Scans",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Ten figures: five tabs times two polarizations.
	if got := strings.Count(html, "data:image/png;base64,"); got != 10 {
		t.Errorf("report embeds %d images, want 10", got)
	}
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	bodyA := "<p>freq-time report body</p>"
	bodyB := "<p>freq-baseline report body</p>"
	if err := os.WriteFile(filepath.Join(dir, "a.html"), []byte(bodyA), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.html"), []byte(bodyB), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	path := filepath.Join(dir, "index.html")
	files := []ReportFile{
		{Kind: stats.KindFreqTime, Filename: "a.html"},
		{Kind: stats.KindFreqBaseline, Filename: "b.html"},
	}
	if err := WriteIndex(path, dir, files); err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	index := string(data)

	// Both report bodies appear verbatim, freq-time section first.
	posA := strings.Index(index, bodyA)
	posB := strings.Index(index, bodyB)
	if posA < 0 || posB < 0 {
		t.Fatalf("index does not embed report contents verbatim")
	}
	if posA > posB {
		t.Error("freq-baseline section precedes freq-time section")
	}

	headingA := strings.Index(index, "<h2>Frequency-Time RFI Statistics</h2>")
	if headingA < 0 || headingA > posA {
		t.Error("freq-time heading missing or after its content")
	}
	if !strings.Contains(index, "<h1>MeerKAT RFI Report</h1>") {
		t.Error("index missing page heading")
	}
}

func TestWriteIndex_MissingReport(t *testing.T) {
	dir := t.TempDir()
	err := WriteIndex(filepath.Join(dir, "index.html"), dir, []ReportFile{
		{Kind: stats.KindFreqTime, Filename: "nope.html"},
	})
	if err == nil {
		t.Fatal("WriteIndex() succeeded with missing report file")
	}
}
