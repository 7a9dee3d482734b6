// Package report assembles the statistics figures into tabbed HTML
// reports, writes the metadata sidecar and the combined index page, and
// packages everything atomically into the final output directory.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/ska-sa/rfireport/pkg/config"
	"github.com/ska-sa/rfireport/pkg/render"
	"github.com/ska-sa/rfireport/pkg/stats"
)

// tabSpec pairs a tab title with the flag category it shows.
type tabSpec struct {
	Title string
	Flag  string
}

var tabSpecs = []tabSpec{
	{"All flags", "combined_flags"},
	{"Ingest RFI flags", "ingest_rfi"},
	{"Cal RFI flags", "cal_rfi"},
	{"data RFI flags", "data_lost"},
	{"cam RFI flags", "cam"},
}

// Tab is one report tab: a flag category with its polarization panels
// stacked vertically, HH above VV.
type Tab struct {
	Title   string
	Figures []render.Figure
}

// Document is one report ready for HTML serialization.
type Document struct {
	Title    string
	Subtitle string
	Tabs     []Tab

	FigureWidth    int
	FigureHeight   int
	ColorbarCSS    template.CSS
	ColorbarLabels []string
}

// sectionHeadings label the report kinds on the combined index page.
var sectionHeadings = map[stats.Kind]string{
	stats.KindFreqTime:     "Frequency-Time RFI Statistics",
	stats.KindFreqBaseline: "Frequency-Baseline RFI Statistics",
}

// SectionHeading returns the index-page heading for a report kind.
func SectionHeading(kind stats.Kind) string { return sectionHeadings[kind] }

// BuildDocument arranges the collected results of one report kind into
// its tabbed layout. freqsMHz is the shared frequency axis; lengths is
// the ordered baseline-length axis (freq-baseline kind only).
func BuildDocument(kind stats.Kind, results []stats.Result, freqsMHz, lengths []float64, cfg *config.Config) (*Document, error) {
	byKey := make(map[string]stats.Result, len(results))
	for _, res := range results {
		byKey[res.Pol+"/"+res.Flag] = res
	}

	doc := &Document{
		Title:          "MeerKAT RFI Report",
		Subtitle:       SectionHeading(kind),
		FigureWidth:    cfg.FigureWidth,
		FigureHeight:   cfg.FigureHeight,
		ColorbarCSS:    template.CSS(render.GradientCSS()),
		ColorbarLabels: render.ColorbarLabels(cfg.ColorbarTicks),
	}

	for _, spec := range tabSpecs {
		tab := Tab{Title: spec.Title}
		for _, pol := range stats.Polarizations {
			res, ok := byKey[pol+"/"+spec.Flag]
			if !ok {
				return nil, fmt.Errorf("no %s result for %s %s", kind, spec.Flag, pol)
			}

			var fig render.Figure
			var err error
			switch kind {
			case stats.KindFreqTime:
				fig, err = render.NewFreqTimeFigure(res.Flag, pol, res.Image, freqsMHz, res.Dumps, res.Targets)
			case stats.KindFreqBaseline:
				fig, err = render.NewFreqBaselineFigure(res.Flag, pol, res.Image, freqsMHz, lengths)
			default:
				err = fmt.Errorf("unknown report kind %q", kind)
			}
			if err != nil {
				return nil, fmt.Errorf("render %s %s: %w", res.Flag, pol, err)
			}
			tab.Figures = append(tab.Figures, fig)
		}
		doc.Tabs = append(doc.Tabs, tab)
	}

	return doc, nil
}

// WriteHTML serializes the document to an HTML file.
func WriteHTML(path string, doc *Document) error {
	html, err := renderHTML(doc)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func renderHTML(doc *Document) (string, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"colorbarPercent": func(i, n int) string {
			if n <= 1 {
				return "0"
			}
			return fmt.Sprintf("%.1f", float64(i)/float64(n-1)*100)
		},
	}).Parse(layoutTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Subtitle}}</title>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f9fafb;
            --text-primary: #111827;
            --text-muted: #6b7280;
            --border-color: #e5e7eb;
            --accent: #06b6d4;
        }

        * {
            box-sizing: border-box;
            margin: 0;
            padding: 0;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            line-height: 1.5;
            padding: 16px 24px;
        }

        .report-subtitle {
            font-size: 16px;
            font-weight: 600;
            margin-bottom: 12px;
        }

        .tab-bar {
            display: flex;
            gap: 8px;
            border-bottom: 1px solid var(--border-color);
            margin-bottom: 16px;
        }

        .tab-btn {
            padding: 8px 16px;
            border: 1px solid var(--border-color);
            border-bottom: none;
            border-radius: 6px 6px 0 0;
            background: var(--bg-secondary);
            font-size: 13px;
            cursor: pointer;
        }

        .tab-btn.active {
            background: var(--accent);
            color: white;
            border-color: var(--accent);
        }

        .tab-panel {
            display: none;
        }

        .tab-panel.active {
            display: block;
        }

        .figure {
            margin-bottom: 32px;
        }

        .figure-title {
            font-size: 14px;
            font-weight: 600;
            margin-bottom: 8px;
        }

        .figure-body {
            display: flex;
            align-items: stretch;
            gap: 8px;
        }

        .y-axis {
            position: relative;
            width: 120px;
            flex-shrink: 0;
        }

        .y-axis-label {
            position: absolute;
            left: 0;
            top: 50%;
            transform: rotate(180deg);
            writing-mode: vertical-rl;
            font-size: 12px;
            color: var(--text-muted);
            white-space: nowrap;
        }

        .y-tick {
            position: absolute;
            right: 4px;
            transform: translateY(50%);
            font-size: 11px;
            color: var(--text-muted);
            white-space: nowrap;
        }

        .waterfall {
            display: block;
            image-rendering: pixelated;
            border: 1px solid var(--border-color);
        }

        .colorbar {
            position: relative;
            width: 18px;
            flex-shrink: 0;
            border: 1px solid var(--border-color);
        }

        .colorbar-tick {
            position: absolute;
            left: 22px;
            transform: translateY(50%);
            font-size: 10px;
            color: var(--text-muted);
        }

        .colorbar-wrap {
            position: relative;
            width: 60px;
            flex-shrink: 0;
            display: flex;
        }

        .x-axis {
            display: flex;
            justify-content: space-between;
            font-size: 11px;
            color: var(--text-muted);
            margin-left: 128px;
        }

        .x-axis-label {
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="report-subtitle">{{.Subtitle}}</div>

    <div class="tab-bar">
        {{range $ti, $tab := .Tabs}}
        <button class="tab-btn{{if eq $ti 0}} active{{end}}" data-tab="{{$ti}}">{{$tab.Title}}</button>
        {{end}}
    </div>

    {{$doc := .}}
    {{range $ti, $tab := .Tabs}}
    <div class="tab-panel{{if eq $ti 0}} active{{end}}" data-panel="{{$ti}}">
        {{range $fig := $tab.Figures}}
        <div class="figure">
            <div class="figure-title">{{$fig.Title}}</div>
            <div class="figure-body" style="height: {{$doc.FigureHeight}}px">
                <div class="y-axis">
                    <span class="y-axis-label">{{$fig.YLabel}}</span>
                    {{range $tick := $fig.YTicks}}
                    <span class="y-tick" style="bottom: {{printf "%.2f" ($fig.TickPercent $tick)}}%">{{$tick.Label}}</span>
                    {{end}}
                </div>
                <img class="waterfall" src="{{$fig.ImageURI}}" alt="{{$fig.Title}} {{$fig.YLabel}}"
                     style="width: {{$doc.FigureWidth}}px; height: 100%">
                <div class="colorbar-wrap">
                    <div class="colorbar" style="background: {{$doc.ColorbarCSS}}">
                        {{range $ci, $label := $doc.ColorbarLabels}}
                        <span class="colorbar-tick" style="bottom: {{colorbarPercent $ci (len $doc.ColorbarLabels)}}%">{{$label}}</span>
                        {{end}}
                    </div>
                </div>
            </div>
            <div class="x-axis" style="width: {{$doc.FigureWidth}}px">
                <span>{{printf "%.1f" $fig.XMin}}</span>
                <span class="x-axis-label">{{$fig.XLabel}}</span>
                <span>{{printf "%.1f" $fig.XMax}}</span>
            </div>
        </div>
        {{end}}
    </div>
    {{end}}

    <script>
        document.querySelectorAll('.tab-btn').forEach(btn => {
            btn.addEventListener('click', () => {
                document.querySelectorAll('.tab-btn').forEach(b => b.classList.remove('active'));
                document.querySelectorAll('.tab-panel').forEach(p => p.classList.remove('active'));
                btn.classList.add('active');
                document.querySelector('.tab-panel[data-panel="' + btn.dataset.tab + '"]').classList.add('active');
            });
        });
    </script>
</body>
</html>
`
