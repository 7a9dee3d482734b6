package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ska-sa/rfireport/pkg/stats"
)

// ReportFile names one generated report within the output directory.
type ReportFile struct {
	Kind     stats.Kind
	Filename string
}

const indexHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>MeerKAT RFI Report</title>
</head>
<body>
    <h1>MeerKAT RFI Report</h1>
`

const indexFoot = `</body>
</html>
`

// WriteIndex writes the combined index.html: the full contents of each
// report file, verbatim, each preceded by its section heading, in
// report-kind order.
func WriteIndex(path, dir string, files []ReportFile) error {
	var b strings.Builder
	b.WriteString(indexHead)

	for _, f := range files {
		content, err := os.ReadFile(filepath.Join(dir, f.Filename)) //#nosec G304 -- files we just wrote
		if err != nil {
			return fmt.Errorf("read report %s: %w", f.Filename, err)
		}
		fmt.Fprintf(&b, "<h2>%s</h2>\n", SectionHeading(f.Kind))
		b.Write(content)
	}

	b.WriteString(indexFoot)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
