// Command generate_index renders README.md and the bond inventory into a
// single static index.html.
//
//	go run ./scripts/generate_index.go <dist-dir> [catalog-file]
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir> [catalog-file]\n", os.Args[0])
		os.Exit(1)
	}

	distDir := os.Args[1]
	indexPath := filepath.Join(distDir, "index.html")

	readme, err := os.ReadFile("README.md")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading README.md: %v\n", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	if len(os.Args) == 3 {
		cat, err = catalog.LoadFile(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
			os.Exit(1)
		}
	}

	page, err := renderPage(readme, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering page: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", distDir, err)
		os.Exit(1)
	}
	if err := os.WriteFile(indexPath, page, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing index.html: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Generated %s (%d instruments)\n", indexPath, cat.Len())
}

var pageTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>bondpick - Bond Instrument Picker</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 960px; margin: 40px auto; padding: 0 20px; line-height: 1.5; }
    code, pre { font-family: Menlo, monospace; }
    table { border-collapse: collapse; }
    th, td { padding: 4px 10px; border-bottom: 1px solid #ddd; text-align: left; }
    .warnings { color: #92400e; }
  </style>
</head>
<body>
{{.Body}}
{{- if .Warnings}}
<ul class="warnings">
{{- range .Warnings}}
  <li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

// renderPage converts the README and an inventory section to one HTML page.
func renderPage(readme []byte, cat *catalog.Catalog) ([]byte, error) {
	src := append(append([]byte{}, readme...), inventoryMarkdown(cat)...)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	body := markdown.Render(p.Parse(src), renderer)

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Body     template.HTML
		Warnings []string
	}{
		Body:     template.HTML(body),
		Warnings: cat.CheckDigitWarnings(),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// inventoryMarkdown renders the catalog as a markdown table section.
func inventoryMarkdown(cat *catalog.Catalog) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n## Inventory (%d instruments)\n\n", cat.Len())
	sb.WriteString("| SierraId | Description | ISIN | Issuer | Maturity | Ccy |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, in := range cat.All() {
		cells := in.Fields()
		for i, c := range cells {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return []byte(sb.String())
}
