// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLConverter flattens EDGAR HTML documents to plain text with an
// in-process parser. It is the default backend.
type HTMLConverter struct{}

// NewHTMLConverter creates the built-in HTML-to-text converter.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

// spaceRun matches horizontal whitespace runs, including the non-breaking
// spaces EDGAR documents put between labels and figures.
var spaceRun = regexp.MustCompile(`[ \t\x{00a0}]+`)

// Convert parses the HTML document at docPath and returns its visible text.
// Table rows collapse to single lines so a figure stays on the same line as
// its label, and hidden blocks (including the inline XBRL header, whose
// machine-readable facts would pollute the text) are dropped.
func (h *HTMLConverter) Convert(docPath string) (string, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return "", fmt.Errorf("opening document %s: %w", docPath, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parsing HTML in %s: %w", docPath, err)
	}

	doc.Find("script, style, head, noscript").Remove()
	doc.Find("[hidden], [style*='display:none'], [style*='display: none']").Remove()

	// Flatten rows innermost first so nested layout tables fold into their
	// enclosing cell before that cell's row is joined.
	rows := doc.Find("tr")
	for i := rows.Length() - 1; i >= 0; i-- {
		row := rows.Eq(i)
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			if t := strings.TrimSpace(spaceRun.ReplaceAllString(cell.Text(), " ")); t != "" {
				cells = append(cells, t)
			}
		})
		row.ReplaceWithHtml("\n" + html.EscapeString(strings.Join(cells, " ")) + "\n")
	}

	// Remaining block boundaries become line breaks.
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, table").AfterHtml("\n")

	return collapseWhitespace(doc.Text()), nil
}

// collapseWhitespace squeezes each line's whitespace to single spaces and
// drops blank lines. Non-breaking spaces become regular spaces so later
// pattern scans see ordinary word gaps.
func collapseWhitespace(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
