// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls earnings-per-share figures out of converted filing
// text. patterns.go holds the phrasing matchers and numeric normalization.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// figure captures one reported number: optional accounting parenthesis,
// optional sign, digits with optional decimals, optional closing parenthesis.
// "(0.40)" and "-0.40" both denote negative forty cents.
const figure = `(\(?-?\d+(?:\.\d+)?\)?)`

// cents is an optional unit suffix seen in older press releases.
const cents = `(?:\s*(?:cents|cents\s*per\s*share))?`

// epsPatterns is the ordered list of phrasing matchers applied to every
// document. The phrasings deliberately overlap; the extremal reduction in
// Extract absorbs duplicate hits, so overlap costs nothing and widens recall.
var epsPatterns = []*regexp.Regexp{
	// "EPS" followed eventually by a number.
	regexp.MustCompile(`(?i)EPS\s*(?:.*?)` + figure),

	// "Earnings per share" / "Earnings per common share".
	regexp.MustCompile(`(?i)Earnings\s*per\s*(?:common\s*)?share\s*(?:.*?)` + figure + cents),

	// "Loss per share" / "Loss per common share".
	regexp.MustCompile(`(?i)Loss\s*per\s*(?:common\s*)?share\s*(?:.*?)` + figure + cents),

	// Bare qualifiers ("diluted", "basic") with an optional per-share tail.
	regexp.MustCompile(`(?i)(?:earnings|diluted|basic|eps)\s*(?:per\s*(?:common\s*)?share)?\s*(?:.*?)` + figure),

	// "loss per share" without the common-share variant.
	regexp.MustCompile(`(?i)(?:loss\s*per\s*share)\s*(?:.*?)` + figure),

	// Catch-all over the three main phrasings.
	regexp.MustCompile(`(?i)(?:EPS|Earnings\s*per\s*(?:common\s*)?share|Loss\s*per\s*(?:common\s*)?share)\s*(?:.*?)` + figure),
}

// candidates scans text with every pattern in order and returns all numeric
// values found. Matches that fail numeric parsing are skipped; one bad span
// never aborts the remaining patterns.
func candidates(text string) []float64 {
	var values []float64
	for _, re := range epsPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, ok := parseFigure(m[1])
			if !ok {
				continue
			}
			values = append(values, v)
		}
	}
	return values
}

// parseFigure normalizes a captured span to a float. Accounting parentheses
// become a leading minus: "(1.23)" parses as -1.23.
func parseFigure(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "(", "-")
	s = strings.ReplaceAll(s, ")", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
