package forensic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// spendingPattern pairs a line regex with the category it assigns. The table
// is evaluated in order and the first match wins, so broader vocabularies
// must come after narrower ones.
type spendingPattern struct {
	regex    *regexp.Regexp
	category Category
}

// categoryKeywords feeds the Aho-Corasick prescreen. A line containing none
// of these substrings cannot match any pattern, so the regex table is skipped
// for it entirely. Lowercase; matching is done on the lowered line.
var categoryKeywords = []string{
	"reparación", "mantención", "servicio", "arreglo",
	"honorarios", "administración", "gestión",
	"seguro", "póliza", "incendio",
	"agua", "luz", "electricidad", "gas",
}

// Extractor mines normalized statement text for discrete expense entries.
type Extractor struct {
	patterns  []spendingPattern
	prescreen *ahocorasick.Matcher
}

// NewExtractor builds the pattern table. Order matters: repairs carry a
// secondary description group, the rest capture only the trailing amount.
func NewExtractor() *Extractor {
	return &Extractor{
		patterns: []spendingPattern{
			{regexp.MustCompile(`(?i)(reparación|mantención|servicio|arreglo)\s+(.*?)\s+(\d+[\d\.]*)`), CategoryRepairs},
			{regexp.MustCompile(`(?i)(honorarios|administración|gestión)\s+(\d+[\d\.]*)`), CategoryAdministration},
			{regexp.MustCompile(`(?i)(seguro|póliza|incendio)\s+(\d+[\d\.]*)`), CategoryInsurance},
			{regexp.MustCompile(`(?i)(aguas?|luz|electricidad|gas)\s+(\d+[\d\.]*)`), CategoryUtilities},
		},
		prescreen: ahocorasick.NewStringMatcher(categoryKeywords),
	}
}

// Extract scans text line by line against the pattern table. Each line
// contributes at most one expense. A line whose trailing numeric token does
// not parse is dropped silently. When nothing matches at all, Extract emits
// exactly one Miscellaneous placeholder naming the source file, so the result
// is never empty.
func (e *Extractor) Extract(text, filename string) []Expense {
	var results []Expense

	for _, line := range strings.Split(text, "\n") {
		if len(e.prescreen.Match([]byte(strings.ToLower(line)))) == 0 {
			continue
		}

		for _, p := range e.patterns {
			match := p.regex.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			// The second capture group rides along in the description.
			// For single-amount patterns that group is the amount token
			// itself, which mirrors how the audits were always stored.
			desc := match[1]
			if len(match) > 2 {
				desc += " " + match[2]
			}

			amount, ok := parseAmount(match[len(match)-1])
			if ok {
				results = append(results, Expense{
					Description: strings.TrimSpace(desc),
					Category:    p.category,
					Amount:      amount,
					AIComment:   "Gasto detectado por Forensik Engine.",
				})
			}
			break
		}
	}

	if len(results) == 0 {
		results = append(results, Expense{
			Description: fmt.Sprintf("Análisis de Documento: %s", filename),
			Category:    CategoryMiscellaneous,
			Amount:      0,
			AIComment:   "Documento procesado. No se detectaron anomalías críticas evidentes en el primer escaneo.",
		})
	}

	return results
}

// parseAmount normalizes a captured numeric token: thousands periods are
// stripped and a single fractional comma is collapsed before parsing.
// "1.234.567" yields 1234567.
func parseAmount(token string) (int64, bool) {
	cleaned := strings.ReplaceAll(token, ".", "")
	cleaned = strings.Replace(cleaned, ",", "", 1)

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
