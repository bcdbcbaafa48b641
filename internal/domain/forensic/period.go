package forensic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// months in canonical order; the classifier picks the first one present in
// the document, not the earliest occurrence.
var months = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var yearRegex = regexp.MustCompile(`20\d{2}`)

// Period is the (month, year) tag a document belongs to. It is encoded into
// every persisted description and is the duplicate-detection key.
type Period struct {
	Month string
	Year  int
}

// Tag renders the canonical bracketed form, e.g. "[MARZO 2026]".
func (p Period) Tag() string {
	return fmt.Sprintf("[%s %d]", strings.ToUpper(p.Month), p.Year)
}

// PeriodClassifier infers a document's period from its text and filename.
// Best effort: it never fails, it just falls back to the configured defaults.
type PeriodClassifier struct {
	defaultMonth string
	defaultYear  int
}

func NewPeriodClassifier(defaultMonth string, defaultYear int) *PeriodClassifier {
	return &PeriodClassifier{defaultMonth: defaultMonth, defaultYear: defaultYear}
}

// Classify searches the lowercased text plus filename for a month name in
// fixed list order and a 4-digit year starting with 20.
func (c *PeriodClassifier) Classify(text, filename string) Period {
	haystack := strings.ToLower(text + " " + filename)

	period := Period{Month: c.defaultMonth, Year: c.defaultYear}

	for _, m := range months {
		if strings.Contains(haystack, m) {
			period.Month = m
			break
		}
	}

	if match := yearRegex.FindString(haystack); match != "" {
		year, err := strconv.Atoi(match)
		if err == nil {
			period.Year = year
		}
	}

	return period
}
