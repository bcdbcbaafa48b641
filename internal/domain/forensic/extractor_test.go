package forensic

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Categories(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		line     string
		category Category
		amount   int64
		desc     string
	}{
		{"repairs with secondary text", "Mantención ascensores 1.250.000", CategoryRepairs, 1250000, "Mantención ascensores"},
		{"repairs service", "Servicio jardinería 85.000", CategoryRepairs, 85000, "Servicio jardinería"},
		{"administration fees", "Honorarios 500.000", CategoryAdministration, 500000, "Honorarios 500.000"},
		{"insurance policy", "Seguro 320.000", CategoryInsurance, 320000, "Seguro 320.000"},
		{"utilities water", "Aguas 45.500", CategoryUtilities, 45500, "Aguas 45.500"},
		{"utilities electricity", "Electricidad 120.000", CategoryUtilities, 120000, "Electricidad 120.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := extractor.Extract(tt.line, "gc_marzo.pdf")
			require.Len(t, results, 1)

			assert.Equal(t, tt.category, results[0].Category)
			assert.Equal(t, tt.amount, results[0].Amount)
			assert.Equal(t, tt.desc, results[0].Description)
			assert.False(t, results[0].IsAnomaly)
			assert.Nil(t, results[0].AnomalyKind)
		})
	}
}

func TestExtractor_FirstMatchWinsPerLine(t *testing.T) {
	extractor := NewExtractor()

	// "Servicio" (repairs vocabulary) appears before "luz" can match
	// utilities; the line contributes exactly one Repairs expense.
	results := extractor.Extract("Servicio de luz 30.000", "doc.txt")
	require.Len(t, results, 1)
	assert.Equal(t, CategoryRepairs, results[0].Category)
}

func TestExtractor_AmountParsing(t *testing.T) {
	tests := []struct {
		token  string
		amount int64
		ok     bool
	}{
		{"1.234.567", 1234567, true},
		{"1250000", 1250000, true},
		{"85.000", 85000, true},
		{"0", 0, true},
		{"...", 0, false},
	}

	for _, tt := range tests {
		amount, ok := parseAmount(tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
		if tt.ok {
			assert.Equal(t, tt.amount, amount, tt.token)
		}
	}
}

func TestExtractor_LineWithoutAmountYieldsNothing(t *testing.T) {
	extractor := NewExtractor()

	// Keyword but no trailing numeric token: the line contributes no
	// expense and the placeholder takes over.
	results := extractor.Extract("Mantención caldera pendiente", "doc.txt")
	require.Len(t, results, 1)
	assert.Equal(t, CategoryMiscellaneous, results[0].Category)
}

func TestExtractor_PlaceholderWhenNothingMatches(t *testing.T) {
	extractor := NewExtractor()

	results := extractor.Extract("Estimados vecinos, junta el jueves.", "acta_junta.docx")
	require.Len(t, results, 1)

	placeholder := results[0]
	assert.Equal(t, CategoryMiscellaneous, placeholder.Category)
	assert.Equal(t, int64(0), placeholder.Amount)
	assert.False(t, placeholder.IsAnomaly)
	assert.Contains(t, placeholder.Description, "acta_junta.docx")
	assert.Contains(t, placeholder.AIComment, "No se detectaron anomalías")
}

func TestExtractor_EmptyTextStillYieldsPlaceholder(t *testing.T) {
	extractor := NewExtractor()

	results := extractor.Extract("", "vacio.txt")
	require.Len(t, results, 1)
	assert.Equal(t, CategoryMiscellaneous, results[0].Category)
}

func TestExtractor_NoiseLinesNeverPanic(t *testing.T) {
	gofakeit.Seed(11)
	extractor := NewExtractor()

	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString(gofakeit.Sentence(8))
		sb.WriteByte('\n')
	}
	sb.WriteString("Mantención portón 90.000\n")

	results := extractor.Extract(sb.String(), "ruido.txt")
	require.NotEmpty(t, results)

	found := false
	for _, e := range results {
		if e.Category == CategoryRepairs && e.Amount == 90000 {
			found = true
		}
	}
	assert.True(t, found, "expected the real expense among the noise")
}

func TestExtractor_MultipleLines(t *testing.T) {
	extractor := NewExtractor()

	text := "Mantención ascensores 1.250.000\nHonorarios 500.000\nSeguro 320.000\nLuz 80.000"
	results := extractor.Extract(text, "gc.pdf")
	require.Len(t, results, 4)

	assert.Equal(t, CategoryRepairs, results[0].Category)
	assert.Equal(t, CategoryAdministration, results[1].Category)
	assert.Equal(t, CategoryInsurance, results[2].Category)
	assert.Equal(t, CategoryUtilities, results[3].Category)
}
