package forensic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustmentAuditor_FlagsExcess(t *testing.T) {
	auditor := NewAdjustmentAuditor(0.45, 1.5)

	// 2 > 0.45*1.5 = 0.675
	result := auditor.Audit("Gastos comunes\nReajuste 2%")
	require.NotNil(t, result)

	assert.Equal(t, CategoryAdministration, result.Category)
	assert.Equal(t, int64(0), result.Amount)
	assert.True(t, result.IsAnomaly)
	require.NotNil(t, result.AnomalyKind)
	assert.Equal(t, AnomalyIPCExcess, *result.AnomalyKind)
	assert.Contains(t, result.AIComment, "(2%)")
	assert.Contains(t, result.AIComment, "(0.45%)")
}

func TestAdjustmentAuditor_WithinTolerance(t *testing.T) {
	auditor := NewAdjustmentAuditor(0.45, 1.5)

	assert.Nil(t, auditor.Audit("Reajuste 0.5% aplicado este mes"))
}

func TestAdjustmentAuditor_NoMention(t *testing.T) {
	auditor := NewAdjustmentAuditor(0.45, 1.5)

	assert.Nil(t, auditor.Audit("Mantención ascensores 1.250.000"))
}

func TestAdjustmentAuditor_VocabularyVariants(t *testing.T) {
	auditor := NewAdjustmentAuditor(0.45, 1.5)

	for _, text := range []string{
		"IPC 3%",
		"incremento 5 %",
		"Se aplicó un reajuste 1.2%",
	} {
		assert.NotNil(t, auditor.Audit(text), text)
	}
}

func TestAdjustmentAuditor_FirstOccurrenceWins(t *testing.T) {
	auditor := NewAdjustmentAuditor(0.45, 1.5)

	result := auditor.Audit("Reajuste 9%\nReajuste 2%")
	require.NotNil(t, result)
	assert.Contains(t, result.AIComment, "(9%)")
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		token string
		value float64
		ok    bool
	}{
		{"2", 2, true},
		{"2.5", 2.5, true},
		{"2,5", 2.5, true},
		{"2.5.1", 2.5, true},
	}

	for _, tt := range tests {
		v, ok := parsePercent(tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
		assert.InDelta(t, tt.value, v, 1e-9, tt.token)
	}
}
