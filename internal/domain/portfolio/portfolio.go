// Package portfolio aggregates stored expenses into transparency and
// recoverable-savings metrics for the dashboard layer.
package portfolio

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/lupacomun/forensik/internal/domain/forensic"
	"github.com/lupacomun/forensik/pkg/money"
)

// ComplianceState summarizes the portfolio health verdict.
type ComplianceState string

const (
	InCompliance ComplianceState = "En Regla"
	UnderReview  ComplianceState = "Bajo Observación"
)

// Penalty points per anomaly severity.
const (
	criticalPenalty = 25
	moderatePenalty = 10
)

var criticalKinds = map[forensic.AnomalyKind]bool{
	forensic.AnomalyCriticalOverprice: true,
	forensic.AnomalyIPCExcess:         true,
}

var moderateKinds = map[forensic.AnomalyKind]bool{
	forensic.AnomalyModerateOverprice: true,
	forensic.AnomalyOverLimitRate:     true,
}

// marketPriceRegex pulls the embedded reference price out of an anomaly
// comment, e.g. "... Precio mercado: $450.000.".
var marketPriceRegex = regexp.MustCompile(`mercado: \$([\d\.]+)`)

// conservativeShare estimates recoverable savings for critical overprices
// whose comment carries no exact market price.
var conservativeShare = decimal.NewFromFloat(0.25)

// Metrics is the derived portfolio snapshot. It has no storage lifecycle and
// is recomputed on demand from the full expense set.
type Metrics struct {
	TransparencyScore int
	AlertCount        int
	PotentialSavings  decimal.Decimal
	Compliance        ComplianceState
}

// TransparencyScore grades the expense set 0-100. An empty portfolio is
// vacuously compliant at 100. Critical anomalies subtract 25 points each,
// moderate ones 10, floored at zero.
func TransparencyScore(expenses []forensic.Expense) int {
	if len(expenses) == 0 {
		return 100
	}

	score := 100
	for _, e := range expenses {
		if e.AnomalyKind == nil {
			continue
		}
		switch {
		case criticalKinds[*e.AnomalyKind]:
			score -= criticalPenalty
		case moderateKinds[*e.AnomalyKind]:
			score -= moderatePenalty
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// PotentialSavings estimates what the community would recover if flagged
// overprices were renegotiated to market level. When the anomaly comment
// embeds the exact market price that difference is used; otherwise critical
// overprices fall back to a conservative quarter of the amount.
func PotentialSavings(expenses []forensic.Expense) decimal.Decimal {
	total := decimal.Zero

	for _, e := range expenses {
		if !e.IsAnomaly {
			continue
		}

		if match := marketPriceRegex.FindStringSubmatch(e.AIComment); match != nil {
			marketPrice, err := money.ParseDotted(match[1])
			if err == nil {
				total = total.Add(decimal.NewFromInt(e.Amount - marketPrice))
				continue
			}
		}

		if e.AnomalyKind != nil && *e.AnomalyKind == forensic.AnomalyCriticalOverprice {
			total = total.Add(decimal.NewFromInt(e.Amount).Mul(conservativeShare))
		}
	}

	return total
}

// SavingsCLP returns the potential savings as a whole-peso amount for
// display. Negative totals (an exact market price above the billed amount)
// clamp to zero; a summary never shows savings below nothing.
func (m Metrics) SavingsCLP() *money.Money {
	savings := m.PotentialSavings
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	return money.FromDecimal(savings)
}

// Compute assembles the full metrics snapshot. complianceThreshold is the
// score above which the portfolio counts as in compliance.
func Compute(expenses []forensic.Expense, complianceThreshold int) Metrics {
	score := TransparencyScore(expenses)

	alerts := 0
	for _, e := range expenses {
		if e.IsAnomaly {
			alerts++
		}
	}

	state := UnderReview
	if score > complianceThreshold {
		state = InCompliance
	}

	return Metrics{
		TransparencyScore: score,
		AlertCount:        alerts,
		PotentialSavings:  PotentialSavings(expenses),
		Compliance:        state,
	}
}
