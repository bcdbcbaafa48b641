// Package money provides currency-safe helpers for Chilean pesos. CLP has no
// minor units, so amounts are whole-peso integers everywhere; formatting uses
// the local dotted-thousands convention ("1.250.000").
package money

import (
	"fmt"
	"strconv"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CLP is the ISO-4217 code for the Chilean peso.
const CLP = "CLP"

// Money wraps go-money for safe arithmetic on peso amounts.
type Money struct {
	m *gomoney.Money
}

// New creates a Money value from whole pesos.
func New(amount int64) *Money {
	return &Money{m: gomoney.New(amount, CLP)}
}

// FromDecimal rounds a decimal value to whole pesos.
func FromDecimal(d decimal.Decimal) *Money {
	return New(d.Round(0).IntPart())
}

// Amount returns the value in whole pesos.
func (m *Money) Amount() int64 {
	return m.m.Amount()
}

// Add returns the sum of two amounts.
func (m *Money) Add(other *Money) (*Money, error) {
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, fmt.Errorf("add money: %w", err)
	}
	return &Money{m: sum}, nil
}

// FormatDotted renders an amount with dotted thousands and no currency
// symbol: 1250000 -> "1.250.000". Negative amounts keep their sign.
func FormatDotted(amount int64) string {
	digits := strconv.FormatInt(amount, 10)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + strings.Join(groups, ".")
}

// ParseDotted reads a dotted-thousands peso amount back into an integer.
// Stray trailing periods (sentence punctuation) are tolerated.
func ParseDotted(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	if cleaned == "" {
		return 0, fmt.Errorf("parse peso amount %q: empty", s)
	}

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse peso amount %q: %w", s, err)
	}
	return amount, nil
}
