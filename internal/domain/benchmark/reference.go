// Package benchmark cross-checks extracted expenses against a market
// reference-price catalog and classifies overprice severity.
package benchmark

import (
	"context"

	"github.com/google/uuid"
)

// PriceReference is one read-only catalog entry: the expected market price
// for an item or service in a locality.
type PriceReference struct {
	ID           uuid.UUID `csv:"-"`
	ItemName     string    `csv:"item_nombre"`
	AveragePrice int64     `csv:"precio_promedio_mercado"`
	Locality     string    `csv:"comuna"`
	Unit         string    `csv:"unidad_medida"`
}

// Catalog resolves reference candidates for an item token. The lookup is a
// case-insensitive substring match on item names.
type Catalog interface {
	FindByItemToken(ctx context.Context, token string) ([]PriceReference, error)
}
