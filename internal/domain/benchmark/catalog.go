package benchmark

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalog reads reference prices from the precios_referencia table.
type PostgresCatalog struct {
	db *pgxpool.Pool
}

func NewPostgresCatalog(db *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// FindByItemToken matches item names by case-insensitive substring.
func (c *PostgresCatalog) FindByItemToken(ctx context.Context, token string) ([]PriceReference, error) {
	query := `
		SELECT id, item_nombre, precio_promedio_mercado, comuna, unidad_medida
		FROM precios_referencia
		WHERE item_nombre ILIKE '%' || $1 || '%'
		ORDER BY item_nombre
	`

	rows, err := c.db.Query(ctx, query, token)
	if err != nil {
		return nil, fmt.Errorf("query price references: %w", err)
	}
	defer rows.Close()

	var refs []PriceReference
	for rows.Next() {
		var ref PriceReference
		if err := rows.Scan(&ref.ID, &ref.ItemName, &ref.AveragePrice, &ref.Locality, &ref.Unit); err != nil {
			return nil, fmt.Errorf("scan price reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// MemoryCatalog serves references from memory. It backs tests and the CSV
// seed path when no database is configured.
type MemoryCatalog struct {
	mu   sync.RWMutex
	refs []PriceReference
}

func NewMemoryCatalog(refs []PriceReference) *MemoryCatalog {
	return &MemoryCatalog{refs: refs}
}

// LoadCatalogCSV reads a reference catalog from CSV. Headers follow the
// dataset column names (item_nombre, precio_promedio_mercado, comuna,
// unidad_medida).
func LoadCatalogCSV(r io.Reader) (*MemoryCatalog, error) {
	var refs []PriceReference
	if err := gocsv.Unmarshal(r, &refs); err != nil {
		return nil, fmt.Errorf("unmarshal catalog csv: %w", err)
	}

	for i := range refs {
		refs[i].ID = uuid.New()
	}
	return NewMemoryCatalog(refs), nil
}

// FindByItemToken matches item names by case-insensitive substring, like the
// ILIKE lookup in the postgres catalog.
func (c *MemoryCatalog) FindByItemToken(_ context.Context, token string) ([]PriceReference, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	needle := strings.ToLower(token)
	var out []PriceReference
	for _, ref := range c.refs {
		if strings.Contains(strings.ToLower(ref.ItemName), needle) {
			out = append(out, ref)
		}
	}
	return out, nil
}

// References returns a copy of the loaded catalog.
func (c *MemoryCatalog) References() []PriceReference {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]PriceReference, len(c.refs))
	copy(out, c.refs)
	return out
}
