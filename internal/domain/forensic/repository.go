package forensic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository is the persistence collaborator for expense batches. The core
// calls it but does not own transaction retries or connection management.
type Repository interface {
	FindExistingByPeriodTag(ctx context.Context, tag string) (bool, error)
	InsertExpenses(ctx context.Context, expenses []Expense) error
	ListExpenses(ctx context.Context) ([]Expense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, update ExpenseUpdate) error
	ClearAll(ctx context.Context) error
}

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it as well.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores expenses in the gastos table.
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindExistingByPeriodTag reports whether any stored description contains the
// bracketed period tag. A lexical substring check, not a normalized key: a
// description that happens to contain the tag text counts as a hit.
func (r *PostgresRepository) FindExistingByPeriodTag(ctx context.Context, tag string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM gastos WHERE descripcion ILIKE '%' || $1 || '%')`

	var exists bool
	if err := r.db.QueryRow(ctx, query, tag).Scan(&exists); err != nil {
		return false, fmt.Errorf("check period tag %q: %w", tag, err)
	}
	return exists, nil
}

// InsertExpenses persists a batch inside one transaction so a failure never
// leaves a partial batch behind.
func (r *PostgresRepository) InsertExpenses(ctx context.Context, expenses []Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO gastos (descripcion, categoria, monto, es_anomalia, alerta_tipo, ai_comentario, rut_proveedor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, e := range expenses {
		var kind *string
		if e.AnomalyKind != nil {
			k := string(*e.AnomalyKind)
			kind = &k
		}

		_, err := tx.Exec(ctx, query,
			e.Description, string(e.Category), e.Amount,
			e.IsAnomaly, kind, e.AIComment, e.SupplierTaxID,
		)
		if err != nil {
			return fmt.Errorf("insert expense %q: %w", e.Description, err)
		}
	}

	return tx.Commit(ctx)
}

// ListExpenses returns the full stored history, oldest first.
func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]Expense, error) {
	query := `
		SELECT id, descripcion, categoria, monto, es_anomalia, alerta_tipo, ai_comentario, rut_proveedor, created_at
		FROM gastos
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		var kind *string
		err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount,
			&e.IsAnomaly, &kind, &e.AIComment, &e.SupplierTaxID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if kind != nil {
			k := AnomalyKind(*kind)
			e.AnomalyKind = &k
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense applies a reviewer correction. Only description, category and
// amount are writable; the anomaly verdict stays as the engine produced it.
func (r *PostgresRepository) UpdateExpense(ctx context.Context, id uuid.UUID, update ExpenseUpdate) error {
	query := `UPDATE gastos SET descripcion = $1, categoria = $2, monto = $3 WHERE id = $4`

	tag, err := r.db.Exec(ctx, query, update.Description, string(update.Category), update.Amount, id)
	if err != nil {
		return fmt.Errorf("update expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update expense %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// ClearAll wipes the stored history. Exposed for the explicit bulk-clear
// operation only; single expenses are never deleted.
func (r *PostgresRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM gastos`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	return nil
}

// IsNotFound reports whether an error wraps pgx.ErrNoRows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
