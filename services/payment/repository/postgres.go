package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment"
)

const uniqueViolation = "23505"

// Schema creates the payments table
const Schema = `
CREATE TABLE IF NOT EXISTS payments (
	id           TEXT PRIMARY KEY,
	status       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	finalized_at TIMESTAMPTZ,
	upstream     JSONB
)`

// paymentRow is the payments table row
type paymentRow struct {
	ID          string         `db:"id"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	FinalizedAt *time.Time     `db:"finalized_at"`
	Upstream    sql.NullString `db:"upstream"`
}

func toRow(p *models.Payment) paymentRow {
	row := paymentRow{
		ID:          p.ID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		FinalizedAt: p.FinalizedAt,
	}
	if len(p.Upstream) > 0 {
		row.Upstream = sql.NullString{String: string(p.Upstream), Valid: true}
	}
	return row
}

func (row paymentRow) toModel() *models.Payment {
	p := &models.Payment{
		ID:          row.ID,
		Status:      models.PaymentStatus(row.Status),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		FinalizedAt: row.FinalizedAt,
	}
	if p.FinalizedAt != nil {
		t := p.FinalizedAt.UTC()
		p.FinalizedAt = &t
	}
	if row.Upstream.Valid && row.Upstream.String != "" {
		p.Upstream = json.RawMessage(row.Upstream.String)
	}
	return p
}

const selectColumns = `SELECT id, status, created_at, updated_at, finalized_at, upstream FROM payments`

// PostgresRepo stores payments in the payments table
type PostgresRepo struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL-backed ledger
func NewPostgresRepository(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// EnsureSchema creates the payments table when missing
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create payments table: %w", err)
	}
	return nil
}

// Insert adds a new record
func (r *PostgresRepo) Insert(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (id, status, created_at, updated_at, finalized_at, upstream)
		VALUES (:id, :status, :created_at, :updated_at, :finalized_at, :upstream)
	`

	_, err := r.db.NamedExecContext(ctx, query, toRow(p))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return payment.ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// Get loads a record
func (r *PostgresRepo) Get(ctx context.Context, id string) (*models.Payment, error) {
	var row paymentRow
	err := r.db.GetContext(ctx, &row, selectColumns+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return row.toModel(), nil
}

// Update locks the row with SELECT ... FOR UPDATE and applies mutate inside the transaction
func (r *PostgresRepo) Update(ctx context.Context, id string, mutate payment.MutationFunc) (*models.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row paymentRow
	err = tx.GetContext(ctx, &row, selectColumns+` WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock payment: %w", err)
	}

	p := row.toModel()
	if err := mutate(p); err != nil {
		return nil, err
	}
	p.ID = id

	query := `
		UPDATE payments
		SET status = :status, updated_at = :updated_at, finalized_at = :finalized_at, upstream = :upstream
		WHERE id = :id
	`
	if _, err := tx.NamedExecContext(ctx, query, toRow(p)); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment update: %w", err)
	}
	return p, nil
}
