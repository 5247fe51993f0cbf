package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment"
	"github.com/piresc/payrelay/services/payment/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentColumns = []string{"id", "status", "created_at", "updated_at", "finalized_at", "upstream"}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestPostgresRepo_EnsureSchema(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS payments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)
	p := newPayment("P1")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs("P1", "PENDING", p.CreatedAt, p.UpdatedAt, nil, `{"id":"P1"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Insert(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_InsertDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Insert(context.Background(), newPayment("P1"))
	assert.ErrorIs(t, err, payment.ErrDuplicateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, created_at, updated_at, finalized_at, upstream FROM payments WHERE id = $1")).
		WithArgs("P1").
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow("P1", "CONFIRMED", now, now, nil, []byte(`{"id":"P1"}`)))

	got, err := repo.Get(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusConfirmed, got.Status)
	assert.Nil(t, got.FinalizedAt)
	assert.JSONEq(t, `{"id":"P1"}`, string(got.Upstream))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(paymentColumns))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, payment.ErrNotFound)
}

func TestPostgresRepo_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 FOR UPDATE")).
		WithArgs("P1").
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow("P1", "CONFIRMED", now, now, nil, nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
		WithArgs("FINALIZED", later, later, nil, "P1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), "P1", func(p *models.Payment) error {
		p.Status = models.PaymentStatusFinalized
		p.UpdatedAt = later
		p.FinalizedAt = &later
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFinalized, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_UpdateMutationErrorRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("P1").
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow("P1", "FINALIZED", now, now, now, nil))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), "P1", func(p *models.Payment) error {
		return errRejected
	})

	assert.ErrorIs(t, err, errRejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_UpdateNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(paymentColumns))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), "missing", func(p *models.Payment) error { return nil })
	assert.ErrorIs(t, err, payment.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_BeginError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgresRepository(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := repo.Update(context.Background(), "P1", func(p *models.Payment) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}
