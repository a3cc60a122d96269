//go:build integration

package pgsql

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/transaction_records_app/internal/apperrors"
	"github.com/SscSPs/transaction_records_app/internal/core/domain"
	"github.com/SscSPs/transaction_records_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: PGSQL_TEST_URL=postgres://... go test -tags integration ./internal/repositories/database/pgsql/
func newIntegrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}

	require.NoError(t, database.RunMigrations(url, "../../../../migrations", slog.Default()))

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, url, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE transactions")
	require.NoError(t, err)
	return pool
}

func TestIntegration_CreateAndList(t *testing.T) {
	repo := NewPgxTransactionRepository(newIntegrationPool(t))
	ctx := context.Background()

	in := sampleNewTransaction()
	created, err := repo.CreateTransaction(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.TransactionID)
	assert.Equal(t, "100.50", created.Amount.StringFixed(2))
	assert.WithinDuration(t, time.Now(), created.CreationDate, time.Minute)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	result, err := repo.ListTransactions(ctx, domain.ListFilter{StartDate: &today, EndDate: &today}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, created.TraceNumber, result.Items[0].TraceNumber)
}

func TestIntegration_CheckConstraint(t *testing.T) {
	repo := NewPgxTransactionRepository(newIntegrationPool(t))

	in := sampleNewTransaction()
	in.Amount = decimal.NewFromInt(-1)
	_, err := repo.CreateTransaction(context.Background(), in)

	assert.ErrorIs(t, err, apperrors.ErrConstraintViolation)
}

func TestIntegration_ConcurrentDuplicateTrace(t *testing.T) {
	repo := NewPgxTransactionRepository(newIntegrationPool(t))
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.CreateTransaction(context.Background(), sampleNewTransaction())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateTraceNumber)
	}
	assert.Equal(t, 1, succeeded)
}
