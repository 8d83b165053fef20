package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresCache creates a PostgresCache backed by pgxmock for unit testing.
func newMockPostgresCache(t *testing.T) (*PostgresCache, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresCache{pool: mock}, mock
}

func TestPostgresCache_Migrate(t *testing.T) {
	s, mock := newMockPostgresCache(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS report_cache`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Get_Hit(t *testing.T) {
	s, mock := newMockPostgresCache(t)
	data, err := json.Marshal(testReport("rep-1"))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT report FROM report_cache WHERE cache_key = \$1`).
		WithArgs("k").
		WillReturnRows(pgxmock.NewRows([]string{"report"}).AddRow(data))

	got, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testReport("rep-1"), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Get_Miss(t *testing.T) {
	s, mock := newMockPostgresCache(t)

	mock.ExpectQuery(`SELECT report FROM report_cache`).
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Get_Error(t *testing.T) {
	s, mock := newMockPostgresCache(t)

	mock.ExpectQuery(`SELECT report FROM report_cache`).
		WithArgs("k").
		WillReturnError(errors.New("connection lost"))

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: get report k")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Set_Upsert(t *testing.T) {
	s, mock := newMockPostgresCache(t)

	mock.ExpectExec(`ON CONFLICT \(cache_key\) DO UPDATE`).
		WithArgs("k", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Set(context.Background(), "k", testReport("rep-1"), time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Invalidate(t *testing.T) {
	s, mock := newMockPostgresCache(t)

	mock.ExpectExec(`DELETE FROM report_cache WHERE cache_key = \$1`).
		WithArgs("k").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, s.Invalidate(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_DeleteExpired(t *testing.T) {
	s, mock := newMockPostgresCache(t)

	mock.ExpectExec(`DELETE FROM report_cache WHERE expires_at IS NOT NULL`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := s.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
