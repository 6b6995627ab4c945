package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kculture-backend/internal/shared/query"
)

// captureQuerier records the generated SQL without touching a database.
type captureQuerier struct {
	lastSQL string
}

func (q *captureQuerier) Query(_ context.Context, sql string, _ ...interface{}) (pgx.Rows, error) {
	q.lastSQL = sql
	return nil, errors.New("capture only")
}

func (q *captureQuerier) QueryRow(_ context.Context, _ string, _ ...interface{}) pgx.Row {
	return zeroCountRow{}
}

func (q *captureQuerier) Exec(_ context.Context, _ string, _ ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

type zeroCountRow struct{}

func (zeroCountRow) Scan(dest ...interface{}) error {
	if n, ok := dest[0].(*int); ok {
		*n = 0
	}
	return nil
}

func TestDescriptorListingOrder(t *testing.T) {
	cq := &captureQuerier{}
	svc, err := query.NewService(cq, Descriptor())
	require.NoError(t, err, "descriptor must validate at startup")

	_, _, _ = svc.List(context.Background(), query.ListParams{})

	// popularity first, newer productions break ties, id keeps pages stable
	assert.Contains(t, cq.lastSQL, "ORDER BY view_count DESC, year DESC, id ASC")
}
