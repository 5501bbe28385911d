package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamroom/booking-service/pkg/dbmetrics"
)

type txStub struct {
	commitErr error
}

func (t *txStub) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (t *txStub) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *txStub) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errors.New("not supported")
}

func (t *txStub) Commit() error   { return t.commitErr }
func (t *txStub) Rollback() error { return nil }

type beginnerStub struct {
	commitFailures int
	begins         int
}

func (b *beginnerStub) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	if b.commitFailures > 0 {
		b.commitFailures--
		return &txStub{commitErr: &pq.Error{Code: "40001"}}, nil
	}
	return &txStub{}, nil
}

func TestDoSerializable_RetriesOnSerializationConflict(t *testing.T) {
	beginner := &beginnerStub{commitFailures: 2}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, beginner.begins)
}

func TestDoSerializable_GivesUpAfterRetries(t *testing.T) {
	beginner := &beginnerStub{commitFailures: 10}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, 3, beginner.begins)
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"other pq code", &pq.Error{Code: "23505"}, false},
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"wrapped serialization failure", fmt.Errorf("commit: %w", &pq.Error{Code: "40001"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}
