package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conflictState общее состояние фейкового драйвера: сколько коммитов
// должно завершиться конфликтом сериализации и сколько транзакций начато
type conflictState struct {
	commitFailures int
	begins         int
}

type conflictConnector struct {
	state *conflictState
}

func (c *conflictConnector) Connect(context.Context) (driver.Conn, error) {
	return &conflictConn{state: c.state}, nil
}

func (c *conflictConnector) Driver() driver.Driver { return nil }

type conflictConn struct {
	state *conflictState
}

func (c *conflictConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *conflictConn) Close() error { return nil }

func (c *conflictConn) Begin() (driver.Tx, error) {
	c.state.begins++
	return &conflictTx{state: c.state}, nil
}

func (c *conflictConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return c.Begin()
}

type conflictTx struct {
	state *conflictState
}

func (t *conflictTx) Commit() error {
	if t.state.commitFailures > 0 {
		t.state.commitFailures--
		return &pq.Error{Code: "40001"}
	}
	return nil
}

func (t *conflictTx) Rollback() error { return nil }

func newConflictDB(commitFailures int) (*sql.DB, *conflictState) {
	state := &conflictState{commitFailures: commitFailures}
	db := sql.OpenDB(&conflictConnector{state: state})
	db.SetMaxOpenConns(1)
	return db, state
}

func TestDoSerializable_RetriesOnSerializationConflict(t *testing.T) {
	db, state := newConflictDB(2)
	defer db.Close()

	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, state.begins)
}

func TestDoSerializable_GivesUpAfterRetries(t *testing.T) {
	db, state := newConflictDB(10)
	defer db.Close()

	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.Equal(t, 3, state.begins)
}

func TestDoSerializable_DoesNotRetryBusinessErrors(t *testing.T) {
	db, state := newConflictDB(0)
	defer db.Close()

	m := NewTransactionManager(db)

	errBusiness := errors.New("business rule violated")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	require.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, state.begins)
}
