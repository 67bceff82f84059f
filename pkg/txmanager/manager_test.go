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
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure",
			err:  &pq.Error{Code: pqSerializationFailure},
			want: true,
		},
		{
			name: "deadlock detected",
			err:  &pq.Error{Code: pqDeadlockDetected},
			want: true,
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

// Ошибка драйвера проходит через несколько слоев оберток (репозиторий,
// usecase, commit в run) и должна оставаться видимой для errors.As
func TestIsRetryable_WrappedDriverError(t *testing.T) {
	pqErr := &pq.Error{Code: pqSerializationFailure}
	errExec := errors.New("storage.booking: failed to execute query")

	repoErr := fmt.Errorf("%w: ListOverlapping - execute query: %w", errExec, pqErr)
	assert.True(t, isRetryable(repoErr))

	usecaseErr := fmt.Errorf("internal error: failed to list overlapping bookings: %w", repoErr)
	assert.True(t, isRetryable(usecaseErr))

	commitErr := fmt.Errorf("%w: commit: %w", ErrTxFailed, pqErr)
	assert.True(t, isRetryable(commitErr))
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m := NewTransactionManager(nil)
	// Вложенный вызов переиспользует транзакцию из контекста, поэтому
	// цикл повторов можно проверить без реального подключения к базе
	ctx := withTx(context.Background(), &sql.Tx{})

	attempts := 0
	err := m.DoSerializable(ctx, func(context.Context) error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("exec: %w", &pq.Error{Code: pqSerializationFailure})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	m := NewTransactionManager(nil)
	ctx := withTx(context.Background(), &sql.Tx{})

	attempts := 0
	err := m.DoSerializable(ctx, func(context.Context) error {
		attempts++
		return fmt.Errorf("exec: %w", &pq.Error{Code: pqDeadlockDetected})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxSerializableRetries, attempts)
}

func TestDoSerializable_NonRetryableNotRetried(t *testing.T) {
	m := NewTransactionManager(nil)
	ctx := withTx(context.Background(), &sql.Tx{})

	wantErr := errors.New("business rule violated")

	attempts := 0
	err := m.DoSerializable(ctx, func(context.Context) error {
		attempts++
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, attempts)
}
