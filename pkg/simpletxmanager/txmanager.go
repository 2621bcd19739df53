package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/PlayCourt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayCourt-BookingService/pkg/txmanager"
)

const (
	maxSerializableRetries = 3
	baseRetryDelay         = 50 * time.Millisecond
)

// TransactionManager менеджер транзакций поверх *sql.DB без сбора метрик.
// Используется, когда метрики выключены в конфигурации.
// Таксономия ошибок общая с pkg/txmanager, чтобы вызывающий код
// не зависел от выбранной реализации.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с повторами
// конфликтов сериализации (40001), deadlock'ов (40P01) и потерь соединения
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}

		if !txmanager.IsSerializationError(lastErr) && !txmanager.IsConnectivityError(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrTxBegin, err)
	}

	// *sql.Tx реализует dbmetrics.DBExecutor, репозитории подхватят его из контекста
	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %v", txmanager.ErrTxCommit, err)
	}

	return nil
}
