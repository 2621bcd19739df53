package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/PlayCourt-BookingService/pkg/dbmetrics"
)

const (
	// Максимальное число повторов сериализуемой транзакции
	maxSerializableRetries = 3
	// Базовая задержка перед повтором (удваивается на каждой попытке)
	baseRetryDelay = 50 * time.Millisecond
)

var (
	// ErrTxBegin возвращается при ошибке начала транзакции
	ErrTxBegin = errors.New("txmanager: failed to begin transaction")

	// ErrTxCommit возвращается при ошибке фиксации транзакции
	ErrTxCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted возвращается, когда сериализуемая транзакция
	// не смогла завершиться за отведенное число попыток
	ErrRetriesExhausted = errors.New("txmanager: serializable retries exhausted")
)

// TxBeginner интерфейс источника транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями через dbmetrics обёртку
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
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

// DoSerializable выполняет fn в сериализуемой транзакции.
// Ошибки сериализации (40001), deadlock (40P01) и потери соединения
// (класс 08, driver.ErrBadConn) повторяются с экспоненциальной
// задержкой до maxSerializableRetries раз.
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

		// Повторяем только конфликты сериализации и потери соединения,
		// бизнес-ошибки отдаем сразу
		if !IsSerializationError(lastErr) && !IsConnectivityError(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTxBegin, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %v", ErrTxCommit, err)
	}

	return nil
}

// IsSerializationError определяет, является ли ошибка конфликтом сериализации
// или deadlock'ом PostgreSQL, после которых транзакцию можно безопасно повторить
func IsSerializationError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// IsConnectivityError определяет, является ли ошибка потерей соединения
// с PostgreSQL (класс 08 Connection Exception) или отбраковкой соединения
// драйвером. Такую транзакцию можно повторить на новом соединении, а для
// вызывающего кода это временная недоступность хранилища.
func IsConnectivityError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	return false
}
