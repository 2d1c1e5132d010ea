package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrAcquireLock возвращается, когда не удалось взять advisory lock
	ErrAcquireLock = errors.New("txmanager: failed to acquire advisory lock")
)

// advisoryLockQuery блокировка на время транзакции. Ключ - хеш строки, поэтому
// разные ключи почти никогда не делят блокировку и не мешают друг другу.
const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции PostgreSQL.
// Транзакция передается репозиториям через контекст (dbmetrics.GetExecutor).
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, nil, fn)
}

// DoLocked выполняет fn в транзакции, предварительно взяв транзакционный
// advisory lock по lockKey. Все вызовы с одинаковым ключом выполняются строго
// по очереди, а каждое чтение внутри fn видит изменения предыдущего владельца.
func (m *TransactionManager) DoLocked(ctx context.Context, lockKey string, fn func(ctx context.Context) error) error {
	lock := func(txCtx context.Context, tx dbmetrics.TxExecutor) error {
		if _, err := tx.ExecContext(txCtx, advisoryLockQuery, lockKey); err != nil {
			return fmt.Errorf("%w: key=%s: %v", ErrAcquireLock, lockKey, err)
		}
		return nil
	}
	return m.run(ctx, &sql.TxOptions{}, lock, fn)
}

func (m *TransactionManager) run(
	ctx context.Context,
	opts *sql.TxOptions,
	prelude func(ctx context.Context, tx dbmetrics.TxExecutor) error,
	fn func(ctx context.Context) error,
) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		if prelude != nil {
			tx := dbmetrics.GetExecutor(ctx, nil).(dbmetrics.TxExecutor)
			if err := prelude(ctx, tx); err != nil {
				return err
			}
		}
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txCtx := dbmetrics.WithTx(ctx, tx)

	if prelude != nil {
		if err = prelude(txCtx, tx); err != nil {
			return err
		}
	}

	if err = fn(txCtx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}
