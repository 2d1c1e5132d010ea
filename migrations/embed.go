// Package migrations содержит SQL миграции схемы и применяет их по порядку.
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

//go:embed *.sql
var files embed.FS

var (
	// ErrReadMigration возвращается, когда файл миграции не удалось прочитать
	ErrReadMigration = errors.New("migrations: failed to read migration")

	// ErrApplyMigration возвращается, когда миграция завершилась ошибкой
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// TransactionManager выполняет каждую миграцию в отдельной транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Names возвращает имена миграций в порядке применения
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigration, err)
	}
	sort.Strings(names)
	return names, nil
}

// Apply применяет еще не примененные миграции. Возвращает число примененных.
func Apply(ctx context.Context, db dbmetrics.DBExecutor, txManager TransactionManager, logger Logger) (int, error) {
	if _, err := db.ExecContext(ctx, createVersionsTable); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	names, err := Names()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")

		body, err := files.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrReadMigration, name, err)
		}

		var done bool
		err = txManager.Do(ctx, func(txCtx context.Context) error {
			executor := dbmetrics.GetExecutor(txCtx, db)

			var exists bool
			if err := executor.QueryRowContext(txCtx,
				"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version,
			).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return nil
			}

			if _, err := executor.ExecContext(txCtx, string(body)); err != nil {
				return err
			}

			query, args, err := psqlbuilder.Insert("schema_migrations").
				Columns("version", "applied_at").
				Values(version, squirrel.Expr("NOW()")).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
				return err
			}

			done = true
			return nil
		})
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}

		if done {
			applied++
			logger.Info("Migration applied: %s", version)
		}
	}

	return applied, nil
}
