package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// WithTransaction handles a database transaction and executes the given operation
func WithTransaction(db *sql.DB, ctx context.Context, log *zap.Logger, operation func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to start transaction: %v", ErrPersistenceFailed, err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction", zap.Error(rbErr))
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction", zap.Error(rbErr))
			}
		} else {
			err = tx.Commit()
			if err != nil {
				err = fmt.Errorf("%w: failed to commit transaction: %v", ErrPersistenceFailed, err)
			}
		}
	}()

	err = operation(tx)
	return err
}
