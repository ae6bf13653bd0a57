package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner starts transactions. *pgxpool.Pool and pgx.Tx both satisfy it;
// on a pgx.Tx, Begin opens a savepoint.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager runs service code inside a transaction carried by the context,
// so repositories pick it up through QuerierFromCtx without new parameters.
type TxManager struct {
	db Beginner
}

// NewTxManager creates a TxManager on db.
func NewTxManager(db Beginner) *TxManager {
	return &TxManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise, including
// on panic. A call made inside another RunInTx becomes a savepoint of the
// outer transaction: its failure undoes only its own writes, and nothing
// is durable until the outermost call commits.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	var parent Beginner = m.db
	if outer, ok := txFromCtx(ctx); ok {
		parent = outer
	}

	tx, err := parent.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
