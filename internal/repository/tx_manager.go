package repository

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionManager runs a unit of work in one database transaction.
// Repositories called with the txCtx join it through GetDB.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &gormTxManager{db: db}
}

func (t *gormTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, nested := ctx.Value(txContextKey{}).(*gorm.DB); nested {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// GetDB returns the transaction bound to ctx, or rootDB when there is none.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
