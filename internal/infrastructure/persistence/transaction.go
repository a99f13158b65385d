package persistence

import (
	"context"

	"github.com/despachante/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// txKey is the context key carrying an open transaction
type txKey struct{}

// withTx returns a context carrying the given transaction handle
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext returns the transaction from the context if one is open,
// otherwise the fallback connection. All repositories route their queries
// through this so that use-case transactions span every repository call
// made inside them.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// GormTransactionManager implements shared.TransactionManager on top of
// GORM transactions. The open transaction travels in the context, so the
// function can call any repository and have it join the transaction.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new transaction manager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do runs fn inside a transaction. A returned error rolls everything back.
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the ongoing transaction instead of opening a new one.
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)
