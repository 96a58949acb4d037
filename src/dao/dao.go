package dao

import (
	"context"
	"database/sql/driver"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
	"github.com/kitbid/KitBidBackend/src/pkg/stores/xkv"
)

// Dao owns all database and redis access. Service code never touches gorm
// directly; every transactional core (bid acceptance, buy-now, settlement)
// lives here.
type Dao struct {
	ctx context.Context

	DB      *gorm.DB
	KvStore *xkv.Store
}

func New(ctx context.Context, db *gorm.DB, kvStore *xkv.Store) *Dao {
	return &Dao{
		ctx:     ctx,
		DB:      db,
		KvStore: kvStore,
	}
}

// forUpdate appends a row lock on dialects that support it. The sqlite
// backend used in tests has no row locks; its single writer serializes
// conflicting transactions instead.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// translateTxError keeps coded business errors intact, maps storage-level
// serialization failures (deadlock, lock wait timeout) onto the retryable
// conflict error, and connection-level failures onto the persistence error.
func translateTxError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errcode.IsErr(err) {
		return err
	}
	s := err.Error()
	if strings.Contains(s, "Error 1213") || strings.Contains(s, "Error 1205") || strings.Contains(s, "database is locked") {
		return errcode.ErrConflict
	}
	if errors.Is(err, driver.ErrBadConn) ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "invalid connection") ||
		strings.Contains(s, "broken pipe") {
		return errcode.ErrPersistence
	}
	return errors.Wrap(err, msg)
}
