package dao

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a fresh pool connection would get its own private in-memory database;
	// one connection keeps every goroutine on the same one and serializes
	// writers the way the mysql row lock does
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Auction{}, &model.Bid{}))
	return New(context.Background(), db, nil)
}

func seedAuction(t *testing.T, d *Dao, mutate func(a *model.Auction)) *model.Auction {
	t.Helper()
	now := time.Now().UTC()
	a := &model.Auction{
		ID:           uuid.NewString(),
		Title:        "signed match shirt",
		Category:     "shirts",
		Team:         "home",
		ListingType:  model.ListingTypeAuction,
		StartingBid:  decimal.RequireFromString("100.00"),
		CurrentBid:   decimal.RequireFromString("100.00"),
		BidIncrement: decimal.RequireFromString("5.00"),
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
		Status:       model.AuctionStatusActive,
		SellerID:     "seller-1",
	}
	if mutate != nil {
		mutate(a)
	}
	require.NoError(t, d.DB.Create(a).Error)
	return a
}

func TestTranslateTxError(t *testing.T) {
	assert.Nil(t, translateTxError(nil, "ignored"))

	// coded business errors pass through untouched
	assert.Equal(t, errcode.ErrBidTooLow, translateTxError(errcode.ErrBidTooLow, "ignored"))
	wrapped := translateTxError(errors.Wrap(errcode.ErrAlreadyResolved, "failed on settle"), "ignored")
	assert.Equal(t, errcode.ErrAlreadyResolved, errcode.ParseErr(wrapped))

	// serialization failures become the retryable conflict
	assert.Equal(t, errcode.ErrConflict,
		translateTxError(errors.New("Error 1213: Deadlock found when trying to get lock"), "ignored"))
	assert.Equal(t, errcode.ErrConflict,
		translateTxError(errors.New("Error 1205: Lock wait timeout exceeded"), "ignored"))
	assert.Equal(t, errcode.ErrConflict,
		translateTxError(errors.New("database is locked"), "ignored"))

	// connection-level failures become the persistence error (503)
	assert.Equal(t, errcode.ErrPersistence, translateTxError(driver.ErrBadConn, "ignored"))
	assert.Equal(t, errcode.ErrPersistence,
		translateTxError(errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"), "ignored"))
	assert.Equal(t, errcode.ErrPersistence,
		translateTxError(errors.New("invalid connection"), "ignored"))

	// anything else is wrapped with context and collapses to unexpected
	err := translateTxError(errors.New("boom"), "failed on place bid tx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed on place bid tx")
	assert.Equal(t, errcode.CodeUnexpected, errcode.ParseErr(err).Code())
}
