package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kitbid/KitBidBackend/src/dao"
	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

func newTestCtx(t *testing.T) *svc.ServerCtx {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one pool connection keeps everything on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Auction{}, &model.Bid{}))

	d := dao.New(context.Background(), db, nil)
	return svc.NewServerCtx(svc.WithDB(db), svc.WithDao(d))
}

func seedAuction(t *testing.T, svcCtx *svc.ServerCtx, mutate func(a *model.Auction)) *model.Auction {
	t.Helper()
	now := time.Now().UTC()
	a := &model.Auction{
		ID:           uuid.NewString(),
		Title:        "signed match shirt",
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
	require.NoError(t, svcCtx.DB.Create(a).Error)
	return a
}
