package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitbid/KitBidBackend/src/common/utils"
	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
	"github.com/kitbid/KitBidBackend/src/service/svc"
	"github.com/kitbid/KitBidBackend/src/types/v1"
)

const (
	txRetryAttempts = 3
	txRetrySleep    = 50 * time.Millisecond
)

// retryableConflict limits automatic retries to serialization failures; a
// business rejection is final.
func retryableConflict(err error) bool {
	return err == errcode.ErrConflict
}

// PlaceBid parses the amount and hands the bid to the transactional core in
// the dao. Serialization conflicts are retried a bounded number of times.
func PlaceBid(ctx context.Context, svcCtx *svc.ServerCtx, auctionID, bidderID string, rawAmount string) (*types.PlaceBidResp, error) {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, errcode.ErrInvalidParams
	}

	var (
		bid     *model.Bid
		auction *model.Auction
	)
	err = utils.Retry("place bid", txRetryAttempts, txRetrySleep, retryableConflict, func() error {
		now := time.Now().UTC()
		bid, auction, err = svcCtx.Dao.PlaceBid(ctx, auctionID, bidderID, amount, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.PlaceBidResp{Bid: bid, Auction: auction}, nil
}

// BuyNow settles the auction instantly for the caller.
func BuyNow(ctx context.Context, svcCtx *svc.ServerCtx, auctionID, buyerID string) (*model.Auction, error) {
	var auction *model.Auction
	err := utils.Retry("buy now", txRetryAttempts, txRetrySleep, retryableConflict, func() error {
		now := time.Now().UTC()
		var err error
		auction, err = svcCtx.Dao.BuyNow(ctx, auctionID, buyerID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return auction, nil
}
