package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

// PlaceBid runs the whole bid-acceptance protocol in one transaction: lock
// the auction row, re-validate against the fresh snapshot, insert the bid,
// advance current_bid/bid_count, and extend end_time when the bid lands
// inside the soft-close window. Two concurrent bidders on the same auction
// serialize on the row lock, so both can never read the same current_bid.
func (d *Dao) PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal, now time.Time) (*model.Bid, *model.Auction, error) {
	var (
		bid     model.Bid
		auction model.Auction
	)
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("id = ?", auctionID).
			Take(&auction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrAuctionNotFound
			}
			return errors.Wrap(err, "failed on read auction for update")
		}

		if err := model.ValidateBid(&auction, amount, bidderID, now); err != nil {
			return err
		}

		bid = model.Bid{
			ID:        uuid.NewString(),
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
		}
		if err := tx.Create(&bid).Error; err != nil {
			return errors.Wrap(err, "failed on insert bid")
		}

		updates := map[string]interface{}{
			"current_bid": amount,
			"bid_count":   gorm.Expr("bid_count + 1"),
		}
		if auction.InSoftClose(now) {
			auction.EndTime = auction.EndTime.Add(model.SoftCloseExtension)
			updates["end_time"] = auction.EndTime
		}
		if err := tx.Model(&model.Auction{}).
			Where("id = ?", auctionID).
			Updates(updates).Error; err != nil {
			return errors.Wrap(err, "failed on update auction after bid")
		}

		auction.CurrentBid = amount
		auction.BidCount++
		return nil
	})
	if err != nil {
		return nil, nil, translateTxError(err, "failed on place bid tx")
	}
	return &bid, &auction, nil
}

// BuyNow settles the auction instantly: the first buyer to take the row lock
// wins, flips status to sold and closes the window so no later bid or
// buy-now can land.
func (d *Dao) BuyNow(ctx context.Context, auctionID, buyerID string, now time.Time) (*model.Auction, error) {
	var auction model.Auction
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("id = ?", auctionID).
			Take(&auction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrAuctionNotFound
			}
			return errors.Wrap(err, "failed on read auction for update")
		}

		if err := model.ValidateBuyNow(&auction, buyerID, now); err != nil {
			return err
		}

		if err := tx.Model(&model.Auction{}).
			Where("id = ?", auctionID).
			Updates(map[string]interface{}{
				"status":    model.AuctionStatusSold,
				"winner_id": buyerID,
				"end_time":  now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on settle buy now")
		}

		auction.Status = model.AuctionStatusSold
		auction.WinnerID = buyerID
		auction.EndTime = now
		return nil
	})
	if err != nil {
		return nil, translateTxError(err, "failed on buy now tx")
	}
	return &auction, nil
}
