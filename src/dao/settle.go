package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

// Resolution records what the sweep decided for one auction.
type Resolution struct {
	AuctionID string `json:"auction_id"`
	Status    string `json:"status"`
	WinnerID  string `json:"winner_id,omitempty"`
}

// ExpiredActiveAuctionIDs lists auctions whose end time has elapsed while
// still marked active. Each is settled in its own transaction afterwards.
func (d *Dao) ExpiredActiveAuctionIDs(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	if err := d.DB.WithContext(ctx).Model(&model.Auction{}).
		Where("status = ? and end_time <= ?", model.AuctionStatusActive, now).
		Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query expired auctions")
	}
	return ids, nil
}

// SettleExpiredAuction resolves a single expired auction: sold to the leading
// bidder when bids exist, ended otherwise. Idempotent: a row that no longer
// matches status=active with an elapsed end time returns ErrAlreadyResolved
// and nothing changes, so re-running a sweep is a no-op and a last-second bid
// or buy-now that won the row lock first simply makes this settle attempt
// back off.
func (d *Dao) SettleExpiredAuction(ctx context.Context, auctionID string, now time.Time) (*Resolution, error) {
	var resolution Resolution
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var auction model.Auction
		if err := forUpdate(tx).
			Where("id = ?", auctionID).
			Take(&auction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrAuctionNotFound
			}
			return errors.Wrap(err, "failed on read auction for update")
		}

		if auction.Status != model.AuctionStatusActive || now.Before(auction.EndTime) {
			return errcode.ErrAlreadyResolved
		}

		var leading model.Bid
		hasBid := true
		if err := tx.Where("auction_id = ?", auctionID).
			Order("amount desc").
			Order("created_at asc").
			Take(&leading).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "failed on query leading bid")
			}
			hasBid = false
		}

		updates := map[string]interface{}{}
		if hasBid {
			updates["status"] = model.AuctionStatusSold
			updates["winner_id"] = leading.BidderID
			resolution = Resolution{AuctionID: auctionID, Status: model.AuctionStatusSold, WinnerID: leading.BidderID}
		} else {
			updates["status"] = model.AuctionStatusEnded
			resolution = Resolution{AuctionID: auctionID, Status: model.AuctionStatusEnded}
		}
		if err := tx.Model(&model.Auction{}).
			Where("id = ?", auctionID).
			Updates(updates).Error; err != nil {
			return errors.Wrap(err, "failed on settle expired auction")
		}
		return nil
	})
	if err != nil {
		return nil, translateTxError(err, "failed on settle expired auction tx")
	}
	return &resolution, nil
}
