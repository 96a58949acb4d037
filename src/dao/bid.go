package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitbid/KitBidBackend/src/model"
)

// ListBidsByAuction returns bid history, newest first.
func (d *Dao) ListBidsByAuction(ctx context.Context, auctionID string, limit int) ([]model.Bid, error) {
	db := d.DB.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var bids []model.Bid
	if err := db.Find(&bids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query auction bids")
	}
	return bids, nil
}

// LeadingBid returns the current winning bid: highest amount, earliest
// created_at on ties. nil when the auction has no bids.
func (d *Dao) LeadingBid(ctx context.Context, auctionID string) (*model.Bid, error) {
	var bid model.Bid
	if err := d.DB.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("amount desc").
		Order("created_at asc").
		Take(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed on query leading bid")
	}
	return &bid, nil
}

// ListBidsByBidder backs the caller's portfolio page, newest first.
func (d *Dao) ListBidsByBidder(ctx context.Context, bidderID string) ([]model.Bid, error) {
	var bids []model.Bid
	if err := d.DB.WithContext(ctx).
		Where("bidder_id = ?", bidderID).
		Order("created_at desc").
		Find(&bids).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query bidder bids")
	}
	return bids, nil
}
