package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

// ValidateBid is a pure function of (auction snapshot, amount, bidder, now).
// It never mutates state; the dao re-runs it inside the same transaction that
// holds the row lock, so the snapshot can never be stale. Checks run in a
// fixed order and each failure maps to a distinct error.
func ValidateBid(a *Auction, amount decimal.Decimal, bidderID string, now time.Time) error {
	if a.Status != AuctionStatusActive {
		return errcode.ErrAuctionNotActive
	}
	if now.Before(a.StartTime) {
		return errcode.ErrAuctionNotStarted
	}
	if !now.Before(a.EndTime) {
		return errcode.ErrAuctionEnded
	}
	if bidderID == a.SellerID {
		return errcode.ErrSelfTrade
	}
	if !a.Capabilities().CanBid {
		return errcode.ErrBidNotAllowed
	}
	if amount.LessThan(a.MinNextBid()) {
		return errcode.ErrBidTooLow
	}
	return nil
}

// ValidateBuyNow gates the instant-purchase path against the same snapshot
// semantics as ValidateBid.
func ValidateBuyNow(a *Auction, buyerID string, now time.Time) error {
	if !a.Capabilities().CanBuyNow {
		return errcode.ErrBuyNowNotAvailable
	}
	if a.Status != AuctionStatusActive {
		return errcode.ErrAuctionNotActive
	}
	if now.Before(a.StartTime) {
		return errcode.ErrAuctionNotStarted
	}
	if !now.Before(a.EndTime) {
		return errcode.ErrAuctionEnded
	}
	if buyerID == a.SellerID {
		return errcode.ErrSelfTrade
	}
	return nil
}

// ValidateNewAuction rejects malformed listings before anything is persisted.
func ValidateNewAuction(startingBid, bidIncrement decimal.Decimal, buyNowPrice decimal.NullDecimal, startTime, endTime time.Time) error {
	if !startingBid.IsPositive() {
		return errcode.NewCustomErr("starting bid must be greater than 0")
	}
	if !bidIncrement.IsPositive() {
		return errcode.NewCustomErr("bid increment must be greater than 0")
	}
	if !endTime.After(startTime) {
		return errcode.NewCustomErr("end time must be after start time")
	}
	if buyNowPrice.Valid && !buyNowPrice.Decimal.GreaterThan(startingBid) {
		return errcode.NewCustomErr("buy now price must be greater than starting bid")
	}
	return nil
}
