package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

func activeAuction(now time.Time) *Auction {
	return &Auction{
		ID:           "a-1",
		ListingType:  ListingTypeAuction,
		StartingBid:  decimal.RequireFromString("100.00"),
		CurrentBid:   decimal.RequireFromString("100.00"),
		BidIncrement: decimal.RequireFromString("5.00"),
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
		Status:       AuctionStatusActive,
		SellerID:     "seller-1",
	}
}

func TestValidateBid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("105.00")

	t.Run("accepts minimum bid", func(t *testing.T) {
		require.NoError(t, ValidateBid(activeAuction(now), amount, "bidder-1", now))
	})

	t.Run("not active", func(t *testing.T) {
		a := activeAuction(now)
		a.Status = AuctionStatusEnded
		assert.Equal(t, errcode.ErrAuctionNotActive, ValidateBid(a, amount, "bidder-1", now))
	})

	t.Run("not started", func(t *testing.T) {
		a := activeAuction(now)
		a.StartTime = now.Add(time.Minute)
		assert.Equal(t, errcode.ErrAuctionNotStarted, ValidateBid(a, amount, "bidder-1", now))
	})

	t.Run("ended by clock", func(t *testing.T) {
		a := activeAuction(now)
		a.EndTime = now
		assert.Equal(t, errcode.ErrAuctionEnded, ValidateBid(a, amount, "bidder-1", now))
	})

	t.Run("seller cannot bid", func(t *testing.T) {
		a := activeAuction(now)
		assert.Equal(t, errcode.ErrSelfTrade, ValidateBid(a, amount, "seller-1", now))
	})

	t.Run("buy now listing rejects bids", func(t *testing.T) {
		a := activeAuction(now)
		a.ListingType = ListingTypeBuyNow
		a.BuyNowPrice = decimal.NullDecimal{Decimal: decimal.RequireFromString("500.00"), Valid: true}
		assert.Equal(t, errcode.ErrBidNotAllowed, ValidateBid(a, amount, "bidder-1", now))
	})

	t.Run("below minimum", func(t *testing.T) {
		a := activeAuction(now)
		assert.Equal(t, errcode.ErrBidTooLow, ValidateBid(a, decimal.RequireFromString("103.00"), "bidder-1", now))
	})

	// checks run in a fixed order: an expired auction held by the seller
	// reports the lifecycle problem, not the self-trade
	t.Run("order of checks", func(t *testing.T) {
		a := activeAuction(now)
		a.EndTime = now.Add(-time.Minute)
		assert.Equal(t, errcode.ErrAuctionEnded, ValidateBid(a, decimal.RequireFromString("1.00"), "seller-1", now))
	})
}

// Increment math: current 100, increment 5. 103 is short,
// 105 clears, and after acceptance 105 no longer clears.
func TestValidateBidIncrementSequence(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := activeAuction(now)

	assert.Equal(t, errcode.ErrBidTooLow, ValidateBid(a, decimal.RequireFromString("103.00"), "bidder-1", now))
	require.NoError(t, ValidateBid(a, decimal.RequireFromString("105.00"), "bidder-1", now))

	a.CurrentBid = decimal.RequireFromString("105.00")
	assert.Equal(t, errcode.ErrBidTooLow, ValidateBid(a, decimal.RequireFromString("105.00"), "bidder-2", now))
	require.NoError(t, ValidateBid(a, decimal.RequireFromString("110.00"), "bidder-2", now))
}

func TestValidateBuyNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	buyable := func() *Auction {
		a := activeAuction(now)
		a.ListingType = ListingTypeAuctionBuyNow
		a.BuyNowPrice = decimal.NullDecimal{Decimal: decimal.RequireFromString("500.00"), Valid: true}
		return a
	}

	t.Run("ok", func(t *testing.T) {
		require.NoError(t, ValidateBuyNow(buyable(), "buyer-1", now))
	})

	t.Run("plain auction has no buy now", func(t *testing.T) {
		assert.Equal(t, errcode.ErrBuyNowNotAvailable, ValidateBuyNow(activeAuction(now), "buyer-1", now))
	})

	t.Run("not active", func(t *testing.T) {
		a := buyable()
		a.Status = AuctionStatusSold
		assert.Equal(t, errcode.ErrAuctionNotActive, ValidateBuyNow(a, "buyer-1", now))
	})

	t.Run("ended", func(t *testing.T) {
		a := buyable()
		a.EndTime = now
		assert.Equal(t, errcode.ErrAuctionEnded, ValidateBuyNow(a, "buyer-1", now))
	})

	t.Run("seller cannot buy", func(t *testing.T) {
		assert.Equal(t, errcode.ErrSelfTrade, ValidateBuyNow(buyable(), "seller-1", now))
	})
}

func TestValidateNewAuction(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	hundred := decimal.RequireFromString("100.00")
	five := decimal.RequireFromString("5.00")
	none := decimal.NullDecimal{}

	assert.NoError(t, ValidateNewAuction(hundred, five, none, start, end))

	err := ValidateNewAuction(decimal.Zero, five, none, start, end)
	require.Error(t, err)
	assert.Equal(t, "starting bid must be greater than 0", errcode.ParseErr(err).Msg())

	err = ValidateNewAuction(hundred, decimal.Zero, none, start, end)
	require.Error(t, err)
	assert.Equal(t, "bid increment must be greater than 0", errcode.ParseErr(err).Msg())

	err = ValidateNewAuction(hundred, five, none, start, start)
	require.Error(t, err)
	assert.Equal(t, "end time must be after start time", errcode.ParseErr(err).Msg())

	lowBuyNow := decimal.NullDecimal{Decimal: hundred, Valid: true}
	err = ValidateNewAuction(hundred, five, lowBuyNow, start, end)
	require.Error(t, err)
	assert.Equal(t, "buy now price must be greater than starting bid", errcode.ParseErr(err).Msg())

	okBuyNow := decimal.NullDecimal{Decimal: decimal.RequireFromString("500.00"), Valid: true}
	assert.NoError(t, ValidateNewAuction(hundred, five, okBuyNow, start, end))
}
