package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auction lifecycle statuses. ended, sold and cancelled are terminal.
const (
	AuctionStatusUpcoming  = "upcoming"
	AuctionStatusActive    = "active"
	AuctionStatusEnded     = "ended"
	AuctionStatusSold      = "sold"
	AuctionStatusCancelled = "cancelled"
)

// Listing types gate which sale mechanisms an auction accepts.
const (
	ListingTypeAuction       = "auction"
	ListingTypeBuyNow        = "buy_now"
	ListingTypeAuctionBuyNow = "auction_buy_now"
)

// Soft close: a qualifying bid inside the trailing window pushes the end time
// out by the extension, with no cap on repeats.
const (
	SoftCloseWindow    = 5 * time.Minute
	SoftCloseExtension = 5 * time.Minute
)

type Auction struct {
	ID           string              `json:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Title        string              `json:"title" gorm:"column:title;type:varchar(255);not null"`
	Description  string              `json:"description" gorm:"column:description;type:text"`
	Category     string              `json:"category" gorm:"column:category;type:varchar(64);index"`
	Team         string              `json:"team" gorm:"column:team;type:varchar(64);index"`
	ListingType  string              `json:"listing_type" gorm:"column:listing_type;type:varchar(32);not null"`
	StartingBid  decimal.Decimal     `json:"starting_bid" gorm:"column:starting_bid;type:decimal(20,2);not null"`
	CurrentBid   decimal.Decimal     `json:"current_bid" gorm:"column:current_bid;type:decimal(20,2);not null"`
	BidIncrement decimal.Decimal     `json:"bid_increment" gorm:"column:bid_increment;type:decimal(20,2);not null"`
	BuyNowPrice  decimal.NullDecimal `json:"buy_now_price" gorm:"column:buy_now_price;type:decimal(20,2)"`
	StartTime    time.Time           `json:"start_time" gorm:"column:start_time;not null"`
	EndTime      time.Time           `json:"end_time" gorm:"column:end_time;not null;index"`
	Status       string              `json:"status" gorm:"column:status;type:varchar(16);not null;index"`
	SellerID     string              `json:"seller_id" gorm:"column:seller_id;type:varchar(36);not null;index"`
	WinnerID     string              `json:"winner_id,omitempty" gorm:"column:winner_id;type:varchar(36)"`
	BidCount     int64               `json:"bid_count" gorm:"column:bid_count;not null;default:0"`
	Views        int64               `json:"views" gorm:"column:views;not null;default:0"`
	CreatedAt    time.Time           `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time           `json:"updated_at" gorm:"column:updated_at"`
}

func (Auction) TableName() string {
	return "kb_auctions"
}

var auctionTransitions = map[string][]string{
	AuctionStatusUpcoming: {AuctionStatusActive, AuctionStatusCancelled},
	AuctionStatusActive:   {AuctionStatusEnded, AuctionStatusSold, AuctionStatusCancelled},
}

// CanTransition reports whether the lifecycle allows moving from one status to
// another. Terminal statuses allow nothing.
func CanTransition(from, to string) bool {
	for _, next := range auctionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (a *Auction) Terminal() bool {
	switch a.Status {
	case AuctionStatusEnded, AuctionStatusSold, AuctionStatusCancelled:
		return true
	}
	return false
}

// IsActiveAt combines the stored status with the time window; every gating
// read uses this single definition so the bidding path and the status-query
// path cannot diverge.
func (a *Auction) IsActiveAt(now time.Time) bool {
	return a.Status == AuctionStatusActive &&
		!now.Before(a.StartTime) &&
		now.Before(a.EndTime)
}

// MinNextBid is the lowest amount the next bid may carry.
func (a *Auction) MinNextBid() decimal.Decimal {
	return a.CurrentBid.Add(a.BidIncrement)
}

// InSoftClose reports whether now falls inside the trailing soft-close window.
func (a *Auction) InSoftClose(now time.Time) bool {
	return !now.Before(a.EndTime.Add(-SoftCloseWindow))
}

// Capabilities is the listing type resolved once into a capability set, so
// the bid validator and buy-now settlement consult the same gate.
type Capabilities struct {
	CanBid    bool
	CanBuyNow bool
}

func (a *Auction) Capabilities() Capabilities {
	caps := Capabilities{}
	switch a.ListingType {
	case ListingTypeAuction:
		caps.CanBid = true
	case ListingTypeBuyNow:
		caps.CanBuyNow = a.BuyNowPrice.Valid
	case ListingTypeAuctionBuyNow:
		caps.CanBid = true
		caps.CanBuyNow = a.BuyNowPrice.Valid
	}
	return caps
}
