package types

import (
	"time"

	"github.com/kitbid/KitBidBackend/src/model"
)

// CreateAuctionReq carries money fields as decimal strings so no float ever
// touches a price on the wire.
type CreateAuctionReq struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Team         string    `json:"team"`
	ListingType  string    `json:"listing_type" binding:"required,oneof=auction buy_now auction_buy_now"`
	StartingBid  string    `json:"starting_bid" binding:"required,money"`
	BidIncrement string    `json:"bid_increment" binding:"required,money"`
	BuyNowPrice  string    `json:"buy_now_price" binding:"omitempty,money"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

type AuctionListParam struct {
	Status      string `form:"status"`
	Category    string `form:"category"`
	Team        string `form:"team"`
	ListingType string `form:"listing_type"`
	Sort        string `form:"sort"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

type AuctionListResp struct {
	Auctions   []model.Auction `json:"auctions"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int64           `json:"total_pages"`
}

type AuctionDetailResp struct {
	Auction *model.Auction `json:"auction"`
	Bids    []model.Bid    `json:"bids"`
}

// AuctionStatusResp is the per-viewer snapshot the frontend polls.
type AuctionStatusResp struct {
	CanBid      bool   `json:"can_bid"`
	CanBuyNow   bool   `json:"can_buy_now"`
	MinBid      string `json:"min_bid"`
	BuyNowPrice string `json:"buy_now_price,omitempty"`
	EndsIn      int64  `json:"ends_in"` // milliseconds until end, floored at 0
	IsActive    bool   `json:"is_active"`
	Status      string `json:"status"`
	IsWinning   bool   `json:"is_winning"`
}
