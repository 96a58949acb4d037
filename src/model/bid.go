package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is immutable once written. History ordering is created_at desc; the
// leading bid is amount desc with earliest created_at breaking ties.
type Bid struct {
	ID        string          `json:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	AuctionID string          `json:"auction_id" gorm:"column:auction_id;type:varchar(36);not null;index"`
	BidderID  string          `json:"bidder_id" gorm:"column:bidder_id;type:varchar(36);not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(20,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at"`
}

func (Bid) TableName() string {
	return "kb_bids"
}
