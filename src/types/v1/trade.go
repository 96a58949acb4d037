package types

import "github.com/kitbid/KitBidBackend/src/model"

type PlaceBidReq struct {
	Amount string `json:"amount" binding:"required,money"`
}

type PlaceBidResp struct {
	Bid     *model.Bid     `json:"bid"`
	Auction *model.Auction `json:"auction"`
}

type BuyNowReq struct {
	Note string `json:"note"`
}
