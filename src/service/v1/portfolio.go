package service

import (
	"context"

	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

func GetUserBids(ctx context.Context, svcCtx *svc.ServerCtx, userID string) ([]model.Bid, error) {
	return svcCtx.Dao.ListBidsByBidder(ctx, userID)
}

func GetUserAuctions(ctx context.Context, svcCtx *svc.ServerCtx, userID string) ([]model.Auction, error) {
	return svcCtx.Dao.ListAuctionsBySeller(ctx, userID)
}
