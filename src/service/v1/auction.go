package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/dao"
	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/service/svc"
	"github.com/kitbid/KitBidBackend/src/types/v1"
)

const detailBidHistoryLimit = 10

// CreateAuction validates the listing request and persists it. The initial
// status depends on whether the start time has already passed.
func CreateAuction(ctx context.Context, svcCtx *svc.ServerCtx, req *types.CreateAuctionReq, sellerID string) (*model.Auction, error) {
	startingBid, err := decimal.NewFromString(req.StartingBid)
	if err != nil {
		return nil, errcode.ErrInvalidParams
	}
	bidIncrement, err := decimal.NewFromString(req.BidIncrement)
	if err != nil {
		return nil, errcode.ErrInvalidParams
	}
	var buyNowPrice decimal.NullDecimal
	if req.BuyNowPrice != "" {
		p, err := decimal.NewFromString(req.BuyNowPrice)
		if err != nil {
			return nil, errcode.ErrInvalidParams
		}
		buyNowPrice = decimal.NullDecimal{Decimal: p, Valid: true}
	}

	if err := model.ValidateNewAuction(startingBid, bidIncrement, buyNowPrice, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := model.AuctionStatusActive
	if req.StartTime.After(now) {
		status = model.AuctionStatusUpcoming
	}

	auction := &model.Auction{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Team:         req.Team,
		ListingType:  req.ListingType,
		StartingBid:  startingBid,
		CurrentBid:   startingBid,
		BidIncrement: bidIncrement,
		BuyNowPrice:  buyNowPrice,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       status,
		SellerID:     sellerID,
	}
	if err := svcCtx.Dao.CreateAuction(ctx, auction); err != nil {
		return nil, errors.Wrap(err, "failed on create auction")
	}
	return auction, nil
}

func ListAuctions(ctx context.Context, svcCtx *svc.ServerCtx, param *types.AuctionListParam) (*types.AuctionListResp, error) {
	filter := &dao.AuctionFilter{
		Status:      param.Status,
		Category:    param.Category,
		Team:        param.Team,
		ListingType: param.ListingType,
		Sort:        param.Sort,
		Page:        param.Page,
		PageSize:    param.PageSize,
	}
	auctions, total, err := svcCtx.Dao.ListAuctions(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed on list auctions")
	}

	page := param.Page
	if page < 1 {
		page = 1
	}
	pageSize := param.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &types.AuctionListResp{
		Auctions:   auctions,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// GetAuctionDetail returns the auction with its recent bid history and bumps
// the view counter. The counter update is best effort: a failed bump never
// fails the read.
func GetAuctionDetail(ctx context.Context, svcCtx *svc.ServerCtx, auctionID string) (*types.AuctionDetailResp, error) {
	auction, err := svcCtx.Dao.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	bids, err := svcCtx.Dao.ListBidsByAuction(ctx, auctionID, detailBidHistoryLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed on get auction bids")
	}

	if err := svcCtx.Dao.IncrementViews(ctx, auctionID); err != nil {
		xzap.WithContext(ctx).Warn("failed on increment views",
			zap.String("auction_id", auctionID), zap.Error(err))
	} else {
		auction.Views++
	}

	return &types.AuctionDetailResp{Auction: auction, Bids: bids}, nil
}

func GetAuctionBids(ctx context.Context, svcCtx *svc.ServerCtx, auctionID string) ([]model.Bid, error) {
	if _, err := svcCtx.Dao.GetAuctionByID(ctx, auctionID); err != nil {
		return nil, err
	}
	return svcCtx.Dao.ListBidsByAuction(ctx, auctionID, 0)
}

// GetAuctionStatus computes the per-viewer gate snapshot the frontend polls.
// userID may be empty for anonymous viewers.
func GetAuctionStatus(ctx context.Context, svcCtx *svc.ServerCtx, auctionID, userID string) (*types.AuctionStatusResp, error) {
	auction, err := svcCtx.Dao.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	isActive := auction.IsActiveAt(now)
	caps := auction.Capabilities()
	notSeller := auction.SellerID != userID

	endsIn := auction.EndTime.Sub(now).Milliseconds()
	if endsIn < 0 {
		endsIn = 0
	}

	resp := &types.AuctionStatusResp{
		CanBid:    isActive && caps.CanBid && notSeller,
		CanBuyNow: isActive && caps.CanBuyNow && notSeller,
		MinBid:    auction.MinNextBid().String(),
		EndsIn:    endsIn,
		IsActive:  isActive,
		Status:    auction.Status,
	}
	if auction.BuyNowPrice.Valid {
		resp.BuyNowPrice = auction.BuyNowPrice.Decimal.String()
	}

	if userID != "" {
		leading, err := svcCtx.Dao.LeadingBid(ctx, auctionID)
		if err != nil {
			return nil, errors.Wrap(err, "failed on get leading bid")
		}
		resp.IsWinning = leading != nil && leading.BidderID == userID
	}
	return resp, nil
}

func CancelAuction(ctx context.Context, svcCtx *svc.ServerCtx, auctionID, sellerID string) (*model.Auction, error) {
	return svcCtx.Dao.CancelAuction(ctx, auctionID, sellerID)
}
