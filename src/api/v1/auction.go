package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/kitbid/KitBidBackend/src/api/middleware"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
	"github.com/kitbid/KitBidBackend/src/pkg/xhttp"
	"github.com/kitbid/KitBidBackend/src/service/svc"
	service "github.com/kitbid/KitBidBackend/src/service/v1"
	"github.com/kitbid/KitBidBackend/src/types/v1"
)

// CreateAuctionHandler lists a new auction for the authenticated seller.
func CreateAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		auction, err := service.CreateAuction(c.Request.Context(), svcCtx, &req, middleware.UserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auction)
	}
}

// AuctionListHandler pages through auctions with optional filters.
func AuctionListHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param types.AuctionListParam
		if err := c.ShouldBindQuery(&param); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.ListAuctions(c.Request.Context(), svcCtx, &param)
		if err != nil {
			xhttp.Error(c, errcode.ErrUnexpected)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func AuctionDetailHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Params.ByName("id")
		if auctionID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.GetAuctionDetail(c.Request.Context(), svcCtx, auctionID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// AuctionStatusHandler returns the lightweight snapshot the frontend polls
// between page loads.
func AuctionStatusHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Params.ByName("id")
		if auctionID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.GetAuctionStatus(c.Request.Context(), svcCtx, auctionID, middleware.UserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func AuctionBidsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Params.ByName("id")
		if auctionID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		bids, err := service.GetAuctionBids(c.Request.Context(), svcCtx, auctionID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, bids)
	}
}

// CancelAuctionHandler lets the seller withdraw a listing nobody has bid on.
func CancelAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Params.ByName("id")
		if auctionID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		auction, err := service.CancelAuction(c.Request.Context(), svcCtx, auctionID, middleware.UserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auction)
	}
}
