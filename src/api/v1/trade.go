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

// PlaceBidHandler accepts a bid on an active auction.
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Params.ByName("id")
		if auctionID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		var req types.PlaceBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.PlaceBid(c.Request.Context(), svcCtx, auctionID, middleware.UserID(c), req.Amount)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// BuyNowHandler settles the auction instantly at the listed buy-now price.
func BuyNowHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Params.ByName("id")
		if auctionID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		auction, err := service.BuyNow(c.Request.Context(), svcCtx, auctionID, middleware.UserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auction)
	}
}
