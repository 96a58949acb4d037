package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/kitbid/KitBidBackend/src/api/middleware"
	"github.com/kitbid/KitBidBackend/src/pkg/xhttp"
	"github.com/kitbid/KitBidBackend/src/service/svc"
	service "github.com/kitbid/KitBidBackend/src/service/v1"
)

func UserBidsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		bids, err := service.GetUserBids(c.Request.Context(), svcCtx, middleware.UserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, bids)
	}
}

func UserAuctionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctions, err := service.GetUserAuctions(c.Request.Context(), svcCtx, middleware.UserID(c))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, auctions)
	}
}
