package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kitbid/KitBidBackend/src/api/middleware"
	v1 "github.com/kitbid/KitBidBackend/src/api/v1"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	auctions := api.Group("/auctions")
	{
		auctions.GET("", v1.AuctionListHandler(svcCtx))
		auctions.POST("", middleware.MustLogin(), v1.CreateAuctionHandler(svcCtx))
		auctions.GET("/:id", v1.AuctionDetailHandler(svcCtx))
		auctions.GET("/:id/status", v1.AuctionStatusHandler(svcCtx))
		auctions.GET("/:id/bids", v1.AuctionBidsHandler(svcCtx))
		auctions.POST("/:id/bid", middleware.MustLogin(), v1.PlaceBidHandler(svcCtx))
		auctions.POST("/:id/buy-now", middleware.MustLogin(), v1.BuyNowHandler(svcCtx))
		auctions.POST("/:id/cancel", middleware.MustLogin(), v1.CancelAuctionHandler(svcCtx))
	}

	portfolio := api.Group("/portfolio", middleware.MustLogin())
	{
		portfolio.GET("/bids", v1.UserBidsHandler(svcCtx))
		portfolio.GET("/auctions", v1.UserAuctionsHandler(svcCtx))
	}
}
