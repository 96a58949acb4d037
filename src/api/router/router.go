package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/api/middleware"
	"github.com/kitbid/KitBidBackend/src/common/utils"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	gin.ForceConsoleColor()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware())
	r.Use(middleware.RLog())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "X-User-Id", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	r.Use(middleware.Identity())

	if err := utils.RegisterValidators(); err != nil {
		xzap.WithContext(context.Background()).Error("failed on register validators", zap.Error(err))
	}

	loadV1(r, svcCtx)

	return r
}
