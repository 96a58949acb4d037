package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/config"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

// Platform is the container for the HTTP side of the backend.
type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
}

func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) (*Platform, error) {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
	}, nil
}

// Start blocks serving HTTP on the configured port.
func (p *Platform) Start() {
	xzap.WithContext(context.Background()).Info("KitBid-Backend run", zap.String("port", p.config.Api.Port))
	if err := p.router.Run(p.config.Api.Port); err != nil {
		panic(err)
	}
}
