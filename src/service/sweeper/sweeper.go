package sweeper

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/config"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	service "github.com/kitbid/KitBidBackend/src/service/v1"
	"github.com/kitbid/KitBidBackend/src/service/svc"
)

// Service drives the periodic auction settlement pass.
type Service struct {
	ctx      context.Context
	cfg      *config.Config
	svcCtx   *svc.ServerCtx
	interval time.Duration
}

func New(ctx context.Context, cfg *config.Config, svcCtx *svc.ServerCtx) *Service {
	interval := time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	return &Service{
		ctx:      ctx,
		cfg:      cfg,
		svcCtx:   svcCtx,
		interval: interval,
	}
}

func (s *Service) Start() {
	threading.GoSafe(s.sweepLoop)
}

// sweepLoop runs one settlement pass per tick until the context is
// cancelled. A failed pass is logged and retried on the next tick.
func (s *Service) sweepLoop() {
	xzap.WithContext(s.ctx).Info("auction sweeper started",
		zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			xzap.WithContext(s.ctx).Info("sweepLoop stopped due to context cancellation")
			return
		case <-ticker.C:
		}

		result, err := service.CloseExpiredAuctions(s.ctx, s.svcCtx)
		if err != nil {
			xzap.WithContext(s.ctx).Error("failed on close expired auctions", zap.Error(err))
			continue
		}
		if result.Closed > 0 || result.Activated > 0 {
			xzap.WithContext(s.ctx).Info("sweep pass finished",
				zap.Int("closed", result.Closed),
				zap.Int64("activated", result.Activated))
		}
	}
}
