package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/service/mq"
	"github.com/kitbid/KitBidBackend/src/service/svc"
	"github.com/kitbid/KitBidBackend/src/types/v1"
)

// CloseExpiredAuctions is the periodic settlement pass. It first promotes
// upcoming auctions whose start time arrived, then settles every active
// auction past its end time, one row-locked transaction each. A row another
// worker already settled is skipped, so concurrent sweeps stay idempotent.
func CloseExpiredAuctions(ctx context.Context, svcCtx *svc.ServerCtx) (*types.SweepResult, error) {
	now := time.Now().UTC()

	activated, err := svcCtx.Dao.ActivateUpcomingAuctions(ctx, now)
	if err != nil {
		return nil, err
	}
	if activated > 0 {
		xzap.WithContext(ctx).Info("activated upcoming auctions", zap.Int64("count", activated))
	}

	ids, err := svcCtx.Dao.ExpiredActiveAuctionIDs(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &types.SweepResult{
		Activated:   activated,
		Resolutions: make([]types.AuctionResolution, 0, len(ids)),
	}
	for _, id := range ids {
		resolution, err := svcCtx.Dao.SettleExpiredAuction(ctx, id, now)
		if err != nil {
			if err == errcode.ErrAlreadyResolved {
				continue
			}
			xzap.WithContext(ctx).Error("failed on settle expired auction",
				zap.String("auction_id", id), zap.Error(err))
			continue
		}

		res := types.AuctionResolution{
			AuctionID: resolution.AuctionID,
			Status:    resolution.Status,
			WinnerID:  resolution.WinnerID,
		}
		result.Resolutions = append(result.Resolutions, res)
		result.Closed++

		if svcCtx.KvStore != nil {
			if err := mq.AddResolvedAuctionToNotifyQueue(svcCtx.KvStore, &res); err != nil {
				xzap.WithContext(ctx).Warn("failed on queue auction notify",
					zap.String("auction_id", id), zap.Error(err))
			}
		}
	}

	return result, nil
}
