package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/pkg/stores/xkv"
	"github.com/kitbid/KitBidBackend/src/types/v1"
)

const ResolvedAuctionQueueKey = "queue:kb:auction:resolved"

const CacheResolvedNotifiedKeyPrefix = "cache:kb:auction:resolved:notified:%s"
const PreventReentrancyPeriod = 10 //second

// AddResolvedAuctionToNotifyQueue pushes a settled auction onto the redis
// queue the notification workers drain. A short-lived reentrancy key keeps a
// sweep retry from enqueueing the same auction twice in a row.
func AddResolvedAuctionToNotifyQueue(kvStore *xkv.Store, resolution *types.AuctionResolution) error {
	notified, err := kvStore.Get(fmt.Sprintf(CacheResolvedNotifiedKeyPrefix, resolution.AuctionID))
	if err != nil {
		return errors.Wrap(err, "failed on check notified status")
	}

	if notified != "" {
		xzap.WithContext(context.Background()).Info("auction already queued for notify",
			zap.String("auction_id", resolution.AuctionID))
		return nil
	}

	rawInfo, err := json.Marshal(resolution)
	if err != nil {
		return errors.Wrap(err, "failed on marshal auction resolution")
	}

	_, err = kvStore.Sadd(ResolvedAuctionQueueKey, string(rawInfo))
	if err != nil {
		return errors.Wrap(err, "failed on push auction to notify queue")
	}

	_ = kvStore.Setex(fmt.Sprintf(CacheResolvedNotifiedKeyPrefix, resolution.AuctionID), "true", PreventReentrancyPeriod)

	return nil
}
