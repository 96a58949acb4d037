package svc

import (
	"context"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/kitbid/KitBidBackend/src/config"
	"github.com/kitbid/KitBidBackend/src/dao"
	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/pkg/stores/gdb"
	"github.com/kitbid/KitBidBackend/src/pkg/stores/xkv"
)

type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore *xkv.Store
}

// NewServiceContext wires the infrastructure the backend needs: logger,
// redis kv store, database, dao.
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	if _, err := xzap.SetUp(c.Log); err != nil {
		return nil, err
	}

	var kvConf kv.KvConf
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}
	store := xkv.NewStore(kvConf)

	db, err := gdb.NewDB(&c.DB)
	if err != nil {
		return nil, err
	}

	d := dao.New(context.Background(), db, store)

	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(d),
	)
	serverCtx.C = c

	return serverCtx, nil
}
