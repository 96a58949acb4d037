package svc

import (
	"gorm.io/gorm"

	"github.com/kitbid/KitBidBackend/src/dao"
	"github.com/kitbid/KitBidBackend/src/pkg/stores/xkv"
)

// CtxConfig builds a ServerCtx through options, so tests can assemble a
// context from whatever subset they need.
type CtxConfig struct {
	db      *gorm.DB
	dao     *dao.Dao
	KvStore *xkv.Store
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:      c.db,
		KvStore: c.KvStore,
		Dao:     c.dao,
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.KvStore = kv
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}
