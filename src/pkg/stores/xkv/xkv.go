package xkv

import (
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store is a thin wrapper over go-zero's sharded redis kv store so callers
// depend on one local type instead of the go-zero package.
type Store struct {
	kv.Store
}

func NewStore(c kv.KvConf) *Store {
	return &Store{
		Store: kv.NewStore(c),
	}
}
