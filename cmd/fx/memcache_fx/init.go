package memcache_fx

import (
	"go.uber.org/fx"

	mem "chatgate/pkg/memcache"
)

var Module = fx.Provide(provideAccountLocks)

func provideAccountLocks() *mem.AccountLocks {
	return mem.NewAccountLocks()
}
