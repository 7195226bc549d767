// Package modkit provides module wiring and core deps
package modkit

import (
	"sahayak/internal/modkit/repokit"
	"sahayak/internal/platform/cache"
	"sahayak/internal/platform/config"
	"sahayak/internal/platform/logger"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// everything request handling needs travels here, nothing is process global
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Cache is the shared namespaced TTL cache
	Cache *cache.Cache

	// Breakers holds one circuit breaker per downstream capability
	Breakers *resilience.BreakerSet

	// Writes is the shared async write queue for archival work
	Writes *resilience.WriteQueue
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
