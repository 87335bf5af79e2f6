// Package modkit wires modules into binaries: the shared Deps bundle,
// the Module contract, and the option set constructors accept
package modkit

import (
	"vidtally/internal/modkit/repokit"
	"vidtally/internal/platform/config"
	"vidtally/internal/platform/logger"
	"vidtally/internal/platform/store"
)

// Deps is the bundle every module constructor receives. Pure wiring,
// nothing here owns behavior
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK reports that a zero Deps is fine to hand a module in tests.
// Stores may still be nil, modules nil-check the ones they use
func (d Deps) ZeroOK() bool { return true }
