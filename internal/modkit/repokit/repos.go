// Package repokit carries the store aliases and binding helpers repos are
// written against, keeping module repos off the store package directly
package repokit

import (
	"context"

	"vidtally/internal/platform/store"
)

// Queryer is the read and write surface repos run statements through
type Queryer = store.RowQuerier

// TxRunner opens transactions around a repo callback
type TxRunner = store.TxRunner

type (
	// Rows is a multi-row result
	Rows = store.Rows

	// Row is a single-row result
	Row = store.Row

	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// WithTx runs fn inside one transaction. fn's Queryer is tx-bound
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
