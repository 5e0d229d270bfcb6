// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package orderbook

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/lpvault/lpvault/codec"
)

// Custodian moves funds between accounts on behalf of the book. Escrow is
// held at per-order addresses, so every lock, refund, and settlement is an
// ordinary transfer.
type Custodian interface {
	Transfer(ctx context.Context, asset ids.ID, from codec.Address, to codec.Address, amount uint64) error
	Balance(ctx context.Context, owner codec.Address, asset ids.ID) (uint64, error)
}

// OrderStore persists resting orders and can scan them back on startup.
type OrderStore interface {
	database.KeyValueReaderWriterDeleter
	database.Iteratee
}
