// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/orderbook"
)

// AssetLedger moves value on behalf of the vault. Every call is atomic: a
// compound operation either completes or leaves balances untouched.
type AssetLedger interface {
	CreateAsset(ctx context.Context, asset ids.ID, minter codec.Address) error
	Mint(ctx context.Context, asset ids.ID, actor codec.Address, to codec.Address, amount uint64) error
	Burn(ctx context.Context, asset ids.ID, actor codec.Address, from codec.Address, amount uint64) error
	Pull(ctx context.Context, asset ids.ID, from codec.Address, custody codec.Address, amount uint64) error
	Push(ctx context.Context, asset ids.ID, custody codec.Address, to codec.Address, amount uint64) error
	Wrap(ctx context.Context, wrapper ids.ID, custody codec.Address, owner codec.Address, value uint64) error
	Unwrap(ctx context.Context, wrapper ids.ID, custody codec.Address, owner codec.Address, value uint64) error
	Balance(ctx context.Context, owner codec.Address, asset ids.ID) (uint64, error)
	Supply(ctx context.Context, asset ids.ID) (uint64, error)
}

// RoleChecker answers whether an address holds a capability.
type RoleChecker interface {
	Has(ctx context.Context, role byte, addr codec.Address) (bool, error)
}

// Matcher accepts order flow forwarded by the vault. Results are per-intent;
// the matcher never aborts a batch.
type Matcher interface {
	Create(ctx context.Context, intents []orderbook.OrderIntent) []orderbook.OrderResult
	Update(ctx context.Context, intents []orderbook.OrderIntent) []orderbook.OrderResult
	Cancel(ctx context.Context, cancels []orderbook.CancelIntent) []orderbook.CancelResult
}
