// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/genesis"
	"github.com/lpvault/lpvault/orderbook"
	"github.com/lpvault/lpvault/vault"
)

type Controller interface {
	Tracer() trace.Tracer
	Genesis() *genesis.Genesis
	Vault() *vault.Vault
	GetBalanceFromState(ctx context.Context, addr codec.Address, asset ids.ID) (uint64, error)
	GetSupplyFromState(ctx context.Context, asset ids.ID) (uint64, error)
	Orders(ctx context.Context, side byte, limit int) []orderbook.Order

	// GrantRole runs with admin authority checked against [granter].
	GrantRole(ctx context.Context, granter codec.Address, role byte, grantee codec.Address) error

	// RequestExpiryWindow bounds how far in the future a signed
	// request may expire.
	RequestExpiryWindow() time.Duration
}
