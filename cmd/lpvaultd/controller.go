// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/genesis"
	"github.com/lpvault/lpvault/ledger"
	"github.com/lpvault/lpvault/orderbook"
	"github.com/lpvault/lpvault/roles"
	"github.com/lpvault/lpvault/rpc"
	"github.com/lpvault/lpvault/vault"
)

var _ rpc.Controller = (*controller)(nil)

// controller exposes daemon state to the JSON-RPC service.
type controller struct {
	tracer trace.Tracer
	gen    *genesis.Genesis
	vault  *vault.Vault
	ledger *ledger.Ledger
	roles  *roles.Registry
	book   *orderbook.Book
	expiry time.Duration
}

func (c *controller) Tracer() trace.Tracer { return c.tracer }

func (c *controller) Genesis() *genesis.Genesis { return c.gen }

func (c *controller) Vault() *vault.Vault { return c.vault }

func (c *controller) GetBalanceFromState(ctx context.Context, addr codec.Address, asset ids.ID) (uint64, error) {
	return c.ledger.Balance(ctx, addr, asset)
}

func (c *controller) GetSupplyFromState(ctx context.Context, asset ids.ID) (uint64, error) {
	return c.ledger.Supply(ctx, asset)
}

func (c *controller) Orders(ctx context.Context, side byte, limit int) []orderbook.Order {
	return c.book.Orders(ctx, side, limit)
}

func (c *controller) GrantRole(ctx context.Context, granter codec.Address, role byte, grantee codec.Address) error {
	return c.roles.Grant(ctx, granter, role, grantee)
}

func (c *controller) RequestExpiryWindow() time.Duration { return c.expiry }
