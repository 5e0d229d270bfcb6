// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "math"

// Key prefixes
const (
	balancePrefix byte = iota
	assetPrefix
	reservesPrefix
	orderPrefix
	rolePrefix
	genesisPrefix
)

// Roles gating privileged operations.
const (
	AdminRole byte = iota
	MarketMakerRole
)

// MinimumLiquidity is the share amount minted to the lock address
// when a pool is bootstrapped. It can never be redeemed, which keeps
// the pool from being fully drained and its share price from being
// manipulated right after creation.
var MinimumLiquidity = uint64(math.Pow10(3))
