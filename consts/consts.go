// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name   = "lpvault"
	Symbol = "LPV"

	// ShareSymbol is the ticker used for pool shares minted by the
	// reserve ledger.
	ShareSymbol = "LPV-LP"

	// Decimals used when rendering asset amounts for humans. All
	// internal accounting is performed on raw uint64 units.
	Decimals = 9
)

// TypeIDs for address derivation. Every address is a typeID followed
// by a 32 byte identifier.
const (
	// ED25519ID prefixes addresses derived from ed25519 public keys.
	ED25519ID uint8 = iota

	// VaultID prefixes the custody address of a reserve vault.
	VaultID

	// LockID prefixes the unspendable address holding the minimum
	// liquidity minted at bootstrap.
	LockID

	// EscrowID prefixes the order escrow address of a vault.
	EscrowID
)

const (
	IDLen     = 32
	MaxUint8  = ^uint8(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)
	ByteLen   = 1
	BoolLen   = 1
	IntLen    = 4
	Uint16Len = 2
	Uint64Len = 8
	MaxUint64 = ^uint64(0)
)

// NativeAssetID is the reserved identifier for native value. Native
// balances are tracked under this ID but no asset record exists for
// it, so it can never be minted or burned directly.
var NativeAssetID = ids.Empty

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	id, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = id
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
