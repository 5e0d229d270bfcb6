// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrAssetExists       = errors.New("asset already exists")
	ErrAssetMissing      = errors.New("asset missing")
	ErrNotMinter         = errors.New("actor is not the asset minter")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLockedAccount     = errors.New("account is locked")
)
