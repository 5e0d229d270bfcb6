// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import "errors"

var (
	ErrInvalidArgument              = errors.New("invalid argument")
	ErrUnauthorized                 = errors.New("unauthorized")
	ErrAlreadyInitialized           = errors.New("already initialized")
	ErrUnsupportedAsset             = errors.New("unsupported asset")
	ErrInsufficientInitialLiquidity = errors.New("insufficient initial liquidity")
	ErrInsufficientShares           = errors.New("deposit would issue zero shares")
	ErrInsufficientLiquidity        = errors.New("withdrawal rounds to zero")
	ErrInsufficientBalance          = errors.New("insufficient share balance")
	ErrNoLiquidity                  = errors.New("no liquidity in pool")
	ErrTransferFailed               = errors.New("transfer failed")
	ErrOverflow                     = errors.New("overflow")
	ErrReentrant                    = errors.New("reentrant call")
)
