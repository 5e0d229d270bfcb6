// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package orderbook

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidSide    = errors.New("invalid side")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidSize    = errors.New("invalid size")
	ErrSideMismatch   = errors.New("side does not match resting order")
	ErrDustOrder      = errors.New("order value rounds to zero")
	ErrDuplicateOrder = errors.New("duplicate order id")
)
