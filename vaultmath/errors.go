// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultmath

import "errors"

var (
	ErrOverflow = errors.New("overflow")
	ErrDivZero  = errors.New("divide by zero")
)
