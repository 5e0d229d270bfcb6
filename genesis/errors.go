// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrAlreadyInitialized = errors.New("genesis already committed")
	ErrMissingAdmin       = errors.New("initial admin address is required")
	ErrDuplicateToken     = errors.New("duplicate token symbol")
	ErrUnknownToken       = errors.New("unknown token symbol")
	ErrWrapperAllocation  = errors.New("wrapper token cannot be pre-allocated")
)
