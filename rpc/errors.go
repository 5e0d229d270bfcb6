// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrExpiryTooFar = errors.New("request expiry too far in the future")
	ErrUnknownRole  = errors.New("unknown role")
)
