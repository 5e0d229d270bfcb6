// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

type Controller interface {
	DatabasePath() string
	Symbol() string
}
