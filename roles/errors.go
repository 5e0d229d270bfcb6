// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roles

import "errors"

var ErrNotAdmin = errors.New("actor does not hold the admin role")
