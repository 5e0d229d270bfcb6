// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/units"
)

const (
	ReadBufferSize     = units.KiB
	WriteBufferSize    = units.KiB
	MaxPendingMessages = 1_024
	MaxReadMessageSize = 10 * units.KiB

	// MaxMessageWait bounds how long outbound messages sit in a
	// connection's buffer before they are flushed as one batch.
	MaxMessageWait = 50 * time.Millisecond

	WriteWait  = 10 * time.Second
	PongWait   = 60 * time.Second
	PingPeriod = (PongWait * 9) / 10
)
