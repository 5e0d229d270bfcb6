// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"time"

	"github.com/lpvault/lpvault/consts"
)

const (
	// Name is the namespace the JSON-RPC service registers under.
	Name = consts.Name

	JSONRPCEndpoint   = "/rpc"
	WebsocketEndpoint = "/events"

	// DefaultHandshakeTimeout bounds the websocket upgrade when
	// dialing the event stream.
	DefaultHandshakeTimeout = 10 * time.Second
)

// Wire method names. The JSON codec uppercases the first character
// after the namespace to locate the Go method, so these double as the
// domain separator of signed request digests.
const (
	MethodGenesis      = Name + ".genesis"
	MethodReserves     = Name + ".reserves"
	MethodLPTokenValue = Name + ".lPTokenValue"
	MethodBalance      = Name + ".balance"
	MethodShareSupply  = Name + ".shareSupply"
	MethodOrders       = Name + ".orders"

	MethodDeposit        = Name + ".deposit"
	MethodWithdraw       = Name + ".withdraw"
	MethodDepositNative  = Name + ".depositNative"
	MethodWithdrawNative = Name + ".withdrawNative"
	MethodSyncReserves   = Name + ".syncReserves"
	MethodCreateOrders   = Name + ".createOrders"
	MethodUpdateOrders   = Name + ".updateOrders"
	MethodCancelOrders   = Name + ".cancelOrders"
	MethodGrantRole      = Name + ".grantRole"
)

// ordersToSend caps a single book inspection response.
const ordersToSend = 128
