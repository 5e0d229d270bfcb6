// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/pubsub"
	"github.com/lpvault/lpvault/vault"
)

// EventsMode prefixes liquidity event frames on the websocket
// endpoint. A client subscribes by sending the bare mode byte.
const EventsMode byte = 0x0

func PackEventMessage(e vault.Event) ([]byte, error) {
	size := codec.StringLen(e.Kind) + codec.AddressLen + consts.Uint64Len*3
	p := codec.NewWriter(size, size)
	p.PackString(e.Kind)
	p.PackAddress(e.Provider)
	p.PackUint64(e.BaseAmount)
	p.PackUint64(e.QuoteAmount)
	p.PackUint64(e.Shares)
	return p.Bytes(), p.Err()
}

func UnpackEventMessage(msg []byte) (vault.Event, error) {
	p := codec.NewReader(msg, pubsub.MaxReadMessageSize)
	var e vault.Event
	e.Kind = p.UnpackString(true)
	p.UnpackAddress(&e.Provider)
	e.BaseAmount = p.UnpackUint64(false)
	e.QuoteAmount = p.UnpackUint64(false)
	e.Shares = p.UnpackUint64(false)
	return e, p.Err()
}
