// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/orderbook"
)

// Canonical payload encodings covered by signed request digests. The
// client and the server must pack identically, field by field.
//
// Order intents omit the beneficiary: the vault redirects every
// forwarded order to its own custody, so the field carries no
// authority worth signing.

func amountsPayload(a uint64, b uint64) []byte {
	size := 2 * consts.Uint64Len
	p := codec.NewWriter(size, size)
	p.PackUint64(a)
	p.PackUint64(b)
	return p.Bytes()
}

func sharesPayload(shares uint64) []byte {
	p := codec.NewWriter(consts.Uint64Len, consts.Uint64Len)
	p.PackUint64(shares)
	return p.Bytes()
}

func intentsPayload(intents []orderbook.OrderIntent) []byte {
	size := consts.IntLen + len(intents)*(consts.IDLen+consts.ByteLen+2*consts.Uint64Len)
	p := codec.NewWriter(size, size)
	p.PackInt(len(intents))
	for _, intent := range intents {
		p.PackID(intent.OrderID)
		p.PackByte(intent.Side)
		p.PackUint64(intent.Price)
		p.PackUint64(intent.Size)
	}
	return p.Bytes()
}

func cancelsPayload(cancels []orderbook.CancelIntent) []byte {
	size := consts.IntLen + len(cancels)*consts.IDLen
	p := codec.NewWriter(size, size)
	p.PackInt(len(cancels))
	for _, cancel := range cancels {
		p.PackID(cancel.OrderID)
	}
	return p.Bytes()
}

func rolePayload(role byte, grantee codec.Address) []byte {
	size := consts.ByteLen + codec.AddressLen
	p := codec.NewWriter(size, size)
	p.PackByte(role)
	p.PackAddress(grantee)
	return p.Bytes()
}
