// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/consts"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)

	id := ids.GenerateTestID()
	addr := CreateAddress(byte(1), ids.GenerateTestID())
	raw := []byte{0xde, 0xad, 0xbe, 0xef}

	w := NewWriter(64, consts.MaxInt)
	w.PackByte(0x7)
	w.PackUint64(1_000_000)
	w.PackInt64(-42)
	w.PackID(id)
	w.PackAddress(addr)
	w.PackBytes(raw)
	w.PackString("base")
	w.PackBool(true)
	require.NoError(w.Err())

	r := NewReader(w.Bytes(), consts.MaxInt)
	require.Equal(byte(0x7), r.UnpackByte())
	require.Equal(uint64(1_000_000), r.UnpackUint64(true))
	require.Equal(int64(-42), r.UnpackInt64(true))
	var gotID ids.ID
	r.UnpackID(true, &gotID)
	require.Equal(id, gotID)
	var gotAddr Address
	r.UnpackAddress(&gotAddr)
	require.Equal(addr, gotAddr)
	var gotRaw []byte
	r.UnpackBytes(-1, true, &gotRaw)
	require.Equal(raw, gotRaw)
	require.Equal("base", r.UnpackString(true))
	require.True(r.UnpackBool())
	require.NoError(r.Err())
	require.True(r.Empty())
}

func TestPackerRequiredUnpack(t *testing.T) {
	require := require.New(t)

	w := NewWriter(16, consts.MaxInt)
	w.PackUint64(0)
	require.NoError(w.Err())

	r := NewReader(w.Bytes(), consts.MaxInt)
	require.Zero(r.UnpackUint64(true))
	require.ErrorIs(r.Err(), ErrFieldNotPopulated)
}

func TestPackerUnpackBytesLimit(t *testing.T) {
	require := require.New(t)

	w := NewWriter(16, consts.MaxInt)
	w.PackBytes([]byte("oversized payload"))
	require.NoError(w.Err())

	r := NewReader(w.Bytes(), consts.MaxInt)
	var dest []byte
	r.UnpackBytes(4, true, &dest)
	require.Error(r.Err())
}

func TestPackerEmptyAddress(t *testing.T) {
	require := require.New(t)

	w := NewWriter(AddressLen, consts.MaxInt)
	w.PackAddress(EmptyAddress)
	require.NoError(w.Err())

	r := NewReader(w.Bytes(), consts.MaxInt)
	var dest Address
	r.UnpackAddress(&dest)
	require.ErrorIs(r.Err(), ErrFieldNotPopulated)
}
