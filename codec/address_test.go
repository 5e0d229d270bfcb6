// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressString(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)
	require.Equal(addr, StringToAddress(addr.String()))
}

func TestParseAddress(t *testing.T) {
	valid := CreateAddress(byte(1), ids.GenerateTestID())

	tests := []struct {
		name    string
		input   string
		want    Address
		wantErr bool
	}{
		{
			name:  "validAddress",
			input: valid.String(),
			want:  valid,
		},
		{
			name:  "validAddressWithPrefix",
			input: "0x" + valid.String(),
			want:  valid,
		},
		{
			name:    "truncatedAddress",
			input:   "0x0001",
			wantErr: true,
		},
		{
			name:    "notHex",
			input:   "zzzz",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			addr, err := ParseAddress(tt.input)
			if tt.wantErr {
				require.Error(err)
				require.Equal(EmptyAddress, addr)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, addr)
		})
	}
}
