// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadBytes(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "key")
	id := ids.GenerateTestID()

	require.NoError(SaveBytes(path, id[:]))
	require.FileExists(path)

	loaded, err := LoadBytes(path, ids.IDLen)
	require.NoError(err)
	require.Equal(id[:], loaded)

	// Length check is skipped when expectedLen is -1
	loaded, err = LoadBytes(path, -1)
	require.NoError(err)
	require.Equal(id[:], loaded)
}

func TestLoadBytesWrongLength(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "truncated")
	require.NoError(os.WriteFile(path, []byte{1, 2, 3, 4, 5}, 0o600))

	_, err := LoadBytes(path, ids.IDLen)
	require.ErrorIs(err, ErrInvalidSize)
}

func TestLoadBytesMissingFile(t *testing.T) {
	require := require.New(t)

	_, err := LoadBytes(filepath.Join(t.TempDir(), "nonexistent"), ids.IDLen)
	require.ErrorIs(err, os.ErrNotExist)
}

func TestFormatAndParseBalance(t *testing.T) {
	require := require.New(t)

	// Raw amounts carry [consts.Decimals] = 9 fractional digits.
	testCases := []struct {
		raw       uint64
		formatted string
	}{
		{0, "0.000000000"},
		{1, "0.000000001"},
		{1_000_000_000, "1.000000000"},
		{1_500_000_000, "1.500000000"},
		{123_456_789, "0.123456789"},
		{42_000_000_001, "42.000000001"},
	}

	for _, tc := range testCases {
		require.Equal(tc.formatted, FormatBalance(tc.raw))

		parsed, err := ParseBalance(tc.formatted)
		require.NoError(err)
		require.Equal(tc.raw, parsed)
	}

	_, err := ParseBalance("invalid")
	require.ErrorIs(err, strconv.ErrSyntax)
}

func TestBoundedBuffer(t *testing.T) {
	require := require.New(t)

	evicted := []int{}
	b, err := NewBoundedBuffer[int](3, func(v int) { evicted = append(evicted, v) })
	require.NoError(err)

	_, ok := b.Last()
	require.False(ok)

	for i := 1; i <= 5; i++ {
		b.Insert(i)
	}

	last, ok := b.Last()
	require.True(ok)
	require.Equal(5, last)

	// Oldest entries are evicted first
	require.Equal([]int{1, 2}, evicted)
	require.Equal([]int{3, 4, 5}, b.Items())

	_, err = NewBoundedBuffer[int](0, nil)
	require.ErrorIs(err, errInvalidMaxSize)
}
