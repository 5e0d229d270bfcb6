// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSqrt(t *testing.T) {
	tests := []struct {
		input uint64
		want  uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{10, 3},
		{99, 9},
		{100, 10},
		{101, 10},
		{1_000_000, 1_000},
		{10_000_000_000, 100_000},
		{1_000_000_000_000, 1_000_000},
		{math.MaxUint64, 4_294_967_295},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Sqrt(tt.input), "Sqrt(%d)", tt.input)
	}
}

func TestSqrtIsFloor(t *testing.T) {
	require := require.New(t)
	for y := uint64(0); y < 10_000; y++ {
		r := Sqrt(y)
		require.LessOrEqual(r*r, y, "Sqrt(%d) overshoots", y)
		require.Greater((r+1)*(r+1), y, "Sqrt(%d) undershoots", y)
	}
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name    string
		a       uint64
		b       uint64
		denom   uint64
		want    uint64
		wantErr error
	}{
		{
			name:  "exact",
			a:     6,
			b:     7,
			denom: 2,
			want:  21,
		},
		{
			name:  "floors",
			a:     10,
			b:     10,
			denom: 3,
			want:  33,
		},
		{
			name:  "zeroNumerator",
			a:     0,
			b:     math.MaxUint64,
			denom: 7,
			want:  0,
		},
		{
			name:  "productNeedsFullWidth",
			a:     math.MaxUint64,
			b:     1_000,
			denom: 1_000,
			want:  math.MaxUint64,
		},
		{
			name:    "quotientOverflows",
			a:       math.MaxUint64,
			b:       math.MaxUint64,
			denom:   1,
			wantErr: ErrOverflow,
		},
		{
			name:    "zeroDenominator",
			a:       1,
			b:       1,
			denom:   0,
			wantErr: ErrDivZero,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := MulDiv(tt.a, tt.b, tt.denom)
			if tt.wantErr != nil {
				require.ErrorIs(err, tt.wantErr)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestProportionalShares(t *testing.T) {
	tests := []struct {
		name        string
		contributed uint64
		supply      uint64
		reserve     uint64
		want        uint64
	}{
		{
			name:        "evenSplit",
			contributed: 500_000,
			supply:      1_000_000,
			reserve:     2_000_000,
			want:        250_000,
		},
		{
			name:        "floors",
			contributed: 1,
			supply:      3,
			reserve:     2,
			want:        1,
		},
		{
			name:        "dustContribution",
			contributed: 1,
			supply:      10,
			reserve:     1_000_000,
			want:        0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := ProportionalShares(tt.contributed, tt.supply, tt.reserve)
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestProportionalAmount(t *testing.T) {
	tests := []struct {
		name    string
		shares  uint64
		reserve uint64
		supply  uint64
		want    uint64
	}{
		{
			name:    "halfSupply",
			shares:  500,
			reserve: 10_000,
			supply:  1_000,
			want:    5_000,
		},
		{
			name:    "floors",
			shares:  1,
			reserve: 5,
			supply:  3,
			want:    1,
		},
		{
			name:    "redeemAgainstMaxSupply",
			shares:  math.MaxUint64 / 2,
			reserve: 2,
			supply:  math.MaxUint64,
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := ProportionalAmount(tt.shares, tt.reserve, tt.supply)
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestBootstrapShares(t *testing.T) {
	tests := []struct {
		name    string
		base    uint64
		quote   uint64
		want    uint64
		wantErr error
	}{
		{
			name:  "tinySeed",
			base:  10,
			quote: 10,
			want:  10,
		},
		{
			name:  "balancedSeed",
			base:  1_000_000,
			quote: 1_000_000,
			want:  1_000_000,
		},
		{
			name:  "unbalancedSeed",
			base:  4,
			quote: 9,
			want:  6,
		},
		{
			name:    "productOverflows",
			base:    1 << 32,
			quote:   1 << 33,
			wantErr: ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := BootstrapShares(tt.base, tt.quote)
			if tt.wantErr != nil {
				require.ErrorIs(err, tt.wantErr)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}
