// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultmath

import (
	"math/bits"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// MulDiv returns floor((a * b) / denom) with the intermediate product
// tracked at 128 bits, so a*b may exceed a uint64 as long as the
// quotient fits. Returns ErrOverflow when the quotient does not fit
// and ErrDivZero when denom is zero.
func MulDiv(a uint64, b uint64, denom uint64) (uint64, error) {
	if denom == 0 {
		return 0, ErrDivZero
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= denom {
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, denom)
	return q, nil
}

// ProportionalShares returns the shares owed for contributing
// [contributed] units of an asset against a pool holding [reserve]
// units with [supply] shares outstanding:
//
//	floor(contributed * supply / reserve)
func ProportionalShares(contributed uint64, supply uint64, reserve uint64) (uint64, error) {
	return MulDiv(contributed, supply, reserve)
}

// ProportionalAmount returns the asset units redeemable for [shares]
// against a pool holding [reserve] units with [supply] shares
// outstanding:
//
//	floor(shares * reserve / supply)
func ProportionalAmount(shares uint64, reserve uint64, supply uint64) (uint64, error) {
	return MulDiv(shares, reserve, supply)
}

// BootstrapShares returns the geometric mean of the two deposit
// amounts seeding an empty pool. The product is computed with checked
// arithmetic; seeds whose product exceeds a uint64 are rejected
// rather than priced on a truncated value.
func BootstrapShares(base uint64, quote uint64) (uint64, error) {
	k, err := smath.Mul(base, quote)
	if err != nil {
		return 0, ErrOverflow
	}
	return Sqrt(k), nil
}

// https://github.com/Uniswap/v2-core/blob/ee547b17853e71ed4e0101ccfd52e70d5acded58/contracts/libraries/Math.sol#L10
func Sqrt(y uint64) uint64 {
	if y > 3 {
		z := y
		x := (y / 2) + 1
		for x < z {
			z = x
			x = (y/x + x) / 2
		}
		return z
	} else if y != 0 {
		return 1
	}
	return 0
}
