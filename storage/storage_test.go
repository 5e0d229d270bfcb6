// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/codec"
)

func TestBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	owner := codec.CreateAddress(0, ids.GenerateTestID())
	asset := ids.GenerateTestID()

	bal, err := GetBalance(ctx, db, owner, asset)
	require.NoError(err)
	require.Zero(bal)

	require.NoError(SetBalance(ctx, db, owner, asset, 100))
	bal, err = GetBalance(ctx, db, owner, asset)
	require.NoError(err)
	require.Equal(uint64(100), bal)

	require.NoError(AddBalance(ctx, db, owner, asset, 50, true))
	bal, err = GetBalance(ctx, db, owner, asset)
	require.NoError(err)
	require.Equal(uint64(150), bal)

	require.NoError(SubBalance(ctx, db, owner, asset, 120))
	bal, err = GetBalance(ctx, db, owner, asset)
	require.NoError(err)
	require.Equal(uint64(30), bal)

	// Subtracting the full balance deletes the record.
	require.NoError(SubBalance(ctx, db, owner, asset, 30))
	has, err := db.Has(BalanceKey(owner, asset))
	require.NoError(err)
	require.False(has)
}

func TestBalanceNoCreate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	owner := codec.CreateAddress(0, ids.GenerateTestID())
	asset := ids.GenerateTestID()

	require.NoError(AddBalance(ctx, db, owner, asset, 50, false))
	bal, err := GetBalance(ctx, db, owner, asset)
	require.NoError(err)
	require.Zero(bal)
}

func TestBalanceOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	owner := codec.CreateAddress(0, ids.GenerateTestID())
	asset := ids.GenerateTestID()

	require.NoError(SetBalance(ctx, db, owner, asset, math.MaxUint64))
	require.ErrorIs(AddBalance(ctx, db, owner, asset, 1, true), ErrInvalidBalance)
}

func TestBalanceUnderflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	owner := codec.CreateAddress(0, ids.GenerateTestID())
	asset := ids.GenerateTestID()

	require.NoError(SetBalance(ctx, db, owner, asset, 10))
	require.ErrorIs(SubBalance(ctx, db, owner, asset, 11), ErrInvalidBalance)
}

func TestAsset(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())

	exists, _, _, err := GetAsset(ctx, db, asset)
	require.NoError(err)
	require.False(exists)

	require.NoError(SetAsset(ctx, db, asset, 1_000_000, minter))
	exists, supply, gotMinter, err := GetAsset(ctx, db, asset)
	require.NoError(err)
	require.True(exists)
	require.Equal(uint64(1_000_000), supply)
	require.Equal(minter, gotMinter)
}

func TestReserves(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	base, quote, err := GetReserves(ctx, db)
	require.NoError(err)
	require.Zero(base)
	require.Zero(quote)

	require.NoError(SetReserves(ctx, db, 123, 456))
	base, quote, err = GetReserves(ctx, db)
	require.NoError(err)
	require.Equal(uint64(123), base)
	require.Equal(uint64(456), quote)
}

func TestOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	orderID := ids.GenerateTestID()
	owner := codec.CreateAddress(0, ids.GenerateTestID())

	exists, _, _, _, _, err := GetOrder(ctx, db, orderID)
	require.NoError(err)
	require.False(exists)

	require.NoError(SetOrder(ctx, db, orderID, 0x1, 500, 1_000, owner))
	exists, side, limit, remaining, gotOwner, err := GetOrder(ctx, db, orderID)
	require.NoError(err)
	require.True(exists)
	require.Equal(byte(0x1), side)
	require.Equal(uint64(500), limit)
	require.Equal(uint64(1_000), remaining)
	require.Equal(owner, gotOwner)

	require.NoError(DeleteOrder(ctx, db, orderID))
	exists, _, _, _, _, err = GetOrder(ctx, db, orderID)
	require.NoError(err)
	require.False(exists)
}

func TestGetOpenOrders(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	owner := codec.CreateAddress(0, ids.GenerateTestID())
	seen := map[ids.ID]uint64{}
	for i := uint64(1); i <= 5; i++ {
		orderID := ids.GenerateTestID()
		require.NoError(SetOrder(ctx, db, orderID, byte(i%2), i*10, i*100, owner))
		seen[orderID] = i * 100
	}
	// Unrelated records must not leak into the scan.
	require.NoError(SetBalance(ctx, db, owner, ids.GenerateTestID(), 7))

	records, err := GetOpenOrders(ctx, db)
	require.NoError(err)
	require.Len(records, 5)
	for _, r := range records {
		require.Equal(seen[r.ID], r.Remaining)
		require.Equal(owner, r.Owner)
	}
}

func TestRoles(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	owner := codec.CreateAddress(0, ids.GenerateTestID())

	ok, err := HasRole(ctx, db, MarketMakerRole, owner)
	require.NoError(err)
	require.False(ok)

	require.NoError(GrantRole(ctx, db, MarketMakerRole, owner))
	ok, err = HasRole(ctx, db, MarketMakerRole, owner)
	require.NoError(err)
	require.True(ok)

	// Granting one role must not grant another.
	ok, err = HasRole(ctx, db, AdminRole, owner)
	require.NoError(err)
	require.False(ok)

	require.NoError(RevokeRole(ctx, db, MarketMakerRole, owner))
	ok, err = HasRole(ctx, db, MarketMakerRole, owner)
	require.NoError(err)
	require.False(ok)
}

func TestGenesisRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	exists, _, err := GetGenesis(ctx, db)
	require.NoError(err)
	require.False(exists)

	doc := []byte(`{"baseAsset":"coffee"}`)
	require.NoError(SetGenesis(ctx, db, doc))
	exists, v, err := GetGenesis(ctx, db)
	require.NoError(err)
	require.True(exists)
	require.Equal(doc, v)
}
