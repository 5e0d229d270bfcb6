// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/storage"
	"github.com/lpvault/lpvault/trace"
)

func newTestLedger() *Ledger {
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	return New(logging.NoLog{}, tracer, memdb.New())
}

func TestCreateAsset(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))

	supply, err := l.Supply(ctx, asset)
	require.NoError(err)
	require.Zero(supply)

	// Asset IDs are unique
	require.ErrorIs(l.CreateAsset(ctx, asset, minter), ErrAssetExists)
}

func TestMintRequiresMinter(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	other := codec.CreateAddress(1, ids.GenerateTestID())
	holder := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))

	require.ErrorIs(l.Mint(ctx, asset, other, holder, 100), ErrNotMinter)
	require.NoError(l.Mint(ctx, asset, minter, holder, 100))

	bal, err := l.Balance(ctx, holder, asset)
	require.NoError(err)
	require.Equal(uint64(100), bal)
	supply, err := l.Supply(ctx, asset)
	require.NoError(err)
	require.Equal(uint64(100), supply)
}

func TestMintMissingAsset(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	actor := codec.CreateAddress(1, ids.GenerateTestID())
	err := l.Mint(ctx, ids.GenerateTestID(), actor, actor, 1)
	require.ErrorIs(err, ErrAssetMissing)
}

func TestMintSupplyOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	holder := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))
	require.NoError(l.Mint(ctx, asset, minter, holder, consts.MaxUint64))

	err := l.Mint(ctx, asset, minter, holder, 1)
	require.ErrorIs(err, storage.ErrInvalidSupply)

	// Failed mint leaves supply untouched
	supply, err := l.Supply(ctx, asset)
	require.NoError(err)
	require.Equal(consts.MaxUint64, supply)
}

func TestBurn(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	other := codec.CreateAddress(1, ids.GenerateTestID())
	holder := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))
	require.NoError(l.Mint(ctx, asset, minter, holder, 100))

	require.ErrorIs(l.Burn(ctx, asset, other, holder, 10), ErrNotMinter)
	require.NoError(l.Burn(ctx, asset, minter, holder, 40))

	bal, err := l.Balance(ctx, holder, asset)
	require.NoError(err)
	require.Equal(uint64(60), bal)
	supply, err := l.Supply(ctx, asset)
	require.NoError(err)
	require.Equal(uint64(60), supply)

	// Cannot burn more than the holder owns
	err = l.Burn(ctx, asset, minter, holder, 61)
	require.ErrorIs(err, ErrInsufficientFunds)
	supply, err = l.Supply(ctx, asset)
	require.NoError(err)
	require.Equal(uint64(60), supply)
}

func TestTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	bob := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))
	require.NoError(l.Mint(ctx, asset, minter, alice, 100))

	require.NoError(l.Transfer(ctx, asset, alice, bob, 30))

	abal, err := l.Balance(ctx, alice, asset)
	require.NoError(err)
	require.Equal(uint64(70), abal)
	bbal, err := l.Balance(ctx, bob, asset)
	require.NoError(err)
	require.Equal(uint64(30), bbal)

	err = l.Transfer(ctx, asset, alice, bob, 71)
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestTransferCreditOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	db := memdb.New()
	l := New(logging.NoLog{}, tracer, db)

	// Minting cannot produce balances whose sum exceeds the supply cap, so
	// seed an inconsistent state directly to exercise the credit guard.
	asset := ids.GenerateTestID()
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	bob := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(storage.SetBalance(ctx, db, alice, asset, 100))
	require.NoError(storage.SetBalance(ctx, db, bob, asset, consts.MaxUint64))

	err := l.Transfer(ctx, asset, alice, bob, 100)
	require.ErrorIs(err, storage.ErrInvalidBalance)

	// Neither side moved
	abal, err := l.Balance(ctx, alice, asset)
	require.NoError(err)
	require.Equal(uint64(100), abal)
	bbal, err := l.Balance(ctx, bob, asset)
	require.NoError(err)
	require.Equal(consts.MaxUint64, bbal)
}

func TestTransferFromEmptyAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	bob := codec.CreateAddress(1, ids.GenerateTestID())

	err := l.Transfer(ctx, asset, alice, bob, 1)
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestLockedAccountCannotSpend(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	locked := codec.CreateAddress(consts.LockID, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))

	// Funds can flow in
	require.NoError(l.Mint(ctx, asset, minter, locked, 1000))
	bal, err := l.Balance(ctx, locked, asset)
	require.NoError(err)
	require.Equal(uint64(1000), bal)

	// But never out, not even for the minter
	require.ErrorIs(l.Transfer(ctx, asset, locked, alice, 1), ErrLockedAccount)
	require.ErrorIs(l.Pull(ctx, asset, locked, alice, 1), ErrLockedAccount)
	require.ErrorIs(l.Burn(ctx, asset, minter, locked, 1), ErrLockedAccount)

	bal, err = l.Balance(ctx, locked, asset)
	require.NoError(err)
	require.Equal(uint64(1000), bal)
}

func TestPullPush(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	asset := ids.GenerateTestID()
	minter := codec.CreateAddress(1, ids.GenerateTestID())
	custody := codec.CreateAddress(consts.VaultID, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, asset, minter))
	require.NoError(l.Mint(ctx, asset, minter, alice, 500))

	require.NoError(l.Pull(ctx, asset, alice, custody, 300))
	cbal, err := l.Balance(ctx, custody, asset)
	require.NoError(err)
	require.Equal(uint64(300), cbal)

	require.NoError(l.Push(ctx, asset, custody, alice, 100))
	cbal, err = l.Balance(ctx, custody, asset)
	require.NoError(err)
	require.Equal(uint64(200), cbal)
	abal, err := l.Balance(ctx, alice, asset)
	require.NoError(err)
	require.Equal(uint64(300), abal)

	err = l.Push(ctx, asset, custody, alice, 201)
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestWrapUnwrap(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	db := memdb.New()
	l := New(logging.NoLog{}, tracer, db)

	wrapper := ids.GenerateTestID()
	custody := codec.CreateAddress(consts.VaultID, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, wrapper, custody))
	require.NoError(storage.SetBalance(ctx, db, alice, consts.NativeAssetID, 1000))

	require.NoError(l.Wrap(ctx, wrapper, custody, alice, 400))

	nbal, err := l.Balance(ctx, alice, consts.NativeAssetID)
	require.NoError(err)
	require.Equal(uint64(600), nbal)
	wbal, err := l.Balance(ctx, alice, wrapper)
	require.NoError(err)
	require.Equal(uint64(400), wbal)
	backing, err := l.Balance(ctx, custody, consts.NativeAssetID)
	require.NoError(err)
	require.Equal(uint64(400), backing)
	supply, err := l.Supply(ctx, wrapper)
	require.NoError(err)
	require.Equal(uint64(400), supply)

	require.NoError(l.Unwrap(ctx, wrapper, custody, alice, 400))

	nbal, err = l.Balance(ctx, alice, consts.NativeAssetID)
	require.NoError(err)
	require.Equal(uint64(1000), nbal)
	wbal, err = l.Balance(ctx, alice, wrapper)
	require.NoError(err)
	require.Zero(wbal)
	supply, err = l.Supply(ctx, wrapper)
	require.NoError(err)
	require.Zero(supply)
}

func TestWrapInsufficientNative(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	wrapper := ids.GenerateTestID()
	custody := codec.CreateAddress(consts.VaultID, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, wrapper, custody))

	err := l.Wrap(ctx, wrapper, custody, alice, 1)
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestWrapUnknownWrapperRefundsNative(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	db := memdb.New()
	l := New(logging.NoLog{}, tracer, db)

	custody := codec.CreateAddress(consts.VaultID, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(storage.SetBalance(ctx, db, alice, consts.NativeAssetID, 1000))

	// The wrapper asset was never created, so the mint leg fails and the
	// native leg must come back.
	err := l.Wrap(ctx, ids.GenerateTestID(), custody, alice, 400)
	require.ErrorIs(err, ErrAssetMissing)

	nbal, err := l.Balance(ctx, alice, consts.NativeAssetID)
	require.NoError(err)
	require.Equal(uint64(1000), nbal)
}

func TestUnwrapWithoutBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l := newTestLedger()

	wrapper := ids.GenerateTestID()
	custody := codec.CreateAddress(consts.VaultID, ids.GenerateTestID())
	alice := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(l.CreateAsset(ctx, wrapper, custody))

	err := l.Unwrap(ctx, wrapper, custody, alice, 1)
	require.ErrorIs(err, ErrInsufficientFunds)
}
