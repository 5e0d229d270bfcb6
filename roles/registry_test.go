// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roles

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/storage"
	"github.com/lpvault/lpvault/trace"
)

func TestGrantRequiresAdmin(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	db := memdb.New()
	r := New(logging.NoLog{}, tracer, db)

	admin := codec.CreateAddress(1, ids.GenerateTestID())
	maker := codec.CreateAddress(1, ids.GenerateTestID())

	// Nobody is admin yet
	err := r.Grant(ctx, admin, storage.MarketMakerRole, maker)
	require.ErrorIs(err, ErrNotAdmin)

	// Seed the initial admin the way genesis does
	require.NoError(storage.GrantRole(ctx, db, storage.AdminRole, admin))

	require.NoError(r.Grant(ctx, admin, storage.MarketMakerRole, maker))
	has, err := r.Has(ctx, storage.MarketMakerRole, maker)
	require.NoError(err)
	require.True(has)

	// Holding market-maker does not make one an admin
	err = r.Grant(ctx, maker, storage.MarketMakerRole, maker)
	require.ErrorIs(err, ErrNotAdmin)
}

func TestRevoke(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	db := memdb.New()
	r := New(logging.NoLog{}, tracer, db)

	admin := codec.CreateAddress(1, ids.GenerateTestID())
	maker := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(storage.GrantRole(ctx, db, storage.AdminRole, admin))
	require.NoError(r.Grant(ctx, admin, storage.MarketMakerRole, maker))

	require.ErrorIs(r.Revoke(ctx, maker, storage.MarketMakerRole, maker), ErrNotAdmin)

	require.NoError(r.Revoke(ctx, admin, storage.MarketMakerRole, maker))
	has, err := r.Has(ctx, storage.MarketMakerRole, maker)
	require.NoError(err)
	require.False(has)

	// Revoking an absent role is a no-op
	require.NoError(r.Revoke(ctx, admin, storage.MarketMakerRole, maker))
}

func TestAdminCanManageAdmins(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tracer, _ := trace.New(&trace.Config{Enabled: false})
	db := memdb.New()
	r := New(logging.NoLog{}, tracer, db)

	admin := codec.CreateAddress(1, ids.GenerateTestID())
	second := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(storage.GrantRole(ctx, db, storage.AdminRole, admin))

	require.NoError(r.Grant(ctx, admin, storage.AdminRole, second))
	has, err := r.Has(ctx, storage.AdminRole, second)
	require.NoError(err)
	require.True(has)

	// The new admin can act immediately
	maker := codec.CreateAddress(1, ids.GenerateTestID())
	require.NoError(r.Grant(ctx, second, storage.MarketMakerRole, maker))
}
