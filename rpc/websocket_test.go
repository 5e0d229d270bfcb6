// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/pubsub"
	"github.com/lpvault/lpvault/storage"
	"github.com/lpvault/lpvault/trace"
	"github.com/lpvault/lpvault/vault"
)

func TestEventMessageRoundTrip(t *testing.T) {
	require := require.New(t)

	e := vault.Event{
		Kind:        vault.LiquidityAdded,
		Provider:    codec.CreateAddress(1, ids.GenerateTestID()),
		BaseAmount:  4_000_000,
		QuoteAmount: 1_000_000,
		Shares:      1_999_000,
	}
	msg, err := PackEventMessage(e)
	require.NoError(err)
	decoded, err := UnpackEventMessage(msg)
	require.NoError(err)
	require.Equal(e, decoded)

	_, err = UnpackEventMessage(msg[:len(msg)-1])
	require.Error(err)
}

func TestWebSocketEvents(t *testing.T) {
	require := require.New(t)
	env := newRPCTestEnv(t)
	ctx := context.TODO()

	tracer, _ := trace.New(&trace.Config{Enabled: false})
	w, ps, err := NewWebSocketServer(logging.NoLog{}, tracer, pubsub.MaxPendingMessages)
	require.NoError(err)
	env.c.vault.Subscribe(w.Subscription())

	ts := httptest.NewServer(ps)
	defer ts.Close()

	cli, err := NewWebSocketClient(ts.URL, time.Second, 16, pubsub.MaxReadMessageSize)
	require.NoError(err)
	require.NoError(cli.RegisterEvents())

	// Registration is asynchronous; emitting before it lands would drop
	// the event.
	require.Eventually(func() bool {
		return w.eventListeners.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	_, err = env.c.vault.Deposit(ctx, env.alice, 4_000_000, 1_000_000)
	require.NoError(err)

	eventCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	e, err := cli.ListenForEvent(eventCtx)
	require.NoError(err)
	require.Equal(vault.LiquidityAdded, e.Kind)
	require.Equal(env.alice, e.Provider)
	require.Equal(uint64(4_000_000), e.BaseAmount)
	require.Equal(uint64(1_000_000), e.QuoteAmount)
	require.Equal(uint64(2_000_000-storage.MinimumLiquidity), e.Shares)

	_, _, err = env.c.vault.Withdraw(ctx, env.alice, 500_000)
	require.NoError(err)
	e, err = cli.ListenForEvent(eventCtx)
	require.NoError(err)
	require.Equal(vault.LiquidityRemoved, e.Kind)
	require.Equal(uint64(500_000), e.Shares)

	// A subscriber arriving after the fact receives the buffered history
	// in order before any live events.
	late, err := NewWebSocketClient(ts.URL, time.Second, 16, pubsub.MaxReadMessageSize)
	require.NoError(err)
	require.NoError(late.RegisterEvents())
	e, err = late.ListenForEvent(eventCtx)
	require.NoError(err)
	require.Equal(vault.LiquidityAdded, e.Kind)
	e, err = late.ListenForEvent(eventCtx)
	require.NoError(err)
	require.Equal(vault.LiquidityRemoved, e.Kind)

	require.NoError(cli.Close())
	require.NoError(late.Close())
	ps.Shutdown()
}
