// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestBatchMessageRoundTrip(t *testing.T) {
	require := require.New(t)

	msgs := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	batch, err := CreateBatchMessage(MaxReadMessageSize, msgs)
	require.NoError(err)

	parsed, err := ParseBatchMessage(MaxReadMessageSize, batch)
	require.NoError(err)
	require.Len(parsed, len(msgs))
	for i, msg := range msgs {
		require.Equal(msg, parsed[i])
	}

	_, err = ParseBatchMessage(MaxReadMessageSize, []byte{0x01})
	require.Error(err)
}

func TestMessageBuffer(t *testing.T) {
	require := require.New(t)

	mb := NewMessageBuffer(logging.NoLog{}, 16, 64, 5*time.Millisecond)

	require.NoError(mb.Send([]byte("one")))
	require.NoError(mb.Send([]byte("two")))

	select {
	case batch := <-mb.Queue:
		msgs, err := ParseBatchMessage(64, batch)
		require.NoError(err)
		require.Len(msgs, 2)
		require.Equal([]byte("one"), msgs[0])
		require.Equal([]byte("two"), msgs[1])
	case <-time.After(time.Second):
		require.Fail("timed out waiting for flush")
	}

	// A message that cannot fit in any batch is refused outright.
	err := mb.Send(make([]byte, 128))
	require.ErrorIs(err, ErrMessageTooLarge)

	// Filling the buffer flushes the pending batch immediately.
	require.NoError(mb.Send(make([]byte, 40)))
	require.NoError(mb.Send(make([]byte, 40)))
	select {
	case batch := <-mb.Queue:
		msgs, err := ParseBatchMessage(64, batch)
		require.NoError(err)
		require.Len(msgs, 1)
	case <-time.After(time.Second):
		require.Fail("timed out waiting for capacity flush")
	}

	require.NoError(mb.Close())
	require.ErrorIs(mb.Send([]byte("closed")), ErrClosed)
	require.ErrorIs(mb.Close(), ErrClosed)
}

func TestServerPublish(t *testing.T) {
	require := require.New(t)

	listeners := NewConnections()
	received := make(chan []byte, 1)
	server := New(logging.NoLog{}, NewDefaultServerConfig(), func(msg []byte, c *Connection) {
		listeners.Add(c)
		received <- msg
	})

	ts := httptest.NewServer(server)
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http")
	webCon, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(err)
	defer resp.Body.Close()

	// Register interest. Client messages travel batch framed.
	subscribe, err := CreateBatchMessage(MaxReadMessageSize, [][]byte{[]byte("sub")})
	require.NoError(err)
	require.NoError(webCon.WriteMessage(websocket.BinaryMessage, subscribe))

	select {
	case msg := <-received:
		require.Equal([]byte("sub"), msg)
	case <-time.After(time.Second):
		require.Fail("timed out waiting for callback")
	}
	require.Equal(1, server.Len())

	server.Publish([]byte("liquidity"), listeners)

	_, raw, err := webCon.ReadMessage()
	require.NoError(err)
	msgs, err := ParseBatchMessage(MaxReadMessageSize, raw)
	require.NoError(err)
	require.Len(msgs, 1)
	require.Equal([]byte("liquidity"), msgs[0])

	// Closing the client drains it from the server.
	require.NoError(webCon.Close())
	require.Eventually(func() bool {
		return server.Len() == 0
	}, time.Second, 10*time.Millisecond)

	server.Shutdown()
}
