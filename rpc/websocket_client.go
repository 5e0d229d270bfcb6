// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"

	"github.com/lpvault/lpvault/pubsub"
	"github.com/lpvault/lpvault/vault"
)

type WebSocketClient struct {
	conn *websocket.Conn

	cl           sync.Once
	mb           *pubsub.MessageBuffer
	writeStopped chan struct{}
	readStopped  chan struct{}

	pendingEvents chan []byte

	errl sync.Once
	err  error
}

// NewWebSocketClient dials the event stream at [uri] and starts the
// read and write pumps.
func NewWebSocketClient(uri string, handshakeTimeout time.Duration, pending int, maxSize int) (*WebSocketClient, error) {
	uri = strings.ReplaceAll(uri, "http://", "ws://")
	uri = strings.ReplaceAll(uri, "https://", "wss://")
	uri = strings.TrimSuffix(uri, "/")
	uri += WebsocketEndpoint

	dialer := &websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   maxSize,
		WriteBufferSize:  maxSize,
	}
	conn, resp, err := dialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	wc := &WebSocketClient{
		conn:          conn,
		mb:            pubsub.NewMessageBuffer(logging.NoLog{}, pending, maxSize, pubsub.MaxMessageWait),
		writeStopped:  make(chan struct{}),
		readStopped:   make(chan struct{}),
		pendingEvents: make(chan []byte, pending),
	}
	go wc.readPump(maxSize)
	go wc.writePump()
	return wc, nil
}

func (c *WebSocketClient) readPump(maxSize int) {
	defer func() {
		close(c.readStopped)
		_ = c.conn.Close()
	}()

	for {
		_, msgBatch, err := c.conn.ReadMessage()
		if err != nil {
			c.setErr(err)
			return
		}
		msgs, err := pubsub.ParseBatchMessage(maxSize, msgBatch)
		if err != nil {
			c.setErr(err)
			return
		}
		for _, msg := range msgs {
			if len(msg) == 0 {
				continue
			}
			switch msg[0] {
			case EventsMode:
				c.pendingEvents <- msg[1:]
			default:
			}
		}
	}
}

func (c *WebSocketClient) writePump() {
	defer func() {
		close(c.writeStopped)
		_ = c.conn.Close()
	}()

	for msg := range c.mb.Queue {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			c.setErr(err)
			return
		}
	}
}

func (c *WebSocketClient) setErr(err error) {
	c.errl.Do(func() {
		c.err = err
	})
}

// RegisterEvents subscribes the connection to the liquidity event
// stream.
func (c *WebSocketClient) RegisterEvents() error {
	return c.mb.Send([]byte{EventsMode})
}

// ListenForEvent blocks until the next liquidity event arrives, the
// connection fails, or [ctx] is canceled.
func (c *WebSocketClient) ListenForEvent(ctx context.Context) (vault.Event, error) {
	select {
	case msg := <-c.pendingEvents:
		return UnpackEventMessage(msg)
	case <-c.readStopped:
		return vault.Event{}, c.err
	case <-ctx.Done():
		return vault.Event{}, ctx.Err()
	}
}

// Close flushes queued frames, stops the pumps, and tears down the
// connection.
func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		_ = c.mb.Close()
		<-c.writeStopped
		err = c.conn.Close()
	})
	return err
}
