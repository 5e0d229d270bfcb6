// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Callback is invoked once per decoded message with the connection it
// arrived on.
type Callback func([]byte, *Connection)

// Connection is one upgraded websocket session. All reads happen on a
// single goroutine and all writes on another, so neither path needs
// further locking.
type Connection struct {
	srv  *Server
	conn *websocket.Conn

	// Outbound messages accumulate here until the write pump drains
	// them as a batch frame.
	mb *MessageBuffer

	active atomic.Bool
}

func (c *Connection) isActive() bool {
	return c.active.Load()
}

func (c *Connection) deactivate() {
	c.active.Store(false)
	_ = c.mb.Close()
}

// Send queues [msg] for delivery and reports whether it was accepted.
// Messages to a deactivated or saturated connection are dropped.
func (c *Connection) Send(msg []byte) bool {
	if !c.isActive() {
		return false
	}
	if err := c.mb.Send(msg); err != nil {
		c.srv.log.Debug("unable to send message", zap.Error(err))
		return false
	}
	return true
}

func (c *Connection) refreshReadDeadline() error {
	return c.conn.SetReadDeadline(time.Now().Add(c.srv.config.PongWait))
}

// readPump owns every read on the connection. Incoming frames are
// batches; each decoded message is handed to the server callback.
func (c *Connection) readPump() {
	defer func() {
		c.srv.removeConnection(c)
		c.deactivate()

		// The write pump also closes the connection, so one of the
		// two calls always errors.
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(c.srv.config.MaxReadMessageSize))
	if err := c.refreshReadDeadline(); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.refreshReadDeadline()
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.srv.log.Debug("unexpected close in websockets",
					zap.Error(err),
				)
			}
			return
		}
		if c.srv.callback == nil {
			continue
		}
		msgs, err := ParseBatchMessage(c.srv.config.MaxReadMessageSize, raw)
		if err != nil {
			c.srv.log.Debug("unable to read websockets message",
				zap.Error(err),
			)
			return
		}
		for _, msg := range msgs {
			c.srv.callback(msg, c)
		}
	}
}

// write pushes one frame under a fresh deadline.
func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.srv.config.WriteWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, payload)
}

// writePump owns every write on the connection: queued batches plus
// the keepalive pings that hold the peer's read deadline open.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.srv.config.PingPeriod)
	defer func() {
		c.srv.removeConnection(c)
		c.deactivate()
		ticker.Stop()

		// The read pump also closes the connection, so one of the
		// two calls always errors.
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.mb.Queue:
			if !ok {
				// The buffer closed behind us. Say goodbye to the
				// peer before hanging up.
				_ = c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(websocket.BinaryMessage, message); err != nil {
				c.srv.log.Debug("closing the connection",
					zap.String("reason", "failed to write message"),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
