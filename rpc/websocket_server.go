// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/lpvault/lpvault/event"
	"github.com/lpvault/lpvault/pubsub"
	"github.com/lpvault/lpvault/utils"
	"github.com/lpvault/lpvault/vault"
)

// maxReplayedEvents bounds how many recent events a late subscriber
// receives on registration.
const maxReplayedEvents = 128

// WebSocketServer streams committed liquidity events to subscribed
// websocket clients.
type WebSocketServer struct {
	log    logging.Logger
	tracer trace.Tracer
	s      *pubsub.Server

	eventListeners *pubsub.Connections

	// replayL orders buffer inserts against listener registration so a
	// subscriber sees every event exactly once.
	replayL sync.Mutex
	replay  *utils.BoundedBuffer[[]byte]
}

// NewWebSocketServer returns the event stream handler and the pubsub
// server that should be mounted on the HTTP server.
func NewWebSocketServer(log logging.Logger, tracer trace.Tracer, maxPendingMessages int) (*WebSocketServer, *pubsub.Server, error) {
	replay, err := utils.NewBoundedBuffer[[]byte](maxReplayedEvents, nil)
	if err != nil {
		return nil, nil, err
	}
	w := &WebSocketServer{
		log:            log,
		tracer:         tracer,
		eventListeners: pubsub.NewConnections(),
		replay:         replay,
	}
	cfg := pubsub.NewDefaultServerConfig()
	cfg.MaxPendingMessages = maxPendingMessages
	w.s = pubsub.New(log, cfg, w.MessageCallback())
	return w, w.s, nil
}

// Subscription adapts the server into a vault subscription so committed
// events are broadcast as they happen. Accept must not block, so the
// broadcast only queues into per-connection buffers.
func (w *WebSocketServer) Subscription() event.Subscription[vault.Event] {
	return event.SubscriptionFunc[vault.Event]{
		AcceptF: func(_ context.Context, e vault.Event) error {
			return w.AcceptEvent(e)
		},
	}
}

func (w *WebSocketServer) AcceptEvent(e vault.Event) error {
	bytes, err := PackEventMessage(e)
	if err != nil {
		return err
	}
	msg := append([]byte{EventsMode}, bytes...)

	w.replayL.Lock()
	w.replay.Insert(msg)
	inactiveConnections := w.s.Publish(msg, w.eventListeners)
	w.replayL.Unlock()

	for _, conn := range inactiveConnections {
		w.eventListeners.Remove(conn)
	}
	return nil
}

func (w *WebSocketServer) MessageCallback() pubsub.Callback {
	return func(msgBytes []byte, c *pubsub.Connection) {
		_, span := w.tracer.Start(context.Background(), "WebSocketServer.Callback")
		defer span.End()

		if len(msgBytes) == 0 {
			w.log.Error("failed to unmarshal msg",
				zap.Int("len", len(msgBytes)),
			)
			return
		}

		switch msgBytes[0] {
		case EventsMode:
			w.replayL.Lock()
			backlog := w.replay.Items()
			for _, msg := range backlog {
				c.Send(msg)
			}
			w.eventListeners.Add(c)
			w.replayL.Unlock()
			w.log.Debug("added events listener",
				zap.Int("replayed", len(backlog)),
			)
		default:
			w.log.Error("unexpected message type",
				zap.Int("len", len(msgBytes)),
				zap.Uint8("mode", msgBytes[0]),
			)
		}
	}
}
