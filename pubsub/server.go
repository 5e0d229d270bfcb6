// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ServerConfig struct {
	ReadBufferSize     int
	WriteBufferSize    int
	MaxPendingMessages int
	MaxReadMessageSize int
	MaxMessageWait     time.Duration
	WriteWait          time.Duration
	PongWait           time.Duration
	PingPeriod         time.Duration
}

func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:     ReadBufferSize,
		WriteBufferSize:    WriteBufferSize,
		MaxPendingMessages: MaxPendingMessages,
		MaxReadMessageSize: MaxReadMessageSize,
		MaxMessageWait:     MaxMessageWait,
		WriteWait:          WriteWait,
		PongWait:           PongWait,
		PingPeriod:         PingPeriod,
	}
}

// Server maintains the set of active websocket clients. It only
// implements http.Handler; the owning HTTP server manages the
// listener lifecycle.
type Server struct {
	log      logging.Logger
	config   *ServerConfig
	callback Callback
	upgrader websocket.Upgrader

	lock  sync.Mutex
	conns *Connections
}

// New returns a new Server instance. The callback function [callback]
// is called by the server in response to incoming messages if not nil.
func New(log logging.Logger, config *ServerConfig, callback Callback) *Server {
	return &Server{
		log:      log,
		config:   config,
		callback: callback,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns: NewConnections(),
	}
}

// ServeHTTP upgrades the request to a websocket connection and starts
// its read and write pumps.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	s.addConnection(&Connection{
		srv:  s,
		conn: wsConn,
		mb:   NewMessageBuffer(s.log, s.config.MaxPendingMessages, s.config.MaxReadMessageSize, s.config.MaxMessageWait),
	})
}

// Publish sends [msg] to every connection in [toConns] that is still
// registered with the server and returns the ones that are not, so the
// caller can prune its subscription set.
func (s *Server) Publish(msg []byte, toConns *Connections) []*Connection {
	var inactive []*Connection
	for _, conn := range toConns.Conns() {
		if !s.conns.Has(conn) {
			inactive = append(inactive, conn)
			continue
		}
		if !conn.Send(msg) {
			s.log.Verbo("dropping message to subscribed connection due to too many pending messages")
		}
	}
	return inactive
}

func (s *Server) addConnection(conn *Connection) {
	s.lock.Lock()
	defer s.lock.Unlock()

	conn.active.Store(true)
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

func (s *Server) removeConnection(conn *Connection) {
	s.conns.Remove(conn)
}

// Len returns the number of active connections.
func (s *Server) Len() int {
	return s.conns.Len()
}

// Shutdown deactivates every connection. In-flight pumps observe the
// closed buffers and exit.
func (s *Server) Shutdown() {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, conn := range s.conns.Conns() {
		conn.deactivate()
	}
}
