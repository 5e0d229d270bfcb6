// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
)

// Connections is a concurrency-safe set of connections. The server
// tracks its live sessions in one and publishers keep their own for
// per-topic subscriber lists.
type Connections struct {
	lock  sync.RWMutex
	conns set.Set[*Connection]
}

func NewConnections() *Connections {
	return &Connections{}
}

// Add registers [conn]. Adding an already present connection is a
// no-op.
func (c *Connections) Add(conn *Connection) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.conns.Add(conn)
}

// Remove drops [conn] if present.
func (c *Connections) Remove(conn *Connection) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.conns.Remove(conn)
}

// Has returns whether [conn] is in the set.
func (c *Connections) Has(conn *Connection) bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conns.Contains(conn)
}

// Conns returns a snapshot of the set's members.
func (c *Connections) Conns() []*Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conns.List()
}

// Len returns the number of connections in the set.
func (c *Connections) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conns.Len()
}
