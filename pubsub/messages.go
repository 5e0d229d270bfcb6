// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
)

// CreateBatchMessage frames [msgs] as a single length-prefixed batch
// no larger than [maxSize].
func CreateBatchMessage(maxSize int, msgs [][]byte) ([]byte, error) {
	size := consts.IntLen
	for _, msg := range msgs {
		size += codec.BytesLen(msg)
	}
	p := codec.NewWriter(size, maxSize)
	p.PackInt(len(msgs))
	for _, msg := range msgs {
		p.PackBytes(msg)
	}
	return p.Bytes(), p.Err()
}

// ParseBatchMessage splits a batch framed by CreateBatchMessage back
// into its messages.
func ParseBatchMessage(maxSize int, msg []byte) ([][]byte, error) {
	p := codec.NewReader(msg, maxSize)
	msgLen := p.UnpackInt(true)
	msgs := make([][]byte, msgLen)
	for i := 0; i < msgLen; i++ {
		p.UnpackBytes(-1, true, &msgs[i])
	}
	return msgs, p.Err()
}
