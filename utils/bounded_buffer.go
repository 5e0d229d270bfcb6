// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/buffer"
)

var errInvalidMaxSize = errors.New("maxSize must be greater than 0")

// BoundedBuffer keeps the [maxSize] most recent insertions, evicting
// the oldest entry once full. It is the retention window behind event
// replay on new stream subscriptions.
//
// BoundedBuffer performs no synchronization; callers hold their own
// lock.
type BoundedBuffer[T any] struct {
	inner   buffer.Deque[T]
	maxSize int
	onEvict func(T)
}

// NewBoundedBuffer returns a buffer holding up to [maxSize] entries.
// [onEvict], if non-nil, runs on each overwritten entry.
func NewBoundedBuffer[T any](maxSize int, onEvict func(T)) (*BoundedBuffer[T], error) {
	if maxSize < 1 {
		return nil, errInvalidMaxSize
	}
	if onEvict == nil {
		onEvict = func(T) {}
	}
	return &BoundedBuffer[T]{
		// One extra slot so the deque never resizes.
		inner:   buffer.NewUnboundedDeque[T](maxSize + 1),
		maxSize: maxSize,
		onEvict: onEvict,
	}, nil
}

// Insert appends [elt], evicting the oldest entry when full.
func (b *BoundedBuffer[T]) Insert(elt T) {
	if b.inner.Len() == b.maxSize {
		evicted, _ := b.inner.PopLeft()
		b.onEvict(evicted)
	}
	b.inner.PushRight(elt)
}

// Last returns the most recent insertion, if any.
func (b *BoundedBuffer[T]) Last() (T, bool) {
	return b.inner.PeekRight()
}

// Items returns the retained entries oldest first.
func (b *BoundedBuffer[T]) Items() []T {
	return b.inner.List()
}
