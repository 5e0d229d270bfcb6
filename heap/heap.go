// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package heap provides an addressable priority queue. Entries carry an
// [ids.ID] so callers can find and remove them without draining the
// queue, which is what a resting order book needs for cancels and
// updates.
package heap

import (
	"cmp"
	"container/heap"

	"github.com/ava-labs/avalanchego/ids"
)

// Entry is a queued item prioritized by [Val]. [Index] tracks the
// entry's slot and must be kept current for Remove to work; the heap
// maintains it on every swap.
type Entry[I any, V cmp.Ordered] struct {
	ID   ids.ID
	Item I
	Val  V

	Index int
}

// ordering is the raw slice the stdlib heap algorithms operate on. It
// knows nothing about ids; the lookup table lives on Heap so that
// every mutation path maintains it in one place.
type ordering[I any, V cmp.Ordered] struct {
	min  bool
	list []*Entry[I, V]
}

var _ heap.Interface = (*ordering[struct{}, uint64])(nil)

func (o *ordering[I, V]) Len() int { return len(o.list) }

func (o *ordering[I, V]) Less(i, j int) bool {
	if o.min {
		return o.list[i].Val < o.list[j].Val
	}
	return o.list[j].Val < o.list[i].Val
}

func (o *ordering[I, V]) Swap(i, j int) {
	o.list[i], o.list[j] = o.list[j], o.list[i]
	o.list[i].Index = i
	o.list[j].Index = j
}

func (o *ordering[I, V]) Push(x any) {
	o.list = append(o.list, x.(*Entry[I, V]))
}

func (o *ordering[I, V]) Pop() any {
	n := len(o.list)
	entry := o.list[n-1]
	o.list[n-1] = nil
	o.list = o.list[:n-1]
	return entry
}

// Heap is a min- or max-ordered queue of entries addressable by ID.
// It performs no synchronization; callers needing concurrent access
// must lock around it.
type Heap[I any, V cmp.Ordered] struct {
	o      *ordering[I, V]
	lookup map[ids.ID]*Entry[I, V]
}

// New returns an empty heap sized for [items] entries. A min heap
// surfaces the smallest value first, a max heap the largest.
func New[I any, V cmp.Ordered](items int, isMinHeap bool) *Heap[I, V] {
	return &Heap[I, V]{
		o: &ordering[I, V]{
			min:  isMinHeap,
			list: make([]*Entry[I, V], 0, items),
		},
		lookup: make(map[ids.ID]*Entry[I, V], items),
	}
}

// Len returns the number of queued entries.
func (h *Heap[I, V]) Len() int { return h.o.Len() }

// Get returns the entry stored under [id], if any.
func (h *Heap[I, V]) Get(id ids.ID) (*Entry[I, V], bool) {
	entry, ok := h.lookup[id]
	return entry, ok
}

// Has returns whether [id] is queued.
func (h *Heap[I, V]) Has(id ids.ID) bool {
	_, ok := h.lookup[id]
	return ok
}

// Items exposes the backing slice in heap order, not sorted order.
// The caller must not modify it.
func (h *Heap[I, V]) Items() []*Entry[I, V] {
	return h.o.list
}

// Push queues [e]. The caller sets e.Index to Len() beforehand so the
// entry lands with a correct slot even when no sift occurs.
func (h *Heap[I, V]) Push(e *Entry[I, V]) {
	h.lookup[e.ID] = e
	heap.Push(h.o, e)
}

// Pop removes and returns the best entry, or nil when empty.
func (h *Heap[I, V]) Pop() *Entry[I, V] {
	if h.o.Len() == 0 {
		return nil
	}
	entry := heap.Pop(h.o).(*Entry[I, V])
	delete(h.lookup, entry.ID)
	return entry
}

// Remove drops the entry at [index], returning it, or nil when the
// index is out of range. The remaining entries keep their ordering.
func (h *Heap[I, V]) Remove(index int) *Entry[I, V] {
	if index >= h.o.Len() {
		return nil
	}
	entry := heap.Remove(h.o, index).(*Entry[I, V])
	delete(h.lookup, entry.ID)
	return entry
}

// First returns the best entry without removing it, or nil when empty.
func (h *Heap[I, V]) First() *Entry[I, V] {
	if h.o.Len() == 0 {
		return nil
	}
	return h.o.list[0]
}
