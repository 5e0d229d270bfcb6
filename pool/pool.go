// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"sync"

	uatomic "go.uber.org/atomic"
)

type job struct {
	seq int
	run func() (func(), error)
}

// Pool executes jobs on a bounded set of goroutines. A job may return a
// followup function; followups run serially in enqueue order no matter
// which worker finished first, so callers can aggregate results without
// locking.
type Pool struct {
	maxWorkers int
	spawned    int
	workers    sync.WaitGroup
	jobs       chan job

	closeOnce sync.Once
	enqueued  int

	followL sync.Mutex
	pending map[int]func()
	next    int

	err uatomic.Error
}

// New returns a pool that runs up to [workers] goroutines and holds up
// to [backlog] jobs before Go blocks.
func New(workers, backlog int) *Pool {
	p := &Pool{
		maxWorkers: workers,
		jobs:       make(chan job, backlog),
		pending:    make(map[int]func()),
	}
	// There is always at least one worker, otherwise Wait on an
	// empty pool would still need a special case.
	p.spawn()
	return p
}

func (p *Pool) spawn() {
	p.spawned++
	p.workers.Add(1)
	go func() {
		defer p.workers.Done()
		for j := range p.jobs {
			p.process(j)
		}
	}()
}

func (p *Pool) process(j job) {
	if p.err.Load() != nil {
		return
	}
	f, err := j.run()
	if err != nil {
		p.err.CompareAndSwap(nil, err)
		return
	}

	// Followups run with the lock held so a slow followup cannot be
	// overtaken by one enqueued after it.
	p.followL.Lock()
	defer p.followL.Unlock()
	p.pending[j.seq] = f
	for {
		f, ok := p.pending[p.next]
		if !ok {
			return
		}
		delete(p.pending, p.next)
		p.next++
		if f != nil {
			f()
		}
	}
}

// Go enqueues [f] for execution. Workers are spawned lazily: only when
// the backlog is full and the pool is below its concurrency limit does a
// new goroutine start. Go must not be called concurrently or after Wait.
//
// If the pool has already errored, Go drops the job; enqueued jobs after
// a failure may never execute.
func (p *Pool) Go(f func() (func(), error)) {
	if p.err.Load() != nil {
		return
	}
	j := job{seq: p.enqueued, run: f}
	p.enqueued++

	select {
	case p.jobs <- j:
		return
	default:
	}
	if p.spawned < p.maxWorkers {
		p.spawn()
	}
	p.jobs <- j
}

// Wait blocks until every enqueued job and followup has finished and
// returns how many workers were spawned along with the first error. It
// is safe to call Wait more than once.
func (p *Pool) Wait() (int, error) {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.workers.Wait()
	return p.spawned, p.err.Load()
}
