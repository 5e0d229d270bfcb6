// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const pebbleByteOverhead = 8

var (
	_ database.Database = (*Database)(nil)
	_ database.Batch    = (*batch)(nil)
	_ database.Iterator = (*iterator)(nil)

	errInvalidOperation = errors.New("invalid operation")
)

type Database struct {
	db      *pebble.DB
	metrics *metrics

	closing   chan struct{}
	closeOnce sync.Once

	lock   sync.RWMutex
	closed bool

	writeOptions *pebble.WriteOptions
}

type Config struct {
	CacheSize                   int    // B
	BytesPerSync                int    // B
	WALBytesPerSync             int    // B (0 disables)
	MemTableStopWritesThreshold int    // num tables
	MemTableSize                uint64 // B
	MaxOpenFiles                int
	MaxConcurrentCompactions    int
	Sync                        bool
}

func NewDefaultConfig() *Config {
	return &Config{
		CacheSize:                   units.GiB,
		BytesPerSync:                units.MiB,
		WALBytesPerSync:             units.MiB,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * units.MiB,
		MaxOpenFiles:                4_096,
		MaxConcurrentCompactions:    1,
		Sync:                        false,
	}
}

func New(file string, cfg *Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	db := &Database{
		metrics: metrics,
		closing: make(chan struct{}),
	}
	if cfg.Sync {
		db.writeOptions = pebble.Sync
	} else {
		db.writeOptions = pebble.NoSync
	}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.MaxConcurrentCompactions },
		WALBytesPerSync:             cfg.WALBytesPerSync,
		EventListener: &pebble.EventListener{
			CompactionBegin: db.onCompactionBegin,
			CompactionEnd:   db.onCompactionEnd,
			WriteStallBegin: db.onWriteStallBegin,
			WriteStallEnd:   db.onWriteStallEnd,
		},
	}
	// Seek compaction fights the random read pattern of state access.
	opts.Experimental.ReadSamplingMultiplier = -1

	pdb, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	db.db = pdb
	go db.collectMetrics()
	return db, registry, nil
}

func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	db.closeOnce.Do(func() {
		close(db.closing)
	})
	return updateError(db.db.Close())
}

func (db *Database) HealthCheck(_ context.Context) (interface{}, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	return nil, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}

	start := time.Now()
	data, closer, err := db.db.Get(key)
	if err != nil {
		return nil, updateError(err)
	}
	// [data] is only valid until the closer is released.
	ret := slices.Clone(data)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	return ret, nil
}

func (db *Database) Put(key []byte, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return updateError(db.db.Set(key, value, db.writeOptions))
}

func (db *Database) Delete(key []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return updateError(db.db.Delete(key, db.writeOptions))
}

func (db *Database) Compact(start []byte, end []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	if end == nil {
		// A nil [end] means after every key here but before every key to
		// pebble, so substitute the greatest key in the database.
		it, err := db.db.NewIter(&pebble.IterOptions{})
		if err != nil {
			return updateError(err)
		}
		if !it.Last() {
			return it.Close()
		}
		end = slices.Clone(it.Key())
		if err := it.Close(); err != nil {
			return err
		}
	}
	return updateError(db.db.Compact(start, end, true))
}

func (db *Database) NewBatch() database.Batch {
	return &batch{
		db:    db,
		batch: db.db.NewBatch(),
	}
}

type batch struct {
	db    *Database
	batch *pebble.Batch
	size  int

	written bool
}

func (b *batch) Put(key []byte, value []byte) error {
	b.size += len(key) + len(value) + pebbleByteOverhead
	return b.batch.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	b.size += len(key) + pebbleByteOverhead
	return b.batch.Delete(key, nil)
}

func (b *batch) Size() int { return b.size }

func (b *batch) Write() error {
	b.db.lock.RLock()
	defer b.db.lock.RUnlock()

	if b.db.closed {
		return database.ErrClosed
	}
	if b.written {
		// pebble batches cannot be committed twice, so apply this one to
		// a fresh batch and commit that instead.
		newBatch := b.db.db.NewBatch()
		if err := newBatch.Apply(b.batch, nil); err != nil {
			return err
		}
		b.batch = newBatch
	}
	b.written = true
	return updateError(b.batch.Commit(b.db.writeOptions))
}

func (b *batch) Reset() {
	b.batch.Reset()
	b.written = false
	b.size = 0
}

func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	reader := b.batch.Reader()
	for {
		kind, k, v, ok := reader.Next()
		if !ok {
			return nil
		}
		switch kind {
		case pebble.InternalKeyKindSet:
			if err := w.Put(k, v); err != nil {
				return err
			}
		case pebble.InternalKeyKindDelete:
			if err := w.Delete(k); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %v", errInvalidOperation, kind)
		}
	}
}

func (b *batch) Inner() database.Batch { return b }

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, nil)
}

func (db *Database) NewIteratorWithStart(start []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(start, nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, prefix)
}

func (db *Database) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return &iterator{closed: true, err: database.ErrClosed}
	}
	it, err := db.db.NewIter(keyRange(start, prefix))
	if err != nil {
		return &iterator{closed: true, err: updateError(err)}
	}
	return &iterator{
		db:   db,
		iter: it,
	}
}

type iterator struct {
	db   *Database
	iter *pebble.Iterator

	initialized bool
	closed      bool
	err         error

	valid   bool
	nextKey []byte
	nextVal []byte
}

func (it *iterator) Next() bool {
	if it.closed {
		it.valid = false
		return false
	}

	it.db.lock.RLock()
	defer it.db.lock.RUnlock()

	if it.db.closed {
		it.valid = false
		it.err = database.ErrClosed
		return false
	}

	var hasNext bool
	if !it.initialized {
		hasNext = it.iter.First()
		it.initialized = true
	} else {
		hasNext = it.iter.Next()
	}
	if hasNext {
		// pebble only guarantees the key and value until the iterator
		// advances.
		it.nextKey = slices.Clone(it.iter.Key())
		it.nextVal = slices.Clone(it.iter.Value())
	}
	it.valid = hasNext
	return hasNext
}

func (it *iterator) Error() error {
	if it.err != nil {
		return it.err
	}
	if it.closed {
		return nil
	}
	return updateError(it.iter.Error())
}

func (it *iterator) Key() []byte {
	if !it.valid {
		return nil
	}
	return it.nextKey
}

func (it *iterator) Value() []byte {
	if !it.valid {
		return nil
	}
	return it.nextVal
}

func (it *iterator) Release() {
	if it.closed {
		return
	}
	it.closed = true
	it.valid = false
	_ = it.iter.Close()
}

// keyRange bounds an iteration to [prefix] while honoring a [start]
// position inside it.
func keyRange(start, prefix []byte) *pebble.IterOptions {
	opt := &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixToUpperBound(prefix),
	}
	if bytes.Compare(start, prefix) == 1 {
		opt.LowerBound = start
	}
	return opt
}

// prefixToUpperBound returns the smallest key strictly greater than
// every key with [prefix], or nil if no such key exists.
func prefixToUpperBound(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xFF {
			upperBound := make([]byte, i+1)
			copy(upperBound, prefix)
			upperBound[i]++
			return upperBound
		}
	}
	return nil
}

func updateError(err error) error {
	switch err {
	case pebble.ErrNotFound:
		return database.ErrNotFound
	case pebble.ErrClosed:
		return database.ErrClosed
	default:
		return err
	}
}
