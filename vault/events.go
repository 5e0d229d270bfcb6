// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/event"
	"github.com/lpvault/lpvault/utils"
)

const (
	LiquidityAdded   = "liquidityAdded"
	LiquidityRemoved = "liquidityRemoved"
)

// Event describes a committed liquidity change. Events are emitted after
// state is final, so a consumer can mirror reserves by replaying them.
type Event struct {
	Kind        string        `json:"kind"`
	Provider    codec.Address `json:"provider"`
	BaseAmount  uint64        `json:"baseAmount"`
	QuoteAmount uint64        `json:"quoteAmount"`
	Shares      uint64        `json:"shares"`
}

// Subscribe registers [sub] for all future liquidity events. Accept is called
// synchronously inside the emitting operation, so implementations must not
// block and must not call back into the vault with the given context.
func (v *Vault) Subscribe(sub event.Subscription[Event]) {
	v.subsMu.Lock()
	defer v.subsMu.Unlock()
	v.subs = append(v.subs, sub)
}

// Close shuts down every registered subscription.
func (v *Vault) Close() error {
	v.subsMu.Lock()
	defer v.subsMu.Unlock()
	errs := []error{}
	utils.ForEach(v.subs, func(sub event.Subscription[Event]) {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	v.subs = nil
	return errors.Join(errs...)
}

func (v *Vault) notify(ctx context.Context, e Event) {
	v.subsMu.RLock()
	defer v.subsMu.RUnlock()
	if err := event.NotifyAll(ctx, e, v.subs...); err != nil {
		v.log.Warn("event subscription failed",
			zap.String("kind", e.Kind),
			zap.Error(err),
		)
	}
}
