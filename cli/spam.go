// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"time"

	"github.com/lpvault/lpvault/pool"
	"github.com/lpvault/lpvault/utils"
)

// Spam floods the service with deposit/withdraw round trips signed by
// the default key. Each round deposits the prompted amounts and then
// redeems the minted shares, so outside of the bootstrap lock the pool
// ends where it started.
func (h *Handler) Spam(ctx context.Context) error {
	addr, factory, client, err := h.DefaultActor()
	if err != nil {
		return err
	}

	rounds, err := h.PromptInt("rounds")
	if err != nil {
		return err
	}
	clients, err := h.PromptInt("concurrent clients")
	if err != nil {
		return err
	}
	baseAmount, err := h.PromptUint64("base per deposit")
	if err != nil {
		return err
	}
	quoteAmount, err := h.PromptUint64("quote per deposit")
	if err != nil {
		return err
	}
	cont, err := h.PromptContinue()
	if !cont || err != nil {
		return err
	}
	if err := h.CloseDatabase(); err != nil {
		return err
	}

	baseAsset, _, _, _, err := client.Reserves(ctx)
	if err != nil {
		return err
	}
	balance, err := client.Balance(ctx, addr, baseAsset)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{yellow}}issuing from:{{/}} %s {{yellow}}base balance:{{/}} %d\n",
		addr,
		balance,
	)

	// Followup functions run serially in enqueue order, so the
	// counters need no locking.
	var (
		issued int
		minted uint64
		start  = time.Now()
	)
	p := pool.New(clients, rounds)
	for i := 0; i < rounds; i++ {
		p.Go(func() (func(), error) {
			shares, err := client.Deposit(ctx, factory, baseAmount, quoteAmount)
			if err != nil {
				return nil, err
			}
			if _, _, err := client.Withdraw(ctx, factory, shares); err != nil {
				return nil, err
			}
			return func() {
				issued++
				minted += shares
				if issued%100 == 0 {
					utils.Outf("{{yellow}}issued:{{/}} %d\n", issued)
				}
			}, nil
		})
	}
	workers, err := p.Wait()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	utils.Outf(
		"{{green}}rounds:{{/}} %d {{green}}workers:{{/}} %d {{green}}shares cycled:{{/}} %d {{green}}elapsed:{{/}} %s {{green}}rounds/s:{{/}} %.2f\n",
		issued,
		workers,
		minted,
		elapsed,
		float64(issued)/elapsed.Seconds(),
	)
	_, _, baseReserve, quoteReserve, err := client.Reserves(ctx)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{green}}final reserves:{{/}} %d/%d\n",
		baseReserve,
		quoteReserve,
	)
	return nil
}
