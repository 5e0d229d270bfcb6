// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"

	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/pubsub"
	"github.com/lpvault/lpvault/rpc"
	"github.com/lpvault/lpvault/utils"
)

// ImportEndpoint stores a service URI and makes it the default.
// Re-importing a known URI only refreshes the default.
func (h *Handler) ImportEndpoint() error {
	uri, err := h.PromptString("uri", 1, consts.MaxInt)
	if err != nil {
		return err
	}
	overwrite, err := h.PromptBool("overwrite stored endpoints")
	if err != nil {
		return err
	}
	if overwrite {
		oldEndpoints, err := h.DeleteEndpoints()
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}deleted stored endpoints:{{/}} %d\n", len(oldEndpoints))
	}
	if err := h.StoreEndpoint(uri); err != nil && !errors.Is(err, ErrDuplicate) {
		return err
	}
	return h.StoreDefaultEndpoint(uri)
}

func (h *Handler) SetEndpoint() error {
	uri, err := h.PromptEndpoint("set default endpoint")
	if err != nil {
		return err
	}
	return h.StoreDefaultEndpoint(uri)
}

// PrintVaultInfo reports the pool state of a selected endpoint.
func (h *Handler) PrintVaultInfo() error {
	uri, err := h.PromptEndpoint("select endpoint")
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := rpc.NewJSONRPCClient(uri)
	baseAsset, quoteAsset, baseReserve, quoteReserve, err := client.Reserves(ctx)
	if err != nil {
		return err
	}
	shareAsset, supply, err := client.ShareSupply(ctx)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{cyan}}base:{{/}} %s {{cyan}}reserve:{{/}} %d\n",
		baseAsset,
		baseReserve,
	)
	utils.Outf(
		"{{cyan}}quote:{{/}} %s {{cyan}}reserve:{{/}} %d\n",
		quoteAsset,
		quoteReserve,
	)
	utils.Outf(
		"{{cyan}}shares:{{/}} %s {{cyan}}supply:{{/}} %d\n",
		shareAsset,
		supply,
	)
	return nil
}

// WatchEvents streams liquidity events from the default endpoint until
// interrupted.
func (h *Handler) WatchEvents() error {
	ctx := context.Background()
	uri, err := h.GetDefaultEndpoint()
	if err != nil {
		return err
	}
	if err := h.CloseDatabase(); err != nil {
		return err
	}
	scli, err := rpc.NewWebSocketClient(uri, rpc.DefaultHandshakeTimeout, pubsub.MaxPendingMessages, pubsub.MaxReadMessageSize) // we write the max read
	if err != nil {
		return err
	}
	defer scli.Close()
	if err := scli.RegisterEvents(); err != nil {
		return err
	}
	utils.Outf("{{green}}watching for pool events 👀{{/}}\n")
	for ctx.Err() == nil {
		event, err := scli.ListenForEvent(ctx)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}%s{{/}} {{cyan}}provider:{{/}} %s {{cyan}}base:{{/}} %d {{cyan}}quote:{{/}} %d {{cyan}}shares:{{/}} %d\n",
			event.Kind,
			event.Provider,
			event.BaseAmount,
			event.QuoteAmount,
			event.Shares,
		)
	}
	return ctx.Err()
}
