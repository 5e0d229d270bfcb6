// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/lpvault/lpvault/auth"
	"github.com/lpvault/lpvault/crypto/ed25519"
	"github.com/lpvault/lpvault/rpc"
	"github.com/lpvault/lpvault/utils"
)

func (h *Handler) GenerateKey() error {
	priv, err := auth.NewED25519PrivateKeyFactory().GeneratePrivateKey()
	if err != nil {
		return err
	}
	if err := h.StoreKey(priv); err != nil {
		return err
	}
	if err := h.StoreDefaultKey(priv.Address); err != nil {
		return err
	}
	utils.Outf("{{green}}created address:{{/}} %s\n", priv.Address)
	return nil
}

func (h *Handler) ImportKey(keyPath string) error {
	p, err := utils.LoadBytes(keyPath, ed25519.PrivateKeyLen)
	if err != nil {
		return err
	}
	priv, err := auth.NewED25519PrivateKeyFactory().LoadPrivateKey(p)
	if err != nil {
		return err
	}
	if err := h.StoreKey(priv); err != nil {
		return err
	}
	if err := h.StoreDefaultKey(priv.Address); err != nil {
		return err
	}
	utils.Outf("{{green}}imported address:{{/}} %s\n", priv.Address)
	return nil
}

// SetKey lists the stored keys with their pool share balances and makes
// the chosen one the default signer.
func (h *Handler) SetKey() error {
	keys, err := h.GetKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil
	}
	uri, err := h.GetDefaultEndpoint()
	if err != nil {
		return err
	}

	ctx := context.TODO()
	client := rpc.NewJSONRPCClient(uri)
	shareAsset, _, err := client.ShareSupply(ctx)
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(keys))
	for i, key := range keys {
		balance, err := client.Balance(ctx, key.Address, shareAsset)
		if err != nil {
			return err
		}
		utils.Outf(
			"%d) {{cyan}}address:{{/}} %s {{cyan}}shares:{{/}} %d\n",
			i,
			key.Address,
			balance,
		)
	}

	keyIndex, err := h.PromptChoice("set default key", len(keys))
	if err != nil {
		return err
	}
	return h.StoreDefaultKey(keys[keyIndex].Address)
}

// Balance prints the default key's holdings of every pool asset.
func (h *Handler) Balance() error {
	pk, err := h.GetDefaultKey()
	if err != nil {
		return err
	}
	uri, err := h.GetDefaultEndpoint()
	if err != nil {
		return err
	}

	ctx := context.TODO()
	client := rpc.NewJSONRPCClient(uri)
	baseAsset, quoteAsset, _, _, err := client.Reserves(ctx)
	if err != nil {
		return err
	}
	shareAsset, _, err := client.ShareSupply(ctx)
	if err != nil {
		return err
	}
	for _, asset := range []struct {
		label string
		id    ids.ID
	}{
		{"base", baseAsset},
		{"quote", quoteAsset},
		{"shares", shareAsset},
	} {
		balance, err := client.Balance(ctx, pk.Address, asset.id)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{cyan}}%s:{{/}} %s {{cyan}}balance:{{/}} %d\n",
			asset.label,
			asset.id,
			balance,
		)
	}
	return nil
}
