// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/rpc"
	"github.com/lpvault/lpvault/utils"
)

var vaultCmd = &cobra.Command{
	Use: "vault",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var depositCmd = &cobra.Command{
	Use: "deposit",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		addr, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		// Check wallet balances
		baseAsset, quoteAsset, _, _, err := client.Reserves(ctx)
		if err != nil {
			return err
		}
		baseBalance, err := client.Balance(ctx, addr, baseAsset)
		if err != nil {
			return err
		}
		quoteBalance, err := client.Balance(ctx, addr, quoteAsset)
		if err != nil {
			return err
		}

		// Select amounts
		baseAmount, err := handler.PromptAmount("base amount", baseAsset, baseBalance, nil)
		if err != nil {
			return err
		}
		quoteAmount, err := handler.PromptAmount("quote amount", quoteAsset, quoteBalance, nil)
		if err != nil {
			return err
		}

		// Confirm action
		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		shares, err := client.Deposit(ctx, factory, baseAmount, quoteAmount)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}minted shares:{{/}} %d\n", shares)
		return nil
	},
}

var depositNativeCmd = &cobra.Command{
	Use: "deposit-native",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		addr, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		_, quoteAsset, _, _, err := client.Reserves(ctx)
		if err != nil {
			return err
		}
		nativeBalance, err := client.Balance(ctx, addr, consts.NativeAssetID)
		if err != nil {
			return err
		}
		quoteBalance, err := client.Balance(ctx, addr, quoteAsset)
		if err != nil {
			return err
		}

		value, err := handler.PromptAmount("value", consts.NativeAssetID, nativeBalance, nil)
		if err != nil {
			return err
		}
		quoteAmount, err := handler.PromptAmount("quote amount", quoteAsset, quoteBalance, nil)
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		shares, err := client.DepositNative(ctx, factory, value, quoteAmount)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}minted shares:{{/}} %d\n", shares)
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use: "withdraw",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		addr, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		shareAsset, _, err := client.ShareSupply(ctx)
		if err != nil {
			return err
		}
		shareBalance, err := client.Balance(ctx, addr, shareAsset)
		if err != nil {
			return err
		}

		shares, err := handler.PromptAmount("shares", shareAsset, shareBalance, nil)
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		baseAmount, quoteAmount, err := client.Withdraw(ctx, factory, shares)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}redeemed:{{/}} %d base {{green}}and{{/}} %d quote\n",
			baseAmount,
			quoteAmount,
		)
		return nil
	},
}

var withdrawNativeCmd = &cobra.Command{
	Use: "withdraw-native",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		addr, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		shareAsset, _, err := client.ShareSupply(ctx)
		if err != nil {
			return err
		}
		shareBalance, err := client.Balance(ctx, addr, shareAsset)
		if err != nil {
			return err
		}

		shares, err := handler.PromptAmount("shares", shareAsset, shareBalance, nil)
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		value, quoteAmount, err := client.WithdrawNative(ctx, factory, shares)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}redeemed:{{/}} %s native {{green}}and{{/}} %d quote\n",
			utils.FormatBalance(value),
			quoteAmount,
		)
		return nil
	},
}

var valueCmd = &cobra.Command{
	Use: "value",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		uri, err := handler.GetDefaultEndpoint()
		if err != nil {
			return err
		}
		shares, err := handler.PromptUint64("shares")
		if err != nil {
			return err
		}

		client := rpc.NewJSONRPCClient(uri)
		baseAmount, quoteAmount, err := client.LPTokenValue(ctx, shares)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{cyan}}%d shares redeem for:{{/}} %d base {{cyan}}and{{/}} %d quote\n",
			shares,
			baseAmount,
			quoteAmount,
		)
		return nil
	},
}

var syncReservesCmd = &cobra.Command{
	Use: "sync-reserves",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		_, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		baseReserve, quoteReserve, err := client.SyncReserves(ctx, factory)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}reserves synced:{{/}} %d/%d\n",
			baseReserve,
			quoteReserve,
		)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use: "watch",
	RunE: func(*cobra.Command, []string) error {
		return handler.WatchEvents()
	},
}
