// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lpvault/lpvault/orderbook"
	"github.com/lpvault/lpvault/rpc"
	"github.com/lpvault/lpvault/utils"
)

var orderCmd = &cobra.Command{
	Use: "order",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

func promptSide() (byte, error) {
	name, err := handler.PromptString("side (bid/ask)", 1, 8)
	if err != nil {
		return 0, err
	}
	return rpc.ParseSide(name)
}

func printOrderResults(results []orderbook.OrderResult) {
	for _, result := range results {
		if result.Error != "" {
			utils.Outf("{{red}}order %s failed:{{/}} %s\n", result.OrderID, result.Error)
			continue
		}
		utils.Outf("{{green}}order placed:{{/}} %s\n", result.OrderID)
	}
}

var createOrderCmd = &cobra.Command{
	Use: "create",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		_, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		side, err := promptSide()
		if err != nil {
			return err
		}
		price, err := handler.PromptUint64("price (quote per base, scaled)")
		if err != nil {
			return err
		}
		size, err := handler.PromptUint64("size (base units)")
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		results, err := client.CreateOrders(ctx, factory, []orderbook.OrderIntent{
			{Side: side, Price: price, Size: size},
		})
		if err != nil {
			return err
		}
		printOrderResults(results)
		return nil
	},
}

var updateOrderCmd = &cobra.Command{
	Use: "update",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		_, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		orderID, err := handler.PromptID("orderID")
		if err != nil {
			return err
		}
		side, err := promptSide()
		if err != nil {
			return err
		}
		price, err := handler.PromptUint64("new price (quote per base, scaled)")
		if err != nil {
			return err
		}
		size, err := handler.PromptUint64("new size (base units)")
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		results, err := client.UpdateOrders(ctx, factory, []orderbook.OrderIntent{
			{OrderID: orderID, Side: side, Price: price, Size: size},
		})
		if err != nil {
			return err
		}
		printOrderResults(results)
		return nil
	},
}

var cancelOrderCmd = &cobra.Command{
	Use: "cancel",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		_, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		orderID, err := handler.PromptID("orderID")
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		results, err := client.CancelOrders(ctx, factory, []orderbook.CancelIntent{
			{OrderID: orderID},
		})
		if err != nil {
			return err
		}
		for _, result := range results {
			if result.Error != "" {
				utils.Outf("{{red}}cancel %s failed:{{/}} %s\n", result.OrderID, result.Error)
				continue
			}
			utils.Outf(
				"{{green}}cancelled:{{/}} %s {{green}}refunded:{{/}} %d base, %d quote\n",
				result.OrderID,
				result.RefundedBase,
				result.RefundedQuote,
			)
		}
		return nil
	},
}

var listOrdersCmd = &cobra.Command{
	Use: "list",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		uri, err := handler.GetDefaultEndpoint()
		if err != nil {
			return err
		}
		name, err := handler.PromptString("side (bid/ask)", 1, 8)
		if err != nil {
			return err
		}

		client := rpc.NewJSONRPCClient(uri)
		orders, err := client.Orders(ctx, name)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			utils.Outf("{{yellow}}no %s orders{{/}}\n", name)
			return nil
		}
		for i, order := range orders {
			utils.Outf(
				"%d) {{cyan}}id:{{/}} %s {{cyan}}price:{{/}} %d {{cyan}}remaining:{{/}} %d {{cyan}}beneficiary:{{/}} %s\n",
				i,
				order.ID,
				order.Price,
				order.Remaining,
				order.Beneficiary,
			)
		}
		return nil
	},
}
