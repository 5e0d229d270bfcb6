// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/lpvault/lpvault/auth"
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/genesis"
	"github.com/lpvault/lpvault/orderbook"

	avarpc "github.com/ava-labs/avalanchego/utils/rpc"
)

// requestValidity is how far in the future signed requests expire. It
// must stay below the server's expiry window or requests are refused
// as too far out.
const requestValidity = 10 * time.Second

type JSONRPCClient struct {
	requester avarpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: avarpc.NewEndpointRequester(uri)}
}

func sign(f auth.Factory, method string, payload []byte) (*auth.SignedRequest, error) {
	expiry := time.Now().Add(requestValidity).UnixMilli()
	return auth.SignRequest(f, method, expiry, payload)
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		MethodGenesis,
		nil,
		resp,
	)
	return resp.Genesis, err
}

func (cli *JSONRPCClient) Reserves(ctx context.Context) (ids.ID, ids.ID, uint64, uint64, error) {
	resp := new(ReservesReply)
	err := cli.requester.SendRequest(
		ctx,
		MethodReserves,
		nil,
		resp,
	)
	return resp.BaseAsset, resp.QuoteAsset, resp.BaseReserve, resp.QuoteReserve, err
}

func (cli *JSONRPCClient) LPTokenValue(ctx context.Context, shares uint64) (uint64, uint64, error) {
	resp := new(LPTokenValueReply)
	err := cli.requester.SendRequest(
		ctx,
		MethodLPTokenValue,
		&LPTokenValueArgs{Shares: shares},
		resp,
	)
	return resp.BaseAmount, resp.QuoteAmount, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address, asset ids.ID) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		MethodBalance,
		&BalanceArgs{Address: addr, Asset: asset},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) ShareSupply(ctx context.Context) (ids.ID, uint64, error) {
	resp := new(ShareSupplyReply)
	err := cli.requester.SendRequest(
		ctx,
		MethodShareSupply,
		nil,
		resp,
	)
	return resp.Asset, resp.Supply, err
}

func (cli *JSONRPCClient) Deposit(ctx context.Context, f auth.Factory, baseAmount uint64, quoteAmount uint64) (uint64, error) {
	env, err := sign(f, MethodDeposit, amountsPayload(baseAmount, quoteAmount))
	if err != nil {
		return 0, err
	}
	resp := new(DepositReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodDeposit,
		&DepositArgs{BaseAmount: baseAmount, QuoteAmount: quoteAmount, Auth: *env},
		resp,
	)
	return resp.SharesIssued, err
}

func (cli *JSONRPCClient) DepositNative(ctx context.Context, f auth.Factory, value uint64, quoteAmount uint64) (uint64, error) {
	env, err := sign(f, MethodDepositNative, amountsPayload(value, quoteAmount))
	if err != nil {
		return 0, err
	}
	resp := new(DepositReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodDepositNative,
		&DepositNativeArgs{Value: value, QuoteAmount: quoteAmount, Auth: *env},
		resp,
	)
	return resp.SharesIssued, err
}

func (cli *JSONRPCClient) Withdraw(ctx context.Context, f auth.Factory, shares uint64) (uint64, uint64, error) {
	env, err := sign(f, MethodWithdraw, sharesPayload(shares))
	if err != nil {
		return 0, 0, err
	}
	resp := new(WithdrawReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodWithdraw,
		&WithdrawArgs{Shares: shares, Auth: *env},
		resp,
	)
	return resp.BaseAmount, resp.QuoteAmount, err
}

func (cli *JSONRPCClient) WithdrawNative(ctx context.Context, f auth.Factory, shares uint64) (uint64, uint64, error) {
	env, err := sign(f, MethodWithdrawNative, sharesPayload(shares))
	if err != nil {
		return 0, 0, err
	}
	resp := new(WithdrawReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodWithdrawNative,
		&WithdrawArgs{Shares: shares, Auth: *env},
		resp,
	)
	return resp.BaseAmount, resp.QuoteAmount, err
}

func (cli *JSONRPCClient) SyncReserves(ctx context.Context, f auth.Factory) (uint64, uint64, error) {
	env, err := sign(f, MethodSyncReserves, nil)
	if err != nil {
		return 0, 0, err
	}
	resp := new(SyncReservesReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodSyncReserves,
		&SyncReservesArgs{Auth: *env},
		resp,
	)
	return resp.BaseReserve, resp.QuoteReserve, err
}

func (cli *JSONRPCClient) CreateOrders(ctx context.Context, f auth.Factory, intents []orderbook.OrderIntent) ([]orderbook.OrderResult, error) {
	env, err := sign(f, MethodCreateOrders, intentsPayload(intents))
	if err != nil {
		return nil, err
	}
	resp := new(OrderResultsReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodCreateOrders,
		&OrderIntentsArgs{Intents: intents, Auth: *env},
		resp,
	)
	return resp.Results, err
}

func (cli *JSONRPCClient) UpdateOrders(ctx context.Context, f auth.Factory, intents []orderbook.OrderIntent) ([]orderbook.OrderResult, error) {
	env, err := sign(f, MethodUpdateOrders, intentsPayload(intents))
	if err != nil {
		return nil, err
	}
	resp := new(OrderResultsReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodUpdateOrders,
		&OrderIntentsArgs{Intents: intents, Auth: *env},
		resp,
	)
	return resp.Results, err
}

func (cli *JSONRPCClient) CancelOrders(ctx context.Context, f auth.Factory, cancels []orderbook.CancelIntent) ([]orderbook.CancelResult, error) {
	env, err := sign(f, MethodCancelOrders, cancelsPayload(cancels))
	if err != nil {
		return nil, err
	}
	resp := new(CancelResultsReply)
	err = cli.requester.SendRequest(
		ctx,
		MethodCancelOrders,
		&CancelOrdersArgs{Cancels: cancels, Auth: *env},
		resp,
	)
	return resp.Results, err
}

func (cli *JSONRPCClient) Orders(ctx context.Context, side string) ([]orderbook.Order, error) {
	resp := new(OrdersReply)
	err := cli.requester.SendRequest(
		ctx,
		MethodOrders,
		&OrdersArgs{Side: side},
		resp,
	)
	return resp.Orders, err
}

func (cli *JSONRPCClient) GrantRole(ctx context.Context, f auth.Factory, roleName string, grantee codec.Address) error {
	role, err := ParseRole(roleName)
	if err != nil {
		return err
	}
	env, err := sign(f, MethodGrantRole, rolePayload(role, grantee))
	if err != nil {
		return err
	}
	return cli.requester.SendRequest(
		ctx,
		MethodGrantRole,
		&GrantRoleArgs{Role: roleName, Grantee: grantee, Auth: *env},
		new(struct{}),
	)
}

// WaitForBalance polls until [addr] holds at least [min] of [asset].
func (cli *JSONRPCClient) WaitForBalance(ctx context.Context, addr codec.Address, asset ids.ID, min uint64) error {
	return Wait(ctx, 500*time.Millisecond, func(ctx context.Context) (bool, error) {
		amount, err := cli.Balance(ctx, addr, asset)
		if err != nil {
			return false, err
		}
		return amount >= min, nil
	})
}

func Wait(ctx context.Context, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	for ctx.Err() == nil {
		exit, err := check(ctx)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		time.Sleep(interval)
	}
	return ctx.Err()
}
