// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/lpvault/lpvault/auth"
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/genesis"
	"github.com/lpvault/lpvault/orderbook"
	"github.com/lpvault/lpvault/storage"
)

// Role names accepted on the wire.
const (
	AdminRoleName       = "admin"
	MarketMakerRoleName = "marketMaker"
)

func ParseRole(name string) (byte, error) {
	switch name {
	case AdminRoleName:
		return storage.AdminRole, nil
	case MarketMakerRoleName:
		return storage.MarketMakerRole, nil
	default:
		return 0, ErrUnknownRole
	}
}

// Book sides accepted on the wire.
const (
	BidSideName = "bid"
	AskSideName = "ask"
)

func ParseSide(name string) (byte, error) {
	switch name {
	case BidSideName:
		return orderbook.Bid, nil
	case AskSideName:
		return orderbook.Ask, nil
	default:
		return 0, orderbook.ErrInvalidSide
	}
}

type JSONRPCServer struct {
	c Controller
}

func NewJSONRPCServer(c Controller) *JSONRPCServer {
	return &JSONRPCServer{c}
}

// authorize checks the signed envelope of a privileged call and
// returns the actor it authenticates.
func (j *JSONRPCServer) authorize(ctx context.Context, env *auth.SignedRequest, method string, payload []byte) (codec.Address, error) {
	now := time.Now().UnixMilli()
	if env.Expiry > now+j.c.RequestExpiryWindow().Milliseconds() {
		return codec.EmptyAddress, ErrExpiryTooFar
	}
	return env.Verify(ctx, now, method, payload)
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) error {
	reply.Genesis = j.c.Genesis()
	return nil
}

type ReservesReply struct {
	BaseAsset    ids.ID `json:"baseAsset"`
	QuoteAsset   ids.ID `json:"quoteAsset"`
	BaseReserve  uint64 `json:"baseReserve"`
	QuoteReserve uint64 `json:"quoteReserve"`
}

func (j *JSONRPCServer) Reserves(req *http.Request, _ *struct{}, reply *ReservesReply) error {
	_, span := j.c.Tracer().Start(req.Context(), "Server.Reserves")
	defer span.End()

	v := j.c.Vault()
	reply.BaseAsset = v.BaseAsset()
	reply.QuoteAsset = v.QuoteAsset()
	reply.BaseReserve, reply.QuoteReserve = v.Reserves()
	return nil
}

type LPTokenValueArgs struct {
	Shares uint64 `json:"shares"`
}

type LPTokenValueReply struct {
	BaseAmount  uint64 `json:"baseAmount"`
	QuoteAmount uint64 `json:"quoteAmount"`
}

func (j *JSONRPCServer) LPTokenValue(req *http.Request, args *LPTokenValueArgs, reply *LPTokenValueReply) error {
	_, span := j.c.Tracer().Start(req.Context(), "Server.LPTokenValue")
	defer span.End()

	base, quote, err := j.c.Vault().LPTokenValue(args.Shares)
	if err != nil {
		return err
	}
	reply.BaseAmount = base
	reply.QuoteAmount = quote
	return nil
}

type BalanceArgs struct {
	Address codec.Address `json:"address"`
	Asset   ids.ID        `json:"asset"`
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Balance")
	defer span.End()

	amount, err := j.c.GetBalanceFromState(ctx, args.Address, args.Asset)
	if err != nil {
		return err
	}
	reply.Amount = amount
	return nil
}

type ShareSupplyReply struct {
	Asset  ids.ID `json:"asset"`
	Supply uint64 `json:"supply"`
}

func (j *JSONRPCServer) ShareSupply(req *http.Request, _ *struct{}, reply *ShareSupplyReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.ShareSupply")
	defer span.End()

	asset := j.c.Vault().ShareAsset()
	supply, err := j.c.GetSupplyFromState(ctx, asset)
	if err != nil {
		return err
	}
	reply.Asset = asset
	reply.Supply = supply
	return nil
}

type DepositArgs struct {
	BaseAmount  uint64             `json:"baseAmount"`
	QuoteAmount uint64             `json:"quoteAmount"`
	Auth        auth.SignedRequest `json:"auth"`
}

type DepositReply struct {
	SharesIssued uint64 `json:"sharesIssued"`
}

func (j *JSONRPCServer) Deposit(req *http.Request, args *DepositArgs, reply *DepositReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Deposit")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodDeposit, amountsPayload(args.BaseAmount, args.QuoteAmount))
	if err != nil {
		return err
	}
	shares, err := j.c.Vault().Deposit(ctx, actor, args.BaseAmount, args.QuoteAmount)
	if err != nil {
		return err
	}
	reply.SharesIssued = shares
	return nil
}

type DepositNativeArgs struct {
	Value       uint64             `json:"value"`
	QuoteAmount uint64             `json:"quoteAmount"`
	Auth        auth.SignedRequest `json:"auth"`
}

func (j *JSONRPCServer) DepositNative(req *http.Request, args *DepositNativeArgs, reply *DepositReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.DepositNative")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodDepositNative, amountsPayload(args.Value, args.QuoteAmount))
	if err != nil {
		return err
	}
	shares, err := j.c.Vault().DepositNative(ctx, actor, args.Value, args.QuoteAmount)
	if err != nil {
		return err
	}
	reply.SharesIssued = shares
	return nil
}

type WithdrawArgs struct {
	Shares uint64             `json:"shares"`
	Auth   auth.SignedRequest `json:"auth"`
}

type WithdrawReply struct {
	BaseAmount  uint64 `json:"baseAmount"`
	QuoteAmount uint64 `json:"quoteAmount"`
}

func (j *JSONRPCServer) Withdraw(req *http.Request, args *WithdrawArgs, reply *WithdrawReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Withdraw")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodWithdraw, sharesPayload(args.Shares))
	if err != nil {
		return err
	}
	base, quote, err := j.c.Vault().Withdraw(ctx, actor, args.Shares)
	if err != nil {
		return err
	}
	reply.BaseAmount = base
	reply.QuoteAmount = quote
	return nil
}

func (j *JSONRPCServer) WithdrawNative(req *http.Request, args *WithdrawArgs, reply *WithdrawReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.WithdrawNative")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodWithdrawNative, sharesPayload(args.Shares))
	if err != nil {
		return err
	}
	value, quote, err := j.c.Vault().WithdrawNative(ctx, actor, args.Shares)
	if err != nil {
		return err
	}
	reply.BaseAmount = value
	reply.QuoteAmount = quote
	return nil
}

type SyncReservesArgs struct {
	Auth auth.SignedRequest `json:"auth"`
}

type SyncReservesReply struct {
	BaseReserve  uint64 `json:"baseReserve"`
	QuoteReserve uint64 `json:"quoteReserve"`
}

func (j *JSONRPCServer) SyncReserves(req *http.Request, args *SyncReservesArgs, reply *SyncReservesReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.SyncReserves")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodSyncReserves, nil)
	if err != nil {
		return err
	}
	base, quote, err := j.c.Vault().SyncReserves(ctx, actor)
	if err != nil {
		return err
	}
	reply.BaseReserve = base
	reply.QuoteReserve = quote
	return nil
}

type OrderIntentsArgs struct {
	Intents []orderbook.OrderIntent `json:"intents"`
	Auth    auth.SignedRequest      `json:"auth"`
}

type OrderResultsReply struct {
	Results []orderbook.OrderResult `json:"results"`
}

func (j *JSONRPCServer) CreateOrders(req *http.Request, args *OrderIntentsArgs, reply *OrderResultsReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.CreateOrders")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodCreateOrders, intentsPayload(args.Intents))
	if err != nil {
		return err
	}
	results, err := j.c.Vault().CreateOrders(ctx, actor, args.Intents)
	if err != nil {
		return err
	}
	reply.Results = results
	return nil
}

func (j *JSONRPCServer) UpdateOrders(req *http.Request, args *OrderIntentsArgs, reply *OrderResultsReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.UpdateOrders")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodUpdateOrders, intentsPayload(args.Intents))
	if err != nil {
		return err
	}
	results, err := j.c.Vault().UpdateOrders(ctx, actor, args.Intents)
	if err != nil {
		return err
	}
	reply.Results = results
	return nil
}

type CancelOrdersArgs struct {
	Cancels []orderbook.CancelIntent `json:"cancels"`
	Auth    auth.SignedRequest       `json:"auth"`
}

type CancelResultsReply struct {
	Results []orderbook.CancelResult `json:"results"`
}

func (j *JSONRPCServer) CancelOrders(req *http.Request, args *CancelOrdersArgs, reply *CancelResultsReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.CancelOrders")
	defer span.End()

	actor, err := j.authorize(ctx, &args.Auth, MethodCancelOrders, cancelsPayload(args.Cancels))
	if err != nil {
		return err
	}
	results, err := j.c.Vault().CancelOrders(ctx, actor, args.Cancels)
	if err != nil {
		return err
	}
	reply.Results = results
	return nil
}

type OrdersArgs struct {
	Side string `json:"side"`
}

type OrdersReply struct {
	Orders []orderbook.Order `json:"orders"`
}

func (j *JSONRPCServer) Orders(req *http.Request, args *OrdersArgs, reply *OrdersReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Orders")
	defer span.End()

	side, err := ParseSide(args.Side)
	if err != nil {
		return err
	}
	reply.Orders = j.c.Orders(ctx, side, ordersToSend)
	return nil
}

type GrantRoleArgs struct {
	Role    string             `json:"role"`
	Grantee codec.Address      `json:"grantee"`
	Auth    auth.SignedRequest `json:"auth"`
}

func (j *JSONRPCServer) GrantRole(req *http.Request, args *GrantRoleArgs, _ *struct{}) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.GrantRole")
	defer span.End()

	role, err := ParseRole(args.Role)
	if err != nil {
		return err
	}
	actor, err := j.authorize(ctx, &args.Auth, MethodGrantRole, rolePayload(role, args.Grantee))
	if err != nil {
		return err
	}
	return j.c.GrantRole(ctx, actor, role, args.Grantee)
}
