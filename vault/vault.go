// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	smath "github.com/ava-labs/avalanchego/utils/math"
	"github.com/prometheus/client_golang/prometheus"
	uatomic "go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/event"
	"github.com/lpvault/lpvault/ledger"
	"github.com/lpvault/lpvault/orderbook"
	"github.com/lpvault/lpvault/storage"
	"github.com/lpvault/lpvault/utils"
	"github.com/lpvault/lpvault/vaultmath"
)

// reentryKey marks a context as belonging to an in-flight vault operation.
type reentryKey struct{}

// Config fixes the asset pair a vault serves. NativeWrapper names the token
// standing in for native value inside the ledger; the native deposit and
// withdraw paths are only available when it is the base asset.
type Config struct {
	BaseAsset     ids.ID `json:"baseAsset"`
	QuoteAsset    ids.ID `json:"quoteAsset"`
	NativeWrapper ids.ID `json:"nativeWrapper"`
}

// Vault is a two-asset liquidity pool. Depositors receive share tokens
// proportional to their contribution and shares redeem for a proportional cut
// of both reserves. All pool funds live in the ledger under the vault's
// custody address, so every movement in or out is an ordinary ledger
// transfer that can fail and be compensated.
type Vault struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics

	cfg     Config
	db      database.KeyValueReaderWriter
	assets  AssetLedger
	roles   RoleChecker
	matcher Matcher

	custody    codec.Address
	lock       codec.Address
	shareAsset ids.ID

	mu     sync.Mutex
	active bool

	// Mirrors of committed state, readable without the mutex.
	baseReserve  uatomic.Uint64
	quoteReserve uatomic.Uint64
	shareSupply  uatomic.Uint64

	subsMu sync.RWMutex
	subs   []event.Subscription[Event]
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	registry *prometheus.Registry,
	cfg Config,
	db database.KeyValueReaderWriter,
	assets AssetLedger,
	roles RoleChecker,
	matcher Matcher,
) (*Vault, error) {
	if cfg.BaseAsset == ids.Empty || cfg.QuoteAsset == ids.Empty {
		return nil, fmt.Errorf("%w: pool assets must be set", ErrInvalidArgument)
	}
	if cfg.BaseAsset == cfg.QuoteAsset {
		return nil, fmt.Errorf("%w: pool assets must differ", ErrInvalidArgument)
	}
	m, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}
	pair := utils.ToID(append(cfg.BaseAsset[:], cfg.QuoteAsset[:]...))
	v := &Vault{
		log:     log,
		tracer:  tracer,
		metrics: m,

		cfg:     cfg,
		db:      db,
		assets:  assets,
		roles:   roles,
		matcher: matcher,

		custody: codec.CreateAddress(consts.VaultID, pair),
		lock:    codec.CreateAddress(consts.LockID, pair),
	}
	v.shareAsset = utils.ToID(v.custody[:])
	return v, nil
}

// Init transitions the vault from constructed to active: the share token
// (and the native wrapper, when configured) is registered with the ledger and
// the committed reserves are loaded. A second call fails with
// ErrAlreadyInitialized; there is no way back to the constructed state.
func (v *Vault) Init(ctx context.Context) error {
	ctx, span := v.tracer.Start(ctx, "Vault.Init")
	defer span.End()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.active {
		return ErrAlreadyInitialized
	}

	if err := v.assets.CreateAsset(ctx, v.shareAsset, v.custody); err != nil && !errors.Is(err, ledger.ErrAssetExists) {
		return fmt.Errorf("creating share asset: %w", err)
	}
	if v.nativeEnabled() {
		if err := v.assets.CreateAsset(ctx, v.cfg.NativeWrapper, v.custody); err != nil && !errors.Is(err, ledger.ErrAssetExists) {
			return fmt.Errorf("creating native wrapper: %w", err)
		}
	}

	base, quote, err := storage.GetReserves(ctx, v.db)
	if err != nil {
		return fmt.Errorf("loading reserves: %w", err)
	}
	supply, err := v.assets.Supply(ctx, v.shareAsset)
	if err != nil {
		return fmt.Errorf("loading share supply: %w", err)
	}
	v.baseReserve.Store(base)
	v.quoteReserve.Store(quote)
	v.metrics.baseReserve.Set(float64(base))
	v.metrics.quoteReserve.Set(float64(quote))
	v.storeSupply(supply)
	v.active = true

	v.log.Info("vault initialized",
		zap.Stringer("custody", v.custody),
		zap.Stringer("shareAsset", v.shareAsset),
		zap.Uint64("baseReserve", base),
		zap.Uint64("quoteReserve", quote),
		zap.Uint64("shareSupply", supply),
	)
	return nil
}

// Custody is the ledger address holding all pool funds.
func (v *Vault) Custody() codec.Address { return v.custody }

// LockAddress holds the permanently locked bootstrap shares.
func (v *Vault) LockAddress() codec.Address { return v.lock }

// ShareAsset is the pool's share token.
func (v *Vault) ShareAsset() ids.ID { return v.shareAsset }

func (v *Vault) BaseAsset() ids.ID  { return v.cfg.BaseAsset }
func (v *Vault) QuoteAsset() ids.ID { return v.cfg.QuoteAsset }

// Reserves returns the tracked reserves. It never blocks behind in-flight
// operations.
func (v *Vault) Reserves() (uint64, uint64) {
	return v.baseReserve.Load(), v.quoteReserve.Load()
}

// LPTokenValue prices [shares] against the current reserves. Both legs are
// zero while the pool has no share supply.
func (v *Vault) LPTokenValue(shares uint64) (uint64, uint64, error) {
	supply := v.shareSupply.Load()
	if supply == 0 {
		return 0, 0, nil
	}
	base, err := vaultmath.ProportionalAmount(shares, v.baseReserve.Load(), supply)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: base leg", ErrOverflow)
	}
	quote, err := vaultmath.ProportionalAmount(shares, v.quoteReserve.Load(), supply)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: quote leg", ErrOverflow)
	}
	return base, quote, nil
}

// Deposit adds liquidity and returns the shares issued. Both amounts are
// taken in full even when the contribution is lopsided; the excess-side value
// accrues to existing holders.
func (v *Vault) Deposit(ctx context.Context, actor codec.Address, baseAmount uint64, quoteAmount uint64) (uint64, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.Deposit")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return 0, err
	}
	defer done()
	return v.deposit(ctx, actor, baseAmount, quoteAmount, false)
}

// DepositNative is Deposit with the base leg paid in native value, wrapped
// through the ledger on the way in.
func (v *Vault) DepositNative(ctx context.Context, actor codec.Address, value uint64, quoteAmount uint64) (uint64, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.DepositNative")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return 0, err
	}
	defer done()
	if !v.nativeEnabled() {
		return 0, fmt.Errorf("%w: base asset is not the native wrapper", ErrUnsupportedAsset)
	}
	return v.deposit(ctx, actor, value, quoteAmount, true)
}

// Withdraw burns [shares] and pays out the proportional cut of both reserves.
func (v *Vault) Withdraw(ctx context.Context, actor codec.Address, shares uint64) (uint64, uint64, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.Withdraw")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer done()
	return v.withdraw(ctx, actor, shares, false)
}

// WithdrawNative is Withdraw with the base leg unwrapped to native value on
// the way out.
func (v *Vault) WithdrawNative(ctx context.Context, actor codec.Address, shares uint64) (uint64, uint64, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.WithdrawNative")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer done()
	if !v.nativeEnabled() {
		return 0, 0, fmt.Errorf("%w: base asset is not the native wrapper", ErrUnsupportedAsset)
	}
	return v.withdraw(ctx, actor, shares, true)
}

// Receive accepts bare native value into custody. The value is wrapped and
// held but not added to the reserves until an admin runs SyncReserves,
// matching how plain asset donations behave.
func (v *Vault) Receive(ctx context.Context, from codec.Address, value uint64) error {
	ctx, span := v.tracer.Start(ctx, "Vault.Receive")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return err
	}
	defer done()
	if !v.nativeEnabled() {
		return fmt.Errorf("%w: vault does not accept native value", ErrUnsupportedAsset)
	}
	if value == 0 {
		return fmt.Errorf("%w: value must be positive", ErrInvalidArgument)
	}
	if err := v.assets.Wrap(ctx, v.cfg.BaseAsset, v.custody, from, value); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if err := v.assets.Pull(ctx, v.cfg.BaseAsset, from, v.custody, value); err != nil {
		_ = v.assets.Unwrap(ctx, v.cfg.BaseAsset, v.custody, from, value)
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	v.metrics.nativeReceipts.Inc()
	v.log.Info("native value received",
		zap.Stringer("from", from),
		zap.Uint64("value", value),
	)
	return nil
}

// SyncReserves overwrites the tracked reserves with the custody account's
// live ledger balances. This is the admin tool that folds donations, bare
// native receipts, and matcher settlement drift back into the pool.
func (v *Vault) SyncReserves(ctx context.Context, actor codec.Address) (uint64, uint64, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.SyncReserves")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer done()

	if err := v.requireRole(ctx, storage.AdminRole, actor); err != nil {
		return 0, 0, err
	}
	base, err := v.assets.Balance(ctx, v.custody, v.cfg.BaseAsset)
	if err != nil {
		return 0, 0, err
	}
	quote, err := v.assets.Balance(ctx, v.custody, v.cfg.QuoteAsset)
	if err != nil {
		return 0, 0, err
	}
	oldBase, oldQuote := v.baseReserve.Load(), v.quoteReserve.Load()
	if err := v.setReserves(ctx, base, quote); err != nil {
		return 0, 0, err
	}
	v.metrics.reserveSyncs.Inc()
	v.log.Info("reserves resynchronized",
		zap.Stringer("actor", actor),
		zap.Uint64("oldBase", oldBase),
		zap.Uint64("newBase", base),
		zap.Uint64("oldQuote", oldQuote),
		zap.Uint64("newQuote", quote),
	)
	return base, quote, nil
}

// CreateOrders forwards create intents to the matcher with every beneficiary
// rewritten to the vault's custody address, so fills and refunds settle into
// pool funds. Matcher results are returned unmodified.
func (v *Vault) CreateOrders(ctx context.Context, actor codec.Address, intents []orderbook.OrderIntent) ([]orderbook.OrderResult, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.CreateOrders")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	if err := v.requireRole(ctx, storage.MarketMakerRole, actor); err != nil {
		return nil, err
	}
	results := v.matcher.Create(ctx, v.redirect(intents))
	v.metrics.ordersForwarded.Add(float64(len(intents)))
	return results, nil
}

// UpdateOrders forwards re-price/re-size intents under the same
// authorization and beneficiary rules as CreateOrders.
func (v *Vault) UpdateOrders(ctx context.Context, actor codec.Address, intents []orderbook.OrderIntent) ([]orderbook.OrderResult, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.UpdateOrders")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	if err := v.requireRole(ctx, storage.MarketMakerRole, actor); err != nil {
		return nil, err
	}
	results := v.matcher.Update(ctx, v.redirect(intents))
	v.metrics.ordersForwarded.Add(float64(len(intents)))
	return results, nil
}

// CancelOrders forwards cancels. Refunds pay back to custody because every
// forwarded order was created with custody as its beneficiary.
func (v *Vault) CancelOrders(ctx context.Context, actor codec.Address, cancels []orderbook.CancelIntent) ([]orderbook.CancelResult, error) {
	ctx, span := v.tracer.Start(ctx, "Vault.CancelOrders")
	defer span.End()

	ctx, done, err := v.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	if err := v.requireRole(ctx, storage.MarketMakerRole, actor); err != nil {
		return nil, err
	}
	results := v.matcher.Cancel(ctx, cancels)
	v.metrics.cancelsForwarded.Add(float64(len(cancels)))
	return results, nil
}

func (v *Vault) deposit(ctx context.Context, actor codec.Address, baseAmount uint64, quoteAmount uint64, native bool) (uint64, error) {
	start := time.Now()
	if baseAmount == 0 || quoteAmount == 0 {
		return 0, fmt.Errorf("%w: deposit amounts must be positive", ErrInvalidArgument)
	}

	baseReserve := v.baseReserve.Load()
	quoteReserve := v.quoteReserve.Load()
	supply := v.shareSupply.Load()

	var issued, locked uint64
	if supply == 0 {
		raw, err := vaultmath.BootstrapShares(baseAmount, quoteAmount)
		if err != nil {
			return 0, fmt.Errorf("%w: initial deposit product", ErrOverflow)
		}
		if raw <= storage.MinimumLiquidity {
			return 0, ErrInsufficientInitialLiquidity
		}
		locked = storage.MinimumLiquidity
		issued = raw - locked
	} else {
		if baseReserve == 0 || quoteReserve == 0 {
			// Outstanding shares against an empty reserve cannot price a
			// contribution; an admin has to SyncReserves first.
			return 0, ErrNoLiquidity
		}
		byBase, err := vaultmath.ProportionalShares(baseAmount, supply, baseReserve)
		if err != nil {
			return 0, fmt.Errorf("%w: base contribution", ErrOverflow)
		}
		byQuote, err := vaultmath.ProportionalShares(quoteAmount, supply, quoteReserve)
		if err != nil {
			return 0, fmt.Errorf("%w: quote contribution", ErrOverflow)
		}
		issued = min(byBase, byQuote)
		if issued == 0 {
			return 0, ErrInsufficientShares
		}
	}
	newSupply, err := smath.Add(supply, issued)
	if err != nil {
		return 0, fmt.Errorf("%w: share supply", ErrOverflow)
	}
	newSupply, err = smath.Add(newSupply, locked)
	if err != nil {
		return 0, fmt.Errorf("%w: share supply", ErrOverflow)
	}
	newBase, err := smath.Add(baseReserve, baseAmount)
	if err != nil {
		return 0, fmt.Errorf("%w: base reserve", ErrOverflow)
	}
	newQuote, err := smath.Add(quoteReserve, quoteAmount)
	if err != nil {
		return 0, fmt.Errorf("%w: quote reserve", ErrOverflow)
	}

	if err := v.setReserves(ctx, newBase, newQuote); err != nil {
		return 0, err
	}
	if err := v.assets.Mint(ctx, v.shareAsset, v.custody, actor, issued); err != nil {
		v.restoreReserves(ctx, baseReserve, quoteReserve)
		return 0, fmt.Errorf("minting shares: %w", err)
	}

	revert := func() {
		_ = v.assets.Burn(ctx, v.shareAsset, v.custody, actor, issued)
		v.restoreReserves(ctx, baseReserve, quoteReserve)
	}
	if native {
		if err := v.assets.Wrap(ctx, v.cfg.BaseAsset, v.custody, actor, baseAmount); err != nil {
			revert()
			return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}
	}
	if err := v.assets.Pull(ctx, v.cfg.BaseAsset, actor, v.custody, baseAmount); err != nil {
		if native {
			_ = v.assets.Unwrap(ctx, v.cfg.BaseAsset, v.custody, actor, baseAmount)
		}
		revert()
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if err := v.assets.Pull(ctx, v.cfg.QuoteAsset, actor, v.custody, quoteAmount); err != nil {
		_ = v.assets.Push(ctx, v.cfg.BaseAsset, v.custody, actor, baseAmount)
		if native {
			_ = v.assets.Unwrap(ctx, v.cfg.BaseAsset, v.custody, actor, baseAmount)
		}
		revert()
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	if locked > 0 {
		// The bootstrap floor is minted once the pool is fully funded. The
		// lock address refuses every debit, so this leg must stay outside
		// the revert window above.
		if err := v.assets.Mint(ctx, v.shareAsset, v.custody, v.lock, locked); err != nil {
			_ = v.assets.Push(ctx, v.cfg.QuoteAsset, v.custody, actor, quoteAmount)
			_ = v.assets.Push(ctx, v.cfg.BaseAsset, v.custody, actor, baseAmount)
			if native {
				_ = v.assets.Unwrap(ctx, v.cfg.BaseAsset, v.custody, actor, baseAmount)
			}
			revert()
			return 0, fmt.Errorf("minting locked shares: %w", err)
		}
	}

	v.storeSupply(newSupply)
	if native {
		v.metrics.nativeDeposits.Inc()
	} else {
		v.metrics.deposits.Inc()
	}
	v.metrics.depositProcess.Observe(float64(time.Since(start)))
	v.log.Info("liquidity added",
		zap.Stringer("provider", actor),
		zap.Uint64("base", baseAmount),
		zap.Uint64("quote", quoteAmount),
		zap.Uint64("shares", issued),
	)
	v.notify(ctx, Event{
		Kind:        LiquidityAdded,
		Provider:    actor,
		BaseAmount:  baseAmount,
		QuoteAmount: quoteAmount,
		Shares:      issued,
	})
	return issued, nil
}

func (v *Vault) withdraw(ctx context.Context, actor codec.Address, shares uint64, native bool) (uint64, uint64, error) {
	start := time.Now()
	if shares == 0 {
		return 0, 0, fmt.Errorf("%w: shares must be positive", ErrInvalidArgument)
	}
	supply := v.shareSupply.Load()
	if supply == 0 {
		return 0, 0, ErrNoLiquidity
	}
	balance, err := v.assets.Balance(ctx, actor, v.shareAsset)
	if err != nil {
		return 0, 0, err
	}
	if balance < shares {
		return 0, 0, fmt.Errorf("%w: have %d shares, need %d", ErrInsufficientBalance, balance, shares)
	}

	baseReserve := v.baseReserve.Load()
	quoteReserve := v.quoteReserve.Load()
	baseOut, err := vaultmath.ProportionalAmount(shares, baseReserve, supply)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: base leg", ErrOverflow)
	}
	quoteOut, err := vaultmath.ProportionalAmount(shares, quoteReserve, supply)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: quote leg", ErrOverflow)
	}
	if baseOut == 0 || quoteOut == 0 {
		return 0, 0, ErrInsufficientLiquidity
	}

	// shares <= supply, so each leg is at most its reserve.
	if err := v.setReserves(ctx, baseReserve-baseOut, quoteReserve-quoteOut); err != nil {
		return 0, 0, err
	}
	if err := v.assets.Burn(ctx, v.shareAsset, v.custody, actor, shares); err != nil {
		v.restoreReserves(ctx, baseReserve, quoteReserve)
		return 0, 0, fmt.Errorf("burning shares: %w", err)
	}

	revert := func() {
		_ = v.assets.Mint(ctx, v.shareAsset, v.custody, actor, shares)
		v.restoreReserves(ctx, baseReserve, quoteReserve)
	}
	if err := v.assets.Push(ctx, v.cfg.BaseAsset, v.custody, actor, baseOut); err != nil {
		revert()
		return 0, 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if err := v.assets.Push(ctx, v.cfg.QuoteAsset, v.custody, actor, quoteOut); err != nil {
		_ = v.assets.Pull(ctx, v.cfg.BaseAsset, actor, v.custody, baseOut)
		revert()
		return 0, 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if native {
		if err := v.assets.Unwrap(ctx, v.cfg.BaseAsset, v.custody, actor, baseOut); err != nil {
			_ = v.assets.Pull(ctx, v.cfg.QuoteAsset, actor, v.custody, quoteOut)
			_ = v.assets.Pull(ctx, v.cfg.BaseAsset, actor, v.custody, baseOut)
			revert()
			return 0, 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}
	}

	v.storeSupply(supply - shares)
	if native {
		v.metrics.nativeWithdraws.Inc()
	} else {
		v.metrics.withdraws.Inc()
	}
	v.metrics.withdrawProcess.Observe(float64(time.Since(start)))
	v.log.Info("liquidity removed",
		zap.Stringer("provider", actor),
		zap.Uint64("base", baseOut),
		zap.Uint64("quote", quoteOut),
		zap.Uint64("shares", shares),
	)
	v.notify(ctx, Event{
		Kind:        LiquidityRemoved,
		Provider:    actor,
		BaseAmount:  baseOut,
		QuoteAmount: quoteOut,
		Shares:      shares,
	})
	return baseOut, quoteOut, nil
}

// enter acquires the vault for a state-mutating operation. The returned
// context carries a token marking the call tree; a collaborator calling back
// into the vault on that context is rejected with ErrReentrant instead of
// deadlocking on the mutex.
func (v *Vault) enter(ctx context.Context) (context.Context, func(), error) {
	if ctx.Value(reentryKey{}) != nil {
		v.metrics.reentriesBlocked.Inc()
		return nil, nil, ErrReentrant
	}
	v.mu.Lock()
	if !v.active {
		v.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: vault not initialized", ErrInvalidArgument)
	}
	return context.WithValue(ctx, reentryKey{}, struct{}{}), v.mu.Unlock, nil
}

func (v *Vault) nativeEnabled() bool {
	return v.cfg.NativeWrapper != ids.Empty && v.cfg.NativeWrapper == v.cfg.BaseAsset
}

func (v *Vault) requireRole(ctx context.Context, role byte, actor codec.Address) error {
	ok, err := v.roles.Has(ctx, role, actor)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnauthorized, actor)
	}
	return nil
}

func (v *Vault) redirect(intents []orderbook.OrderIntent) []orderbook.OrderIntent {
	return utils.Map(intents, func(intent orderbook.OrderIntent) orderbook.OrderIntent {
		intent.Beneficiary = v.custody
		return intent
	})
}

func (v *Vault) setReserves(ctx context.Context, base uint64, quote uint64) error {
	if err := storage.SetReserves(ctx, v.db, base, quote); err != nil {
		return err
	}
	v.baseReserve.Store(base)
	v.quoteReserve.Store(quote)
	v.metrics.baseReserve.Set(float64(base))
	v.metrics.quoteReserve.Set(float64(quote))
	return nil
}

func (v *Vault) restoreReserves(ctx context.Context, base uint64, quote uint64) {
	if err := v.setReserves(ctx, base, quote); err != nil {
		v.log.Error("failed to restore reserves",
			zap.Uint64("base", base),
			zap.Uint64("quote", quote),
			zap.Error(err),
		)
	}
}

func (v *Vault) storeSupply(supply uint64) {
	v.shareSupply.Store(supply)
	v.metrics.shareSupply.Set(float64(supply))
}
