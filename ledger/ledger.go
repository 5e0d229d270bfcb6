// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	smath "github.com/ava-labs/avalanchego/utils/math"
	"go.uber.org/zap"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/storage"
)

// Ledger is the custody engine for every asset the pool touches: deposited
// reserves, escrowed order funds, wrapped native value, and the share asset
// itself. All balance and supply mutations flow through here so overflow
// checks, minter authorization, and the lock-account refusal live in one
// place. The native asset is keyed by [ids.Empty] and has balances but no
// asset record.
type Ledger struct {
	log    logging.Logger
	tracer trace.Tracer

	mu sync.RWMutex
	db database.KeyValueReaderWriterDeleter
}

func New(log logging.Logger, tracer trace.Tracer, db database.KeyValueReaderWriterDeleter) *Ledger {
	return &Ledger{
		log:    log,
		tracer: tracer,
		db:     db,
	}
}

// CreateAsset registers [asset] with [minter] as the only address allowed to
// mint or burn it. Supply starts at zero.
func (l *Ledger) CreateAsset(ctx context.Context, asset ids.ID, minter codec.Address) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.CreateAsset")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	exists, _, _, err := storage.GetAsset(ctx, l.db, asset)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAssetExists, asset)
	}
	if err := storage.SetAsset(ctx, l.db, asset, 0, minter); err != nil {
		return err
	}
	l.log.Debug("asset created",
		zap.Stringer("asset", asset),
		zap.String("minter", minter.String()),
	)
	return nil
}

// Mint increases the supply of [asset] and credits [to]. Only the minter
// recorded at creation may mint.
func (l *Ledger) Mint(ctx context.Context, asset ids.ID, actor codec.Address, to codec.Address, amount uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Mint")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.mint(ctx, asset, actor, to, amount)
}

// Burn decreases the supply of [asset] by debiting [from]. Only the minter
// may burn, [from] must hold at least [amount], and the lock account cannot
// be burned from.
func (l *Ledger) Burn(ctx context.Context, asset ids.ID, actor codec.Address, from codec.Address, amount uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Burn")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.burn(ctx, asset, actor, from, amount)
}

// Pull moves [amount] of [asset] from [from] into the [custody] account.
func (l *Ledger) Pull(ctx context.Context, asset ids.ID, from codec.Address, custody codec.Address, amount uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Pull")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(ctx, asset, from, custody, amount)
}

// Push moves [amount] of [asset] out of the [custody] account to [to].
func (l *Ledger) Push(ctx context.Context, asset ids.ID, custody codec.Address, to codec.Address, amount uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Push")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(ctx, asset, custody, to, amount)
}

// Transfer moves [amount] of [asset] from [from] to [to].
func (l *Ledger) Transfer(ctx context.Context, asset ids.ID, from codec.Address, to codec.Address, amount uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Transfer")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(ctx, asset, from, to, amount)
}

// Wrap converts [value] of [owner]'s native balance into the 1:1 wrapper
// token [wrapper]. The native leg moves into [custody] as backing, so every
// outstanding wrapper unit stays redeemable.
func (l *Ledger) Wrap(ctx context.Context, wrapper ids.ID, custody codec.Address, owner codec.Address, value uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Wrap")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.transfer(ctx, consts.NativeAssetID, owner, custody, value); err != nil {
		return err
	}
	if err := l.mint(ctx, wrapper, custody, owner, value); err != nil {
		// Return the native leg so a failed wrap leaves no residue.
		if rerr := l.transfer(ctx, consts.NativeAssetID, custody, owner, value); rerr != nil {
			return fmt.Errorf("%w: refund failed: %v", err, rerr)
		}
		return err
	}
	return nil
}

// Unwrap redeems [value] of [owner]'s wrapper balance for native, paid out
// of the [custody] backing.
func (l *Ledger) Unwrap(ctx context.Context, wrapper ids.ID, custody codec.Address, owner codec.Address, value uint64) error {
	ctx, span := l.tracer.Start(ctx, "Ledger.Unwrap")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.burn(ctx, wrapper, custody, owner, value); err != nil {
		return err
	}
	if err := l.transfer(ctx, consts.NativeAssetID, custody, owner, value); err != nil {
		if rerr := l.mint(ctx, wrapper, custody, owner, value); rerr != nil {
			return fmt.Errorf("%w: remint failed: %v", err, rerr)
		}
		return err
	}
	return nil
}

// Balance returns the balance of [asset] held by [owner]. Missing records
// read as zero.
func (l *Ledger) Balance(ctx context.Context, owner codec.Address, asset ids.ID) (uint64, error) {
	ctx, span := l.tracer.Start(ctx, "Ledger.Balance")
	defer span.End()

	l.mu.RLock()
	defer l.mu.RUnlock()

	return storage.GetBalance(ctx, l.db, owner, asset)
}

// Supply returns the outstanding supply of [asset]. A missing asset reads as
// zero supply.
func (l *Ledger) Supply(ctx context.Context, asset ids.ID) (uint64, error) {
	ctx, span := l.tracer.Start(ctx, "Ledger.Supply")
	defer span.End()

	l.mu.RLock()
	defer l.mu.RUnlock()

	_, supply, _, err := storage.GetAsset(ctx, l.db, asset)
	return supply, err
}

func (l *Ledger) mint(ctx context.Context, asset ids.ID, actor codec.Address, to codec.Address, amount uint64) error {
	exists, supply, minter, err := storage.GetAsset(ctx, l.db, asset)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAssetMissing, asset)
	}
	if actor != minter {
		return ErrNotMinter
	}
	nsupply, err := smath.Add(supply, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not mint %d of %s (supply=%d)",
			storage.ErrInvalidSupply,
			amount,
			asset,
			supply,
		)
	}
	if err := storage.SetAsset(ctx, l.db, asset, nsupply, minter); err != nil {
		return err
	}
	if err := storage.AddBalance(ctx, l.db, to, asset, amount, true); err != nil {
		return err
	}
	l.log.Debug("minted",
		zap.Stringer("asset", asset),
		zap.String("to", to.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("supply", nsupply),
	)
	return nil
}

func (l *Ledger) burn(ctx context.Context, asset ids.ID, actor codec.Address, from codec.Address, amount uint64) error {
	if from[0] == consts.LockID {
		return ErrLockedAccount
	}
	exists, supply, minter, err := storage.GetAsset(ctx, l.db, asset)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAssetMissing, asset)
	}
	if actor != minter {
		return ErrNotMinter
	}
	bal, err := storage.GetBalance(ctx, l.db, from, asset)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf(
			"%w: %s holds %d of %s, need %d",
			ErrInsufficientFunds,
			from,
			bal,
			asset,
			amount,
		)
	}
	nsupply, err := smath.Sub(supply, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not burn %d of %s (supply=%d)",
			storage.ErrInvalidSupply,
			amount,
			asset,
			supply,
		)
	}
	if err := storage.SubBalance(ctx, l.db, from, asset, amount); err != nil {
		return err
	}
	if err := storage.SetAsset(ctx, l.db, asset, nsupply, minter); err != nil {
		return err
	}
	l.log.Debug("burned",
		zap.Stringer("asset", asset),
		zap.String("from", from.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("supply", nsupply),
	)
	return nil
}

// transfer applies the debit only after the credit is known to fit, so a
// failed call leaves both balances untouched.
func (l *Ledger) transfer(ctx context.Context, asset ids.ID, from codec.Address, to codec.Address, amount uint64) error {
	if from[0] == consts.LockID {
		return ErrLockedAccount
	}
	bal, err := storage.GetBalance(ctx, l.db, from, asset)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf(
			"%w: %s holds %d of %s, need %d",
			ErrInsufficientFunds,
			from,
			bal,
			asset,
			amount,
		)
	}
	tbal, err := storage.GetBalance(ctx, l.db, to, asset)
	if err != nil {
		return err
	}
	if _, err := smath.Add(tbal, amount); err != nil {
		return fmt.Errorf(
			"%w: could not credit %d of %s to %s",
			storage.ErrInvalidBalance,
			amount,
			asset,
			to,
		)
	}
	if err := storage.SubBalance(ctx, l.db, from, asset, amount); err != nil {
		return err
	}
	return storage.AddBalance(ctx, l.db, to, asset, amount, true)
}
