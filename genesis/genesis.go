// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	smath "github.com/ava-labs/avalanchego/utils/math"
	"go.uber.org/zap"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/storage"
	"github.com/lpvault/lpvault/utils"
	"github.com/lpvault/lpvault/vault"
)

// Token defines an asset created at genesis. Its ledger id is derived from
// the symbol, so a symbol must never be reused.
type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
	Metadata string `json:"metadata,omitempty"`
}

// ID derives the ledger asset id for a token definition.
func (t *Token) ID() ids.ID {
	return utils.ToID([]byte(t.Symbol))
}

// CustomAllocation credits an address at genesis. An empty symbol allocates
// native value.
type CustomAllocation struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol,omitempty"`
	Balance uint64 `json:"balance"`
}

// Pool selects the asset pair the vault serves. With WrapNative set the base
// symbol names the native wrapper token, which the vault registers itself.
type Pool struct {
	BaseSymbol  string `json:"baseSymbol"`
	QuoteSymbol string `json:"quoteSymbol"`
	WrapNative  bool   `json:"wrapNative"`
}

type Genesis struct {
	// Admin is granted the admin role and becomes the minter of every
	// genesis token.
	Admin string `json:"admin"`

	Tokens      []*Token            `json:"tokens"`
	Allocations []*CustomAllocation `json:"allocations"`
	Pool        Pool                `json:"pool"`
}

func Default() *Genesis {
	return &Genesis{
		Tokens: []*Token{
			{Symbol: "USDV", Name: "Vault Dollar", Decimals: consts.Decimals},
		},
		Pool: Pool{
			BaseSymbol:  "WNAT",
			QuoteSymbol: "USDV",
			WrapNative:  true,
		},
	}
}

// New overlays [b] (when non-empty) on the defaults.
func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	return g, nil
}

// VaultConfig resolves the pool selection to concrete asset ids.
func (g *Genesis) VaultConfig() vault.Config {
	cfg := vault.Config{
		BaseAsset:  utils.ToID([]byte(g.Pool.BaseSymbol)),
		QuoteAsset: utils.ToID([]byte(g.Pool.QuoteSymbol)),
	}
	if g.Pool.WrapNative {
		cfg.NativeWrapper = cfg.BaseAsset
	}
	return cfg
}

// Commit writes the genesis state exactly once: the admin role grant, every
// token record, and all allocations. The serialized document doubles as the
// committed marker, so a second call fails with ErrAlreadyInitialized no
// matter which process makes it.
func (g *Genesis) Commit(ctx context.Context, log logging.Logger, tracer trace.Tracer, db database.KeyValueReaderWriter) error {
	ctx, span := tracer.Start(ctx, "Genesis.Commit")
	defer span.End()

	committed, _, err := storage.GetGenesis(ctx, db)
	if err != nil {
		return err
	}
	if committed {
		return ErrAlreadyInitialized
	}

	admin, tokens, err := g.validate()
	if err != nil {
		return err
	}
	if err := storage.GrantRole(ctx, db, storage.AdminRole, admin); err != nil {
		return err
	}

	supplies := map[ids.ID]uint64{}
	for _, alloc := range g.Allocations {
		addr, err := codec.ParseAddress(alloc.Address)
		if err != nil {
			return err
		}
		asset := consts.NativeAssetID
		if alloc.Symbol != "" {
			token, ok := tokens[alloc.Symbol]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownToken, alloc.Symbol)
			}
			asset = token.ID()
		}
		supply, err := smath.Add(supplies[asset], alloc.Balance)
		if err != nil {
			return fmt.Errorf("%w: total %q allocation", err, alloc.Symbol)
		}
		supplies[asset] = supply
		if err := storage.AddBalance(ctx, db, addr, asset, alloc.Balance, true); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}

	// Native value has no minter: it enters circulation here and only moves
	// afterwards. Genesis tokens stay mintable by the admin.
	if err := storage.SetAsset(ctx, db, consts.NativeAssetID, supplies[consts.NativeAssetID], codec.EmptyAddress); err != nil {
		return err
	}
	for _, token := range tokens {
		if err := storage.SetAsset(ctx, db, token.ID(), supplies[token.ID()], admin); err != nil {
			return err
		}
	}

	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	if err := storage.SetGenesis(ctx, db, raw); err != nil {
		return err
	}

	log.Info("genesis committed",
		zap.String("admin", g.Admin),
		zap.Int("tokens", len(tokens)),
		zap.Int("allocations", len(g.Allocations)),
	)
	return nil
}

// validate resolves the admin address and the token table and checks the
// pool selection against them.
func (g *Genesis) validate() (codec.Address, map[string]*Token, error) {
	if g.Admin == "" {
		return codec.EmptyAddress, nil, ErrMissingAdmin
	}
	admin, err := codec.ParseAddress(g.Admin)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}

	tokens := make(map[string]*Token, len(g.Tokens))
	for _, token := range g.Tokens {
		if token.Symbol == "" {
			return codec.EmptyAddress, nil, fmt.Errorf("%w: empty symbol", ErrUnknownToken)
		}
		if _, ok := tokens[token.Symbol]; ok {
			return codec.EmptyAddress, nil, fmt.Errorf("%w: %q", ErrDuplicateToken, token.Symbol)
		}
		tokens[token.Symbol] = token
	}

	if g.Pool.WrapNative {
		// The wrapper is registered by the vault with its custody address
		// as minter; defining it here would fight that.
		if _, ok := tokens[g.Pool.BaseSymbol]; ok {
			return codec.EmptyAddress, nil, fmt.Errorf("%w: %q", ErrWrapperAllocation, g.Pool.BaseSymbol)
		}
	} else if _, ok := tokens[g.Pool.BaseSymbol]; !ok {
		return codec.EmptyAddress, nil, fmt.Errorf("%w: pool base %q", ErrUnknownToken, g.Pool.BaseSymbol)
	}
	if _, ok := tokens[g.Pool.QuoteSymbol]; !ok {
		return codec.EmptyAddress, nil, fmt.Errorf("%w: pool quote %q", ErrUnknownToken, g.Pool.QuoteSymbol)
	}

	// Nothing is written until every allocation is known to be applicable.
	for _, alloc := range g.Allocations {
		if _, err := codec.ParseAddress(alloc.Address); err != nil {
			return codec.EmptyAddress, nil, err
		}
		if alloc.Symbol == "" {
			continue
		}
		if g.Pool.WrapNative && alloc.Symbol == g.Pool.BaseSymbol {
			return codec.EmptyAddress, nil, fmt.Errorf("%w: %q", ErrWrapperAllocation, alloc.Symbol)
		}
		if _, ok := tokens[alloc.Symbol]; !ok {
			return codec.EmptyAddress, nil, fmt.Errorf("%w: %q", ErrUnknownToken, alloc.Symbol)
		}
	}
	return admin, tokens, nil
}
