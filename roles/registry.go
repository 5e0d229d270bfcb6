// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roles

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/storage"
)

// Registry tracks which addresses hold which capabilities. Grants and
// revokes are gated on the admin role; the very first admin is written at
// genesis, below this layer.
type Registry struct {
	log    logging.Logger
	tracer trace.Tracer

	mu sync.RWMutex
	db database.KeyValueReaderWriterDeleter
}

func New(log logging.Logger, tracer trace.Tracer, db database.KeyValueReaderWriterDeleter) *Registry {
	return &Registry{
		log:    log,
		tracer: tracer,
		db:     db,
	}
}

// Has returns whether [addr] holds [role].
func (r *Registry) Has(ctx context.Context, role byte, addr codec.Address) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "Registry.Has")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return storage.HasRole(ctx, r.db, role, addr)
}

// Grant gives [role] to [grantee]. [granter] must hold the admin role.
func (r *Registry) Grant(ctx context.Context, granter codec.Address, role byte, grantee codec.Address) error {
	ctx, span := r.tracer.Start(ctx, "Registry.Grant")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	isAdmin, err := storage.HasRole(ctx, r.db, storage.AdminRole, granter)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	if err := storage.GrantRole(ctx, r.db, role, grantee); err != nil {
		return err
	}
	r.log.Info("role granted",
		zap.Uint8("role", role),
		zap.String("grantee", grantee.String()),
		zap.String("granter", granter.String()),
	)
	return nil
}

// Revoke removes [role] from [grantee]. [revoker] must hold the admin role.
// Revoking a role the grantee does not hold is a no-op.
func (r *Registry) Revoke(ctx context.Context, revoker codec.Address, role byte, grantee codec.Address) error {
	ctx, span := r.tracer.Start(ctx, "Registry.Revoke")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	isAdmin, err := storage.HasRole(ctx, r.db, storage.AdminRole, revoker)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	if err := storage.RevokeRole(ctx, r.db, role, grantee); err != nil {
		return err
	}
	r.log.Info("role revoked",
		zap.Uint8("role", role),
		zap.String("grantee", grantee.String()),
		zap.String("revoker", revoker.String()),
	)
	return nil
}
