// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/avalanchego/database"

	"github.com/lpvault/lpvault/auth"
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/pebble"
	"github.com/lpvault/lpvault/rpc"
)

// Handler bundles the interactive prompts and the local key/endpoint
// store every command works against.
type Handler struct {
	c Controller

	db database.Database
}

func New(c Controller) (*Handler, error) {
	db, _, err := pebble.New(c.DatabasePath(), pebble.NewDefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Handler{c, db}, nil
}

// DefaultActor resolves the default key and endpoint into everything a
// signed call needs.
func (h *Handler) DefaultActor() (codec.Address, auth.Factory, *rpc.JSONRPCClient, error) {
	pk, err := h.GetDefaultKey()
	if err != nil {
		return codec.EmptyAddress, nil, nil, err
	}
	factory, err := auth.GetFactory(pk)
	if err != nil {
		return codec.EmptyAddress, nil, nil, err
	}
	uri, err := h.GetDefaultEndpoint()
	if err != nil {
		return codec.EmptyAddress, nil, nil, err
	}
	return pk.Address, factory, rpc.NewJSONRPCClient(uri), nil
}
