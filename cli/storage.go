// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/lpvault/lpvault/auth"
	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/utils"
)

const (
	defaultPrefix  = 0x0
	keyPrefix      = 0x1
	endpointPrefix = 0x2

	defaultKeyKey      = "key"
	defaultEndpointKey = "endpoint"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	return h.db.Put(k, value)
}

func (h *Handler) GetDefault(key string) ([]byte, error) {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) StoreKey(pk *auth.PrivateKey) error {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], pk.Address[:])
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	return h.db.Put(k, pk.Bytes)
}

// GetKey returns the stored key material for [addr], or nil when the
// address has never been stored.
func (h *Handler) GetKey(addr codec.Address) (*auth.PrivateKey, error) {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.PrivateKey{Address: addr, Bytes: v}, nil
}

func (h *Handler) GetKeys() ([]*auth.PrivateKey, error) {
	iter := h.db.NewIteratorWithPrefix([]byte{keyPrefix})
	defer iter.Release()

	privateKeys := []*auth.PrivateKey{}
	for iter.Next() {
		// It is safe to use these bytes directly because the database copies the
		// iterator value for us.
		privateKeys = append(privateKeys, &auth.PrivateKey{
			Address: codec.Address(iter.Key()[1:]),
			Bytes:   iter.Value(),
		})
	}
	return privateKeys, iter.Error()
}

func (h *Handler) StoreDefaultKey(addr codec.Address) error {
	return h.StoreDefault(defaultKeyKey, addr[:])
}

func (h *Handler) GetDefaultKey() (*auth.PrivateKey, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNoKeys
	}
	addr := codec.Address(v)
	pk, err := h.GetKey(addr)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, ErrNoKeys
	}
	utils.Outf("{{yellow}}address:{{/}} %s\n", addr)
	return pk, nil
}

func (h *Handler) StoreEndpoint(uri string) error {
	k := make([]byte, 1+consts.IDLen)
	k[0] = endpointPrefix
	uriID := utils.ToID([]byte(uri))
	copy(k[1:], uriID[:])
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	return h.db.Put(k, []byte(uri))
}

func (h *Handler) GetEndpoints() ([]string, error) {
	iter := h.db.NewIteratorWithPrefix([]byte{endpointPrefix})
	defer iter.Release()

	endpoints := []string{}
	for iter.Next() {
		// It is safe to use these bytes directly because the database copies the
		// iterator value for us.
		endpoints = append(endpoints, string(iter.Value()))
	}
	return endpoints, iter.Error()
}

func (h *Handler) StoreDefaultEndpoint(uri string) error {
	return h.StoreDefault(defaultEndpointKey, []byte(uri))
}

// GetDefaultEndpoint falls back to the only stored endpoint when no
// default was ever set.
func (h *Handler) GetDefaultEndpoint() (string, error) {
	v, err := h.GetDefault(defaultEndpointKey)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		utils.Outf("{{yellow}}uri:{{/}} %s\n", string(v))
		return string(v), nil
	}
	endpoints, err := h.GetEndpoints()
	if err != nil {
		return "", err
	}
	if len(endpoints) != 1 {
		return "", ErrNoEndpoints
	}
	utils.Outf("{{yellow}}uri:{{/}} %s\n", endpoints[0])
	return endpoints[0], nil
}

func (h *Handler) DeleteEndpoints() ([]string, error) {
	endpoints, err := h.GetEndpoints()
	if err != nil {
		return nil, err
	}
	for _, uri := range endpoints {
		k := make([]byte, 1+consts.IDLen)
		k[0] = endpointPrefix
		uriID := utils.ToID([]byte(uri))
		copy(k[1:], uriID[:])
		if err := h.db.Delete(k); err != nil {
			return nil, err
		}
	}
	return endpoints, nil
}

func (h *Handler) CloseDatabase() error {
	if h.db == nil {
		return nil
	}
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("unable to close database: %w", err)
	}
	// Allow DB to be closed multiple times
	h.db = nil
	return nil
}
