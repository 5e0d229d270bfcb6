// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
)

var (
	ErrInvalidKeyType        = errors.New("invalid key type")
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")
	ErrExpiredRequest        = errors.New("request expired")
)

// PrivateKey pairs raw key material with the address derived from it.
// The first address byte records the signing scheme, so a key loaded
// from disk carries enough information to rebuild its factory.
type PrivateKey struct {
	Address codec.Address
	Bytes   []byte
}

// Factory signs canonical digests on behalf of one address.
type Factory interface {
	Sign(msg []byte) (*ED25519, error)
	Address() codec.Address
}

// GetFactory returns the signing factory for a private key. The
// scheme is read off the address prefix.
func GetFactory(pk *PrivateKey) (Factory, error) {
	switch pk.Address[0] {
	case consts.ED25519ID:
		f, err := NewED25519FactoryFromBytes(pk.Bytes)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, ErrInvalidKeyType
	}
}
