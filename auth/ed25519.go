// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/crypto"
	"github.com/lpvault/lpvault/crypto/ed25519"
	"github.com/lpvault/lpvault/utils"
)

const ED25519Key = "ed25519"

// ED25519 proves that the holder of [Signer] authorized a message.
// Signatures are checked under ZIP-215 rules, so envelopes verified
// one at a time and envelopes verified in a batch agree.
type ED25519 struct {
	Signer    ed25519.PublicKey
	Signature ed25519.Signature

	addr codec.Address
}

func (d *ED25519) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewED25519Address(d.Signer)
	}
	return d.addr
}

func (d *ED25519) Verify(_ context.Context, msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return crypto.ErrInvalidSignature
	}
	return nil
}

func (d *ED25519) Actor() codec.Address {
	return d.address()
}

var _ Factory = (*ED25519Factory)(nil)

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

// NewED25519FactoryFromBytes rebuilds a factory from raw key material,
// such as a key file written by the CLI.
func NewED25519FactoryFromBytes(b []byte) (*ED25519Factory, error) {
	if len(b) != ed25519.PrivateKeyLen {
		return nil, ErrInvalidPrivateKeySize
	}
	return &ED25519Factory{ed25519.PrivateKey(b)}, nil
}

func (d *ED25519Factory) Sign(msg []byte) (*ED25519, error) {
	sig := ed25519.Sign(msg, d.priv)
	return &ED25519{Signer: d.priv.PublicKey(), Signature: sig}, nil
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(consts.ED25519ID, utils.ToID(pk[:]))
}

type ED25519PrivateKeyFactory struct{}

func NewED25519PrivateKeyFactory() *ED25519PrivateKeyFactory {
	return &ED25519PrivateKeyFactory{}
}

func (*ED25519PrivateKeyFactory) GeneratePrivateKey() (*PrivateKey, error) {
	p, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Address: NewED25519Address(p.PublicKey()),
		Bytes:   p[:],
	}, nil
}

func (*ED25519PrivateKeyFactory) LoadPrivateKey(privateKey []byte) (*PrivateKey, error) {
	if len(privateKey) != ed25519.PrivateKeyLen {
		return nil, ErrInvalidPrivateKeySize
	}
	priv := ed25519.PrivateKey(privateKey)
	return &PrivateKey{
		Address: NewED25519Address(priv.PublicKey()),
		Bytes:   privateKey,
	}, nil
}
