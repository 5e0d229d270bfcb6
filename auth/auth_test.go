// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/crypto"
	"github.com/lpvault/lpvault/crypto/ed25519"
)

func TestED25519AddressDerivation(t *testing.T) {
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	addr := NewED25519Address(priv.PublicKey())
	require.Equal(consts.ED25519ID, addr[0])

	// Same key, same address.
	require.Equal(addr, NewED25519Address(priv.PublicKey()))

	other, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	require.NotEqual(addr, NewED25519Address(other.PublicKey()))
}

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	msg := []byte("hello vault")
	sig, err := factory.Sign(msg)
	require.NoError(err)
	require.NoError(sig.Verify(ctx, msg))
	require.Equal(factory.Address(), sig.Actor())

	err = sig.Verify(ctx, []byte("tampered"))
	require.ErrorIs(err, crypto.ErrInvalidSignature)
}

func TestPrivateKeyFactory(t *testing.T) {
	require := require.New(t)

	pk, err := NewED25519PrivateKeyFactory().GeneratePrivateKey()
	require.NoError(err)
	require.Len(pk.Bytes, ed25519.PrivateKeyLen)
	require.Equal(consts.ED25519ID, pk.Address[0])

	// Loading the raw bytes recovers the same address.
	loaded, err := NewED25519PrivateKeyFactory().LoadPrivateKey(pk.Bytes)
	require.NoError(err)
	require.Equal(pk.Address, loaded.Address)

	_, err = NewED25519PrivateKeyFactory().LoadPrivateKey([]byte{0x01, 0x02})
	require.ErrorIs(err, ErrInvalidPrivateKeySize)

	factory, err := GetFactory(pk)
	require.NoError(err)
	require.Equal(pk.Address, factory.Address())

	bad := &PrivateKey{Address: pk.Address, Bytes: pk.Bytes}
	bad.Address[0] = consts.MaxUint8
	_, err = GetFactory(bad)
	require.ErrorIs(err, ErrInvalidKeyType)
}

func TestSignedRequestRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	payload := []byte{0x01, 0x02, 0x03}
	req, err := SignRequest(factory, "vault.deposit", 2_000, payload)
	require.NoError(err)

	actor, err := req.Verify(ctx, 1_000, "vault.deposit", payload)
	require.NoError(err)
	require.Equal(factory.Address(), actor)

	// The envelope survives a JSON round trip, which is how it
	// travels inside RPC argument structs.
	raw, err := json.Marshal(req)
	require.NoError(err)
	var decoded SignedRequest
	require.NoError(json.Unmarshal(raw, &decoded))
	actor, err = decoded.Verify(ctx, 1_000, "vault.deposit", payload)
	require.NoError(err)
	require.Equal(factory.Address(), actor)
}

func TestSignedRequestRejections(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	payload := []byte{0xaa}
	req, err := SignRequest(factory, "vault.sync", 2_000, payload)
	require.NoError(err)

	// Stale envelope.
	_, err = req.Verify(ctx, 3_000, "vault.sync", payload)
	require.ErrorIs(err, ErrExpiredRequest)

	// Replayed against another method.
	_, err = req.Verify(ctx, 1_000, "vault.withdraw", payload)
	require.ErrorIs(err, crypto.ErrInvalidSignature)

	// Replayed with different arguments.
	_, err = req.Verify(ctx, 1_000, "vault.sync", []byte{0xbb})
	require.ErrorIs(err, crypto.ErrInvalidSignature)

	// Shifting the expiry breaks the digest.
	shifted := &SignedRequest{Signer: req.Signer, Signature: req.Signature, Expiry: 1_500}
	_, err = shifted.Verify(ctx, 1_000, "vault.sync", payload)
	require.ErrorIs(err, crypto.ErrInvalidSignature)

	// Malformed key material.
	mangled := &SignedRequest{Signer: req.Signer[:5], Signature: req.Signature, Expiry: req.Expiry}
	_, err = mangled.Verify(ctx, 1_000, "vault.sync", payload)
	require.ErrorIs(err, crypto.ErrInvalidPublicKey)

	mangled = &SignedRequest{Signer: req.Signer, Signature: req.Signature[:5], Expiry: req.Expiry}
	_, err = mangled.Verify(ctx, 1_000, "vault.sync", payload)
	require.ErrorIs(err, crypto.ErrInvalidSignature)
}

func TestDigestDeterministic(t *testing.T) {
	require := require.New(t)

	a := Digest("vault.deposit", 42, []byte{0x01})
	b := Digest("vault.deposit", 42, []byte{0x01})
	require.Equal(a, b)

	require.NotEqual(a, Digest("vault.withdraw", 42, []byte{0x01}))
	require.NotEqual(a, Digest("vault.deposit", 43, []byte{0x01}))
	require.NotEqual(a, Digest("vault.deposit", 42, []byte{0x02}))
}
