// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"fmt"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/crypto"
	"github.com/lpvault/lpvault/crypto/ed25519"
)

// SignedRequest is the wire envelope carried by privileged RPC calls.
// The signature covers the canonical digest of the method name, the
// expiry and the method payload, so a captured envelope cannot be
// replayed against a different method, with different arguments, or
// after it expires.
type SignedRequest struct {
	Signer    codec.Bytes `json:"signer"`
	Signature codec.Bytes `json:"signature"`

	// Expiry is a unix millisecond timestamp after which the
	// envelope is refused.
	Expiry int64 `json:"expiry"`
}

// Digest returns the canonical byte string signed for a privileged
// call. [payload] is the method's own packed argument encoding; both
// sides must produce it with the same packer sequence.
func Digest(method string, expiry int64, payload []byte) []byte {
	size := codec.StringLen(method) + consts.Uint64Len + codec.BytesLen(payload)
	p := codec.NewWriter(size, size)
	p.PackString(method)
	p.PackInt64(expiry)
	p.PackBytes(payload)
	return p.Bytes()
}

// SignRequest wraps [payload] in an envelope for [method] using [f].
func SignRequest(f Factory, method string, expiry int64, payload []byte) (*SignedRequest, error) {
	sig, err := f.Sign(Digest(method, expiry, payload))
	if err != nil {
		return nil, err
	}
	return &SignedRequest{
		Signer:    sig.Signer[:],
		Signature: sig.Signature[:],
		Expiry:    expiry,
	}, nil
}

// Verify checks the envelope against [method] and [payload] at time
// [now] and returns the signer's address on success.
func (s *SignedRequest) Verify(ctx context.Context, now int64, method string, payload []byte) (codec.Address, error) {
	if now > s.Expiry {
		return codec.EmptyAddress, fmt.Errorf("%w: expired %dms ago", ErrExpiredRequest, now-s.Expiry)
	}
	if len(s.Signer) != ed25519.PublicKeyLen {
		return codec.EmptyAddress, crypto.ErrInvalidPublicKey
	}
	if len(s.Signature) != ed25519.SignatureLen {
		return codec.EmptyAddress, crypto.ErrInvalidSignature
	}
	d := &ED25519{
		Signer:    ed25519.PublicKey(s.Signer),
		Signature: ed25519.Signature(s.Signature),
	}
	if err := d.Verify(ctx, Digest(method, s.Expiry, payload)); err != nil {
		return codec.EmptyAddress, err
	}
	return d.Actor(), nil
}
