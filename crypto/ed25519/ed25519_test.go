// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	oed25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

var oed25519options = &oed25519.Options{
	Verify: oed25519.VerifyOptionsZIP_215,
}

func TestKeyGeneration(t *testing.T) {
	require := require.New(t)

	seen := make(map[PrivateKey]bool)
	for i := 0; i < 10; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		require.NotEqual(EmptyPrivateKey, priv)
		require.Len(priv[:], PrivateKeyLen)
		require.False(seen[priv], "duplicate private key")
		seen[priv] = true
	}
}

func TestPublicKeyDerivation(t *testing.T) {
	require := require.New(t)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(err)

	var want PublicKey
	copy(want[:], pub)
	require.Equal(want, PrivateKey(priv).PublicKey())
}

func TestSignAndVerify(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	msg := []byte("vault deposit")

	sig := Sign(msg, priv)

	// Matches the stdlib signer bit for bit.
	require.Equal(ed25519.Sign(priv[:], msg), sig[:])

	require.True(Verify(msg, priv.PublicKey(), sig))
	require.False(Verify([]byte("vault withdraw"), priv.PublicKey(), sig))

	var tampered Signature
	copy(tampered[:], sig[:])
	tampered[0] ^= 0x01
	require.False(Verify(msg, priv.PublicKey(), tampered))
}

func TestBatchVerify(t *testing.T) {
	require := require.New(t)

	const numItems = 64
	pubs := make([]PublicKey, numItems)
	msgs := make([][]byte, numItems)
	sigs := make([]Signature, numItems)
	for i := 0; i < numItems; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		pubs[i] = priv.PublicKey()
		msgs[i] = make([]byte, 128)
		_, err = rand.Read(msgs[i])
		require.NoError(err)
		sigs[i] = Sign(msgs[i], priv)
	}

	bv := NewBatch(numItems)
	for i := 0; i < numItems; i++ {
		bv.Add(msgs[i], pubs[i], sigs[i])
	}
	require.True(bv.Verify())

	// One bad signature fails the whole batch.
	other, err := GeneratePrivateKey()
	require.NoError(err)
	sigs[numItems/2] = Sign([]byte("unrelated"), other)
	bv = NewBatch(numItems)
	for i := 0; i < numItems; i++ {
		bv.Add(msgs[i], pubs[i], sigs[i])
	}
	require.False(bv.Verify())
}

func BenchmarkStdLibVerifySingle(b *testing.B) {
	require := require.New(b)
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(err)
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(err)
	sig := ed25519.Sign(priv, msg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.True(ed25519.Verify(pub, msg, sig), "invalid signature")
	}
}

func BenchmarkConsensusVerifySingle(b *testing.B) {
	require := require.New(b)
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(err)
	priv, err := GeneratePrivateKey()
	require.NoError(err)
	sig := Sign(msg, priv)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.True(Verify(msg, priv.PublicKey(), sig), "invalid signature")
	}
}

func BenchmarkVoiVerifySingle(b *testing.B) {
	require := require.New(b)
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(err)
	pub, priv, err := oed25519.GenerateKey(nil)
	require.NoError(err)
	sig := oed25519.Sign(priv, msg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.True(oed25519.VerifyWithOptions(pub, msg, sig, oed25519options), "invalid signature")
	}
}

func BenchmarkBatchVerify(b *testing.B) {
	for _, numItems := range []int{4, 16, 64, 256} {
		b.Run(strconv.Itoa(numItems), func(b *testing.B) {
			require := require.New(b)
			pubs := make([]PublicKey, numItems)
			msgs := make([][]byte, numItems)
			sigs := make([]Signature, numItems)
			for i := 0; i < numItems; i++ {
				priv, err := GeneratePrivateKey()
				require.NoError(err)
				pubs[i] = priv.PublicKey()
				msgs[i] = make([]byte, 128)
				_, err = rand.Read(msgs[i])
				require.NoError(err)
				sigs[i] = Sign(msgs[i], priv)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bv := NewBatch(numItems)
				for j := 0; j < numItems; j++ {
					bv.Add(msgs[j], pubs[j], sigs[j])
				}
				require.True(bv.Verify())
			}
		})
	}
}

func BenchmarkVoiBatchVerify(b *testing.B) {
	for _, numItems := range []int{4, 16, 64, 256} {
		b.Run(strconv.Itoa(numItems), func(b *testing.B) {
			require := require.New(b)
			pubs := make([]oed25519.PublicKey, numItems)
			msgs := make([][]byte, numItems)
			sigs := make([][]byte, numItems)
			for i := 0; i < numItems; i++ {
				pub, priv, err := oed25519.GenerateKey(nil)
				require.NoError(err)
				pubs[i] = pub
				msgs[i] = make([]byte, 128)
				_, err = rand.Read(msgs[i])
				require.NoError(err)
				sigs[i] = oed25519.Sign(priv, msgs[i])
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bv := oed25519.NewBatchVerifierWithCapacity(numItems)
				for j := 0; j < numItems; j++ {
					bv.AddWithOptions(pubs[j], msgs[j], sigs[j], oed25519options)
				}
				require.True(bv.VerifyBatchOnly(nil), "invalid signature")
			}
		})
	}
}
