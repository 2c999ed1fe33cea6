package blsful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchemes = []SignatureScheme{Basic, MessageAugmentation, ProofOfPossession}

func TestSignVerify(t *testing.T) {
	msg := []byte("the quick brown fox")
	for _, e := range testEngines {
		for _, scheme := range testSchemes {
			t.Run(e.Name()+"/"+scheme.String(), func(t *testing.T) {
				sk, err := NewSecretKey(e)
				require.NoError(t, err)
				pk := sk.PublicKey()

				sig, err := sk.Sign(scheme, msg)
				require.NoError(t, err)
				require.Equal(t, scheme, sig.Scheme())
				require.NoError(t, sig.Verify(pk, msg))

				assert.ErrorIs(t, sig.Verify(pk, []byte("other message")), ErrInvalidSignature)

				other, err := NewSecretKey(e)
				require.NoError(t, err)
				assert.ErrorIs(t, sig.Verify(other.PublicKey(), msg), ErrInvalidSignature)
			})
		}
	}
}

func TestSchemesProduceDistinctSignatures(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	msg := []byte("same message")

	basic, err := sk.Sign(Basic, msg)
	require.NoError(t, err)
	aug, err := sk.Sign(MessageAugmentation, msg)
	require.NoError(t, err)
	pop, err := sk.Sign(ProofOfPossession, msg)
	require.NoError(t, err)

	assert.False(t, basic.p.Equal(aug.p))
	assert.False(t, basic.p.Equal(pop.p))
	assert.False(t, aug.p.Equal(pop.p))
}

func TestSignatureRoundTrip(t *testing.T) {
	for _, e := range testEngines {
		for _, scheme := range testSchemes {
			t.Run(e.Name()+"/"+scheme.String(), func(t *testing.T) {
				sk, err := NewSecretKey(e)
				require.NoError(t, err)
				sig, err := sk.Sign(scheme, []byte("round trip"))
				require.NoError(t, err)

				data, err := sig.MarshalBinary()
				require.NoError(t, err)
				require.Len(t, data, 1+e.SignatureGroup().CompressedSize())

				dec, err := SignatureFromBytes(data)
				require.NoError(t, err)
				assert.Equal(t, e, dec.e)
				assert.Equal(t, scheme, dec.scheme)
				assert.True(t, sig.p.Equal(dec.p))

				txt, err := sig.MarshalText()
				require.NoError(t, err)
				var dec2 Signature
				require.NoError(t, dec2.UnmarshalText(txt))
				require.NoError(t, dec2.Verify(sk.PublicKey(), []byte("round trip")))
			})
		}
	}
}

func TestSignatureFromBytesRejectsBadInput(t *testing.T) {
	_, err := SignatureFromBytes([]byte{0x00})
	assert.ErrorIs(t, err, ErrDeserialize)

	_, err = SignatureFromBytes(append([]byte{0x07}, make([]byte, 48)...))
	assert.ErrorIs(t, err, ErrDeserialize)

	// Compressed identity encoding is a valid point but not a valid
	// signature.
	identity := make([]byte, 48)
	identity[0] = 0xc0
	_, err = SignatureFromBytes(append([]byte{0x00}, identity...))
	assert.ErrorIs(t, err, ErrDeserialize)
}

func TestProofOfPossession(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			pop, err := sk.ProofOfPossession()
			require.NoError(t, err)
			require.NoError(t, pop.Verify(sk.PublicKey()))

			other, err := NewSecretKey(e)
			require.NoError(t, err)
			assert.ErrorIs(t, pop.Verify(other.PublicKey()), ErrInvalidSignature)
		})
	}
}

func TestProofOfPossessionDiffersFromPopSignature(t *testing.T) {
	// The possession proof signs the public key under its own tag, so
	// it must not validate as an ordinary ProofOfPossession-scheme
	// signature over the key bytes.
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	pk := sk.PublicKey()

	pop, err := sk.ProofOfPossession()
	require.NoError(t, err)
	sig, err := sk.Sign(ProofOfPossession, pk.p.Bytes())
	require.NoError(t, err)
	assert.False(t, pop.p.Equal(sig.p))
}

func TestProofOfPossessionRoundTrip(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G2)
	require.NoError(t, err)
	pop, err := sk.ProofOfPossession()
	require.NoError(t, err)

	data, err := pop.MarshalBinary()
	require.NoError(t, err)
	dec, err := ProofOfPossessionFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, dec.Verify(sk.PublicKey()))
}

func TestVerifyRejectsEngineMismatch(t *testing.T) {
	sk1, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	sk2, err := NewSecretKey(Bls12381G2)
	require.NoError(t, err)

	sig, err := sk1.Sign(Basic, []byte("msg"))
	require.NoError(t, err)
	assert.ErrorIs(t, sig.Verify(sk2.PublicKey(), []byte("msg")), ErrInvalidInputs)
}
