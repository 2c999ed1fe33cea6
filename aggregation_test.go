package blsful

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiSignature(t *testing.T) {
	msg := []byte("common message")
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sks := make([]*SecretKey, 4)
			pks := make([]*PublicKey, 4)
			sigs := make([]*Signature, 4)
			for i := range sks {
				sk, err := NewSecretKey(e)
				require.NoError(t, err)
				pop, err := sk.ProofOfPossession()
				require.NoError(t, err)
				require.NoError(t, pop.Verify(sk.PublicKey()))

				sks[i] = sk
				pks[i] = sk.PublicKey()
				sigs[i], err = sk.Sign(ProofOfPossession, msg)
				require.NoError(t, err)
			}

			multiSig, err := NewMultiSignature(sigs...)
			require.NoError(t, err)
			multiPk, err := NewMultiPublicKey(pks...)
			require.NoError(t, err)

			require.NoError(t, multiSig.Verify(multiPk, msg))
			assert.ErrorIs(t, multiSig.Verify(multiPk, []byte("other")), ErrInvalidSignature)

			// Dropping a signer breaks the sum.
			partial, err := NewMultiSignature(sigs[:3]...)
			require.NoError(t, err)
			assert.ErrorIs(t, partial.Verify(multiPk, msg), ErrInvalidSignature)
		})
	}
}

func TestMultiSignatureRejectsMixedSchemes(t *testing.T) {
	sk1, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	sk2, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)

	s1, err := sk1.Sign(Basic, []byte("msg"))
	require.NoError(t, err)
	s2, err := sk2.Sign(ProofOfPossession, []byte("msg"))
	require.NoError(t, err)

	_, err = NewMultiSignature(s1, s2)
	assert.ErrorIs(t, err, ErrInvalidSignatureScheme)
}

func TestMultiSignatureRoundTrip(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	sig, err := sk.Sign(ProofOfPossession, []byte("msg"))
	require.NoError(t, err)
	ms, err := NewMultiSignature(sig)
	require.NoError(t, err)

	data, err := ms.MarshalBinary()
	require.NoError(t, err)
	dec, err := MultiSignatureFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, ms.scheme, dec.scheme)
	assert.True(t, ms.p.Equal(dec.p))

	mpk, err := NewMultiPublicKey(sk.PublicKey())
	require.NoError(t, err)
	pkData, err := mpk.MarshalBinary()
	require.NoError(t, err)
	mpkDec, err := MultiPublicKeyFromBytes(pkData)
	require.NoError(t, err)
	require.NoError(t, dec.Verify(mpkDec, []byte("msg")))
}

func TestAggregateSignature(t *testing.T) {
	for _, e := range testEngines {
		for _, scheme := range testSchemes {
			t.Run(e.Name()+"/"+scheme.String(), func(t *testing.T) {
				items := make([]AggregateItem, 3)
				sigs := make([]*Signature, 3)
				for i := range items {
					sk, err := NewSecretKey(e)
					require.NoError(t, err)
					msg := []byte(fmt.Sprintf("message %d", i))
					sigs[i], err = sk.Sign(scheme, msg)
					require.NoError(t, err)
					items[i] = AggregateItem{PublicKey: sk.PublicKey(), Message: msg}
				}

				agg, err := NewAggregateSignature(sigs...)
				require.NoError(t, err)
				require.NoError(t, agg.Verify(items))

				// Swapping two messages breaks the binding.
				items[0].Message, items[1].Message = items[1].Message, items[0].Message
				assert.ErrorIs(t, agg.Verify(items), ErrInvalidSignature)
			})
		}
	}
}

func TestAggregateBasicRejectsDuplicateMessages(t *testing.T) {
	msg := []byte("repeated")
	sk1, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	sk2, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)

	s1, err := sk1.Sign(Basic, msg)
	require.NoError(t, err)
	s2, err := sk2.Sign(Basic, msg)
	require.NoError(t, err)

	agg, err := NewAggregateSignature(s1, s2)
	require.NoError(t, err)
	err = agg.Verify([]AggregateItem{
		{PublicKey: sk1.PublicKey(), Message: msg},
		{PublicKey: sk2.PublicKey(), Message: msg},
	})
	require.ErrorIs(t, err, ErrInvalidInputs)
	assert.Contains(t, err.Error(), "indices 0 and 1")
}

func TestAggregateAugmentationAllowsRepeatedMessages(t *testing.T) {
	// Augmentation prefixes each signer's key, so equal caller
	// messages still hash to distinct inputs.
	msg := []byte("repeated")
	sk1, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	sk2, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)

	s1, err := sk1.Sign(MessageAugmentation, msg)
	require.NoError(t, err)
	s2, err := sk2.Sign(MessageAugmentation, msg)
	require.NoError(t, err)

	agg, err := NewAggregateSignature(s1, s2)
	require.NoError(t, err)
	require.NoError(t, agg.Verify([]AggregateItem{
		{PublicKey: sk1.PublicKey(), Message: msg},
		{PublicKey: sk2.PublicKey(), Message: msg},
	}))
}

func TestAggregateSignatureRoundTrip(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G2)
	require.NoError(t, err)
	sig, err := sk.Sign(Basic, []byte("msg"))
	require.NoError(t, err)
	agg, err := NewAggregateSignature(sig)
	require.NoError(t, err)

	data, err := agg.MarshalBinary()
	require.NoError(t, err)
	dec, err := AggregateSignatureFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, dec.Verify([]AggregateItem{
		{PublicKey: sk.PublicKey(), Message: []byte("msg")},
	}))
}
