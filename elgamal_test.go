package blsful

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElGamalEncryptDecrypt(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			pk := sk.PublicKey()

			var m fr.Element
			m.SetUint64(12345)
			ct, err := pk.ElGamalEncrypt(&m)
			require.NoError(t, err)

			pt, err := ct.Decrypt(sk)
			require.NoError(t, err)
			expected := e.PublicKeyGroup().Generator().Mul(&m)
			assert.True(t, expected.Equal(pt))
		})
	}
}

func TestElGamalHomomorphicAddition(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	pk := sk.PublicKey()

	var a, b, c, sum fr.Element
	a.SetUint64(100)
	b.SetUint64(200)
	c.SetUint64(300)
	sum.Add(&a, &b)
	sum.Add(&sum, &c)

	ctA, err := pk.ElGamalEncrypt(&a)
	require.NoError(t, err)
	ctB, err := pk.ElGamalEncrypt(&b)
	require.NoError(t, err)
	ctC, err := pk.ElGamalEncrypt(&c)
	require.NoError(t, err)

	ctSum, err := ctA.Add(ctB)
	require.NoError(t, err)
	ctSum, err = ctSum.Add(ctC)
	require.NoError(t, err)

	pt, err := ctSum.Decrypt(sk)
	require.NoError(t, err)
	expected := Bls12381G1.PublicKeyGroup().Generator().Mul(&sum)
	assert.True(t, expected.Equal(pt))
}

func TestElGamalEncryptWithExplicitGeneratorAndBlinder(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			pk := sk.PublicKey()

			var genScalar, m, blinder fr.Element
			genScalar.SetUint64(11)
			m.SetUint64(42)
			blinder.SetUint64(987654321)
			gen := e.PublicKeyGroup().Generator().Mul(&genScalar)

			ct, err := pk.ElGamalEncryptWith(&m, gen, &blinder)
			require.NoError(t, err)

			// A fixed blinder makes encryption deterministic.
			ct2, err := pk.ElGamalEncryptWith(&m, gen, &blinder)
			require.NoError(t, err)
			assert.True(t, ct.c1.Equal(ct2.c1))
			assert.True(t, ct.c2.Equal(ct2.c2))

			pt, err := ct.Decrypt(sk)
			require.NoError(t, err)
			assert.True(t, gen.Mul(&m).Equal(pt))
		})
	}
}

func TestElGamalEncryptWithRejectsBadInputs(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	pk := sk.PublicKey()

	var m, zero fr.Element
	m.SetUint64(1)
	_, err = pk.ElGamalEncryptWith(&m, Bls12381G1.PublicKeyGroup().Identity(), nil)
	assert.ErrorIs(t, err, ErrInvalidInputs)
	_, err = pk.ElGamalEncryptWith(&m, nil, &zero)
	assert.ErrorIs(t, err, ErrInvalidInputs)
}

func TestElGamalEncryptPoint(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)

			var s fr.Element
			s.SetUint64(7)
			m := e.PublicKeyGroup().Generator().Mul(&s)

			ct, err := sk.PublicKey().ElGamalEncryptPoint(m)
			require.NoError(t, err)
			pt, err := ct.Decrypt(sk)
			require.NoError(t, err)
			assert.True(t, m.Equal(pt))
		})
	}
}

func TestElGamalProofWithGenerator(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	pk := sk.PublicKey()

	var genScalar, m fr.Element
	genScalar.SetUint64(13)
	m.SetUint64(321)
	gen := Bls12381G1.PublicKeyGroup().Generator().Mul(&genScalar)

	proof, err := pk.ElGamalEncryptWithProofGenerator(&m, gen)
	require.NoError(t, err)
	require.NoError(t, proof.VerifyWithGenerator(pk, gen))

	// The transcript binds the generator.
	assert.ErrorIs(t, proof.Verify(pk), ErrInvalidProof)

	pt, err := proof.Ciphertext().Decrypt(sk)
	require.NoError(t, err)
	assert.True(t, gen.Mul(&m).Equal(pt))
}

func TestElGamalEncryptBytes(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G2)
	require.NoError(t, err)
	pk := sk.PublicKey()

	ct, err := pk.ElGamalEncryptBytes([]byte("hashed message"))
	require.NoError(t, err)

	pt, err := ct.Decrypt(sk)
	require.NoError(t, err)
	m := hashToScalar([]byte("hashed message"), elGamalSalt)
	expected := Bls12381G2.PublicKeyGroup().Generator().Mul(&m)
	assert.True(t, expected.Equal(pt))
}

func TestElGamalProof(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			pk := sk.PublicKey()

			var m fr.Element
			m.SetUint64(777)
			proof, err := pk.ElGamalEncryptWithProof(&m)
			require.NoError(t, err)
			require.NoError(t, proof.Verify(pk))

			pt, err := proof.VerifyAndDecrypt(sk)
			require.NoError(t, err)
			expected := e.PublicKeyGroup().Generator().Mul(&m)
			assert.True(t, expected.Equal(pt))

			// Wrong key: transcript binds the public key.
			other, err := NewSecretKey(e)
			require.NoError(t, err)
			assert.ErrorIs(t, proof.Verify(other.PublicKey()), ErrInvalidProof)
		})
	}
}

func TestElGamalProofTamperDetected(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	pk := sk.PublicKey()

	var m fr.Element
	m.SetUint64(9)
	proof, err := pk.ElGamalEncryptWithProof(&m)
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()
	proof.messageProof.Add(&proof.messageProof, &one)
	assert.ErrorIs(t, proof.Verify(pk), ErrInvalidProof)
}

func TestElGamalThresholdDecryption(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			pk := sk.PublicKey()
			shares, err := sk.Split(2, 3)
			require.NoError(t, err)

			var m fr.Element
			m.SetUint64(4242)
			ct, err := pk.ElGamalEncrypt(&m)
			require.NoError(t, err)

			d1, err := ct.NewDecryptionShare(shares[0])
			require.NoError(t, err)
			d3, err := ct.NewDecryptionShare(shares[2])
			require.NoError(t, err)

			key, err := ElGamalDecryptionKeyFromShares(d1, d3)
			require.NoError(t, err)
			pt, err := key.Decrypt(ct)
			require.NoError(t, err)

			direct, err := ct.Decrypt(sk)
			require.NoError(t, err)
			assert.True(t, direct.Equal(pt))

			_, err = ElGamalDecryptionKeyFromShares(d1)
			assert.ErrorIs(t, err, ErrInvalidInputs)
		})
	}
}

func TestElGamalCiphertextRoundTrip(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			var m fr.Element
			m.SetUint64(31337)
			ct, err := sk.PublicKey().ElGamalEncrypt(&m)
			require.NoError(t, err)

			data, err := ct.MarshalBinary()
			require.NoError(t, err)
			dec, err := ElGamalCiphertextFromBytes(data)
			require.NoError(t, err)
			assert.Equal(t, e, dec.e)
			assert.True(t, ct.c1.Equal(dec.c1))
			assert.True(t, ct.c2.Equal(dec.c2))

			txt, err := ct.MarshalText()
			require.NoError(t, err)
			var dec2 ElGamalCiphertext
			require.NoError(t, dec2.UnmarshalText(txt))
			pt, err := dec2.Decrypt(sk)
			require.NoError(t, err)
			expected := e.PublicKeyGroup().Generator().Mul(&m)
			assert.True(t, expected.Equal(pt))
		})
	}
}

func TestElGamalProofRoundTrip(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G2)
	require.NoError(t, err)
	pk := sk.PublicKey()

	var m fr.Element
	m.SetUint64(55)
	proof, err := pk.ElGamalEncryptWithProof(&m)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)
	dec, err := ElGamalProofFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, dec.Verify(pk))
}

func TestElGamalDecryptionShareRoundTrip(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	shares, err := sk.Split(2, 2)
	require.NoError(t, err)

	var m fr.Element
	m.SetUint64(1)
	ct, err := sk.PublicKey().ElGamalEncrypt(&m)
	require.NoError(t, err)
	ds, err := ct.NewDecryptionShare(shares[0])
	require.NoError(t, err)

	data, err := ds.MarshalBinary()
	require.NoError(t, err)
	dec, err := ElGamalDecryptionShareFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, ds.id, dec.id)
	assert.True(t, ds.p.Equal(dec.p))
}
