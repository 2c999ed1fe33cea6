package blsful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignCryptRoundTrip(t *testing.T) {
	msg := []byte("sealed and signed")
	for _, e := range testEngines {
		for _, scheme := range testSchemes {
			t.Run(e.Name()+"/"+scheme.String(), func(t *testing.T) {
				sk, err := NewSecretKey(e)
				require.NoError(t, err)
				ct, err := sk.PublicKey().SignCrypt(scheme, msg)
				require.NoError(t, err)
				require.True(t, ct.IsValid())

				pt, ok := ct.Decrypt(sk)
				require.True(t, ok)
				assert.Equal(t, msg, pt)
			})
		}
	}
}

func TestSignCryptEmptyAndLongMessages(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	pk := sk.PublicKey()

	for _, msg := range [][]byte{{}, make([]byte, 1000)} {
		ct, err := pk.SignCrypt(Basic, msg)
		require.NoError(t, err)
		pt, ok := ct.Decrypt(sk)
		require.True(t, ok)
		assert.Equal(t, msg, pt)
	}
}

func TestSignCryptTamperDetected(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	ct, err := sk.PublicKey().SignCrypt(Basic, []byte("integrity"))
	require.NoError(t, err)

	ct.v[0] ^= 0xff
	assert.False(t, ct.IsValid())
	pt, ok := ct.Decrypt(sk)
	assert.False(t, ok)
	assert.Nil(t, pt)
}

func TestSignCryptWrongKeyFails(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	other, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)

	ct, err := sk.PublicKey().SignCrypt(Basic, []byte("for one key only"))
	require.NoError(t, err)

	_, ok := ct.Decrypt(other)
	assert.False(t, ok)
}

func TestSignCryptThreshold(t *testing.T) {
	msg := []byte("threshold decryption")
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			shares, err := sk.Split(2, 3)
			require.NoError(t, err)

			ct, err := sk.PublicKey().SignCrypt(Basic, msg)
			require.NoError(t, err)

			ds := make([]*SignCryptDecryptionShare, 3)
			for i, s := range shares {
				ds[i], err = ct.NewDecryptionShare(s)
				require.NoError(t, err)
				require.NoError(t, ds[i].Verify(s.PublicKeyShare(), ct))
			}

			pt, ok := ct.DecryptWithShares(ds[0], ds[2])
			require.True(t, ok)
			assert.Equal(t, msg, pt)

			pt, ok = ct.DecryptWithShares(ds...)
			require.True(t, ok)
			assert.Equal(t, msg, pt)

			// A single share is never enough.
			_, ok = ct.DecryptWithShares(ds[0])
			assert.False(t, ok)
		})
	}
}

func TestSignCryptUnderThresholdShares(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	shares, err := sk.Split(3, 4)
	require.NoError(t, err)

	ct, err := sk.PublicKey().SignCrypt(Basic, []byte("needs three"))
	require.NoError(t, err)

	d1, err := ct.NewDecryptionShare(shares[0])
	require.NoError(t, err)
	d2, err := ct.NewDecryptionShare(shares[1])
	require.NoError(t, err)

	_, ok := ct.DecryptWithShares(d1, d2)
	assert.False(t, ok)
}

func TestSignCryptDecryptionShareVerifyRejectsWrongHolder(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G2)
	require.NoError(t, err)
	shares, err := sk.Split(2, 3)
	require.NoError(t, err)

	ct, err := sk.PublicKey().SignCrypt(ProofOfPossession, []byte("msg"))
	require.NoError(t, err)

	ds, err := ct.NewDecryptionShare(shares[0])
	require.NoError(t, err)
	assert.ErrorIs(t, ds.Verify(shares[1].PublicKeyShare(), ct), ErrInvalidInputs)
}

func TestSignCryptDecryptionShareVerifyRejectsTamperedCiphertext(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	shares, err := sk.Split(2, 3)
	require.NoError(t, err)

	ct, err := sk.PublicKey().SignCrypt(Basic, []byte("msg"))
	require.NoError(t, err)
	ds, err := ct.NewDecryptionShare(shares[0])
	require.NoError(t, err)

	ct.v[0] ^= 0x01
	assert.ErrorIs(t, ds.Verify(shares[0].PublicKeyShare(), ct), ErrInvalidDecryptionShare)
}

func TestSignCryptCiphertextRoundTrip(t *testing.T) {
	for _, e := range testEngines {
		t.Run(e.Name(), func(t *testing.T) {
			sk, err := NewSecretKey(e)
			require.NoError(t, err)
			ct, err := sk.PublicKey().SignCrypt(MessageAugmentation, []byte("wire format"))
			require.NoError(t, err)

			data, err := ct.MarshalBinary()
			require.NoError(t, err)
			dec, err := SignCryptCiphertextFromBytes(e, data)
			require.NoError(t, err)
			require.True(t, dec.IsValid())

			pt, ok := dec.Decrypt(sk)
			require.True(t, ok)
			assert.Equal(t, []byte("wire format"), pt)

			txt, err := ct.MarshalText()
			require.NoError(t, err)
			dec2 := &SignCryptCiphertext{e: e}
			require.NoError(t, dec2.UnmarshalText(txt))
			pt, ok = dec2.Decrypt(sk)
			require.True(t, ok)
			assert.Equal(t, []byte("wire format"), pt)
		})
	}
}

func TestSignCryptDecryptionShareRoundTrip(t *testing.T) {
	sk, err := NewSecretKey(Bls12381G1)
	require.NoError(t, err)
	shares, err := sk.Split(2, 2)
	require.NoError(t, err)
	ct, err := sk.PublicKey().SignCrypt(Basic, []byte("msg"))
	require.NoError(t, err)
	ds, err := ct.NewDecryptionShare(shares[1])
	require.NoError(t, err)

	data, err := ds.MarshalBinary()
	require.NoError(t, err)
	dec, err := SignCryptDecryptionShareFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, ds.id, dec.id)
	assert.True(t, ds.p.Equal(dec.p))
}
