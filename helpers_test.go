package blsful

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashToScalarDeterministic(t *testing.T) {
	a := hashToScalar([]byte("input"), keygenSalt)
	b := hashToScalar([]byte("input"), keygenSalt)
	require.True(t, a.Equal(&b))
	require.False(t, a.IsZero())

	// Salt separates domains.
	c := hashToScalar([]byte("input"), pokSalt)
	assert.False(t, a.Equal(&c))
}

func TestFrameMessage(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("short"),
		bytes.Repeat([]byte{0xab}, 31),
		bytes.Repeat([]byte{0xcd}, 32),
		bytes.Repeat([]byte{0xef}, 500),
	}
	for _, msg := range cases {
		framed := frameMessage(msg)
		require.GreaterOrEqual(t, len(framed), minFramedSize)
		out, ok := unframeMessage(framed)
		require.True(t, ok)
		assert.Equal(t, msg, out)
	}
}

func TestUnframeRejectsOverrun(t *testing.T) {
	// Claims 200 bytes but carries none.
	_, ok := unframeMessage([]byte{200, 1, 0, 0})
	assert.False(t, ok)

	_, ok = unframeMessage(nil)
	assert.False(t, ok)
}

func TestByteXor(t *testing.T) {
	out, err := byteXor([]byte{0xff, 0x00}, []byte{0x0f, 0xf0})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf0, 0xf0}, out)

	_, err = byteXor([]byte{1}, []byte{1, 2})
	assert.ErrorIs(t, err, ErrInvalidInputs)
}

func TestXofMaskInvolution(t *testing.T) {
	key := []byte("mask key")
	data := []byte("some plaintext data that is long enough")
	masked := xofMask(key, data)
	assert.NotEqual(t, data, masked)
	assert.Equal(t, data, xofMask(key, masked))
}

func TestLagrangeCoefficientValidation(t *testing.T) {
	_, err := lagrangeCoefficients([]uint8{1})
	assert.ErrorIs(t, err, ErrInvalidInputs)

	_, err = lagrangeCoefficients([]uint8{1, 1})
	assert.ErrorIs(t, err, ErrInvalidInputs)

	_, err = lagrangeCoefficients([]uint8{0, 1})
	assert.ErrorIs(t, err, ErrInvalidInputs)

	coeffs, err := lagrangeCoefficients([]uint8{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, coeffs, 3)
}

func TestParseSignatureScheme(t *testing.T) {
	for _, scheme := range testSchemes {
		parsed, err := ParseSignatureScheme(scheme.String())
		require.NoError(t, err)
		assert.Equal(t, scheme, parsed)
	}
	_, err := ParseSignatureScheme("NotAScheme")
	assert.ErrorIs(t, err, ErrInvalidInputs)
}
