package blsful

import (
	"encoding/hex"
)

// MultiPublicKey is the sum of the member public keys behind a
// multi-signature.
type MultiPublicKey struct {
	e Engine
	p Point
}

// Engine returns the orientation this key belongs to.
func (m *MultiPublicKey) Engine() Engine { return m.e }

// NewMultiPublicKey sums the given public keys.
func NewMultiPublicKey(pks ...*PublicKey) (*MultiPublicKey, error) {
	if len(pks) == 0 {
		return nil, invalidInputs("no public keys to combine")
	}
	e := pks[0].e
	sum := e.PublicKeyGroup().Identity()
	for _, pk := range pks {
		if pk.e != e {
			return nil, invalidInputs("public keys from different engines")
		}
		sum = sum.Add(pk.p)
	}
	return &MultiPublicKey{e: e, p: sum}, nil
}

// MarshalBinary returns the compressed point.
func (m *MultiPublicKey) MarshalBinary() ([]byte, error) {
	return m.p.Bytes(), nil
}

// MarshalText returns the compressed point as lowercase hex.
func (m *MultiPublicKey) MarshalText() ([]byte, error) {
	b, _ := m.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// MultiPublicKeyFromBytes decodes a compressed point, inferring the
// engine from its length.
func MultiPublicKeyFromBytes(data []byte) (*MultiPublicKey, error) {
	e, err := engineForPublicKeySize(len(data))
	if err != nil {
		return nil, err
	}
	p, err := e.PublicKeyGroup().FromCompressed(data)
	if err != nil {
		return nil, err
	}
	return &MultiPublicKey{e: e, p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (m *MultiPublicKey) UnmarshalBinary(data []byte) error {
	dec, err := MultiPublicKeyFromBytes(data)
	if err != nil {
		return err
	}
	m.e, m.p = dec.e, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (m *MultiPublicKey) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return m.UnmarshalBinary(raw)
}
