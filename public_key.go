package blsful

import (
	"encoding/hex"
)

// PublicKey is a point in the engine's public-key group.
type PublicKey struct {
	e Engine
	p Point
}

// Engine returns the orientation this key belongs to.
func (pk *PublicKey) Engine() Engine { return pk.e }

// IsValid reports whether the key is usable: not the identity element.
// Subgroup membership is enforced at decode time.
func (pk *PublicKey) IsValid() bool {
	return pk.p != nil && !pk.p.IsIdentity()
}

// PublicKeyFromShares interpolates public-key shares at zero to
// recover the combined public key. At least two shares with distinct
// identifiers are required; under-threshold inputs produce a wrong key
// that verifies nothing.
func PublicKeyFromShares(shares ...*PublicKeyShare) (*PublicKey, error) {
	if len(shares) < 2 {
		return nil, invalidInputs("at least two shares are required")
	}
	e := shares[0].e
	raw := make([]pointShare, len(shares))
	for i, s := range shares {
		if s.e != e {
			return nil, invalidInputs("shares from different engines")
		}
		raw[i] = pointShare{id: s.id, p: s.p}
	}
	p, err := combinePointShares(e.PublicKeyGroup(), raw)
	if err != nil {
		return nil, err
	}
	return &PublicKey{e: e, p: p}, nil
}

// PublicKeyFromBytes decodes a compressed public key, inferring the
// engine from the point length (96 bytes for Bls12381G1, 48 for
// Bls12381G2). The identity element is rejected.
func PublicKeyFromBytes(data []byte) (*PublicKey, error) {
	e, err := engineForPublicKeySize(len(data))
	if err != nil {
		return nil, err
	}
	p, err := e.PublicKeyGroup().FromCompressed(data)
	if err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return nil, deserializeErr("public key is the identity point")
	}
	return &PublicKey{e: e, p: p}, nil
}

// MarshalBinary returns the compressed point.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.p.Bytes(), nil
}

// MarshalText returns the compressed point as lowercase hex.
func (pk *PublicKey) MarshalText() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// UnmarshalBinary decodes a compressed public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	dec, err := PublicKeyFromBytes(data)
	if err != nil {
		return err
	}
	pk.e, pk.p = dec.e, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (pk *PublicKey) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return pk.UnmarshalBinary(raw)
}
