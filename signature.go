package blsful

import (
	"encoding/hex"
)

// Signature is a scheme-tagged point in the engine's signature group.
type Signature struct {
	e      Engine
	scheme SignatureScheme
	p      Point
}

// Scheme returns the tag the signature was produced under.
func (s *Signature) Scheme() SignatureScheme { return s.scheme }

// Engine returns the orientation this signature belongs to.
func (s *Signature) Engine() Engine { return s.e }

// Verify checks the signature against pk and msg under the scheme the
// signature carries.
func (s *Signature) Verify(pk *PublicKey, msg []byte) error {
	if pk == nil || pk.p == nil {
		return invalidInputs("nil public key")
	}
	if s.e != pk.e {
		return invalidInputs("public key from a different engine")
	}
	input := schemeMessage(s.scheme, pk.p, msg)
	return coreVerify(s.e, pk.p, s.p, input, s.e.dst(s.scheme))
}

// SignatureFromShares combines partial signatures by Lagrange
// interpolation in the exponent. All shares must carry the same scheme
// tag and engine; at least two distinct identifiers are required.
// Under-threshold inputs combine into a signature that verifies
// nothing.
func SignatureFromShares(shares ...*SignatureShare) (*Signature, error) {
	if len(shares) < 2 {
		return nil, invalidInputs("at least two shares are required")
	}
	e := shares[0].e
	scheme := shares[0].scheme
	raw := make([]pointShare, len(shares))
	for i, s := range shares {
		if s.e != e {
			return nil, invalidInputs("shares from different engines")
		}
		if s.scheme != scheme {
			return nil, ErrInvalidSignatureScheme
		}
		raw[i] = pointShare{id: s.id, p: s.p}
	}
	p, err := combinePointShares(e.SignatureGroup(), raw)
	if err != nil {
		return nil, err
	}
	return &Signature{e: e, scheme: scheme, p: p}, nil
}

// MarshalBinary returns scheme(1) || compressed point.
func (s *Signature) MarshalBinary() ([]byte, error) {
	p := s.p.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, byte(s.scheme))
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (s *Signature) MarshalText() ([]byte, error) {
	b, _ := s.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// SignatureFromBytes decodes scheme(1) || compressed point, inferring
// the engine from the point length (48 bytes for Bls12381G1, 96 for
// Bls12381G2). The identity element is rejected.
func SignatureFromBytes(data []byte) (*Signature, error) {
	if len(data) < 2 {
		return nil, deserializeErr("signature too short")
	}
	scheme := SignatureScheme(data[0])
	if !scheme.valid() {
		return nil, deserializeErr("unknown signature scheme tag")
	}
	e, err := engineForSignatureSize(len(data) - 1)
	if err != nil {
		return nil, err
	}
	p, err := e.SignatureGroup().FromCompressed(data[1:])
	if err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return nil, deserializeErr("signature is the identity point")
	}
	return &Signature{e: e, scheme: scheme, p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (s *Signature) UnmarshalBinary(data []byte) error {
	dec, err := SignatureFromBytes(data)
	if err != nil {
		return err
	}
	s.e, s.scheme, s.p = dec.e, dec.scheme, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (s *Signature) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return s.UnmarshalBinary(raw)
}
