package blsful

import (
	"encoding/hex"
)

// MultiSignature is the sum of signatures from distinct signers over
// the same message. Every constituent must carry the same scheme tag.
// Verify each signer's proof of possession before trusting a
// multi-signature built from anything but the ProofOfPossession
// scheme; the sum is forgeable by rogue keys otherwise.
type MultiSignature struct {
	e      Engine
	scheme SignatureScheme
	p      Point
}

// Scheme returns the shared scheme tag.
func (m *MultiSignature) Scheme() SignatureScheme { return m.scheme }

// Engine returns the orientation this signature belongs to.
func (m *MultiSignature) Engine() Engine { return m.e }

// NewMultiSignature sums the given signatures. Mixed scheme tags or
// engines are rejected.
func NewMultiSignature(sigs ...*Signature) (*MultiSignature, error) {
	if len(sigs) == 0 {
		return nil, invalidInputs("no signatures to combine")
	}
	e := sigs[0].e
	scheme := sigs[0].scheme
	sum := e.SignatureGroup().Identity()
	for _, s := range sigs {
		if s.e != e {
			return nil, invalidInputs("signatures from different engines")
		}
		if s.scheme != scheme {
			return nil, ErrInvalidSignatureScheme
		}
		sum = sum.Add(s.p)
	}
	return &MultiSignature{e: e, scheme: scheme, p: sum}, nil
}

// Verify checks the multi-signature against the matching multi
// public key and the common message.
func (m *MultiSignature) Verify(pk *MultiPublicKey, msg []byte) error {
	if pk == nil || pk.p == nil {
		return invalidInputs("nil multi public key")
	}
	if m.e != pk.e {
		return invalidInputs("public key from a different engine")
	}
	input := schemeMessage(m.scheme, pk.p, msg)
	return coreVerify(m.e, pk.p, m.p, input, m.e.dst(m.scheme))
}

// MarshalBinary returns scheme(1) || compressed point.
func (m *MultiSignature) MarshalBinary() ([]byte, error) {
	p := m.p.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, byte(m.scheme))
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (m *MultiSignature) MarshalText() ([]byte, error) {
	b, _ := m.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// MultiSignatureFromBytes decodes scheme(1) || compressed point.
func MultiSignatureFromBytes(data []byte) (*MultiSignature, error) {
	dec, err := SignatureFromBytes(data)
	if err != nil {
		return nil, err
	}
	return &MultiSignature{e: dec.e, scheme: dec.scheme, p: dec.p}, nil
}

// UnmarshalBinary decodes the binary form.
func (m *MultiSignature) UnmarshalBinary(data []byte) error {
	dec, err := MultiSignatureFromBytes(data)
	if err != nil {
		return err
	}
	m.e, m.scheme, m.p = dec.e, dec.scheme, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (m *MultiSignature) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return m.UnmarshalBinary(raw)
}
