package blsful

import (
	"encoding/hex"
)

// PublicKeyShare is the public point of one secret-key share, used to
// verify that holder's partial signatures and decryption shares.
type PublicKeyShare struct {
	e  Engine
	id uint8
	p  Point
}

// Identifier returns the share's evaluation point.
func (s *PublicKeyShare) Identifier() uint8 { return s.id }

// Engine returns the orientation this share belongs to.
func (s *PublicKeyShare) Engine() Engine { return s.e }

// Verify checks a partial signature from the same share holder. The
// identifiers must match; the pairing check is the ordinary one
// against this share's public point.
func (s *PublicKeyShare) Verify(sig *SignatureShare, msg []byte) error {
	if sig == nil {
		return invalidInputs("nil signature share")
	}
	if s.e != sig.e {
		return invalidInputs("signature share from a different engine")
	}
	if s.id != sig.id {
		return invalidInputs("signature share identifier mismatch")
	}
	if sig.scheme == MessageAugmentation {
		return ErrInvalidSignatureScheme
	}
	return coreVerify(s.e, s.p, sig.p, msg, s.e.dst(sig.scheme))
}

// MarshalBinary returns identifier(1) || compressed point.
func (s *PublicKeyShare) MarshalBinary() ([]byte, error) {
	p := s.p.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, s.id)
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (s *PublicKeyShare) MarshalText() ([]byte, error) {
	b, _ := s.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// PublicKeyShareFromBytes decodes identifier(1) || compressed point,
// inferring the engine from the point length.
func PublicKeyShareFromBytes(data []byte) (*PublicKeyShare, error) {
	if len(data) < 2 {
		return nil, deserializeErr("public key share too short")
	}
	if data[0] == 0 {
		return nil, deserializeErr("share identifier must be nonzero")
	}
	e, err := engineForPublicKeySize(len(data) - 1)
	if err != nil {
		return nil, err
	}
	p, err := e.PublicKeyGroup().FromCompressed(data[1:])
	if err != nil {
		return nil, err
	}
	return &PublicKeyShare{e: e, id: data[0], p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (s *PublicKeyShare) UnmarshalBinary(data []byte) error {
	dec, err := PublicKeyShareFromBytes(data)
	if err != nil {
		return err
	}
	s.e, s.id, s.p = dec.e, dec.id, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (s *PublicKeyShare) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return s.UnmarshalBinary(raw)
}
