package blsful

import (
	"encoding/hex"
)

// SignatureShare is a partial signature from one share holder.
type SignatureShare struct {
	e      Engine
	scheme SignatureScheme
	id     uint8
	p      Point
}

// Identifier returns the signing share's evaluation point.
func (s *SignatureShare) Identifier() uint8 { return s.id }

// Scheme returns the tag the partial signature was produced under.
func (s *SignatureShare) Scheme() SignatureScheme { return s.scheme }

// Engine returns the orientation this share belongs to.
func (s *SignatureShare) Engine() Engine { return s.e }

// MarshalBinary returns scheme(1) || identifier(1) || compressed point.
func (s *SignatureShare) MarshalBinary() ([]byte, error) {
	p := s.p.Bytes()
	out := make([]byte, 0, 2+len(p))
	out = append(out, byte(s.scheme), s.id)
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (s *SignatureShare) MarshalText() ([]byte, error) {
	b, _ := s.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// SignatureShareFromBytes decodes scheme(1) || identifier(1) ||
// compressed point, inferring the engine from the point length.
func SignatureShareFromBytes(data []byte) (*SignatureShare, error) {
	if len(data) < 3 {
		return nil, deserializeErr("signature share too short")
	}
	scheme := SignatureScheme(data[0])
	if !scheme.valid() {
		return nil, deserializeErr("unknown signature scheme tag")
	}
	if data[1] == 0 {
		return nil, deserializeErr("share identifier must be nonzero")
	}
	e, err := engineForSignatureSize(len(data) - 2)
	if err != nil {
		return nil, err
	}
	p, err := e.SignatureGroup().FromCompressed(data[2:])
	if err != nil {
		return nil, err
	}
	return &SignatureShare{e: e, scheme: scheme, id: data[1], p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (s *SignatureShare) UnmarshalBinary(data []byte) error {
	dec, err := SignatureShareFromBytes(data)
	if err != nil {
		return err
	}
	s.e, s.scheme, s.id, s.p = dec.e, dec.scheme, dec.id, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (s *SignatureShare) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return s.UnmarshalBinary(raw)
}
