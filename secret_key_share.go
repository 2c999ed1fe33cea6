package blsful

import (
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// SecretKeyShare is one Shamir share of a secret key, tagged with its
// 1-based evaluation point.
type SecretKeyShare struct {
	e  Engine
	id uint8
	v  fr.Element
}

// Identifier returns the share's evaluation point.
func (s *SecretKeyShare) Identifier() uint8 { return s.id }

// Engine returns the orientation this share was created for.
func (s *SecretKeyShare) Engine() Engine { return s.e }

// PublicKeyShare returns generator * share, the share holder's public
// verification point.
func (s *SecretKeyShare) PublicKeyShare() *PublicKeyShare {
	return &PublicKeyShare{e: s.e, id: s.id, p: s.e.PublicKeyGroup().Generator().Mul(&s.v)}
}

// Sign produces a partial signature over msg. MessageAugmentation is
// rejected: augmentation prefixes the combined public key, which a
// single share holder cannot compute.
func (s *SecretKeyShare) Sign(scheme SignatureScheme, msg []byte) (*SignatureShare, error) {
	switch scheme {
	case Basic, ProofOfPossession:
	case MessageAugmentation:
		return nil, fmt.Errorf("%w: message augmentation cannot be threshold-signed", ErrSigning)
	default:
		return nil, invalidInputs("unknown signature scheme")
	}
	p, err := coreSign(s.e, &s.v, msg, s.e.dst(scheme))
	if err != nil {
		return nil, err
	}
	return &SignatureShare{e: s.e, scheme: scheme, id: s.id, p: p}, nil
}

// Zeroize overwrites the share scalar in place.
func (s *SecretKeyShare) Zeroize() {
	wipeScalar(&s.v)
}

// MarshalBinary returns identifier(1) || scalar(32).
func (s *SecretKeyShare) MarshalBinary() ([]byte, error) {
	v := s.v.Bytes()
	out := make([]byte, 0, 1+SecretKeySize)
	out = append(out, s.id)
	return append(out, v[:]...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (s *SecretKeyShare) MarshalText() ([]byte, error) {
	b, _ := s.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// SecretKeyShareFromBytes decodes identifier(1) || scalar(32).
func SecretKeyShareFromBytes(e Engine, data []byte) (*SecretKeyShare, error) {
	if len(data) != 1+SecretKeySize {
		return nil, deserializeErr("secret key share must be 33 bytes")
	}
	if data[0] == 0 {
		return nil, deserializeErr("share identifier must be nonzero")
	}
	var v fr.Element
	if err := v.SetBytesCanonical(data[1:]); err != nil {
		return nil, deserializeErr("non-canonical share scalar")
	}
	return &SecretKeyShare{e: e, id: data[0], v: v}, nil
}

// UnmarshalBinary decodes the binary form; the engine must already be
// set on the receiver.
func (s *SecretKeyShare) UnmarshalBinary(data []byte) error {
	if s.e == nil {
		return invalidInputs("engine must be set before unmarshaling a share")
	}
	dec, err := SecretKeyShareFromBytes(s.e, data)
	if err != nil {
		return err
	}
	s.id, s.v = dec.id, dec.v
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (s *SecretKeyShare) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return s.UnmarshalBinary(raw)
}
