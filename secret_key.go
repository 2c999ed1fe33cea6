package blsful

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// SecretKey is a nonzero scalar bound to an engine orientation.
type SecretKey struct {
	e Engine
	v fr.Element
}

// NewSecretKey draws a fresh secret key from the system CSPRNG,
// derived through the keyed HKDF so raw CSPRNG output never becomes
// key material directly.
func NewSecretKey(e Engine) (*SecretKey, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, err
	}
	sk := SecretKeyFromHash(e, ikm[:])
	wipeBytes(ikm[:])
	return sk, nil
}

// SecretKeyFromHash derives a secret key deterministically from
// arbitrary input key material. The same material always yields the
// same key.
func SecretKeyFromHash(e Engine, data []byte) *SecretKey {
	return &SecretKey{e: e, v: hashToScalar(data, keygenSalt)}
}

// SecretKeyFromBytes decodes a 32-byte big-endian scalar. The encoding
// must be canonical and nonzero.
func SecretKeyFromBytes(e Engine, data []byte) (*SecretKey, error) {
	if len(data) != SecretKeySize {
		return nil, deserializeErr("secret key must be 32 bytes")
	}
	var v fr.Element
	if err := v.SetBytesCanonical(data); err != nil {
		return nil, deserializeErr("non-canonical secret key scalar")
	}
	if v.IsZero() {
		return nil, deserializeErr("secret key is zero")
	}
	return &SecretKey{e: e, v: v}, nil
}

// Engine returns the orientation this key was created for.
func (sk *SecretKey) Engine() Engine { return sk.e }

// PublicKey returns generator * sk in the public-key group.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{e: sk.e, p: sk.e.PublicKeyGroup().Generator().Mul(&sk.v)}
}

// Sign produces a signature over msg under the given scheme.
func (sk *SecretKey) Sign(scheme SignatureScheme, msg []byte) (*Signature, error) {
	if !scheme.valid() {
		return nil, invalidInputs("unknown signature scheme")
	}
	input := msg
	if scheme == MessageAugmentation {
		input = augmentMessage(sk.PublicKey().p, msg)
	}
	p, err := coreSign(sk.e, &sk.v, input, sk.e.dst(scheme))
	if err != nil {
		return nil, err
	}
	return &Signature{e: sk.e, scheme: scheme, p: p}, nil
}

// ProofOfPossession self-signs the compressed public key under the
// possession tag.
func (sk *SecretKey) ProofOfPossession() (*PossessionProof, error) {
	pk := sk.PublicKey()
	p, err := coreSign(sk.e, &sk.v, pk.p.Bytes(), sk.e.popDST())
	if err != nil {
		return nil, err
	}
	return &PossessionProof{e: sk.e, p: p}, nil
}

// Split shares the key into limit shares, any threshold of which
// recover it. Identifiers are 1-based and fit one byte.
func (sk *SecretKey) Split(threshold, limit int) ([]*SecretKeyShare, error) {
	raw, err := splitScalar(&sk.v, threshold, limit)
	if err != nil {
		return nil, err
	}
	shares := make([]*SecretKeyShare, len(raw))
	for i := range raw {
		shares[i] = &SecretKeyShare{e: sk.e, id: raw[i].id, v: raw[i].value}
		wipeScalar(&raw[i].value)
	}
	return shares, nil
}

// CombineSecretKeyShares recovers the key from at least two shares
// with distinct identifiers. Fewer shares than the original threshold
// yield a uniformly wrong key.
func CombineSecretKeyShares(shares ...*SecretKeyShare) (*SecretKey, error) {
	if len(shares) < 2 {
		return nil, invalidInputs("at least two shares are required")
	}
	e := shares[0].e
	raw := make([]scalarShare, len(shares))
	for i, s := range shares {
		if s.e != e {
			return nil, invalidInputs("shares from different engines")
		}
		raw[i] = scalarShare{id: s.id, value: s.v}
	}
	v, err := combineScalarShares(raw)
	if err != nil {
		return nil, err
	}
	if v.IsZero() {
		return nil, fmt.Errorf("%w: combined to the zero scalar", ErrInvalidInputs)
	}
	return &SecretKey{e: e, v: v}, nil
}

// Zeroize overwrites the scalar in place. The key must not be used
// afterwards.
func (sk *SecretKey) Zeroize() {
	wipeScalar(&sk.v)
}

// MarshalBinary returns the 32-byte big-endian scalar.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	b := sk.v.Bytes()
	return b[:], nil
}

// MarshalText returns the scalar as lowercase hex.
func (sk *SecretKey) MarshalText() ([]byte, error) {
	b, _ := sk.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// UnmarshalBinary decodes a 32-byte scalar. The engine must already be
// set on the receiver; the scalar encoding does not determine it.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	if sk.e == nil {
		return invalidInputs("engine must be set before unmarshaling a secret key")
	}
	dec, err := SecretKeyFromBytes(sk.e, data)
	if err != nil {
		return err
	}
	sk.v = dec.v
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (sk *SecretKey) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return sk.UnmarshalBinary(raw)
}
