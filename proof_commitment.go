package blsful

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ProofCommitment is the first message of the interactive signature
// proof of knowledge: u = H(msg) * x for a fresh blinding scalar x.
// The matching ProofCommitmentSecret holds x; keeping them as separate
// types means a proof cannot be finalized without both the commitment
// and the verifier's challenge in hand.
type ProofCommitment struct {
	e      Engine
	scheme SignatureScheme
	u      Point
}

// ProofCommitmentSecret is the prover's blinding scalar. Zeroize it
// after finalizing.
type ProofCommitmentSecret struct {
	x fr.Element
}

// ProofCommitmentChallenge is the verifier's second message.
type ProofCommitmentChallenge struct {
	y fr.Element
}

// NewProofCommitment opens a proof of knowledge of sig over msg,
// returning the commitment to send and the secret to retain.
func NewProofCommitment(sig *Signature, msg []byte) (*ProofCommitment, *ProofCommitmentSecret, error) {
	if sig == nil || sig.p == nil {
		return nil, nil, invalidInputs("nil signature")
	}
	x, err := randomScalar(pokSalt)
	if err != nil {
		return nil, nil, err
	}
	a, err := sig.e.SignatureGroup().Hash(msg, sig.e.dst(sig.scheme))
	if err != nil {
		return nil, nil, err
	}
	u := a.Mul(&x)
	if u.IsIdentity() {
		return nil, nil, invalidInputs("commitment is the identity point")
	}
	return &ProofCommitment{e: sig.e, scheme: sig.scheme, u: u}, &ProofCommitmentSecret{x: x}, nil
}

// Finalize produces the proof from the retained secret, the verifier's
// challenge, and the signature being proven. The signature's scheme and
// engine must match the commitment's.
func (c *ProofCommitment) Finalize(secret *ProofCommitmentSecret, challenge *ProofCommitmentChallenge, sig *Signature) (*ProofOfKnowledge, error) {
	if secret == nil || challenge == nil || sig == nil || sig.p == nil {
		return nil, invalidInputs("nil proof input")
	}
	if sig.e != c.e || sig.scheme != c.scheme {
		return nil, ErrInvalidProof
	}
	if secret.x.IsZero() || challenge.y.IsZero() {
		return nil, invalidInputs("zero proof scalar")
	}
	if sig.p.IsIdentity() {
		return nil, invalidInputs("signature is the identity point")
	}
	var t fr.Element
	t.Add(&secret.x, &challenge.y)
	v := sig.p.Mul(&t).Neg()
	wipeScalar(&t)
	return &ProofOfKnowledge{e: c.e, scheme: c.scheme, u: c.u, v: v}, nil
}

// Scheme returns the scheme tag the commitment was opened under.
func (c *ProofCommitment) Scheme() SignatureScheme { return c.scheme }

// Zeroize overwrites the blinding scalar in place.
func (s *ProofCommitmentSecret) Zeroize() {
	wipeScalar(&s.x)
}

// NewProofCommitmentChallenge draws a random challenge.
func NewProofCommitmentChallenge() (*ProofCommitmentChallenge, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	return ProofCommitmentChallengeFromHash(seed[:]), nil
}

// ProofCommitmentChallengeFromHash derives a challenge from arbitrary
// transcript data, for verifiers that bind the challenge to context.
func ProofCommitmentChallengeFromHash(data []byte) *ProofCommitmentChallenge {
	return &ProofCommitmentChallenge{y: hashToScalar(data, pokSalt)}
}

// ProofCommitmentChallengeFromBytes decodes a canonical 32-byte
// big-endian scalar.
func ProofCommitmentChallengeFromBytes(data []byte) (*ProofCommitmentChallenge, error) {
	if len(data) != SecretKeySize {
		return nil, deserializeErr("challenge must be 32 bytes")
	}
	var y fr.Element
	if err := y.SetBytesCanonical(data); err != nil {
		return nil, deserializeErr("non-canonical challenge scalar")
	}
	if y.IsZero() {
		return nil, deserializeErr("challenge is zero")
	}
	return &ProofCommitmentChallenge{y: y}, nil
}

// MarshalBinary returns the 32-byte challenge scalar.
func (c *ProofCommitmentChallenge) MarshalBinary() ([]byte, error) {
	b := c.y.Bytes()
	return b[:], nil
}

// MarshalText returns the challenge as lowercase hex.
func (c *ProofCommitmentChallenge) MarshalText() ([]byte, error) {
	b, _ := c.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// UnmarshalBinary decodes a 32-byte challenge scalar.
func (c *ProofCommitmentChallenge) UnmarshalBinary(data []byte) error {
	dec, err := ProofCommitmentChallengeFromBytes(data)
	if err != nil {
		return err
	}
	c.y = dec.y
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (c *ProofCommitmentChallenge) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return c.UnmarshalBinary(raw)
}

// MarshalBinary returns scheme(1) || compressed commitment point.
func (c *ProofCommitment) MarshalBinary() ([]byte, error) {
	p := c.u.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, byte(c.scheme))
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (c *ProofCommitment) MarshalText() ([]byte, error) {
	b, _ := c.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ProofCommitmentFromBytes decodes scheme(1) || compressed point,
// inferring the engine from the point length.
func ProofCommitmentFromBytes(data []byte) (*ProofCommitment, error) {
	if len(data) < 2 {
		return nil, deserializeErr("proof commitment too short")
	}
	scheme := SignatureScheme(data[0])
	if !scheme.valid() {
		return nil, deserializeErr("unknown signature scheme tag")
	}
	e, err := engineForSignatureSize(len(data) - 1)
	if err != nil {
		return nil, err
	}
	u, err := e.SignatureGroup().FromCompressed(data[1:])
	if err != nil {
		return nil, err
	}
	return &ProofCommitment{e: e, scheme: scheme, u: u}, nil
}

// UnmarshalBinary decodes the binary form.
func (c *ProofCommitment) UnmarshalBinary(data []byte) error {
	dec, err := ProofCommitmentFromBytes(data)
	if err != nil {
		return err
	}
	c.e, c.scheme, c.u = dec.e, dec.scheme, dec.u
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (c *ProofCommitment) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return c.UnmarshalBinary(raw)
}
