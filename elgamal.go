package blsful

import (
	"encoding/hex"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/gtank/merlin"
)

// ElGamalCiphertext is an exponential ElGamal encryption of a scalar
// message in the public-key group:
//
//	c1 = g * b
//	c2 = pk * b + gen * m
//
// Decryption recovers gen * m, not m; recovering the scalar itself
// needs a discrete log over the message space and is left to callers.
// Ciphertexts under the same key add homomorphically.
type ElGamalCiphertext struct {
	e      Engine
	c1, c2 Point
}

func elGamalSeal(pk *PublicKey, m *fr.Element, gen Point, blinder *fr.Element) (*ElGamalCiphertext, error) {
	if !pk.IsValid() {
		return nil, invalidInputs("invalid public key")
	}
	if gen.IsIdentity() {
		return nil, invalidInputs("message generator is the identity point")
	}
	c1 := pk.e.PublicKeyGroup().Generator().Mul(blinder)
	c2 := pk.p.Mul(blinder).Add(gen.Mul(m))
	return &ElGamalCiphertext{e: pk.e, c1: c1, c2: c2}, nil
}

// ElGamalEncrypt encrypts the scalar m to pk with a fresh blinder and
// the group generator as the message generator.
func (pk *PublicKey) ElGamalEncrypt(m *fr.Element) (*ElGamalCiphertext, error) {
	return pk.ElGamalEncryptWith(m, nil, nil)
}

// ElGamalEncryptWith encrypts the scalar m with an explicit message
// generator and blinder. A nil gen selects the group generator; a nil
// blinder draws a fresh one. Callers supplying a blinder must never
// reuse it across messages.
func (pk *PublicKey) ElGamalEncryptWith(m *fr.Element, gen Point, blinder *fr.Element) (*ElGamalCiphertext, error) {
	if gen == nil {
		gen = pk.e.PublicKeyGroup().Generator()
	}
	if blinder != nil {
		if blinder.IsZero() {
			return nil, invalidInputs("blinder is zero")
		}
		return elGamalSeal(pk, m, gen, blinder)
	}
	b, err := randomScalar(elGamalSalt)
	if err != nil {
		return nil, err
	}
	ct, err := elGamalSeal(pk, m, gen, &b)
	wipeScalar(&b)
	return ct, err
}

// ElGamalEncryptPoint encrypts a group-element message directly:
// c2 = pk * b + m. Decryption recovers m itself.
func (pk *PublicKey) ElGamalEncryptPoint(m Point) (*ElGamalCiphertext, error) {
	if !pk.IsValid() {
		return nil, invalidInputs("invalid public key")
	}
	if m == nil {
		return nil, invalidInputs("nil message point")
	}
	b, err := randomScalar(elGamalSalt)
	if err != nil {
		return nil, err
	}
	c1 := pk.e.PublicKeyGroup().Generator().Mul(&b)
	c2 := pk.p.Mul(&b).Add(m)
	wipeScalar(&b)
	return &ElGamalCiphertext{e: pk.e, c1: c1, c2: c2}, nil
}

// ElGamalEncryptBytes hashes data to a scalar and encrypts it.
func (pk *PublicKey) ElGamalEncryptBytes(data []byte) (*ElGamalCiphertext, error) {
	m := hashToScalar(data, elGamalSalt)
	return pk.ElGamalEncrypt(&m)
}

// Engine returns the orientation this ciphertext belongs to.
func (c *ElGamalCiphertext) Engine() Engine { return c.e }

// Add returns the component-wise sum, an encryption of the sum of the
// two plaintext scalars under the same key.
func (c *ElGamalCiphertext) Add(rhs *ElGamalCiphertext) (*ElGamalCiphertext, error) {
	if rhs == nil {
		return nil, invalidInputs("nil ciphertext")
	}
	if c.e != rhs.e {
		return nil, invalidInputs("ciphertexts from different engines")
	}
	return &ElGamalCiphertext{e: c.e, c1: c.c1.Add(rhs.c1), c2: c.c2.Add(rhs.c2)}, nil
}

// Decrypt returns gen * m = c2 - c1 * sk.
func (c *ElGamalCiphertext) Decrypt(sk *SecretKey) (Point, error) {
	if sk == nil {
		return nil, invalidInputs("nil secret key")
	}
	if sk.e != c.e {
		return nil, invalidInputs("secret key from a different engine")
	}
	return c.c2.Add(c.c1.Mul(&sk.v).Neg()), nil
}

// ElGamalDecryptionShare is one holder's partial decryption,
// c1 * skShare.
type ElGamalDecryptionShare struct {
	e  Engine
	id uint8
	p  Point
}

// NewDecryptionShare produces this ciphertext's partial decryption for
// one secret-key share.
func (c *ElGamalCiphertext) NewDecryptionShare(share *SecretKeyShare) (*ElGamalDecryptionShare, error) {
	if share == nil {
		return nil, invalidInputs("nil secret key share")
	}
	if share.e != c.e {
		return nil, invalidInputs("share from a different engine")
	}
	return &ElGamalDecryptionShare{e: c.e, id: share.id, p: c.c1.Mul(&share.v)}, nil
}

// Identifier returns the share holder's evaluation point.
func (s *ElGamalDecryptionShare) Identifier() uint8 { return s.id }

// ElGamalDecryptionKey is the combined decryption point c1 * sk,
// recoverable from decryption shares without reassembling the key.
type ElGamalDecryptionKey struct {
	e Engine
	p Point
}

// ElGamalDecryptionKeyFromShares interpolates decryption shares at
// zero. Under-threshold inputs interpolate to a wrong key and a wrong
// plaintext point, indistinguishable from a correct one.
func ElGamalDecryptionKeyFromShares(shares ...*ElGamalDecryptionShare) (*ElGamalDecryptionKey, error) {
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
	return &ElGamalDecryptionKey{e: e, p: p}, nil
}

// Decrypt returns gen * m = c2 - (c1 * sk).
func (k *ElGamalDecryptionKey) Decrypt(c *ElGamalCiphertext) (Point, error) {
	if c == nil {
		return nil, invalidInputs("nil ciphertext")
	}
	if k.e != c.e {
		return nil, invalidInputs("ciphertext from a different engine")
	}
	return c.c2.Add(k.p.Neg()), nil
}

// ElGamalProof is a Chaum-Pedersen style proof that a ciphertext
// encrypts a known scalar under a known blinder, made non-interactive
// with a merlin transcript.
type ElGamalProof struct {
	ct           ElGamalCiphertext
	messageProof fr.Element
	blinderProof fr.Element
	challenge    fr.Element
}

// Ciphertext returns the proven ciphertext.
func (p *ElGamalProof) Ciphertext() *ElGamalCiphertext {
	ct := p.ct
	return &ct
}

func elGamalChallenge(e Engine, pk, gen, c1, c2, r1, r2 Point) fr.Element {
	t := merlin.NewTranscript("ElGamalProof")
	t.AppendMessage([]byte("dst"), elGamalSalt)
	t.AppendMessage([]byte("base point"), e.PublicKeyGroup().Generator().Bytes())
	t.AppendMessage([]byte("pk"), pk.Bytes())
	t.AppendMessage([]byte("generator"), gen.Bytes())
	t.AppendMessage([]byte("c1"), c1.Bytes())
	t.AppendMessage([]byte("c2"), c2.Bytes())
	t.AppendMessage([]byte("r1"), r1.Bytes())
	t.AppendMessage([]byte("r2"), r2.Bytes())
	var s fr.Element
	s.SetBytes(t.ExtractBytes([]byte("challenge"), 64))
	return s
}

// ElGamalEncryptWithProof encrypts m and proves knowledge of both the
// message and the blinder for the resulting ciphertext, using the
// group generator as the message generator.
func (pk *PublicKey) ElGamalEncryptWithProof(m *fr.Element) (*ElGamalProof, error) {
	return pk.ElGamalEncryptWithProofGenerator(m, nil)
}

// ElGamalEncryptWithProofGenerator is ElGamalEncryptWithProof with an
// explicit message generator; the verifier must present the same
// generator to VerifyWithGenerator. A nil gen selects the group
// generator.
func (pk *PublicKey) ElGamalEncryptWithProofGenerator(m *fr.Element, gen Point) (*ElGamalProof, error) {
	if gen == nil {
		gen = pk.e.PublicKeyGroup().Generator()
	}
	b, err := randomScalar(elGamalSalt)
	if err != nil {
		return nil, err
	}
	r, err := randomScalar(elGamalSalt)
	if err != nil {
		return nil, err
	}
	ct, err := elGamalSeal(pk, m, gen, &b)
	if err != nil {
		return nil, err
	}
	nonce, err := elGamalSeal(pk, &b, gen, &r)
	if err != nil {
		return nil, err
	}
	challenge := elGamalChallenge(pk.e, pk.p, gen, ct.c1, ct.c2, nonce.c1, nonce.c2)

	var messageProof, blinderProof, t fr.Element
	t.Mul(&challenge, m)
	messageProof.Add(&b, &t)
	t.Mul(&challenge, &b)
	blinderProof.Add(&r, &t)
	wipeScalar(&t)
	wipeScalar(&b)
	wipeScalar(&r)
	return &ElGamalProof{
		ct:           *ct,
		messageProof: messageProof,
		blinderProof: blinderProof,
		challenge:    challenge,
	}, nil
}

// Verify reconstructs the transcript nonces from the responses and
// checks the challenge matches, assuming the group generator as the
// message generator.
func (p *ElGamalProof) Verify(pk *PublicKey) error {
	return p.VerifyWithGenerator(pk, nil)
}

// VerifyWithGenerator verifies a proof produced with an explicit
// message generator. A nil gen selects the group generator.
func (p *ElGamalProof) VerifyWithGenerator(pk *PublicKey, gen Point) error {
	if pk == nil || pk.p == nil {
		return invalidInputs("nil public key")
	}
	if pk.e != p.ct.e {
		return invalidInputs("public key from a different engine")
	}
	if !pk.IsValid() {
		return invalidInputs("invalid public key")
	}
	if p.challenge.IsZero() || p.messageProof.IsZero() || p.blinderProof.IsZero() {
		return invalidInputs("zero proof scalar")
	}
	e := p.ct.e
	if gen == nil {
		gen = e.PublicKeyGroup().Generator()
	}
	if gen.IsIdentity() {
		return invalidInputs("message generator is the identity point")
	}
	var negC fr.Element
	negC.Neg(&p.challenge)

	r1 := p.ct.c1.Mul(&negC).Add(e.PublicKeyGroup().Generator().Mul(&p.blinderProof))
	r2 := p.ct.c2.Mul(&negC).
		Add(gen.Mul(&p.messageProof)).
		Add(pk.p.Mul(&p.blinderProof))

	expected := elGamalChallenge(e, pk.p, gen, p.ct.c1, p.ct.c2, r1, r2)
	if !expected.Equal(&p.challenge) {
		return ErrInvalidProof
	}
	return nil
}

// VerifyAndDecrypt checks the proof against sk's public key and, on
// success, decrypts the ciphertext.
func (p *ElGamalProof) VerifyAndDecrypt(sk *SecretKey) (Point, error) {
	if sk == nil {
		return nil, invalidInputs("nil secret key")
	}
	if err := p.Verify(sk.PublicKey()); err != nil {
		return nil, err
	}
	return p.ct.Decrypt(sk)
}

// MarshalBinary returns c1 || c2.
func (c *ElGamalCiphertext) MarshalBinary() ([]byte, error) {
	c1 := c.c1.Bytes()
	c2 := c.c2.Bytes()
	out := make([]byte, 0, len(c1)+len(c2))
	out = append(out, c1...)
	return append(out, c2...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (c *ElGamalCiphertext) MarshalText() ([]byte, error) {
	b, _ := c.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ElGamalCiphertextFromBytes decodes c1 || c2, inferring the engine
// from the total length (192 bytes for Bls12381G1, 96 for Bls12381G2).
func ElGamalCiphertextFromBytes(data []byte) (*ElGamalCiphertext, error) {
	if len(data)%2 != 0 {
		return nil, deserializeErr("malformed elgamal ciphertext")
	}
	half := len(data) / 2
	e, err := engineForPublicKeySize(half)
	if err != nil {
		return nil, err
	}
	c1, err := e.PublicKeyGroup().FromCompressed(data[:half])
	if err != nil {
		return nil, err
	}
	c2, err := e.PublicKeyGroup().FromCompressed(data[half:])
	if err != nil {
		return nil, err
	}
	return &ElGamalCiphertext{e: e, c1: c1, c2: c2}, nil
}

// UnmarshalBinary decodes the binary form.
func (c *ElGamalCiphertext) UnmarshalBinary(data []byte) error {
	dec, err := ElGamalCiphertextFromBytes(data)
	if err != nil {
		return err
	}
	c.e, c.c1, c.c2 = dec.e, dec.c1, dec.c2
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (c *ElGamalCiphertext) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return c.UnmarshalBinary(raw)
}

// MarshalBinary returns
// c1 || c2 || messageProof(32) || blinderProof(32) || challenge(32).
func (p *ElGamalProof) MarshalBinary() ([]byte, error) {
	ct, _ := p.ct.MarshalBinary()
	mp := p.messageProof.Bytes()
	bp := p.blinderProof.Bytes()
	ch := p.challenge.Bytes()
	out := make([]byte, 0, len(ct)+3*SecretKeySize)
	out = append(out, ct...)
	out = append(out, mp[:]...)
	out = append(out, bp[:]...)
	return append(out, ch[:]...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (p *ElGamalProof) MarshalText() ([]byte, error) {
	b, _ := p.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ElGamalProofFromBytes decodes the binary form, inferring the engine
// from the ciphertext length.
func ElGamalProofFromBytes(data []byte) (*ElGamalProof, error) {
	if len(data) < 3*SecretKeySize+2 {
		return nil, deserializeErr("elgamal proof too short")
	}
	ctLen := len(data) - 3*SecretKeySize
	ct, err := ElGamalCiphertextFromBytes(data[:ctLen])
	if err != nil {
		return nil, err
	}
	var mp, bp, ch fr.Element
	if err := mp.SetBytesCanonical(data[ctLen : ctLen+32]); err != nil {
		return nil, deserializeErr("non-canonical message proof scalar")
	}
	if err := bp.SetBytesCanonical(data[ctLen+32 : ctLen+64]); err != nil {
		return nil, deserializeErr("non-canonical blinder proof scalar")
	}
	if err := ch.SetBytesCanonical(data[ctLen+64:]); err != nil {
		return nil, deserializeErr("non-canonical challenge scalar")
	}
	return &ElGamalProof{ct: *ct, messageProof: mp, blinderProof: bp, challenge: ch}, nil
}

// UnmarshalBinary decodes the binary form.
func (p *ElGamalProof) UnmarshalBinary(data []byte) error {
	dec, err := ElGamalProofFromBytes(data)
	if err != nil {
		return err
	}
	*p = *dec
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (p *ElGamalProof) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return p.UnmarshalBinary(raw)
}

// MarshalBinary returns identifier(1) || compressed point.
func (s *ElGamalDecryptionShare) MarshalBinary() ([]byte, error) {
	p := s.p.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, s.id)
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (s *ElGamalDecryptionShare) MarshalText() ([]byte, error) {
	b, _ := s.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ElGamalDecryptionShareFromBytes decodes identifier(1) || compressed
// point, inferring the engine from the point length.
func ElGamalDecryptionShareFromBytes(data []byte) (*ElGamalDecryptionShare, error) {
	if len(data) < 2 {
		return nil, deserializeErr("decryption share too short")
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
	return &ElGamalDecryptionShare{e: e, id: data[0], p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (s *ElGamalDecryptionShare) UnmarshalBinary(data []byte) error {
	dec, err := ElGamalDecryptionShareFromBytes(data)
	if err != nil {
		return err
	}
	s.e, s.id, s.p = dec.e, dec.id, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (s *ElGamalDecryptionShare) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return s.UnmarshalBinary(raw)
}
