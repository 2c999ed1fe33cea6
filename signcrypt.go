package blsful

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// SignCryptCiphertext encrypts to a public key with publicly
// verifiable validity: w is a signature by the ephemeral scalar over
// the ciphertext body, so anyone can check integrity without being
// able to decrypt.
//
//	u = g * r
//	v = Shake128(pk * r) XOR framed(msg)
//	w = H(u || v, dst) * r
type SignCryptCiphertext struct {
	e      Engine
	scheme SignatureScheme
	u      Point
	v      []byte
	w      Point
}

// signCryptBind hashes the ciphertext body into the signature group
// under the scheme's tag.
func signCryptBind(e Engine, u Point, v []byte, scheme SignatureScheme) (Point, error) {
	uBytes := u.Bytes()
	body := make([]byte, 0, len(uBytes)+len(v))
	body = append(body, uBytes...)
	body = append(body, v...)
	return e.SignatureGroup().Hash(body, e.dst(scheme))
}

// SignCrypt encrypts msg to pk under the given scheme tag.
func (pk *PublicKey) SignCrypt(scheme SignatureScheme, msg []byte) (*SignCryptCiphertext, error) {
	if !scheme.valid() {
		return nil, invalidInputs("unknown signature scheme")
	}
	if !pk.IsValid() {
		return nil, invalidInputs("invalid public key")
	}
	r, err := randomScalar(signCryptSalt)
	if err != nil {
		return nil, err
	}
	u := pk.e.PublicKeyGroup().Generator().Mul(&r)
	v := xofMask(pk.p.Mul(&r).Bytes(), frameMessage(msg))
	bind, err := signCryptBind(pk.e, u, v, scheme)
	if err != nil {
		return nil, err
	}
	w := bind.Mul(&r)
	wipeScalar(&r)
	return &SignCryptCiphertext{e: pk.e, scheme: scheme, u: u, v: v, w: w}, nil
}

// Scheme returns the tag the ciphertext was sealed under.
func (c *SignCryptCiphertext) Scheme() SignatureScheme { return c.scheme }

// Engine returns the orientation this ciphertext belongs to.
func (c *SignCryptCiphertext) Engine() Engine { return c.e }

// IsValid checks the public integrity equation
// e(w, -g) * e(H(u || v), u) == 1 without any secret material.
func (c *SignCryptCiphertext) IsValid() bool {
	if c.u.IsIdentity() || c.w.IsIdentity() {
		return false
	}
	bind, err := signCryptBind(c.e, c.u, c.v, c.scheme)
	if err != nil {
		return false
	}
	ok, err := c.e.PairingProductIsOne(
		[]Point{c.w, bind},
		[]Point{c.e.PublicKeyGroup().Generator().Neg(), c.u},
	)
	return err == nil && ok
}

// signCryptOpen unmasks v with the shared point and unframes the
// plaintext. All failures look alike.
func signCryptOpen(v []byte, shared Point, valid bool) ([]byte, bool) {
	pt := xofMask(shared.Bytes(), v)
	msg, ok := unframeMessage(pt)
	if !ok || !valid {
		return nil, false
	}
	return msg, true
}

// Decrypt opens the ciphertext with the full secret key. The secret
// scalar is swapped for zero on invalid ciphertexts before any use, so
// tampered inputs never touch real key material.
func (c *SignCryptCiphertext) Decrypt(sk *SecretKey) ([]byte, bool) {
	valid := c.IsValid() && sk.e == c.e
	sel := 0
	if valid {
		sel = 1
	}
	var zero, s fr.Element
	s.Select(sel, &zero, &sk.v)
	shared := c.u.Mul(&s)
	wipeScalar(&s)
	return signCryptOpen(c.v, shared, valid)
}

// SignCryptDecryptionShare is one holder's partial decryption,
// u * skShare, verifiable against the holder's public-key share.
type SignCryptDecryptionShare struct {
	e  Engine
	id uint8
	p  Point
}

// NewDecryptionShare produces this ciphertext's partial decryption for
// one secret-key share.
func (c *SignCryptCiphertext) NewDecryptionShare(share *SecretKeyShare) (*SignCryptDecryptionShare, error) {
	if share == nil {
		return nil, invalidInputs("nil secret key share")
	}
	if share.e != c.e {
		return nil, invalidInputs("share from a different engine")
	}
	return &SignCryptDecryptionShare{e: c.e, id: share.id, p: c.u.Mul(&share.v)}, nil
}

// Identifier returns the share holder's evaluation point.
func (s *SignCryptDecryptionShare) Identifier() uint8 { return s.id }

// Verify checks the share against the holder's public-key share and
// the ciphertext: e(-H(u || v), share) * e(w, pkShare) == 1.
func (s *SignCryptDecryptionShare) Verify(pks *PublicKeyShare, c *SignCryptCiphertext) error {
	if pks == nil || c == nil {
		return invalidInputs("nil verification input")
	}
	if s.e != pks.e || s.e != c.e {
		return invalidInputs("mismatched engines")
	}
	if s.id != pks.id {
		return invalidInputs("decryption share identifier mismatch")
	}
	bind, err := signCryptBind(c.e, c.u, c.v, c.scheme)
	if err != nil {
		return err
	}
	ok, err := c.e.PairingProductIsOne(
		[]Point{bind.Neg(), c.w},
		[]Point{s.p, pks.p},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDecryptionShare
	}
	return nil
}

// DecryptWithShares opens the ciphertext from partial decryptions.
// At least two shares with distinct identifiers are required; fewer
// shares than the key's threshold interpolate to garbage and fail the
// frame check.
func (c *SignCryptCiphertext) DecryptWithShares(shares ...*SignCryptDecryptionShare) ([]byte, bool) {
	if len(shares) < 2 {
		return nil, false
	}
	raw := make([]pointShare, len(shares))
	for i, s := range shares {
		if s.e != c.e {
			return nil, false
		}
		raw[i] = pointShare{id: s.id, p: s.p}
	}
	shared, err := combinePointShares(c.e.PublicKeyGroup(), raw)
	if err != nil {
		return nil, false
	}
	return signCryptOpen(c.v, shared, c.IsValid())
}

// MarshalBinary returns identifier(1) || compressed point.
func (s *SignCryptDecryptionShare) MarshalBinary() ([]byte, error) {
	p := s.p.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, s.id)
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (s *SignCryptDecryptionShare) MarshalText() ([]byte, error) {
	b, _ := s.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// SignCryptDecryptionShareFromBytes decodes identifier(1) ||
// compressed point, inferring the engine from the point length.
func SignCryptDecryptionShareFromBytes(data []byte) (*SignCryptDecryptionShare, error) {
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
	return &SignCryptDecryptionShare{e: e, id: data[0], p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (s *SignCryptDecryptionShare) UnmarshalBinary(data []byte) error {
	dec, err := SignCryptDecryptionShareFromBytes(data)
	if err != nil {
		return err
	}
	s.e, s.id, s.p = dec.e, dec.id, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (s *SignCryptDecryptionShare) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return s.UnmarshalBinary(raw)
}

// MarshalBinary returns
// scheme(1) || u || w || len(v)(4, BE) || v.
func (c *SignCryptCiphertext) MarshalBinary() ([]byte, error) {
	u := c.u.Bytes()
	w := c.w.Bytes()
	out := make([]byte, 0, 1+len(u)+len(w)+4+len(c.v))
	out = append(out, byte(c.scheme))
	out = append(out, u...)
	out = append(out, w...)
	out = append(out, i2osp(len(c.v), 4)...)
	return append(out, c.v...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (c *SignCryptCiphertext) MarshalText() ([]byte, error) {
	b, _ := c.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// SignCryptCiphertextFromBytes decodes the binary form. Both engines
// serialize u and w to 144 bytes combined, so the engine is an
// explicit argument rather than inferred.
func SignCryptCiphertextFromBytes(e Engine, data []byte) (*SignCryptCiphertext, error) {
	if e == nil {
		return nil, invalidInputs("nil engine")
	}
	uLen := e.PublicKeyGroup().CompressedSize()
	wLen := e.SignatureGroup().CompressedSize()
	if len(data) < 1+uLen+wLen+4 {
		return nil, deserializeErr("signcrypt ciphertext too short")
	}
	scheme := SignatureScheme(data[0])
	if !scheme.valid() {
		return nil, deserializeErr("unknown signature scheme tag")
	}
	u, err := e.PublicKeyGroup().FromCompressed(data[1 : 1+uLen])
	if err != nil {
		return nil, err
	}
	w, err := e.SignatureGroup().FromCompressed(data[1+uLen : 1+uLen+wLen])
	if err != nil {
		return nil, err
	}
	vLen := binary.BigEndian.Uint32(data[1+uLen+wLen : 1+uLen+wLen+4])
	v := data[1+uLen+wLen+4:]
	if uint32(len(v)) != vLen || vLen < minFramedSize {
		return nil, deserializeErr("signcrypt ciphertext body length mismatch")
	}
	body := make([]byte, len(v))
	copy(body, v)
	return &SignCryptCiphertext{e: e, scheme: scheme, u: u, v: body, w: w}, nil
}

// UnmarshalBinary decodes the binary form; the engine must already be
// set on the receiver.
func (c *SignCryptCiphertext) UnmarshalBinary(data []byte) error {
	if c.e == nil {
		return invalidInputs("engine must be set before unmarshaling a ciphertext")
	}
	dec, err := SignCryptCiphertextFromBytes(c.e, data)
	if err != nil {
		return err
	}
	c.scheme, c.u, c.v, c.w = dec.scheme, dec.u, dec.v, dec.w
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (c *SignCryptCiphertext) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return c.UnmarshalBinary(raw)
}
