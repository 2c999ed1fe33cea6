package blsful

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// TimeCryptCiphertext is identity-based encryption against the
// holder's own signing key: anyone encrypts to (public key, identity),
// and an ordinary signature over the identity under the matching
// scheme is exactly the decryption trapdoor. Publishing the signature
// for "block 1000" or "2026-09-01" opens every ciphertext locked to
// that identity.
//
//	r = H2S(alpha || sha256(msg))
//	u = g * r
//	v = sha256(e(H(identity), pk * r)) XOR alpha
//	w = Shake128(alpha) XOR framed(msg)
type TimeCryptCiphertext struct {
	e      Engine
	scheme SignatureScheme
	u      Point
	v      [32]byte
	w      []byte
}

// TimeLockEncrypt seals msg to pk so that only a signature over
// identity under the given scheme can open it. The identity gets the
// scheme's message preprocessing, so the trapdoor is the signature the
// key holder would ordinarily produce.
func (pk *PublicKey) TimeLockEncrypt(scheme SignatureScheme, msg, identity []byte) (*TimeCryptCiphertext, error) {
	if !scheme.valid() {
		return nil, invalidInputs("unknown signature scheme")
	}
	if !pk.IsValid() {
		return nil, invalidInputs("invalid public key")
	}
	alpha, err := randomScalar(timeLockSalt)
	if err != nil {
		return nil, err
	}
	alphaBytes := alpha.Bytes()
	wipeScalar(&alpha)

	digest := sha256.Sum256(msg)
	r := hashToScalar(append(alphaBytes[:], digest[:]...), timeLockSalt)

	id := schemeMessage(scheme, pk.p, identity)
	trapdoorBase, err := pk.e.SignatureGroup().Hash(id, pk.e.dst(scheme))
	if err != nil {
		return nil, err
	}
	kBytes, err := pk.e.Pair(trapdoorBase, pk.p.Mul(&r))
	if err != nil {
		return nil, err
	}
	u := pk.e.PublicKeyGroup().Generator().Mul(&r)
	wipeScalar(&r)

	kDigest := sha256.Sum256(kBytes)
	var v [32]byte
	for i := range v {
		v[i] = kDigest[i] ^ alphaBytes[i]
	}
	w := xofMask(alphaBytes[:], frameMessage(msg))
	wipeBytes(alphaBytes[:])
	return &TimeCryptCiphertext{e: pk.e, scheme: scheme, u: u, v: v, w: w}, nil
}

// Scheme returns the tag the ciphertext was sealed under.
func (c *TimeCryptCiphertext) Scheme() SignatureScheme { return c.scheme }

// Engine returns the orientation this ciphertext belongs to.
func (c *TimeCryptCiphertext) Engine() Engine { return c.e }

// Decrypt opens the ciphertext with a signature over the sealed
// identity. The signature's scheme tag and engine must match the
// ciphertext's; any mismatch or tampering yields (nil, false) with no
// further detail.
func (c *TimeCryptCiphertext) Decrypt(sig *Signature) ([]byte, bool) {
	schemeOK := sig != nil && sig.p != nil &&
		sig.e == c.e && sig.scheme == c.scheme
	trapdoor := c.e.SignatureGroup().Identity()
	if schemeOK {
		trapdoor = sig.p
	}
	haveKey := !trapdoor.IsIdentity()

	kBytes, err := c.e.Pair(trapdoor, c.u)
	if err != nil {
		return nil, false
	}
	kDigest := sha256.Sum256(kBytes)
	var alpha [32]byte
	for i := range alpha {
		alpha[i] = kDigest[i] ^ c.v[i]
	}
	pt := xofMask(alpha[:], c.w)
	msg, frameOK := unframeMessage(pt)

	digest := sha256.Sum256(msg)
	r := hashToScalar(append(alpha[:], digest[:]...), timeLockSalt)
	bound := c.e.PublicKeyGroup().Generator().Mul(&r).Equal(c.u)
	wipeScalar(&r)
	wipeBytes(alpha[:])

	if !(schemeOK && haveKey && frameOK && bound) {
		return nil, false
	}
	return msg, true
}

// DecryptWithShares combines partial signatures over the sealed
// identity and opens the ciphertext with the result.
func (c *TimeCryptCiphertext) DecryptWithShares(shares ...*SignatureShare) ([]byte, bool) {
	sig, err := SignatureFromShares(shares...)
	if err != nil {
		return nil, false
	}
	return c.Decrypt(sig)
}

// MarshalBinary returns
// scheme(1) || u || v(32) || len(w)(4, BE) || w.
func (c *TimeCryptCiphertext) MarshalBinary() ([]byte, error) {
	u := c.u.Bytes()
	out := make([]byte, 0, 1+len(u)+32+4+len(c.w))
	out = append(out, byte(c.scheme))
	out = append(out, u...)
	out = append(out, c.v[:]...)
	out = append(out, i2osp(len(c.w), 4)...)
	return append(out, c.w...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (c *TimeCryptCiphertext) MarshalText() ([]byte, error) {
	b, _ := c.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// TimeCryptCiphertextFromBytes decodes the binary form for the given
// engine.
func TimeCryptCiphertextFromBytes(e Engine, data []byte) (*TimeCryptCiphertext, error) {
	if e == nil {
		return nil, invalidInputs("nil engine")
	}
	uLen := e.PublicKeyGroup().CompressedSize()
	if len(data) < 1+uLen+32+4 {
		return nil, deserializeErr("timelock ciphertext too short")
	}
	scheme := SignatureScheme(data[0])
	if !scheme.valid() {
		return nil, deserializeErr("unknown signature scheme tag")
	}
	u, err := e.PublicKeyGroup().FromCompressed(data[1 : 1+uLen])
	if err != nil {
		return nil, err
	}
	var v [32]byte
	copy(v[:], data[1+uLen:1+uLen+32])
	wLen := binary.BigEndian.Uint32(data[1+uLen+32 : 1+uLen+36])
	w := data[1+uLen+36:]
	if uint32(len(w)) != wLen || wLen < minFramedSize {
		return nil, deserializeErr("timelock ciphertext body length mismatch")
	}
	body := make([]byte, len(w))
	copy(body, w)
	return &TimeCryptCiphertext{e: e, scheme: scheme, u: u, v: v, w: body}, nil
}

// UnmarshalBinary decodes the binary form; the engine must already be
// set on the receiver.
func (c *TimeCryptCiphertext) UnmarshalBinary(data []byte) error {
	if c.e == nil {
		return invalidInputs("engine must be set before unmarshaling a ciphertext")
	}
	dec, err := TimeCryptCiphertextFromBytes(c.e, data)
	if err != nil {
		return err
	}
	c.scheme, c.u, c.v, c.w = dec.scheme, dec.u, dec.v, dec.w
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (c *TimeCryptCiphertext) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return c.UnmarshalBinary(raw)
}
