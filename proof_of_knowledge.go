package blsful

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ProofOfKnowledge demonstrates possession of a valid signature over a
// message without revealing the signature. The construction is the
// M-Pin one: u = H(msg) * x, v = -(x + y) * sig, and the verifier
// checks e(v, g) * e(u + H(msg) * y, pk) == 1. The challenge y must be
// fresh per proof; a reused challenge lets a transcript be replayed.
type ProofOfKnowledge struct {
	e      Engine
	scheme SignatureScheme
	u, v   Point
}

// Scheme returns the scheme tag of the signature being proven.
func (p *ProofOfKnowledge) Scheme() SignatureScheme { return p.scheme }

// Engine returns the orientation this proof belongs to.
func (p *ProofOfKnowledge) Engine() Engine { return p.e }

// Verify checks the proof against pk, msg, and the challenge the
// verifier issued for this session.
func (p *ProofOfKnowledge) Verify(pk *PublicKey, msg []byte, challenge *ProofCommitmentChallenge) error {
	if challenge == nil {
		return invalidInputs("nil challenge")
	}
	return p.verifyWithScalar(pk, msg, &challenge.y)
}

func (p *ProofOfKnowledge) verifyWithScalar(pk *PublicKey, msg []byte, y *fr.Element) error {
	if pk == nil || pk.p == nil {
		return invalidInputs("nil public key")
	}
	if p.e != pk.e {
		return invalidInputs("public key from a different engine")
	}
	if p.u.IsIdentity() || p.v.IsIdentity() || pk.p.IsIdentity() {
		return invalidInputs("identity point in proof")
	}
	if y.IsZero() {
		return invalidInputs("challenge is zero")
	}
	a, err := p.e.SignatureGroup().Hash(msg, p.e.dst(p.scheme))
	if err != nil {
		return err
	}
	ok, err := p.e.PairingProductIsOne(
		[]Point{p.v, p.u.Add(a.Mul(y))},
		[]Point{p.e.PublicKeyGroup().Generator(), pk.p},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidProof
	}
	return nil
}

// MarshalBinary returns scheme(1) || u || v.
func (p *ProofOfKnowledge) MarshalBinary() ([]byte, error) {
	u := p.u.Bytes()
	v := p.v.Bytes()
	out := make([]byte, 0, 1+len(u)+len(v))
	out = append(out, byte(p.scheme))
	out = append(out, u...)
	return append(out, v...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (p *ProofOfKnowledge) MarshalText() ([]byte, error) {
	b, _ := p.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ProofOfKnowledgeFromBytes decodes scheme(1) || u || v, inferring the
// engine from the point lengths.
func ProofOfKnowledgeFromBytes(data []byte) (*ProofOfKnowledge, error) {
	if len(data) < 3 || (len(data)-1)%2 != 0 {
		return nil, deserializeErr("malformed proof of knowledge")
	}
	scheme := SignatureScheme(data[0])
	if !scheme.valid() {
		return nil, deserializeErr("unknown signature scheme tag")
	}
	half := (len(data) - 1) / 2
	e, err := engineForSignatureSize(half)
	if err != nil {
		return nil, err
	}
	u, err := e.SignatureGroup().FromCompressed(data[1 : 1+half])
	if err != nil {
		return nil, err
	}
	v, err := e.SignatureGroup().FromCompressed(data[1+half:])
	if err != nil {
		return nil, err
	}
	return &ProofOfKnowledge{e: e, scheme: scheme, u: u, v: v}, nil
}

// UnmarshalBinary decodes the binary form.
func (p *ProofOfKnowledge) UnmarshalBinary(data []byte) error {
	dec, err := ProofOfKnowledgeFromBytes(data)
	if err != nil {
		return err
	}
	p.e, p.scheme, p.u, p.v = dec.e, dec.scheme, dec.u, dec.v
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (p *ProofOfKnowledge) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return p.UnmarshalBinary(raw)
}

// ProofOfKnowledgeTimestamp is the non-interactive variant: the
// challenge is derived from the commitment and the proving time, so
// the verifier can bound a proof's age instead of issuing a challenge.
type ProofOfKnowledgeTimestamp struct {
	pok ProofOfKnowledge
	// milliseconds since the Unix epoch
	ts uint64
}

// timestampChallenge derives y from the commitment bytes and the
// little-endian timestamp.
func timestampChallenge(u Point, ts uint64) fr.Element {
	uBytes := u.Bytes()
	buf := make([]byte, 0, len(uBytes)+8)
	buf = append(buf, uBytes...)
	buf = binary.LittleEndian.AppendUint64(buf, ts)
	return hashToScalar(buf, pokSalt)
}

// NewProofOfKnowledgeTimestamp proves knowledge of sig over msg,
// stamped with the current time.
func NewProofOfKnowledgeTimestamp(sig *Signature, msg []byte) (*ProofOfKnowledgeTimestamp, error) {
	if sig == nil || sig.p == nil {
		return nil, invalidInputs("nil signature")
	}
	if sig.p.IsIdentity() {
		return nil, invalidInputs("signature is the identity point")
	}
	x, err := randomScalar(pokSalt)
	if err != nil {
		return nil, err
	}
	a, err := sig.e.SignatureGroup().Hash(msg, sig.e.dst(sig.scheme))
	if err != nil {
		return nil, err
	}
	u := a.Mul(&x)
	ts := uint64(time.Now().UnixMilli())
	y := timestampChallenge(u, ts)
	var t fr.Element
	t.Add(&x, &y)
	v := sig.p.Mul(&t).Neg()
	wipeScalar(&t)
	wipeScalar(&x)
	return &ProofOfKnowledgeTimestamp{
		pok: ProofOfKnowledge{e: sig.e, scheme: sig.scheme, u: u, v: v},
		ts:  ts,
	}, nil
}

// Timestamp returns the proving time in milliseconds since the Unix
// epoch.
func (p *ProofOfKnowledgeTimestamp) Timestamp() uint64 { return p.ts }

// Scheme returns the scheme tag of the signature being proven.
func (p *ProofOfKnowledgeTimestamp) Scheme() SignatureScheme { return p.pok.scheme }

// Verify checks the proof against pk and msg, rejecting proofs older
// than timeout. A zero timeout disables the age check.
func (p *ProofOfKnowledgeTimestamp) Verify(pk *PublicKey, msg []byte, timeout time.Duration) error {
	if timeout > 0 {
		elapsed := time.Since(time.UnixMilli(int64(p.ts)))
		if elapsed > timeout {
			return fmt.Errorf("%w: proof expired", ErrInvalidProof)
		}
	}
	y := timestampChallenge(p.pok.u, p.ts)
	return p.pok.verifyWithScalar(pk, msg, &y)
}

// MarshalBinary returns scheme(1) || u || v || timestamp(8, BE).
func (p *ProofOfKnowledgeTimestamp) MarshalBinary() ([]byte, error) {
	b, _ := p.pok.MarshalBinary()
	return binary.BigEndian.AppendUint64(b, p.ts), nil
}

// MarshalText returns the binary form as lowercase hex.
func (p *ProofOfKnowledgeTimestamp) MarshalText() ([]byte, error) {
	b, _ := p.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ProofOfKnowledgeTimestampFromBytes decodes scheme(1) || u || v ||
// timestamp(8, BE).
func ProofOfKnowledgeTimestampFromBytes(data []byte) (*ProofOfKnowledgeTimestamp, error) {
	if len(data) < 9 {
		return nil, deserializeErr("malformed timestamped proof")
	}
	pok, err := ProofOfKnowledgeFromBytes(data[:len(data)-8])
	if err != nil {
		return nil, err
	}
	ts := binary.BigEndian.Uint64(data[len(data)-8:])
	return &ProofOfKnowledgeTimestamp{pok: *pok, ts: ts}, nil
}

// UnmarshalBinary decodes the binary form.
func (p *ProofOfKnowledgeTimestamp) UnmarshalBinary(data []byte) error {
	dec, err := ProofOfKnowledgeTimestampFromBytes(data)
	if err != nil {
		return err
	}
	p.pok, p.ts = dec.pok, dec.ts
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (p *ProofOfKnowledgeTimestamp) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return p.UnmarshalBinary(raw)
}
