package blsful

import (
	"encoding/hex"
)

// PossessionProof is a self-signature over the compressed public key
// under the possession tag. Verifying it before accepting a key into a
// multi-signature or aggregate defeats rogue-key attacks.
type PossessionProof struct {
	e Engine
	p Point
}

// Engine returns the orientation this proof belongs to.
func (p *PossessionProof) Engine() Engine { return p.e }

// Verify checks the proof against pk.
func (p *PossessionProof) Verify(pk *PublicKey) error {
	if pk == nil || pk.p == nil {
		return invalidInputs("nil public key")
	}
	if p.e != pk.e {
		return invalidInputs("public key from a different engine")
	}
	return coreVerify(p.e, pk.p, p.p, pk.p.Bytes(), p.e.popDST())
}

// MarshalBinary returns the compressed proof point.
func (p *PossessionProof) MarshalBinary() ([]byte, error) {
	return p.p.Bytes(), nil
}

// MarshalText returns the compressed point as lowercase hex.
func (p *PossessionProof) MarshalText() ([]byte, error) {
	b, _ := p.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// ProofOfPossessionFromBytes decodes a compressed signature-group
// point, inferring the engine from its length.
func ProofOfPossessionFromBytes(data []byte) (*PossessionProof, error) {
	e, err := engineForSignatureSize(len(data))
	if err != nil {
		return nil, err
	}
	p, err := e.SignatureGroup().FromCompressed(data)
	if err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return nil, deserializeErr("proof is the identity point")
	}
	return &PossessionProof{e: e, p: p}, nil
}

// UnmarshalBinary decodes the binary form.
func (p *PossessionProof) UnmarshalBinary(data []byte) error {
	dec, err := ProofOfPossessionFromBytes(data)
	if err != nil {
		return err
	}
	p.e, p.p = dec.e, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (p *PossessionProof) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return p.UnmarshalBinary(raw)
}
