package blsful

import (
	"encoding/hex"
	"fmt"
)

// AggregateItem pairs a signer with the message that signer signed,
// for aggregate verification.
type AggregateItem struct {
	PublicKey *PublicKey
	Message   []byte
}

// AggregateSignature is the sum of signatures from distinct signers
// over (usually) distinct messages. All constituents must carry the
// same scheme tag.
type AggregateSignature struct {
	e      Engine
	scheme SignatureScheme
	p      Point
}

// Scheme returns the shared scheme tag.
func (a *AggregateSignature) Scheme() SignatureScheme { return a.scheme }

// Engine returns the orientation this signature belongs to.
func (a *AggregateSignature) Engine() Engine { return a.e }

// NewAggregateSignature sums the given signatures. Mixed scheme tags
// or engines are rejected.
func NewAggregateSignature(sigs ...*Signature) (*AggregateSignature, error) {
	m, err := NewMultiSignature(sigs...)
	if err != nil {
		return nil, err
	}
	return &AggregateSignature{e: m.e, scheme: m.scheme, p: m.p}, nil
}

// Verify checks the aggregate against pairwise signer/message inputs.
// Under the Basic scheme duplicate messages make the aggregate
// forgeable, so they are rejected with the two colliding indices.
// MessageAugmentation prefixes each signer's key to its message, and
// ProofOfPossession relies on separately verified possession proofs.
func (a *AggregateSignature) Verify(items []AggregateItem) error {
	if len(items) == 0 {
		return invalidInputs("no items to verify against")
	}
	pks := make([]Point, len(items))
	msgs := make([][]byte, len(items))
	for i, it := range items {
		if it.PublicKey == nil || it.PublicKey.p == nil {
			return invalidInputs("nil public key")
		}
		if it.PublicKey.e != a.e {
			return invalidInputs("public key from a different engine")
		}
		pks[i] = it.PublicKey.p
		msgs[i] = schemeMessage(a.scheme, it.PublicKey.p, it.Message)
	}
	if a.scheme == Basic {
		seen := make(map[string]int, len(items))
		for i, m := range msgs {
			if j, dup := seen[string(m)]; dup {
				return fmt.Errorf("%w: duplicate message at indices %d and %d",
					ErrInvalidInputs, j, i)
			}
			seen[string(m)] = i
		}
	}
	return coreAggregateVerify(a.e, pks, msgs, a.p, a.e.dst(a.scheme))
}

// MarshalBinary returns scheme(1) || compressed point.
func (a *AggregateSignature) MarshalBinary() ([]byte, error) {
	p := a.p.Bytes()
	out := make([]byte, 0, 1+len(p))
	out = append(out, byte(a.scheme))
	return append(out, p...), nil
}

// MarshalText returns the binary form as lowercase hex.
func (a *AggregateSignature) MarshalText() ([]byte, error) {
	b, _ := a.MarshalBinary()
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}

// AggregateSignatureFromBytes decodes scheme(1) || compressed point.
func AggregateSignatureFromBytes(data []byte) (*AggregateSignature, error) {
	dec, err := SignatureFromBytes(data)
	if err != nil {
		return nil, err
	}
	return &AggregateSignature{e: dec.e, scheme: dec.scheme, p: dec.p}, nil
}

// UnmarshalBinary decodes the binary form.
func (a *AggregateSignature) UnmarshalBinary(data []byte) error {
	dec, err := AggregateSignatureFromBytes(data)
	if err != nil {
		return err
	}
	a.e, a.scheme, a.p = dec.e, dec.scheme, dec.p
	return nil
}

// UnmarshalText decodes the hex form of MarshalText.
func (a *AggregateSignature) UnmarshalText(data []byte) error {
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return deserializeErr("invalid hex: " + err.Error())
	}
	return a.UnmarshalBinary(raw)
}
