package blsful

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// coreSign maps msg into the signature group under dst and multiplies
// by the secret scalar.
func coreSign(e Engine, sk *fr.Element, msg, dst []byte) (Point, error) {
	if sk.IsZero() {
		return nil, fmt.Errorf("%w: secret key is zero", ErrSigning)
	}
	a, err := e.SignatureGroup().Hash(msg, dst)
	if err != nil {
		return nil, err
	}
	return a.Mul(sk), nil
}

// coreVerify checks e(H(msg), pk) * e(sig, -g) == 1 with a single
// multi-pairing.
func coreVerify(e Engine, pk, sig Point, msg, dst []byte) error {
	if sig.IsIdentity() {
		return invalidInputs("signature is the identity point")
	}
	if pk.IsIdentity() {
		return invalidInputs("public key is the identity point")
	}
	a, err := e.SignatureGroup().Hash(msg, dst)
	if err != nil {
		return err
	}
	negGen := e.PublicKeyGroup().Generator().Neg()
	ok, err := e.PairingProductIsOne(
		[]Point{a, sig},
		[]Point{pk, negGen},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

// coreAggregateVerify checks one aggregate signature against pairwise
// (public key, message) inputs: the product of e(H(msg_i), pk_i) must
// cancel e(sig, -g).
func coreAggregateVerify(e Engine, pks []Point, msgs [][]byte, sig Point, dst []byte) error {
	if len(pks) == 0 || len(pks) != len(msgs) {
		return invalidInputs("public keys and messages must pair up")
	}
	if sig.IsIdentity() {
		return invalidInputs("signature is the identity point")
	}
	sigs := make([]Point, 0, len(pks)+1)
	keys := make([]Point, 0, len(pks)+1)
	for i, pk := range pks {
		if pk.IsIdentity() {
			return invalidInputs("public key is the identity point")
		}
		a, err := e.SignatureGroup().Hash(msgs[i], dst)
		if err != nil {
			return err
		}
		sigs = append(sigs, a)
		keys = append(keys, pk)
	}
	sigs = append(sigs, sig)
	keys = append(keys, e.PublicKeyGroup().Generator().Neg())
	ok, err := e.PairingProductIsOne(sigs, keys)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

// augmentMessage prefixes the compressed public key, the
// MessageAugmentation preprocessing step.
func augmentMessage(pk Point, msg []byte) []byte {
	pkBytes := pk.Bytes()
	out := make([]byte, 0, len(pkBytes)+len(msg))
	out = append(out, pkBytes...)
	return append(out, msg...)
}

// schemeMessage applies a scheme's preprocessing to msg for the given
// public key.
func schemeMessage(scheme SignatureScheme, pk Point, msg []byte) []byte {
	if scheme == MessageAugmentation {
		return augmentMessage(pk, msg)
	}
	return msg
}
