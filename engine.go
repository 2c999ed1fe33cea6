package blsful

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Protocol salts. Each keyed derivation uses its own salt so that
// scalars derived in one protocol are unrelated to every other.
var (
	keygenSalt    = []byte("BLS-SIG-KEYGEN-SALT-")
	pokSalt       = []byte("BLS_POK__BLS12381_XOF:HKDF-SHA2-256_")
	signCryptSalt = []byte("SIGNCRYPT_BLS12381_XOF:HKDF-SHA2-256_")
	timeLockSalt  = []byte("TIMELOCK_BLS12381_XOF:HKDF-SHA2-256_")
	elGamalSalt   = []byte("ELGAMAL_BLS12381_XOF:HKDF-SHA2-256_")
)

// SecretKeySize is the byte length of a serialized secret key scalar.
const SecretKeySize = 32

// Point is a group element in one of the two pairing source groups.
// Implementations are immutable; every operation returns a fresh value.
type Point interface {
	// Add returns the sum of this point and rhs. rhs must come from the
	// same group; mixing groups is a programming error and panics.
	Add(rhs Point) Point
	// Neg returns the additive inverse.
	Neg() Point
	// Mul returns the scalar multiple s * point.
	Mul(s *fr.Element) Point
	// IsIdentity reports whether the point is the group identity.
	IsIdentity() bool
	// Equal reports whether both points encode the same element.
	Equal(rhs Point) bool
	// Bytes returns the compressed encoding (48 bytes in G1, 96 in G2).
	Bytes() []byte
}

// Group is one source group of the pairing.
type Group interface {
	Identity() Point
	Generator() Point
	// Hash maps msg into the group with the given domain-separation tag.
	Hash(msg, dst []byte) (Point, error)
	// FromCompressed decodes a compressed point, rejecting malformed
	// encodings and points outside the prime-order subgroup.
	FromCompressed(data []byte) (Point, error)
	// CompressedSize is the byte length of a compressed point.
	CompressedSize() int
}

// Engine fixes which source group holds signatures and which holds
// public keys, and carries the domain-separation tags that depend on
// that orientation. Two engines exist: Bls12381G1 (signatures in G1,
// keys in G2) and Bls12381G2 (the swap). The interface is sealed; the
// package provides the only implementations.
type Engine interface {
	Name() string
	SignatureGroup() Group
	PublicKeyGroup() Group
	// PairingProductIsOne reports whether the product of pairings
	// e(sigs[i], pks[i]) is the identity of the target group.
	PairingProductIsOne(sigs, pks []Point) (bool, error)
	// Pair returns the serialized target-group element e(sig, pk).
	Pair(sig, pk Point) ([]byte, error)

	// dst returns the signing domain-separation tag for a scheme.
	dst(s SignatureScheme) []byte
	// popDST returns the tag for proofs of possession.
	popDST() []byte
}
