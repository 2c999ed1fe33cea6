package blsful

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// The two engine orientations over BLS12-381.
//
// Bls12381G1 puts signatures in G1 (48-byte) and public keys in G2
// (96-byte): small signatures, larger keys. Bls12381G2 swaps them.
var (
	Bls12381G1 Engine = g1SigEngine{}
	Bls12381G2 Engine = g2SigEngine{}
)

var g1Gen, g2Gen = func() (bls12381.G1Affine, bls12381.G2Affine) {
	_, _, g1, g2 := bls12381.Generators()
	return g1, g2
}()

// Domain-separation tags. The group letter names the group signatures
// live in for the scheme's engine.
var (
	dstBasicG1 = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")
	dstAugG1   = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_AUG_")
	dstPopG1   = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_POP_")
	dstProofG1 = []byte("BLS_POP_BLS12381G1_XMD:SHA-256_SSWU_RO_POP_")

	dstBasicG2 = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")
	dstAugG2   = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_AUG_")
	dstPopG2   = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")
	dstProofG2 = []byte("BLS_POP_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")
)

// g1Point wraps a G1 affine element.
type g1Point struct {
	p bls12381.G1Affine
}

func (a g1Point) Add(rhs Point) Point {
	var r bls12381.G1Affine
	q := mustG1(rhs)
	r.Add(&a.p, &q.p)
	return g1Point{r}
}

func (a g1Point) Neg() Point {
	var r bls12381.G1Affine
	r.Neg(&a.p)
	return g1Point{r}
}

func (a g1Point) Mul(s *fr.Element) Point {
	var r bls12381.G1Affine
	r.ScalarMultiplication(&a.p, s.BigInt(new(big.Int)))
	return g1Point{r}
}

func (a g1Point) IsIdentity() bool {
	return a.p.IsInfinity()
}

func (a g1Point) Equal(rhs Point) bool {
	q := mustG1(rhs)
	return a.p.Equal(&q.p)
}

func (a g1Point) Bytes() []byte {
	b := a.p.Bytes()
	return b[:]
}

func mustG1(p Point) g1Point {
	q, ok := p.(g1Point)
	if !ok {
		panic("blsful: G1 operation on a non-G1 point")
	}
	return q
}

// g2Point wraps a G2 affine element.
type g2Point struct {
	p bls12381.G2Affine
}

func (a g2Point) Add(rhs Point) Point {
	var r bls12381.G2Affine
	q := mustG2(rhs)
	r.Add(&a.p, &q.p)
	return g2Point{r}
}

func (a g2Point) Neg() Point {
	var r bls12381.G2Affine
	r.Neg(&a.p)
	return g2Point{r}
}

func (a g2Point) Mul(s *fr.Element) Point {
	var r bls12381.G2Affine
	r.ScalarMultiplication(&a.p, s.BigInt(new(big.Int)))
	return g2Point{r}
}

func (a g2Point) IsIdentity() bool {
	return a.p.IsInfinity()
}

func (a g2Point) Equal(rhs Point) bool {
	q := mustG2(rhs)
	return a.p.Equal(&q.p)
}

func (a g2Point) Bytes() []byte {
	b := a.p.Bytes()
	return b[:]
}

func mustG2(p Point) g2Point {
	q, ok := p.(g2Point)
	if !ok {
		panic("blsful: G2 operation on a non-G2 point")
	}
	return q
}

type g1Group struct{}

func (g1Group) Identity() Point {
	return g1Point{}
}

func (g1Group) Generator() Point {
	return g1Point{g1Gen}
}

func (g1Group) Hash(msg, dst []byte) (Point, error) {
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return nil, err
	}
	return g1Point{p}, nil
}

func (g1Group) FromCompressed(data []byte) (Point, error) {
	if len(data) != bls12381.SizeOfG1AffineCompressed {
		return nil, deserializeErr("invalid G1 point length")
	}
	var p bls12381.G1Affine
	if _, err := p.SetBytes(data); err != nil {
		return nil, deserializeErr("invalid G1 point: " + err.Error())
	}
	if !p.IsInfinity() && !p.IsInSubGroup() {
		return nil, deserializeErr("G1 point not in prime-order subgroup")
	}
	return g1Point{p}, nil
}

func (g1Group) CompressedSize() int {
	return bls12381.SizeOfG1AffineCompressed
}

type g2Group struct{}

func (g2Group) Identity() Point {
	return g2Point{}
}

func (g2Group) Generator() Point {
	return g2Point{g2Gen}
}

func (g2Group) Hash(msg, dst []byte) (Point, error) {
	p, err := bls12381.HashToG2(msg, dst)
	if err != nil {
		return nil, err
	}
	return g2Point{p}, nil
}

func (g2Group) FromCompressed(data []byte) (Point, error) {
	if len(data) != bls12381.SizeOfG2AffineCompressed {
		return nil, deserializeErr("invalid G2 point length")
	}
	var p bls12381.G2Affine
	if _, err := p.SetBytes(data); err != nil {
		return nil, deserializeErr("invalid G2 point: " + err.Error())
	}
	if !p.IsInfinity() && !p.IsInSubGroup() {
		return nil, deserializeErr("G2 point not in prime-order subgroup")
	}
	return g2Point{p}, nil
}

func (g2Group) CompressedSize() int {
	return bls12381.SizeOfG2AffineCompressed
}

func g1Slice(pts []Point) ([]bls12381.G1Affine, error) {
	out := make([]bls12381.G1Affine, len(pts))
	for i, p := range pts {
		q, ok := p.(g1Point)
		if !ok {
			return nil, invalidInputs("expected a G1 point")
		}
		out[i] = q.p
	}
	return out, nil
}

func g2Slice(pts []Point) ([]bls12381.G2Affine, error) {
	out := make([]bls12381.G2Affine, len(pts))
	for i, p := range pts {
		q, ok := p.(g2Point)
		if !ok {
			return nil, invalidInputs("expected a G2 point")
		}
		out[i] = q.p
	}
	return out, nil
}

// g1SigEngine: signatures in G1, public keys in G2.
type g1SigEngine struct{}

func (g1SigEngine) Name() string          { return "BLS12381G1" }
func (g1SigEngine) SignatureGroup() Group { return g1Group{} }
func (g1SigEngine) PublicKeyGroup() Group { return g2Group{} }

func (g1SigEngine) PairingProductIsOne(sigs, pks []Point) (bool, error) {
	if len(sigs) != len(pks) || len(sigs) == 0 {
		return false, invalidInputs("pairing inputs must be equal-length and non-empty")
	}
	a, err := g1Slice(sigs)
	if err != nil {
		return false, err
	}
	b, err := g2Slice(pks)
	if err != nil {
		return false, err
	}
	return bls12381.PairingCheck(a, b)
}

func (g1SigEngine) Pair(sig, pk Point) ([]byte, error) {
	a, err := g1Slice([]Point{sig})
	if err != nil {
		return nil, err
	}
	b, err := g2Slice([]Point{pk})
	if err != nil {
		return nil, err
	}
	gt, err := bls12381.Pair(a, b)
	if err != nil {
		return nil, err
	}
	buf := gt.Bytes()
	return buf[:], nil
}

func (g1SigEngine) dst(s SignatureScheme) []byte {
	switch s {
	case MessageAugmentation:
		return dstAugG1
	case ProofOfPossession:
		return dstPopG1
	default:
		return dstBasicG1
	}
}

func (g1SigEngine) popDST() []byte { return dstProofG1 }

// g2SigEngine: signatures in G2, public keys in G1.
type g2SigEngine struct{}

func (g2SigEngine) Name() string          { return "BLS12381G2" }
func (g2SigEngine) SignatureGroup() Group { return g2Group{} }
func (g2SigEngine) PublicKeyGroup() Group { return g1Group{} }

func (g2SigEngine) PairingProductIsOne(sigs, pks []Point) (bool, error) {
	if len(sigs) != len(pks) || len(sigs) == 0 {
		return false, invalidInputs("pairing inputs must be equal-length and non-empty")
	}
	a, err := g2Slice(sigs)
	if err != nil {
		return false, err
	}
	b, err := g1Slice(pks)
	if err != nil {
		return false, err
	}
	return bls12381.PairingCheck(b, a)
}

func (g2SigEngine) Pair(sig, pk Point) ([]byte, error) {
	a, err := g2Slice([]Point{sig})
	if err != nil {
		return nil, err
	}
	b, err := g1Slice([]Point{pk})
	if err != nil {
		return nil, err
	}
	gt, err := bls12381.Pair(b, a)
	if err != nil {
		return nil, err
	}
	buf := gt.Bytes()
	return buf[:], nil
}

func (g2SigEngine) dst(s SignatureScheme) []byte {
	switch s {
	case MessageAugmentation:
		return dstAugG2
	case ProofOfPossession:
		return dstPopG2
	default:
		return dstBasicG2
	}
}

func (g2SigEngine) popDST() []byte { return dstProofG2 }

// engineForSignatureSize infers the engine from a compressed point that
// lives in the signature group.
func engineForSignatureSize(n int) (Engine, error) {
	switch n {
	case bls12381.SizeOfG1AffineCompressed:
		return Bls12381G1, nil
	case bls12381.SizeOfG2AffineCompressed:
		return Bls12381G2, nil
	default:
		return nil, deserializeErr("unrecognized signature point length")
	}
}

// engineForPublicKeySize infers the engine from a compressed point that
// lives in the public-key group.
func engineForPublicKeySize(n int) (Engine, error) {
	switch n {
	case bls12381.SizeOfG2AffineCompressed:
		return Bls12381G1, nil
	case bls12381.SizeOfG1AffineCompressed:
		return Bls12381G2, nil
	default:
		return nil, deserializeErr("unrecognized public key point length")
	}
}
