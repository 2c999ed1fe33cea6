package blsful

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// scalarShare is an evaluation of the sharing polynomial at the
// 1-based identifier.
type scalarShare struct {
	id    uint8
	value fr.Element
}

// pointShare carries a group element derived from a single key share,
// such as a partial signature or a partial decryption.
type pointShare struct {
	id uint8
	p  Point
}

// splitScalar shares secret with a random polynomial of degree
// threshold-1 evaluated at x = 1..limit. Identifiers fit one byte, so
// limit caps at 255.
func splitScalar(secret *fr.Element, threshold, limit int) ([]scalarShare, error) {
	if threshold < 1 {
		return nil, invalidInputs("threshold must be at least 1")
	}
	if limit < threshold {
		return nil, invalidInputs("limit must be at least the threshold")
	}
	if limit > 255 {
		return nil, invalidInputs("limit must fit a single-byte identifier")
	}

	coeffs := make([]fr.Element, threshold)
	coeffs[0].Set(secret)
	for i := 1; i < threshold; i++ {
		if _, err := coeffs[i].SetRandom(); err != nil {
			return nil, err
		}
	}
	defer wipeScalars(coeffs)

	shares := make([]scalarShare, limit)
	for i := 1; i <= limit; i++ {
		var x, y fr.Element
		x.SetUint64(uint64(i))
		// Horner evaluation from the top coefficient down.
		y.Set(&coeffs[threshold-1])
		for j := threshold - 2; j >= 0; j-- {
			y.Mul(&y, &x)
			y.Add(&y, &coeffs[j])
		}
		shares[i-1] = scalarShare{id: uint8(i), value: y}
	}
	return shares, nil
}

// lagrangeCoefficients returns the interpolation weights at x = 0 for
// the given identifiers, which must be distinct and nonzero.
func lagrangeCoefficients(ids []uint8) ([]fr.Element, error) {
	if len(ids) < 2 {
		return nil, invalidInputs("at least two shares are required")
	}
	seen := make(map[uint8]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return nil, invalidInputs("share identifier must be nonzero")
		}
		if _, dup := seen[id]; dup {
			return nil, invalidInputs("duplicate share identifier")
		}
		seen[id] = struct{}{}
	}

	coeffs := make([]fr.Element, len(ids))
	for i := range ids {
		var xi, num, den fr.Element
		xi.SetUint64(uint64(ids[i]))
		num.SetOne()
		den.SetOne()
		for j := range ids {
			if j == i {
				continue
			}
			var xj, d fr.Element
			xj.SetUint64(uint64(ids[j]))
			num.Mul(&num, &xj)
			d.Sub(&xj, &xi)
			den.Mul(&den, &d)
		}
		den.Inverse(&den)
		coeffs[i].Mul(&num, &den)
	}
	return coeffs, nil
}

// combineScalarShares interpolates the shared secret at x = 0. With
// fewer shares than the original threshold the result is a uniformly
// wrong scalar; the routine cannot detect that.
func combineScalarShares(shares []scalarShare) (fr.Element, error) {
	ids := make([]uint8, len(shares))
	for i, s := range shares {
		ids[i] = s.id
	}
	coeffs, err := lagrangeCoefficients(ids)
	if err != nil {
		return fr.Element{}, err
	}
	defer wipeScalars(coeffs)

	var secret, term fr.Element
	for i := range shares {
		term.Mul(&shares[i].value, &coeffs[i])
		secret.Add(&secret, &term)
	}
	wipeScalar(&term)
	return secret, nil
}

// combinePointShares interpolates in the exponent: the weighted sum of
// the share points equals the point derived from the full secret.
func combinePointShares(g Group, shares []pointShare) (Point, error) {
	ids := make([]uint8, len(shares))
	for i, s := range shares {
		ids[i] = s.id
		if s.p == nil {
			return nil, invalidInputs("nil share point")
		}
	}
	coeffs, err := lagrangeCoefficients(ids)
	if err != nil {
		return nil, err
	}

	sum := g.Identity()
	for i := range shares {
		sum = sum.Add(shares[i].p.Mul(&coeffs[i]))
	}
	return sum, nil
}
