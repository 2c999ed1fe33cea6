package blsful

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// hashToScalar derives a field element from msg keyed by salt:
// HKDF-SHA256 extract over msg || 0x00, expand with info {0x00, 0x30}
// to 48 bytes, reduced mod r. The reduction of 48 uniform bytes keeps
// the bias below 2^-128. A zero result is rejected and the expand
// stream is read again.
func hashToScalar(msg, salt []byte) fr.Element {
	ikm := make([]byte, len(msg)+1)
	copy(ikm, msg)
	prk := hkdf.Extract(sha256.New, ikm, salt)
	okm := hkdf.Expand(sha256.New, prk, []byte{0x00, 0x30})
	var buf [48]byte
	var s fr.Element
	for {
		if _, err := io.ReadFull(okm, buf[:]); err != nil {
			// Expand yields 255*32 bytes before exhaustion; unreachable
			// for the handful of 48-byte reads a zero retry could take.
			panic("blsful: hkdf expand exhausted")
		}
		s.SetBytes(buf[:])
		if !s.IsZero() {
			return s
		}
	}
}

// randomScalar draws a fresh nonzero scalar, domain-separated by salt.
func randomScalar(salt []byte) (fr.Element, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return fr.Element{}, err
	}
	s := hashToScalar(seed[:], salt)
	wipeBytes(seed[:])
	return s, nil
}

// xofMask XORs data with a Shake128 stream keyed by key.
func xofMask(key, data []byte) []byte {
	h := sha3.NewShake128()
	_, _ = h.Write(key)
	stream := make([]byte, len(data))
	_, _ = h.Read(stream)
	for i := range stream {
		stream[i] ^= data[i]
	}
	return stream
}

// byteXor returns a XOR b; both slices must have equal length.
func byteXor(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, invalidInputs("xor operands differ in length")
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// i2osp encodes val as a big-endian integer of the given byte length.
func i2osp(val, length int) []byte {
	out := make([]byte, length)
	switch length {
	case 1:
		out[0] = byte(val)
	case 2:
		binary.BigEndian.PutUint16(out, uint16(val))
	case 4:
		binary.BigEndian.PutUint32(out, uint32(val))
	default:
		panic("blsful: unsupported i2osp length")
	}
	return out
}

// minFramedSize pads framed plaintexts so that ciphertexts never reveal
// very short message lengths.
const minFramedSize = 32

// frameMessage prefixes msg with its uvarint length and zero-pads the
// result to at least minFramedSize bytes.
func frameMessage(msg []byte) []byte {
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(msg)))
	framed := make([]byte, 0, n+len(msg))
	framed = append(framed, hdr[:n]...)
	framed = append(framed, msg...)
	for len(framed) < minFramedSize {
		framed = append(framed, 0)
	}
	return framed
}

// unframeMessage reverses frameMessage, rejecting lengths that overrun
// the buffer.
func unframeMessage(framed []byte) ([]byte, bool) {
	l, n := binary.Uvarint(framed)
	if n <= 0 || l > uint64(len(framed)-n) {
		return nil, false
	}
	out := make([]byte, l)
	copy(out, framed[n:])
	return out, true
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipeScalar(s *fr.Element) {
	s.SetZero()
}

func wipeScalars(ss []fr.Element) {
	for i := range ss {
		ss[i].SetZero()
	}
}
