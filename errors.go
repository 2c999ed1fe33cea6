package blsful

import (
	"errors"
	"fmt"
)

// Error kinds returned by this package. Callers should match with
// errors.Is; most errors carry additional context wrapped around one
// of these sentinels.
var (
	// ErrInvalidInputs reports malformed lengths, identity-element
	// arguments, zero scalars, or mismatched argument counts.
	ErrInvalidInputs = errors.New("blsful: invalid inputs")
	// ErrInvalidSignature reports a failed pairing check.
	ErrInvalidSignature = errors.New("blsful: invalid signature")
	// ErrInvalidSignatureScheme reports mixed scheme tags across
	// combination or aggregation inputs.
	ErrInvalidSignatureScheme = errors.New("blsful: mismatched signature schemes")
	// ErrInvalidProof reports a failed sigma-protocol verification or a
	// challenge mismatch.
	ErrInvalidProof = errors.New("blsful: invalid proof")
	// ErrInvalidDecryptionShare reports a decryption share that fails
	// its public verification equation.
	ErrInvalidDecryptionShare = errors.New("blsful: invalid decryption share")
	// ErrSigning reports signing with a zero secret key or with a
	// scheme the operation does not support.
	ErrSigning = errors.New("blsful: signing error")
	// ErrDeserialize reports malformed wire bytes.
	ErrDeserialize = errors.New("blsful: malformed encoding")
)

func invalidInputs(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInputs, msg)
}

func deserializeErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrDeserialize, msg)
}
