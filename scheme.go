package blsful

import "fmt"

// SignatureScheme selects the message preprocessing and the
// domain-separation tag used by signing, verification, and the
// encryption protocols that bind a scheme tag into their ciphertexts.
type SignatureScheme uint8

const (
	// Basic hashes the message directly. Callers must guarantee message
	// uniqueness across an aggregate; aggregate verification rejects
	// duplicates.
	Basic SignatureScheme = iota
	// MessageAugmentation prefixes the compressed public key to the
	// message before hashing, making each signer's input unique.
	MessageAugmentation
	// ProofOfPossession hashes the message directly under its own tag
	// and relies on a separately verified possession proof to rule out
	// rogue-key attacks in multi-signatures.
	ProofOfPossession
)

func (s SignatureScheme) valid() bool {
	return s <= ProofOfPossession
}

func (s SignatureScheme) String() string {
	switch s {
	case Basic:
		return "Basic"
	case MessageAugmentation:
		return "MessageAugmentation"
	case ProofOfPossession:
		return "ProofOfPossession"
	default:
		return fmt.Sprintf("SignatureScheme(%d)", uint8(s))
	}
}

// ParseSignatureScheme maps a scheme name back to its tag.
func ParseSignatureScheme(s string) (SignatureScheme, error) {
	switch s {
	case "Basic":
		return Basic, nil
	case "MessageAugmentation":
		return MessageAugmentation, nil
	case "ProofOfPossession":
		return ProofOfPossession, nil
	default:
		return 0, invalidInputs("unknown signature scheme " + s)
	}
}
