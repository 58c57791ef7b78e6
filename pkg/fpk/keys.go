package fpk

import (
	"github.com/tink-crypto/tink-go/v2/subtle/random"
)

const (
	// CipherKeySize is the AES-128 key length in bytes.
	CipherKeySize = 16

	// SigningKeySize is the HMAC-SHA256 key length in bytes.
	SigningKeySize = 32
)

// KeyMaterial holds the two secrets protecting an archive: the block cipher
// key and the signing key. Instances are read-only value objects and safe to
// share across concurrent pack/unpack calls.
type KeyMaterial struct {
	Cipher  []byte
	Signing []byte
}

// GenerateKeys draws fresh key material from the system CSPRNG. The two keys
// are independent random values, never derived from one another.
func GenerateKeys() KeyMaterial {
	return KeyMaterial{
		Cipher:  random.GetRandomBytes(CipherKeySize),
		Signing: random.GetRandomBytes(SigningKeySize),
	}
}
