package fpk

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestGenerateKeysSizes(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	if len(keys.Cipher) != CipherKeySize {
		t.Errorf("cipher key length %d, want %d", len(keys.Cipher), CipherKeySize)
	}

	if len(keys.Signing) != SigningKeySize {
		t.Errorf("signing key length %d, want %d", len(keys.Signing), SigningKeySize)
	}

	if bytes.Equal(keys.Cipher, keys.Signing[:CipherKeySize]) {
		t.Error("cipher key is a prefix of the signing key")
	}
}

func TestGenerateKeysNoCollisions(t *testing.T) {
	t.Parallel()

	const iterations = 1000

	cipherKeys := make(map[string]struct{}, iterations)
	signingKeys := make(map[string]struct{}, iterations)

	for range iterations {
		keys := GenerateKeys()

		cipherHex := hex.EncodeToString(keys.Cipher)
		if _, ok := cipherKeys[cipherHex]; ok {
			t.Fatal("cipher key collision")
		}

		cipherKeys[cipherHex] = struct{}{}

		signingHex := hex.EncodeToString(keys.Signing)
		if _, ok := signingKeys[signingHex]; ok {
			t.Fatal("signing key collision")
		}

		signingKeys[signingHex] = struct{}{}
	}
}
