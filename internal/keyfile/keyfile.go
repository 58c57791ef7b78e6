// Package keyfile reads and writes the JSON key file that carries the hex
// encoded cipher and signing keys for an archive.
package keyfile

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/fpk/pkg/fpk"
)

// ErrInvalid is returned when a key file does not contain two well-formed
// lowercase hex keys of the expected lengths.
var ErrInvalid = errors.New("invalid key file")

// ownerReadWrite is the permission mode for key files.
const ownerReadWrite = 0o600

// File is the on-disk JSON shape of a key file.
type File struct {
	AES  string `json:"aes"`
	HMAC string `json:"hmac"`
}

// Write hex-encodes keys and writes them to path with owner-only permissions,
// terminated by a newline. An existing file is never clobbered unless force is
// set.
func Write(path string, keys fpk.KeyMaterial, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("key file %q already exists", path)
		}
	}

	data, err := json.Marshal(File{
		AES:  hex.EncodeToString(keys.Cipher),
		HMAC: hex.EncodeToString(keys.Signing),
	})
	if err != nil {
		return fmt.Errorf("encoding key file: %w", err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, ownerReadWrite); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	return nil
}

// Read loads and validates a key file written by Write.
func Read(path string) (fpk.KeyMaterial, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied config
	if err != nil {
		return fpk.KeyMaterial{}, fmt.Errorf("reading key file: %w", err)
	}

	var keyFile File
	if err := json.Unmarshal(data, &keyFile); err != nil {
		return fpk.KeyMaterial{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	cipherKey, err := decodeKey(keyFile.AES, fpk.CipherKeySize)
	if err != nil {
		return fpk.KeyMaterial{}, fmt.Errorf("%w: aes: %v", ErrInvalid, err)
	}

	signingKey, err := decodeKey(keyFile.HMAC, fpk.SigningKeySize)
	if err != nil {
		return fpk.KeyMaterial{}, fmt.Errorf("%w: hmac: %v", ErrInvalid, err)
	}

	return fpk.KeyMaterial{Cipher: cipherKey, Signing: signingKey}, nil
}

// decodeKey decodes a lowercase hex key and checks its decoded length.
// Uppercase hex is rejected; the format mandates the lowercase alphabet.
func decodeKey(s string, size int) ([]byte, error) {
	if len(s) != 2*size {
		return nil, fmt.Errorf("expected %d hex characters, got %d", 2*size, len(s))
	}

	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, fmt.Errorf("character %q is not lowercase hex", c)
		}
	}

	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}

	return key, nil
}
