package fpk

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
)

const (
	ivSize        = aes.BlockSize
	signatureSize = sha256.Size
)

// seal signs payload with HMAC-SHA256 under the signing key and encrypts
// signature followed by payload with AES-128-CBC under a fresh IV. The payload
// is already block aligned by construction, so no padding scheme is applied.
// The IV is not secret but must never repeat under the same key, hence one
// fresh draw per call.
func seal(payload []byte, keys KeyMaterial, random io.Reader) (iv, ciphertext []byte, err error) {
	block, err := aes.NewCipher(keys.Cipher)
	if err != nil {
		return nil, nil, fmt.Errorf("creating cipher: %w", err)
	}

	iv = make([]byte, ivSize)
	if _, err := io.ReadFull(random, iv); err != nil {
		return nil, nil, fmt.Errorf("generating IV: %w", err)
	}

	mac := hmac.New(sha256.New, keys.Signing)
	mac.Write(payload)

	plaintext := make([]byte, 0, signatureSize+len(payload))
	plaintext = mac.Sum(plaintext)
	plaintext = append(plaintext, payload...)

	ciphertext = make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	return iv, ciphertext, nil
}

// open decrypts a sealed blob and verifies its signature, returning the
// payload. The comparison is constant time, and verification happens strictly
// before any record is parsed.
func open(iv, ciphertext []byte, keys KeyMaterial) ([]byte, error) {
	if len(iv) != ivSize {
		return nil, fmt.Errorf("%w: IV is %d bytes", ErrMalformedCiphertext, len(iv))
	}

	if len(ciphertext)%blockSize != 0 || len(ciphertext) < signatureSize {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes", ErrMalformedCiphertext, len(ciphertext))
	}

	block, err := aes.NewCipher(keys.Cipher)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	claimed := plaintext[:signatureSize]
	payload := plaintext[signatureSize:]

	mac := hmac.New(sha256.New, keys.Signing)
	mac.Write(payload)

	if !hmac.Equal(claimed, mac.Sum(nil)) {
		return nil, ErrSignatureMismatch
	}

	return payload, nil
}
