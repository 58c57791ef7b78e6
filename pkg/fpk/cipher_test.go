package fpk

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func testKeys(t *testing.T) KeyMaterial {
	t.Helper()

	return GenerateKeys()
}

func TestSealOpenRoundTrip(t *testing.T) {
	t.Parallel()

	keys := testKeys(t)

	payload := make([]byte, 4*blockSize)
	if _, err := rand.Read(payload); err != nil {
		t.Fatalf("rand: %v", err)
	}

	iv, ciphertext, err := seal(payload, keys, rand.Reader)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if len(iv) != ivSize {
		t.Errorf("IV length %d, want %d", len(iv), ivSize)
	}

	if len(ciphertext) != signatureSize+len(payload) {
		t.Errorf("ciphertext length %d, want %d", len(ciphertext), signatureSize+len(payload))
	}

	if len(ciphertext)%blockSize != 0 {
		t.Errorf("ciphertext length %d not block aligned", len(ciphertext))
	}

	got, err := open(iv, ciphertext, keys)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Error("payload mismatch after round trip")
	}
}

func TestSealEmptyPayload(t *testing.T) {
	t.Parallel()

	keys := testKeys(t)

	_, ciphertext, err := seal(nil, keys, rand.Reader)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	// An empty payload still carries its 32-byte signature.
	if len(ciphertext) != signatureSize {
		t.Errorf("ciphertext length %d, want %d", len(ciphertext), signatureSize)
	}
}

func TestSealFreshIV(t *testing.T) {
	t.Parallel()

	keys := testKeys(t)
	payload := make([]byte, blockSize)

	first, _, err := seal(payload, keys, rand.Reader)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	second, _, err := seal(payload, keys, rand.Reader)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("two seal calls produced the same IV")
	}
}

func TestOpenMalformedCiphertext(t *testing.T) {
	t.Parallel()

	keys := testKeys(t)
	iv := make([]byte, ivSize)

	tests := []struct {
		name string
		size int
	}{
		{"not block aligned", 33},
		{"shorter than a signature", 16},
		{"empty", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := open(iv, make([]byte, tc.size), keys)
			if !errors.Is(err, ErrMalformedCiphertext) {
				t.Errorf("got %v, want ErrMalformedCiphertext", err)
			}
		})
	}
}

func TestOpenSignatureMismatch(t *testing.T) {
	t.Parallel()

	keys := testKeys(t)

	iv, ciphertext, err := seal([]byte("0123456789abcdef"), keys, rand.Reader)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	// Flip every bit of every ciphertext byte in turn.
	for i := range ciphertext {
		for bit := range 8 {
			tampered := bytes.Clone(ciphertext)
			tampered[i] ^= 1 << bit

			if _, err := open(iv, tampered, keys); !errors.Is(err, ErrSignatureMismatch) {
				t.Fatalf("byte %d bit %d: got %v, want ErrSignatureMismatch", i, bit, err)
			}
		}
	}
}

func TestOpenWrongSigningKey(t *testing.T) {
	t.Parallel()

	keys := testKeys(t)

	iv, ciphertext, err := seal([]byte("0123456789abcdef"), keys, rand.Reader)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	other := KeyMaterial{Cipher: keys.Cipher, Signing: GenerateKeys().Signing}

	if _, err := open(iv, ciphertext, other); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("got %v, want ErrSignatureMismatch", err)
	}
}
