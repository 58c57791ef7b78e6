package fpk

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	records := []Record{
		{Path: "a/b.txt", Data: []byte("hi")},
		{Path: "empty", Data: nil},
		{Path: "big.bin", Data: bytes.Repeat([]byte{0x42}, 100_000)},
		{Path: "å/ünïcode.txt", Data: []byte("päth")},
	}

	container, err := Pack(records, keys)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	got, err := Unpack(container, keys)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}

	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}

	for i, want := range records {
		if got[i].Path != want.Path {
			t.Errorf("record %d path %q, want %q", i, got[i].Path, want.Path)
		}

		if !bytes.Equal(got[i].Data, want.Data) {
			t.Errorf("record %d content mismatch", i)
		}
	}
}

func TestPackLayout(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	container, err := Pack([]Record{{Path: "a/b.txt", Data: []byte("hi")}}, keys, WithRand(zeroReader{}))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	if string(container[:3]) != "FPK" || container[3] != 0x01 {
		t.Errorf("header %x, want magic FPK and version 1", container[:4])
	}

	if !bytes.Equal(container[4:20], make([]byte, 16)) {
		t.Error("IV does not come from the injected source")
	}

	// One 16-byte payload block plus the 32-byte signature.
	if len(container) != headerSize+signatureSize+16 {
		t.Errorf("container length %d, want %d", len(container), headerSize+signatureSize+16)
	}
}

func TestPackEmptyTree(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	container, err := Pack(nil, keys)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	// Empty payload: ciphertext is exactly the encrypted signature.
	if len(container) != headerSize+signatureSize {
		t.Errorf("container length %d, want %d", len(container), headerSize+signatureSize)
	}

	records, err := Unpack(container, keys)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestUnpackUnrecognizedFormat(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	container, err := Pack([]Record{{Path: "a", Data: []byte("x")}}, keys)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"short input", []byte("FP")},
		{"wrong magic", append([]byte("ZIP\x01"), container[4:]...)},
		{"wrong version", append([]byte("FPK\x02"), container[4:]...)},
		{"plain text", []byte(strings.Repeat("not an archive ", 10))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// The gate must fire even with unusable keys, proving the check
			// runs before any decryption.
			if _, err := Unpack(tc.data, KeyMaterial{}); !errors.Is(err, ErrUnrecognizedFormat) {
				t.Errorf("got %v, want ErrUnrecognizedFormat", err)
			}
		})
	}
}

func TestUnpackTamperedCiphertext(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	container, err := Pack([]Record{{Path: "a/b.txt", Data: []byte("hi")}}, keys)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	// IV and ciphertext are both covered: an IV flip corrupts the first
	// decrypted block, which holds part of the signature.
	for i := 4; i < len(container); i++ {
		tampered := bytes.Clone(container)
		tampered[i] ^= 0x01

		if _, err := Unpack(tampered, keys); !errors.Is(err, ErrSignatureMismatch) {
			t.Fatalf("byte %d: got %v, want ErrSignatureMismatch", i, err)
		}
	}
}

func TestUnpackTruncatedCiphertext(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	container, err := Pack([]Record{{Path: "a/b.txt", Data: []byte("hi")}}, keys)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	tests := []struct {
		name string
		size int
	}{
		{"header only", headerSize},
		{"partial signature", headerSize + 16},
		{"unaligned", len(container) - 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Unpack(container[:tc.size], keys); !errors.Is(err, ErrMalformedCiphertext) {
				t.Errorf("got %v, want ErrMalformedCiphertext", err)
			}
		})
	}
}

func TestPackPreservesOrder(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys()

	var records []Record
	for _, path := range []string{"z", "m", "a", "q"} {
		records = append(records, Record{Path: path, Data: []byte(path)})
	}

	container, err := Pack(records, keys)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	got, err := Unpack(container, keys)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}

	for i := range records {
		if got[i].Path != records[i].Path {
			t.Errorf("record %d path %q, want %q", i, got[i].Path, records[i].Path)
		}
	}
}
