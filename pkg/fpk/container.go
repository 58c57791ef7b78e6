package fpk

import (
	"errors"
	"fmt"
	"io"
)

const (
	containerMagic   = "FPK"
	containerVersion = byte(1)
)

const headerSize = len(containerMagic) + 1 + ivSize

// Pack serializes records into a complete FPK container. Record order in the
// container equals the order given; the codec neither sorts nor de-duplicates
// paths.
func Pack(records []Record, keys KeyMaterial, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	builder := NewBuilder(opts...)
	for _, rec := range records {
		if err := builder.Append(rec.Path, rec.Data); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", rec.Path, err)
		}
	}

	iv, ciphertext, err := seal(builder.Bytes(), keys, o.rand)
	if err != nil {
		return nil, fmt.Errorf("sealing payload: %w", err)
	}

	out := make([]byte, 0, headerSize+len(ciphertext))
	out = append(out, containerMagic...)
	out = append(out, containerVersion)
	out = append(out, iv...)
	out = append(out, ciphertext...)

	return out, nil
}

// Unpack decodes a container produced by Pack. The magic and version gate runs
// before any key material is touched, and the signature is verified before the
// first record is parsed or returned.
func Unpack(data []byte, keys KeyMaterial) ([]Record, error) {
	if len(data) < len(containerMagic)+1 ||
		string(data[:len(containerMagic)]) != containerMagic ||
		data[len(containerMagic)] != containerVersion {
		return nil, ErrUnrecognizedFormat
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: container too short to hold an IV", ErrMalformedCiphertext)
	}

	iv := data[len(containerMagic)+1 : headerSize]
	ciphertext := data[headerSize:]

	payload, err := open(iv, ciphertext, keys)
	if err != nil {
		return nil, err
	}

	var records []Record

	reader := NewReader(payload)

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}
