package fpk

import (
	"fmt"
	"io"
)

// blockSize is the AES block size. Payload and ciphertext lengths are kept as
// multiples of it so CBC needs no additional padding scheme.
const blockSize = 16

// alignUp rounds n up to the next multiple of blockSize.
func alignUp(n int) int {
	return (n + blockSize - 1) &^ (blockSize - 1)
}

// Builder accumulates records into a payload buffer. After every append the
// cumulative buffer length is brought to a 16-byte boundary with random
// padding. Note that this aligns the running total, not each record on its
// own; the distinction matters for byte compatibility between
// implementations.
type Builder struct {
	buf  []byte
	rand io.Reader
}

// NewBuilder returns an empty Builder. The zero records case is valid: its
// payload is empty and already aligned.
func NewBuilder(opts ...Option) *Builder {
	o := newOptions(opts)

	return &Builder{rand: o.rand}
}

// Append encodes one file entry and pads the buffer to the next block
// boundary.
func (b *Builder) Append(path string, data []byte) error {
	buf, err := appendRecord(b.buf, Record{Path: path, Data: data})
	if err != nil {
		return err
	}

	pad := make([]byte, alignUp(len(buf))-len(buf))
	if _, err := io.ReadFull(b.rand, pad); err != nil {
		return fmt.Errorf("generating padding: %w", err)
	}

	b.buf = append(buf, pad...)

	return nil
}

// Bytes returns the accumulated payload. Its length is always a multiple of
// 16.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Reader iterates the records of a verified payload buffer.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps a payload obtained from a successful open.
func NewReader(payload []byte) *Reader {
	return &Reader{buf: payload}
}

// Next returns the next record, skipping the alignment padding that follows
// it. It returns io.EOF when the cursor lands exactly on the end of the
// buffer, and ErrCorruptPadding when it overshoots instead.
func (r *Reader) Next() (Record, error) {
	if r.off == len(r.buf) {
		return Record{}, io.EOF
	}

	if r.off > len(r.buf) {
		return Record{}, fmt.Errorf("%w: cursor past buffer end", ErrCorruptPadding)
	}

	rec, n, err := decodeRecord(r.buf, r.off)
	if err != nil {
		return Record{}, err
	}

	r.off = alignUp(r.off + n)

	return rec, nil
}
