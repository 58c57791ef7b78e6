package fpk

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const (
	maxPathLen  = 1<<16 - 1
	maxFileSize = 1<<32 - 1

	pathLenSize  = 2
	fileSizeSize = 4
)

// Record is a single file entry: a slash-separated relative path and its
// content. Paths are not de-duplicated at this layer; two records with the
// same path are both carried and the consumer decides what wins.
type Record struct {
	Path string
	Data []byte
}

// appendRecord serializes rec onto dst: a little-endian uint16 path length,
// the UTF-8 path bytes, a little-endian uint32 content size, then the raw
// content. No padding is written here; alignment depends on the cumulative
// buffer length and is the Builder's responsibility.
func appendRecord(dst []byte, rec Record) ([]byte, error) {
	if len(rec.Path) > maxPathLen {
		return nil, fmt.Errorf("%w: path encodes to %d bytes", ErrPathTooLong, len(rec.Path))
	}

	if !utf8.ValidString(rec.Path) {
		return nil, fmt.Errorf("%w: path is not valid UTF-8", ErrInvalidEncoding)
	}

	if uint64(len(rec.Data)) > maxFileSize {
		return nil, fmt.Errorf("%w: content is %d bytes", ErrFileTooLarge, len(rec.Data))
	}

	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(rec.Path)))
	dst = append(dst, rec.Path...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(rec.Data)))
	dst = append(dst, rec.Data...)

	return dst, nil
}

// decodeRecord reads one record starting at off and returns it together with
// the number of bytes it occupied before padding. The content is copied out of
// buf so the returned record does not alias the payload.
func decodeRecord(buf []byte, off int) (Record, int, error) {
	if off+pathLenSize > len(buf) {
		return Record{}, 0, fmt.Errorf("%w: path length field", ErrTruncatedRecord)
	}

	pathLen := int(binary.LittleEndian.Uint16(buf[off:]))
	cur := off + pathLenSize

	if cur+pathLen > len(buf) {
		return Record{}, 0, fmt.Errorf("%w: path runs past buffer end", ErrTruncatedRecord)
	}

	path := buf[cur : cur+pathLen]
	if !utf8.Valid(path) {
		return Record{}, 0, fmt.Errorf("%w: path is not valid UTF-8", ErrInvalidEncoding)
	}

	cur += pathLen

	if cur+fileSizeSize > len(buf) {
		return Record{}, 0, fmt.Errorf("%w: size field", ErrTruncatedRecord)
	}

	size := int(binary.LittleEndian.Uint32(buf[cur:]))
	cur += fileSizeSize

	if size > len(buf)-cur {
		return Record{}, 0, fmt.Errorf("%w: content runs past buffer end", ErrTruncatedRecord)
	}

	data := make([]byte, size)
	copy(data, buf[cur:cur+size])
	cur += size

	return Record{Path: string(path), Data: data}, cur - off, nil
}
