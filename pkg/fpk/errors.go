package fpk

import "errors"

var (
	// ErrPathTooLong is returned when an encoded relative path exceeds 65535 bytes.
	ErrPathTooLong = errors.New("path too long")
	// ErrFileTooLarge is returned when file content exceeds 4294967295 bytes.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnrecognizedFormat is returned when input does not start with the FPK magic and version.
	ErrUnrecognizedFormat = errors.New("unrecognized archive format")
	// ErrMalformedCiphertext is returned when the ciphertext length is not block aligned
	// or too short to contain a signature.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrSignatureMismatch is returned when the recomputed HMAC does not match the stored one.
	ErrSignatureMismatch = errors.New("signature mismatch")
	// ErrTruncatedRecord is returned when a record field runs past the end of the payload.
	ErrTruncatedRecord = errors.New("truncated record")
	// ErrInvalidEncoding is returned when a path is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid path encoding")
	// ErrCorruptPadding is returned when the record cursor overshoots the payload
	// instead of landing exactly on its end.
	ErrCorruptPadding = errors.New("corrupt padding")
)
