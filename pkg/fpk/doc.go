// Package fpk implements the FPK archive format: an entire directory tree
// serialized into one authenticated, encrypted container file.
//
// A container starts with the magic "FPK" and a version byte, followed by a
// 16-byte IV and the AES-128-CBC encryption of an HMAC-SHA256 signature
// concatenated with the record payload. The signature is computed over the
// plaintext payload before encryption and verified after decryption, before
// any record is parsed.
package fpk
