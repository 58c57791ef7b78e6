// Package commands provides the command-line interface for the fpk tool.
//
// It implements commands for:
//   - key generation
//   - packing a directory tree into an archive
//   - unpacking an archive back into a directory tree
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
