// Package config defines the configuration shared by the fpk commands.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds all settings for the fpk commands.
type Config struct {
	// Path to the JSON key file holding the hex encoded keys.
	KeyFile string `mapstructure:"key-file" validate:"required"`

	// Number of parallel workers used when reading input files.
	Parallel int `validate:"gte=1"`

	// Suppress non-error output.
	Quiet bool

	// Print summary statistics after a run.
	Stats bool

	// Overwrite an existing key file on keygen.
	Force bool

	// Exclude patterns applied to relative paths while packing.
	Exclude []string

	// Path to a JSONC file with additional exclude patterns.
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Positional arguments.
	Archive string
	Dir     string
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}
