package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/fpk/internal/logic"
)

// NewUnpackCommand creates a new cobra command for the unpack subcommand.
func NewUnpackCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "unpack [flags] archive dir",
		Short:   "Unpack an encrypted archive into a directory",
		Args:    cobra.ExactArgs(2), //nolint:mnd // archive + dir
		PreRunE: bindFlags,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cfg.Archive = args[0]
			cfg.Dir = args[1]

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.RunUnpack(cfg)
		},
	}
}
