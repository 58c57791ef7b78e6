package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/fpk/internal/logic"
)

// NewPackCommand creates a new cobra command for the pack subcommand.
func NewPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pack [flags] archive dir",
		Short:   "Pack a directory tree into an encrypted archive",
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

			return logic.RunPack(cfg)
		},
	}

	cmd.Flags().StringArrayP("exclude", "e", nil, "Glob pattern for relative paths to skip (repeatable)")
	cmd.Flags().String("exclude-from", "", "Path to a JSONC file with exclude patterns")

	return cmd
}
