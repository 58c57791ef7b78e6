package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/fpk/internal/logic"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a new key file",
		Args:    cobra.NoArgs,
		PreRunE: bindFlags,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.RunKeygen(cfg)
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing key file")

	return cmd
}
