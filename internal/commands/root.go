package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/fpk/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "fpk [flags] command [flags]"
	root.Short = "Encrypted directory archiver"
	root.Long = `Packs a directory tree into a single authenticated, encrypted archive
file and unpacks it again. Provides commands for key generation, packing,
and unpacking.`

	root.PersistentFlags().StringP("key-file", "f", "", "Path to the JSON key file")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print summary statistics")

	root.AddCommand(NewKeygenCommand(), NewPackCommand(), NewUnpackCommand())

	return root
}

// bindFlags binds the command's local and inherited flags into viper so they
// unmarshal into the config struct.
func bindFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("binding inherited flags: %w", err)
	}

	return nil
}

// loadConfig unmarshals the bound flags into a validated Config.
func loadConfig() (*config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
