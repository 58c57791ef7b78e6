// The fpk tool packs a directory tree into a single authenticated, encrypted
// archive and unpacks it again.
package main

import (
	"os"

	"github.com/idelchi/fpk/internal/commands"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
