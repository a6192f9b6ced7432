package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hydrate",
		Short: "Hydrate flat, alias-prefixed row sets into nested objects",
		Long: `hydrate reconstructs nested object trees from denormalized row sets.
Models and associations are declared in a YAML definition file; a schema
tree selects which associations to materialize and under which aliases.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
