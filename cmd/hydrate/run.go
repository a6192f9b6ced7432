package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dphaener/hydrate/hydrate"
	"github.com/dphaener/hydrate/internal/modelfile"
)

var (
	modelsPath string
	schemaPath string
	rowsPath   string
	verbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Hydrate a JSON row set into nested objects",
	Long: `Reads model definitions and a schema tree from YAML, a flat row set from
JSON, and prints the hydrated objects as JSON on stdout.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runHydration()
		if err != nil {
			color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "hydration failed:")
			return err
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&modelsPath, "models", "models.yaml", "model definition file")
	runCmd.Flags().StringVar(&schemaPath, "schema", "schema.yaml", "schema tree file")
	runCmd.Flags().StringVar(&rowsPath, "rows", "rows.json", "flat row set (JSON array of objects)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func runHydration() ([]hydrate.Object, error) {
	registry, err := modelfile.LoadRegistry(modelsPath)
	if err != nil {
		return nil, err
	}
	root, err := modelfile.LoadSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(rowsPath)
	if err != nil {
		return nil, err
	}
	var rows []hydrate.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing rows: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		defer logger.Sync()
	}

	return hydrate.New(registry, hydrate.WithLogger(logger)).Hydrate(rows, root)
}
