package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkm-labs/viewgen/internal/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [project_path]",
	Short: "Check the model document without writing the artifact",
	Long: `Validate runs the full pipeline — locate, split, and load the composite
model document — but never writes, touches, or even reads the artifact.

Use it in CI to fail fast on malformed models, or before committing model
edits to see the diagnostics a regeneration would produce.

Examples:
  viewgen validate .
  viewgen validate . -m models/shop.model.xml
  viewgen validate . --section-policy strict-unique`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateFlags runFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)
	registerRunFlags(validateCmd, &validateFlags)
}

func runValidate(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) == 1 {
		projectPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	cfg, err := buildGenerationConfig(cmd, &validateFlags, projectPath, verbose)
	if err != nil {
		return err
	}

	service := newRegenerator(verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := service.Validate(ctx, cfg)
	reportResult(result)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, tui.SuccessStyle.Render(tui.SymbolCheck+" Model is valid"))
	return nil
}
