package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vkm-labs/viewgen/internal/tui"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [project_path]",
	Short: "Regenerate the mapping-view artifact if the model changed",
	Long: `Generate fingerprints the composite model document and compares it against
the stamp on the first line of the artifact.

The generate command:
1. Locates the model document (single file or first match in a directory)
2. Computes the SHA-256 fingerprint of the document's exact text
3. If the artifact's stamp matches: touches the artifact and exits (fast path)
4. Otherwise: splits the document into its conceptual, storage, and mapping
   sections, validates them, and rewrites the artifact with a fresh stamp

The fingerprint covers the document text byte for byte. Whitespace or
comment edits regenerate the artifact even though the schema is unchanged;
run 'viewgen generate' again to settle the stamp.

Examples:
  # Use viewgen.yaml in the current directory
  viewgen generate .

  # Explicit model and output, no project config needed
  viewgen generate . -m models/shop.model.xml -o gen/views.generated.cs

  # Pick one document out of a directory of models
  viewgen generate . -m models -n shop

  # Visual Basic output with strict duplicate handling
  viewgen generate . -l vb --section-policy strict-unique`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var generateFlags runFlagValues

func init() {
	rootCmd.AddCommand(generateCmd)
	registerRunFlags(generateCmd, &generateFlags)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) == 1 {
		projectPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	cfg, err := buildGenerationConfig(cmd, &generateFlags, projectPath, verbose)
	if err != nil {
		return err
	}

	service := newRegenerator(verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
		cancel()
	}()

	result, err := service.Regenerate(ctx, cfg)
	reportResult(result)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}

// reportResult prints diagnostics and the outcome summary to stderr. Called
// on both success and failure; a nil result means the run never got far
// enough to produce one.
func reportResult(result *viewgen.Result) {
	if result == nil {
		return
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, tui.RenderDiagnostic(d))
	}
}
