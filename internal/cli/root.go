package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `       _
__   _(_) _____      ____ _  ___ _ __
\ \ / / |/ _ \ \ /\ / / _` + "`" + ` |/ _ \ '_ \
 \ V /| |  __/\ V  V / (_| |  __/ | | |
  \_/ |_|\___| \_/\_/ \__, |\___|_| |_|
                      |___/`

var rootCmd = &cobra.Command{
	Use:   "viewgen",
	Short: "Deterministic mapping-view code generator",
	Long: asciiLogo + `

viewgen reads a composite model document, fingerprints its exact text, and
regenerates the mapping-view source artifact only when the document actually
changed. Unchanged models cost one file read and a timestamp touch.

The fingerprint is stamped on the first line of the artifact, so the build
cache travels with the generated file and survives clean checkouts.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  20 - No model document could be located or instantiated
  21 - Composite document malformed or namespace unknown
  22 - Required section missing or ambiguous
  23 - Loading or generation reported errors
  24 - Artifact read/write/touch failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for viewgen")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
