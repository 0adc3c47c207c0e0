package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vkm-labs/viewgen/internal/artifact"
	"github.com/vkm-labs/viewgen/internal/config"
	"github.com/vkm-labs/viewgen/internal/edm"
	"github.com/vkm-labs/viewgen/internal/fingerprint"
	"github.com/vkm-labs/viewgen/internal/generator"
	"github.com/vkm-labs/viewgen/internal/loader"
	"github.com/vkm-labs/viewgen/internal/logging"
	"github.com/vkm-labs/viewgen/internal/provider"
	"github.com/vkm-labs/viewgen/internal/services"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// Environment variables recognized between flags and viewgen.yaml.
// --env-file (or an implicit ./.env) can supply them via godotenv.
const (
	envModel         = "VIEWGEN_MODEL"
	envModelName     = "VIEWGEN_MODEL_NAME"
	envOutput        = "VIEWGEN_OUTPUT"
	envLanguage      = "VIEWGEN_LANGUAGE"
	envSectionPolicy = "VIEWGEN_SECTION_POLICY"
	envTimeout       = "VIEWGEN_TIMEOUT"
)

// runFlagValues holds the flags shared by generate and validate.
type runFlagValues struct {
	model         string
	modelName     string
	output        string
	language      string
	sectionPolicy string
	envFiles      []string
	timeout       time.Duration
}

// registerRunFlags wires the shared generation flags onto a command.
func registerRunFlags(cmd *cobra.Command, flags *runFlagValues) {
	cmd.Flags().StringVarP(&flags.model, "model", "m", "",
		"Model document or directory of *.model.xml files\n"+
			"Precedence: --model > viewgen.yaml model.path > <project_path>")
	cmd.Flags().StringVarP(&flags.modelName, "model-name", "n", "",
		"Narrow candidate documents by case-insensitive file-stem suffix\n"+
			"Example: -n shop matches shop.model.xml and webshop.model.xml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Generated artifact path\n"+
			"Precedence: --output > viewgen.yaml output.path > <project_path>/generated/"+viewgen.DefaultOutputBase+".<ext>")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "",
		"Target language: csharp|vb (default csharp, or viewgen.yaml output.language)")
	cmd.Flags().StringVar(&flags.sectionPolicy, "section-policy", "",
		"Duplicate section handling: first-match|strict-unique\n"+
			"first-match keeps the first section in document order and warns;\n"+
			"strict-unique rejects the document")
	cmd.Flags().StringSliceVar(&flags.envFiles, "env-file", nil,
		"Load environment variables from .env files (can be specified multiple times)\n"+
			"VIEWGEN_MODEL, VIEWGEN_OUTPUT, VIEWGEN_LANGUAGE etc. supply defaults for the\n"+
			"corresponding flags")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 3*time.Minute,
		"Catastrophic failure protection timeout (default 3m)\n"+
			"Examples: 30s, 5m, 1h30m")
}

// buildGenerationConfig resolves flags, VIEWGEN_* environment variables,
// viewgen.yaml, and defaults into a GenerationConfig, in that precedence
// order.
func buildGenerationConfig(cmd *cobra.Command, flags *runFlagValues, projectPath string, verbose bool) (viewgen.GenerationConfig, error) {
	if len(flags.envFiles) > 0 {
		if err := godotenv.Load(flags.envFiles...); err != nil {
			return viewgen.GenerationConfig{}, fmt.Errorf("failed to load env file: %v: %w", err, viewgen.ErrInvalidConfig)
		}
	} else {
		_ = godotenv.Load()
	}

	projectCfg, err := config.Load(projectPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return viewgen.GenerationConfig{}, fmt.Errorf("failed to load %s: %v: %w", config.ConfigFileName, err, viewgen.ErrInvalidConfig)
		}
		projectCfg = nil
	}

	languageToken := envDefault(flags.language, envLanguage)
	if languageToken == "" && projectCfg != nil {
		languageToken = projectCfg.Output.Language
	}
	language, err := viewgen.ParseLanguage(languageToken)
	if err != nil {
		return viewgen.GenerationConfig{}, err
	}

	policyToken := envDefault(flags.sectionPolicy, envSectionPolicy)
	if policyToken == "" && projectCfg != nil {
		policyToken = projectCfg.SectionPolicy
	}
	policy, err := viewgen.ParseSectionPolicy(policyToken)
	if err != nil {
		return viewgen.GenerationConfig{}, err
	}

	modelPath := envDefault(flags.model, envModel)
	if modelPath == "" && projectCfg != nil && projectCfg.Model.Path != "" {
		modelPath = filepath.Join(projectPath, projectCfg.Model.Path)
	}
	if modelPath == "" {
		modelPath = projectPath
	}

	modelName := envDefault(flags.modelName, envModelName)
	if modelName == "" && projectCfg != nil {
		modelName = projectCfg.Model.Name
	}

	outputPath := envDefault(flags.output, envOutput)
	if outputPath == "" && projectCfg != nil && projectCfg.Output.Path != "" {
		outputPath = filepath.Join(projectPath, projectCfg.Output.Path)
	}
	if outputPath == "" {
		outputPath = filepath.Join(projectPath, "generated", viewgen.DefaultArtifactName(language))
	}

	// VIEWGEN_TIMEOUT and the viewgen.yaml timeout apply only when
	// --timeout wasn't explicitly set, environment first.
	timeout := flags.timeout
	if !cmd.Flags().Changed("timeout") {
		if token := os.Getenv(envTimeout); token != "" {
			parsed, parseErr := time.ParseDuration(token)
			if parseErr != nil {
				return viewgen.GenerationConfig{}, fmt.Errorf("invalid %s: %v: %w", envTimeout, parseErr, viewgen.ErrInvalidConfig)
			}
			timeout = parsed
		} else if projectCfg != nil && projectCfg.Timeout != "" {
			parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
			if parseErr != nil {
				return viewgen.GenerationConfig{}, fmt.Errorf("invalid timeout in %s: %v: %w", config.ConfigFileName, parseErr, viewgen.ErrInvalidConfig)
			}
			timeout = parsed
		}
	}

	cfg := viewgen.GenerationConfig{
		ModelPath:     modelPath,
		ModelName:     modelName,
		OutputPath:    outputPath,
		Language:      language,
		SectionPolicy: policy,
		Timeout:       timeout,
		Verbose:       verbose,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Model Path: %s\n", cfg.ModelPath)
		if cfg.ModelName != "" {
			fmt.Fprintf(os.Stderr, "  Model Name: %s\n", cfg.ModelName)
		}
		fmt.Fprintf(os.Stderr, "  Output: %s\n", cfg.OutputPath)
		fmt.Fprintf(os.Stderr, "  Language: %s\n", cfg.Language)
		fmt.Fprintf(os.Stderr, "  Section Policy: %s\n", cfg.SectionPolicy)
		fmt.Fprintf(os.Stderr, "  Timeout: %s\n", cfg.Timeout)
	}

	return cfg, cfg.Validate()
}

// envDefault returns the flag value, falling back to the named environment
// variable when the flag was left empty.
func envDefault(flagValue, envVar string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envVar)
}

// newRegenerator assembles the regeneration service with the default
// production collaborators.
func newRegenerator(verbose bool) *services.RegenerationService {
	ns := edm.MustNamespaces()
	logger := logging.NewConsoleLogger(verbose)

	return services.NewRegenerationService(
		provider.NewFileProvider(ns, logger),
		loader.New(ns),
		generator.New(),
		artifact.NewFileStore(),
		fingerprint.New(),
		ns,
		logger,
	)
}
