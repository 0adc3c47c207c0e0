package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vkm-labs/viewgen/internal/logging"
	"github.com/vkm-labs/viewgen/internal/scaffold"
	"github.com/vkm-labs/viewgen/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Initialize a new viewgen project",
	Long: `Initialize a viewgen project into the specified directory.

The init command creates:
- viewgen.yaml project configuration
- models/ with a sample composite model document
- README with usage instructions

Target directory must be empty or non-existent.

When run at an interactive terminal without --template, a wizard walks
through template and directory selection.

Examples:
  viewgen init .                     # Initialize in current directory
  viewgen init ./myproject           # Initialize in ./myproject
  viewgen init ./myproject -t vb     # Visual Basic project, no wizard

Available templates:
  csharp - C# mapping views (default)
  vb     - Visual Basic mapping views`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initTemplate string
	initList     bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "", "Template to use (csharp, vb)")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")
}

func templateInfos() []tui.TemplateInfo {
	return []tui.TemplateInfo{
		{Name: "csharp", Description: "C# mapping views"},
		{Name: "vb", Description: "Visual Basic mapping views"},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	if initList {
		templates, err := scaffold.ListTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		for _, t := range templates {
			fmt.Println(t)
		}
		return nil
	}

	targetPath := "."
	if len(args) == 1 {
		targetPath = args[0]
	}
	template := initTemplate

	// No explicit template and a human at the terminal: run the wizard.
	if template == "" && tui.IsInteractive() {
		result, err := tui.RunInitWizard(targetPath, templateInfos())
		if err != nil {
			return fmt.Errorf("init wizard failed: %w", err)
		}
		if result.Cancelled {
			fmt.Fprintln(os.Stderr, "Init cancelled.")
			return nil
		}
		template = result.Template
		targetPath = result.TargetDir
	}
	if template == "" {
		template = "csharp"
	}

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	valid := false
	for _, t := range templates {
		if t == template {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid template '%s'. Available templates: %v", template, templates)
	}

	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		if cwd, err := os.Getwd(); err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "project"
		}
	}

	verbose := getVerboseFlag(cmd)
	scaffolder := scaffold.NewScaffolder(logging.NewConsoleLogger(verbose))
	if err := scaffolder.CreateProject(projectName, template, targetPath); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	tui.ShowInitComplete(targetPath, template)
	return nil
}
