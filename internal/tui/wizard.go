package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TemplateInfo holds template metadata for display.
type TemplateInfo struct {
	Name        string
	Description string
}

// InitResult holds the result of the init wizard.
type InitResult struct {
	Cancelled bool
	TargetDir string
	Template  string
}

type wizardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultWizardKeys() wizardKeys {
	return wizardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Select: key.NewBinding(key.WithKeys("enter")),
		Back:   key.NewBinding(key.WithKeys("esc")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q")),
	}
}

type initStep int

const (
	initStepTemplate initStep = iota
	initStepTargetDir
	initStepComplete
)

// InitWizard guides users through project initialization.
type InitWizard struct {
	step initStep

	templates   []TemplateInfo
	templateIdx int

	targetInput textinput.Model

	result InitResult

	width  int
	height int

	keys wizardKeys
}

// NewInitWizard creates a new init wizard.
func NewInitWizard(targetDir string, templates []TemplateInfo) InitWizard {
	input := textinput.New()
	input.Placeholder = "."
	input.SetValue(targetDir)
	input.CharLimit = 256
	input.Width = 40

	return InitWizard{
		step:        initStepTemplate,
		templates:   templates,
		targetInput: input,
		width:       80,
		height:      24,
		keys:        defaultWizardKeys(),
	}
}

// Init implements tea.Model.
func (w InitWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w InitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		// On the directory step the text input owns most keys; only quit and
		// navigation chords are intercepted.
		if w.step != initStepTargetDir && key.Matches(msg, w.keys.Quit) {
			w.result.Cancelled = true
			return w, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case initStepTemplate:
			return w.updateTemplate(msg)
		case initStepTargetDir:
			return w.updateTargetDir(msg)
		case initStepComplete:
			return w.updateComplete(msg)
		}
	}

	return w, nil
}

func (w InitWizard) updateTemplate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.templateIdx > 0 {
			w.templateIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.templateIdx < len(w.templates)-1 {
			w.templateIdx++
		}
	case key.Matches(msg, w.keys.Select):
		w.result.Template = w.templates[w.templateIdx].Name
		w.step = initStepTargetDir
		return w, w.targetInput.Focus()
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

func (w InitWizard) updateTargetDir(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		dir := strings.TrimSpace(w.targetInput.Value())
		if dir == "" {
			dir = "."
		}
		w.result.TargetDir = dir
		w.step = initStepComplete
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.step = initStepTemplate
		return w, nil
	}

	var cmd tea.Cmd
	w.targetInput, cmd = w.targetInput.Update(msg)
	return w, cmd
}

func (w InitWizard) updateComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = initStepTargetDir
	}
	return w, nil
}

// View implements tea.Model.
func (w InitWizard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("viewgen init - Project Setup"))
	b.WriteString("\n")

	switch w.step {
	case initStepTemplate:
		b.WriteString(w.viewTemplate())
	case initStepTargetDir:
		b.WriteString(w.viewTargetDir())
	case initStepComplete:
		b.WriteString(w.viewComplete())
	}

	return b.String()
}

func (w InitWizard) viewTemplate() string {
	var b strings.Builder

	b.WriteString(SubtitleStyle.Render("Select a template"))
	b.WriteString("\n\n")

	for i, t := range w.templates {
		cursor := "  "
		style := UnselectedStyle
		symbol := SymbolUnselected

		if i == w.templateIdx {
			cursor = ""
			style = SelectedStyle
			symbol = SymbolSelected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + t.Name))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render(t.Description))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("\n↑/↓ navigate • enter select • q quit"))

	return b.String()
}

func (w InitWizard) viewTargetDir() string {
	var b strings.Builder

	b.WriteString(SubtitleStyle.Render("Target directory"))
	b.WriteString("\n\n")
	b.WriteString(w.targetInput.View())
	b.WriteString(HelpStyle.Render("\nenter continue • esc back"))

	return b.String()
}

func (w InitWizard) viewComplete() string {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render(SymbolCheck + " Ready to create project"))
	b.WriteString("\n\n")

	absPath, _ := filepath.Abs(w.result.TargetDir)
	b.WriteString(fmt.Sprintf("Directory: %s\n", absPath))
	b.WriteString(fmt.Sprintf("Template:  %s\n", w.result.Template))

	b.WriteString(HelpStyle.Render("\nenter create project • esc back"))

	return b.String()
}

// Result returns the wizard result.
func (w InitWizard) Result() InitResult {
	return w.result
}

// RunInitWizard executes the init wizard.
func RunInitWizard(targetDir string, templates []TemplateInfo) (InitResult, error) {
	if len(templates) == 0 {
		return InitResult{Cancelled: true}, fmt.Errorf("no templates available")
	}

	wizard := NewInitWizard(targetDir, templates)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return InitResult{Cancelled: true}, err
	}

	return model.(InitWizard).Result(), nil
}

// ShowInitComplete displays the completion message after project creation.
func ShowInitComplete(targetDir, template string) {
	absPath, _ := filepath.Abs(targetDir)

	fmt.Println()
	fmt.Println(SymbolCheck + " Project created successfully!")
	fmt.Println()
	fmt.Printf("Directory: %s\n", absPath)
	fmt.Printf("Template:  %s\n", template)
	fmt.Println()
	fmt.Println("Next steps:")
	if targetDir != "." {
		fmt.Printf("  cd %s\n", targetDir)
	}
	fmt.Println("  viewgen generate .")
	fmt.Println()
}
