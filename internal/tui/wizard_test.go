package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testTemplates() []TemplateInfo {
	return []TemplateInfo{
		{Name: "csharp", Description: "C# mapping views"},
		{Name: "vb", Description: "Visual Basic mapping views"},
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestInitWizard_TemplateNavigation(t *testing.T) {
	w := NewInitWizard(".", testTemplates())

	model, _ := w.Update(keyMsg(tea.KeyDown))
	w = model.(InitWizard)
	if w.templateIdx != 1 {
		t.Errorf("templateIdx = %d after down, want 1", w.templateIdx)
	}

	// Down at the bottom of the list stays put.
	model, _ = w.Update(keyMsg(tea.KeyDown))
	w = model.(InitWizard)
	if w.templateIdx != 1 {
		t.Errorf("templateIdx = %d, want 1", w.templateIdx)
	}

	model, _ = w.Update(keyMsg(tea.KeyUp))
	w = model.(InitWizard)
	if w.templateIdx != 0 {
		t.Errorf("templateIdx = %d after up, want 0", w.templateIdx)
	}
}

func TestInitWizard_FullFlow(t *testing.T) {
	w := NewInitWizard("myproject", testTemplates())

	model, _ := w.Update(keyMsg(tea.KeyDown))
	model, _ = model.Update(keyMsg(tea.KeyEnter))
	w = model.(InitWizard)
	if w.step != initStepTargetDir {
		t.Fatalf("step = %d after template select, want target-dir step", w.step)
	}

	model, _ = w.Update(keyMsg(tea.KeyEnter))
	w = model.(InitWizard)
	if w.step != initStepComplete {
		t.Fatalf("step = %d after directory confirm, want complete step", w.step)
	}

	model, cmd := w.Update(keyMsg(tea.KeyEnter))
	w = model.(InitWizard)
	if cmd == nil {
		t.Fatal("expected tea.Quit command on final confirm")
	}

	result := w.Result()
	if result.Cancelled {
		t.Error("Cancelled = true, want false")
	}
	if result.Template != "vb" {
		t.Errorf("Template = %q, want vb", result.Template)
	}
	if result.TargetDir != "myproject" {
		t.Errorf("TargetDir = %q, want myproject", result.TargetDir)
	}
}

func TestInitWizard_QuitCancels(t *testing.T) {
	w := NewInitWizard(".", testTemplates())

	model, cmd := w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	w = model.(InitWizard)
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if !w.Result().Cancelled {
		t.Error("Cancelled = false after quit, want true")
	}
}

func TestInitWizard_EscFromDirectoryGoesBack(t *testing.T) {
	w := NewInitWizard(".", testTemplates())

	model, _ := w.Update(keyMsg(tea.KeyEnter))
	model, _ = model.Update(keyMsg(tea.KeyEsc))
	w = model.(InitWizard)
	if w.step != initStepTemplate {
		t.Errorf("step = %d after esc, want template step", w.step)
	}
}

func TestInitWizard_EmptyDirectoryDefaultsToDot(t *testing.T) {
	w := NewInitWizard("", testTemplates())

	model, _ := w.Update(keyMsg(tea.KeyEnter))
	model, _ = model.Update(keyMsg(tea.KeyEnter))
	w = model.(InitWizard)

	if w.Result().TargetDir != "." {
		t.Errorf("TargetDir = %q, want .", w.Result().TargetDir)
	}
}

func TestInitWizard_ViewShowsTemplates(t *testing.T) {
	w := NewInitWizard(".", testTemplates())

	view := w.View()
	if !strings.Contains(view, "csharp") || !strings.Contains(view, "vb") {
		t.Errorf("view missing template names:\n%s", view)
	}
}
