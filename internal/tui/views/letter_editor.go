package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

// LetterEditor edits the cover letter draft of one lead.
type LetterEditor struct {
	*tview.TextArea
	theme  *ui.Theme
	leadID int64
	onSave func(id int64, text string)
}

// NewLetterEditor creates the letter editor.
func NewLetterEditor(theme *ui.Theme) *LetterEditor {
	ta := tview.NewTextArea().
		SetWrap(true)
	ta.SetBorder(true)
	ta.SetBorderColor(theme.BorderColor)
	ta.SetBackgroundColor(theme.BgColor)
	ta.SetTitleColor(theme.TitleColor)

	return &LetterEditor{
		TextArea: ta,
		theme:    theme,
	}
}

// Name implements Component.
func (le *LetterEditor) Name() string { return "Anschreiben" }

// Init implements Component.
func (le *LetterEditor) Init() {}

// Start implements Component.
func (le *LetterEditor) Start() {}

// Stop implements Component.
func (le *LetterEditor) Stop() {}

// Hints implements Component.
func (le *LetterEditor) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Ctrl-S", Description: "Speichern"},
		{Key: "Esc", Description: "Verwerfen"},
	}
}

// SetOnSave sets the callback fired on save.
func (le *LetterEditor) SetOnSave(fn func(id int64, text string)) {
	le.onSave = fn
}

// Load puts a lead's letter draft into the editor.
func (le *LetterEditor) Load(l *lead.Lead) {
	le.leadID = l.ID
	le.SetTitle(fmt.Sprintf(" Anschreiben · Lead #%d ", l.ID))
	le.SetText(l.Letter, false)
}

// Save fires the save callback with the current text.
func (le *LetterEditor) Save() {
	if le.onSave != nil && le.leadID != 0 {
		le.onSave(le.leadID, le.GetText())
	}
}
