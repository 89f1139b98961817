package views

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/client"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/model"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

// ImportView holds the job search form and the result table of one
// import session.
type ImportView struct {
	*tview.Flex
	theme    *ui.Theme
	board    *model.Board
	form     *tview.Form
	results  *tview.Table
	postings []lead.Posting
	onSearch func(opts client.SearchOptions)
}

// NewImportView creates the search and import view.
func NewImportView(theme *ui.Theme, board *model.Board) *ImportView {
	form := tview.NewForm().
		SetHorizontal(true)
	form.SetBorder(true)
	form.SetTitle(" Jobsuche ")
	form.SetTitleColor(theme.TitleColor)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.MenuKeyColor)
	form.SetButtonBackgroundColor(theme.BorderColor)

	results := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	results.SetBorder(true)
	results.SetTitle(" Treffer ")
	results.SetTitleColor(theme.TitleColor)
	results.SetBorderColor(theme.BorderColor)
	results.SetBackgroundColor(theme.BgColor)
	results.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 5, 0, true).
		AddItem(results, 0, 1, false)

	iv := &ImportView{
		Flex:    flex,
		theme:   theme,
		board:   board,
		form:    form,
		results: results,
	}
	iv.buildForm()
	return iv
}

func (iv *ImportView) buildForm() {
	iv.form.
		AddInputField("Keywords", "", 28, nil, nil).
		AddInputField("Ort", "", 16, nil, nil).
		AddInputField("Radius", "30", 5, acceptDigits, nil).
		AddInputField("Seiten", "1", 3, acceptDigits, nil).
		AddInputField("Alter (Tage)", "0", 4, acceptDigits, nil).
		AddInputField("Max. Treffer", "10", 4, acceptDigits, nil).
		AddInputField("Titel-Filter", "", 16, nil, nil).
		AddButton("Suchen", iv.submit)
}

func acceptDigits(textToCheck string, _ rune) bool {
	for _, r := range textToCheck {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (iv *ImportView) submit() {
	if iv.onSearch == nil {
		return
	}
	opts := client.SearchOptions{
		Keywords:    iv.fieldText(0),
		Location:    iv.fieldText(1),
		TitleFilter: iv.fieldText(6),
	}
	if v, err := strconv.Atoi(iv.fieldText(2)); err == nil {
		opts.Radius = v
	}
	if v, err := strconv.Atoi(iv.fieldText(3)); err == nil {
		opts.MaxPages = v
	}
	if v, err := strconv.Atoi(iv.fieldText(4)); err == nil {
		opts.AgeDays = v
	}
	if v, err := strconv.Atoi(iv.fieldText(5)); err == nil {
		opts.MaxResults = v
	}
	iv.onSearch(opts)
}

func (iv *ImportView) fieldText(index int) string {
	return iv.form.GetFormItem(index).(*tview.InputField).GetText()
}

// Name implements Component.
func (iv *ImportView) Name() string { return "Jobsuche" }

// Init implements Component.
func (iv *ImportView) Init() {}

// Start implements Component.
func (iv *ImportView) Start() {}

// Stop implements Component.
func (iv *ImportView) Stop() {}

// Hints implements Component.
func (iv *ImportView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Suchen"},
		{Key: "Space", Description: "Markieren"},
		{Key: "m", Description: "Importieren"},
		{Key: "Tab", Description: "Formular/Treffer"},
		{Key: "Esc", Description: "Zurück"},
	}
}

// SetOnSearch sets the callback fired when the form is submitted.
func (iv *ImportView) SetOnSearch(fn func(opts client.SearchOptions)) {
	iv.onSearch = fn
}

// Update refreshes the result table from the board's import session.
func (iv *ImportView) Update() {
	iv.postings = iv.board.Results()
	iv.results.Clear()

	for col, h := range model.PostingColumns {
		iv.results.SetCell(0, col, tview.NewTableCell(" "+h).
			SetSelectable(false).
			SetTextColor(iv.theme.TableHeaderFg).
			SetBackgroundColor(iv.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}

	for i := range iv.postings {
		p := &iv.postings[i]
		row := i + 1
		for col, text := range iv.board.PostingRow(i, p) {
			cell := tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(text))).
				SetTextColor(iv.theme.FgColor)
			switch col {
			case 0:
				cell.SetTextColor(iv.theme.SelectionColor)
			case 1:
				cell.SetExpansion(2)
			}
			iv.results.SetCell(row, col, cell)
		}
	}
}

// SelectedIndex returns the result index under the cursor, or -1.
func (iv *ImportView) SelectedIndex() int {
	row, _ := iv.results.GetSelection()
	idx := row - 1
	if idx >= 0 && idx < len(iv.postings) {
		return idx
	}
	return -1
}

// Form returns the search form for focus handling.
func (iv *ImportView) Form() *tview.Form {
	return iv.form
}

// Results returns the result table for focus handling.
func (iv *ImportView) Results() *tview.Table {
	return iv.results
}
