package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/model"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

// LeadList is the main board table.
type LeadList struct {
	*tview.Table
	theme *ui.Theme
	board *model.Board
	leads []lead.Lead
}

// NewLeadList creates the board table.
func NewLeadList(theme *ui.Theme, board *model.Board) *LeadList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetTitle(" Leads ")
	table.SetTitleColor(theme.TitleColor)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	return &LeadList{
		Table: table,
		theme: theme,
		board: board,
	}
}

// Name implements Component.
func (ll *LeadList) Name() string { return "Leads" }

// Init implements Component.
func (ll *LeadList) Init() {}

// Start implements Component.
func (ll *LeadList) Start() {}

// Stop implements Component.
func (ll *LeadList) Stop() {}

// Hints implements Component.
func (ll *LeadList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Details"},
		{Key: "a", Description: "Aktivieren"},
		{Key: "r", Description: "Recherche"},
		{Key: "b", Description: "Anschreiben"},
		{Key: "Space", Description: "Markieren"},
		{Key: "d", Description: "Löschen"},
		{Key: "i", Description: "Jobsuche"},
		{Key: "/", Description: "Filter"},
	}
}

// Update refreshes the table from the board snapshot.
func (ll *LeadList) Update() {
	ll.leads = ll.board.Leads()
	ll.Clear()

	for col, h := range model.LeadColumns {
		ll.SetCell(0, col, tview.NewTableCell(" "+h).
			SetSelectable(false).
			SetTextColor(ll.theme.TableHeaderFg).
			SetBackgroundColor(ll.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}

	for i := range ll.leads {
		l := &ll.leads[i]
		row := i + 1
		cells := ll.board.LeadRow(l)
		for col, text := range cells {
			cell := tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(text))).
				SetTextColor(ll.theme.FgColor)
			switch col {
			case 0:
				cell.SetTextColor(ll.theme.SelectionColor)
			case 2:
				cell.SetExpansion(2)
			case 5:
				cell.SetTextColor(ll.theme.StatusColor(string(l.Status)))
			}
			ll.SetCell(row, col, cell)
		}
	}
}

// Selected returns the lead under the cursor, or nil.
func (ll *LeadList) Selected() *lead.Lead {
	row, _ := ll.GetSelection()
	idx := row - 1 // header row
	if idx >= 0 && idx < len(ll.leads) {
		l := ll.leads[idx]
		return &l
	}
	return nil
}
