package views

import (
	"strconv"

	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/model"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

// LeadDetail shows the expanded record for one lead.
type LeadDetail struct {
	*tview.TextView
	theme  *ui.Theme
	leadID int64
}

// NewLeadDetail creates the detail view.
func NewLeadDetail(theme *ui.Theme) *LeadDetail {
	tv := tview.NewTextView().
		SetScrollable(true).
		SetWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)

	return &LeadDetail{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (ld *LeadDetail) Name() string { return "Details" }

// Init implements Component.
func (ld *LeadDetail) Init() {}

// Start implements Component.
func (ld *LeadDetail) Start() {}

// Stop implements Component.
func (ld *LeadDetail) Stop() {}

// Hints implements Component.
func (ld *LeadDetail) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "a", Description: "Aktivieren"},
		{Key: "r", Description: "Recherche"},
		{Key: "b", Description: "Anschreiben"},
		{Key: "e", Description: "Anschreiben bearbeiten"},
		{Key: "Esc", Description: "Zurück"},
	}
}

// Show renders one lead and remembers its id for follow-up actions.
func (ld *LeadDetail) Show(l *lead.Lead) {
	ld.leadID = l.ID
	ld.SetTitle(" Lead #" + strconv.FormatInt(l.ID, 10) + " ")
	ld.SetText(tview.Escape(sanitizeForTerminal(model.LeadDetail(l))))
	ld.ScrollToBeginning()
}

// LeadID returns the id of the displayed lead, or 0.
func (ld *LeadDetail) LeadID() int64 {
	return ld.leadID
}
