package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

// HelpView displays the key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Hilfe ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Hilfe" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Zurück"},
	}
}

func (hv *HelpView) render() {
	kc := fmt.Sprintf("#%06x", hv.theme.MenuKeyColor.Hex())

	help := fmt.Sprintf(`
  [::b]Global[-:-:-]

  [%s]:[-:-:-]      Befehlsmodus        [%s]Esc[-:-:-]    Abbrechen / Zurück
  [%s]/[-:-:-]      Filtermodus         [%s]?[-:-:-]      Hilfe
  [%s]q[-:-:-]      Beenden / Zurück    [%s]Ctrl-C[-:-:-] Sofort beenden

  [::b]Lead-Board[-:-:-]

  [%s]Enter[-:-:-]  Details öffnen      [%s]Space[-:-:-]  Lead markieren
  [%s]a[-:-:-]      Lead aktivieren     [%s]r[-:-:-]      Firma recherchieren
  [%s]b[-:-:-]      Anschreiben         [%s]e[-:-:-]      Anschreiben bearbeiten
  [%s]d[-:-:-]      Löschen             [%s]D[-:-:-]      Markierte löschen
  [%s]A[-:-:-]      Alle markieren
  [%s]i[-:-:-]      Jobsuche öffnen     [%s]0[-:-:-]      Filter aufheben
  [%s]1-6[-:-:-]    Nach Status filtern

  [::b]Jobsuche[-:-:-]

  [%s]Enter[-:-:-]  Suche starten       [%s]Space[-:-:-]  Treffer markieren
  [%s]m[-:-:-]      Markierte importieren

  [::b]Befehle (: Modus)[-:-:-]

  [%s]:status <wert>[-:-:-]   Status des Leads setzen
  [%s]:export[-:-:-]          Leads als CSV exportieren
  [%s]:seed[-:-:-]            Demo-Leads anlegen
  [%s]:search <worte>[-:-:-]  Jobsuche mit Keywords starten
  [%s]:help[-:-:-] / [%s]:h[-:-:-]      Diese Hilfe
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]      Beenden
`,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc, kc, kc, kc, kc,
		kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}
