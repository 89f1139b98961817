package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

// BoardData holds profile and pipeline counters for the header panel.
type BoardData struct {
	Profile string
	Daemon  string
	Stats   *lead.Stats
}

// BoardInfo displays profile metadata and pipeline counters in the header.
type BoardInfo struct {
	*tview.TextView
	theme *Theme
}

// NewBoardInfo creates a new board info panel.
func NewBoardInfo(theme *Theme) *BoardInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &BoardInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the board info.
func (bi *BoardInfo) Update(data *BoardData) {
	bi.Clear()
	if data == nil {
		return
	}

	fgColor := colorName(bi.theme.FgColor)
	counterColor := colorName(bi.theme.CounterColor)

	line := func(label, value string) string {
		return fmt.Sprintf("[%s::b]%-10s[-:-:-] [%s]%s[-]\n", fgColor, label+":", counterColor, value)
	}

	text := line("Profil", data.Profile) + line("Daemon", orEmpty(data.Daemon))
	if s := data.Stats; s != nil {
		text += line("Leads", fmt.Sprintf("%d", s.Total))
		text += line("Neu", fmt.Sprintf("%d", s.New))
		text += line("Recherche", fmt.Sprintf("%d", s.Researched))
		text += line("Antworten", fmt.Sprintf("%d", s.Replied))
	}

	_, _ = fmt.Fprint(bi, text)
}

func orEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
