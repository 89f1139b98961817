package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	SelectionColor    tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color

	// One accent per workflow stage, used for status cells.
	StatusColors map[string]tcell.Color
}

// DefaultTheme returns a dark theme with green/amber sales-pipeline accents.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorLightGray,
		BorderColor:       tcell.ColorSeaGreen,
		BorderFocusColor:  tcell.ColorSpringGreen,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorMediumSpringGreen,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorGold,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorSeaGreen,
		MenuKeyColor:      tcell.ColorMediumSpringGreen,
		NumericKeyColor:   tcell.ColorOrchid,
		TitleColor:        tcell.ColorGold,
		CounterColor:      tcell.ColorWheat,
		SelectionColor:    tcell.ColorGold,
		FlashInfoColor:    tcell.ColorPaleGreen,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorSeaGreen,
		StatusColors: map[string]tcell.Color{
			"neu":                  tcell.ColorLightGray,
			"aktiviert":            tcell.ColorDeepSkyBlue,
			"recherchiert":         tcell.ColorMediumSpringGreen,
			"anschreiben_erstellt": tcell.ColorGold,
			"angeschrieben":        tcell.ColorOrange,
			"antwort_erhalten":     tcell.ColorSpringGreen,
		},
	}
}

// StatusColor returns the accent for a workflow status wire value.
func (t *Theme) StatusColor(status string) tcell.Color {
	if c, ok := t.StatusColors[status]; ok {
		return c
	}
	return t.FgColor
}
