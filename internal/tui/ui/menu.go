package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// menuColumns is how many hints are stacked per column in the header menu.
const menuColumns = 6

// Menu displays keyboard shortcut hints in header columns.
type Menu struct {
	*tview.Table
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	t := tview.NewTable()
	t.SetBackgroundColor(theme.BgColor)
	t.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		Table: t,
		theme: theme,
	}
}

// Update renders menu hints, menuColumns per column, left to right.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)
	fgColor := colorName(m.theme.FgColor)

	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		row := i % menuColumns
		col := i / menuColumns
		cell := tview.NewTableCell(fmt.Sprintf("[%s::b]<%s>[-:-:-] [%s]%s[-] ", kc, h.Key, fgColor, h.Description))
		m.SetCell(row, col, cell)
	}
}
