package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/model"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

// StatusBar displays the profile, pipeline counters, clock and flash line.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	profile string
	stats   *lead.Stats
	flash   string
	level   model.FlashLevel
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetStats updates the pipeline counters.
func (sb *StatusBar) SetStats(stats *lead.Stats) {
	sb.stats = stats
	sb.render()
}

// SetFlash sets the transient message and its level.
func (sb *StatusBar) SetFlash(msg string, level model.FlashLevel) {
	sb.flash = msg
	sb.level = level
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	counts := ""
	if s := sb.stats; s != nil {
		counts = fmt.Sprintf("%d Leads · %d neu · %d Antworten", s.Total, s.New, s.Replied)
	}

	clock := time.Now().Format("15:04")

	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s | %s", sb.profile, counts, clock)
	if sb.flash != "" {
		line += fmt.Sprintf(" | [%s]%s[-]", sb.flashColor(), tview.Escape(sb.flash))
	}

	_, _ = fmt.Fprint(sb, line)
}

func (sb *StatusBar) flashColor() string {
	var c string
	switch sb.level {
	case model.FlashWarn:
		c = fmt.Sprintf("#%06x", sb.theme.FlashWarnColor.Hex())
	case model.FlashErr:
		c = fmt.Sprintf("#%06x", sb.theme.FlashErrColor.Hex())
	default:
		c = fmt.Sprintf("#%06x", sb.theme.FlashInfoColor.Hex())
	}
	return c
}
