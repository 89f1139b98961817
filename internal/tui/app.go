// Package tui implements the terminal lead board.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/client"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/keys"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/model"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/views"
)

// Page names for the stack.
const (
	pageLeads  = "leads"
	pageDetail = "details"
	pageLetter = "anschreiben"
	pageImport = "jobsuche"
	pageHelp   = "hilfe"
)

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	pages    *ui.Pages
	theme    *ui.Theme
	board    *model.Board
	api      *client.Client
	registry *keys.Registry

	logo      *ui.Logo
	boardInfo *ui.BoardInfo
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	prompt    *ui.Prompt

	leadList   *views.LeadList
	leadDetail *views.LeadDetail
	letter     *views.LetterEditor
	importV    *views.ImportView
	helpV      *views.HelpView
	statusBar  *views.StatusBar

	root       *tview.Flex
	profile    string
	daemonAddr string
	log        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(api *client.Client, profile, daemonAddr string, log *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()
	board := model.NewBoard(api)

	a := &App{
		app:        tview.NewApplication(),
		pages:      ui.NewPages(),
		theme:      theme,
		board:      board,
		api:        api,
		registry:   keys.NewRegistry(),
		logo:       ui.NewLogo(theme),
		boardInfo:  ui.NewBoardInfo(theme),
		menu:       ui.NewMenu(theme),
		crumbs:     ui.NewCrumbs(theme),
		prompt:     ui.NewPrompt(theme),
		leadDetail: views.NewLeadDetail(theme),
		letter:     views.NewLetterEditor(theme),
		helpV:      views.NewHelpView(theme),
		statusBar:  views.NewStatusBar(theme),
		profile:    profile,
		daemonAddr: daemonAddr,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
	a.leadList = views.NewLeadList(theme, board)
	a.importV = views.NewImportView(theme, board)

	a.statusBar.SetProfile(profile)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "Zurück/Beenden", Visible: true,
		Handler: func() { a.back() },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "Hilfe", Visible: true,
		Handler: func() { a.pages.Push(pageHelp) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Description: "Befehl", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})

	a.registry.AddView(pageLeads, &keys.Action{
		Key:         tcell.KeyEnter,
		Description: "Details", Visible: true,
		Handler: func() { a.openDetail() },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "Aktivieren", Visible: true,
		Handler: func() { a.withSelected(a.activate) },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "Recherche", Visible: true,
		Handler: func() { a.withSelected(a.research) },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'b', Key: tcell.KeyRune,
		Description: "Anschreiben", Visible: true,
		Handler: func() { a.withSelected(a.generateLetter) },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'e', Key: tcell.KeyRune,
		Description: "Bearbeiten", Visible: false,
		Handler: func() { a.withSelected(a.editLetter) },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: ' ', Key: tcell.KeyRune,
		Description: "Markieren", Visible: true,
		Handler: func() { a.toggleSelect() },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'A', Key: tcell.KeyRune,
		Description: "Alle markieren", Visible: false,
		Handler: func() {
			a.board.SelectAll()
			a.leadList.Update()
		},
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'd', Key: tcell.KeyRune,
		Description: "Löschen", Visible: true,
		Handler: func() { a.confirmDeleteOne() },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'D', Key: tcell.KeyRune,
		Description: "Markierte löschen", Visible: true,
		Handler: func() { a.confirmDeleteSelected() },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: 'i', Key: tcell.KeyRune,
		Description: "Jobsuche", Visible: true,
		Handler: func() { a.openImport() },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Description: "Filter", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageLeads, &keys.Action{
		Rune: '0', Key: tcell.KeyRune,
		Description: "Alle", Visible: true, Numeric: true,
		Handler: func() { a.setStatusFilter("") },
	})
	for i, status := range lead.Statuses() {
		status := status
		a.registry.AddView(pageLeads, &keys.Action{
			Rune: rune('1' + i), Key: tcell.KeyRune,
			Description: status.Label(), Visible: i < 3, Numeric: true,
			Handler: func() { a.setStatusFilter(status) },
		})
	}

	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "Aktivieren", Visible: true,
		Handler: func() { a.activate(a.leadDetail.LeadID()) },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "Recherche", Visible: true,
		Handler: func() { a.research(a.leadDetail.LeadID()) },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'b', Key: tcell.KeyRune,
		Description: "Anschreiben", Visible: true,
		Handler: func() { a.generateLetter(a.leadDetail.LeadID()) },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'e', Key: tcell.KeyRune,
		Description: "Bearbeiten", Visible: true,
		Handler: func() { a.editLetter(a.leadDetail.LeadID()) },
	})

	a.registry.AddView(pageImport, &keys.Action{
		Rune: ' ', Key: tcell.KeyRune,
		Description: "Markieren", Visible: true,
		Handler: func() {
			if idx := a.importV.SelectedIndex(); idx >= 0 {
				a.board.TogglePick(idx)
				a.importV.Update()
			}
		},
	})
	a.registry.AddView(pageImport, &keys.Action{
		Rune: 'm', Key: tcell.KeyRune,
		Description: "Importieren", Visible: true,
		Handler: func() { a.importSelected() },
	})
}

func (a *App) setupCallbacks() {
	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.updateMenu()
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			status, _ := a.board.Filters()
			a.board.SetFilters(status, text)
			a.reload()
		}
	})
	a.prompt.SetOnCancel(func() { a.hidePrompt() })

	a.importV.SetOnSearch(func(opts client.SearchOptions) {
		go func() {
			if err := a.board.Search(a.ctx, opts); err != nil {
				a.board.Flash.Err(err.Error())
			}
			a.app.QueueUpdateDraw(func() {
				a.importV.Update()
				a.refreshChrome()
				a.app.SetFocus(a.importV.Results())
			})
		}()
	})

	a.letter.SetOnSave(func(id int64, text string) {
		go func() {
			if err := a.board.SaveLetter(a.ctx, id, text); err != nil {
				a.board.Flash.Err(err.Error())
			}
			a.app.QueueUpdateDraw(func() {
				a.pages.Pop()
				a.redraw()
			})
		}()
	})
}

func (a *App) setupLayout() {
	header := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.boardInfo, 0, 1, false).
		AddItem(a.menu, 0, 2, false).
		AddItem(a.logo, 22, 0, false)

	a.pages.AddPage(pageLeads, a.leadList, true, false)
	a.pages.AddPage(pageDetail, a.leadDetail, true, false)
	a.pages.AddPage(pageLetter, a.letter, true, false)
	a.pages.AddPage(pageImport, a.importV, true, false)
	a.pages.AddPage(pageHelp, a.helpV, true, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.Reset(pageLeads)
	a.app.SetRoot(a.root, true)
	a.app.SetFocus(a.leadList)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		current := a.pages.Current()

		// Text inputs swallow everything except Escape and the letter
		// editor's save chord.
		switch a.app.GetFocus().(type) {
		case *tview.InputField:
			return event
		case *tview.TextArea:
			if event.Key() == tcell.KeyCtrlS {
				a.letter.Save()
				return nil
			}
			if event.Key() == tcell.KeyEscape {
				a.pages.Pop()
				a.focusCurrent()
				return nil
			}
			return event
		}

		if event.Key() == tcell.KeyEscape {
			a.back()
			return nil
		}

		// Tab moves between the import form and its result table.
		if current == pageImport && event.Key() == tcell.KeyTab {
			if a.app.GetFocus() == a.importV.Results() {
				a.app.SetFocus(a.importV.Form())
			} else {
				a.app.SetFocus(a.importV.Results())
			}
			return nil
		}

		if a.registry.HandleEvent(current, event) {
			return nil
		}
		return event
	})
}

func (a *App) back() {
	if a.pages.Depth() <= 1 {
		a.Stop()
		return
	}
	if a.pages.Pop() == pageImport {
		a.board.ResetSession()
	}
	a.focusCurrent()
	a.redraw()
}

func (a *App) focusCurrent() {
	switch a.pages.Current() {
	case pageLeads:
		a.app.SetFocus(a.leadList)
	case pageDetail:
		a.app.SetFocus(a.leadDetail)
	case pageLetter:
		a.app.SetFocus(a.letter)
	case pageImport:
		a.app.SetFocus(a.importV.Form())
	case pageHelp:
		a.app.SetFocus(a.helpV)
	}
}

func (a *App) updateMenu() {
	var hints []ui.MenuHint
	for _, action := range a.registry.Hints(a.pages.Current()) {
		switch {
		case action.Key == tcell.KeyEnter:
			hints = append(hints, ui.MenuHint{Key: "Enter", Description: action.Description})
		case action.Rune == ' ':
			hints = append(hints, ui.MenuHint{Key: "Space", Description: action.Description})
		case action.Key == tcell.KeyRune:
			hints = append(hints, ui.MenuHint{Key: string(action.Rune), Description: action.Description, Numeric: action.Numeric})
		}
	}
	a.menu.Update(hints)
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.root.RemoveItem(a.statusBar)
	a.root.AddItem(a.prompt, 3, 0, true)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.RemoveItem(a.prompt)
	a.root.AddItem(a.statusBar, 1, 0, false)
	a.focusCurrent()
}

// withSelected runs fn with the id of the lead under the cursor.
func (a *App) withSelected(fn func(id int64)) {
	if l := a.leadList.Selected(); l != nil {
		fn(l.ID)
	}
}

func (a *App) toggleSelect() {
	if l := a.leadList.Selected(); l != nil {
		a.board.ToggleSelect(l.ID)
		a.leadList.Update()
	}
}

func (a *App) setStatusFilter(status lead.Status) {
	_, keyword := a.board.Filters()
	a.board.SetFilters(status, keyword)
	a.reload()
}

func (a *App) openDetail() {
	l := a.leadList.Selected()
	if l == nil {
		return
	}
	a.leadDetail.Show(l)
	a.pages.Push(pageDetail)
	a.focusCurrent()
}

func (a *App) openImport() {
	a.board.ResetSession()
	a.importV.Update()
	a.pages.Push(pageImport)
	a.focusCurrent()
}

func (a *App) activate(id int64) {
	a.async(func() error { return a.board.Activate(a.ctx, id) })
}

func (a *App) research(id int64) {
	a.board.Flash.Info("Recherche läuft...")
	a.refreshChrome()
	a.async(func() error { return a.board.Research(a.ctx, id) })
}

func (a *App) generateLetter(id int64) {
	a.async(func() error {
		_, err := a.board.GenerateLetter(a.ctx, id)
		return err
	})
}

func (a *App) editLetter(id int64) {
	l := a.board.Lead(id)
	if l == nil {
		return
	}
	if !l.CanGenerateLetter() {
		a.board.Flash.Warn("Lead muss zuerst recherchiert werden")
		a.refreshChrome()
		return
	}
	a.letter.Load(l)
	a.pages.Push(pageLetter)
	a.focusCurrent()
}

func (a *App) confirmDeleteOne() {
	l := a.leadList.Selected()
	if l == nil {
		return
	}
	a.confirm(fmt.Sprintf("Lead #%d löschen?", l.ID), func() {
		a.async(func() error { return a.board.Delete(a.ctx, l.ID) })
	})
}

func (a *App) confirmDeleteSelected() {
	n := a.board.SelectionCount()
	if n == 0 {
		a.board.Flash.Warn("Keine Leads markiert")
		a.refreshChrome()
		return
	}
	a.confirm(fmt.Sprintf("%d markierte Leads löschen?", n), func() {
		a.async(func() error { return a.board.DeleteSelected(a.ctx) })
	})
}

func (a *App) confirm(message string, onYes func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Ja", "Nein"})
	modal.SetBackgroundColor(a.theme.BgColor)
	modal.SetDoneFunc(func(_ int, label string) {
		a.pages.RemovePage("confirm")
		a.focusCurrent()
		if label == "Ja" {
			onYes()
		}
	})
	a.pages.AddPage("confirm", modal, true, true)
	a.app.SetFocus(modal)
}

func (a *App) importSelected() {
	a.async(func() error {
		_, err := a.board.ImportSelected(a.ctx)
		return err
	})
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "q", "quit":
		a.Stop()
	case "h", "help":
		a.pages.Push(pageHelp)
	case "status":
		status := lead.Status(cmd.Args)
		if !status.Valid() {
			a.board.Flash.Err("Ungültiger Status: " + cmd.Args)
			a.refreshChrome()
			return
		}
		a.withSelected(func(id int64) {
			a.async(func() error { return a.board.UpdateStatus(a.ctx, id, status) })
		})
	case "export":
		a.export()
	case "seed":
		a.seed()
	case "search":
		a.openImport()
		if cmd.Args != "" {
			go func() {
				if err := a.board.Search(a.ctx, client.SearchOptions{Keywords: cmd.Args}); err != nil {
					a.board.Flash.Err(err.Error())
				}
				a.app.QueueUpdateDraw(func() {
					a.importV.Update()
					a.refreshChrome()
					a.app.SetFocus(a.importV.Results())
				})
			}()
		}
	default:
		a.board.Flash.Err("Unbekannter Befehl: " + cmd.Name)
		a.refreshChrome()
	}
}

func (a *App) export() {
	go func() {
		name, data, err := a.api.Export(a.ctx)
		if err != nil {
			a.board.Flash.Err(err.Error())
		} else if err := os.WriteFile(name, data, 0o644); err != nil {
			a.board.Flash.Err(err.Error())
		} else {
			a.board.Flash.Info("Exportiert: " + name)
		}
		a.app.QueueUpdateDraw(a.refreshChrome)
	}()
}

func (a *App) seed() {
	go func() {
		_, msg, err := a.api.SeedDemo(a.ctx)
		if err != nil {
			a.board.Flash.Err(err.Error())
		} else {
			a.board.Flash.Info(msg)
		}
		_ = a.board.LoadLeads(a.ctx)
		_ = a.board.LoadStats(a.ctx)
		a.app.QueueUpdateDraw(a.redraw)
	}()
}

// async runs a board mutation off the UI goroutine and redraws after.
func (a *App) async(fn func() error) {
	go func() {
		if err := fn(); err != nil {
			a.log.Warn("daemon call failed", zap.Error(err))
			a.board.Flash.Err(err.Error())
		}
		a.app.QueueUpdateDraw(a.redraw)
	}()
}

func (a *App) reload() {
	a.async(func() error { return a.board.LoadLeads(a.ctx) })
}

// redraw re-renders the visible page and the chrome from the board snapshot.
func (a *App) redraw() {
	switch a.pages.Current() {
	case pageLeads:
		a.leadList.Update()
	case pageDetail:
		if l := a.board.Lead(a.leadDetail.LeadID()); l != nil {
			a.leadDetail.Show(l)
		}
	case pageImport:
		a.importV.Update()
	}
	a.refreshChrome()
}

// refreshChrome updates the header panel and status bar.
func (a *App) refreshChrome() {
	a.boardInfo.Update(&ui.BoardData{
		Profile: a.profile,
		Daemon:  a.daemonAddr,
		Stats:   a.board.Stats(),
	})
	a.statusBar.SetStats(a.board.Stats())
	msg, level := a.board.Flash.Get()
	a.statusBar.SetFlash(msg, level)
}

// Run starts the TUI application.
func (a *App) Run() error {
	go func() {
		_ = a.board.LoadLeads(a.ctx)
		_ = a.board.LoadStats(a.ctx)
		a.app.QueueUpdateDraw(a.redraw)
		a.startRefreshLoop()
	}()

	return a.app.Run()
}

// startRefreshLoop polls the daemon so changes made elsewhere (funnelctl,
// another terminal) show up without user action.
func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(5 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = a.board.LoadStats(a.ctx)
				if a.pages.Current() == pageLeads {
					_ = a.board.LoadLeads(a.ctx)
				}
				a.app.QueueUpdateDraw(a.redraw)
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
