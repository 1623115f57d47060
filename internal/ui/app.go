package ui

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/zsprackett/termconfirm/internal/i18n"
	"github.com/zsprackett/termconfirm/internal/ui/dialogs"
)

// App hosts confirm dialogs as pages above a background page.
type App struct {
	tapp    *tview.Application
	pages   *tview.Pages
	base    *tview.Box
	tr      i18n.Translator
	theme   dialogs.Theme
	logger  *slog.Logger
	dialogs map[string]*dialogs.ConfirmDialog
	stack   []string
}

func NewApp(tr i18n.Translator, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		tapp:    tview.NewApplication(),
		pages:   tview.NewPages(),
		base:    tview.NewBox().SetBackgroundColor(ColorBackground),
		tr:      tr,
		theme:   DialogTheme(),
		logger:  logger,
		dialogs: make(map[string]*dialogs.ConfirmDialog),
	}
	a.pages.AddPage("base", a.base, true, true)
	a.tapp.SetRoot(a.pages, true).EnableMouse(false)
	a.tapp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == '?' {
			a.toggleHelp()
			return nil
		}
		return event
	})
	return a
}

const helpPage = "help"

func (a *App) toggleHelp() {
	if a.pages.HasPage(helpPage) {
		a.pages.RemovePage(helpPage)
		a.refocus()
		return
	}
	help := dialogs.HelpDialog(a.tr, a.toggleHelp)
	a.showDialog(helpPage, help, 50, 13)
}

// ShowConfirm mounts a confirm dialog and returns its page name. The dialog
// is removed before the pressed button's handler runs.
func (a *App) ShowConfirm(props dialogs.ConfirmProps, h dialogs.Handlers) string {
	name := "confirm-" + uuid.NewString()
	closing := func(action dialogs.Action, fn func()) func() {
		return func() {
			a.logger.Info("confirm dialog closed", "page", name, "action", action.String())
			a.Close(name)
			if fn != nil {
				fn()
			}
		}
	}
	wrapped := dialogs.Handlers{
		OnBack:   closing(dialogs.ActionBack, h.OnBack),
		OnCancel: closing(dialogs.ActionCancel, h.OnCancel),
		OnSubmit: closing(dialogs.ActionConfirm, h.OnSubmit),
	}

	d := dialogs.Build(dialogs.Render(props, wrapped, a.tr), a.theme)
	width, height := d.Size()
	a.dialogs[name] = d
	a.stack = append(a.stack, name)
	a.showDialog(name, d, width, height)
	a.logger.Debug("confirm dialog shown", "page", name, "title", props.Title, "buttons", len(d.Buttons()))
	return name
}

// Dialog returns the mounted dialog for a page name.
func (a *App) Dialog(name string) (*dialogs.ConfirmDialog, bool) {
	d, ok := a.dialogs[name]
	return d, ok
}

// Open lists mounted dialog page names, oldest first.
func (a *App) Open() []string {
	return append([]string(nil), a.stack...)
}

func (a *App) showDialog(name string, widget tview.Primitive, width, height int) {
	modal := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(widget, width, 0, true).
			AddItem(nil, 0, 1, false), height, 0, true).
		AddItem(nil, 0, 1, false)
	a.pages.AddPage(name, modal, true, true)
	a.tapp.SetFocus(widget)
}

// Close unmounts a dialog and returns focus to the dialog beneath it.
// Unknown names are ignored.
func (a *App) Close(name string) {
	if _, ok := a.dialogs[name]; !ok {
		return
	}
	delete(a.dialogs, name)
	for i, n := range a.stack {
		if n == name {
			a.stack = append(a.stack[:i], a.stack[i+1:]...)
			break
		}
	}
	a.pages.RemovePage(name)
	a.refocus()
}

func (a *App) refocus() {
	if len(a.stack) > 0 {
		a.tapp.SetFocus(a.dialogs[a.stack[len(a.stack)-1]])
		return
	}
	a.tapp.SetFocus(a.base)
}

func (a *App) Run() error {
	return a.tapp.Run()
}

func (a *App) Stop() {
	a.tapp.Stop()
}
