package dialogs

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"github.com/zsprackett/termconfirm/internal/i18n"
)

var helpKeys = []struct {
	keys string
	desc string
}{
	{"Tab/→/↓", "help.next"},
	{"Shift+Tab/←/↑", "help.previous"},
	{"Enter", "help.press"},
	{"Escape", "help.dismiss"},
	{"?", "help.toggle"},
}

// HelpText returns the translated key legend shown by HelpDialog.
func HelpText(t i18n.Translator) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[-]\n\n", tview.Escape(t.T("help.title")))
	for _, k := range helpKeys {
		fmt.Fprintf(&b, "  [green]%s[-] %s\n", tview.Escape(runewidth.FillRight(k.keys, 14)), tview.Escape(t.T(k.desc)))
	}
	fmt.Fprintf(&b, "\n%s", tview.Escape(t.T("help.close")))
	return b.String()
}

func HelpDialog(t i18n.Translator, onClose func()) *tview.TextView {
	tv := tview.NewTextView()
	tv.SetBorder(true).SetTitle(" " + t.T("help.title") + " ").SetTitleAlign(tview.AlignLeft)
	tv.SetDynamicColors(true)
	tv.SetBackgroundColor(tcell.ColorDefault)
	tv.SetText(HelpText(t))
	tv.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == '?' {
			onClose()
			return nil
		}
		return event
	})
	return tv
}
