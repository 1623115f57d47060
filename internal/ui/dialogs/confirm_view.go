package dialogs

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// Theme holds the colors a confirm dialog is drawn with.
type Theme struct {
	Background        tcell.Color
	Border            tcell.Color
	Title             tcell.Color
	Text              tcell.Color
	Button            tcell.Color
	ButtonText        tcell.Color
	ButtonFocused     tcell.Color
	ButtonFocusedText tcell.Color
	Destructive       tcell.Color
	DestructiveText   tcell.Color
}

const (
	minDialogWidth = 36
	maxDialogWidth = 72
	buttonPadding  = 4
	buttonGap      = 2
)

// MinContentWidth is the narrowest width text inside a dialog is wrapped at.
// Children sized for it never need more rows in a wider dialog.
const MinContentWidth = minDialogWidth - 4

// ConfirmDialog is a View materialized as tview primitives.
type ConfirmDialog struct {
	*tview.Flex

	view    View
	buttons []*tview.Button
	focused int
	width   int
	height  int
}

// Build lays out v with theme. The result handles Tab/Shift+Tab and the
// arrow keys to move between buttons, Enter to press the focused one and
// Escape to dismiss.
func Build(v View, theme Theme) *ConfirmDialog {
	d := &ConfirmDialog{
		Flex: tview.NewFlex().SetDirection(tview.FlexRow),
		view: v,
	}
	d.width = preferredWidth(v)
	inner := d.width - 4

	d.SetBorder(true).SetBorderPadding(0, 0, 1, 1)
	d.SetBackgroundColor(theme.Background)
	d.SetBorderColor(theme.Border)

	rows := 0
	if v.HasTitle {
		text := "[::b]" + tview.Escape(v.Title)
		title := tview.NewTextView().
			SetTextAlign(tview.AlignCenter).
			SetDynamicColors(true).
			SetWordWrap(true).
			SetText(text)
		title.SetTextColor(theme.Title)
		title.SetBackgroundColor(theme.Background)
		h := Rows(text, inner)
		d.AddItem(title, h, 0, false)
		d.AddItem(spacer(theme), 1, 0, false)
		rows += h + 1
	}

	desc := tview.NewTextView().
		SetDynamicColors(v.DescriptionStyled).
		SetWrap(true).
		SetWordWrap(true).
		SetText(v.Description)
	desc.SetTextColor(theme.Text)
	desc.SetBackgroundColor(theme.Background)
	descRows := Rows(tagged(v.Description, v.DescriptionStyled), inner)
	d.AddItem(desc, descRows, 0, false)
	rows += descRows

	if v.Children != nil {
		d.AddItem(v.Children, v.ChildrenHeight, 0, false)
		rows += v.ChildrenHeight
	}

	if len(v.Buttons) > 0 {
		d.AddItem(spacer(theme), 1, 0, false)
		bar, barRows := d.buildButtons(theme)
		d.AddItem(bar, barRows, 0, false)
		rows += 1 + barRows
	}

	d.height = rows + 2
	return d
}

func (d *ConfirmDialog) buildButtons(theme Theme) (tview.Primitive, int) {
	dir := tview.FlexColumn
	if d.view.Vertical {
		dir = tview.FlexRow
	}
	bar := tview.NewFlex().SetDirection(dir)
	bar.SetBackgroundColor(theme.Background)

	if !d.view.Vertical {
		bar.AddItem(spacer(theme), 0, 1, false)
	}
	for i, vb := range d.view.Buttons {
		if i > 0 {
			if d.view.Vertical {
				bar.AddItem(spacer(theme), 1, 0, false)
			} else {
				bar.AddItem(spacer(theme), buttonGap, 0, false)
			}
		}
		b := tview.NewButton(vb.Label).SetSelectedFunc(vb.OnPress)
		styleButton(b, vb.Style, theme)
		d.buttons = append(d.buttons, b)
		if d.view.Vertical {
			bar.AddItem(b, 1, 0, false)
		} else {
			bar.AddItem(b, runewidth.StringWidth(vb.Label)+buttonPadding, 0, false)
		}
	}
	if !d.view.Vertical {
		bar.AddItem(spacer(theme), 0, 1, false)
	}

	rows := 1
	if d.view.Vertical {
		rows = 2*len(d.view.Buttons) - 1
	}
	// Start on the last visible button, which is confirm when shown.
	d.focused = len(d.buttons) - 1
	return bar, rows
}

func styleButton(b *tview.Button, style ButtonStyle, theme Theme) {
	bg, fg := theme.Button, theme.ButtonText
	focusBg, focusFg := theme.ButtonFocused, theme.ButtonFocusedText
	if style == ButtonDestructive {
		bg, fg = theme.Destructive, theme.DestructiveText
		focusBg, focusFg = theme.DestructiveText, theme.Destructive
	}
	b.SetBackgroundColor(bg)
	b.SetLabelColor(fg)
	b.SetBackgroundColorActivated(focusBg)
	b.SetLabelColorActivated(focusFg)
}

func spacer(theme Theme) *tview.Box {
	return tview.NewBox().SetBackgroundColor(theme.Background)
}

// View returns the View the dialog was built from.
func (d *ConfirmDialog) View() View { return d.view }

// Size reports the width and height the dialog wants, borders included.
func (d *ConfirmDialog) Size() (width, height int) { return d.width, d.height }

// Buttons returns the button widgets in View order.
func (d *ConfirmDialog) Buttons() []*tview.Button { return d.buttons }

// Focused returns the index of the button that receives Enter, or -1.
func (d *ConfirmDialog) Focused() int {
	if len(d.buttons) == 0 {
		return -1
	}
	return d.focused
}

// Focus implements tview.Primitive.
func (d *ConfirmDialog) Focus(delegate func(p tview.Primitive)) {
	if len(d.buttons) == 0 {
		d.Flex.Focus(delegate)
		return
	}
	delegate(d.buttons[d.focused])
}

// InputHandler implements tview.Primitive.
func (d *ConfirmDialog) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return d.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyEscape:
			if d.view.OnDismiss != nil {
				d.view.OnDismiss()
			}
			return
		case tcell.KeyTab, tcell.KeyRight, tcell.KeyDown:
			d.move(1, setFocus)
			return
		case tcell.KeyBacktab, tcell.KeyLeft, tcell.KeyUp:
			d.move(-1, setFocus)
			return
		}
		if len(d.buttons) == 0 {
			return
		}
		if handler := d.buttons[d.focused].InputHandler(); handler != nil {
			handler(event, setFocus)
		}
	})
}

func (d *ConfirmDialog) move(step int, setFocus func(p tview.Primitive)) {
	n := len(d.buttons)
	if n == 0 {
		return
	}
	d.focused = (d.focused + step + n) % n
	setFocus(d.buttons[d.focused])
}

// Press runs the OnPress of the button for a. It reports false when that
// button is not shown.
func (d *ConfirmDialog) Press(a Action) bool {
	b, ok := d.view.Button(a)
	if !ok {
		return false
	}
	if b.OnPress != nil {
		b.OnPress()
	}
	return true
}

func preferredWidth(v View) int {
	w := minDialogWidth
	if v.HasTitle {
		w = max(w, tview.TaggedStringWidth(tview.Escape(v.Title))+4)
	}
	if !v.Vertical {
		total := 0
		for i, b := range v.Buttons {
			if i > 0 {
				total += buttonGap
			}
			total += runewidth.StringWidth(b.Label) + buttonPadding
		}
		w = max(w, total+4)
	} else {
		for _, b := range v.Buttons {
			w = max(w, runewidth.StringWidth(b.Label)+buttonPadding+4)
		}
	}
	for _, line := range tview.WordWrap(tagged(v.Description, v.DescriptionStyled), maxDialogWidth) {
		w = max(w, tview.TaggedStringWidth(line)+4)
	}
	return min(w, maxDialogWidth)
}

// Rows reports how many rows text, which may carry style tags, takes up
// once word-wrapped at width columns. It is never less than one.
func Rows(text string, width int) int {
	return max(1, len(tview.WordWrap(text, width)))
}

func tagged(text string, styled bool) string {
	if styled {
		return text
	}
	return tview.Escape(text)
}
