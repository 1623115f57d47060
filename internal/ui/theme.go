package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zsprackett/termconfirm/internal/ui/dialogs"
)

// Theme colors for the TUI.
var (
	ColorBackground      = tcell.NewHexColor(0x1e1e2e)
	ColorBackgroundPanel = tcell.NewHexColor(0x181825)
	ColorBackgroundElem  = tcell.NewHexColor(0x313244)
	ColorPrimary         = tcell.NewHexColor(0x89b4fa) // blue
	ColorText            = tcell.NewHexColor(0xcdd6f4)
	ColorTextMuted       = tcell.NewHexColor(0x6c7086)
	ColorError           = tcell.NewHexColor(0xf38ba8) // red
	ColorBorder          = tcell.NewHexColor(0x45475a)
	ColorSelected        = tcell.NewHexColor(0x89b4fa)
	ColorSelectedText    = tcell.NewHexColor(0x1e1e2e)
)

// DialogTheme is the palette confirm dialogs are drawn with.
func DialogTheme() dialogs.Theme {
	button, buttonText := ButtonColors(dialogs.ButtonDefault)
	destructive, destructiveText := ButtonColors(dialogs.ButtonDestructive)
	return dialogs.Theme{
		Background:        ColorBackgroundPanel,
		Border:            ColorBorder,
		Title:             ColorPrimary,
		Text:              ColorText,
		Button:            button,
		ButtonText:        buttonText,
		ButtonFocused:     ColorSelected,
		ButtonFocusedText: ColorSelectedText,
		Destructive:       destructive,
		DestructiveText:   destructiveText,
	}
}

// ButtonColors returns the resting background and label colors for style.
func ButtonColors(style dialogs.ButtonStyle) (bg, fg tcell.Color) {
	switch style {
	case dialogs.ButtonDestructive:
		return ColorError, ColorBackground
	default:
		return ColorBackgroundElem, ColorText
	}
}
