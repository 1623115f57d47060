package ui

import (
	"testing"

	"github.com/zsprackett/termconfirm/internal/ui/dialogs"
)

func TestButtonColorsDestructiveDistinct(t *testing.T) {
	bgDefault, _ := ButtonColors(dialogs.ButtonDefault)
	bgDestructive, _ := ButtonColors(dialogs.ButtonDestructive)
	if bgDefault == bgDestructive {
		t.Error("destructive buttons should not share the default background")
	}
}

func TestDialogThemeMatchesButtonColors(t *testing.T) {
	th := DialogTheme()
	bg, fg := ButtonColors(dialogs.ButtonDestructive)
	if th.Destructive != bg || th.DestructiveText != fg {
		t.Error("dialog theme destructive colors out of sync with ButtonColors")
	}
	bg, fg = ButtonColors(dialogs.ButtonDefault)
	if th.Button != bg || th.ButtonText != fg {
		t.Error("dialog theme default colors out of sync with ButtonColors")
	}
}
