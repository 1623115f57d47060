package dialogs

import (
	"github.com/rivo/tview"

	"github.com/zsprackett/termconfirm/internal/i18n"
	"github.com/zsprackett/termconfirm/internal/markup"
)

// Default label keys for the three confirm dialog buttons.
const (
	KeyConfirmBack = "dialog.confirmBack"
	KeyConfirmNo   = "dialog.confirmNo"
	KeyConfirmYes  = "dialog.confirmYes"
)

// Description selects how the dialog body text is produced. It is either a
// PlainKey or a ParamKey.
type Description interface {
	resolve(t i18n.Translator) (text string, styled bool)
}

// PlainKey is translated and shown verbatim.
type PlainKey string

func (k PlainKey) resolve(t i18n.Translator) (string, bool) {
	return t.T(string(k)), false
}

// ParamKey is translated with Params and the result may carry inline HTML
// (b, i, u, a, br, p).
type ParamKey struct {
	Key    string
	Params i18n.Params
}

func (k ParamKey) resolve(t i18n.Translator) (string, bool) {
	return markup.RenderHTML(t.T(k.Key, k.Params)), true
}

// Action identifies which of the three buttons was pressed.
type Action int

const (
	ActionBack Action = iota
	ActionCancel
	ActionConfirm
)

func (a Action) String() string {
	switch a {
	case ActionBack:
		return "back"
	case ActionCancel:
		return "cancel"
	case ActionConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ButtonStyle is the visual treatment of a button.
type ButtonStyle int

const (
	ButtonDefault ButtonStyle = iota
	ButtonDestructive
)

// Handlers are invoked when the matching button is pressed. Nil handlers are
// ignored.
type Handlers struct {
	OnBack   func()
	OnCancel func()
	OnSubmit func()
}

// ConfirmProps describes a confirm dialog. Title and the label fields are
// translation keys; an empty label selects the default key.
//
// The hidden flags are read as-is. Use NewConfirmProps to get the usual
// defaults (back hidden, cancel and confirm shown).
type ConfirmProps struct {
	Title       string
	Description Description

	BackLabel    string
	CancelLabel  string
	ConfirmLabel string

	IsBackHidden         bool
	IsCancelHidden       bool
	IsConfirmHidden      bool
	IsConfirmDestructive bool
	VerticalButtons      bool

	// Children is extra content placed between the description and the
	// buttons. ChildrenHeight is its row count; zero means one row.
	Children       tview.Primitive
	ChildrenHeight int
}

// ConfirmOption adjusts ConfirmProps built by NewConfirmProps.
type ConfirmOption func(*ConfirmProps)

// NewConfirmProps returns props for desc with defaults applied, then opts.
func NewConfirmProps(desc Description, opts ...ConfirmOption) ConfirmProps {
	p := ConfirmProps{
		Description:  desc,
		IsBackHidden: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func WithTitle(key string) ConfirmOption {
	return func(p *ConfirmProps) { p.Title = key }
}

func WithBackLabel(key string) ConfirmOption {
	return func(p *ConfirmProps) { p.BackLabel = key }
}

func WithCancelLabel(key string) ConfirmOption {
	return func(p *ConfirmProps) { p.CancelLabel = key }
}

func WithConfirmLabel(key string) ConfirmOption {
	return func(p *ConfirmProps) { p.ConfirmLabel = key }
}

// ShowBack makes the back button visible.
func ShowBack() ConfirmOption {
	return func(p *ConfirmProps) { p.IsBackHidden = false }
}

func HideCancel() ConfirmOption {
	return func(p *ConfirmProps) { p.IsCancelHidden = true }
}

func HideConfirm() ConfirmOption {
	return func(p *ConfirmProps) { p.IsConfirmHidden = true }
}

// Destructive gives the confirm button the destructive style.
func Destructive() ConfirmOption {
	return func(p *ConfirmProps) { p.IsConfirmDestructive = true }
}

func VerticalButtons() ConfirmOption {
	return func(p *ConfirmProps) { p.VerticalButtons = true }
}

func WithChildren(child tview.Primitive, height int) ConfirmOption {
	return func(p *ConfirmProps) {
		p.Children = child
		p.ChildrenHeight = height
	}
}

// ResolveDescription returns the body text. A nil Description is looked up
// as an empty ParamKey.
func (p ConfirmProps) ResolveDescription(t i18n.Translator) string {
	text, _ := p.description().resolve(t)
	return text
}

func (p ConfirmProps) description() Description {
	if p.Description == nil {
		return ParamKey{}
	}
	return p.Description
}

// ViewButton is one rendered button.
type ViewButton struct {
	Action  Action
	Label   string
	Style   ButtonStyle
	OnPress func()
}

// View is the rendered form of a confirm dialog, independent of any screen.
type View struct {
	CoverScreen bool
	Visible     bool
	Vertical    bool

	HasTitle bool
	Title    string

	Description string
	// DescriptionStyled is set when Description contains tview style tags.
	DescriptionStyled bool

	Children       tview.Primitive
	ChildrenHeight int

	// Buttons are ordered back, cancel, confirm; hidden ones are absent.
	Buttons []ViewButton

	// OnDismiss runs when the dialog is dismissed without a button (Escape).
	OnDismiss func()
}

// Render builds the View for props. It has no side effects; the handlers are
// only bound, never called.
func Render(p ConfirmProps, h Handlers, t i18n.Translator) View {
	v := View{
		CoverScreen: false,
		Visible:     true,
		Vertical:    p.VerticalButtons,
		Children:    p.Children,
		OnDismiss:   guard(h.OnCancel),
	}
	if p.Title != "" {
		v.HasTitle = true
		v.Title = t.T(p.Title)
	}
	v.Description, v.DescriptionStyled = p.description().resolve(t)
	if p.Children != nil {
		v.ChildrenHeight = max(p.ChildrenHeight, 1)
	}

	confirmStyle := ButtonDefault
	if p.IsConfirmDestructive {
		confirmStyle = ButtonDestructive
	}
	if !p.IsBackHidden {
		v.Buttons = append(v.Buttons, ViewButton{
			Action:  ActionBack,
			Label:   t.T(orDefault(p.BackLabel, KeyConfirmBack)),
			Style:   ButtonDefault,
			OnPress: guard(h.OnBack),
		})
	}
	if !p.IsCancelHidden {
		v.Buttons = append(v.Buttons, ViewButton{
			Action:  ActionCancel,
			Label:   t.T(orDefault(p.CancelLabel, KeyConfirmNo)),
			Style:   ButtonDefault,
			OnPress: guard(h.OnCancel),
		})
	}
	if !p.IsConfirmHidden {
		v.Buttons = append(v.Buttons, ViewButton{
			Action:  ActionConfirm,
			Label:   t.T(orDefault(p.ConfirmLabel, KeyConfirmYes)),
			Style:   confirmStyle,
			OnPress: guard(h.OnSubmit),
		})
	}
	return v
}

// Button returns the rendered button for a, if present.
func (v View) Button(a Action) (ViewButton, bool) {
	for _, b := range v.Buttons {
		if b.Action == a {
			return b, true
		}
	}
	return ViewButton{}, false
}

func orDefault(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}

func guard(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
