package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zsprackett/termconfirm/internal/applog"
	"github.com/zsprackett/termconfirm/internal/config"
	"github.com/zsprackett/termconfirm/internal/i18n"
	"github.com/zsprackett/termconfirm/internal/ui"
	"github.com/zsprackett/termconfirm/internal/ui/dialogs"
)

// Exit codes reported by the termconfirm binary.
const (
	ExitConfirm = 0
	ExitCancel  = 1
	ExitBack    = 2
	ExitError   = 3
)

// Options are the command line flags.
type Options struct {
	ConfigPath string
	Locale     string
	LocalesDir string

	Title       string
	Description string
	Params      []string
	Markup      bool
	Detail      string

	BackLabel    string
	CancelLabel  string
	ConfirmLabel string

	ShowBack    bool
	HideCancel  bool
	HideConfirm bool
	Destructive bool
	Vertical    bool
}

// AnswerError carries the dialog answer out of cobra so Execute can turn
// it into an exit code.
type AnswerError struct {
	Action dialogs.Action
}

func (e *AnswerError) Error() string {
	return "answered " + e.Action.String()
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&Options{}, run)
}

func newRootCmd(opts *Options, runFn func(cmd *cobra.Command, opts *Options) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "termconfirm",
		Short:         "Ask for confirmation in a translated terminal dialog",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Yes/No prompt; exit status 0 on Yes, 1 on No or Escape
  termconfirm --title dialog.confirmTitle --description dialog.confirmTitle

  # Parameterized description with inline markup
  termconfirm --description room.kick --param name=Ada --destructive --confirm dialog.Remove
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFn(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "config file")
	f.StringVar(&opts.Locale, "locale", "", "locale (default from config or $LANG)")
	f.StringVar(&opts.LocalesDir, "locales-dir", "", "directory of <locale>.toml catalogs")
	f.StringVar(&opts.Title, "title", "", "title translation key")
	f.StringVar(&opts.Description, "description", "", "description translation key")
	f.StringArrayVar(&opts.Params, "param", nil, "description parameter as name=value (repeatable)")
	f.BoolVar(&opts.Markup, "markup", false, "render inline HTML in the description even without params")
	f.StringVar(&opts.Detail, "detail", "", "extra literal text shown below the description")
	f.StringVar(&opts.BackLabel, "back", "", "back button label key")
	f.StringVar(&opts.CancelLabel, "cancel", "", "cancel button label key")
	f.StringVar(&opts.ConfirmLabel, "confirm", "", "confirm button label key")
	f.BoolVar(&opts.ShowBack, "show-back", false, "show the back button")
	f.BoolVar(&opts.HideCancel, "hide-cancel", false, "hide the cancel button")
	f.BoolVar(&opts.HideConfirm, "hide-confirm", false, "hide the confirm button")
	f.BoolVar(&opts.Destructive, "destructive", false, "style the confirm button as destructive")
	f.BoolVar(&opts.Vertical, "vertical", false, "stack buttons vertically")
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	var answer *AnswerError
	switch {
	case err == nil:
		return ExitConfirm
	case errors.As(err, &answer):
		return ExitCode(answer.Action)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}
}

func ExitCode(a dialogs.Action) int {
	switch a {
	case dialogs.ActionConfirm:
		return ExitConfirm
	case dialogs.ActionBack:
		return ExitBack
	default:
		return ExitCancel
	}
}

// ParseParams turns name=value pairs into description params.
func ParseParams(pairs []string) (i18n.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(i18n.Params, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", pair)
		}
		params[strings.TrimSpace(name)] = value
	}
	return params, nil
}

// Props maps flags, with cfg supplying defaults, onto dialog props.
func (o *Options) Props(cfg config.Config) (dialogs.ConfirmProps, error) {
	params, err := ParseParams(o.Params)
	if err != nil {
		return dialogs.ConfirmProps{}, err
	}

	var desc dialogs.Description
	switch {
	case params != nil || o.Markup:
		desc = dialogs.ParamKey{Key: o.Description, Params: params}
	case o.Description != "":
		desc = dialogs.PlainKey(o.Description)
	}

	opts := []dialogs.ConfirmOption{
		dialogs.WithTitle(o.Title),
		dialogs.WithBackLabel(o.BackLabel),
		dialogs.WithCancelLabel(o.CancelLabel),
		dialogs.WithConfirmLabel(o.ConfirmLabel),
	}
	if o.ShowBack || cfg.Dialog.ShowBack {
		opts = append(opts, dialogs.ShowBack())
	}
	if o.HideCancel {
		opts = append(opts, dialogs.HideCancel())
	}
	if o.HideConfirm {
		opts = append(opts, dialogs.HideConfirm())
	}
	if o.Destructive {
		opts = append(opts, dialogs.Destructive())
	}
	if o.Vertical || cfg.Dialog.VerticalButtons {
		opts = append(opts, dialogs.VerticalButtons())
	}
	if o.Detail != "" {
		detail := tview.NewTextView().SetText(o.Detail).SetWrap(true).SetWordWrap(true)
		detail.SetTextColor(ui.ColorTextMuted)
		detail.SetBackgroundColor(ui.ColorBackgroundPanel)
		rows := dialogs.Rows(tview.Escape(o.Detail), dialogs.MinContentWidth)
		opts = append(opts, dialogs.WithChildren(detail, rows))
	}
	return dialogs.NewConfirmProps(desc, opts...), nil
}

func run(cmd *cobra.Command, opts *Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("termconfirm needs an interactive terminal")
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Locale != "" {
		cfg.Locale = opts.Locale
	}
	if opts.LocalesDir != "" {
		cfg.LocalesDir = opts.LocalesDir
	}

	logger, closeLog := initLogging(cfg, cmd.ErrOrStderr())
	defer closeLog()

	bundle := i18n.NewBundle()
	if err := bundle.LoadDir(cfg.LocalesDir); err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	locale := cfg.ResolveLocale(os.Getenv)
	tr := bundle.Localizer(locale)
	logger.Debug("translator ready", "requested", locale, "resolved", tr.Language().String())

	props, err := opts.Props(cfg)
	if err != nil {
		return err
	}
	return ask(props, tr, logger)
}

// initLogging starts the file logger. On failure it warns on stderr, which
// is still ours until the dialog is drawn, and logs nowhere.
func initLogging(cfg config.Config, stderr io.Writer) (*slog.Logger, func()) {
	logger, closer, err := applog.Init(applog.InitConfig{LogDir: cfg.LogDir, LogLevel: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(stderr, "warning: could not init log file: %v\n", err)
		return applog.Discard(), func() {}
	}
	return logger, func() { closer.Close() }
}

func ask(props dialogs.ConfirmProps, tr i18n.Translator, logger *slog.Logger) error {
	app := ui.NewApp(tr, logger)
	answer := dialogs.ActionCancel
	answerWith := func(a dialogs.Action) func() {
		return func() {
			answer = a
			app.Stop()
		}
	}
	app.ShowConfirm(props, dialogs.Handlers{
		OnBack:   answerWith(dialogs.ActionBack),
		OnCancel: answerWith(dialogs.ActionCancel),
		OnSubmit: answerWith(dialogs.ActionConfirm),
	})
	if err := app.Run(); err != nil {
		return err
	}
	if answer == dialogs.ActionConfirm {
		return nil
	}
	return &AnswerError{Action: answer}
}
