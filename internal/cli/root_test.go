package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/zsprackett/termconfirm/internal/config"
	"github.com/zsprackett/termconfirm/internal/i18n"
	"github.com/zsprackett/termconfirm/internal/ui/dialogs"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	opts := &Options{}
	cmd := newRootCmd(opts, func(*cobra.Command, *Options) error { return nil })
	// A nil slice makes cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return opts
}

func TestFlagsToProps(t *testing.T) {
	opts := parse(t,
		"--title", "dialog.confirmTitle",
		"--description", "room.leave",
		"--cancel", "custom.key",
		"--show-back",
		"--destructive",
	)
	p, err := opts.Props(config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "dialog.confirmTitle" {
		t.Errorf("title: got %q", p.Title)
	}
	if p.Description != dialogs.PlainKey("room.leave") {
		t.Errorf("description: got %#v", p.Description)
	}
	if p.CancelLabel != "custom.key" || p.ConfirmLabel != "" {
		t.Errorf("labels: cancel %q confirm %q", p.CancelLabel, p.ConfirmLabel)
	}
	if p.IsBackHidden || p.IsCancelHidden || p.IsConfirmHidden {
		t.Errorf("visibility: %+v", p)
	}
	if !p.IsConfirmDestructive {
		t.Error("expected destructive confirm")
	}
}

func TestDefaultFlagsKeepDialogDefaults(t *testing.T) {
	p, err := parse(t, "--description", "d").Props(config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsBackHidden || p.IsCancelHidden || p.IsConfirmHidden || p.IsConfirmDestructive || p.VerticalButtons {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestParamsSelectParamKey(t *testing.T) {
	p, err := parse(t, "--description", "room.kick", "--param", "name=Ada", "--param", "room=lobby").Props(config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	pk, ok := p.Description.(dialogs.ParamKey)
	if !ok {
		t.Fatalf("want ParamKey, got %#v", p.Description)
	}
	if pk.Key != "room.kick" || pk.Params["name"] != "Ada" || pk.Params["room"] != "lobby" {
		t.Errorf("got %#v", pk)
	}

	p, _ = parse(t, "--description", "d", "--markup").Props(config.Defaults())
	if _, ok := p.Description.(dialogs.ParamKey); !ok {
		t.Errorf("--markup should select ParamKey, got %#v", p.Description)
	}
}

func TestNoDescriptionIsNil(t *testing.T) {
	p, err := parse(t).Props(config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.Description != nil {
		t.Errorf("got %#v want nil", p.Description)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := config.Defaults()
	cfg.Dialog.VerticalButtons = true
	cfg.Dialog.ShowBack = true
	p, err := parse(t, "--description", "d").Props(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !p.VerticalButtons || p.IsBackHidden {
		t.Errorf("config defaults not applied: %+v", p)
	}
}

func TestDetailBecomesChildren(t *testing.T) {
	p, err := parse(t, "--description", "d", "--detail", "line one\nline two").Props(config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.Children == nil || p.ChildrenHeight != 2 {
		t.Errorf("children: %v height %d", p.Children, p.ChildrenHeight)
	}
}

func TestDetailHeightCountsWrappedRows(t *testing.T) {
	// six "word " per row at the narrowest content width
	detail := strings.TrimSpace(strings.Repeat("word ", 20))
	p, err := parse(t, "--description", "d", "--detail", detail).Props(config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.ChildrenHeight != 4 {
		t.Errorf("height: got %d want 4", p.ChildrenHeight)
	}
}

func TestInitLoggingWarnsOnFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults()
	cfg.LogDir = filepath.Join(blocker, "logs")

	var stderr bytes.Buffer
	logger, closeLog := initLogging(cfg, &stderr)
	defer closeLog()

	if logger == nil {
		t.Fatal("expected a fallback logger")
	}
	if !strings.HasPrefix(stderr.String(), "warning: could not init log file: ") {
		t.Errorf("stderr: got %q", stderr.String())
	}
	logger.Info("dropped")
}

func TestParseParams(t *testing.T) {
	got, err := ParseParams([]string{"a=1", " b =x=y", "c="})
	if err != nil {
		t.Fatal(err)
	}
	want := i18n.Params{"a": "1", "b": "x=y", "c": ""}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: got %v want %v", k, got[k], v)
		}
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := ParseParams([]string{bad}); err == nil {
			t.Errorf("ParseParams(%q): expected error", bad)
		}
	}
	if got, err := ParseParams(nil); err != nil || got != nil {
		t.Errorf("nil input: got %v, %v", got, err)
	}
}

func TestExitCode(t *testing.T) {
	cases := map[dialogs.Action]int{
		dialogs.ActionConfirm: ExitConfirm,
		dialogs.ActionCancel:  ExitCancel,
		dialogs.ActionBack:    ExitBack,
	}
	for a, want := range cases {
		if got := ExitCode(a); got != want {
			t.Errorf("ExitCode(%v): got %d want %d", a, got, want)
		}
	}
}

func TestAnswerErrorUnwraps(t *testing.T) {
	opts := &Options{}
	cmd := newRootCmd(opts, func(*cobra.Command, *Options) error {
		return &AnswerError{Action: dialogs.ActionBack}
	})
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	var answer *AnswerError
	if !errors.As(err, &answer) || answer.Action != dialogs.ActionBack {
		t.Errorf("got %v", err)
	}
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd(&Options{}, func(*cobra.Command, *Options) error { return nil })
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for positional args")
	}
}
