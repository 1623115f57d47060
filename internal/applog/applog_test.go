package applog_test

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zsprackett/termconfirm/internal/applog"
)

func day(d int) func() time.Time {
	return func() time.Time { return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC) }
}

func TestDailyRotator_CreatesFileOnFirstWrite(t *testing.T) {
	dir := t.TempDir()
	r := applog.NewDailyRotator(dir, "", 0)
	defer r.Close()
	r.SetNow(day(1))

	if _, err := r.Write([]byte("hello\n")); err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(dir, "termconfirm-2026-03-01.log")
	if r.FileFor(day(1)()) != name {
		t.Errorf("FileFor: got %q want %q", r.FileFor(day(1)()), name)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("expected log file %q to exist: %v", name, err)
	}
}

func TestDailyRotator_RotatesOnDateChange(t *testing.T) {
	dir := t.TempDir()
	r := applog.NewDailyRotator(dir, "dlg", 7)
	defer r.Close()

	r.SetNow(day(1))
	if _, err := r.Write([]byte("day1\n")); err != nil {
		t.Fatal(err)
	}
	r.SetNow(day(2))
	if _, err := r.Write([]byte("day2\n")); err != nil {
		t.Fatal(err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "dlg-*.log"))
	if len(matches) != 2 {
		t.Errorf("expected 2 log files after rotation, got %d", len(matches))
	}
}

func TestDailyRotator_PrunesOldFiles(t *testing.T) {
	dir := t.TempDir()
	r := applog.NewDailyRotator(dir, "dlg", 3)

	for i := 1; i <= 5; i++ {
		r.SetNow(day(i))
		if _, err := r.Write([]byte("entry\n")); err != nil {
			t.Fatal(err)
		}
	}
	r.Close()

	matches, _ := filepath.Glob(filepath.Join(dir, "dlg-*.log"))
	if len(matches) != 3 {
		t.Errorf("expected 3 log files after pruning, got %d: %v", len(matches), matches)
	}
	for _, name := range matches {
		base := filepath.Base(name)
		if base == "dlg-2026-03-01.log" || base == "dlg-2026-03-02.log" {
			t.Errorf("old file %q should have been pruned", base)
		}
	}
}

func TestDailyRotator_WriteAfterClose(t *testing.T) {
	dir := t.TempDir()
	r := applog.NewDailyRotator(dir, "dlg", 3)
	r.SetNow(day(1))
	r.Write([]byte("one\n"))
	r.Close()
	if _, err := r.Write([]byte("two\n")); err != nil {
		t.Fatalf("write after close should reopen: %v", err)
	}
	r.Close()

	data, _ := os.ReadFile(filepath.Join(dir, "dlg-2026-03-01.log"))
	if string(data) != "one\ntwo\n" {
		t.Errorf("got %q", string(data))
	}
}

func TestInit_CreatesLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "newlogs")
	_, closer, err := applog.Init(applog.InitConfig{LogDir: dir, LogLevel: "info"})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected log dir %q to be created: %v", dir, err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{" WARN ", slog.LevelWarn},
	}
	for _, tc := range cases {
		if got := applog.ParseLevel(tc.input); got != tc.level {
			t.Errorf("ParseLevel(%q): got %v want %v", tc.input, got, tc.level)
		}
	}
}

func TestInit_StdlibLogRedirected(t *testing.T) {
	dir := t.TempDir()
	_, closer, err := applog.Init(applog.InitConfig{LogDir: dir, LogLevel: "info"})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	log.Print("stdlib-log-test-marker")

	today := time.Now().Format("2006-01-02")
	name := filepath.Join(dir, "termconfirm-"+today+".log")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "stdlib-log-test-marker") {
		t.Errorf("stdlib log output not found in log file; file contents: %q", string(data))
	}
}
