package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stopwatch_tui/internal/record"
	"stopwatch_tui/internal/store"
)

type testEnv struct {
	deps       *Deps
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	configPath string
	dataPath   string
}

func setupTestEnv(t *testing.T, driver string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "records."+driver)
	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[storage]\ndriver = %q\npath = %q\n\n[log]\nlevel = \"debug\"\nfile = %q\n",
		driver, dataPath, filepath.Join(dir, "stopwatch.log"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		deps: &Deps{
			Stdout:     stdout,
			Stderr:     stderr,
			RunProgram: func(tea.Model) error { return nil },
		},
		stdout:     stdout,
		stderr:     stderr,
		configPath: configPath,
		dataPath:   dataPath,
	}
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	return cmd.Execute()
}

func (e *testEnv) seed(t *testing.T, driver, value string) {
	t.Helper()
	st, err := store.Open(driver, e.dataPath)
	if err != nil {
		t.Fatalf("store.Open() returned unexpected error: %v", err)
	}
	defer st.Close()
	if err := st.SetItem(record.Key, value); err != nil {
		t.Fatalf("SetItem() returned unexpected error: %v", err)
	}
}

func TestListEmpty(t *testing.T) {
	e := setupTestEnv(t, "sqlite")

	if err := e.run(t, "list"); err != nil {
		t.Fatalf("list returned unexpected error: %v", err)
	}
	if got := e.stdout.String(); got != "No records\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestListPrintsRecords(t *testing.T) {
	for _, driver := range []string{"sqlite", "file"} {
		t.Run(driver, func(t *testing.T) {
			e := setupTestEnv(t, driver)
			e.seed(t, driver, `["[시작] 1시 2분 3초 / a","[종료 - 9초 경과] 1시 2분 12초 / a"]`)

			if err := e.run(t, "list"); err != nil {
				t.Fatalf("list returned unexpected error: %v", err)
			}
			want := "[시작] 1시 2분 3초 / a\n[종료 - 9초 경과] 1시 2분 12초 / a\n"
			if got := e.stdout.String(); got != want {
				t.Errorf("stdout = %q, want %q", got, want)
			}
		})
	}
}

func TestListMalformed(t *testing.T) {
	e := setupTestEnv(t, "sqlite")
	e.seed(t, "sqlite", "{broken")

	if err := e.run(t, "list"); err != nil {
		t.Fatalf("list returned unexpected error: %v", err)
	}
	if !strings.Contains(e.stderr.String(), "Warning") {
		t.Errorf("stderr = %q, want warning", e.stderr.String())
	}
	if e.stdout.String() != "No records\n" {
		t.Errorf("stdout = %q", e.stdout.String())
	}
}

func TestClear(t *testing.T) {
	e := setupTestEnv(t, "file")
	e.seed(t, "file", `["a","b"]`)

	if err := e.run(t, "clear"); err != nil {
		t.Fatalf("clear returned unexpected error: %v", err)
	}
	if got := e.stdout.String(); got != "Cleared 2 records\n" {
		t.Errorf("stdout = %q", got)
	}

	st := store.NewFileStore(e.dataPath)
	if v, ok, _ := st.GetItem(record.Key); !ok || v != record.Null {
		t.Errorf("stored = (%q, %v), want null marker", v, ok)
	}
}

func TestRootRunsScreen(t *testing.T) {
	e := setupTestEnv(t, "sqlite")
	e.deps.RunProgram = func(m tea.Model) error {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return nil
	}

	if err := e.run(t); err != nil {
		t.Fatalf("root returned unexpected error: %v", err)
	}

	e.stdout.Reset()
	if err := e.run(t, "list"); err != nil {
		t.Fatalf("list returned unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(e.stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("list output = %q, want two records", e.stdout.String())
	}
	if !strings.HasPrefix(lines[0], "[시작]") || !strings.HasPrefix(lines[1], "[종료 - ") {
		t.Errorf("records = %v", lines)
	}
	for _, l := range lines {
		if !strings.HasSuffix(l, "/ x") {
			t.Errorf("record %q missing note", l)
		}
	}
}

func TestRootProgramError(t *testing.T) {
	e := setupTestEnv(t, "sqlite")
	e.deps.RunProgram = func(tea.Model) error { return errors.New("no tty") }

	if err := e.run(t); err == nil {
		t.Error("root expected error when the program fails, got nil")
	}
}

func TestDriverFlagOverridesConfig(t *testing.T) {
	e := setupTestEnv(t, "sqlite")

	if err := e.run(t, "--driver", "memory", "list"); err != nil {
		t.Fatalf("list returned unexpected error: %v", err)
	}
	if _, err := os.Stat(e.dataPath); !os.IsNotExist(err) {
		t.Errorf("memory driver touched %s (err=%v)", e.dataPath, err)
	}
}

func TestInvalidFlags(t *testing.T) {
	e := setupTestEnv(t, "sqlite")

	if err := e.run(t, "--driver", "redis", "list"); err == nil {
		t.Error("expected error for unknown driver")
	}
	if err := e.run(t, "--log-level", "loud", "list"); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize("record", 1); got != "record" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize("record", 0); got != "records" {
		t.Errorf("pluralize(0) = %q", got)
	}
}
