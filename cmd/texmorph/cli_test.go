package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config whose table library lives in a temp dir.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "texmorph.toml")
	content := fmt.Sprintf("[store]\npath = %q\n\n[logging]\nlevel = \"warn\"\n", filepath.Join(base, "tables.db"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, configPath)
	if err != nil {
		t.Fatalf("%v: %v (stderr: %s)", args, err, stderr)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestAlignAutoAligns(t *testing.T) {
	cfg := writeTestConfig(t)
	out := mustRun(t, cfg, "align", "a b c", "a")
	requireContains(t, out, "TransitionTag.Transition, TransitionTag.Remove, TransitionTag.Remove")
	requireContains(t, out, "leaving")
}

func TestAlignResizesGivenTags(t *testing.T) {
	cfg := writeTestConfig(t)
	out := mustRun(t, cfg, "align", "--quiet", "--tags", "Anchor", "x y", "x")
	if strings.TrimSpace(out) != "TransitionTag.Anchor, TransitionTag.Remove" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestAlignRejectsBadTags(t *testing.T) {
	cfg := writeTestConfig(t)
	if _, _, err := runCLI(t, []string{"align", "--tags", "Swap", "a", "b"}, cfg); err == nil {
		t.Fatal("expected unknown tag error")
	}
	if _, _, err := runCLI(t, []string{"align", "--tags", "Anchor, Anchor", "a b", "a b"}, cfg); err == nil {
		t.Fatal("expected multiple anchor error")
	}
}

func TestValidate(t *testing.T) {
	cfg := writeTestConfig(t)
	out := mustRun(t, cfg, "validate", "TransitionTag.Transition, TransitionTag.Add")
	requireContains(t, out, "valid: 2 slots over 1 before and 2 after groups")

	if _, _, err := runCLI(t, []string{"validate", "Anchor, Anchor"}, cfg); err == nil {
		t.Fatal("expected multiple anchor error")
	}
	if _, _, err := runCLI(t, []string{"validate", "Transition", "--before", "a b", "--after", "a"}, cfg); err == nil {
		t.Fatal("expected group count mismatch")
	}
	if _, _, err := runCLI(t, []string{"validate"}, cfg); err == nil {
		t.Fatal("expected error without input")
	}
}

func TestLibraryLifecycle(t *testing.T) {
	cfg := writeTestConfig(t)

	out := mustRun(t, cfg, "save", "swap", "--before", "a + b", "--after", "b + a")
	requireContains(t, out, "Saved swap")

	out = mustRun(t, cfg, "align", "--quiet", "--save", "grow", "x", "x y")
	requireContains(t, out, "Saved grow")

	out = mustRun(t, cfg, "list")
	requireContains(t, out, "grow")
	requireContains(t, out, "swap")
	if strings.Index(out, "grow") > strings.Index(out, "swap") {
		t.Fatalf("list should be ordered by name:\n%s", out)
	}

	out = mustRun(t, cfg, "show", "grow")
	requireContains(t, out, "TransitionTag.Transition, TransitionTag.Add")
	requireContains(t, out, "1 y")

	out = mustRun(t, cfg, "show", "--toml", "grow")
	requireContains(t, out, "before_groups")

	out = mustRun(t, cfg, "validate", "--name", "swap")
	requireContains(t, out, "swap: valid, 3 slots")

	mustRun(t, cfg, "delete", "grow")
	_, _, err := runCLI(t, []string{"delete", "grow"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "no stored table") {
		t.Fatalf("second delete err = %v", err)
	}
	if _, _, err := runCLI(t, []string{"show", "grow"}, cfg); err == nil {
		t.Fatal("expected not found")
	}
}

func TestListEmpty(t *testing.T) {
	cfg := writeTestConfig(t)
	requireContains(t, mustRun(t, cfg, "list"), "No stored tables")
}

func TestEditSetTag(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "save", "t", "--before", "a b", "--after", "a b")

	out := mustRun(t, cfg, "edit", "set-tag", "t", "0", "remove")
	requireContains(t, out, "TransitionTag.Remove, TransitionTag.Transition, TransitionTag.Add")

	out = mustRun(t, cfg, "show", "t")
	requireContains(t, out, "TransitionTag.Remove, TransitionTag.Transition, TransitionTag.Add")
}

func TestEditSplitAbsorbsNeighbour(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "save", "s", "--before", "ab", "--after", "a b")

	out := mustRun(t, cfg, "edit", "split", "s", "0", "before", "1")
	requireContains(t, out, "TransitionTag.Transition, TransitionTag.Transition")
	requireContains(t, out, "1 b")
}

func TestEditRejectsAndKeepsTable(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "save", "r", "--before", "a", "--after", "a")

	for _, args := range [][]string{
		{"edit", "remove-slot", "r", "5"},
		{"edit", "split", "r", "0", "before", "0"},
		{"edit", "split", "r", "0", "sideways", "1"},
		{"edit", "set-tag", "r", "zero", "add"},
	} {
		if _, _, err := runCLI(t, args, cfg); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
	requireContains(t, mustRun(t, cfg, "show", "r"), "TransitionTag.Transition")
}

func TestEditRemoveSlot(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "save", "x", "--before", "a b", "--after", "a")
	out := mustRun(t, cfg, "edit", "remove-slot", "x", "0")
	// [Transition, Remove] minus slot 0 refits to two groups before, one after.
	requireContains(t, out, "TransitionTag.Remove, TransitionTag.Transition")
}

func TestSimulate(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "save", "m", "--before", "a + b", "--after", "a - b c", "--tags", "Anchor, Replace, Transition, Add")

	out := mustRun(t, cfg, "simulate", "m", "--steps", "2", "--easing", "linear")
	requireContains(t, out, "m: 2 persisting, 1 leaving, 2 entering")
	requireContains(t, out, "ready")
	requireContains(t, out, "transitioning")
	requireContains(t, out, "ended")

	if _, _, err := runCLI(t, []string{"simulate", "m", "--steps", "0"}, cfg); err == nil {
		t.Fatal("expected steps error")
	}
	if _, _, err := runCLI(t, []string{"simulate", "m", "--easing", "wobbly"}, cfg); err == nil {
		t.Fatal("expected easing error")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out := mustRun(t, "", "config", "init", "--path", target)
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected overwrite guard")
	}
	mustRun(t, "", "config", "init", "--path", target, "--overwrite")

	cfg := writeTestConfig(t)
	out = mustRun(t, cfg, "config", "show")
	requireContains(t, out, "logging.level")
	requireContains(t, out, "warn")
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[morph]\neasing = \"wobbly\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"list"}, path); err == nil {
		t.Fatal("expected config validation error")
	}
}
