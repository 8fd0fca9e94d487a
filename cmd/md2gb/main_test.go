package main

// Notes:
// - runMain: we test dispatch and exit codes. Conversion itself is covered
//   by convert_test.go.
// - configureMaxProcs is not tested: it changes GOMAXPROCS for the whole
//   process, which would race with parallel tests.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// newTestEnv returns an Environment writing to buffers.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(doc, []byte("The color.\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Runs after the parallel subtests: dry run must not touch the file
	t.Cleanup(func() {
		got, err := os.ReadFile(doc)
		if err != nil {
			t.Errorf("ReadFile: %v", err)
			return
		}
		if string(got) != "The color.\n" {
			t.Errorf("dry run modified file: %q", got)
		}
	})

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"md2gb"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2gb"},
		},
		{
			name:         "version",
			args:         []string{"md2gb", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"go-md2gb " + Version},
		},
		{
			name:         "help",
			args:         []string{"md2gb", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2gb", "Commands:", "rules"},
		},
		{
			name:         "help convert",
			args:         []string{"md2gb", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2gb convert", "--dry-run", "--refresh-regions"},
		},
		{
			name:         "help unknown command",
			args:         []string{"md2gb", "help", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: bogus"},
		},
		{
			name:         "unknown command",
			args:         []string{"md2gb", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: bogus"},
		},
		{
			name:         "bare path means convert",
			args:         []string{"md2gb", "--dry-run", doc},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"DRY RUN: Converting 1 file(s)...", "[DRY RUN] doc.md: 1 changes would be made"},
		},
		{
			name:         "missing markdown file is reported",
			args:         []string{"md2gb", filepath.Join(dir, "missing.md")},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"✗ File not found:"},
		},
		{
			name:         "rules command",
			args:         []string{"md2gb", "rules"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"optimize", "licence"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}

}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"convert", true},
		{"rules", true},
		{"version", true},
		{"help", true},
		{"Convert", false},
		{"doc.md", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeConvertArg - Implicit convert detection
// ---------------------------------------------------------------------------

func TestLooksLikeConvertArg(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		input string
		want  bool
	}{
		{"README.md", true},
		{"notes.markdown", true},
		{"--dry-run", true},
		{"-n", true},
		{"docs/", true},
		{dir, true},
		{"convert", false},
		{"bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := looksLikeConvertArg(tt.input); got != tt.want {
				t.Errorf("looksLikeConvertArg(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Early verbose detection
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"long", []string{"convert", "--verbose", "a.md"}, true},
		{"short", []string{"-v", "a.md"}, true},
		{"combined short", []string{"-nv", "a.md"}, true},
		{"explicit true", []string{"--verbose=true"}, true},
		{"absent", []string{"convert", "-n", "a.md"}, false},
		{"after terminator", []string{"--", "-v"}, false},
		{"explicit false", []string{"--verbose=false"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
