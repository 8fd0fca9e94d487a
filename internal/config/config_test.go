package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2gb/internal/pipeline"
)

func intPtr(n int) *int { return &n }

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.Conversion.WindowSize != nil {
		t.Errorf("Conversion.WindowSize = %v, want nil", *cfg.Conversion.WindowSize)
	}
	if cfg.Conversion.Rules != nil || cfg.Conversion.PreservePhrases != nil {
		t.Error("default config should not replace built-in tables")
	}
	if cfg.Conversion.RefreshRegions || cfg.Conversion.Verify {
		t.Error("default config should not enable opt-in features")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error should name the field, got %q", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Value ranges and compilable patterns
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr []error
	}{
		{
			name: "full valid config",
			cfg: Config{
				Input:   InputConfig{DefaultDir: "docs"},
				Workers: 4,
				Conversion: ConversionConfig{
					WindowSize:           intPtr(50),
					PreservePhrases:      []string{`color picker`},
					ExtraPreservePhrases: []string{`Center for \w+`},
					Rules:                []RuleConfig{{From: "color", To: "colour"}},
					ExtraRules:           []RuleConfig{{From: "license", To: "licence", FollowedBy: `\s+file`}},
					RefreshRegions:       true,
					Verify:               true,
				},
			},
		},
		{
			name: "zero window",
			cfg:  Config{Conversion: ConversionConfig{WindowSize: intPtr(0)}},
		},
		{
			name:    "negative window",
			cfg:     Config{Conversion: ConversionConfig{WindowSize: intPtr(-1)}},
			wantErr: []error{ErrInvalidConfig},
		},
		{
			name:    "negative workers",
			cfg:     Config{Workers: -1},
			wantErr: []error{ErrInvalidConfig},
		},
		{
			name:    "too many workers",
			cfg:     Config{Workers: MaxWorkers + 1},
			wantErr: []error{ErrInvalidConfig},
		},
		{
			name:    "invalid phrase regexp",
			cfg:     Config{Conversion: ConversionConfig{ExtraPreservePhrases: []string{"color("}}},
			wantErr: []error{ErrInvalidConfig, pipeline.ErrInvalidPhrase},
		},
		{
			name:    "empty phrase",
			cfg:     Config{Conversion: ConversionConfig{PreservePhrases: []string{""}}},
			wantErr: []error{ErrInvalidConfig, pipeline.ErrInvalidPhrase},
		},
		{
			name:    "multi-word rule source",
			cfg:     Config{Conversion: ConversionConfig{ExtraRules: []RuleConfig{{From: "gray area", To: "grey area"}}}},
			wantErr: []error{ErrInvalidConfig, pipeline.ErrInvalidRule},
		},
		{
			name:    "missing replacement",
			cfg:     Config{Conversion: ConversionConfig{Rules: []RuleConfig{{From: "gray"}}}},
			wantErr: []error{ErrInvalidConfig, pipeline.ErrInvalidRule},
		},
		{
			name:    "bad followedBy",
			cfg:     Config{Conversion: ConversionConfig{Rules: []RuleConfig{{From: "license", To: "licence", FollowedBy: "("}}}},
			wantErr: []error{ErrInvalidConfig, pipeline.ErrInvalidRule},
		},
		{
			name:    "input dir too long",
			cfg:     Config{Input: InputConfig{DefaultDir: strings.Repeat("d", MaxPathLength+1)}},
			wantErr: []error{ErrFieldTooLong},
		},
		{
			name:    "rule word too long",
			cfg:     Config{Conversion: ConversionConfig{ExtraRules: []RuleConfig{{From: strings.Repeat("a", MaxWordLength+1), To: "b"}}}},
			wantErr: []error{ErrFieldTooLong},
		},
		{
			name:    "phrase too long",
			cfg:     Config{Conversion: ConversionConfig{PreservePhrases: []string{strings.Repeat("a", MaxPhraseLength+1)}}},
			wantErr: []error{ErrFieldTooLong},
		},
		{
			name:    "too many rules",
			cfg:     Config{Conversion: ConversionConfig{ExtraRules: make([]RuleConfig, MaxRules+1)}},
			wantErr: []error{ErrInvalidConfig},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Validate() error = %v, want %v", err, want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File and name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "team.yaml", `input:
  defaultDir: "docs"
workers: 3
conversion:
  windowSize: 40
  extraPreservePhrases:
    - "color picker"
  extraRules:
    - from: catalog
      to: catalogue
  refreshRegions: true
  verify: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "docs" {
			t.Errorf("Input.DefaultDir = %q, want docs", cfg.Input.DefaultDir)
		}
		if cfg.Workers != 3 {
			t.Errorf("Workers = %d, want 3", cfg.Workers)
		}
		conv := cfg.Conversion
		if conv.WindowSize == nil || *conv.WindowSize != 40 {
			t.Errorf("WindowSize = %v, want 40", conv.WindowSize)
		}
		if len(conv.ExtraPreservePhrases) != 1 || conv.ExtraPreservePhrases[0] != "color picker" {
			t.Errorf("ExtraPreservePhrases = %v", conv.ExtraPreservePhrases)
		}
		if len(conv.ExtraRules) != 1 || conv.ExtraRules[0] != (RuleConfig{From: "catalog", To: "catalogue"}) {
			t.Errorf("ExtraRules = %+v", conv.ExtraRules)
		}
		if conv.Rules != nil {
			t.Errorf("Rules = %+v, want nil (built-in table kept)", conv.Rules)
		}
		if !conv.RefreshRegions || !conv.Verify {
			t.Error("RefreshRegions and Verify should be true")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "conversion: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "conversion:\n  window_size: 10\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "bad.yaml", "conversion:\n  windowSize: -5\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits not enforced")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "workers: 1\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})
}

// Changes the working directory, so it does not run in parallel.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("yaml in current directory", func(t *testing.T) {
		writeConfig(t, dir, "byname.yaml", "workers: 2\n")
		cfg, err := LoadConfig("byname")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Workers)
		}
	})

	t.Run("yml fallback", func(t *testing.T) {
		writeConfig(t, dir, "short.yml", "workers: 5\n")
		cfg, err := LoadConfig("short")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workers != 5 {
			t.Errorf("Workers = %d, want 5", cfg.Workers)
		}
	})

	t.Run("yaml preferred over yml", func(t *testing.T) {
		writeConfig(t, dir, "both.yaml", "workers: 7\n")
		writeConfig(t, dir, "both.yml", "workers: 8\n")
		cfg, err := LoadConfig("both")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workers != 7 {
			t.Errorf("Workers = %d, want 7", cfg.Workers)
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		_, err := LoadConfig("nothing-here-md2gb")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nothing-here-md2gb.yaml") || !strings.Contains(err.Error(), "nothing-here-md2gb.yml") {
			t.Errorf("error should list tried paths, got %q", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("team")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local paths", paths)
	}
	if paths[0] != "team.yaml" || paths[1] != "team.yml" {
		t.Errorf("local paths = %v, want team.yaml then team.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if filepath.Base(filepath.Dir(p)) != appDir {
			t.Errorf("user path %q not under %s", p, appDir)
		}
	}
}
