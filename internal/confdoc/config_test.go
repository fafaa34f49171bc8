package confdoc_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/logging"
)

func loadConfig(t *testing.T, input confdoc.LoadConfigInput) confdoc.Config {
	t.Helper()

	cfg, err := confdoc.LoadConfig(input)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := loadConfig(t, confdoc.LoadConfigInput{WorkDirOverride: dir, Env: map[string]string{}})

	want := confdoc.Config{
		ConfigFile:    "config.json",
		LogName:       "confdoc",
		LogLevel:      "warn",
		EffectiveCwd:  dir,
		ConfigFileAbs: filepath.Join(dir, "config.json"),
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeFile(t, filepath.Join(xdg, "confdoc", "config.json"), `{
		"config_file": "global.json",
		"log_name": "global-name",
		"pretty": true,
	}`)
	writeFile(t, filepath.Join(dir, ".confdoc.json"), `{
		// project wins over global
		"config_file": "project.json",
		"log_level": "info",
	}`)

	env := map[string]string{"XDG_CONFIG_HOME": xdg}

	cfg := loadConfig(t, confdoc.LoadConfigInput{WorkDirOverride: dir, Env: env})

	want := confdoc.Config{
		ConfigFile:    "project.json",
		LogName:       "global-name",
		LogLevel:      "info",
		Pretty:        true,
		EffectiveCwd:  dir,
		ConfigFileAbs: filepath.Join(dir, "project.json"),
		Sources: confdoc.ConfigSources{
			Global:  filepath.Join(xdg, "confdoc", "config.json"),
			Project: filepath.Join(dir, ".confdoc.json"),
		},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}

	cfg = loadConfig(t, confdoc.LoadConfigInput{
		WorkDirOverride:  dir,
		DocumentOverride: "/abs/cli.json",
		LogFileOverride:  "logs/confdoc.log",
		LogLevelOverride: "trace",
		Env:              env,
	})

	if cfg.ConfigFileAbs != "/abs/cli.json" {
		t.Fatalf("ConfigFileAbs=%q", cfg.ConfigFileAbs)
	}

	if cfg.LogFileAbs != filepath.Join(dir, "logs", "confdoc.log") {
		t.Fatalf("LogFileAbs=%q", cfg.LogFileAbs)
	}

	if cfg.LogLevel != "trace" {
		t.Fatalf("LogLevel=%q", cfg.LogLevel)
	}
}

func TestLoadConfig_ProjectCanTurnPrettyOff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "confdoc", "config.json"), `{"pretty": true}`)
	writeFile(t, filepath.Join(dir, ".confdoc.json"), `{"pretty": false}`)

	cfg := loadConfig(t, confdoc.LoadConfigInput{WorkDirOverride: dir, Env: map[string]string{"HOME": home}})

	if cfg.Pretty {
		t.Fatal("project config should override pretty=true from global")
	}
}

func TestLoadConfig_ExplicitConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".confdoc.json"), `{"config_file": "ignored.json"}`)
	writeFile(t, filepath.Join(dir, "custom.json"), `{"config_file": "custom-doc.json"}`)

	cfg := loadConfig(t, confdoc.LoadConfigInput{WorkDirOverride: dir, ConfigPath: "custom.json"})

	if cfg.ConfigFile != "custom-doc.json" {
		t.Fatalf("ConfigFile=%q", cfg.ConfigFile)
	}

	if cfg.Sources.Project != filepath.Join(dir, "custom.json") {
		t.Fatalf("Sources.Project=%q", cfg.Sources.Project)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		project string
		input   confdoc.LoadConfigInput
		wantErr error
		wantMsg string
	}{
		{
			name:    "explicit config missing",
			input:   confdoc.LoadConfigInput{ConfigPath: "nonexistent.json"},
			wantErr: confdoc.ErrConfigFileNotFound,
		},
		{
			name:    "invalid json",
			project: `{invalid json}`,
			wantErr: confdoc.ErrConfigInvalid,
			wantMsg: "invalid JSONC",
		},
		{
			name:    "wrong type",
			project: `{"config_file": 7}`,
			wantErr: confdoc.ErrConfigInvalid,
			wantMsg: "invalid JSON",
		},
		{
			name:    "explicitly empty document path",
			project: `{"config_file": ""}`,
			wantErr: confdoc.ErrDocumentPathEmpty,
		},
		{
			name:    "unknown log level",
			project: `{"log_level": "loud"}`,
			wantErr: logging.ErrUnknownLevel,
		},
		{
			name:    "unknown log level from cli",
			input:   confdoc.LoadConfigInput{LogLevelOverride: "shouty"},
			wantErr: logging.ErrUnknownLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tc.project != "" {
				writeFile(t, filepath.Join(dir, ".confdoc.json"), tc.project)
			}

			input := tc.input
			input.WorkDirOverride = dir

			_, err := confdoc.LoadConfig(input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v, want %v", err, tc.wantErr)
			}

			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("err=%v should contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestFormatConfig_OmitsResolvedFields(t *testing.T) {
	t.Parallel()

	cfg := confdoc.DefaultConfig()
	cfg.EffectiveCwd = "/somewhere"

	out, err := confdoc.FormatConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "/somewhere") {
		t.Fatalf("resolved fields should not be serialized:\n%s", out)
	}

	for _, key := range []string{`"config_file": "config.json"`, `"log_level": "warn"`, `"pretty": false`} {
		if !strings.Contains(out, key) {
			t.Fatalf("missing %s in:\n%s", key, out)
		}
	}
}
