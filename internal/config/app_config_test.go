package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/toai/internal/types"
)

type configTestCase struct {
	name               string
	globalContent      string
	localContent       string
	explicitPath       string
	explicitContent    string
	ignoreListContent  string
	expectOutput       string
	expectMaxTotal     *int
	expectStructure    *bool
	expectTokens       *bool
	expectModel        string
	expectClipboard    *bool
	expectIgnore       []string
	expectUseGitignore *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:            "local_overrides_global",
			globalContent:   "output: global.md\nmax_total_lines: 200\ninclude_structure_overview: false\nclipboard: true\n",
			localContent:    "output: local.md\ntokens:\n  enabled: true\n  model: custom\nclipboard: false\n",
			expectOutput:    "local.md",
			expectMaxTotal:  intPointer(200),
			expectStructure: boolPointer(false),
			expectTokens:    boolPointer(true),
			expectModel:     "custom",
			expectClipboard: boolPointer(false),
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "max_total_lines: 50\n",
			localContent:    "output: ignored.md\n",
			explicitPath:    "custom.yaml",
			explicitContent: "output: explicit.md\n",
			expectOutput:    "explicit.md",
			expectMaxTotal:  intPointer(50),
		},
		{
			name:          "ignore_lists_accumulate",
			globalContent: "paths:\n  ignore:\n    - dist\n",
			localContent:  "paths:\n  ignore:\n    - build\n    - dist\n  use_gitignore: false\n",
			ignoreListContent: "# generated\n" +
				"coverage/\n",
			expectIgnore:       []string{"dist", "build", "coverage"},
			expectUseGitignore: boolPointer(false),
		},
		{
			name:           "zero_limit_is_kept",
			localContent:   "max_total_lines: 0\n",
			expectMaxTotal: intPointer(0),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, types.GlobalConfigDirectory)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, types.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, types.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}
			if testCase.ignoreListContent != "" {
				target := filepath.Join(workingDir, types.IgnoreListFileName)
				if err := os.WriteFile(target, []byte(testCase.ignoreListContent), 0o600); err != nil {
					t.Fatalf("write ignore list: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Output != testCase.expectOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectOutput, loadedConfig.Output)
			}
			assertIntPointer(t, "max_total_lines", loadedConfig.MaxTotalLines, testCase.expectMaxTotal)
			assertBoolPointer(t, "include_structure_overview", loadedConfig.IncludeStructure, testCase.expectStructure)
			assertBoolPointer(t, "tokens.enabled", loadedConfig.Tokens.Enabled, testCase.expectTokens)
			assertBoolPointer(t, "clipboard", loadedConfig.Clipboard, testCase.expectClipboard)
			assertBoolPointer(t, "paths.use_gitignore", loadedConfig.Paths.UseGitignore, testCase.expectUseGitignore)
			if loadedConfig.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Tokens.Model)
			}
			if len(testCase.expectIgnore) > 0 && !reflect.DeepEqual(loadedConfig.Paths.Ignore, testCase.expectIgnore) {
				t.Fatalf("expected ignore %v, got %v", testCase.expectIgnore, loadedConfig.Paths.Ignore)
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	if err := os.WriteFile(filepath.Join(workingDir, types.ConfigFileName), []byte("output: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected malformed configuration to fail")
	}
}

func TestResolveAppliesDefaults(t *testing.T) {
	workingDir := t.TempDir()
	settings := ApplicationConfiguration{}.Resolve(workingDir)

	if settings.OutputPath != filepath.Join(workingDir, types.DefaultOutputFileName) {
		t.Fatalf("unexpected output path %s", settings.OutputPath)
	}
	if settings.MaxTotalLines != types.DefaultMaxTotalLines || settings.MaxFileLines != types.DefaultMaxFileLines {
		t.Fatalf("unexpected limits %d/%d", settings.MaxTotalLines, settings.MaxFileLines)
	}
	if !settings.IncludeStructure || !settings.UseGitignore {
		t.Fatalf("expected structure and gitignore enabled by default")
	}
	if settings.TokensEnabled || settings.Clipboard {
		t.Fatalf("expected tokens and clipboard disabled by default")
	}
	if settings.TokenModel != types.DefaultTokenizerModel {
		t.Fatalf("unexpected model %s", settings.TokenModel)
	}
	if settings.JournalPath != "" {
		t.Fatalf("expected no journal path, got %s", settings.JournalPath)
	}
	if !containsName(settings.IgnoreNames, types.DefaultOutputFileName) || !containsName(settings.IgnoreNames, "node_modules") {
		t.Fatalf("expected default ignore names, got %v", settings.IgnoreNames)
	}
}

func TestResolveHonorsOverrides(t *testing.T) {
	workingDir := t.TempDir()
	configuration := ApplicationConfiguration{
		Output:        "snapshot.md",
		MaxTotalLines: intPointer(10),
		Paths:         PathConfiguration{Ignore: []string{"dist"}, BinaryExtensions: []string{".wasm"}},
		Journal:       "notes/journal.md",
	}
	settings := configuration.Resolve(workingDir)

	if settings.OutputPath != filepath.Join(workingDir, "snapshot.md") {
		t.Fatalf("unexpected output path %s", settings.OutputPath)
	}
	if settings.MaxTotalLines != 10 {
		t.Fatalf("expected max total lines 10, got %d", settings.MaxTotalLines)
	}
	if !containsName(settings.IgnoreNames, "snapshot.md") || !containsName(settings.IgnoreNames, "dist") {
		t.Fatalf("expected output and configured names ignored, got %v", settings.IgnoreNames)
	}
	if !containsName(settings.BinaryExtensions, ".wasm") || !containsName(settings.BinaryExtensions, ".exe") {
		t.Fatalf("expected extended binary extensions, got %v", settings.BinaryExtensions)
	}
	if settings.JournalPath != filepath.Join(workingDir, "notes", "journal.md") {
		t.Fatalf("unexpected journal path %s", settings.JournalPath)
	}
}

func assertBoolPointer(t *testing.T, key string, actual *bool, expected *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override", key)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", key)
	}
}

func assertIntPointer(t *testing.T, key string, actual *int, expected *int) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override", key)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", key)
	}
}

func containsName(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}
