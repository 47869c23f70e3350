package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/toai/internal/classify"
	"github.com/temirov/toai/internal/types"
	"github.com/temirov/toai/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration read from one or more YAML files.
// Pointer fields distinguish unset values from explicit zero values during merges.
type ApplicationConfiguration struct {
	Output           string             `mapstructure:"output"`
	MaxTotalLines    *int               `mapstructure:"max_total_lines"`
	MaxFileLines     *int               `mapstructure:"max_file_lines"`
	IncludeStructure *bool              `mapstructure:"include_structure_overview"`
	Paths            PathConfiguration  `mapstructure:"paths"`
	Tokens           TokenConfiguration `mapstructure:"tokens"`
	Clipboard        *bool              `mapstructure:"clipboard"`
	Journal          string             `mapstructure:"journal"`
}

// PathConfiguration extends the built-in ignore-set and extension lists.
type PathConfiguration struct {
	Ignore            []string `mapstructure:"ignore"`
	ArchiveExtensions []string `mapstructure:"archive_extensions"`
	BinaryExtensions  []string `mapstructure:"binary_extensions"`
	UseGitignore      *bool    `mapstructure:"use_gitignore"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Settings is the fully resolved configuration of one run.
type Settings struct {
	OutputPath        string
	MaxTotalLines     int
	MaxFileLines      int
	IncludeStructure  bool
	IgnoreNames       []string
	ArchiveExtensions []string
	BinaryExtensions  []string
	UseGitignore      bool
	TokensEnabled     bool
	TokenModel        string
	Clipboard         bool
	JournalPath       string
}

// LoadApplicationConfiguration loads configuration from global and local files.
// Later sources override earlier scalar values; list values accumulate.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, types.GlobalConfigDirectory, types.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	ignoreListNames, ignoreListErr := LoadIgnoreList(filepath.Join(workingDirectory, types.IgnoreListFileName))
	if ignoreListErr != nil {
		return ApplicationConfiguration{}, ignoreListErr
	}
	merged.Paths.Ignore = utils.DeduplicateNames(append(merged.Paths.Ignore, ignoreListNames...))

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, types.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.MaxTotalLines != nil {
		result.MaxTotalLines = cloneInt(override.MaxTotalLines)
	}
	if override.MaxFileLines != nil {
		result.MaxFileLines = cloneInt(override.MaxFileLines)
	}
	if override.IncludeStructure != nil {
		result.IncludeStructure = cloneBool(override.IncludeStructure)
	}
	result.Paths = result.Paths.merge(override.Paths)
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Journal != "" {
		result.Journal = override.Journal
	}
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	result.Ignore = utils.DeduplicateNames(append(append([]string{}, config.Ignore...), override.Ignore...))
	result.ArchiveExtensions = utils.DeduplicateNames(append(append([]string{}, config.ArchiveExtensions...), override.ArchiveExtensions...))
	result.BinaryExtensions = utils.DeduplicateNames(append(append([]string{}, config.BinaryExtensions...), override.BinaryExtensions...))
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// Resolve applies built-in defaults to the configuration.
// The output document's own name always joins the ignore-set.
func (config ApplicationConfiguration) Resolve(workingDirectory string) Settings {
	outputPath := strings.TrimSpace(config.Output)
	if outputPath == "" {
		outputPath = types.DefaultOutputFileName
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(workingDirectory, outputPath)
	}

	ignoreNames := append(append([]string{}, classify.DefaultIgnoredNames...), filepath.Base(outputPath))
	ignoreNames = utils.DeduplicateNames(append(ignoreNames, config.Paths.Ignore...))

	tokenModel := config.Tokens.Model
	if tokenModel == "" {
		tokenModel = types.DefaultTokenizerModel
	}

	return Settings{
		OutputPath:        outputPath,
		MaxTotalLines:     intOrDefault(config.MaxTotalLines, types.DefaultMaxTotalLines),
		MaxFileLines:      intOrDefault(config.MaxFileLines, types.DefaultMaxFileLines),
		IncludeStructure:  boolOrDefault(config.IncludeStructure, true),
		IgnoreNames:       ignoreNames,
		ArchiveExtensions: utils.DeduplicateNames(append(append([]string{}, classify.DefaultArchiveExtensions...), config.Paths.ArchiveExtensions...)),
		BinaryExtensions:  utils.DeduplicateNames(append(append([]string{}, classify.DefaultBinaryExtensions...), config.Paths.BinaryExtensions...)),
		UseGitignore:      boolOrDefault(config.Paths.UseGitignore, true),
		TokensEnabled:     boolOrDefault(config.Tokens.Enabled, false),
		TokenModel:        tokenModel,
		Clipboard:         boolOrDefault(config.Clipboard, false),
		JournalPath:       resolveOptionalPath(workingDirectory, config.Journal),
	}
}

func resolveOptionalPath(workingDirectory string, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(workingDirectory, trimmed)
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
