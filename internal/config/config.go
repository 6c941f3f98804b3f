package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the working directory when no path is given
const DefaultConfigFile = "goto-endpoint.yaml"

// CacheDirName is the cache directory created under the project root by default
const CacheDirName = ".goto-endpoint"

// LogFileName is the log file written inside the cache directory
const LogFileName = "goto-endpoint.log"

// Report formats accepted in output.formats
const (
	FormatExcel   = "excel"
	FormatWord    = "word"
	FormatHTML    = "html"
	FormatOpenAPI = "openapi"
)

// SupportedFormats lists every report format in output order
var SupportedFormats = []string{FormatExcel, FormatWord, FormatHTML, FormatOpenAPI}

var supportedEncodings = []string{"auto", "utf-8", "euc-kr", "cp949", "ms949"}

var supportedBackends = []string{"bolt", "json"}

// Config represents the application configuration
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Index   IndexConfig   `mapstructure:"index"`
	Search  SearchConfig  `mapstructure:"search"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Output  OutputConfig  `mapstructure:"output"`

	// File the values were read from, "" when only defaults apply
	ConfigFile string `mapstructure:"-"`
}

// ProjectConfig holds project-specific settings
type ProjectConfig struct {
	RootDir      string   `mapstructure:"root_dir"`      // Root directory to index
	IncludeGlobs []string `mapstructure:"include_globs"` // Files to index (relative to root_dir)
	ExcludeGlobs []string `mapstructure:"exclude_globs"` // Files and directories to skip
	Encoding     string   `mapstructure:"encoding"`      // auto, utf-8, euc-kr (cp949, ms949)
}

// IndexConfig holds index behavior settings
type IndexConfig struct {
	ConcurrencyLimit int    `mapstructure:"concurrency_limit"` // Parallel file workers
	EnableCache      bool   `mapstructure:"enable_cache"`      // Reuse endpoints of unchanged files
	CacheDir         string `mapstructure:"cache_dir"`         // Default: <root_dir>/.goto-endpoint
	CacheBackend     string `mapstructure:"cache_backend"`     // bolt or json
}

// SearchConfig holds search settings
type SearchConfig struct {
	Limit int `mapstructure:"limit"` // Max results, 0 = unlimited
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"` // Quiet period per file
}

// OutputConfig holds report settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // Output file name (without extension)
	Formats  []string `mapstructure:"formats"`   // Reports written by export
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for goto-endpoint.yaml in the current
// directory; a missing file is not an error. rootDir, when set, overrides
// project.root_dir. GOTO_ENDPOINT_* environment variables override the file
// (e.g. GOTO_ENDPOINT_INDEX_CACHE_BACKEND=json).
func Load(configPath, rootDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("GOTO_ENDPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}
	v.SetConfigFile(configPath)

	configFile := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || os.IsNotExist(err) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file: defaults
	} else {
		configFile = v.ConfigFileUsed()
	}

	if rootDir != "" {
		v.Set("project.root_dir", rootDir)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigFile = configFile

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	// Project defaults
	v.SetDefault("project.root_dir", ".")
	v.SetDefault("project.include_globs", []string{"**/*.java"})
	v.SetDefault("project.exclude_globs", []string{
		"**/test/**",
		"**/tests/**",
		"**/target/**",
		"**/build/**",
		"**/out/**",
		"**/node_modules/**",
	})
	v.SetDefault("project.encoding", "auto")

	// Index defaults
	v.SetDefault("index.concurrency_limit", 20)
	v.SetDefault("index.enable_cache", true)
	v.SetDefault("index.cache_dir", "")
	v.SetDefault("index.cache_backend", "bolt")

	// Search defaults
	v.SetDefault("search.limit", 0)

	// Watch defaults
	v.SetDefault("watch.debounce", 500*time.Millisecond)

	// Output defaults
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "endpoints-report")
	v.SetDefault("output.formats", []string{FormatExcel})
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absRoot, err := filepath.Abs(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	if c.Index.CacheDir == "" {
		c.Index.CacheDir = filepath.Join(absRoot, CacheDirName)
	}
	absCache, err := filepath.Abs(c.Index.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to resolve index.cache_dir: %w", err)
	}
	c.Index.CacheDir = absCache

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	c.Project.Encoding = strings.ToLower(strings.TrimSpace(c.Project.Encoding))
	c.Index.CacheBackend = strings.ToLower(strings.TrimSpace(c.Index.CacheBackend))
	for i, f := range c.Output.Formats {
		c.Output.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// GetOutputPath returns the full path of a report file with the given extension
func (c *Config) GetOutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+ext)
}

// LogFilePath returns the log file location
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Index.CacheDir, LogFileName)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	info, err := os.Stat(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("root_dir is not a directory: %s", c.Project.RootDir)
	}

	if !slices.Contains(supportedEncodings, c.Project.Encoding) {
		return fmt.Errorf("project.encoding %q is not supported (expected one of %v)", c.Project.Encoding, supportedEncodings)
	}

	for _, pattern := range slices.Concat(c.Project.IncludeGlobs, c.Project.ExcludeGlobs) {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fmt.Errorf("project globs: malformed pattern %q", pattern)
		}
	}

	if c.Index.ConcurrencyLimit < 1 {
		return fmt.Errorf("index.concurrency_limit must be at least 1, got %d", c.Index.ConcurrencyLimit)
	}

	if !slices.Contains(supportedBackends, c.Index.CacheBackend) {
		return fmt.Errorf("index.cache_backend %q is not supported (expected one of %v)", c.Index.CacheBackend, supportedBackends)
	}

	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit cannot be negative")
	}

	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}

	for _, f := range c.Output.Formats {
		if !slices.Contains(SupportedFormats, f) {
			return fmt.Errorf("output.formats: unknown format %q (expected one of %v)", f, SupportedFormats)
		}
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	source := c.ConfigFile
	if source == "" {
		source = "(defaults)"
	}
	fmt.Println("=== goto-endpoint Configuration ===")
	fmt.Printf("Config File:      %s\n", source)
	fmt.Printf("Project Root:     %s\n", c.Project.RootDir)
	fmt.Printf("Include Globs:    %v\n", c.Project.IncludeGlobs)
	fmt.Printf("Exclude Globs:    %v\n", c.Project.ExcludeGlobs)
	fmt.Printf("Encoding:         %s\n", c.Project.Encoding)
	fmt.Printf("Concurrency:      %d\n", c.Index.ConcurrencyLimit)
	fmt.Printf("Cache:            %v (%s, %s)\n", c.Index.EnableCache, c.Index.CacheBackend, c.Index.CacheDir)
	fmt.Printf("Search Limit:     %d\n", c.Search.Limit)
	fmt.Printf("Watch Debounce:   %v\n", c.Watch.Debounce)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Println("===================================")
}
