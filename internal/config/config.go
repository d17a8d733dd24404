// =============================================================================
// Fechamento - Configuration Module
// =============================================================================
//
// Loads the application configuration from a YAML file and fills in the
// defaults the original deployment used: spreadsheets under
// <root>/planilha, reports under <root>/relatorios and the SQLite file at
// <root>/data/fechamento.db. A missing config file is not an error; the
// defaults alone describe a complete, runnable setup.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Root is the day root directory the relative paths below resolve
	// against. Usually supplied per run via --root rather than the file.
	Root string `yaml:"root"`

	// InputSubdir is the subdirectory of the root holding the day's
	// spreadsheets. Default: "planilha".
	InputSubdir string `yaml:"input_subdir"`

	// ReportsSubdir is the subdirectory receiving generated reports.
	// Default: "relatorios".
	ReportsSubdir string `yaml:"reports_subdir"`

	// DatabasePath is the SQLite file location. Relative paths resolve
	// against the root. Default: "data/fechamento.db".
	DatabasePath string `yaml:"database_path"`

	// InputExtensions lists the accepted spreadsheet extensions.
	// Default: [".xlsx"].
	InputExtensions []string `yaml:"input_extensions"`

	// ColumnAliases extends the built-in header alias table. Keys are
	// canonical field names, values are extra accepted spellings.
	ColumnAliases map[string][]string `yaml:"column_aliases"`

	// CurrencySymbol is printed before report totals. Default: "R$".
	CurrencySymbol string `yaml:"currency_symbol"`

	// LogLevel controls verbosity: debug, info, warn or error.
	// Default: "info". The --verbose flag overrides it to debug.
	LogLevel string `yaml:"log_level"`

	// Notify configures the post-run confirmation message.
	Notify NotifyConfig `yaml:"notify"`
}

// NotifyConfig describes the outbound confirmation sent after a successful
// run. The actual delivery mechanism lives outside the pipeline; see
// internal/notify.
type NotifyConfig struct {
	// Enabled turns the post-run notification on.
	Enabled bool `yaml:"enabled"`

	// From and To are the sender and recipient addresses.
	From string   `yaml:"from"`
	To   []string `yaml:"to"`

	// Subject of the confirmation message.
	// Default: "Fechamento de Caixa - Confirmação".
	Subject string `yaml:"subject"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Root:            ".",
		InputSubdir:     "planilha",
		ReportsSubdir:   "relatorios",
		DatabasePath:    filepath.Join("data", "fechamento.db"),
		InputExtensions: []string{".xlsx"},
		CurrencySymbol:  "R$",
		LogLevel:        "info",
		Notify: NotifyConfig{
			Subject: "Fechamento de Caixa - Confirmação",
		},
	}
}

// Load reads the configuration at path. A nonexistent file yields the
// defaults; a present but malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyDefaults refills fields an explicit file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Root == "" {
		c.Root = def.Root
	}
	if c.InputSubdir == "" {
		c.InputSubdir = def.InputSubdir
	}
	if c.ReportsSubdir == "" {
		c.ReportsSubdir = def.ReportsSubdir
	}
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if len(c.InputExtensions) == 0 {
		c.InputExtensions = def.InputExtensions
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = def.CurrencySymbol
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Notify.Subject == "" {
		c.Notify.Subject = def.Notify.Subject
	}
}

// validate rejects values the pipeline cannot work with.
func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	for _, ext := range c.InputExtensions {
		if ext == "" || ext[0] != '.' {
			return fmt.Errorf("input extension %q must start with a dot", ext)
		}
	}
	if c.Notify.Enabled && len(c.Notify.To) == 0 {
		return fmt.Errorf("notify.enabled requires at least one notify.to recipient")
	}
	return nil
}

// InputDir resolves the spreadsheet directory for the given day root.
func (c *Config) InputDir(root string) string {
	return filepath.Join(root, c.InputSubdir)
}

// ReportsDir resolves the reports directory for the given day root.
func (c *Config) ReportsDir(root string) string {
	return filepath.Join(root, c.ReportsSubdir)
}

// Database resolves the SQLite file location for the given day root.
func (c *Config) Database(root string) string {
	if filepath.IsAbs(c.DatabasePath) {
		return c.DatabasePath
	}
	return filepath.Join(root, c.DatabasePath)
}
