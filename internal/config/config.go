package config

import (
	"os"
	"path/filepath"

	"github.com/andy/garagebill/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Shop identity pre-filled on every new invoice
	Workshop WorkshopConfig `yaml:"workshop"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Print hand-off
	Print PrintConfig `yaml:"print"`

	// Log output
	Log LogConfig `yaml:"log"`
}

type WorkshopConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

type InvoiceConfig struct {
	NumberPrefix string `yaml:"number_prefix"` // Invoice number prefix (e.g., "INV")
	NumberWidth  int    `yaml:"number_width"`  // Zero-padded digits after the prefix
	Currency     string `yaml:"currency"`      // Symbol shown before amounts
	OutputDir    string `yaml:"output_dir"`    // Directory for printed invoices and exports
}

type PrintConfig struct {
	Command string `yaml:"command"` // Run with the HTML path after printing (e.g., "xdg-open")
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Path   string `yaml:"path"`   // file path, stderr, or off
	Format string `yaml:"format"` // json or console
}

// DefaultConfigPath returns ~/.config/garagebill/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "garagebill", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "garagebill", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	base := filepath.Join(homeDir, ".config", "garagebill")

	return &Config{
		Workshop: WorkshopConfig{
			Name:    "AUTO SERVICE CENTER",
			Address: "Jakatnaka, Surat, Gujarat",
			Phone:   "+91 98765 43210",
			Email:   "info@autoservice.com",
		},
		Invoice: InvoiceConfig{
			NumberPrefix: "INV",
			NumberWidth:  4,
			Currency:     "₹",
			OutputDir:    filepath.Join(base, "invoices"),
		},
		Print: PrintConfig{
			Command: "",
		},
		Log: LogConfig{
			Level:  "info",
			Path:   filepath.Join(base, "garagebill.log"),
			Format: "json",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the invoice output directory
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Invoice.OutputDir, 0755)
}

// Shop returns the workshop section as the header for new invoices
func (c *Config) Shop() domain.ShopIdentity {
	return domain.ShopIdentity{
		WorkshopName: c.Workshop.Name,
		Address:      c.Workshop.Address,
		Phone:        c.Workshop.Phone,
		Email:        c.Workshop.Email,
	}
}
