package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bankimport/internal/dedup"
	"github.com/cleared-dev/bankimport/internal/model"
)

// FileName is the config file at the root of an import repo.
const FileName = "bankimport.yaml"

// Config represents the top-level bankimport.yaml configuration.
type Config struct {
	PlanID           string          `yaml:"plan_id"`
	DefaultBucketID  string          `yaml:"default_bucket_id"`
	DefaultFrequency model.Frequency `yaml:"default_frequency"`
	CurrencyCode     string          `yaml:"currency_code,omitempty"`
	CSV              CSVConfig       `yaml:"csv"`
	Dedup            DedupConfig     `yaml:"dedup"`
	CategoriesFile   string          `yaml:"categories_file,omitempty"`
	Log              LogConfig       `yaml:"log"`
	Git              GitConfig       `yaml:"git"`
}

// CSVConfig controls how CSV exports are read.
type CSVConfig struct {
	TreatPositiveAsExpense bool          `yaml:"treat_positive_as_expense"`
	Mapping                MappingConfig `yaml:"mapping"`
}

// MappingConfig pins column indexes. -1 leaves a role to header inference;
// the mapping is only used when date, description and amount are all set.
type MappingConfig struct {
	Date        int `yaml:"date"`
	Description int `yaml:"description"`
	Amount      int `yaml:"amount"`
	Category    int `yaml:"category"`
}

// Explicit reports whether the mapping pins the required columns.
func (m MappingConfig) Explicit() bool {
	return m.Date >= 0 && m.Description >= 0 && m.Amount >= 0
}

// DedupConfig controls duplicate detection.
type DedupConfig struct {
	DescriptionLength int `yaml:"description_length"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a bankimport.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new import repo.
func Default(planID string) *Config {
	return &Config{
		PlanID:           planID,
		DefaultBucketID:  "unassigned",
		DefaultFrequency: model.FrequencyMonthly,
		CurrencyCode:     "USD",
		CSV: CSVConfig{
			Mapping: MappingConfig{Date: -1, Description: -1, Amount: -1, Category: -1},
		},
		Dedup: DedupConfig{
			DescriptionLength: dedup.DefaultDescriptionLength,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Bank Import",
			AuthorEmail: "bankimport@localhost",
		},
	}
}

// Validate checks field values that YAML decoding cannot.
func (c *Config) Validate() error {
	var errs []error
	if c.DefaultFrequency != "" && !c.DefaultFrequency.Valid() {
		errs = append(errs, fmt.Errorf("default_frequency: unknown frequency %q", c.DefaultFrequency))
	}
	if c.CurrencyCode != "" {
		if _, err := currency.ParseISO(c.CurrencyCode); err != nil {
			errs = append(errs, fmt.Errorf("currency_code: %w", err))
		}
	}
	m := c.CSV.Mapping
	if set := countSet(m.Date, m.Description, m.Amount); set != 0 && set != 3 {
		errs = append(errs, errors.New("csv.mapping: date, description and amount must be set together"))
	}
	if m.Category >= 0 && !m.Explicit() {
		errs = append(errs, errors.New("csv.mapping: category requires date, description and amount"))
	}
	if c.Dedup.DescriptionLength < 0 {
		errs = append(errs, fmt.Errorf("dedup.description_length: must not be negative, got %d", c.Dedup.DescriptionLength))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func countSet(cols ...int) int {
	n := 0
	for _, c := range cols {
		if c >= 0 {
			n++
		}
	}
	return n
}
