package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/foreclosure/borrower"
	"github.com/rustyeddy/foreclosure/loan"
	"github.com/rustyeddy/foreclosure/sim"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config represents the complete simulation configuration
type Config struct {
	Loan       LoanConfig       `json:"loan" yaml:"loan"`
	Borrower   BorrowerConfig   `json:"borrower" yaml:"borrower"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

type LoanConfig struct {
	Balance        float64 `json:"balance" yaml:"balance"`
	MonthlyPayment float64 `json:"monthly_payment" yaml:"monthly_payment"`
	ForecloseAfter int     `json:"foreclose_after" yaml:"foreclose_after"`
	MissPolicy     string  `json:"miss_policy" yaml:"miss_policy"` // "cumulative" or "consecutive"
}

type BorrowerConfig struct {
	Funds         float64 `json:"funds" yaml:"funds"`
	MonthlyIncome float64 `json:"monthly_income" yaml:"monthly_income"`
}

// SimulationConfig controls the month loop.
type SimulationConfig struct {
	StartDate string `json:"start_date" yaml:"start_date"` // YYYY-MM-DD
	Payday    string `json:"payday" yaml:"payday"`         // 5-field cron spec, e.g. "0 9 1 * *"
	MaxMonths int    `json:"max_months" yaml:"max_months"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	MonthsFile string `json:"months_file,omitempty" yaml:"months_file,omitempty"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Loan.Balance < 0 {
		return fmt.Errorf("loan.balance must not be negative")
	}
	if c.Loan.MonthlyPayment <= 0 {
		return fmt.Errorf("loan.monthly_payment must be positive")
	}
	if c.Loan.ForecloseAfter < 0 {
		return fmt.Errorf("loan.foreclose_after must be positive")
	}
	if _, err := loan.ParseMissPolicy(c.Loan.MissPolicy); err != nil {
		return fmt.Errorf("loan.miss_policy: %w", err)
	}
	if c.Borrower.Funds < 0 {
		return fmt.Errorf("borrower.funds must not be negative")
	}
	if c.Borrower.MonthlyIncome <= 0 {
		return fmt.Errorf("borrower.monthly_income must be positive")
	}
	from := time.Now().UTC()
	if c.Simulation.StartDate != "" {
		start, err := time.Parse(dateLayout, c.Simulation.StartDate)
		if err != nil {
			return fmt.Errorf("simulation.start_date must be YYYY-MM-DD: %w", err)
		}
		from = start
	}
	if c.Simulation.Payday != "" {
		if _, err := sim.ParsePayday(c.Simulation.Payday, from); err != nil {
			return fmt.Errorf("simulation.payday: %w", err)
		}
	}
	if c.Simulation.MaxMonths < 0 {
		return fmt.Errorf("simulation.max_months must not be negative")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.MonthsFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal months_file and runs_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Scenario converts the configuration into simulation inputs.
func (c *Config) Scenario() (sim.Scenario, error) {
	policy, err := loan.ParseMissPolicy(c.Loan.MissPolicy)
	if err != nil {
		return sim.Scenario{}, err
	}

	var start time.Time
	if c.Simulation.StartDate != "" {
		start, err = time.Parse(dateLayout, c.Simulation.StartDate)
		if err != nil {
			return sim.Scenario{}, fmt.Errorf("start date: %w", err)
		}
	}

	return sim.Scenario{
		Loan: loan.Terms{
			Balance:        decimal.NewFromFloat(c.Loan.Balance),
			MonthlyPayment: decimal.NewFromFloat(c.Loan.MonthlyPayment),
			ForecloseAfter: c.Loan.ForecloseAfter,
			Policy:         policy,
		},
		Borrower: borrower.Terms{
			Funds:         decimal.NewFromFloat(c.Borrower.Funds),
			MonthlyIncome: decimal.NewFromFloat(c.Borrower.MonthlyIncome),
		},
		Start:     start,
		Payday:    c.Simulation.Payday,
		MaxMonths: c.Simulation.MaxMonths,
	}, nil
}

// Default returns the reference scenario: the loan forecloses in month 13.
func Default() *Config {
	return &Config{
		Loan: LoanConfig{
			Balance:        286000,
			MonthlyPayment: 1700,
			ForecloseAfter: loan.DefaultForecloseAfter,
			MissPolicy:     loan.Cumulative.String(),
		},
		Borrower: BorrowerConfig{
			Funds:         2800,
			MonthlyIncome: 1350,
		},
		Simulation: SimulationConfig{
			StartDate: "2024-01-01",
			Payday:    sim.DefaultPayday,
			MaxMonths: sim.DefaultMaxMonths,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
