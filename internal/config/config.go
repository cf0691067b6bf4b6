package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Queue     QueueConfig     `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
}

type SchedulerConfig struct {
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
	OverdueCron  string `mapstructure:"OVERDUE_CRON"`
	ReminderCron string `mapstructure:"REMINDER_CRON"`
}

type QueueConfig struct {
	Name        string `mapstructure:"QUEUE_NAME"`
	Concurrency int    `mapstructure:"QUEUE_CONCURRENCY"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	MaxPrice            string `mapstructure:"MAX_PRICE"`
	MinLeasingDays      int    `mapstructure:"MIN_LEASING_DAYS"`
	MaxLeasingYears     int    `mapstructure:"MAX_LEASING_YEARS"`
	SupportedCurrencies string `mapstructure:"SUPPORTED_CURRENCIES"`
	EmployeeDiscounts   string `mapstructure:"EMPLOYEE_DISCOUNTS"`
	LongTermDiscount    string `mapstructure:"LONG_TERM_DISCOUNT"`
	LongTermThreshold   int    `mapstructure:"LONG_TERM_THRESHOLD_MONTHS"`
	ReminderDaysAhead   int    `mapstructure:"REMINDER_DAYS_AHEAD"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// LeasingPolicy is the parsed form of BusinessConfig
type LeasingPolicy struct {
	MaxPrice            decimal.Decimal
	MinLeasingDays      int
	MaxLeasingYears     int
	SupportedCurrencies map[string]struct{}
	EmployeeDiscounts   map[string]decimal.Decimal
	LongTermDiscount    decimal.Decimal
	LongTermThreshold   int
	ReminderDaysAhead   int
}

var defaults = map[string]any{
	"SERVER_PORT":                "8080",
	"SERVER_HOST":                "0.0.0.0",
	"ENV":                        "development",
	"DATABASE_URL":               "",
	"DATABASE_MAX_OPEN_CONNS":    25,
	"DATABASE_MAX_IDLE_CONNS":    5,
	"REDIS_URL":                  "redis://localhost:6379/0",
	"LOG_LEVEL":                  "info",
	"LOG_FORMAT":                 "json",
	"SCHEDULER_TIMEZONE":         "UTC",
	"OVERDUE_CRON":               "0 0 0 * * *",
	"REMINDER_CRON":              "0 0 9 * * *",
	"QUEUE_NAME":                 "notifications",
	"QUEUE_CONCURRENCY":          10,
	"MAX_PRICE":                  "1000000",
	"MIN_LEASING_DAYS":           30,
	"MAX_LEASING_YEARS":          5,
	"SUPPORTED_CURRENCIES":       "USD,EUR,GBP,CAD",
	"EMPLOYEE_DISCOUNTS":         "STANDARD=1.0,PREMIUM=0.9,VIP=0.8",
	"LONG_TERM_DISCOUNT":         "0.8",
	"LONG_TERM_THRESHOLD_MONTHS": 12,
	"REMINDER_DAYS_AHEAD":        3,
	"HEALTH_CHECK_TIMEOUT":       "5s",
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := c.LeasingPolicy(); err != nil {
		return err
	}

	return nil
}

// LeasingPolicy parses the business settings
func (c *Config) LeasingPolicy() (LeasingPolicy, error) {
	b := c.Business

	maxPrice, err := decimal.NewFromString(b.MaxPrice)
	if err != nil || !maxPrice.IsPositive() {
		return LeasingPolicy{}, fmt.Errorf("MAX_PRICE must be a positive decimal: %q", b.MaxPrice)
	}

	if b.MinLeasingDays <= 0 {
		return LeasingPolicy{}, fmt.Errorf("MIN_LEASING_DAYS must be greater than 0")
	}

	if b.MaxLeasingYears <= 0 {
		return LeasingPolicy{}, fmt.Errorf("MAX_LEASING_YEARS must be greater than 0")
	}

	if b.LongTermThreshold <= 0 {
		return LeasingPolicy{}, fmt.Errorf("LONG_TERM_THRESHOLD_MONTHS must be greater than 0")
	}

	longTerm, err := decimal.NewFromString(b.LongTermDiscount)
	if err != nil || longTerm.IsNegative() {
		return LeasingPolicy{}, fmt.Errorf("LONG_TERM_DISCOUNT must be a non-negative decimal: %q", b.LongTermDiscount)
	}

	currencies := make(map[string]struct{})
	for _, code := range strings.Split(b.SupportedCurrencies, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			currencies[code] = struct{}{}
		}
	}
	if len(currencies) == 0 {
		return LeasingPolicy{}, fmt.Errorf("SUPPORTED_CURRENCIES must list at least one currency")
	}

	discounts, err := parseDiscounts(b.EmployeeDiscounts)
	if err != nil {
		return LeasingPolicy{}, err
	}

	return LeasingPolicy{
		MaxPrice:            maxPrice,
		MinLeasingDays:      b.MinLeasingDays,
		MaxLeasingYears:     b.MaxLeasingYears,
		SupportedCurrencies: currencies,
		EmployeeDiscounts:   discounts,
		LongTermDiscount:    longTerm,
		LongTermThreshold:   b.LongTermThreshold,
		ReminderDaysAhead:   b.ReminderDaysAhead,
	}, nil
}

// parseDiscounts reads "TIER=multiplier" pairs separated by commas
func parseDiscounts(raw string) (map[string]decimal.Decimal, error) {
	discounts := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		tier, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("EMPLOYEE_DISCOUNTS entry %q must look like TIER=multiplier", pair)
		}

		multiplier, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || multiplier.IsNegative() {
			return nil, fmt.Errorf("EMPLOYEE_DISCOUNTS multiplier for %s must be a non-negative decimal", tier)
		}
		discounts[strings.ToUpper(strings.TrimSpace(tier))] = multiplier
	}
	return discounts, nil
}

// DefaultLeasingPolicy returns the policy produced by the default settings
func DefaultLeasingPolicy() LeasingPolicy {
	return LeasingPolicy{
		MaxPrice:        decimal.NewFromInt(1000000),
		MinLeasingDays:  30,
		MaxLeasingYears: 5,
		SupportedCurrencies: map[string]struct{}{
			"USD": {}, "EUR": {}, "GBP": {}, "CAD": {},
		},
		EmployeeDiscounts: map[string]decimal.Decimal{
			"STANDARD": decimal.NewFromInt(1),
			"PREMIUM":  decimal.RequireFromString("0.9"),
			"VIP":      decimal.RequireFromString("0.8"),
		},
		LongTermDiscount:  decimal.RequireFromString("0.8"),
		LongTermThreshold: 12,
		ReminderDaysAhead: 3,
	}
}

// CurrencyList returns the supported currencies in sorted order
func (p LeasingPolicy) CurrencyList() []string {
	list := make([]string, 0, len(p.SupportedCurrencies))
	for code := range p.SupportedCurrencies {
		list = append(list, code)
	}
	sort.Strings(list)
	return list
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetSchedulerLocation returns the scheduler timezone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
