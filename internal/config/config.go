package config

import (
	"fmt"
	"time"

	"pubmed-chat/internal/askapi"
)

// Config holds all application configuration
type Config struct {
	// Answer service settings
	ServiceURL     string
	DefaultModel   string
	RequestTimeout time.Duration

	// Input-history settings (typed drafts only; the conversation itself
	// is never persisted)
	InputHistoryPath string
	MaxInputHistory  int

	// Feature flags
	PlainMode bool
	Verbose   bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		// Answer service defaults
		ServiceURL:     "http://localhost:8000",
		DefaultModel:   askapi.ModelLLM,
		RequestTimeout: 60 * time.Second,

		// Input-history defaults
		InputHistoryPath: expandHome("~/.pubmed-chat/input_history"),
		MaxInputHistory:  200,

		// Feature flags
		PlainMode: false,
		Verbose:   false,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service URL cannot be empty")
	}
	if c.DefaultModel != askapi.ModelLLM && c.DefaultModel != askapi.ModelGemini {
		return fmt.Errorf("model must be %q or %q", askapi.ModelLLM, askapi.ModelGemini)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.MaxInputHistory < 1 {
		return fmt.Errorf("max input history must be at least 1")
	}
	return nil
}

// expandHome expands the ~ in file paths to the user's home directory
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir := getHomeDir()
		return homeDir + path[1:]
	}
	return path
}

// getHomeDir returns the user's home directory
func getHomeDir() string {
	if home := GetEnv("HOME"); home != "" {
		return home
	}
	// Fallback for Windows
	if home := GetEnv("USERPROFILE"); home != "" {
		return home
	}
	return "."
}

// GetEnv is a wrapper around os.Getenv for easier testing
var GetEnv = func(key string) string {
	// Will be replaced with os.Getenv in main
	return ""
}
