package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Problem bank
	BankPath string

	// Selection
	AvoidRepeats bool

	// Runner
	Runner         string // local, docker
	PythonBin      string
	RunnerTimeout  time.Duration
	RunnerMemoryMB int
	RunnerCPULimit float64
	RunnerImage    string

	// History (optional; empty disables persistence)
	HistoryPath string // SQLite file
	HistoryDSN  string // Postgres DSN, takes precedence over HistoryPath

	Debug bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		BankPath:       getEnv("RECODE_BANK", "./problems/problems.yaml"),
		AvoidRepeats:   getEnvBool("RECODE_AVOID_REPEATS", false),
		Runner:         getEnv("RECODE_RUNNER", "local"),
		PythonBin:      getEnv("RECODE_PYTHON", "python3"),
		RunnerTimeout:  time.Duration(getEnvInt("RECODE_RUNNER_TIMEOUT", 10)) * time.Second,
		RunnerMemoryMB: getEnvInt("RECODE_RUNNER_MEMORY_MB", 128),
		RunnerCPULimit: getEnvFloat("RECODE_RUNNER_CPU_LIMIT", 0.5),
		RunnerImage:    getEnv("RECODE_RUNNER_IMAGE", "python:3.12-alpine"),
		HistoryPath:    getEnv("RECODE_HISTORY", ""),
		HistoryDSN:     getEnv("RECODE_HISTORY_DSN", ""),
		Debug:          getEnvBool("DEBUG", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
