package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultProviderURLs are the Fuel mainnet endpoints benchmarked when
// PROVIDER_URLS is not set.
var DefaultProviderURLs = []string{
	"mainnet.fuel.network",
	"fuel.liquify.com/v1/graphql",
}

type Config struct {
	ProviderURLs   []string
	Mnemonic       string
	ContractID     string
	ContractBench  bool
	AccountIndex   int
	RequestTimeout time.Duration
	BenchInterval  time.Duration
	ServerPort     int
	LogLevel       string
}

func Load() *Config {
	urls := parseStringSlice(getEnv("PROVIDER_URLS", ""))
	if len(urls) == 0 {
		urls = DefaultProviderURLs
	}

	return &Config{
		ProviderURLs:   urls,
		Mnemonic:       getEnv("MNEMONIC", ""),
		ContractID:     getEnv("CONTRACT_ID", ""),
		ContractBench:  parseBool(getEnv("CONTRACT_BENCH", "false")),
		AccountIndex:   parseInt(getEnv("ACCOUNT_INDEX", "0")),
		RequestTimeout: parseDurationMs(getEnv("REQUEST_TIMEOUT_MS", "30000")),
		BenchInterval:  parseDurationMs(getEnv("BENCH_INTERVAL_MS", "0")),
		ServerPort:     parseInt(getEnv("SERVER_PORT", "8080")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func parseDurationMs(s string) time.Duration {
	ms, _ := strconv.Atoi(s)
	return time.Duration(ms) * time.Millisecond
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
