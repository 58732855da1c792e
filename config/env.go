package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBool gets environment variable as bool with default value
func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getDuration gets environment variable as duration with default value.
// An unparsable value yields 0 so that validation reports it.
func getDuration(key, defaultValue string) time.Duration {
	duration, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0
	}
	return duration
}

// getList splits a comma separated variable, dropping blank items.
func getList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
