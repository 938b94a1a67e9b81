/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public petstore.
	DefaultBaseURL = "https://petstore.swagger.io/v2"

	// DefaultAPIKey is the key the public petstore documents for testing.
	DefaultAPIKey = "special-key"

	// DefaultPetsFile is where the local pet list is persisted.
	DefaultPetsFile = "pets.json"

	// DefaultImageMetadata is sent alongside uploaded images.
	DefaultImageMetadata = "Dog Pic"
)

type TestConfig struct {
	BaseURL        string
	APIKey         string
	PetsFile       string
	ImagePath      string
	ImageMetadata  string
	RequestTimeout time.Duration
	TestTimeout    time.Duration
	UseStub        bool
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = getStringWithDefault("BASE_URL", DefaultBaseURL)
	}

	config := &TestConfig{
		BaseURL:        strings.TrimSuffix(baseURL, "/"),
		APIKey:         DefaultAPIKey,
		PetsFile:       getStringWithDefault("PETS_FILE", DefaultPetsFile),
		ImagePath:      getStringWithDefault("IMAGE_PATH", defaultImagePath()),
		ImageMetadata:  getStringWithDefault("IMAGE_METADATA", DefaultImageMetadata),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:    getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		UseStub:        getBoolWithDefault("PETSTORE_STUB", false),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
	}

	// Validate required fields
	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// defaultImagePath is the sample image shipped alongside this package, so
// suites find it regardless of the working directory.
func defaultImagePath() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", "cute_dog.jpg")
	}

	return filepath.Join(filepath.Dir(file), "testdata", "cute_dog.jpg")
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",
		"../../.env", // From test/api/suites directory
	}

	var envPath string
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Load .env file, variables already set in the environment win.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := map[string]string{
		"API_BASE_URL":   config.BaseURL,
		"PETS_FILE":      config.PetsFile,
		"IMAGE_PATH":     config.ImagePath,
		"IMAGE_METADATA": config.ImageMetadata,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(missing, ", "))
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("invalid configuration: REQUEST_TIMEOUT must be positive, got %s", config.RequestTimeout)
	}

	return nil
}
