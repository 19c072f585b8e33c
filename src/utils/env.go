package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// InitEnvironmentVariables loads <envDir>/.env.<goEnv> when it exists. Variables already set in
// the process environment win over the file.
func InitEnvironmentVariables(envDir, goEnv string) error {
	if goEnv == "" {
		goEnv = "development"
	}

	envFile := filepath.Join(envDir, fmt.Sprintf(".env.%s", goEnv))

	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("InitEnvironmentVariables: %s not found, using process environment", envFile)
			return nil
		}

		return fmt.Errorf("InitEnvironmentVariables: failed to stat %s: %w", envFile, err)
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("InitEnvironmentVariables: failed to load %s: %w", envFile, err)
	}

	log.Debugf("InitEnvironmentVariables: loaded %s", envFile)

	return nil
}

func GetEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("GetEnv: %s not set", key)
	}

	return value, nil
}

func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
