package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded into the process environment when present.
const DefaultEnvFile = ".env"

// Environment variables consulted between the config file and the flags.
const (
	EnvDatabase    = "ALIASDEX_DB"
	EnvRemote      = "ALIASDEX_REMOTE"
	EnvCredentials = "ALIASDEX_CREDENTIALS"
)

// LoadEnv reads a dotenv file into the process environment. Variables that
// are already set keep their value. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// FromEnv returns the overrides set in the environment.
func FromEnv() Overrides {
	return Overrides{
		Database:    os.Getenv(EnvDatabase),
		RemoteURL:   os.Getenv(EnvRemote),
		Credentials: os.Getenv(EnvCredentials),
	}
}
