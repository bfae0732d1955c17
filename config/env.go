package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Env struct {
	Port     string
	LogLevel string
	Manifest string
	// Origin overrides the manifest origin when set.
	Origin string
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv() Env {
	// a missing .env is fine, the environment still applies
	_ = godotenv.Load()

	return Env{
		Port:     getEnv("PORT", "9010"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Manifest: getEnv("MANIFEST", "manifest.yaml"),
		Origin:   os.Getenv("APP_ORIGIN"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
