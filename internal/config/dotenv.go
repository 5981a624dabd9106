package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	PublicURL          string
	CategoryPoolPath   string
	CategoriesPerRound int
	MaxNameLength      int
	MaxCategories      int
}

func Default() Config {
	return Config{
		PublicURL:          "http://localhost:8080",
		CategoriesPerRound: 6,
		MaxNameLength:      20,
		MaxCategories:      12,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PUBLIC_URL"); raw != "" {
		cfg.PublicURL = raw
	}
	if raw := os.Getenv("CATEGORY_POOL_PATH"); raw != "" {
		cfg.CategoryPoolPath = raw
	}
	if raw := os.Getenv("CATEGORIES_PER_ROUND"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.CategoriesPerRound = value
		}
	}
	if raw := os.Getenv("MAX_NAME_LENGTH"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxNameLength = value
		}
	}
	if raw := os.Getenv("MAX_CATEGORIES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxCategories = value
		}
	}
	return cfg
}
