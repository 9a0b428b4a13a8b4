package env

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Load reads the .env file from the working directory into the process
// environment. Variables already set are left untouched, and a missing file
// is not an error.
func Load(filenames ...string) {
	loadOnce.Do(func() {
		if len(filenames) == 0 {
			filenames = []string{".env"}
		}
		for _, name := range filenames {
			if _, err := os.Stat(name); err != nil {
				continue
			}
			_ = godotenv.Load(name)
		}
	})
}

func Get(key string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}

	Load()

	return os.Getenv(key)
}

// GetOr returns the value of key or fallback when it is empty.
func GetOr(key, fallback string) string {
	if value := Get(key); value != "" {
		return value
	}
	return fallback
}
