package env

import "os"

// Get reads an environment variable, treating an empty value the same as an
// unset one and falling back to the supplied default.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
