// Package env reads raw process environment values. It exists for the few
// lookups that have to happen before config parsing, such as the logger's
// output format.
package env

import "os"

// Get reads key from the environment. Unset and empty both yield the fallback.
func Get(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
