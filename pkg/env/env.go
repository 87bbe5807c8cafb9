// Package env provides an injectable abstraction over process environment
// variables so that code reading them can be tested without mutating the
// real environment.
package env

import "os"

// Reader reads environment variables.
type Reader interface {
	Getenv(key string) string
}

// OSReader reads from the real process environment.
type OSReader struct{}

// Getenv implements Reader using os.Getenv.
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// MapReader is a Reader backed by a fixed map, for use in tests.
type MapReader map[string]string

// Getenv implements Reader by looking the key up in the map.
func (m MapReader) Getenv(key string) string {
	return m[key]
}
