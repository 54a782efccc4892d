// Package storage defines the output vault file-system abstraction.
package storage

// Provider is the interface the exporter writes through.
type Provider interface {
	// EnsureLayout creates the given subdirectories under the output root.
	EnsureLayout(dirs ...string) error
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the root).
	Write(path string, content []byte) error
}

// Verify *Vault satisfies Provider at compile time.
var _ Provider = (*Vault)(nil)
