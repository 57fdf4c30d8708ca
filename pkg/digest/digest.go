// Package digest computes content checksums for written artifacts.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// ErrMismatch is returned by Verify when a file does not match the expected digest.
var ErrMismatch = errors.New("digest mismatch")

// Bytes returns the hex-encoded SHA-256 of data.
func Bytes(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// File returns the hex-encoded SHA-256 of the file at path.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Bytes(data), nil
}

// Verify checks that the file at path hashes to want.
func Verify(path, want string) error {
	got, err := File(path)
	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrMismatch, want, got)
	}

	return nil
}
