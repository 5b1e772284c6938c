package vault

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileVault implements ports.CredentialVault on the local filesystem. Each
// secret lives in its own 0600 file under dir; the directory itself is 0700.
// Keys are sanitized before becoming filenames so a hostile key cannot
// escape the vault directory.
type FileVault struct {
	dir string
	log zerolog.Logger
}

// NewFileVault creates the vault directory if needed and returns the vault.
func NewFileVault(dir string, log zerolog.Logger) (*FileVault, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	return &FileVault{dir: dir, log: log}, nil
}

// Put stores a secret, overwriting any existing value for the key.
func (v *FileVault) Put(ctx context.Context, namespacedKey string, secret []byte) error {
	path, err := v.path(namespacedKey)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash never leaves a partial secret behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, secret, 0o600); err != nil {
		return fmt.Errorf("write vault entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit vault entry: %w", err)
	}
	return nil
}

// Get retrieves a secret. Returns nil, nil when the key is absent.
func (v *FileVault) Get(ctx context.Context, namespacedKey string) ([]byte, error) {
	path, err := v.path(namespacedKey)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read vault entry: %w", err)
	}
	return data, nil
}

// Delete removes a secret. Deleting an absent key is not an error.
func (v *FileVault) Delete(ctx context.Context, namespacedKey string) error {
	path, err := v.path(namespacedKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete vault entry: %w", err)
	}
	return nil
}

func (v *FileVault) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty vault key")
	}
	name := sanitize(key)
	return filepath.Join(v.dir, name+".bin"), nil
}

// sanitize maps a namespaced key to a safe filename. Characters outside
// [a-zA-Z0-9_-] are hex-escaped.
func sanitize(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteString("x" + hex.EncodeToString([]byte{c}))
		}
	}
	return b.String()
}
