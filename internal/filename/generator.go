// Package filename generates the names uploaded task images are stored under.
package filename

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator creates a stored filename for an uploaded file.
type Generator interface {
	// Generate returns a new name keeping the extension of originalName.
	Generate(originalName string) (string, error)
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TimestampGenerator produces "{unix}_{8 random alphanumerics}.{ext}".
type TimestampGenerator struct {
	Now func() time.Time
}

func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{Now: time.Now}
}

func (g *TimestampGenerator) Generate(originalName string) (string, error) {
	suffix, err := randomString(8)
	if err != nil {
		return "", err
	}
	return build(g.Now(), suffix, originalName), nil
}

// UUIDGenerator produces "{unix}_{uuid v4 hex}.{ext}".
type UUIDGenerator struct {
	Now func() time.Time
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{Now: time.Now}
}

func (g *UUIDGenerator) Generate(originalName string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return build(g.Now(), strings.ReplaceAll(id.String(), "-", ""), originalName), nil
}

// New returns the generator for a configured strategy name.
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", "timestamp":
		return NewTimestampGenerator(), nil
	case "uuid":
		return NewUUIDGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown filename strategy %q", strategy)
	}
}

// Extension returns the client extension of name without the leading dot.
func Extension(name string) string {
	return strings.TrimPrefix(filepath.Ext(filepath.Base(name)), ".")
}

func build(now time.Time, suffix, originalName string) string {
	name := fmt.Sprintf("%d_%s", now.Unix(), suffix)
	if ext := Extension(originalName); ext != "" {
		name += "." + ext
	}
	return name
}

func randomString(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random suffix: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}
