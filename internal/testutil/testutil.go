// Package testutil has helpers shared by package tests
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/db"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/security"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const Secret = "test-secret-test-secret-test-secret-0123456789"

// NewDB returns a migrated sqlite database living in a temp dir
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_busy_timeout=5000")
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

// NewHasher returns an argon2id hasher with parameters cheap enough for tests
func NewHasher() *security.ArgonHash {
	return &security.ArgonHash{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func NewTokens(t *testing.T) *security.TokenService {
	t.Helper()

	s, err := security.NewTokenService(security.TokenConfig{
		Secret:     Secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return s
}

func Ptr[T any](v T) *T {
	return &v
}
