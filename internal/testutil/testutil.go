package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/redis/go-redis/v9"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 909090

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// siteTables lists every table owned by the schema, children first.
var siteTables = []string{"inquiries", "settings", "portfolio", "products", "content", "admins"}

// DropSiteTables removes all site tables so a test can recreate them.
func DropSiteTables(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range siteTables {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

var seq atomic.Int64

// UniqueID generates a unique string for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return UniqueID(prefix) + "@test.full9.co.th"
}

// NewTestAdmin creates an admin with the given password hash.
func NewTestAdmin(t testing.TB, passwordHash string) *model.Admin {
	t.Helper()
	return &model.Admin{
		Email:        UniqueEmail("admin"),
		PasswordHash: passwordHash,
		Name:         "Test Admin",
	}
}

// NewTestProduct creates a product with sensible defaults.
func NewTestProduct(t testing.TB, category model.ProductCategory) *model.Product {
	t.Helper()
	return &model.Product{
		Name:        UniqueID("product"),
		Category:    category,
		Icon:        model.DefaultProductIcon,
		Description: "Test product",
		Features:    []string{"Durable", "Lightweight"},
		IsActive:    true,
	}
}

// NewTestPortfolioItem creates a portfolio item at the given display order.
func NewTestPortfolioItem(t testing.TB, order int, active bool) *model.PortfolioItem {
	t.Helper()
	return &model.PortfolioItem{
		Title:        UniqueID("portfolio"),
		Description:  "Test project",
		ImageURL:     "https://cdn.full9.co.th/p.jpg",
		Category:     "retail",
		DisplayOrder: order,
		IsActive:     active,
	}
}

// NewTestInquiry creates a pending inquiry.
func NewTestInquiry(t testing.TB) *model.Inquiry {
	t.Helper()
	return &model.Inquiry{
		Reference: UniqueID("inq"),
		Name:      "Somchai",
		Email:     UniqueEmail("visitor"),
		Subject:   "Bulk order",
		Message:   "Do you ship to Chiang Mai?",
		Status:    model.InquiryPending,
	}
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
