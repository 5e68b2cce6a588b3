package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository/sqlite"
)

// runCmd executes the CLI in-process with flags reset to their defaults.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func sqliteArgs(path string, args ...string) []string {
	return append(args, "--driver", "sqlite", "--sqlite-path", path)
}

func openSQLite(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSetup_CreatesAdminAndSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full9.db")

	out, stderr, err := runCmd(t, sqliteArgs(path, "setup")...)
	require.NoError(t, err)
	assert.Contains(t, out, "created admin admin@full9.co.th")
	assert.Contains(t, out, "seeded 4 products")
	assert.Contains(t, stderr, "default password")

	out, _, err = runCmd(t, sqliteArgs(path, "setup")...)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	assert.Contains(t, out, "skipping seed")

	store := openSQLite(t, path)
	ctx := context.Background()

	n, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	chargers, err := store.ListProducts(ctx, model.CategoryCharger)
	require.NoError(t, err)
	assert.Len(t, chargers, 2)

	admin, err := store.GetAdminByEmail(ctx, "admin@full9.co.th")
	require.NoError(t, err)
	assert.Equal(t, "Admin", admin.Name)
	ok, _, err := auth.CheckPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetup_CustomSeedAndAdmin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "full9.db")
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
products:
  - name: MagSafe Case
    category: case
    features: [Magnetic]
    image_url: https://cdn.full9.co.th/magsafe.png
`), 0o600))

	out, stderr, err := runCmd(t, sqliteArgs(path, "setup",
		"--seed", seedPath,
		"--email", "Owner@Full9.co.th",
		"--name", "Owner",
		"--password", "correct-horse",
	)...)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 1 products")
	assert.Empty(t, stderr)

	store := openSQLite(t, path)
	products, err := store.ListProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, model.DefaultProductIcon, products[0].Icon)
	require.NotNil(t, products[0].ImageURL)
	assert.Equal(t, "https://cdn.full9.co.th/magsafe.png", *products[0].ImageURL)
	assert.True(t, products[0].IsActive)

	_, err = store.GetAdminByEmail(context.Background(), "owner@full9.co.th")
	assert.NoError(t, err)
}

func TestSetup_RejectsBadSeedBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "full9.db")
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte("products:\n  - name: Lamp\n    category: lighting\n"), 0o600))

	_, _, err := runCmd(t, sqliteArgs(path, "setup", "--seed", seedPath)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "lighting"`)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no database should be created")
}

func TestLoadSeed_Default(t *testing.T) {
	seed, err := loadSeed("")
	require.NoError(t, err)
	require.Len(t, seed.Products, 4)
	for _, p := range seed.Products {
		assert.NotEmpty(t, p.Features, p.Name)
		assert.True(t, strings.HasPrefix(p.Icon, "fas "), p.Name)
	}
}

func TestResetPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full9.db")
	_, _, err := runCmd(t, sqliteArgs(path, "setup")...)
	require.NoError(t, err)

	out, _, err := runCmd(t, sqliteArgs(path, "reset-password", "--email", "ADMIN@full9.co.th", "--password", "n3w-passw0rd")...)
	require.NoError(t, err)
	assert.Contains(t, out, "password updated for admin@full9.co.th")

	store := openSQLite(t, path)
	admin, err := store.GetAdminByEmail(context.Background(), "admin@full9.co.th")
	require.NoError(t, err)
	ok, _, err := auth.CheckPassword("n3w-passw0rd", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _, err = auth.CheckPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetPassword_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full9.db")
	_, _, err := runCmd(t, sqliteArgs(path, "setup")...)
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown admin", []string{"reset-password", "--email", "nobody@full9.co.th", "--password", "long-enough"}, "no admin with email"},
		{"short password", []string{"reset-password", "--email", "admin@full9.co.th", "--password", "short"}, "at least 8 characters"},
		{"missing flags", []string{"reset-password"}, "required flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, sqliteArgs(path, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := runCmd(t, "reset-password", "--driver", "mysql", "--email", "a@b.co", "--password", "long-enough")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_DRIVER must be postgres or sqlite")
}

func TestGenSecret(t *testing.T) {
	out, _, err := runCmd(t, "gen-secret")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 64)

	out, _, err = runCmd(t, "gen-secret", "--bytes", "4")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 32, "short requests are raised to 16 bytes")
}

func TestIssueAndVerifyToken(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "cli-test-secret")

	out, _, err := runCmd(t, "issue-token", "--id", "7", "--email", "admin@full9.co.th", "--name", "Admin")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.Len(t, strings.Split(token, "."), 3)

	out, _, err = runCmd(t, "verify-token", token)
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &claims))
	assert.EqualValues(t, 7, claims["id"])
	assert.Equal(t, "admin@full9.co.th", claims["email"])
	assert.Contains(t, claims, auth.ClaimIssuedAt)
	assert.Contains(t, claims, auth.ClaimExpiresAt)

	t.Setenv("TOKEN_SECRET", "another-secret")
	_, _, err = runCmd(t, "verify-token", token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_signature")
	assert.ErrorIs(t, err, auth.ErrBadSignature)

	_, _, err = runCmd(t, "verify-token", "not-a-token")
	assert.ErrorIs(t, err, auth.ErrMalformed)
}

func TestTokenCommands_RequireSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	_, _, err := runCmd(t, "issue-token", "--id", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET is not set")

	_, _, err = runCmd(t, "verify-token")
	assert.Error(t, err, "token argument is required")
}
