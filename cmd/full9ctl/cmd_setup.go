package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
)

//go:embed seed.yaml
var defaultSeed []byte

// Default admin created by setup.
const (
	defaultAdminEmail    = "admin@full9.co.th"
	defaultAdminName     = "Admin"
	defaultAdminPassword = "admin123"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	ImageURL    string   `yaml:"image_url"`
}

var setupOpts struct {
	email    string
	name     string
	password string
	seedPath string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the schema, the first admin and the sample catalogue",
	Long: `setup creates missing tables, creates the admin account when it does
not exist yet and seeds products when the catalogue is empty.
Running it again changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupOpts.email, "email", defaultAdminEmail, "Admin email")
	setupCmd.Flags().StringVar(&setupOpts.name, "name", defaultAdminName, "Admin display name")
	setupCmd.Flags().StringVar(&setupOpts.password, "password", defaultAdminPassword, "Initial admin password")
	setupCmd.Flags().StringVar(&setupOpts.seedPath, "seed", "", "YAML file with products to seed (default: built-in catalogue)")
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	seed, err := loadSeed(setupOpts.seedPath)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	fmt.Fprintln(out, "schema ready")

	email := strings.ToLower(strings.TrimSpace(setupOpts.email))
	_, err = store.GetAdminByEmail(ctx, email)
	switch {
	case err == nil:
		fmt.Fprintf(out, "admin %s already exists\n", email)
	case errors.Is(err, repository.ErrNotFound):
		if setupOpts.password == "" {
			return errors.New("--password must not be empty")
		}
		hash, err := auth.HashPassword(setupOpts.password)
		if err != nil {
			return err
		}
		admin := &model.Admin{Email: email, Name: setupOpts.name, PasswordHash: hash}
		if err := store.CreateAdmin(ctx, admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		fmt.Fprintf(out, "created admin %s (id %d)\n", email, admin.ID)
		if setupOpts.password == defaultAdminPassword {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: the default password is in use, change it after the first login")
		}
	default:
		return fmt.Errorf("look up admin: %w", err)
	}

	n, err := store.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		fmt.Fprintf(out, "catalogue has %d products, skipping seed\n", n)
		return nil
	}

	for _, sp := range seed.Products {
		p := sp.toProduct()
		if err := store.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", sp.Name, err)
		}
	}
	fmt.Fprintf(out, "seeded %d products\n", len(seed.Products))
	return nil
}

// loadSeed reads path, or the built-in catalogue when path is empty, and
// rejects unknown categories before anything is written.
func loadSeed(path string) (*seedFile, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, p := range seed.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("seed product %d: name is required", i+1)
		}
		if !model.ProductCategory(p.Category).IsValid() {
			return nil, fmt.Errorf("seed product %q: unknown category %q", p.Name, p.Category)
		}
	}
	return &seed, nil
}

func (sp seedProduct) toProduct() *model.Product {
	p := &model.Product{
		Name:        strings.TrimSpace(sp.Name),
		Category:    model.ProductCategory(sp.Category),
		Icon:        sp.Icon,
		Description: sp.Description,
		Features:    sp.Features,
		IsActive:    true,
	}
	if p.Icon == "" {
		p.Icon = model.DefaultProductIcon
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if sp.ImageURL != "" {
		p.ImageURL = &sp.ImageURL
	}
	return p
}
