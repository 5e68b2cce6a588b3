package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/repository"
)

var resetOpts struct {
	email    string
	password string
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password for an admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		email := strings.ToLower(strings.TrimSpace(resetOpts.email))
		if email == "" {
			return errors.New("--email is required")
		}
		if len([]rune(resetOpts.password)) < auth.MinPasswordLength {
			return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		admin, err := store.GetAdminByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("no admin with email %s", email)
		}
		if err != nil {
			return fmt.Errorf("look up admin: %w", err)
		}

		hash, err := auth.HashPassword(resetOpts.password)
		if err != nil {
			return err
		}
		if err := store.UpdateAdminPassword(ctx, admin.ID, hash); err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", email)
		return nil
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetOpts.email, "email", "", "Admin email")
	resetPasswordCmd.Flags().StringVar(&resetOpts.password, "password", "", "New password")
	_ = resetPasswordCmd.MarkFlagRequired("email")
	_ = resetPasswordCmd.MarkFlagRequired("password")
}
