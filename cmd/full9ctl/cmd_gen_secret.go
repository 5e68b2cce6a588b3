package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingpotter-hr/full9-website/internal/auth"
)

var secretBytes int

var genSecretCmd = &cobra.Command{
	Use:   "gen-secret",
	Short: "Print a random hex secret for TOKEN_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret, err := auth.GenerateSecret(secretBytes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), secret)
		return nil
	},
}

func init() {
	genSecretCmd.Flags().IntVar(&secretBytes, "bytes", 32, "Random bytes before hex encoding (minimum 16)")
}
