/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkedvault/linkedvault/pkg/api"
	"github.com/linkedvault/linkedvault/pkg/auth"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the LinkedVault REST API server.

Accounts register and log in through /auth; every table and record
endpoint under /api/v1 requires the issued bearer token and only ever
sees the caller's own tables.

Examples:
  linkedvault serve --port=8080
  linkedvault serve --data-dir=./data --bind=0.0.0.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		defer app.Audit.Close()

		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		if port == 0 {
			port = app.Config.Port
		}
		if bind == "" {
			bind = app.Config.Bind
		}

		secret := app.Config.Security.JWTSecret
		if secret == "" || secret == "auto" {
			return fmt.Errorf("no token secret configured, run 'linkedvault init' first")
		}

		ttl := time.Duration(app.Config.Security.TokenTTLHours) * time.Hour
		tokens := auth.NewTokens(secret, ttl)

		server := api.NewServer(app.Users, app.Tables, app.Audit, tokens,
			api.ServerConfig{
				Port:           port,
				Bind:           bind,
				TokenTTL:       ttl,
				MinPasswordLen: app.Config.Security.MinPasswordLen,
			},
			api.NewMetrics(), app.Logger)

		return server.StartServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("bind", "", "Bind address (overrides config)")
}
