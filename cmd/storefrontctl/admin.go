package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	identityapp "github.com/archerandash/storefront/internal/application/identity"
	"github.com/archerandash/storefront/internal/infrastructure/auth"
	"github.com/archerandash/storefront/internal/infrastructure/cache"
	"github.com/archerandash/storefront/internal/infrastructure/persistence"
)

// adminPasswordEnv keeps the password out of shell history when set
const adminPasswordEnv = "STOREFRONT_ADMIN_PASSWORD"

func newSeedAdminCmd(setup setupFunc) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin user or reset its password",
		Long: `Create the admin user for the hub, or reset the password of an existing one.

Resetting a password also revokes the admin's open sessions when Redis is
configured. The password may be given through ` + adminPasswordEnv + `
instead of --password.`,
		RunE: run(setup, func(ctx context.Context, cmd *cobra.Command, e *env) error {
			if password == "" {
				password = os.Getenv(adminPasswordEnv)
			}
			if password == "" {
				return errors.New("a password is required: pass --password or set " + adminPasswordEnv)
			}

			stores := cache.NewStoreFactory(e.cfg.Redis, cache.WithLogger(e.log), cache.WithInMemoryFallback(true))
			defer func() { _ = stores.Close() }()

			// Only a shared blacklist can revoke sessions held by running servers
			var blacklist auth.TokenBlacklist
			if client, err := stores.RedisClient(); err == nil && client != nil {
				blacklist = auth.NewRedisTokenBlacklist(client)
			}

			authService := identityapp.NewAuthService(
				persistence.NewGormUserRepository(e.db),
				auth.NewJWTService(e.cfg.JWT),
				blacklist,
				e.log,
			)
			result, err := authService.SeedAdmin(ctx, email, password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Created {
				fmt.Fprintf(out, "Created admin %s (%s)\n", result.Email, result.UserID)
				return nil
			}
			fmt.Fprintf(out, "Reset password for %s (%s)\n", result.Email, result.UserID)
			if blacklist == nil {
				fmt.Fprintln(out, "Redis is not configured; existing sessions stay valid until they expire")
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (8 to 72 characters)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
