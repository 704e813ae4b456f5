package service

import (
	"context"
	"fmt"

	"bookstore/internal/config"
	"bookstore/internal/domains/user"
	"bookstore/pkg/logger"
)

// Bootstrap creates the configured admin and plain accounts if they are missing.
// It is safe to run on every start.
func Bootstrap(ctx context.Context, svc user.Service, seed config.SeedConfig) error {
	accounts := []struct {
		email, password string
		role            user.Role
	}{
		{seed.AdminEmail, seed.AdminPassword, user.RoleAdministrator},
		{seed.UserEmail, seed.UserPassword, user.RoleUser},
	}

	for _, a := range accounts {
		if a.email == "" || a.password == "" {
			logger.Debug("[BOOTSTRAP] " + string(a.role) + " seed account not configured, skipping")
			continue
		}

		created, err := svc.EnsureAccount(ctx, a.email, a.password, a.role)
		if err != nil {
			return fmt.Errorf("seed %s account: %w", a.role, err)
		}
		if created {
			logger.Info("[BOOTSTRAP] seed account created", map[string]interface{}{
				"email": a.email,
				"role":  a.role,
			})
		}
	}
	return nil
}
