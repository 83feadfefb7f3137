package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/config"
)

// SeedDefaults inserts the default admin account when it is missing. The
// password is hashed at boot so no digest ever lives in source or SQL.
func SeedDefaults(ctx context.Context, pool *pgxpool.Pool, cfg config.AuthConfig, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping seed")
		return nil
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, cfg.DefaultAdminEmail,
	).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.DefaultAdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING`,
		"Admin User", cfg.DefaultAdminEmail, hash,
	)
	if err != nil {
		return err
	}

	logger.Info("seeded default admin account", zap.String("email", cfg.DefaultAdminEmail))
	return nil
}
