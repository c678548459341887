// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matt-dz/tastebook/internal/cache"
	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/database"
	"github.com/matt-dz/tastebook/internal/env"
	"github.com/matt-dz/tastebook/internal/role"
)

// Database connects to the configured store and applies its schema or indexes.
func Database(ctx context.Context, conf config.Config) (*database.Database, error) {
	switch conf.Store {
	case config.StorePostgres:
		db, err := database.ConnectPostgres(ctx, conf.Database.ConnString())
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return db, nil
	case config.StoreMongo, "":
		db, err := database.ConnectMongo(ctx, conf.Mongo.URI, conf.Mongo.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", conf.Store)
	}
}

// Cache returns a Redis cache when an address is configured. Without one
// every read goes to the store.
func Cache(ctx context.Context, conf config.Config) (cache.Cache, error) {
	if conf.Redis.Addr == "" {
		return cache.Null{}, nil
	}

	c, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
		TTL:      conf.Redis.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return c, nil
}

// Admin grants the Admin role to the user registered with the configured
// admin email. Requires env.Database.
func Admin(ctx context.Context, env *env.Env) error {
	adminEmail := env.Config.Admin.Email
	if adminEmail == "" {
		env.Logger.InfoContext(ctx, "ADMIN_EMAIL not setup, skipping admin setup")
		return nil
	}

	granted, err := env.Database.GrantUserRole(ctx, database.GrantUserRoleParams{
		Email: adminEmail,
		Role:  role.RoleAdmin.String(),
	})
	if err != nil {
		return fmt.Errorf("granting admin role: %w", err)
	}
	if !granted {
		env.Logger.WarnContext(ctx, "no user registered with admin email, skipping admin setup",
			slog.String("email", adminEmail))
		return nil
	}

	env.Logger.InfoContext(ctx, "successfully setup admin!")
	return nil
}
