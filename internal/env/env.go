// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/matt-dz/tastebook/internal/cache"
	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/database"
	"github.com/matt-dz/tastebook/internal/favorite"
	"github.com/matt-dz/tastebook/internal/log"
	"github.com/matt-dz/tastebook/internal/recipe"
)

type Env struct {
	Logger    *slog.Logger
	Database  database.Querier
	Cache     cache.Cache
	Config    config.Config
	Recipes   *recipe.Service
	Favorites *favorite.Service
}

// New wires the services on top of the given store and cache.
func New(lg *slog.Logger, db database.Querier, c cache.Cache, conf config.Config) *Env {
	if lg == nil {
		lg = log.NullLogger()
	}
	if c == nil {
		c = cache.Null{}
	}

	var secret []byte
	if conf.AppSecret.Value != nil {
		secret = []byte(*conf.AppSecret.Value)
	}

	return &Env{
		Logger:    lg,
		Database:  db,
		Cache:     c,
		Config:    conf,
		Recipes:   recipe.NewService(db, c, lg),
		Favorites: favorite.NewService(db, secret, conf.AppSecret.Version),
	}
}

func Null() *Env {
	return New(nil, nil, nil, config.Config{})
}

type envKeyType struct{}

var envKey envKeyType

func WithCtx(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey, env)
}

// EnvFromCtx returns the Env stored in ctx, or a Null env if there is none.
func EnvFromCtx(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey).(*Env); ok && env != nil {
		return env
	}
	return Null()
}
