// Package api sets up and starts the API server with routing and middleware.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matt-dz/tastebook/internal/api/middleware"
	"github.com/matt-dz/tastebook/internal/api/routes/ping"
	"github.com/matt-dz/tastebook/internal/api/routes/recipes"
	"github.com/matt-dz/tastebook/internal/api/routes/users"
	"github.com/matt-dz/tastebook/internal/env"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func addRoutes(router chi.Router) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/recipe", func(r chi.Router) {
			r.Get("/", recipes.HandleListRecipes)
			r.Get("/{id}", recipes.HandleGetRecipe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate)

				r.Post("/", recipes.HandleCreateRecipe)
				r.Put("/{id}", recipes.HandleUpdateRecipe)
				r.Delete("/{id}", recipes.HandleDeleteRecipe)
				r.Put("/rate/{id}", recipes.HandleRateRecipe)
				r.Post("/comment/{id}", recipes.HandleAddComment)
				r.Delete("/comment/{recipeId}/{commentId}", recipes.HandleDeleteComment)
				r.Put("/favorite/{id}", recipes.HandleToggleFavorite)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.Authenticate)

			r.Get("/favorites", users.HandleGetFavorites)
		})
	})
}

// NewRouter returns the API handler with the request middleware applied.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	addRoutes(router)
	return router
}

// Start serves the API until ctx is cancelled, then shuts the server down.
func Start(ctx context.Context, env *env.Env) error {
	server := &http.Server{
		Addr:              env.Config.Addr(),
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		env.Logger.Info(fmt.Sprintf("Listening at %s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		env.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
