// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"carmarket_backend/internal/app"
	"carmarket_backend/internal/auth"
	"carmarket_backend/internal/car"
	"carmarket_backend/internal/category"
	"carmarket_backend/internal/chat"
	"carmarket_backend/internal/config"
	"carmarket_backend/internal/jobs"
	"carmarket_backend/internal/order"
	"carmarket_backend/internal/platform/database"
	"carmarket_backend/internal/platform/logger"
	"carmarket_backend/internal/seed"
	"carmarket_backend/internal/swap"
	"carmarket_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Auth
		auth.NewTokenService,
		auth.NewService,
		auth.NewHandler,

		// Users
		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,

		// Cars and categories
		car.NewGORMRepository,
		car.NewService,
		car.NewHandler,
		category.NewService,
		category.NewHandler,

		// Conversations
		chat.NewGORMRepository,
		chat.NewService,
		chat.NewHandler,

		// Swaps and orders
		swap.NewGORMRepository,
		swap.NewService,
		swap.NewHandler,
		order.NewGORMRepository,
		order.NewService,
		order.NewHandler,

		// Background jobs and demo data
		jobs.NewPendingReviewJob,
		seed.NewSeeder,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
