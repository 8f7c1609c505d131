// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"company_portal_backend/internal/address"
	"company_portal_backend/internal/app"
	"company_portal_backend/internal/auth"
	"company_portal_backend/internal/company"
	"company_portal_backend/internal/config"
	"company_portal_backend/internal/firebase"
	"company_portal_backend/internal/jobs"
	"company_portal_backend/internal/platform/database"
	"company_portal_backend/internal/platform/geocoding"
	"company_portal_backend/internal/platform/logger"
	"company_portal_backend/internal/profile"
	"company_portal_backend/internal/session"
	"company_portal_backend/internal/shared"
	"company_portal_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,
		geocoding.NewGoogleGeocoder,
		wire.Bind(new(geocoding.Geocoder), new(*geocoding.GoogleGeocoder)),

		// Auth backend
		firebase.NewService,
		wire.Bind(new(shared.AuthBackend), new(*firebase.Service)),

		// Session gate
		session.NewGate,

		// Repositories
		user.NewGORMRepository,
		company.NewGORMRepository,

		// Services
		company.NewService,
		auth.NewService,
		profile.NewService,
		provideAddressStore,
		address.NewService,

		// Handlers
		auth.NewHandler,
		company.NewHandler,
		profile.NewHandler,
		address.NewHandler,

		// Jobs
		jobs.NewSessionCleanupJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
