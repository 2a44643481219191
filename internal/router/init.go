package router

import (
	"tourbook/internal/application"
	"tourbook/internal/container"
	pginfra "tourbook/internal/infrastructure/postgres"
	handlers "tourbook/internal/interface/http"
	"tourbook/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	tours := pginfra.NewTourRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	bookings := pginfra.NewBookingRepository(pool)

	authSvc := application.NewAuthService(users, container.GetTokens(), container.GetMail(), logger,
		cfg.BcryptCost, cfg.PublicBaseURL, cfg.ResetTokenTTL)
	userSvc := application.NewUserService(users, container.GetGCS(), cfg.GCSBucket, logger)
	tourSvc := application.NewTourService(tours, reviews, logger, container.GetES(), cfg.ESToursIndex)
	reviewSvc := application.NewReviewService(reviews, tours, logger)
	checkout := &application.DirectCheckout{Bookings: bookings, BaseURL: cfg.PublicBaseURL}
	bookingSvc := application.NewBookingService(bookings, tours, checkout, logger)

	cookies := container.GetCookies()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, cookies, logger), users))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), users))
	r.Add(modules.NewTourModule(handlers.NewTourHandler(tourSvc, logger), users))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc, logger), users))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(bookingSvc, logger), users))
}
