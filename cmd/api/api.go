package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"roamingg/internal/booking"
	"roamingg/internal/bookings"
	"roamingg/internal/listing"
	"roamingg/internal/ratelimiter"
	"roamingg/internal/session"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	sessions    *session.Store
	listings    *listing.Client
	bookings    *bookings.Client
	checkout    booking.PaymentRedirector
	rateLimiter *ratelimiter.FixedWindowRateLimiter
}

type config struct {
	addr              string
	env               string
	listingServiceURL string
	bookingServiceURL string
	checkoutURL       string
	collaboratorTTL   time.Duration
	sessionTTL        time.Duration
	rateLimiter       ratelimiter.Config
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)

	// Request context deadline; handlers holding a collaborator call past
	// this are cancelled.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", app.allBookingsHandler)
			r.Get("/mine", app.myBookingsHandler)
			r.Put("/{bookingID}/complete", app.completeBookingHandler)

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", app.createSessionHandler)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", app.getSessionHandler)
					r.Delete("/", app.deleteSessionHandler)
					r.Put("/rooms", app.setRoomsHandler)
					r.Put("/dates", app.setDatesHandler)
					r.Put("/payment-method", app.setPaymentMethodHandler)
					r.Post("/guests", app.addGuestHandler)
					r.Put("/guests/{guestIndex}", app.updateGuestHandler)
					r.Delete("/guests/{guestIndex}", app.removeGuestHandler)
					r.Post("/check-availability", app.checkAvailabilityHandler)
					r.Post("/submit", app.submitHandler)
				})
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
