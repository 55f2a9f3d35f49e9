package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/storyforge/storyforge/docs"
	authhandlers "github.com/storyforge/storyforge/internal/handlers/auth"
	creditshandlers "github.com/storyforge/storyforge/internal/handlers/credits"
	paymentshandlers "github.com/storyforge/storyforge/internal/handlers/payments"
	"github.com/storyforge/storyforge/internal/service"
	"github.com/storyforge/storyforge/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type CreditsHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetPricing(w http.ResponseWriter, r *http.Request)
	GetUsage(w http.ResponseWriter, r *http.Request)
}

type PaymentsHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	CreditsHandler  CreditsHandler
	PaymentsHandler PaymentsHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		CreditsHandler:  creditshandlers.New(s.CreditService, s.PricingService),
		PaymentsHandler: paymentshandlers.New(s.PaymentService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/credits", func(r chi.Router) {
				r.Get("/balance", h.CreditsHandler.GetBalance)
				r.Get("/pricing", h.CreditsHandler.GetPricing)
				r.Get("/usage", h.CreditsHandler.GetUsage)
			})
		})
	})
	r.Post("/api/payments/webhook", h.PaymentsHandler.Webhook)

	return r
}
