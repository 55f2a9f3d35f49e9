package service

import (
	"github.com/shopspring/decimal"

	"github.com/storyforge/storyforge/internal/handlers/auth"
	"github.com/storyforge/storyforge/internal/handlers/credits"
	"github.com/storyforge/storyforge/internal/handlers/payments"

	pkgauth "github.com/storyforge/storyforge/pkg/auth"
	"github.com/storyforge/storyforge/pkg/cache"

	"github.com/storyforge/storyforge/internal/pg"
	"github.com/storyforge/storyforge/internal/repo"
	authservice "github.com/storyforge/storyforge/internal/service/authservice"
	creditservice "github.com/storyforge/storyforge/internal/service/creditservice"
	paymentservice "github.com/storyforge/storyforge/internal/service/paymentservice"
	pricingservice "github.com/storyforge/storyforge/internal/service/pricingservice"
)

type Services struct {
	AuthService    auth.Service
	PricingService credits.PricingService
	PaymentService payments.Service

	// CreditService is kept concrete: the HTTP layer uses its read
	// surface while the reaper and job workers drive reserve, confirm
	// and release.
	CreditService *creditservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, c cache.Cache, signupBonus decimal.Decimal) *Services {
	creditService := creditservice.New(repo.BatchRepo, repo.ReservationRepo, txManager)
	pricingService := pricingservice.New(repo.PricingRepo, c)
	propagator := paymentservice.NewPropagator(repo.BatchRepo, repo.TransactionRepo)
	paymentService := paymentservice.New(repo.TransactionRepo, propagator, txManager)
	authService := authservice.New(repo.UserRepo, creditService, &pkgauth.HashService{}, &pkgauth.JWTService{}, txManager, signupBonus)

	return &Services{
		AuthService:    authService,
		PricingService: pricingService,
		PaymentService: paymentService,
		CreditService:  creditService,
	}
}
