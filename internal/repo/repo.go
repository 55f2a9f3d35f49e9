package repo

import (
	"github.com/storyforge/storyforge/internal/pg"
	batchrepo "github.com/storyforge/storyforge/internal/repo/batch-repo"
	pricingrepo "github.com/storyforge/storyforge/internal/repo/pricing-repo"
	reservationrepo "github.com/storyforge/storyforge/internal/repo/reservation-repo"
	transactionrepo "github.com/storyforge/storyforge/internal/repo/transaction-repo"
	userrepo "github.com/storyforge/storyforge/internal/repo/user-repo"
	"github.com/storyforge/storyforge/internal/service/authservice"
	"github.com/storyforge/storyforge/internal/service/creditservice"
	"github.com/storyforge/storyforge/internal/service/paymentservice"
	"github.com/storyforge/storyforge/internal/service/pricingservice"
)

type Repositories struct {
	UserRepo        authservice.Repo
	BatchRepo       *batchrepo.Repository
	ReservationRepo creditservice.ReservationRepo
	TransactionRepo paymentservice.TransactionRepo
	PricingRepo     pricingservice.PricingRepo
}

func New(conn pg.Database) *Repositories {
	userRepo := userrepo.New(conn)
	batchRepo := batchrepo.New(conn)
	reservationRepo := reservationrepo.New(conn)
	transactionRepo := transactionrepo.New(conn)
	pricingRepo := pricingrepo.New(conn)

	return &Repositories{
		UserRepo:        userRepo,
		BatchRepo:       batchRepo,
		ReservationRepo: reservationRepo,
		TransactionRepo: transactionRepo,
		PricingRepo:     pricingRepo,
	}
}
