package creditservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/observability"
	"github.com/storyforge/storyforge/internal/pg"
)

//go:generate mockgen -source=creditservice.go -destination=creditservice_mock.go -package=creditservice

type BatchRepo interface {
	LockSpendable(ctx context.Context, userID uuid.UUID) ([]domain.CreditBatch, error)
	SumRemaining(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Create(ctx context.Context, batch *domain.CreditBatch) (*domain.CreditBatch, error)
	SetRemaining(ctx context.Context, batchID uuid.UUID, remaining decimal.Decimal) error
	AddRemaining(ctx context.Context, batchID uuid.UUID, amount decimal.Decimal) (bool, error)
}

type ReservationRepo interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	Lock(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	FindStale(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Reservation, error)
}

// InsufficientCreditsError is returned by Reserve when the user's
// spendable total cannot cover the requested amount. No state is mutated.
type InsufficientCreditsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %s, need %s", e.Balance, e.Required)
}

// allowedMetadataKeys is the whitelist of caller-supplied metadata keys
// persisted with a reservation. Unknown keys are dropped.
var allowedMetadataKeys = map[string]struct{}{
	"prompt":           {},
	"title":            {},
	"pages":            {},
	"with_images":      {},
	"cost_per_page":    {},
	"total_cost":       {},
	"pricing_snapshot": {},
}

type Service struct {
	batchRepo       BatchRepo
	reservationRepo ReservationRepo
	txManager       pg.TXManager
}

func New(batchRepo BatchRepo, reservationRepo ReservationRepo, txManager pg.TXManager) *Service {
	return &Service{
		batchRepo:       batchRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	balance, err := s.batchRepo.SumRemaining(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return decimal.Zero, err
	}
	return balance, nil
}

// Reserve atomically charges amount against the user's batches oldest
// first, recording which batch funded how much so the charge can be
// reversed exactly. A non-positive amount is a no-cost operation and
// never touches storage.
func (s *Service) Reserve(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, jobID uuid.UUID, jobKind, description string, metadata map[string]any) (uuid.UUID, error) {
	if amount.Sign() <= 0 {
		return uuid.Nil, nil
	}

	var reservationID uuid.UUID
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		batches, err := s.batchRepo.LockSpendable(ctx, userID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, b := range batches {
			total = total.Add(b.RemainingAmount)
		}
		if total.LessThan(amount) {
			return &InsufficientCreditsError{Balance: total, Required: amount}
		}

		left := amount
		var draws []domain.BatchDraw
		for _, b := range batches {
			if left.Sign() <= 0 {
				break
			}
			take := decimal.Min(b.RemainingAmount, left)
			if err := s.batchRepo.SetRemaining(ctx, b.ID, b.RemainingAmount.Sub(take)); err != nil {
				return err
			}
			draws = append(draws, domain.BatchDraw{BatchID: b.ID, Amount: take})
			left = left.Sub(take)
		}

		res := &domain.Reservation{
			UserID:      userID,
			JobID:       jobID,
			JobKind:     jobKind,
			Amount:      amount,
			Status:      domain.ReservationStatusReserved,
			Description: description,
			Metadata:    filterMetadata(metadata),
			Consumption: draws,
			ReservedAt:  time.Now().UTC(),
		}
		if _, err := s.reservationRepo.Create(ctx, res); err != nil {
			return err
		}
		reservationID = res.ID
		return nil
	})
	if err != nil {
		var insufficient *InsufficientCreditsError
		if errors.As(err, &insufficient) {
			observability.ReservationsTotal.WithLabelValues("insufficient").Inc()
		}
		return uuid.Nil, err
	}

	observability.ReservationsTotal.WithLabelValues("reserved").Inc()
	observability.CreditsReserved.Add(amount.InexactFloat64())
	zap.L().Info("credits reserved",
		zap.String("userID", userID.String()),
		zap.String("jobID", jobID.String()),
		zap.String("jobKind", jobKind),
		zap.String("amount", amount.String()),
		zap.String("reservationID", reservationID.String()),
	)
	return reservationID, nil
}

// Confirm finalizes a reserved charge. Batch amounts stay as they are;
// the spend already happened at reservation time. Safe to call twice.
func (s *Service) Confirm(ctx context.Context, reservationID uuid.UUID, userID uuid.UUID) error {
	if reservationID == uuid.Nil {
		return nil
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		res, err := s.reservationRepo.Lock(ctx, reservationID, userID)
		if err != nil {
			return err
		}
		if res == nil || res.Status != domain.ReservationStatusReserved {
			return nil
		}
		return s.reservationRepo.UpdateStatus(ctx, reservationID, domain.ReservationStatusConfirmed)
	})
	if err != nil {
		return err
	}
	observability.ReservationsTotal.WithLabelValues("confirmed").Inc()
	zap.L().Info("reservation confirmed", zap.String("reservationID", reservationID.String()))
	return nil
}

// Release reverses a reserved charge, restoring every drawn amount to its
// originating batch. A batch that disappeared since the reserve is
// skipped; restoration is best-effort per batch. Safe to call twice.
func (s *Service) Release(ctx context.Context, reservationID uuid.UUID, userID uuid.UUID) error {
	if reservationID == uuid.Nil {
		return nil
	}
	released := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		res, err := s.reservationRepo.Lock(ctx, reservationID, userID)
		if err != nil {
			return err
		}
		if res == nil || res.Status != domain.ReservationStatusReserved {
			return nil
		}

		for _, draw := range res.Consumption {
			restored, err := s.batchRepo.AddRemaining(ctx, draw.BatchID, draw.Amount)
			if err != nil {
				return err
			}
			if !restored {
				zap.L().Warn("batch referenced by reservation no longer exists, skipping restore",
					zap.String("reservationID", reservationID.String()),
					zap.String("batchID", draw.BatchID.String()),
				)
			}
		}

		if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.ReservationStatusReleased); err != nil {
			return err
		}
		released = true
		observability.CreditsReleased.Add(res.Amount.InexactFloat64())
		return nil
	})
	if err != nil {
		return err
	}
	if released {
		observability.ReservationsTotal.WithLabelValues("released").Inc()
		zap.L().Info("reservation released", zap.String("reservationID", reservationID.String()))
	}
	return nil
}

// CleanupStale force-releases reservations abandoned in the reserved
// state past the TTL and returns how many were released.
func (s *Service) CleanupStale(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	stale, err := s.reservationRepo.FindStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, res := range stale {
		if err := s.Release(ctx, res.ID, uuid.Nil); err != nil {
			zap.L().Error("failed to release stale reservation",
				zap.String("reservationID", res.ID.String()), zap.Error(err))
			continue
		}
		observability.StaleReleased.Inc()
		count++
	}
	if count > 0 {
		zap.L().Warn("cleaned up stale reservations", zap.Int("count", count))
	}
	return count, nil
}

func (s *Service) GetUsage(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Reservation, error) {
	history, err := s.reservationRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch usage history", zap.Error(err))
		return nil, err
	}
	return history, nil
}

// GrantSignupBonus creates the one-time bonus batch for a new user. The
// batch has no linked transaction.
func (s *Service) GrantSignupBonus(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return nil
	}
	batch := &domain.CreditBatch{
		UserID:          userID,
		OriginalAmount:  amount,
		RemainingAmount: amount,
		Source:          domain.BatchSourceSignupBonus,
	}
	if _, err := s.batchRepo.Create(ctx, batch); err != nil {
		zap.L().Error("can't grant signup bonus", zap.Error(err))
		return err
	}
	return nil
}

func filterMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	safe := make(map[string]any, len(metadata))
	for k, v := range metadata {
		if _, ok := allowedMetadataKeys[k]; ok {
			safe[k] = v
		}
	}
	return safe
}
