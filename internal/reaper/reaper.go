package reaper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/observability"
)

//go:generate mockgen -source=reaper.go -destination=reaper_mock.go -package=reaper

type ReservationRepo interface {
	FindStale(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error)
}

type Releaser interface {
	Release(ctx context.Context, reservationID uuid.UUID, userID uuid.UUID) error
}

var inFlight sync.Map

// Service is the safety net behind release: it sweeps reservations left
// in the reserved state past the TTL (crashed or hung callers) and
// force-releases them.
type Service struct {
	reservationRepo ReservationRepo
	releaser        Releaser
	ttl             time.Duration
	sweepInterval   time.Duration
	workerPool      WorkerPoolI
}

func New(cfg *config.Config, reservationRepo ReservationRepo, releaser Releaser) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		releaser:        releaser,
		ttl:             cfg.ReservationTTL,
		sweepInterval:   cfg.ReaperInterval,
		workerPool:      NewWorkerPool(10),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reservation reaper started",
		zap.Duration("ttl", s.ttl), zap.Duration("interval", s.sweepInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reaper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.ttl)
	stale, err := s.reservationRepo.FindStale(ctx, cutoff)
	if err != nil {
		zap.L().Error("Failed to fetch stale reservations", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, res := range stale {
		res := res

		if _, loaded := inFlight.LoadOrStore(res.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inFlight.Delete(res.ID)
				return s.release(ctx, res)
			})
			if err != nil {
				inFlight.Delete(res.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error releasing stale reservations", zap.Error(err))
	}
}

func (s *Service) release(ctx context.Context, res domain.Reservation) error {
	if err := s.releaser.Release(ctx, res.ID, uuid.Nil); err != nil {
		return err
	}
	observability.StaleReleased.Inc()
	zap.L().Warn("Stale reservation released",
		zap.String("reservationID", res.ID.String()),
		zap.String("jobID", res.JobID.String()),
		zap.Time("reservedAt", res.ReservedAt),
	)
	return nil
}
