package paymentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/observability"
	"github.com/storyforge/storyforge/internal/pg"
	transactionrepo "github.com/storyforge/storyforge/internal/repo/transaction-repo"
)

//go:generate mockgen -source=paymentservice.go -destination=paymentservice_mock.go -package=paymentservice

type TransactionRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	FindPurchaseBySessionID(ctx context.Context, sessionID string) (*domain.Transaction, error)
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}

type BatchRepo interface {
	Create(ctx context.Context, batch *domain.CreditBatch) (*domain.CreditBatch, error)
	LockByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.CreditBatch, error)
	MarkRefunded(ctx context.Context, batchID uuid.UUID) error
}

// RefundBlockedError is returned when a refund targets a batch that is
// no longer fully unused. The external payment event stays recorded but
// its ledger effect does not apply.
type RefundBlockedError struct {
	AlreadyUsed decimal.Decimal
}

func (e *RefundBlockedError) Error() string {
	return fmt.Sprintf("cannot refund: %s credits already used", e.AlreadyUsed)
}

// ErrRefundNotFound marks a refund whose payment session has no matching
// purchase batch in the ledger.
var ErrRefundNotFound = errors.New("no matching purchase found for refund")

// Propagator turns a newly recorded transaction into its ledger effect.
// It always runs inside the same unit of work that inserted the
// transaction, so the two are never observed independently.
type Propagator struct {
	batchRepo       BatchRepo
	transactionRepo TransactionRepo
}

func NewPropagator(batchRepo BatchRepo, transactionRepo TransactionRepo) *Propagator {
	return &Propagator{
		batchRepo:       batchRepo,
		transactionRepo: transactionRepo,
	}
}

func (p *Propagator) OnRecorded(ctx context.Context, txn *domain.Transaction) error {
	switch txn.Kind {
	case domain.TransactionKindPurchase:
		batch := &domain.CreditBatch{
			UserID:          txn.UserID,
			OriginalAmount:  txn.Amount,
			RemainingAmount: txn.Amount,
			Source:          domain.BatchSourcePurchase,
			TransactionID:   &txn.ID,
		}
		if _, err := p.batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		return nil

	case domain.TransactionKindRefund:
		purchase, err := p.transactionRepo.FindPurchaseBySessionID(ctx, txn.SessionID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return ErrRefundNotFound
		}

		batch, err := p.batchRepo.LockByTransactionID(ctx, purchase.ID)
		if err != nil {
			return err
		}
		if batch == nil {
			return ErrRefundNotFound
		}

		// Refund only if the batch is fully unused.
		if !batch.RemainingAmount.Equal(batch.OriginalAmount) {
			return &RefundBlockedError{AlreadyUsed: batch.OriginalAmount.Sub(batch.RemainingAmount)}
		}

		if err := p.batchRepo.MarkRefunded(ctx, batch.ID); err != nil {
			return err
		}
		return p.transactionRepo.MarkRefunded(ctx, purchase.ID)

	default:
		return fmt.Errorf("unknown transaction kind: %s", txn.Kind)
	}
}

type Service struct {
	transactionRepo TransactionRepo
	propagator      *Propagator
	txManager       pg.TXManager
}

func New(transactionRepo TransactionRepo, propagator *Propagator, txManager pg.TXManager) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		propagator:      propagator,
		txManager:       txManager,
	}
}

// Record inserts one external payment event and applies its ledger
// effect atomically. A duplicate delivery of an already-recorded event
// id is logged and ignored.
func (s *Service) Record(ctx context.Context, txn *domain.Transaction) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		created, err := s.transactionRepo.Create(ctx, txn)
		if err != nil {
			return err
		}
		return s.propagator.OnRecorded(ctx, created)
	})

	if errors.Is(err, transactionrepo.ErrDuplicateEvent) {
		zap.L().Info("duplicate payment event ignored",
			zap.String("eventID", txn.EventID), zap.String("kind", txn.Kind))
		observability.WebhookEvents.WithLabelValues(txn.Kind, "duplicate").Inc()
		return nil
	}
	if err != nil {
		observability.WebhookEvents.WithLabelValues(txn.Kind, "failed").Inc()
		return err
	}

	observability.WebhookEvents.WithLabelValues(txn.Kind, "applied").Inc()
	zap.L().Info("payment event applied",
		zap.String("userID", txn.UserID.String()),
		zap.String("kind", txn.Kind),
		zap.String("amount", txn.Amount.String()),
	)
	return nil
}
