package batchrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// LockSpendable loads the user's spendable batches oldest-first and takes
// exclusive row locks on them. Must run inside a transaction; the id
// tie-break keeps FIFO deterministic for equal creation times.
func (r *Repository) LockSpendable(ctx context.Context, userID uuid.UUID) ([]domain.CreditBatch, error) {
	query := `
        SELECT id, user_id, original_amount, remaining_amount, source, transaction_id, is_refunded, created_at
        FROM credit_batches
        WHERE user_id = $1 AND remaining_amount > 0 AND is_refunded = false
        ORDER BY created_at ASC, id ASC
        FOR UPDATE
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't lock spendable batches", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var batches []domain.CreditBatch
	for rows.Next() {
		var b domain.CreditBatch
		err := rows.Scan(&b.ID, &b.UserID, &b.OriginalAmount, &b.RemainingAmount, &b.Source, &b.TransactionID, &b.IsRefunded, &b.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan batch row", zap.Error(err))
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func (r *Repository) SumRemaining(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(remaining_amount), 0)
        FROM credit_batches
        WHERE user_id = $1 AND is_refunded = false
    `
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		zap.L().Error("can't sum remaining credits", zap.Error(err))
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *Repository) Create(ctx context.Context, batch *domain.CreditBatch) (*domain.CreditBatch, error) {
	query := `
        INSERT INTO credit_batches (user_id, original_amount, remaining_amount, source, transaction_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, batch.UserID, batch.OriginalAmount, batch.RemainingAmount, batch.Source, batch.TransactionID).
		Scan(&batch.ID, &batch.CreatedAt)
	if err != nil {
		zap.L().Error("can't create credit batch", zap.Error(err))
		return nil, err
	}
	return batch, nil
}

func (r *Repository) SetRemaining(ctx context.Context, batchID uuid.UUID, remaining decimal.Decimal) error {
	query := `
        UPDATE credit_batches
        SET remaining_amount = $1, updated_at = now()
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, remaining, batchID); err != nil {
		zap.L().Error("can't update batch remaining amount", zap.Error(err))
		return err
	}
	return nil
}

// AddRemaining restores a drawn amount to a batch. The false return means
// the batch no longer exists; release treats that as skippable.
func (r *Repository) AddRemaining(ctx context.Context, batchID uuid.UUID, amount decimal.Decimal) (bool, error) {
	query := `
        UPDATE credit_batches
        SET remaining_amount = remaining_amount + $1, updated_at = now()
        WHERE id = $2
    `
	tag, err := r.db.Exec(ctx, query, amount, batchID)
	if err != nil {
		zap.L().Error("can't restore batch remaining amount", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) LockByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.CreditBatch, error) {
	query := `
        SELECT id, user_id, original_amount, remaining_amount, source, transaction_id, is_refunded, created_at
        FROM credit_batches
        WHERE transaction_id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, transactionID)

	var b domain.CreditBatch
	err := row.Scan(&b.ID, &b.UserID, &b.OriginalAmount, &b.RemainingAmount, &b.Source, &b.TransactionID, &b.IsRefunded, &b.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find batch by transaction", zap.Error(err))
		return nil, err
	}
	return &b, nil
}

func (r *Repository) MarkRefunded(ctx context.Context, batchID uuid.UUID) error {
	query := `
        UPDATE credit_batches
        SET is_refunded = true, updated_at = now()
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, batchID); err != nil {
		zap.L().Error("can't mark batch refunded", zap.Error(err))
		return err
	}
	return nil
}
