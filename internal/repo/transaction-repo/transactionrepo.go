package transactionrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/pg"
)

// ErrDuplicateEvent marks a payment event whose external id was already
// recorded; duplicate webhook deliveries surface as this and are ignored.
var ErrDuplicateEvent = errors.New("payment event already recorded")

const uniqueViolationCode = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO credit_transactions (user_id, amount, kind, status, session_id, event_id, metadata)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		txn.UserID, txn.Amount, txn.Kind, txn.Status, txn.SessionID, txn.EventID, txn.Metadata,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateEvent
		}
		zap.L().Error("can't record transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) FindPurchaseBySessionID(ctx context.Context, sessionID string) (*domain.Transaction, error) {
	query := `
        SELECT id, user_id, amount, kind, status, COALESCE(session_id, ''), COALESCE(event_id, ''), created_at
        FROM credit_transactions
        WHERE session_id = $1 AND kind = 'purchase'
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, sessionID)

	var txn domain.Transaction
	err := row.Scan(&txn.ID, &txn.UserID, &txn.Amount, &txn.Kind, &txn.Status, &txn.SessionID, &txn.EventID, &txn.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find purchase transaction", zap.Error(err))
		return nil, err
	}
	return &txn, nil
}

func (r *Repository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE credit_transactions
        SET status = 'refunded'
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't mark transaction refunded", zap.Error(err))
		return err
	}
	return nil
}
