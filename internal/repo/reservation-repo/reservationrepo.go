package reservationrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query := `
        INSERT INTO credit_reservations (user_id, job_id, job_kind, amount, status, description, metadata, consumption, reserved_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		res.UserID, res.JobID, res.JobKind, res.Amount, res.Status,
		res.Description, res.Metadata, res.Consumption, res.ReservedAt,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		zap.L().Error("can't create reservation", zap.Error(err))
		return nil, err
	}
	return res, nil
}

// Lock loads one reservation under an exclusive row lock. The zero owner
// id skips the ownership check (internal callers like the reaper).
func (r *Repository) Lock(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Reservation, error) {
	query := `
        SELECT id, user_id, job_id, job_kind, amount, status, description, metadata, consumption, reserved_at
        FROM credit_reservations
        WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
        FOR UPDATE
    `
	var owner any
	if userID != uuid.Nil {
		owner = userID
	}
	row := r.db.QueryRow(ctx, query, id, owner)

	var res domain.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.JobID, &res.JobKind, &res.Amount, &res.Status, &res.Description, &res.Metadata, &res.Consumption, &res.ReservedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock reservation", zap.Error(err))
		return nil, err
	}
	return &res, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
        UPDATE credit_reservations
        SET status = $1, updated_at = now()
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, status, id); err != nil {
		zap.L().Error("can't update reservation status", zap.Error(err))
		return err
	}
	return nil
}

// FindStale returns reservations still reserved past the cutoff,
// presumed abandoned by crashed callers.
func (r *Repository) FindStale(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error) {
	query := `
        SELECT id, user_id, job_id, job_kind, amount, status, description, metadata, consumption, reserved_at
        FROM credit_reservations
        WHERE status = 'reserved' AND reserved_at < $1
        ORDER BY reserved_at ASC
    `
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		zap.L().Error("can't fetch stale reservations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var stale []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(&res.ID, &res.UserID, &res.JobID, &res.JobKind, &res.Amount, &res.Status, &res.Description, &res.Metadata, &res.Consumption, &res.ReservedAt)
		if err != nil {
			zap.L().Error("can't scan stale reservation row", zap.Error(err))
			return nil, err
		}
		stale = append(stale, res)
	}
	return stale, nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Reservation, error) {
	query := `
        SELECT id, user_id, job_id, job_kind, amount, status, description, metadata, consumption, reserved_at, created_at
        FROM credit_reservations
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("can't fetch usage history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var history []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(&res.ID, &res.UserID, &res.JobID, &res.JobKind, &res.Amount, &res.Status, &res.Description, &res.Metadata, &res.Consumption, &res.ReservedAt, &res.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan usage row", zap.Error(err))
			return nil, err
		}
		history = append(history, res)
	}
	return history, nil
}
