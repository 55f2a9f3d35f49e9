package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storyforge/storyforge/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	txnID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	query := regexp.QuoteMeta(`
        INSERT INTO credit_transactions (user_id, amount, kind, status, session_id, event_id, metadata)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
        RETURNING id, created_at
    `)

	tests := []struct {
		name        string
		txn         *domain.Transaction
		mockSetup   func(txn *domain.Transaction)
		expectedErr error
		expectErr   bool
	}{
		{
			name: "Records purchase",
			txn: &domain.Transaction{
				UserID:    userID,
				Amount:    dec("10.00"),
				Kind:      domain.TransactionKindPurchase,
				Status:    domain.TransactionStatusCompleted,
				SessionID: "cs_1",
				EventID:   "evt_1",
			},
			mockSetup: func(txn *domain.Transaction) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(txnID, now)
				mock.ExpectQuery(query).
					WithArgs(userID, dec("10.00"), domain.TransactionKindPurchase, domain.TransactionStatusCompleted,
						"cs_1", "evt_1", pgxmock.AnyArg()).
					WillReturnRows(rows)
			},
		},
		{
			name: "Duplicate event id",
			txn: &domain.Transaction{
				UserID:  userID,
				Amount:  dec("10.00"),
				Kind:    domain.TransactionKindPurchase,
				Status:  domain.TransactionStatusCompleted,
				EventID: "evt_1",
			},
			mockSetup: func(txn *domain.Transaction) {
				mock.ExpectQuery(query).
					WithArgs(userID, dec("10.00"), domain.TransactionKindPurchase, domain.TransactionStatusCompleted,
						"", "evt_1", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
			},
			expectErr:   true,
			expectedErr: ErrDuplicateEvent,
		},
		{
			name: "Database error",
			txn: &domain.Transaction{
				UserID: userID,
				Amount: dec("10.00"),
				Kind:   domain.TransactionKindRefund,
				Status: domain.TransactionStatusCompleted,
			},
			mockSetup: func(txn *domain.Transaction) {
				mock.ExpectQuery(query).
					WithArgs(userID, dec("10.00"), domain.TransactionKindRefund, domain.TransactionStatusCompleted,
						"", "", pgxmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup(tt.txn)
			created, err := repo.Create(context.Background(), tt.txn)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, created)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, txnID, created.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindPurchaseBySessionID(t *testing.T) {
	repo, mock := NewMock(t)

	txnID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	query := regexp.QuoteMeta(`
        SELECT id, user_id, amount, kind, status, COALESCE(session_id, ''), COALESCE(event_id, ''), created_at
        FROM credit_transactions
        WHERE session_id = $1 AND kind = 'purchase'
        LIMIT 1
    `)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Finds purchase",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "kind", "status", "session_id", "event_id", "created_at"}).
					AddRow(txnID, userID, dec("10.00"), domain.TransactionKindPurchase, domain.TransactionStatusCompleted, "cs_1", "evt_1", now)
				mock.ExpectQuery(query).WithArgs("cs_1").WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "Unknown session returns nil",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("cs_1").WillReturnError(pgx.ErrNoRows)
			},
			found: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("cs_1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			txn, err := repo.FindPurchaseBySessionID(context.Background(), "cs_1")

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.NotNil(t, txn)
				assert.Equal(t, txnID, txn.ID)
			} else {
				assert.Nil(t, txn)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_MarkRefunded(t *testing.T) {
	repo, mock := NewMock(t)

	txnID := uuid.New()

	query := regexp.QuoteMeta(`
        UPDATE credit_transactions
        SET status = 'refunded'
        WHERE id = $1
    `)

	t.Run("Marks transaction refunded", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(txnID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.MarkRefunded(context.Background(), txnID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(txnID).
			WillReturnError(errors.New("database error"))

		err := repo.MarkRefunded(context.Background(), txnID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
