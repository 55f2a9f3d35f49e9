package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	batchrepo "github.com/storyforge/storyforge/internal/repo/batch-repo"
	pricingrepo "github.com/storyforge/storyforge/internal/repo/pricing-repo"
	reservationrepo "github.com/storyforge/storyforge/internal/repo/reservation-repo"
	transactionrepo "github.com/storyforge/storyforge/internal/repo/transaction-repo"
	userrepo "github.com/storyforge/storyforge/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.BatchRepo)
	assert.NotNil(t, repo.ReservationRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.PricingRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &batchrepo.Repository{}, repo.BatchRepo)
	assert.IsType(t, &reservationrepo.Repository{}, repo.ReservationRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &pricingrepo.Repository{}, repo.PricingRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
