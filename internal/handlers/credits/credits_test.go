package credits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/dto"
	"github.com/storyforge/storyforge/pkg/auth"
	"github.com/storyforge/storyforge/pkg/utils"
)

func NewMock(t *testing.T) (*CreditsHandler, *MockService, *MockPricingService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	creditService := NewMockService(ctrl)
	pricingService := NewMockPricingService(ctrl)
	handler := New(creditService, pricingService)
	return handler, creditService, pricingService
}

func authedRequest(method, url string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, url, nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestGetBalanceHandler(t *testing.T) {
	handler, creditService, _ := NewMock(t)

	userID := uuid.New()

	tests := []struct {
		name            string
		prepareMock     func()
		expectedCode    int
		expectedBalance float64
	}{
		{
			name: "Successful balance fetch",
			prepareMock: func() {
				creditService.EXPECT().GetBalance(gomock.Any(), userID).Return(decimal.RequireFromString("12.50"), nil)
			},
			expectedCode:    http.StatusOK,
			expectedBalance: 12.5,
		},
		{
			name: "Service error",
			prepareMock: func() {
				creditService.EXPECT().GetBalance(gomock.Any(), userID).Return(decimal.Zero, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("GET", "/api/user/credits/balance", userID)
			rr := httptest.NewRecorder()

			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp dto.BalanceResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, resp.Balance)
			}
		})
	}
}

func TestGetPricingHandler(t *testing.T) {
	handler, _, pricingService := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Successful pricing fetch",
			prepareMock: func() {
				pricingService.EXPECT().GetEntries(gomock.Any()).Return([]domain.PricingEntry{
					{Operation: "story_generation", Cost: decimal.RequireFromString("1.00"), DisplayName: "Story"},
					{Operation: "page_with_images", Cost: decimal.RequireFromString("2.00"), DisplayName: "Illustrated page"},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Service error",
			prepareMock: func() {
				pricingService.EXPECT().GetEntries(gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("GET", "/api/user/credits/pricing", uuid.New())
			rr := httptest.NewRecorder()

			handler.GetPricing(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []dto.PricingEntryDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.expectedLen)
				assert.Equal(t, "story_generation", resp[0].Operation)
				assert.Equal(t, 1.0, resp[0].Cost)
			}
		})
	}
}

func TestGetUsageHandler(t *testing.T) {
	handler, creditService, _ := NewMock(t)

	userID := uuid.New()
	reservedAt := time.Now().UTC().Truncate(time.Second)

	tests := []struct {
		name          string
		url           string
		prepareMock   func()
		expectedCode  int
		expectedLen   int
		expectedError string
	}{
		{
			name: "Successful usage fetch",
			url:  "/api/user/credits/usage",
			prepareMock: func() {
				creditService.EXPECT().GetUsage(gomock.Any(), userID, defaultUsageLimit).Return([]domain.Reservation{
					{
						ID:         uuid.New(),
						JobID:      uuid.New(),
						JobKind:    domain.JobKindStory,
						Amount:     decimal.RequireFromString("1.00"),
						Status:     domain.ReservationStatusConfirmed,
						ReservedAt: reservedAt,
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "Explicit limit",
			url:  "/api/user/credits/usage?limit=5",
			prepareMock: func() {
				creditService.EXPECT().GetUsage(gomock.Any(), userID, 5).Return([]domain.Reservation{
					{ID: uuid.New(), JobID: uuid.New(), JobKind: domain.JobKindBook, Amount: decimal.RequireFromString("8.00"), Status: domain.ReservationStatusReleased, ReservedAt: reservedAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "Limit above cap is clamped",
			url:  "/api/user/credits/usage?limit=10000",
			prepareMock: func() {
				creditService.EXPECT().GetUsage(gomock.Any(), userID, maxUsageLimit).Return([]domain.Reservation{
					{ID: uuid.New(), JobID: uuid.New(), JobKind: domain.JobKindStory, Amount: decimal.RequireFromString("1.00"), Status: domain.ReservationStatusConfirmed, ReservedAt: reservedAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:          "Invalid limit",
			url:           "/api/user/credits/usage?limit=abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid limit",
		},
		{
			name: "No usage recorded",
			url:  "/api/user/credits/usage",
			prepareMock: func() {
				creditService.EXPECT().GetUsage(gomock.Any(), userID, defaultUsageLimit).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Service error",
			url:  "/api/user/credits/usage",
			prepareMock: func() {
				creditService.EXPECT().GetUsage(gomock.Any(), userID, defaultUsageLimit).Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to fetch usage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("GET", tt.url, userID)
			rr := httptest.NewRecorder()

			handler.GetUsage(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []dto.UsageEntryDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.expectedLen)
			}

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}
