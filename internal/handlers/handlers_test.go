package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/storyforge/storyforge/docs"
	"github.com/storyforge/storyforge/internal/handlers/auth"
	"github.com/storyforge/storyforge/internal/handlers/credits"
	"github.com/storyforge/storyforge/internal/handlers/payments"
	"github.com/storyforge/storyforge/internal/service"
	creditservice "github.com/storyforge/storyforge/internal/service/creditservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:    auth.NewMockService(ctrl),
		PricingService: credits.NewMockPricingService(ctrl),
		PaymentService: payments.NewMockService(ctrl),
		CreditService:  creditservice.New(nil, nil, nil),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockCreditsHandler := NewMockCreditsHandler(ctrl)
	mockPaymentsHandler := NewMockPaymentsHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockCreditsHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockCreditsHandler.EXPECT().GetPricing(gomock.Any(), gomock.Any()).AnyTimes()
	mockCreditsHandler.EXPECT().GetUsage(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentsHandler.EXPECT().Webhook(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		CreditsHandler:  mockCreditsHandler,
		PaymentsHandler: mockPaymentsHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"GET", "/api/user/credits/balance", http.StatusUnauthorized},
		{"GET", "/api/user/credits/pricing", http.StatusUnauthorized},
		{"GET", "/api/user/credits/usage", http.StatusUnauthorized},
		{"POST", "/api/payments/webhook", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
