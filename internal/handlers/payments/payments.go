package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/dto"
	"github.com/storyforge/storyforge/internal/service/paymentservice"
	"github.com/storyforge/storyforge/pkg/utils"
)

type Service interface {
	Record(ctx context.Context, txn *domain.Transaction) error
}

type PaymentsHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentsHandler {
	return &PaymentsHandler{
		paymentService: paymentService,
	}
}

// Webhook godoc
//
//	@Summary		Record a payment event
//	@Description	Accept one purchase or refund event from the payment provider and apply its ledger effect. Duplicate event ids are acknowledged without effect.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentEventRequestDTO	true	"Payment event payload"
//	@Success		200		{object}	dto.PaymentEventResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Refund blocked or unmatched"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/webhook [post]
func (h *PaymentsHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentEventRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	amount := decimal.NewFromFloat(req.Amount)
	if amount.Sign() <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	if req.Kind != domain.TransactionKindPurchase && req.Kind != domain.TransactionKindRefund {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown event kind")
		return
	}

	txn := &domain.Transaction{
		UserID:    userID,
		Amount:    amount,
		Kind:      req.Kind,
		Status:    domain.TransactionStatusCompleted,
		SessionID: req.SessionID,
		EventID:   req.EventID,
		Metadata:  req.Metadata,
	}

	if err := h.paymentService.Record(r.Context(), txn); err != nil {
		var refundBlocked *paymentservice.RefundBlockedError
		switch {
		case errors.As(err, &refundBlocked):
			utils.RespondWithError(w, http.StatusConflict, refundBlocked.Error())
		case errors.Is(err, paymentservice.ErrRefundNotFound):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentEventResponseDTO{
		Message: "Payment event recorded",
	})
}
