package credits

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/dto"
	"github.com/storyforge/storyforge/pkg/auth"
	"github.com/storyforge/storyforge/pkg/utils"
)

const (
	defaultUsageLimit = 50
	maxUsageLimit     = 200
)

type Service interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	GetUsage(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Reservation, error)
}

type PricingService interface {
	GetEntries(ctx context.Context) ([]domain.PricingEntry, error)
}

type CreditsHandler struct {
	creditService  Service
	pricingService PricingService
}

func New(creditService Service, pricingService PricingService) *CreditsHandler {
	return &CreditsHandler{
		creditService:  creditService,
		pricingService: pricingService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current credit balance
//	@Description	Sum of remaining credits across the authenticated user's spendable batches.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current credit balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/credits/balance [get]
func (h *CreditsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(uuid.UUID)

	balance, err := h.creditService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: balance.InexactFloat64(),
	})
}

// GetPricing godoc
//
//	@Summary		Get operation pricing
//	@Description	List active catalog entries with their credit costs, ordered for display.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PricingEntryDTO	"Active pricing entries"
//	@Failure		401	{object}	utils.Response		"User not authorized"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/user/credits/pricing [get]
func (h *CreditsHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	entries, err := h.pricingService.GetEntries(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch pricing")
		return
	}

	response := make([]dto.PricingEntryDTO, len(entries))
	for i, e := range entries {
		response[i] = dto.PricingEntryDTO{
			Operation:    e.Operation,
			Cost:         e.Cost.InexactFloat64(),
			Description:  e.Description,
			DisplayName:  e.DisplayName,
			IsImageModel: e.IsImageModel,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetUsage godoc
//
//	@Summary		Get credit usage history
//	@Description	List the authenticated user's reservations newest-first. Limit defaults to 50, capped at 200.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int				false	"Maximum number of entries"
//	@Success		200		{array}		dto.UsageEntryDTO	"Usage history"
//	@Success		204		{object}	utils.Response		"No usage recorded"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/user/credits/usage [get]
func (h *CreditsHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(uuid.UUID)

	limit := defaultUsageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}
	if limit > maxUsageLimit {
		limit = maxUsageLimit
	}

	usage, err := h.creditService.GetUsage(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch usage")
		return
	}

	if len(usage) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No usage recorded")
		return
	}

	response := make([]dto.UsageEntryDTO, len(usage))
	for i, res := range usage {
		response[i] = dto.UsageEntryDTO{
			ID:          res.ID.String(),
			JobID:       res.JobID.String(),
			JobKind:     res.JobKind,
			Amount:      res.Amount.InexactFloat64(),
			Status:      res.Status,
			Description: res.Description,
			ReservedAt:  res.ReservedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
