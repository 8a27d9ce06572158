package handlers

import (
	"net/http"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// PriceHandler handles HTTP requests for price refresh endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Refresh handles POST requests to fetch current prices for all tracked
// assets. On failure, last-known prices are kept and the error is recorded
// in the refresh status.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with PriceStatus
// Error: 502 Bad Gateway if the upstream price API call fails
func (h *PriceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.priceService.RefreshPrices(r.Context()); err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.priceService.Status())
}

// Status handles GET requests for the outcome of the most recent refresh.
//
// Endpoint: GET /api/prices/status
// Response: 200 OK with PriceStatus
func (h *PriceHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.priceService.Status())
}
