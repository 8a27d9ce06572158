package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// ParserHandler handles HTTP requests for the transaction text parser.
type ParserHandler struct {
	parserService *service.ParserService
}

// NewParserHandler creates a new ParserHandler with the provided service dependency.
func NewParserHandler(parserService *service.ParserService) *ParserHandler {
	return &ParserHandler{
		parserService: parserService,
	}
}

// ParseResponse wraps a suggestion with the parser that produced it
// ("llm" or "rules").
type ParseResponse struct {
	Suggestion model.TransactionSuggestion `json:"suggestion"`
	Source     string                      `json:"source"`
}

// Parse handles POST requests to turn a free-form transaction note into a
// structured suggestion. The language model is used when a key is
// configured; otherwise, and on any model failure, the rules parser answers.
//
// Endpoint: POST /api/parse
// Request Body: ParseRequest (text)
// Response: 200 OK with ParseResponse
// Error: 400 Bad Request if the text is empty or the body is invalid
// Error: 500 Internal Server Error if parsing fails
func (h *ParserHandler) Parse(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ParseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "text is required")
		return
	}

	suggestion, source, err := h.parserService.ParseText(r.Context(), req.Text)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToParse.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ParseResponse{
		Suggestion: suggestion,
		Source:     source,
	})
}

// ParserKeyStatus handles GET requests reporting whether a language model
// API key is configured. The key itself is never returned.
//
// Endpoint: GET /api/system/parser-key
// Response: 200 OK with {"configured": bool}
func (h *ParserHandler) ParserKeyStatus(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]bool{
		"configured": h.parserService.KeyConfigured(r.Context()),
	})
}

// SetParserKey handles POST requests to store the language model API key.
// The key is encrypted at rest; an empty key clears the stored value.
//
// Endpoint: POST /api/system/parser-key
// Request Body: SetParserKeyRequest (apiKey)
// Response: 204 No Content on success
// Error: 400 Bad Request if the request body is invalid
// Error: 409 Conflict if no encryption key is configured
// Error: 500 Internal Server Error if storing fails
func (h *ParserHandler) SetParserKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetParserKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.parserService.SetAPIKey(r.Context(), req.APIKey); err != nil {
		if errors.Is(err, apperrors.ErrSecretKeyMissing) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrSecretKeyMissing.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store parser key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
