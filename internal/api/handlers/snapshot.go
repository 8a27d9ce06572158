package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// SnapshotHandler handles HTTP requests for portfolio backup and restore.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Export handles GET requests to download the full portfolio as a snapshot
// document. The response carries a Content-Disposition header so browsers
// save it as a dated file.
//
// Endpoint: GET /api/snapshot
// Response: 200 OK with Snapshot
// Error: 500 Internal Server Error if export fails
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.Export(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportSnapshot.Error(), err.Error())
		return
	}

	filename := fmt.Sprintf("portfolio-%s.json", snapshot.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Import handles POST requests to restore the portfolio from a snapshot.
// The snapshot replaces all existing data; validation failures reject the
// whole document and leave the current state untouched.
//
// Endpoint: POST /api/snapshot
// Request Body: Snapshot
// Response: 200 OK with ImportResult
// Error: 400 Bad Request if the body or snapshot contents are invalid
// Error: 500 Internal Server Error if the import fails
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snapshot model.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidSnapshot.Error(), err.Error())
		return
	}

	result, err := h.snapshotService.Import(r.Context(), snapshot)
	if err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidSnapshot.Error(), validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Clear handles DELETE requests to remove every asset and transaction.
// There is no undo beyond a previously exported snapshot.
//
// Endpoint: DELETE /api/snapshot
// Response: 204 No Content on success
// Error: 500 Internal Server Error if the reset fails
func (h *SnapshotHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshotService.ClearAll(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
