package validation

import (
	"regexp"
	"strings"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - symbol: Must be non-empty
//
// Optional fields (validated if provided):
//   - color: Must be a #RRGGBB hex color
//   - amount: Must be non-negative
//   - avgBuy: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if req.Color != "" && !colorPattern.MatchString(req.Color) {
		errors["color"] = "color must be a hex color like #627EEA"
	}
	if req.Amount != nil && *req.Amount < 0 {
		errors["amount"] = "amount must be non-negative"
	}
	if req.AvgBuy != nil && *req.AvgBuy < 0 {
		errors["avgBuy"] = "avgBuy must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAsset validates an asset update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Symbol != nil && strings.TrimSpace(*req.Symbol) == "" {
		errors["symbol"] = "symbol cannot be empty"
	}
	if req.Color != nil && *req.Color != "" && !colorPattern.MatchString(*req.Color) {
		errors["color"] = "color must be a hex color like #627EEA"
	}
	if req.Amount != nil && *req.Amount < 0 {
		errors["amount"] = "amount must be non-negative"
	}
	if req.AvgBuy != nil && *req.AvgBuy < 0 {
		errors["avgBuy"] = "avgBuy must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
