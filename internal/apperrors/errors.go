package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSettingNotFound indicates that a system setting key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateSymbol indicates that an asset with the same symbol already exists.
	ErrDuplicateSymbol = errors.New("asset symbol already exists")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidSnapshot indicates that an imported snapshot failed structural
	// validation. The whole batch is rejected; no partial import is performed.
	ErrInvalidSnapshot = errors.New("invalid snapshot payload")

	// ErrParserNotConfigured indicates that no language model API key is
	// available for model-based parsing.
	ErrParserNotConfigured = errors.New("parser API key not configured")

	// ErrSecretKeyMissing indicates that no fernet secret key is configured,
	// so encrypted settings cannot be stored or read.
	ErrSecretKeyMissing = errors.New("secret key not configured")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Asset operation errors
	ErrFailedToRetrieveAssets = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset  = errors.New("failed to retrieve asset")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Portfolio operation errors
	ErrFailedToGetPortfolioSummary = errors.New("failed to get portfolio summary")

	// Price operation errors
	ErrFailedToRefreshPrices = errors.New("failed to refresh prices")

	// Parser operation errors
	ErrFailedToParse = errors.New("failed to parse transaction text")

	// Snapshot operation errors
	ErrFailedToExportSnapshot = errors.New("failed to export snapshot")
	ErrFailedToImportSnapshot = errors.New("failed to import snapshot")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state.
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
