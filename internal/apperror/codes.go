// Package apperror provides the structured error hierarchy shared by the
// game core, plus a constructible service that normalizes arbitrary
// failures and fans them out to registered handlers and a telemetry sink.
package apperror

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// Game errors
	CodeGameInvalidTransition Code = "GAME_INVALID_STATUS_TRANSITION"
	CodeGameEmptyProfileQueue Code = "GAME_EMPTY_PROFILE_QUEUE"
	CodeGamePlayerNotFound    Code = "GAME_PLAYER_NOT_FOUND"
	CodeGameMaxCluesReached   Code = "GAME_MAX_CLUES_REACHED"
	CodeGameInvalidOperation  Code = "GAME_INVALID_OPERATION"

	// Selection errors
	CodeSelectionNoCategories         Code = "SELECTION_NO_CATEGORIES"
	CodeSelectionDuplicateCategory    Code = "SELECTION_DUPLICATE_CATEGORY"
	CodeSelectionInvalidRounds        Code = "SELECTION_INVALID_ROUNDS"
	CodeSelectionCategoryNotFound     Code = "SELECTION_CATEGORY_NOT_FOUND"
	CodeSelectionLocaleNotFound       Code = "SELECTION_LOCALE_NOT_FOUND_FOR_CATEGORY"
	CodeSelectionInsufficientProfiles Code = "SELECTION_INSUFFICIENT_PROFILES"

	// Validation errors
	CodeValidationEmptyField     Code = "VALIDATION_EMPTY_FIELD"
	CodeValidationOutOfRange     Code = "VALIDATION_OUT_OF_RANGE"
	CodeValidationPlayerCount    Code = "VALIDATION_PLAYER_COUNT"
	CodeValidationNegativePoints Code = "VALIDATION_NEGATIVE_POINTS"

	// Persistence errors
	CodePersistenceSaveFailed      Code = "PERSISTENCE_SAVE_FAILED"
	CodePersistenceLoadFailed      Code = "PERSISTENCE_LOAD_FAILED"
	CodePersistenceSessionNotFound Code = "PERSISTENCE_SESSION_NOT_FOUND"
	CodePersistenceSessionCorrupt  Code = "PERSISTENCE_SESSION_CORRUPTED"

	// Network errors
	CodeNetworkFetchFailed Code = "NETWORK_FETCH_FAILED"
	CodeNetworkBadStatus   Code = "NETWORK_BAD_STATUS"
)

// Severity indicates how an error should be treated by handlers and
// telemetry.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)
