package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Codes referenced by callers that branch on error class.
const (
	CodeLedgerUnavailable    = "TRN_001"
	CodeProviderUnavailable  = "TRN_002"
	CodePriceUnavailable     = "TRN_003"
	CodeAccountCreateFailed  = "VAL_005"
	CodeNotFound             = "VAL_006"
	CodeWalletInactive       = "STC_001"
	CodeParentNotSynced      = "STC_002"
	CodeFundingTerminal      = "STC_003"
	CodeKeyUnavailable       = "KEY_001"
	CodeOrphanedAccount      = "ORP_001"
)

// IsCode reports whether err is an *AppError carrying the given code.
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// ---- Transient failures (TRN) — retryable with the same input ----

// ErrLedgerUnavailable signals the ledger network could not be reached.
func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("TRN_001", "Ledger network unavailable", http.StatusServiceUnavailable, err)
}

func ErrProviderUnavailable(provider string, err error) *AppError {
	return Wrap("TRN_002", fmt.Sprintf("Payment provider %s unavailable", provider), http.StatusServiceUnavailable, err)
}

func ErrPriceUnavailable(err error) *AppError {
	return Wrap("TRN_003", "Unit price unavailable", http.StatusServiceUnavailable, err)
}

// ---- Validation failures (VAL) — not retryable without changed input ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Invalid amount", http.StatusBadRequest)
}

func ErrAmountOutOfBounds(provider string, minCents, maxCents int64) *AppError {
	return New("VAL_002",
		fmt.Sprintf("Amount outside %s bounds [%d, %d]", provider, minCents, maxCents),
		http.StatusUnprocessableEntity)
}

func ErrInvalidAccountID(accountID string) *AppError {
	return New("VAL_003", fmt.Sprintf("Malformed ledger account id %q", accountID), http.StatusBadRequest)
}

func ErrUnknownProvider(provider string) *AppError {
	return New("VAL_004", fmt.Sprintf("Unknown payment provider %q", provider), http.StatusBadRequest)
}

// ErrAccountCreationFailed means the ledger rejected the account-create
// submission. Fatal: do not retry with the same key.
func ErrAccountCreationFailed(err error) *AppError {
	return Wrap("VAL_005", "Ledger rejected account creation", http.StatusBadRequest, err)
}

func ErrNotFound(entity string) *AppError {
	return New("VAL_006", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- State conflicts (STC) — caller must fix ordering ----

func ErrWalletInactive() *AppError {
	return New("STC_001", "Wallet is not active", http.StatusConflict)
}

// ErrParentNotSynced is returned when a file sync is attempted before its
// owning folder has a ledger token.
func ErrParentNotSynced(folderID string) *AppError {
	return New("STC_002", fmt.Sprintf("Parent folder %s is not synced to the ledger", folderID), http.StatusConflict)
}

func ErrFundingTerminal(state string) *AppError {
	return New("STC_003", fmt.Sprintf("Funding request already in terminal state %s", state), http.StatusConflict)
}

func ErrNotBlockchainEntity(entity string) *AppError {
	return New("STC_004", fmt.Sprintf("%s is not flagged for ledger anchoring", entity), http.StatusConflict)
}

// ---- Key custody failures (KEY) — fatal, possible fund risk ----

// ErrKeyUnavailable is the fail-closed result of any vault miss or
// decryption failure. Surfaced distinctly, never folded into SYS errors.
func ErrKeyUnavailable(err error) *AppError {
	return Wrap("KEY_001", "Private key unavailable from custody", http.StatusInternalServerError, err)
}

func ErrKeyCustodyFailure(err error) *AppError {
	return Wrap("KEY_002", "Key custody operation failed", http.StatusInternalServerError, err)
}

// ---- Orphaned resources (ORP) — logged for manual reconciliation ----

// ErrOrphanedAccount marks a ledger account that was created but whose key
// could not be placed into custody. The account is not deleted.
func ErrOrphanedAccount(accountID string, err error) *AppError {
	return Wrap("ORP_001", fmt.Sprintf("Ledger account %s created but key custody failed", accountID), http.StatusInternalServerError, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
