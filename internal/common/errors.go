package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound covers both a genuinely missing row and a row outside the
	// caller's visibility scope. The two are deliberately indistinguishable.
	ErrNotFound = errors.New("requested resource not found")

	// ErrInvalidCredentials is the single login failure: unknown username,
	// inactive account and wrong password all collapse onto it.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means no valid session (missing, expired, or bound
	// to a deactivated account).
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInsufficientRole means a valid session whose role does not meet the
	// route's tier. Distinct from ErrUnauthenticated so clients know not to
	// prompt for re-login.
	ErrInsufficientRole = errors.New("insufficient permissions")

	ErrBadRequest     = errors.New("bad request")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("resource conflict") // e.g., username already exists
	ErrTaskCompleted  = errors.New("completed tasks cannot be deleted")
	ErrInternalServer = errors.New("internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes. Anything not
// in the taxonomy (data-layer connectivity, timeouts) falls through to 500 so
// an outage never reads as an auth or not-found decision.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInsufficientRole) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrTaskCompleted) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}
