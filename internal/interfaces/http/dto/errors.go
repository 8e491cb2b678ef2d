package dto

import "net/http"

// Error codes returned by the API. Domain errors carry these codes
// directly; the handler layer adds the transport-only ones.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes not
// present here fall back per GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DISABLED":    http.StatusForbidden,

	"INVALID_INPUT":         http.StatusBadRequest,
	"VALIDATION_ERROR":      http.StatusBadRequest,
	"INVALID_NAME":          http.StatusBadRequest,
	"INVALID_EMAIL":         http.StatusBadRequest,
	"INVALID_ROLE":          http.StatusBadRequest,
	"WEAK_PASSWORD":         http.StatusBadRequest,
	"INVALID_STATUS":        http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_DISCOUNT":      http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_COORDINATES":   http.StatusBadRequest,
	"INVALID_ADDRESS":       http.StatusBadRequest,
	"INVALID_CITY":          http.StatusBadRequest,
	"INVALID_CATEGORY":      http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":  http.StatusBadRequest,
	"INVALID_WAREHOUSE":     http.StatusBadRequest,
	"INVALID_USER":          http.StatusBadRequest,
	"INVALID_PAYMENT_REF":   http.StatusBadRequest,
	"INVALID_ACTIVITY_TYPE": http.StatusBadRequest,
	"INVALID_MESSAGE":       http.StatusBadRequest,
	"NO_ITEMS":              http.StatusBadRequest,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"ALREADY_PAID":       http.StatusUnprocessableEntity,
	"WAREHOUSE_INACTIVE": http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":   http.StatusUnprocessableEntity,
	"NO_WAREHOUSES":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code. Unknown
// codes map to 422, which covers new domain rules without a route-level
// change here.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
