package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodePayloadTooLarge    ErrorCode = "COMMON_011"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Routing Error Codes
const (
	ErrCodeRoutePrefixInvalid   ErrorCode = "ROUTE_001"
	ErrCodeRoutePrefixDuplicate ErrorCode = "ROUTE_002"
	ErrCodeRouteTableFrozen     ErrorCode = "ROUTE_003"
)

// Database Error Codes
const (
	ErrCodeDatabaseError       ErrorCode = "DB_001"
	ErrCodeDatabaseUnavailable ErrorCode = "DB_002"
	ErrCodeDatabaseNotOpen     ErrorCode = "DB_003"
)

// Configuration Error Codes
const (
	ErrCodeConfigInvalid ErrorCode = "CFG_001"
	ErrCodeConfigRead    ErrorCode = "CFG_002"
)

// Aliases for call sites that read better with the short form.
const (
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeNotImplemented = ErrCodeNotImplemented
)

var httpStatusByCode = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodePayloadTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeRoutePrefixInvalid:   http.StatusInternalServerError,
	ErrCodeRoutePrefixDuplicate: http.StatusInternalServerError,
	ErrCodeRouteTableFrozen:     http.StatusInternalServerError,

	ErrCodeDatabaseError:       http.StatusInternalServerError,
	ErrCodeDatabaseUnavailable: http.StatusServiceUnavailable,
	ErrCodeDatabaseNotOpen:     http.StatusServiceUnavailable,

	ErrCodeConfigInvalid: http.StatusInternalServerError,
	ErrCodeConfigRead:    http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code associated with code.
// Unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	if s, ok := httpStatusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

//Personal.AI order the ending
