package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/JobPortal/pkg/errors"
)

// errorBody is the envelope used for responses generated by middleware.
type errorBody struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func writeError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err.HTTPStatus())
	_ = json.NewEncoder(w).Encode(errorBody{Message: err.Message, Success: false})
}

// BodyLimit caps request bodies at limit bytes.  Requests declaring a larger
// Content-Length are rejected with 413 up front; others have their body wrapped
// in http.MaxBytesReader so handlers see an error once the cap is exceeded.
// A non-positive limit disables the check.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, errors.New(errors.ErrCodePayloadTooLarge, "request entity too large"))
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

//Personal.AI order the ending
