package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readAllHandler(t *testing.T, readErr *error) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, *readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
}

func TestBodyLimit_RejectsDeclaredOversize(t *testing.T) {
	var readErr error
	handler := BodyLimit(8)(readAllHandler(t, &readErr))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/job", strings.NewReader("0123456789")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"message":"request entity too large","success":false}`, rec.Body.String())
}

func TestBodyLimit_CapsStreamingBody(t *testing.T) {
	var readErr error
	handler := BodyLimit(8)(readAllHandler(t, &readErr))

	r := httptest.NewRequest(http.MethodPost, "/api/v1/job", strings.NewReader("0123456789"))
	r.ContentLength = -1
	handler.ServeHTTP(httptest.NewRecorder(), r)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	var readErr error
	handler := BodyLimit(64)(readAllHandler(t, &readErr))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, readErr)
}

func TestBodyLimit_Disabled(t *testing.T) {
	var readErr error
	handler := BodyLimit(0)(readAllHandler(t, &readErr))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 1<<20))))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, readErr)
}

//Personal.AI order the ending
