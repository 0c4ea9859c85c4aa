package handlers

import (
	"net/http"

	"github.com/turtacn/JobPortal/pkg/errors"
)

// API areas served under /api/v1.
const (
	AreaUser        = "user"
	AreaCompany     = "company"
	AreaJob         = "job"
	AreaApplication = "application"
	AreaBookmark    = "bookmark"
)

// Areas lists the API areas in registration order.
var Areas = []string{AreaUser, AreaCompany, AreaJob, AreaApplication, AreaBookmark}

// AreaHandler stands in for an API area whose service is not wired into this
// process.  Every request is answered with 501.
type AreaHandler struct {
	area string
}

// NewAreaHandler creates the placeholder group for area.
func NewAreaHandler(area string) *AreaHandler {
	return &AreaHandler{area: area}
}

// Area returns the area name.
func (h *AreaHandler) Area() string { return h.area }

func (h *AreaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeAppError(w, errors.NotImplemented(h.area+" service is not available"))
}

//Personal.AI order the ending
