// Package httpapi provides the REST adapter serving shared day schedules.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ZeeshanAK/my-availability-app/internal/adapters/server/common"
	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	svc common.ScheduleService
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs the HTTP API adapter.
func NewHandler(svc common.ScheduleService) *Handler {
	return &Handler{svc: svc}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.Path)
	ownerID, rawDate, ok := shareParams(path)
	if !ok {
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "endpoint not found",
		})
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	h.handleShare(w, r, ownerID, rawDate)
}

// handleShare serves GET `/share/{owner}/{date}`. An optional `tz` query
// parameter re-renders the clocks in a viewer zone; the underlying day
// resolution is unaffected.
func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request, ownerID, rawDate string) {
	if h.svc == nil {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: "schedule service is not configured",
		})
		return
	}

	day, err := domain.ParseDate(rawDate)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	owner, err := h.svc.Owner(r.Context(), ownerID)
	if err != nil {
		writeErrorFrom(w, fmt.Errorf("resolve owner %q: %w", ownerID, err))
		return
	}
	loc, zoneName, err := common.ResolveZone(owner, r.URL.Query().Get("tz"))
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	schedule, err := h.svc.DaySchedule(r.Context(), ownerID, day)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, common.NewDayView(owner, schedule, loc, zoneName))
}

// shareParams parses `share/{owner}/{date}` out of a normalized path.
func shareParams(path string) (ownerID, rawDate string, ok bool) {
	rest, found := strings.CutPrefix(path, "share/")
	if !found {
		return "", "", false
	}
	ownerID, rawDate, found = strings.Cut(rest, "/")
	if !found || ownerID == "" || rawDate == "" || strings.Contains(rawDate, "/") {
		return "", "", false
	}
	return ownerID, rawDate, true
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeErrorFrom maps service errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "unknown error",
		})
	case errors.Is(err, app.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidTimezone):
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
	}
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response envelope.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}
