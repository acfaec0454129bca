package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davidbz/gamehost/internal/domain"
)

// ErrorBody is the error payload every failed request returns.
type ErrorBody struct {
	Code    domain.RejectionCode `json:"code"`
	Message string               `json:"message"`
	Field   string               `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body ErrorBody) {
	writeJSON(w, status, map[string]ErrorBody{"error": body})
}

// writeFailure maps a domain error onto the error envelope.
func writeFailure(w http.ResponseWriter, err error) {
	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		writeError(w, statusFor(rejection.Code), ErrorBody{
			Code:    rejection.Code,
			Message: rejection.Message,
			Field:   rejection.Field,
		})
		return
	}

	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, ErrorBody{
			Code:    domain.RejectionInvalidField,
			Message: validationErrs.Error(),
			Field:   validationErrs[0].Field,
		})
		return
	}

	var invalidErr *domain.InvalidConfigurationError
	if errors.As(err, &invalidErr) {
		writeError(w, http.StatusUnprocessableEntity, ErrorBody{
			Code:    domain.RejectionInvalidField,
			Message: invalidErr.Error(),
		})
		return
	}

	writeError(w, http.StatusInternalServerError, ErrorBody{
		Code:    domain.RejectionUnavailable,
		Message: "internal error",
	})
}

func statusFor(code domain.RejectionCode) int {
	switch code {
	case domain.RejectionMalformedRequest:
		return http.StatusBadRequest
	case domain.RejectionInvalidField:
		return http.StatusUnprocessableEntity
	case domain.RejectionConflict:
		return http.StatusConflict
	case domain.RejectionRateLimited:
		return http.StatusTooManyRequests
	case domain.RejectionPaymentError:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}
