// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes mirror the services.Kind taxonomy one to one, so that
//     failErr can translate any service error without a per-handler switch.
//   - Transport-only codes never originate in the service layer. Codes
//     written by middleware (too_many_requests, bad_idempotency_key) are
//     declared next to the middleware that emits them.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "Usuário já é membro do grupo"
//	}
package handlers

import (
	"net/http"

	"github.com/tbourn/go-sports-backend/internal/services"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// statusOf maps a service Kind to its HTTP status and error code.
func statusOf(k services.Kind) (int, string) {
	switch k {
	case services.KindBadRequest:
		return http.StatusBadRequest, ErrCodeBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden, ErrCodeForbidden
	case services.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case services.KindConflict:
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
