/*
dto.go - API response wrappers

PURPOSE:
  The district domain types carry their own JSON tags and serve as the
  wire format directly; only the envelope types that exist purely for
  the API live here.
*/
package api

// ServiceInfoDTO is the root endpoint payload.
type ServiceInfoDTO struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// SyncAckDTO acknowledges a fire-and-forget sync trigger.
type SyncAckDTO struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
