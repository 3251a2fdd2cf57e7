package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	// Hint is a machine-readable next step, e.g. start_new_audit.
	Hint string `json:"hint,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
