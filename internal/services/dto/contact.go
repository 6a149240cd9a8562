package dto

import "time"

type AddContactRequest struct {
	ContactID string `json:"contact_id" validate:"required"`
}

type RespondToRequestRequest struct {
	RequestID string `json:"request_id" validate:"required"`
	Action    string `json:"action" validate:"required,is-contact-action"`
}

type RemoveContactRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ContactStatusResponse covers both success and informational outcomes of
// contact operations. Informational statuses ("already connected" and
// friends) are 200s, not errors.
type ContactStatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// PendingRequestResponse is an incoming request awaiting a response.
type PendingRequestResponse struct {
	RequestID string      `json:"request_id"`
	Requester UserSummary `json:"requester"`
	CreatedAt time.Time   `json:"created_at"`
}

type ContactListResponse struct {
	Contacts        []UserSummary            `json:"contacts"`
	PendingRequests []PendingRequestResponse `json:"pending_requests"`
}
