package models

import "time"

type (
	// Note is a guest's optional message to the couple, collected during the RSVP wizard
	Note struct {
		GuestID        string `json:"guest_id"`
		Message        string `json:"message"`
		SenderName     string `json:"submitted_by_name"`
		SenderLastName string `json:"submitted_by_last_name"`
	}

	// StatusUpdate is one member's answer inside a submission
	StatusUpdate struct {
		GuestID string     `json:"guest_id"`
		Status  RSVPStatus `json:"rsvp_status"`
	}

	// Submission is the batched request applied atomically by the data service
	Submission struct {
		HouseholdID string         `json:"p_household_id"`
		Updates     []StatusUpdate `json:"p_updates"`
		Notes       []Note         `json:"p_notes"`
	}

	// Message is a persisted note, readable from the admin dashboard
	Message struct {
		ID             string    `json:"id"`
		HouseholdID    string    `json:"household_id,omitempty"`
		GuestID        string    `json:"guest_id,omitempty"`
		Message        string    `json:"message"`
		SenderName     string    `json:"submitted_by_name"`
		SenderLastName string    `json:"submitted_by_last_name"`
		SubmittedAt    time.Time `json:"submitted_at"`
	}

	// Stats are the dashboard totals
	Stats struct {
		Total    int `json:"total"`
		Accepted int `json:"accepted"`
		Declined int `json:"declined"`
	}
)

// HouseholdLabel labels the message by its sender's last name
func (m Message) HouseholdLabel() string {
	if m.SenderLastName == "" {
		return "No sender"
	}
	return m.SenderLastName + " Household"
}
