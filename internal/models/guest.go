package models

import (
	"strings"
	"time"
)

// Guest represents one invited member of a household
type Guest struct {
	ID          string     `json:"id"`
	HouseholdID string     `json:"household_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	RSVPStatus  RSVPStatus `json:"rsvp_status"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
}

// FullName returns "First Last"
func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// Status returns the guest's normalized RSVP status
func (g Guest) Status() RSVPStatus {
	return NormalizeStatus(string(g.RSVPStatus))
}

// RSVPStatus represents the attendance confirmation status
type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

// Statuses lists every status an admin may assign, in display order
var Statuses = []RSVPStatus{RSVPPending, RSVPAccepted, RSVPDeclined}

// NormalizeStatus maps a raw stored value onto the three known statuses.
// Matching ignores case only, the same rule the count queries use.
// Empty or unrecognized values read as pending.
func NormalizeStatus(raw string) RSVPStatus {
	switch RSVPStatus(strings.ToLower(raw)) {
	case RSVPAccepted:
		return RSVPAccepted
	case RSVPDeclined:
		return RSVPDeclined
	default:
		return RSVPPending
	}
}

// ParseStatus is the strict counterpart of NormalizeStatus used for input validation
func ParseStatus(raw string) (RSVPStatus, bool) {
	s := RSVPStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Statuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Label is the human readable form of the status
func (s RSVPStatus) Label() string {
	switch NormalizeStatus(string(s)) {
	case RSVPAccepted:
		return "Accepted"
	case RSVPDeclined:
		return "Declined"
	default:
		return "Pending"
	}
}

// IsAnswer reports whether the status is a guest's explicit answer
func (s RSVPStatus) IsAnswer() bool {
	return s == RSVPAccepted || s == RSVPDeclined
}
