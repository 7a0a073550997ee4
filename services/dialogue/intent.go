// File: services/dialogue/intent.go
package dialogue

import (
	"strings"

	"tablevoice/models"
)

// Tokens counting as an explicit affirmation of the recap.
var affirmationTokens = []string{
	"yes",
	"confirm",
	"go ahead",
	"sounds good",
	"that's right",
	"correct",
	"sure",
	"yep",
	"yeah",
	"book it",
}

// containsAffirmation reports whether the utterance carries an explicit
// affirmation token.
func containsAffirmation(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, token := range affirmationTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// isComplete reports whether all required slots are filled. Cuisine and
// special requests are optional and defaulted at commit.
func isComplete(d models.BookingDetails) bool {
	return d.Name != "" &&
		d.Date != "" &&
		d.Time != "" &&
		d.Guests > 0 &&
		d.Seating != ""
}

// MergeDetails overlays the new extraction onto the previously known
// snapshot. Filled fields overwrite; empty fields never erase a known value.
func MergeDetails(prior, next models.BookingDetails) models.BookingDetails {
	merged := prior
	if next.Name != "" {
		merged.Name = next.Name
	}
	if next.Date != "" {
		merged.Date = next.Date
	}
	if next.Time != "" {
		merged.Time = next.Time
	}
	if next.Guests > 0 {
		merged.Guests = next.Guests
	}
	if next.Seating != "" {
		merged.Seating = next.Seating
	}
	if next.Cuisine != "" {
		merged.Cuisine = next.Cuisine
	}
	if next.SpecialRequests != "" {
		merged.SpecialRequests = next.SpecialRequests
	}
	return merged
}

// confirmable reports whether the slots that have no commit-time default
// are filled. Name alone may still be missing here; commit defaults it to
// "Guest" when the user confirms without ever giving one.
func confirmable(d models.BookingDetails) bool {
	return d.Date != "" &&
		d.Time != "" &&
		d.Guests > 0 &&
		d.Seating != ""
}

// resolveIntent derives the turn intent from slot completeness and the
// triggering utterance. The state machine is recomputed every turn:
//
//	missing slots                     -> booking_request (collecting)
//	complete, no affirmation          -> confirmation_request (awaiting)
//	confirmable, explicit affirmation -> confirmed
//
// The capability's own intent guess is only a hint; this derivation wins.
func resolveIntent(d models.BookingDetails, utterance string) string {
	if !confirmable(d) {
		return models.IntentBookingRequest
	}
	if containsAffirmation(utterance) {
		return models.IntentConfirmed
	}
	if isComplete(d) {
		return models.IntentConfirmationRequest
	}
	return models.IntentBookingRequest
}
