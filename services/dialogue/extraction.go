// File: services/dialogue/extraction.go
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tablevoice/models"
)

// roleInstructions is the fixed preamble sent with every extraction request.
// The capability must answer with a bare JSON object matching
// extractionResult; anything else fails the turn.
const roleInstructions = `You are a restaurant booking assistant. From the conversation below,
extract the booking details gathered so far and reply to the user's last message.
Resolve relative dates ("tomorrow", "next Friday") against today's date.
Respond with a single JSON object and nothing else, in this exact shape:
{
  "reply": "<your conversational reply to the user>",
  "bookingDetails": {
    "name": "<guest name or empty>",
    "date": "<YYYY-MM-DD or empty>",
    "time": "<time like 19:00 or empty>",
    "guests": <number of guests or 0>,
    "seating": "<Indoor, Outdoor, Any or empty>",
    "cuisine": "<cuisine preference or empty>",
    "specialRequests": "<special requests or empty>"
  },
  "intent": "<booking_request, confirmation_request or confirmed>"
}

`

// ExtractionError signals that the extraction capability produced output
// violating the structured contract. It is fatal to the turn: no retry, no
// partial result.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// extractionResult is the structured reply required from the capability.
type extractionResult struct {
	Reply          string                `json:"reply"`
	BookingDetails models.BookingDetails `json:"bookingDetails"`
	Intent         string                `json:"intent"`
}

// extract sends the transcript to the generator and parses the structured
// reply, stripping incidental markdown fences first.
func (s *DefaultDialogueService) extract(ctx context.Context, transcript string) (*extractionResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.extractionTimeout())
	defer cancel()

	raw, err := s.Generator.GenerateContent(callCtx, roleInstructions+transcript)
	if err != nil {
		return nil, &ExtractionError{Reason: "capability call failed", Err: err}
	}

	cleaned := stripFormatting(raw)
	var res extractionResult
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		return nil, &ExtractionError{Reason: "unparseable structured reply", Err: err}
	}
	if res.Reply == "" {
		return nil, &ExtractionError{Reason: "reply field missing"}
	}
	if res.BookingDetails.Date != "" {
		if _, err := time.Parse("2006-01-02", res.BookingDetails.Date); err != nil {
			return nil, &ExtractionError{Reason: "date is not a calendar date", Err: err}
		}
	}

	res.Intent = normalizeIntent(res.Intent)
	res.BookingDetails.Seating = normalizeSeating(res.BookingDetails.Seating)
	return &res, nil
}

// stripFormatting removes markdown code fences and surrounding prose so only
// the JSON object remains.
func stripFormatting(raw string) string {
	cleaned := strings.TrimSpace(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}

// normalizeIntent maps unrecognised intent values to booking_request, the
// fail-safe default.
func normalizeIntent(intent string) string {
	switch strings.ToLower(strings.TrimSpace(intent)) {
	case models.IntentConfirmed:
		return models.IntentConfirmed
	case models.IntentConfirmationRequest:
		return models.IntentConfirmationRequest
	default:
		return models.IntentBookingRequest
	}
}

// normalizeSeating canonicalizes the seating enum's casing; unknown values
// pass through untouched.
func normalizeSeating(seating string) string {
	switch strings.ToLower(strings.TrimSpace(seating)) {
	case "indoor":
		return models.SeatingIndoor
	case "outdoor":
		return models.SeatingOutdoor
	case "any":
		return models.SeatingAny
	default:
		return seating
	}
}
