package models

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lon float64 `bson:"lon" json:"lon"`
}

// Recognised turn intents.
const (
	IntentBookingRequest      = "booking_request"
	IntentConfirmationRequest = "confirmation_request"
	IntentConfirmed           = "confirmed"
)

// TurnRequest is the payload coming from the frontend into /api/assistant/turn.
type TurnRequest struct {
	Utterance    string    `json:"utterance"`               // user's message (voice-to-text or typed)
	History      []Message `json:"history"`                 // full conversation so far, oldest first
	LocationHint *GeoPoint `json:"locationHint,omitempty"`  // user's current location, if known
	SessionID    string    `json:"sessionId,omitempty"`     // opt-in server-side session
}

// TurnResponse is what the assistant returns to the frontend.
type TurnResponse struct {
	Reply          string         `json:"reply"`
	BookingDetails BookingDetails `json:"bookingDetails"`
	Intent         string         `json:"intent"`
}
