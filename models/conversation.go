package models

// Message senders.
const (
	SenderUser  = "user"
	SenderAgent = "agent"
)

// Message is a single entry in a conversation transcript. Messages are
// append-only; the full history travels with every turn request.
type Message struct {
	Sender string `bson:"sender" json:"sender"`
	Text   string `bson:"text" json:"text"`
}

// DialogueSession is the server-owned session state kept in Redis when the
// client opts into server-side history. WeatherAdvised records that the
// weather advisory was already delivered, so later turns need not rescan
// the transcript for it.
type DialogueSession struct {
	History        []Message      `json:"history"`
	LastDetails    BookingDetails `json:"lastDetails"`
	WeatherAdvised bool           `json:"weatherAdvised"`
}
