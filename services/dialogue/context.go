// File: services/dialogue/context.go
package dialogue

import (
	"strings"
	"time"

	"tablevoice/models"
)

// BuildTranscript linearizes the conversation into a role-labelled transcript
// anchored on today's date, so the extraction capability can resolve relative
// dates ("tomorrow", "next Friday"). Pure function, no side effects.
func BuildTranscript(history []models.Message, utterance string, today time.Time) string {
	var sb strings.Builder
	sb.WriteString("Today's date is " + today.Format("2006-01-02") + ".\n")
	sb.WriteString("Conversation so far:\n")
	for _, msg := range history {
		sb.WriteString(roleLabel(msg.Sender) + ": " + msg.Text + "\n")
	}
	sb.WriteString(roleLabel(models.SenderUser) + ": " + utterance + "\n")
	return sb.String()
}

func roleLabel(sender string) string {
	if sender == models.SenderAgent {
		return "Agent"
	}
	return "User"
}
