// File: services/dialogue/interface.go
package dialogue

import (
	"context"
	"errors"
	"time"

	bookingRepo "tablevoice/database/repository/booking"
	"tablevoice/models"
	"tablevoice/services/forecast"
	"tablevoice/utils"

	"go.uber.org/zap"
)

// ErrEmptyUtterance rejects a turn before any external call is made.
var ErrEmptyUtterance = errors.New("utterance is required")

// ReminderScheduler queues a reminder for a committed booking.
type ReminderScheduler interface {
	Schedule(ctx context.Context, record models.BookingRecord) error
}

// DialogueService drives one turn of the booking conversation.
type DialogueService interface {
	ProcessTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error)
}

// DefaultDialogueService is the stateless per-turn orchestrator: transcript
// assembly, structured extraction, intent derivation, weather advisory and
// the commit hand-off. All session state arrives in-band (or via the
// optional Redis session layer); nothing is shared across turns in-process.
type DefaultDialogueService struct {
	Generator TextGenerator
	Forecast  forecast.Service
	Repo      bookingRepo.BookingRepository
	Sessions  *RedisSessionStore // optional
	Reminders ReminderScheduler  // optional
	Logger    *zap.Logger

	// Now is the clock used to anchor relative-date resolution. Defaults to
	// time.Now; tests pin it.
	Now func() time.Time

	ExtractionTimeout time.Duration
	ForecastTimeout   time.Duration
}

func (s *DefaultDialogueService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultDialogueService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultDialogueService) extractionTimeout() time.Duration {
	if s.ExtractionTimeout > 0 {
		return s.ExtractionTimeout
	}
	return 30 * time.Second
}

func (s *DefaultDialogueService) forecastTimeout() time.Duration {
	if s.ForecastTimeout > 0 {
		return s.ForecastTimeout
	}
	return 5 * time.Second
}

// ProcessTurn runs one request/response cycle of the dialogue core.
func (s *DefaultDialogueService) ProcessTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error) {
	if req.Utterance == "" {
		return nil, ErrEmptyUtterance
	}

	history := req.History
	var prior models.BookingDetails
	alreadyAdvised := false

	// When the client opted into a server-side session, the stored history
	// and advisory flag take precedence over what the client carried.
	var sess *models.DialogueSession
	if s.Sessions != nil && req.SessionID != "" {
		loaded, err := s.Sessions.Get(ctx, req.SessionID)
		if err != nil {
			s.logger().Warn("failed to load dialogue session",
				zap.String("sessionId", req.SessionID), zap.Error(err))
		} else {
			sess = loaded
			if len(sess.History) > 0 {
				history = sess.History
			}
			prior = sess.LastDetails
			alreadyAdvised = sess.WeatherAdvised
		}
	}

	transcript := BuildTranscript(history, req.Utterance, s.now())

	res, err := s.extract(ctx, transcript)
	if err != nil {
		return nil, err
	}

	details := MergeDetails(prior, res.BookingDetails)
	intent := resolveIntent(details, req.Utterance)
	reply := res.Reply

	weather := s.applyWeatherAdvisory(ctx, history, req.LocationHint, &details, &reply, alreadyAdvised)

	if intent == models.IntentConfirmed {
		record, err := s.commitBooking(ctx, details, weather)
		if err != nil {
			// The conversational reply has already been produced; losing the
			// write must not retract it. Known gap: the user is not told.
			s.logger().Error("booking commit failed after confirmation", zap.Error(err))
		} else {
			s.logger().Info("booking committed",
				zap.String("bookingId", record.ID),
				zap.String("date", record.Date),
				zap.Int("guests", record.Guests))
		}
	}

	if sess != nil {
		sess.History = append(history,
			models.Message{Sender: models.SenderUser, Text: req.Utterance},
			models.Message{Sender: models.SenderAgent, Text: reply},
		)
		sess.LastDetails = details
		if weather != nil {
			sess.WeatherAdvised = true
		}
		if err := s.Sessions.Set(ctx, req.SessionID, sess); err != nil {
			s.logger().Warn("failed to persist dialogue session",
				zap.String("sessionId", req.SessionID), zap.Error(err))
		}
	}

	return &models.TurnResponse{
		Reply:          reply,
		BookingDetails: details,
		Intent:         intent,
	}, nil
}
