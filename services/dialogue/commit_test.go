package dialogue

import (
	"context"
	"errors"
	"sync"
	"testing"

	bookingRepo "tablevoice/database/repository/booking"
	"tablevoice/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memBookingRepo is an in-memory BookingRepository for tests.
type memBookingRepo struct {
	mu      sync.Mutex
	records map[string]models.BookingRecord
	order   []string
	failure error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{records: make(map[string]models.BookingRecord)}
}

func (r *memBookingRepo) Create(ctx context.Context, record models.BookingRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failure != nil {
		return "", r.failure
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	r.records[record.ID] = record
	r.order = append(r.order, record.ID)
	return record.ID, nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &record, nil
}

func (r *memBookingRepo) List(ctx context.Context) ([]models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.BookingRecord, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.records[r.order[i]])
	}
	return out, nil
}

func (r *memBookingRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func TestApplyBookingDefaults(t *testing.T) {
	got := applyBookingDefaults(models.BookingDetails{Date: "2024-06-02", Seating: models.SeatingOutdoor})

	assert.Equal(t, "Guest", got.Name)
	assert.Equal(t, "19:00", got.Time)
	assert.Equal(t, 2, got.Guests)
	assert.Equal(t, "Any", got.Cuisine)
	assert.Equal(t, "None", got.SpecialRequests)
	// Provided values are untouched.
	assert.Equal(t, "2024-06-02", got.Date)
	assert.Equal(t, models.SeatingOutdoor, got.Seating)
}

func TestCommitBooking_AlwaysConfirmedStatus(t *testing.T) {
	repo := newMemBookingRepo()
	svc := &DefaultDialogueService{Repo: repo, Logger: zap.NewNop()}

	record, err := svc.commitBooking(context.Background(), completeDetails(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, record.Status)
	assert.NotEmpty(t, record.ID)
}

func TestCommitBooking_RoundTripPreservesSnapshot(t *testing.T) {
	repo := newMemBookingRepo()
	svc := &DefaultDialogueService{Repo: repo, Logger: zap.NewNop()}

	weather := &models.WeatherInfo{Condition: "clear sky", TemperatureC: 21, Found: true}
	details := models.BookingDetails{
		Date:    "2024-06-02",
		Guests:  4,
		Seating: models.SeatingOutdoor,
	}

	committed, err := svc.commitBooking(context.Background(), details, weather)
	require.NoError(t, err)

	fetched, err := repo.GetByID(context.Background(), committed.ID)
	require.NoError(t, err)

	assert.Equal(t, "Guest", fetched.Name)
	assert.Equal(t, "19:00", fetched.Time)
	assert.Equal(t, "2024-06-02", fetched.Date)
	assert.Equal(t, 4, fetched.Guests)
	assert.Equal(t, models.SeatingOutdoor, fetched.Seating)
	assert.Equal(t, models.BookingStatusConfirmed, fetched.Status)
	assert.Equal(t, weather, fetched.WeatherInfo)
}

type failingScheduler struct{ err error }

func (s *failingScheduler) Schedule(ctx context.Context, record models.BookingRecord) error {
	return s.err
}

func TestCommitBooking_ReminderFailureDoesNotFailCommit(t *testing.T) {
	repo := newMemBookingRepo()
	svc := &DefaultDialogueService{
		Repo:      repo,
		Reminders: &failingScheduler{err: errors.New("queue down")},
		Logger:    zap.NewNop(),
	}

	record, err := svc.commitBooking(context.Background(), completeDetails(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
}
