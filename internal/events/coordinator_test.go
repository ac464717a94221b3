package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"olive-mind/internal/models"
	"olive-mind/internal/storage"
)

// fakeRepo is a map-backed Repository. WithinTx is a passthrough, which
// deliberately exercises the no-transaction path: a failing dependent step
// leaves the event behind, exactly the situation the regenerate recovery
// exists for.
type fakeRepo struct {
	events   map[string]*models.Event
	messages []*models.Message
	payments []*models.PaymentRecord
	workers  []*models.Worker
	nextID   int

	failInsertMessage  error
	failInsertPayments error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: make(map[string]*models.Event)}
}

func (f *fakeRepo) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeRepo) WithinTx(ctx context.Context, fn func(storage.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) InsertEvent(ctx context.Context, draft models.EventDraft, createdBy string) (*models.Event, error) {
	event := &models.Event{
		ID:          f.id("ev"),
		Date:        draft.Date,
		Promoters:   draft.Promoters,
		Venue:       draft.Venue,
		Location:    draft.Location,
		Title:       draft.Title,
		ArrivalTime: draft.ArrivalTime,
		Duration:    draft.Duration,
		Rate:        draft.Rate,
		Brands:      draft.Brands,
		Mechanic:    draft.Mechanic,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeRepo) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	event.Promoters = patch.Promoters
	event.Venue = patch.Venue
	event.Location = patch.Location
	event.Title = patch.Title
	event.ArrivalTime = patch.ArrivalTime
	event.Duration = patch.Duration
	event.Rate = patch.Rate
	event.Brands = patch.Brands
	event.Mechanic = patch.Mechanic
	event.UpdatedAt = time.Now()
	return event, nil
}

func (f *fakeRepo) DeleteEvent(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return event, nil
}

func (f *fakeRepo) ListEventsByDate(ctx context.Context, date string) ([]models.Event, error) {
	var out []models.Event
	for _, event := range f.events {
		if event.Date == date {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, event := range f.events {
		out = append(out, *event)
	}
	return out, nil
}

func (f *fakeRepo) InsertMessage(ctx context.Context, msg *models.Message) error {
	if f.failInsertMessage != nil {
		return f.failInsertMessage
	}
	msg.ID = f.id("msg")
	stored := *msg
	f.messages = append(f.messages, &stored)
	return nil
}

func (f *fakeRepo) UpdateMessageByEvent(ctx context.Context, eventID, body, date string) error {
	for _, msg := range f.messages {
		if msg.EventID == eventID {
			msg.Body = body
			msg.Date = date
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeRepo) SetMessageSent(ctx context.Context, messageID string, sent bool) error {
	for _, msg := range f.messages {
		if msg.ID == messageID {
			msg.Sent = sent
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeRepo) DeleteMessagesByEvent(ctx context.Context, eventID string) error {
	kept := f.messages[:0]
	for _, msg := range f.messages {
		if msg.EventID != eventID {
			kept = append(kept, msg)
		}
	}
	f.messages = kept
	return nil
}

func (f *fakeRepo) ListMessages(ctx context.Context) ([]models.Message, error) {
	out := make([]models.Message, 0, len(f.messages))
	for _, msg := range f.messages {
		out = append(out, *msg)
	}
	return out, nil
}

func (f *fakeRepo) InsertPayments(ctx context.Context, records []models.PaymentRecord) ([]models.PaymentRecord, error) {
	if f.failInsertPayments != nil {
		return nil, f.failInsertPayments
	}
	out := make([]models.PaymentRecord, 0, len(records))
	for _, rec := range records {
		rec.ID = f.id("pay")
		stored := rec
		f.payments = append(f.payments, &stored)
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRepo) GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	for _, rec := range f.payments {
		if rec.ID == paymentID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) SetPaymentPaid(ctx context.Context, paymentID string, paid bool) error {
	for _, rec := range f.payments {
		if rec.ID == paymentID {
			rec.Paid = paid
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeRepo) DeletePaymentsByEvent(ctx context.Context, eventID string) error {
	kept := f.payments[:0]
	for _, rec := range f.payments {
		if rec.EventID != eventID {
			kept = append(kept, rec)
		}
	}
	f.payments = kept
	return nil
}

func (f *fakeRepo) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	out := make([]models.PaymentRecord, 0, len(f.payments))
	for _, rec := range f.payments {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRepo) InsertWorker(ctx context.Context, draft models.WorkerDraft) (*models.Worker, error) {
	worker := &models.Worker{
		ID:            f.id("wrk"),
		Name:          draft.Name,
		ContactNumber: draft.ContactNumber,
		Area:          draft.Area,
		Age:           draft.Age,
		Height:        draft.Height,
		Rating:        draft.Rating,
		OwingAmount:   draft.OwingAmount,
		CreatedAt:     time.Now(),
	}
	f.workers = append(f.workers, worker)
	return worker, nil
}

func (f *fakeRepo) UpdateWorker(ctx context.Context, id string, draft models.WorkerDraft) (*models.Worker, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) DeleteWorker(ctx context.Context, id string) error {
	return storage.ErrNotFound
}

func (f *fakeRepo) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	out := make([]models.Worker, 0, len(f.workers))
	for _, worker := range f.workers {
		out = append(out, *worker)
	}
	return out, nil
}

func (f *fakeRepo) AdjustWorkerOwing(ctx context.Context, name string, delta int) error {
	for _, worker := range f.workers {
		if worker.Name == name {
			worker.OwingAmount += delta
			if worker.OwingAmount < 0 {
				worker.OwingAmount = 0
			}
		}
	}
	return nil
}

func (f *fakeRepo) InsertBrandBrief(ctx context.Context, draft models.BrandBriefDraft, createdBy string) (*models.BrandBrief, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) UpdateBrandBrief(ctx context.Context, id string, draft models.BrandBriefDraft) (*models.BrandBrief, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) DeleteBrandBrief(ctx context.Context, id string) error {
	return storage.ErrNotFound
}

func (f *fakeRepo) ListBrandBriefs(ctx context.Context) ([]models.BrandBrief, error) {
	return nil, nil
}

func (f *fakeRepo) InsertBrandNote(ctx context.Context, draft models.BrandNoteDraft, createdBy string) (*models.BrandNote, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) UpdateBrandNote(ctx context.Context, id string, draft models.BrandNoteDraft) (*models.BrandNote, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) DeleteBrandNote(ctx context.Context, id string) error {
	return storage.ErrNotFound
}

func (f *fakeRepo) ListBrandNotes(ctx context.Context) ([]models.BrandNote, error) {
	return nil, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) workerByName(name string) *models.Worker {
	for _, worker := range f.workers {
		if worker.Name == name {
			return worker
		}
	}
	return nil
}

func (f *fakeRepo) messagesFor(eventID string) []models.Message {
	var out []models.Message
	for _, msg := range f.messages {
		if msg.EventID == eventID {
			out = append(out, *msg)
		}
	}
	return out
}

func (f *fakeRepo) paymentsFor(eventID string) []models.PaymentRecord {
	var out []models.PaymentRecord
	for _, rec := range f.payments {
		if rec.EventID == eventID {
			out = append(out, *rec)
		}
	}
	return out
}

var (
	manager    = models.Session{UserID: "u-1", Role: models.RoleManager}
	supervisor = models.Session{UserID: "u-2", Role: models.RoleSupervisor}
)

func sampleDraft() models.EventDraft {
	return models.EventDraft{
		Date:        "2024-08-17",
		Promoters:   "Jackie & Noluthando",
		Venue:       "King's Park Stadium",
		Location:    "Durban",
		Title:       "Springboks vs Argentina",
		ArrivalTime: "14:00",
		Duration:    "15:00-21:00 (6 hours)",
		Rate:        "R100 per hour",
		Brands:      "Castle Lager",
		Mechanic:    "Sampling and giveaways",
	}
}

func TestCreateEventCascades(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)

	event, err := co.CreateEvent(context.Background(), manager, sampleDraft())
	require.NoError(t, err)
	require.NotEmpty(t, event.ID)
	require.Equal(t, "u-1", event.CreatedBy)

	messages := repo.messagesFor(event.ID)
	require.Len(t, messages, 1)
	require.Equal(t, ComposeMessage(*event), messages[0].Body)
	require.Equal(t, event.Date, messages[0].Date)
	require.False(t, messages[0].Sent)

	payments := repo.paymentsFor(event.ID)
	require.Len(t, payments, 2)
	names := []string{payments[0].PromoterName, payments[1].PromoterName}
	require.ElementsMatch(t, []string{"Jackie", "Noluthando"}, names)
	for _, rec := range payments {
		require.Equal(t, 6, rec.Hours)
		require.Equal(t, 100, rec.HourlyRate)
		require.Equal(t, 600, rec.TotalAmount)
		require.False(t, rec.Paid)
	}
}

func TestCreateEventSinglePromoter(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)

	draft := sampleDraft()
	draft.Promoters = "SoloWorker"

	event, err := co.CreateEvent(context.Background(), manager, draft)
	require.NoError(t, err)
	require.Len(t, repo.paymentsFor(event.ID), 1)
}

func TestCreateEventValidation(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)

	draft := sampleDraft()
	draft.Promoters = "  "
	draft.Venue = ""

	_, err := co.CreateEvent(context.Background(), manager, draft)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, []string{"promoters", "venue"}, validationErr.Fields)
	require.Empty(t, repo.events)
	require.Empty(t, repo.messages)
	require.Empty(t, repo.payments)
}

func TestMutationsRequireManager(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	_, err := co.CreateEvent(ctx, supervisor, sampleDraft())
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = co.UpdateEvent(ctx, supervisor, "ev-1", models.EventPatch{Promoters: "A", Venue: "V", Title: "T"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.ErrorIs(t, co.DeleteEvent(ctx, supervisor, "ev-1"), ErrPermissionDenied)
	require.ErrorIs(t, co.MarkPaymentPaid(ctx, supervisor, "pay-1", true), ErrPermissionDenied)
	require.ErrorIs(t, co.MarkMessageSent(ctx, supervisor, "msg-1", true), ErrPermissionDenied)
	require.ErrorIs(t, co.RegenerateDependents(ctx, supervisor, "ev-1"), ErrPermissionDenied)

	require.Empty(t, repo.events)
}

func TestUpdateEventRegeneratesDependents(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	// A paid flag set before the edit is lost when the set is rebuilt.
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, repo.paymentsFor(event.ID)[0].ID, true))

	patch := models.EventPatch{
		Promoters:   "Jackie & Noluthando",
		Venue:       "King's Park Stadium",
		Location:    "Durban",
		Title:       "Springboks vs Argentina",
		ArrivalTime: "14:00",
		Duration:    "(4 hours)",
		Rate:        "R100 per hour",
		Brands:      "Castle Lager",
		Mechanic:    "Sampling and giveaways",
	}
	updated, err := co.UpdateEvent(ctx, manager, event.ID, patch)
	require.NoError(t, err)
	require.Equal(t, "(4 hours)", updated.Duration)

	payments := repo.paymentsFor(event.ID)
	require.Len(t, payments, 2)
	for _, rec := range payments {
		require.Equal(t, 4, rec.Hours)
		require.Equal(t, 400, rec.TotalAmount)
		require.False(t, rec.Paid)
	}

	messages := repo.messagesFor(event.ID)
	require.Len(t, messages, 1)
	require.Contains(t, messages[0].Body, "Duration: (4 hours)")
}

func TestUpdateEventIdempotent(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	patch := models.EventPatch{
		Promoters: "Jackie & Noluthando",
		Venue:     "Moses Mabhida",
		Title:     "Springboks vs Argentina",
		Duration:  "(4 hours)",
		Rate:      "R120 per hour",
	}

	_, err = co.UpdateEvent(ctx, manager, event.ID, patch)
	require.NoError(t, err)
	firstMessages := repo.messagesFor(event.ID)
	firstPayments := repo.paymentsFor(event.ID)

	_, err = co.UpdateEvent(ctx, manager, event.ID, patch)
	require.NoError(t, err)
	secondMessages := repo.messagesFor(event.ID)
	secondPayments := repo.paymentsFor(event.ID)

	// Identical observable state: same message identity and body, same
	// payment contents. Only the regenerated payment ids differ.
	require.Equal(t, firstMessages, secondMessages)
	require.Len(t, secondPayments, len(firstPayments))
	for i := range firstPayments {
		first, second := firstPayments[i], secondPayments[i]
		first.ID, second.ID = "", ""
		require.Equal(t, first, second)
	}
}

func TestUpdateEventPreservesSentFlag(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	require.NoError(t, co.MarkMessageSent(ctx, manager, repo.messagesFor(event.ID)[0].ID, true))

	patch := models.EventPatch{Promoters: "Jackie", Venue: "Somewhere", Title: "Renamed"}
	_, err = co.UpdateEvent(ctx, manager, event.ID, patch)
	require.NoError(t, err)

	messages := repo.messagesFor(event.ID)
	require.Len(t, messages, 1)
	require.True(t, messages[0].Sent)
	require.Contains(t, messages[0].Body, "Event: Renamed")
}

func TestDeleteEventCascades(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	require.NoError(t, co.DeleteEvent(ctx, manager, event.ID))

	require.Empty(t, repo.events)
	require.Empty(t, repo.messagesFor(event.ID))
	require.Empty(t, repo.paymentsFor(event.ID))
}

func TestMarkPaymentPaidSurvivesOtherEvents(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	paymentID := repo.paymentsFor(event.ID)[0].ID
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, paymentID, true))

	other := sampleDraft()
	other.Title = "Another gig"
	_, err = co.CreateEvent(ctx, manager, other)
	require.NoError(t, err)

	found := false
	for _, rec := range repo.paymentsFor(event.ID) {
		if rec.ID == paymentID {
			found = true
			require.True(t, rec.Paid)
		}
	}
	require.True(t, found)
}

func TestMarkPaymentPaidAdjustsWorkerOwing(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	_, err := repo.InsertWorker(ctx, models.WorkerDraft{
		Name: "Jackie", ContactNumber: "0821234567", Area: "Durban", OwingAmount: 1000,
	})
	require.NoError(t, err)

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	var jackiePayment models.PaymentRecord
	for _, rec := range repo.paymentsFor(event.ID) {
		if rec.PromoterName == "Jackie" {
			jackiePayment = rec
		}
	}
	require.NotEmpty(t, jackiePayment.ID)
	require.Equal(t, 600, jackiePayment.TotalAmount)

	// Paying moves the amount off the worker's owing ledger.
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, jackiePayment.ID, true))
	require.Equal(t, 400, repo.workerByName("Jackie").OwingAmount)

	// Marking an already-paid record paid again must not adjust twice.
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, jackiePayment.ID, true))
	require.Equal(t, 400, repo.workerByName("Jackie").OwingAmount)

	// Unmarking restores it.
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, jackiePayment.ID, false))
	require.Equal(t, 1000, repo.workerByName("Jackie").OwingAmount)
}

func TestMarkPaymentPaidClampsOwingAtZero(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	_, err := repo.InsertWorker(ctx, models.WorkerDraft{
		Name: "Jackie", ContactNumber: "0821234567", Area: "Durban", OwingAmount: 200,
	})
	require.NoError(t, err)

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	// The payment is worth more than the ledger holds; it bottoms out at zero.
	for _, rec := range repo.paymentsFor(event.ID) {
		if rec.PromoterName == "Jackie" {
			require.NoError(t, co.MarkPaymentPaid(ctx, manager, rec.ID, true))
		}
	}
	require.Equal(t, 0, repo.workerByName("Jackie").OwingAmount)
}

func TestMarkPaymentPaidUnregisteredPromoter(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	// No workers registered: the flag still flips, the ledger is untouched.
	paymentID := repo.paymentsFor(event.ID)[0].ID
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, paymentID, true))
	require.Empty(t, repo.workers)
}

// recordingNotifier captures every notification so tests can assert on the
// exact payloads pushed to the change feed.
type recordingNotifier struct {
	changes []recordedChange
}

type recordedChange struct {
	Collection string
	Action     string
	Ref        string
}

func (n *recordingNotifier) NotifyChange(collection, action, ref string) {
	n.changes = append(n.changes, recordedChange{Collection: collection, Action: action, Ref: ref})
}

func (n *recordingNotifier) refs() []string {
	out := make([]string, 0, len(n.changes))
	for _, change := range n.changes {
		out = append(out, change.Ref)
	}
	return out
}

func TestNotificationsCarryUniformRefs(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	co := NewCoordinator(repo, notifier)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	patch := models.EventPatch{Promoters: "Jackie", Venue: "Somewhere", Title: "Renamed"}
	_, err = co.UpdateEvent(ctx, manager, event.ID, patch)
	require.NoError(t, err)

	// Create and update announce the same collections with the same ref,
	// the owning event id, so feed consumers handle one payload shape.
	require.Equal(t, []recordedChange{
		{"events", "created", event.ID},
		{"messages", "created", event.ID},
		{"payments", "created", event.ID},
		{"events", "updated", event.ID},
		{"messages", "updated", event.ID},
		{"payments", "updated", event.ID},
	}, notifier.changes)

	notifier.changes = nil
	require.NoError(t, co.DeleteEvent(ctx, manager, event.ID))
	require.Equal(t, []string{event.ID, event.ID, event.ID}, notifier.refs())
}

func TestMarkPaymentPaidNotifiesWorkerLedger(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	co := NewCoordinator(repo, notifier)
	ctx := context.Background()

	_, err := repo.InsertWorker(ctx, models.WorkerDraft{
		Name: "Jackie", ContactNumber: "0821234567", Area: "Durban", OwingAmount: 600,
	})
	require.NoError(t, err)

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)
	notifier.changes = nil

	paymentID := repo.paymentsFor(event.ID)[0].ID
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, paymentID, true))
	require.Equal(t, []recordedChange{
		{"payments", "updated", paymentID},
		{"workers", "updated", repo.paymentsFor(event.ID)[0].PromoterName},
	}, notifier.changes)

	// The no-op repeat stays silent: nothing changed, nothing to announce.
	notifier.changes = nil
	require.NoError(t, co.MarkPaymentPaid(ctx, manager, paymentID, true))
	require.Empty(t, notifier.changes)
}

func TestCreateEventPartialFailureAndRecovery(t *testing.T) {
	repo := newFakeRepo()
	repo.failInsertMessage = errors.New("connection reset")
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	_, err := co.CreateEvent(ctx, manager, sampleDraft())

	var partialErr *PartialFailureError
	require.ErrorAs(t, err, &partialErr)
	require.Equal(t, "message insert", partialErr.Step)

	// Without a real transaction underneath, the event survives alone.
	require.Len(t, repo.events, 1)
	require.Empty(t, repo.messagesFor(partialErr.EventID))

	// Regeneration is the recovery path: it inserts the missing message
	// and rebuilds the payment set from the stored event.
	repo.failInsertMessage = nil
	require.NoError(t, co.RegenerateDependents(ctx, manager, partialErr.EventID))

	require.Len(t, repo.messagesFor(partialErr.EventID), 1)
	require.Len(t, repo.paymentsFor(partialErr.EventID), 2)
}

func TestRegenerateDependentsIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	co := NewCoordinator(repo, nil)
	ctx := context.Background()

	event, err := co.CreateEvent(ctx, manager, sampleDraft())
	require.NoError(t, err)

	require.NoError(t, co.RegenerateDependents(ctx, manager, event.ID))
	require.NoError(t, co.RegenerateDependents(ctx, manager, event.ID))

	require.Len(t, repo.messagesFor(event.ID), 1)
	require.Len(t, repo.paymentsFor(event.ID), 2)
}
