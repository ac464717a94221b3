package events

import (
	"context"
	"errors"
	"log"
	"strings"

	"olive-mind/internal/models"
	"olive-mind/internal/storage"
)

// Notifier receives a change notification after a mutation commits. The
// websocket hub implements this so connected clients know to refetch
// instead of polling. ref identifies the changed row or, for cascades,
// the owning event; the payload is always a reference, never row data.
type Notifier interface {
	NotifyChange(collection, action, ref string)
}

// Coordinator is the only place events, messages and payments are kept
// consistent. Every event write cascades: the message body is recomposed
// and the payment set is rebuilt from the event, so the three collections
// never drift apart no matter which storage backend is underneath.
type Coordinator struct {
	repo     storage.Repository
	notifier Notifier
}

// NewCoordinator wires the coordinator to a repository. notifier may be nil
// when no realtime feed is attached (tests, one-off tooling).
func NewCoordinator(repo storage.Repository, notifier Notifier) *Coordinator {
	return &Coordinator{repo: repo, notifier: notifier}
}

func requireManager(session models.Session) error {
	if session.Role != models.RoleManager {
		return ErrPermissionDenied
	}
	return nil
}

func validateFields(pairs map[string]string) error {
	// Fixed order so the error message is stable.
	order := []string{"date", "promoters", "venue", "event"}
	var missing []string
	for _, name := range order {
		value, ok := pairs[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// CreateEvent validates and persists a new event together with its derived
// message and payment records. The event insert must complete first (both
// dependents need its id); the whole cascade runs in one transaction where
// the backend supports it.
func (co *Coordinator) CreateEvent(ctx context.Context, session models.Session, draft models.EventDraft) (*models.Event, error) {
	if err := requireManager(session); err != nil {
		return nil, err
	}
	if err := validateFields(map[string]string{
		"date":      draft.Date,
		"promoters": draft.Promoters,
		"venue":     draft.Venue,
		"event":     draft.Title,
	}); err != nil {
		return nil, err
	}

	var (
		created  *models.Event
		payments []models.PaymentRecord
	)
	err := co.repo.WithinTx(ctx, func(r storage.Repository) error {
		event, err := r.InsertEvent(ctx, draft, session.UserID)
		if err != nil {
			return err
		}
		created = event

		m := &models.Message{
			EventID: event.ID,
			Body:    ComposeMessage(*event),
			Date:    event.Date,
			Sent:    false,
		}
		if err := r.InsertMessage(ctx, m); err != nil {
			return &PartialFailureError{EventID: event.ID, Step: "message insert", Err: err}
		}

		payments, err = r.InsertPayments(ctx, DerivePayments(*event))
		if err != nil {
			return &PartialFailureError{EventID: event.ID, Step: "payment insert", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created event %s with %d payment record(s)", created.ID, len(payments))
	co.notify("events", "created", created.ID)
	co.notify("messages", "created", created.ID)
	co.notify("payments", "created", created.ID)
	return created, nil
}

// UpdateEvent replaces an event's descriptive fields and regenerates its
// dependents: the message keeps its identity but gets a fresh body, the
// payment set is deleted and rebuilt. Rebuilding resets any paid flags on
// the old records; that matches how the app has always behaved.
func (co *Coordinator) UpdateEvent(ctx context.Context, session models.Session, id string, patch models.EventPatch) (*models.Event, error) {
	if err := requireManager(session); err != nil {
		return nil, err
	}
	if err := validateFields(map[string]string{
		"promoters": patch.Promoters,
		"venue":     patch.Venue,
		"event":     patch.Title,
	}); err != nil {
		return nil, err
	}

	var (
		updated  *models.Event
		payments []models.PaymentRecord
	)
	err := co.repo.WithinTx(ctx, func(r storage.Repository) error {
		event, err := r.UpdateEvent(ctx, id, patch)
		if err != nil {
			return err
		}
		updated = event

		if err := r.UpdateMessageByEvent(ctx, event.ID, ComposeMessage(*event), event.Date); err != nil {
			return &PartialFailureError{EventID: event.ID, Step: "message regeneration", Err: err}
		}
		if err := r.DeletePaymentsByEvent(ctx, event.ID); err != nil {
			return &PartialFailureError{EventID: event.ID, Step: "payment regeneration", Err: err}
		}
		payments, err = r.InsertPayments(ctx, DerivePayments(*event))
		if err != nil {
			return &PartialFailureError{EventID: event.ID, Step: "payment regeneration", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Updated event %s, regenerated message and %d payment record(s)", updated.ID, len(payments))
	co.notify("events", "updated", updated.ID)
	co.notify("messages", "updated", updated.ID)
	co.notify("payments", "updated", updated.ID)
	return updated, nil
}

// DeleteEvent removes an event and everything derived from it. Dependents
// go first: if the cascade is ever interrupted on a non-transactional
// backend, readers may briefly see an event without dependents, but never a
// message or payment pointing at a dead event.
func (co *Coordinator) DeleteEvent(ctx context.Context, session models.Session, id string) error {
	if err := requireManager(session); err != nil {
		return err
	}

	err := co.repo.WithinTx(ctx, func(r storage.Repository) error {
		if err := r.DeleteMessagesByEvent(ctx, id); err != nil {
			return err
		}
		if err := r.DeletePaymentsByEvent(ctx, id); err != nil {
			return err
		}
		return r.DeleteEvent(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("Deleted event %s and its dependents", id)
	co.notify("events", "deleted", id)
	co.notify("messages", "deleted", id)
	co.notify("payments", "deleted", id)
	return nil
}

// RegenerateDependents rebuilds the message and payment set from the stored
// event. Derivation is pure, so this is always safe to repeat; it is the
// recovery path when a create or update reported a partial failure.
func (co *Coordinator) RegenerateDependents(ctx context.Context, session models.Session, eventID string) error {
	if err := requireManager(session); err != nil {
		return err
	}

	event, err := co.repo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	err = co.repo.WithinTx(ctx, func(r storage.Repository) error {
		body := ComposeMessage(*event)
		err := r.UpdateMessageByEvent(ctx, event.ID, body, event.Date)
		if errors.Is(err, storage.ErrNotFound) {
			err = r.InsertMessage(ctx, &models.Message{
				EventID: event.ID,
				Body:    body,
				Date:    event.Date,
				Sent:    false,
			})
		}
		if err != nil {
			return err
		}
		if err := r.DeletePaymentsByEvent(ctx, event.ID); err != nil {
			return err
		}
		_, err = r.InsertPayments(ctx, DerivePayments(*event))
		return err
	})
	if err != nil {
		return err
	}

	log.Printf("Regenerated dependents for event %s", eventID)
	co.notify("messages", "updated", eventID)
	co.notify("payments", "updated", eventID)
	return nil
}

// MarkPaymentPaid flips the paid flag on a single payment record and moves
// the amount through the matching worker's owing ledger: paying lowers what
// the worker is owed, unmarking restores it. Flipping to the flag's current
// value is a no-op so the ledger is never adjusted twice. Independent of the
// event lifecycle and never runs as part of it.
func (co *Coordinator) MarkPaymentPaid(ctx context.Context, session models.Session, paymentID string, paid bool) error {
	if err := requireManager(session); err != nil {
		return err
	}

	var promoter string
	err := co.repo.WithinTx(ctx, func(r storage.Repository) error {
		payment, err := r.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment.Paid == paid {
			return nil
		}
		if err := r.SetPaymentPaid(ctx, paymentID, paid); err != nil {
			return err
		}
		promoter = payment.PromoterName
		delta := -payment.TotalAmount
		if !paid {
			delta = payment.TotalAmount
		}
		return r.AdjustWorkerOwing(ctx, payment.PromoterName, delta)
	})
	if err != nil {
		return err
	}
	if promoter == "" {
		return nil
	}

	co.notify("payments", "updated", paymentID)
	co.notify("workers", "updated", promoter)
	return nil
}

// MarkMessageSent flips the sent flag on a message. Callers that share or
// copy a message may use this as a convenience after the fact; the
// coordinator itself never sets it.
func (co *Coordinator) MarkMessageSent(ctx context.Context, session models.Session, messageID string, sent bool) error {
	if err := requireManager(session); err != nil {
		return err
	}
	if err := co.repo.SetMessageSent(ctx, messageID, sent); err != nil {
		return err
	}
	co.notify("messages", "updated", messageID)
	return nil
}

func (co *Coordinator) notify(collection, action, ref string) {
	if co.notifier == nil {
		return
	}
	co.notifier.NotifyChange(collection, action, ref)
}
