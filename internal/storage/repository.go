package storage

import (
	"context"
	"errors"

	"olive-mind/internal/models"
)

// ErrNotFound is returned when an id or email matches no row.
var ErrNotFound = errors.New("not found")

// Repository is the storage contract the rest of the service is written
// against. Two adapters implement it: Postgres for the hosted database and
// SQLite for a local store. The coordinator is written once against this
// interface and must behave the same on either backend.
type Repository interface {
	InsertEvent(ctx context.Context, draft models.EventDraft, createdBy string) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEventsByDate(ctx context.Context, date string) ([]models.Event, error)
	ListAllEvents(ctx context.Context) ([]models.Event, error)

	InsertMessage(ctx context.Context, msg *models.Message) error
	UpdateMessageByEvent(ctx context.Context, eventID, body, date string) error
	SetMessageSent(ctx context.Context, messageID string, sent bool) error
	DeleteMessagesByEvent(ctx context.Context, eventID string) error
	ListMessages(ctx context.Context) ([]models.Message, error)

	InsertPayments(ctx context.Context, records []models.PaymentRecord) ([]models.PaymentRecord, error)
	GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error)
	SetPaymentPaid(ctx context.Context, paymentID string, paid bool) error
	DeletePaymentsByEvent(ctx context.Context, eventID string) error
	ListPayments(ctx context.Context) ([]models.PaymentRecord, error)

	InsertWorker(ctx context.Context, draft models.WorkerDraft) (*models.Worker, error)
	UpdateWorker(ctx context.Context, id string, draft models.WorkerDraft) (*models.Worker, error)
	DeleteWorker(ctx context.Context, id string) error
	ListWorkers(ctx context.Context) ([]models.Worker, error)
	// AdjustWorkerOwing shifts the owing ledger of the worker with the
	// given name, clamped at zero. Payments reference workers by name
	// only, so a payment for an unregistered name is a no-op here.
	AdjustWorkerOwing(ctx context.Context, name string, delta int) error

	InsertBrandBrief(ctx context.Context, draft models.BrandBriefDraft, createdBy string) (*models.BrandBrief, error)
	UpdateBrandBrief(ctx context.Context, id string, draft models.BrandBriefDraft) (*models.BrandBrief, error)
	DeleteBrandBrief(ctx context.Context, id string) error
	ListBrandBriefs(ctx context.Context) ([]models.BrandBrief, error)

	InsertBrandNote(ctx context.Context, draft models.BrandNoteDraft, createdBy string) (*models.BrandNote, error)
	UpdateBrandNote(ctx context.Context, id string, draft models.BrandNoteDraft) (*models.BrandNote, error)
	DeleteBrandNote(ctx context.Context, id string) error
	ListBrandNotes(ctx context.Context) ([]models.BrandNote, error)

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// WithinTx runs fn against a Repository bound to a single transaction,
	// committing when fn returns nil and rolling back otherwise. Adapters
	// without transaction support may run fn directly.
	WithinTx(ctx context.Context, fn func(Repository) error) error
}
