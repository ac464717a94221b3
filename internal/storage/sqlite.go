package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"olive-mind/internal/models"
)

// sqliteSchema is applied on every open. The local store is self-contained:
// unlike the hosted database there is no migration tooling in front of it.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'supervisor',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS events (
	id           TEXT PRIMARY KEY,
	date         TEXT NOT NULL,
	promoters    TEXT NOT NULL,
	venue        TEXT NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL,
	arrival_time TEXT NOT NULL DEFAULT '',
	duration     TEXT NOT NULL DEFAULT '',
	rate         TEXT NOT NULL DEFAULT '',
	brands       TEXT NOT NULL DEFAULT '',
	mechanic     TEXT NOT NULL DEFAULT '',
	created_by   TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS events_date ON events (date);

CREATE TABLE IF NOT EXISTS messages (
	id       TEXT PRIMARY KEY,
	event_id TEXT NOT NULL UNIQUE,
	body     TEXT NOT NULL,
	date     TEXT NOT NULL,
	sent     BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS payments (
	id            TEXT PRIMARY KEY,
	event_id      TEXT NOT NULL,
	promoter_name TEXT NOT NULL,
	event_title   TEXT NOT NULL DEFAULT '',
	date          TEXT NOT NULL,
	hours         INTEGER NOT NULL DEFAULT 0,
	hourly_rate   INTEGER NOT NULL DEFAULT 0,
	total_amount  INTEGER NOT NULL DEFAULT 0,
	paid          BOOLEAN NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS payments_event ON payments (event_id);

CREATE TABLE IF NOT EXISTS workers (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	contact_number TEXT NOT NULL,
	area           TEXT NOT NULL,
	age            TEXT NOT NULL DEFAULT '',
	height         TEXT NOT NULL DEFAULT '',
	rating         INTEGER NOT NULL DEFAULT 5,
	owing_amount   INTEGER NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS workers_name ON workers (name);

CREATE TABLE IF NOT EXISTS brand_briefs (
	id            TEXT PRIMARY KEY,
	brand_name    TEXT NOT NULL,
	brief_title   TEXT NOT NULL,
	brief_content TEXT NOT NULL DEFAULT '',
	created_by    TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS brand_notes (
	id           TEXT PRIMARY KEY,
	brand_name   TEXT NOT NULL,
	note_title   TEXT NOT NULL,
	note_content TEXT NOT NULL DEFAULT '',
	created_by   TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite is the local durable store. Same contract as Postgres, so the
// coordinator cannot tell them apart.
type SQLite struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

// NewSQLite opens (or creates) the database file and ensures the schema
// exists. Use ":memory:" for a throwaway store.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLite{db: db, ext: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) WithinTx(ctx context.Context, fn func(Repository) error) error {
	if _, ok := s.ext.(*sqlx.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&SQLite{db: s.db, ext: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) InsertEvent(ctx context.Context, draft models.EventDraft, createdBy string) (*models.Event, error) {
	id := uuid.NewString()
	_, err := s.ext.ExecContext(ctx,
		`INSERT INTO events
		   (id, date, promoters, venue, location, title, arrival_time,
		    duration, rate, brands, mechanic, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, draft.Date, draft.Promoters, draft.Venue, draft.Location,
		draft.Title, draft.ArrivalTime, draft.Duration, draft.Rate, draft.Brands,
		draft.Mechanic, createdBy)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return s.GetEvent(ctx, id)
}

func (s *SQLite) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE events
		 SET promoters = ?, venue = ?, location = ?, title = ?, arrival_time = ?,
		     duration = ?, rate = ?, brands = ?, mechanic = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		patch.Promoters, patch.Venue, patch.Location, patch.Title, patch.ArrivalTime,
		patch.Duration, patch.Rate, patch.Brands, patch.Mechanic, id)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetEvent(ctx, id)
}

func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := sqlx.GetContext(ctx, s.ext, &event, `SELECT * FROM events WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (s *SQLite) ListEventsByDate(ctx context.Context, date string) ([]models.Event, error) {
	var events []models.Event
	err := sqlx.SelectContext(ctx, s.ext, &events,
		`SELECT * FROM events WHERE date = ? ORDER BY created_at`, date)
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	return events, nil
}

func (s *SQLite) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := sqlx.SelectContext(ctx, s.ext, &events, `SELECT * FROM events ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *SQLite) InsertMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = uuid.NewString()
	_, err := s.ext.ExecContext(ctx,
		`INSERT INTO messages (id, event_id, body, date, sent) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.EventID, msg.Body, msg.Date, msg.Sent)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *SQLite) UpdateMessageByEvent(ctx context.Context, eventID, body, date string) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE messages SET body = ?, date = ? WHERE event_id = ?`, body, date, eventID)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) SetMessageSent(ctx context.Context, messageID string, sent bool) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE messages SET sent = ? WHERE id = ?`, sent, messageID)
	if err != nil {
		return fmt.Errorf("set message sent: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) DeleteMessagesByEvent(ctx context.Context, eventID string) error {
	_, err := s.ext.ExecContext(ctx, `DELETE FROM messages WHERE event_id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

func (s *SQLite) ListMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := sqlx.SelectContext(ctx, s.ext, &messages, `SELECT * FROM messages ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *SQLite) InsertPayments(ctx context.Context, records []models.PaymentRecord) ([]models.PaymentRecord, error) {
	query := `INSERT INTO payments
	            (id, event_id, promoter_name, event_title, date, hours, hourly_rate, total_amount, paid)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	out := make([]models.PaymentRecord, 0, len(records))
	for _, rec := range records {
		rec.ID = uuid.NewString()
		_, err := s.ext.ExecContext(ctx, query,
			rec.ID, rec.EventID, rec.PromoterName, rec.EventTitle, rec.Date,
			rec.Hours, rec.HourlyRate, rec.TotalAmount, rec.Paid)
		if err != nil {
			return nil, fmt.Errorf("insert payment for %s: %w", rec.PromoterName, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *SQLite) GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := sqlx.GetContext(ctx, s.ext, &payment, `SELECT * FROM payments WHERE id = ?`, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &payment, nil
}

func (s *SQLite) SetPaymentPaid(ctx context.Context, paymentID string, paid bool) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE payments SET paid = ? WHERE id = ?`, paid, paymentID)
	if err != nil {
		return fmt.Errorf("set payment paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) DeletePaymentsByEvent(ctx context.Context, eventID string) error {
	_, err := s.ext.ExecContext(ctx, `DELETE FROM payments WHERE event_id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("delete payments: %w", err)
	}
	return nil
}

func (s *SQLite) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	err := sqlx.SelectContext(ctx, s.ext, &payments, `SELECT * FROM payments ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *SQLite) InsertWorker(ctx context.Context, draft models.WorkerDraft) (*models.Worker, error) {
	id := uuid.NewString()
	_, err := s.ext.ExecContext(ctx,
		`INSERT INTO workers
		   (id, name, contact_number, area, age, height, rating, owing_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, draft.Name, draft.ContactNumber, draft.Area,
		draft.Age, draft.Height, draft.Rating, draft.OwingAmount)
	if err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	return s.getWorker(ctx, id)
}

func (s *SQLite) getWorker(ctx context.Context, id string) (*models.Worker, error) {
	var worker models.Worker
	err := sqlx.GetContext(ctx, s.ext, &worker, `SELECT * FROM workers WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return &worker, nil
}

func (s *SQLite) UpdateWorker(ctx context.Context, id string, draft models.WorkerDraft) (*models.Worker, error) {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE workers
		 SET name = ?, contact_number = ?, area = ?, age = ?,
		     height = ?, rating = ?, owing_amount = ?
		 WHERE id = ?`,
		draft.Name, draft.ContactNumber, draft.Area, draft.Age,
		draft.Height, draft.Rating, draft.OwingAmount, id)
	if err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.getWorker(ctx, id)
}

func (s *SQLite) DeleteWorker(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	err := sqlx.SelectContext(ctx, s.ext, &workers, `SELECT * FROM workers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

func (s *SQLite) AdjustWorkerOwing(ctx context.Context, name string, delta int) error {
	_, err := s.ext.ExecContext(ctx,
		`UPDATE workers SET owing_amount = MAX(0, owing_amount + ?) WHERE name = ?`,
		delta, name)
	if err != nil {
		return fmt.Errorf("adjust worker owing: %w", err)
	}
	return nil
}

func (s *SQLite) InsertBrandBrief(ctx context.Context, draft models.BrandBriefDraft, createdBy string) (*models.BrandBrief, error) {
	id := uuid.NewString()
	_, err := s.ext.ExecContext(ctx,
		`INSERT INTO brand_briefs (id, brand_name, brief_title, brief_content, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		id, draft.BrandName, draft.BriefTitle, draft.BriefContent, createdBy)
	if err != nil {
		return nil, fmt.Errorf("insert brand brief: %w", err)
	}
	return s.getBrandBrief(ctx, id)
}

func (s *SQLite) getBrandBrief(ctx context.Context, id string) (*models.BrandBrief, error) {
	var brief models.BrandBrief
	err := sqlx.GetContext(ctx, s.ext, &brief, `SELECT * FROM brand_briefs WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get brand brief: %w", err)
	}
	return &brief, nil
}

func (s *SQLite) UpdateBrandBrief(ctx context.Context, id string, draft models.BrandBriefDraft) (*models.BrandBrief, error) {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE brand_briefs
		 SET brand_name = ?, brief_title = ?, brief_content = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		draft.BrandName, draft.BriefTitle, draft.BriefContent, id)
	if err != nil {
		return nil, fmt.Errorf("update brand brief: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.getBrandBrief(ctx, id)
}

func (s *SQLite) DeleteBrandBrief(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM brand_briefs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete brand brief: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ListBrandBriefs(ctx context.Context) ([]models.BrandBrief, error) {
	var briefs []models.BrandBrief
	err := sqlx.SelectContext(ctx, s.ext, &briefs, `SELECT * FROM brand_briefs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list brand briefs: %w", err)
	}
	return briefs, nil
}

func (s *SQLite) InsertBrandNote(ctx context.Context, draft models.BrandNoteDraft, createdBy string) (*models.BrandNote, error) {
	id := uuid.NewString()
	_, err := s.ext.ExecContext(ctx,
		`INSERT INTO brand_notes (id, brand_name, note_title, note_content, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		id, draft.BrandName, draft.NoteTitle, draft.NoteContent, createdBy)
	if err != nil {
		return nil, fmt.Errorf("insert brand note: %w", err)
	}
	return s.getBrandNote(ctx, id)
}

func (s *SQLite) getBrandNote(ctx context.Context, id string) (*models.BrandNote, error) {
	var note models.BrandNote
	err := sqlx.GetContext(ctx, s.ext, &note, `SELECT * FROM brand_notes WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get brand note: %w", err)
	}
	return &note, nil
}

func (s *SQLite) UpdateBrandNote(ctx context.Context, id string, draft models.BrandNoteDraft) (*models.BrandNote, error) {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE brand_notes
		 SET brand_name = ?, note_title = ?, note_content = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		draft.BrandName, draft.NoteTitle, draft.NoteContent, id)
	if err != nil {
		return nil, fmt.Errorf("update brand note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.getBrandNote(ctx, id)
}

func (s *SQLite) DeleteBrandNote(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM brand_notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete brand note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ListBrandNotes(ctx context.Context) ([]models.BrandNote, error) {
	var notes []models.BrandNote
	err := sqlx.SelectContext(ctx, s.ext, &notes, `SELECT * FROM brand_notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list brand notes: %w", err)
	}
	return notes, nil
}

func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, s.ext, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}
