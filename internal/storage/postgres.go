package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"olive-mind/internal/models"
)

// Postgres talks to the hosted Supabase database over plain SQL. The same
// struct serves both the connection pool and a single transaction: WithinTx
// hands out a copy whose ext is the *sqlx.Tx.
type Postgres struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db, ext: db}
}

func (p *Postgres) WithinTx(ctx context.Context, fn func(Repository) error) error {
	if _, ok := p.ext.(*sqlx.Tx); ok {
		// Already inside a transaction, just run in it.
		return fn(p)
	}
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Postgres{db: p.db, ext: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (p *Postgres) InsertEvent(ctx context.Context, draft models.EventDraft, createdBy string) (*models.Event, error) {
	query := `INSERT INTO events
	            (id, date, promoters, venue, location, title, arrival_time,
	             duration, rate, brands, mechanic, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING *`

	var event models.Event
	err := sqlx.GetContext(ctx, p.ext, &event, query,
		uuid.NewString(), draft.Date, draft.Promoters, draft.Venue, draft.Location,
		draft.Title, draft.ArrivalTime, draft.Duration, draft.Rate, draft.Brands,
		draft.Mechanic, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &event, nil
}

func (p *Postgres) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	query := `UPDATE events
	          SET promoters = $1, venue = $2, location = $3, title = $4,
	              arrival_time = $5, duration = $6, rate = $7, brands = $8,
	              mechanic = $9, updated_at = now()
	          WHERE id = $10
	          RETURNING *`

	var event models.Event
	err := sqlx.GetContext(ctx, p.ext, &event, query,
		patch.Promoters, patch.Venue, patch.Location, patch.Title,
		patch.ArrivalTime, patch.Duration, patch.Rate, patch.Brands,
		patch.Mechanic, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

func (p *Postgres) DeleteEvent(ctx context.Context, id string) error {
	res, err := p.ext.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := sqlx.GetContext(ctx, p.ext, &event, `SELECT * FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (p *Postgres) ListEventsByDate(ctx context.Context, date string) ([]models.Event, error) {
	var events []models.Event
	err := sqlx.SelectContext(ctx, p.ext, &events,
		`SELECT * FROM events WHERE date = $1 ORDER BY created_at`, date)
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	return events, nil
}

func (p *Postgres) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := sqlx.SelectContext(ctx, p.ext, &events, `SELECT * FROM events ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (p *Postgres) InsertMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = uuid.NewString()
	_, err := p.ext.ExecContext(ctx,
		`INSERT INTO messages (id, event_id, body, date, sent) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.EventID, msg.Body, msg.Date, msg.Sent)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateMessageByEvent(ctx context.Context, eventID, body, date string) error {
	res, err := p.ext.ExecContext(ctx,
		`UPDATE messages SET body = $1, date = $2 WHERE event_id = $3`,
		body, date, eventID)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SetMessageSent(ctx context.Context, messageID string, sent bool) error {
	res, err := p.ext.ExecContext(ctx,
		`UPDATE messages SET sent = $1 WHERE id = $2`, sent, messageID)
	if err != nil {
		return fmt.Errorf("set message sent: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteMessagesByEvent(ctx context.Context, eventID string) error {
	_, err := p.ext.ExecContext(ctx, `DELETE FROM messages WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

func (p *Postgres) ListMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := sqlx.SelectContext(ctx, p.ext, &messages, `SELECT * FROM messages ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (p *Postgres) InsertPayments(ctx context.Context, records []models.PaymentRecord) ([]models.PaymentRecord, error) {
	query := `INSERT INTO payments
	            (id, event_id, promoter_name, event_title, date, hours, hourly_rate, total_amount, paid)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	out := make([]models.PaymentRecord, 0, len(records))
	for _, rec := range records {
		rec.ID = uuid.NewString()
		_, err := p.ext.ExecContext(ctx, query,
			rec.ID, rec.EventID, rec.PromoterName, rec.EventTitle, rec.Date,
			rec.Hours, rec.HourlyRate, rec.TotalAmount, rec.Paid)
		if err != nil {
			return nil, fmt.Errorf("insert payment for %s: %w", rec.PromoterName, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (p *Postgres) GetPayment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := sqlx.GetContext(ctx, p.ext, &payment, `SELECT * FROM payments WHERE id = $1`, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &payment, nil
}

func (p *Postgres) SetPaymentPaid(ctx context.Context, paymentID string, paid bool) error {
	res, err := p.ext.ExecContext(ctx,
		`UPDATE payments SET paid = $1 WHERE id = $2`, paid, paymentID)
	if err != nil {
		return fmt.Errorf("set payment paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeletePaymentsByEvent(ctx context.Context, eventID string) error {
	_, err := p.ext.ExecContext(ctx, `DELETE FROM payments WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("delete payments: %w", err)
	}
	return nil
}

func (p *Postgres) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	err := sqlx.SelectContext(ctx, p.ext, &payments, `SELECT * FROM payments ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (p *Postgres) InsertWorker(ctx context.Context, draft models.WorkerDraft) (*models.Worker, error) {
	query := `INSERT INTO workers
	            (id, name, contact_number, area, age, height, rating, owing_amount)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING *`

	var worker models.Worker
	err := sqlx.GetContext(ctx, p.ext, &worker, query,
		uuid.NewString(), draft.Name, draft.ContactNumber, draft.Area,
		draft.Age, draft.Height, draft.Rating, draft.OwingAmount)
	if err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	return &worker, nil
}

func (p *Postgres) UpdateWorker(ctx context.Context, id string, draft models.WorkerDraft) (*models.Worker, error) {
	query := `UPDATE workers
	          SET name = $1, contact_number = $2, area = $3, age = $4,
	              height = $5, rating = $6, owing_amount = $7
	          WHERE id = $8
	          RETURNING *`

	var worker models.Worker
	err := sqlx.GetContext(ctx, p.ext, &worker, query,
		draft.Name, draft.ContactNumber, draft.Area, draft.Age,
		draft.Height, draft.Rating, draft.OwingAmount, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update worker: %w", err)
	}
	return &worker, nil
}

func (p *Postgres) DeleteWorker(ctx context.Context, id string) error {
	res, err := p.ext.ExecContext(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	err := sqlx.SelectContext(ctx, p.ext, &workers, `SELECT * FROM workers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

func (p *Postgres) AdjustWorkerOwing(ctx context.Context, name string, delta int) error {
	_, err := p.ext.ExecContext(ctx,
		`UPDATE workers SET owing_amount = GREATEST(0, owing_amount + $1) WHERE name = $2`,
		delta, name)
	if err != nil {
		return fmt.Errorf("adjust worker owing: %w", err)
	}
	return nil
}

func (p *Postgres) InsertBrandBrief(ctx context.Context, draft models.BrandBriefDraft, createdBy string) (*models.BrandBrief, error) {
	query := `INSERT INTO brand_briefs
	            (id, brand_name, brief_title, brief_content, created_by)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING *`

	var brief models.BrandBrief
	err := sqlx.GetContext(ctx, p.ext, &brief, query,
		uuid.NewString(), draft.BrandName, draft.BriefTitle, draft.BriefContent, createdBy)
	if err != nil {
		return nil, fmt.Errorf("insert brand brief: %w", err)
	}
	return &brief, nil
}

func (p *Postgres) UpdateBrandBrief(ctx context.Context, id string, draft models.BrandBriefDraft) (*models.BrandBrief, error) {
	query := `UPDATE brand_briefs
	          SET brand_name = $1, brief_title = $2, brief_content = $3, updated_at = now()
	          WHERE id = $4
	          RETURNING *`

	var brief models.BrandBrief
	err := sqlx.GetContext(ctx, p.ext, &brief, query,
		draft.BrandName, draft.BriefTitle, draft.BriefContent, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update brand brief: %w", err)
	}
	return &brief, nil
}

func (p *Postgres) DeleteBrandBrief(ctx context.Context, id string) error {
	res, err := p.ext.ExecContext(ctx, `DELETE FROM brand_briefs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand brief: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListBrandBriefs(ctx context.Context) ([]models.BrandBrief, error) {
	var briefs []models.BrandBrief
	err := sqlx.SelectContext(ctx, p.ext, &briefs, `SELECT * FROM brand_briefs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list brand briefs: %w", err)
	}
	return briefs, nil
}

func (p *Postgres) InsertBrandNote(ctx context.Context, draft models.BrandNoteDraft, createdBy string) (*models.BrandNote, error) {
	query := `INSERT INTO brand_notes
	            (id, brand_name, note_title, note_content, created_by)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING *`

	var note models.BrandNote
	err := sqlx.GetContext(ctx, p.ext, &note, query,
		uuid.NewString(), draft.BrandName, draft.NoteTitle, draft.NoteContent, createdBy)
	if err != nil {
		return nil, fmt.Errorf("insert brand note: %w", err)
	}
	return &note, nil
}

func (p *Postgres) UpdateBrandNote(ctx context.Context, id string, draft models.BrandNoteDraft) (*models.BrandNote, error) {
	query := `UPDATE brand_notes
	          SET brand_name = $1, note_title = $2, note_content = $3, updated_at = now()
	          WHERE id = $4
	          RETURNING *`

	var note models.BrandNote
	err := sqlx.GetContext(ctx, p.ext, &note, query,
		draft.BrandName, draft.NoteTitle, draft.NoteContent, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update brand note: %w", err)
	}
	return &note, nil
}

func (p *Postgres) DeleteBrandNote(ctx context.Context, id string) error {
	res, err := p.ext.ExecContext(ctx, `DELETE FROM brand_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListBrandNotes(ctx context.Context) ([]models.BrandNote, error) {
	var notes []models.BrandNote
	err := sqlx.SelectContext(ctx, p.ext, &notes, `SELECT * FROM brand_notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list brand notes: %w", err)
	}
	return notes, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, p.ext, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}
