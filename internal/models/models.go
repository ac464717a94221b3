package models

import "time"

// We use 'db' tags for sqlx to automatically map
// the database column names (snake_case) to our Go fields (CamelCase).

// Role decides what a signed-in user may do: managers mutate, supervisors
// only read.
type Role string

const (
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
)

// User represents a staff member's authentication details.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Session identifies the caller of an operation. It is built from the
// verified JWT claims and passed explicitly; there is no ambient
// "current user" state anywhere in the service.
type Session struct {
	UserID string
	Role   Role
}

// Event is one promotional work assignment. The promoters field is the
// source of truth for who is assigned: one or more names joined by "&".
type Event struct {
	ID          string    `db:"id" json:"id"`
	Date        string    `db:"date" json:"date"` // YYYY-MM-DD
	Promoters   string    `db:"promoters" json:"promoters"`
	Venue       string    `db:"venue" json:"venue"`
	Location    string    `db:"location" json:"location"`
	Title       string    `db:"title" json:"event"`
	ArrivalTime string    `db:"arrival_time" json:"arrivalTime"`
	Duration    string    `db:"duration" json:"duration"` // free text, e.g. "15:00-21:00 (6 hours)"
	Rate        string    `db:"rate" json:"rate"`         // free text, e.g. "R100 per hour"
	Brands      string    `db:"brands" json:"brands"`
	Mechanic    string    `db:"mechanic" json:"mechanic"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// EventDraft is the manager-authored input for a new Event. The id and
// created_by are assigned by the service, never by the client.
type EventDraft struct {
	Date        string `json:"date" binding:"required"`
	Promoters   string `json:"promoters" binding:"required"`
	Venue       string `json:"venue" binding:"required"`
	Location    string `json:"location"`
	Title       string `json:"event" binding:"required"`
	ArrivalTime string `json:"arrivalTime"`
	Duration    string `json:"duration"`
	Rate        string `json:"rate"`
	Brands      string `json:"brands"`
	Mechanic    string `json:"mechanic"`
}

// EventPatch is a full replace of an Event's descriptive fields.
// id, date and created_by are immutable after creation.
type EventPatch struct {
	Promoters   string `json:"promoters" binding:"required"`
	Venue       string `json:"venue" binding:"required"`
	Location    string `json:"location"`
	Title       string `json:"event" binding:"required"`
	ArrivalTime string `json:"arrivalTime"`
	Duration    string `json:"duration"`
	Rate        string `json:"rate"`
	Brands      string `json:"brands"`
	Mechanic    string `json:"mechanic"`
}

// Worker is one registered promoter. Workers are a standalone registry:
// events reference promoters by name only, so the link from a payment back
// to a worker is the name string. OwingAmount is a running ledger, seeded
// by hand on the worker form and cleared as payments are marked paid.
type Worker struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contactNumber"`
	Area          string    `db:"area" json:"area"`
	Age           string    `db:"age" json:"age"`
	Height        string    `db:"height" json:"height"`
	Rating        int       `db:"rating" json:"rating"`
	OwingAmount   int       `db:"owing_amount" json:"owingAmount"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// WorkerDraft is the form input for creating or fully replacing a worker.
type WorkerDraft struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	Area          string `json:"area" binding:"required"`
	Age           string `json:"age"`
	Height        string `json:"height"`
	Rating        int    `json:"rating"`
	OwingAmount   int    `json:"owingAmount"`
}

// BrandBrief is a shared write-up of how a brand wants to be represented.
type BrandBrief struct {
	ID           string    `db:"id" json:"id"`
	BrandName    string    `db:"brand_name" json:"brandName"`
	BriefTitle   string    `db:"brief_title" json:"briefTitle"`
	BriefContent string    `db:"brief_content" json:"briefContent"`
	CreatedBy    string    `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type BrandBriefDraft struct {
	BrandName    string `json:"brandName" binding:"required"`
	BriefTitle   string `json:"briefTitle" binding:"required"`
	BriefContent string `json:"briefContent"`
}

// BrandNote is a shorter free-form note attached to a brand.
type BrandNote struct {
	ID          string    `db:"id" json:"id"`
	BrandName   string    `db:"brand_name" json:"brandName"`
	NoteTitle   string    `db:"note_title" json:"noteTitle"`
	NoteContent string    `db:"note_content" json:"noteContent"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type BrandNoteDraft struct {
	BrandName   string `json:"brandName" binding:"required"`
	NoteTitle   string `json:"noteTitle" binding:"required"`
	NoteContent string `json:"noteContent"`
}

// Message is the generated confirmation text for one Event, one-to-one
// by event_id. The body is fully derived; only the sent flag is user state.
type Message struct {
	ID      string `db:"id" json:"id"`
	EventID string `db:"event_id" json:"eventId"`
	Body    string `db:"body" json:"message"`
	Date    string `db:"date" json:"date"` // copied from the Event, for sort/display
	Sent    bool   `db:"sent" json:"sent"`
}

// PaymentRecord is one owed amount for one promoter on one Event. The whole
// set for an event is rebuilt from the Event on every edit; only the paid
// flag is touched directly by a manager.
type PaymentRecord struct {
	ID           string `db:"id" json:"id"`
	EventID      string `db:"event_id" json:"eventId"`
	PromoterName string `db:"promoter_name" json:"promoterName"`
	EventTitle   string `db:"event_title" json:"eventTitle"`
	Date         string `db:"date" json:"date"`
	Hours        int    `db:"hours" json:"hours"`
	HourlyRate   int    `db:"hourly_rate" json:"hourlyRate"`
	TotalAmount  int    `db:"total_amount" json:"totalAmount"`
	Paid         bool   `db:"paid" json:"paid"`
}
