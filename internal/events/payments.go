package events

import (
	"strings"

	"olive-mind/internal/models"
)

// DerivePayments expands an event into one payment record per promoter
// named in the promoters field ("Jackie & Noluthando" -> two records).
// Hours and rate are parsed once from the event and shared by every record;
// ids are assigned by the repository at insert time.
//
// An empty or all-whitespace promoters field yields no records. That is a
// degenerate outcome, not an error: validation of the event itself happens
// in the coordinator, not here.
func DerivePayments(event models.Event) []models.PaymentRecord {
	hours := ParseHours(event.Duration)
	rate := ParseRate(event.Rate)
	total := hours * rate

	var records []models.PaymentRecord
	for _, name := range strings.Split(event.Promoters, "&") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		records = append(records, models.PaymentRecord{
			EventID:      event.ID,
			PromoterName: name,
			EventTitle:   event.Title,
			Date:         event.Date,
			Hours:        hours,
			HourlyRate:   rate,
			TotalAmount:  total,
			Paid:         false,
		})
	}
	return records
}
