package events

import (
	"fmt"
	"time"

	"olive-mind/internal/models"
)

// The confirmation message sent to promoters ahead of a gig. The boilerplate
// below the field block is company copy and must be reproduced verbatim.
const messageTemplate = `Good afternoon Miss ☀ Confirmation of work for Olive Mind Marketing

Promoters: %s
Venue: %s
Location: %s
Event: %s
Date: %s
Arrival Time: %s
Duration: %s
Rate: %s
Brands: %s

Mechanic: %s

1 hour prior arrival is the call time and failure to arrive for call time will result to penalties.

Dress code: plain white top, blue denim jeans and white sneakers.

Grooming: Please ensure that you have light makeup no heavy eyeshadows please ensure that your hair neat straightened or tied neatly.

NB: Taking pictures of consumers with the products is essential

• A minimum of 15 pictures is needed.

• Please always ensure that your phone is fully charged and also bring a power bank or a charger.

How the promotion will work:

Ensure that your work station at all times is clean and presentable. There is a display showing stock and / or giveaways. Engage with each and every consumer in a professional and brand appropriate fashion. Convince consumers that our products are the ultimate brand of choice.`

// formatLongDate renders an ISO date the way the app displays dates:
// weekday, day, month name and year, e.g. "Saturday, 17 August 2024".
// An unparseable date falls through as-is so composition never fails.
func formatLongDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, 2 January 2006")
}

// ComposeMessage renders the confirmation message for an event. Same event
// content in, byte-identical message out: edits regenerate the message by
// replacing its body, which only works if composition is deterministic.
func ComposeMessage(event models.Event) string {
	return fmt.Sprintf(messageTemplate,
		event.Promoters,
		event.Venue,
		event.Location,
		event.Title,
		formatLongDate(event.Date),
		event.ArrivalTime,
		event.Duration,
		event.Rate,
		event.Brands,
		event.Mechanic,
	)
}
