package events

import (
	"regexp"
	"strconv"
)

var (
	hoursPattern = regexp.MustCompile(`(?i)(\d+)\s*hours?`)
	ratePattern  = regexp.MustCompile(`R?(\d+)`)
)

// ParseHours pulls an hour count out of a free-text duration such as
// "15:00-21:00 (6 hours)". Returns 0 when nothing matches: a garbled
// duration yields a zero-value payment instead of blocking the event.
func ParseHours(duration string) int {
	m := hoursPattern.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ParseRate pulls the hourly rate out of free text such as "R100 per hour"
// or a bare "100". Returns 0 when nothing matches.
func ParseRate(rate string) int {
	m := ratePattern.FindStringSubmatch(rate)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
