package core

import "time"

const dateLayout = "2006-01-02"

// DateCandidate is one outbound/return date pair to try for a destination.
type DateCandidate struct {
	OutboundDate string `json:"outboundDate"`
	ReturnDate   string `json:"returnDate"`
	Nights       int    `json:"nights"`
}

// GenerateDateCandidates produces the candidate travel windows for a stay
// length: starting 3 weeks out, every 2 weeks across a 6-month horizon.
// Weekend departures are shifted to the following Tuesday; midweek fares
// run cheaper. Pure apart from the injected "now"; always returns at least
// one candidate for nights >= 1.
func GenerateDateCandidates(now time.Time, nights int) []DateCandidate {
	if nights < 1 {
		nights = 1
	}

	var out []DateCandidate
	for weeksAhead := 3; weeksAhead <= 24; weeksAhead += 2 {
		outbound := now.AddDate(0, 0, weeksAhead*7)

		switch outbound.Weekday() {
		case time.Sunday:
			outbound = outbound.AddDate(0, 0, 2)
		case time.Saturday:
			outbound = outbound.AddDate(0, 0, 3)
		}

		ret := outbound.AddDate(0, 0, nights)
		out = append(out, DateCandidate{
			OutboundDate: outbound.Format(dateLayout),
			ReturnDate:   ret.Format(dateLayout),
			Nights:       nights,
		})
	}
	return out
}
